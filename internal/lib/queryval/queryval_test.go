package queryval

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		param   string
		maxLen  int
		want    string
		wantErr error
	}{
		{
			name:   "plain scalar value",
			query:  "email=ann@x.com&password=abc",
			param:  "email",
			maxLen: 20,
			want:   "ann@x.com",
		},
		{
			name:    "missing parameter",
			query:   "password=abc",
			param:   "email",
			maxLen:  20,
			wantErr: ErrMissing,
		},
		{
			name:    "empty value",
			query:   "email=",
			param:   "email",
			maxLen:  20,
			wantErr: ErrMissing,
		},
		{
			name:    "operator-shaped key",
			query:   "email%5B%24ne%5D=probe",
			param:   "email",
			maxLen:  20,
			wantErr: ErrStructured,
		},
		{
			name:    "operator-shaped key alongside scalar",
			query:   "email=a@x.com&email%5B%24regex%5D=.%2A",
			param:   "email",
			maxLen:  20,
			wantErr: ErrStructured,
		},
		{
			name:    "repeated parameter",
			query:   "email=a@x.com&email=b@x.com",
			param:   "email",
			maxLen:  20,
			wantErr: ErrStructured,
		},
		{
			name:    "value over max length",
			query:   "email=averyveryverylongemail@example.com",
			param:   "email",
			maxLen:  20,
			wantErr: ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := Scalar(values, tt.param, tt.maxLen)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
