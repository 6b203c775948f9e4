package demote

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Demote(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestView(t *testing.T) *view.View {
	v, err := view.New()
	require.NoError(t, err)
	return v
}

func TestDemoteHandler_Success(t *testing.T) {
	serviceMock := new(ServiceMock)
	serviceMock.On("Demote", mock.Anything, "uid-2").Return(nil).Once()

	router := chi.NewRouter()
	router.Post("/admin/demote/{userID}", New(newNoopLogger(), serviceMock, newTestView(t)).ServeHTTP)

	req := httptest.NewRequest(http.MethodPost, "/admin/demote/uid-2", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/admin", rr.Header().Get("Location"))
	serviceMock.AssertExpectations(t)
}
