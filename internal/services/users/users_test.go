package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/members-portal/internal/models"
)

type RepositoryMock struct {
	mock.Mock
}

func (m *RepositoryMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *RepositoryMock) UpdateUserRole(ctx context.Context, uid, role string) (int, error) {
	args := m.Called(ctx, uid, role)
	return args.Int(0), args.Error(1)
}

func (m *RepositoryMock) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestPromote(t *testing.T) {
	repo := new(RepositoryMock)
	service := NewUserService(repo)

	repo.On("UpdateUserRole", mock.Anything, "uid-1", models.RoleAdmin).Return(1, nil).Once()

	err := service.Promote(context.Background(), "uid-1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPromote_AlreadyAdmin(t *testing.T) {
	repo := new(RepositoryMock)
	service := NewUserService(repo)

	// Идемпотентность: роль уже admin, строка не меняется — всё равно успех.
	repo.On("UpdateUserRole", mock.Anything, "uid-1", models.RoleAdmin).Return(0, nil).Once()

	err := service.Promote(context.Background(), "uid-1")

	assert.NoError(t, err)
}

func TestDemote(t *testing.T) {
	repo := new(RepositoryMock)
	service := NewUserService(repo)

	repo.On("UpdateUserRole", mock.Anything, "uid-2", models.RoleUser).Return(1, nil).Once()

	err := service.Demote(context.Background(), "uid-2")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDemote_StoreFailure(t *testing.T) {
	repo := new(RepositoryMock)
	service := NewUserService(repo)

	repo.On("UpdateUserRole", mock.Anything, "uid-2", models.RoleUser).
		Return(0, errors.New("connection refused")).Once()

	err := service.Demote(context.Background(), "uid-2")

	assert.Error(t, err)
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		user    *models.User
		repoErr error
		want    bool
		wantErr bool
	}{
		{
			name: "admin user",
			user: &models.User{Email: "root@x.com", Role: models.RoleAdmin},
			want: true,
		},
		{
			name: "plain user",
			user: &models.User{Email: "ann@x.com", Role: models.RoleUser},
			want: false,
		},
		{
			name: "user not found",
			user: nil,
			want: false,
		},
		{
			name:    "store failure",
			repoErr: errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepositoryMock)
			service := NewUserService(repo)

			repo.On("FindUserByEmail", mock.Anything, "probe@x.com").
				Return(tt.user, tt.repoErr).Once()

			got, err := service.IsAdmin(context.Background(), "probe@x.com")

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestList(t *testing.T) {
	repo := new(RepositoryMock)
	service := NewUserService(repo)

	expected := []*models.User{
		{UID: "uid-1", Name: "Ann", Email: "ann@x.com", PasswordHash: "$2a$10$hash", Role: models.RoleUser},
	}
	repo.On("ListUsers", mock.Anything).Return(expected, nil).Once()

	got, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
