// Package users содержит операции управления учётными записями:
// административный список, смену роли и живую проверку admin-прав.
package users

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/members-portal/internal/models"
)

// Repository описывает контракт хранилища для операций над пользователями.
type Repository interface {
	// ListUsers возвращает все записи пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUserRole устанавливает роль по UID, возвращает число изменённых строк.
	UpdateUserRole(ctx context.Context, uid, role string) (int, error)

	// FindUserByEmail возвращает пользователя по email или nil, если не найден.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserService реализует операции над пользователями поверх хранилища.
type UserService struct {
	users Repository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users Repository) *UserService {
	return &UserService{users: users}
}

// List возвращает все записи пользователей для административного списка.
// Хэши паролей присутствуют в данных, слой отображения их не выводит клиенту.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	const op = "users.List"
	result, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Promote назначает пользователю роль admin. Повторный вызов для
// администратора ничего не меняет.
func (s *UserService) Promote(ctx context.Context, uid string) error {
	const op = "users.Promote"
	if _, err := s.users.UpdateUserRole(ctx, uid, models.RoleAdmin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Demote возвращает пользователю роль user. Ограничений нет: администратор
// может снять роль и с самого себя.
func (s *UserService) Demote(ctx context.Context, uid string) error {
	const op = "users.Demote"
	if _, err := s.users.UpdateUserRole(ctx, uid, models.RoleUser); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsAdmin перечитывает запись пользователя по email сессии и сообщает,
// является ли он администратором. Результат нигде не кешируется: смена
// роли действует со следующего же запроса.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	const op = "users.IsAdmin"
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return user != nil && user.IsAdmin(), nil
}
