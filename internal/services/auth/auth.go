// Package auth содержит логику бизнес-уровня для регистрации и входа
// пользователей: проверку занятости email, хеширование пароля и сверку
// пароля с хэшем из хранилища.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/members-portal/internal/lib/password"
	"github.com/magabrotheeeer/members-portal/internal/models"
	"github.com/magabrotheeeer/members-portal/internal/storage"
)

// Типизированные исходы, которые обработчики переводят в ответы пользователю.
var (
	// ErrEmailTaken — email уже занят существующей учётной записью.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrUserMismatch — по email найдено ноль или больше одной записи.
	ErrUserMismatch = errors.New("no single user for email")
	// ErrInvalidCredentials — пароль не совпал с хэшем.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// InsertUser сохраняет нового пользователя и возвращает его UID.
	InsertUser(ctx context.Context, user models.User) (string, error)

	// FindUserByEmail возвращает пользователя по email или nil, если не найден.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// FindLoginCandidates возвращает проекцию записей по email для проверки входа.
	FindLoginCandidates(ctx context.Context, email string) ([]models.LoginCandidate, error)
}

// AuthService отвечает за регистрацию и проверку учётных данных.
type AuthService struct {
	users UserRepository
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
//
// Проверка занятости email и вставка — не атомарны; гонку двух
// одновременных регистраций гасит уникальный индекс на email в хранилище.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (*models.User, error) {
	const op = "auth.Register"

	existing, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
	}
	uid, err := s.users.InsertUser(ctx, user)
	if errors.Is(err, storage.ErrDuplicateEmail) {
		// Проигравший гонку регистрации получает тот же исход,
		// что и при занятом email.
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid
	return &user, nil
}

// Login проверяет пароль пользователя по email.
//
// Вход возможен только когда по email существует ровно одна запись и
// пароль сходится с её хэшем. Какая именно проверка не прошла, наружу
// не сообщается — только тип исхода для выбора ответа.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "auth.Login"

	candidates, err := s.users.FindLoginCandidates(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(candidates) != 1 {
		return nil, ErrUserMismatch
	}

	if err := password.CompareHash(candidates[0].PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &models.User{
		UID:   candidates[0].UID,
		Name:  candidates[0].Name,
		Email: email,
	}, nil
}
