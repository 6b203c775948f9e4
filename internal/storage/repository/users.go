// Package repository содержит операции хранилища над записями пользователей.
// Все фильтры строятся только по скалярным значениям, прошедшим валидацию
// на уровне обработчиков.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/members-portal/internal/models"
	"github.com/magabrotheeeer/members-portal/internal/storage"
)

// Users реализует операции с учётными записями поверх storage.Storage.
type Users struct {
	db *sql.DB
}

// NewUsers создает репозиторий пользователей.
func NewUsers(s *storage.Storage) *Users {
	return &Users{db: s.DB}
}

// InsertUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (r *Users) InsertUser(ctx context.Context, user models.User) (string, error) {
	const op = "repository.InsertUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (name, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role).Scan(&newUID); err != nil {
		// Гонку двух одновременных регистраций на один email
		// разрешает уникальный индекс.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", storage.ErrDuplicateEmail
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// FindUserByEmail возвращает пользователя по email или nil, если такого нет.
func (r *Users) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "repository.FindUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, role
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := r.db.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindLoginCandidates возвращает проекцию записей по email: имя, хэш пароля
// и UID. Для корректного входа результат должен содержать ровно одну запись,
// решение об этом принимает слой сервиса.
func (r *Users) FindLoginCandidates(ctx context.Context, email string) ([]models.LoginCandidate, error) {
	const op = "repository.FindLoginCandidates"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, password_hash
			  FROM users
			  WHERE email = $1`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.LoginCandidate
	for rows.Next() {
		var c models.LoginCandidate
		if err = rows.Scan(&c.UID, &c.Name, &c.PasswordHash); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListUsers возвращает все записи пользователей для административного списка.
func (r *Users) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "repository.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, role
			  FROM users
			  ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.Role); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserRole устанавливает роль пользователя по его UID и возвращает
// количество изменённых строк. Повторное применение той же роли безопасно.
func (r *Users) UpdateUserRole(ctx context.Context, uid, role string) (int, error) {
	const op = "repository.UpdateUserRole"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET role = $1
			  WHERE uid = $2`
	result, err := r.db.ExecContext(ctx, query, role, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
