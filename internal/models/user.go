// Package models содержит доменную модель пользователя портала:
// данные учётной записи, хэш пароля и роль для контроля доступа.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

// Роли пользователей. Роль admin открывает доступ к административным
// маршрутам, по умолчанию при регистрации выдаётся role user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя портала.
type User struct {
	UID          string // Уникальный идентификатор, назначается хранилищем
	Name         string // Отображаемое имя пользователя
	Email        string // Электронная почта (уникальная)
	PasswordHash string // bcrypt-хэш пароля, открытый пароль нигде не хранится
	Role         string // Роль пользователя, admin или user
}

// IsAdmin сообщает, имеет ли пользователь административную роль.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LoginCandidate — проекция записи пользователя для проверки входа:
// только имя, хэш пароля и идентификатор, без остальных полей.
type LoginCandidate struct {
	UID          string
	Name         string
	PasswordHash string
}
