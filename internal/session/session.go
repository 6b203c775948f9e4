// Package session реализует серверные сессии поверх Redis. Клиент держит
// только непрозрачный подписанный токен; все данные аутентификации живут
// в записи сессии на сервере. TTL записи скользящий: каждое чтение
// продлевает сессию на полный интервал.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/members-portal/internal/config"
)

// CookieName — имя cookie с токеном сессии.
const CookieName = "session_token"

// ErrNoSession возвращается, когда токен невалиден, подпись не сходится
// или запись сессии отсутствует (в том числе истекла по TTL).
var ErrNoSession = errors.New("no session")

// Data — данные сессии, хранимые на сервере.
// Email служит ключом обратного поиска записи пользователя, а не
// доказательством её существования: роль перечитывается из хранилища
// при каждой админ-проверке.
type Data struct {
	Authenticated bool   `json:"authenticated"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

// Store хранит сессии в Redis и подписывает идентификаторы секретом.
type Store struct {
	db     *redis.Client
	secret []byte
	ttl    time.Duration
}

// InitStore подключается к Redis и возвращает хранилище сессий.
func InitStore(ctx context.Context, cfg config.RedisConnection, secret string, ttl time.Duration) (*Store, error) {
	const op = "session.InitStore"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{db: db, secret: []byte(secret), ttl: ttl}, nil
}

// Create создает новую запись сессии и возвращает подписанный токен.
// Каждый вход порождает новый идентификатор, прежний токен к новой
// записи отношения не имеет.
func (s *Store) Create(ctx context.Context, data Data) (string, error) {
	const op = "session.Create"
	id := uuid.NewString()
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = s.db.Set(ctx, key(id), jsonData, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id + "." + s.sign(id), nil
}

// Get проверяет подпись токена, читает запись сессии и продлевает её TTL.
func (s *Store) Get(ctx context.Context, token string) (*Data, error) {
	const op = "session.Get"
	id, err := s.verify(token)
	if err != nil {
		return nil, err
	}

	val, err := s.db.Get(ctx, key(id)).Result()
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var data Data
	if err = json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Скользящее окно: любое обращение к сессии продлевает её.
	if err = s.db.Expire(ctx, key(id), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &data, nil
}

// Destroy удаляет запись сессии. Отсутствующая запись ошибкой не считается.
func (s *Store) Destroy(ctx context.Context, token string) error {
	const op = "session.Destroy"
	id, err := s.verify(token)
	if err != nil {
		return err
	}
	if err = s.db.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// TTL возвращает настроенное скользящее время жизни сессии.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Ping проверяет доступность хранилища сессий.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx).Err()
}

func (s *Store) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Store) verify(token string) (string, error) {
	id, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrNoSession
	}
	want, err := hex.DecodeString(sig)
	if err != nil {
		return "", ErrNoSession
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	if !hmac.Equal(mac.Sum(nil), want) {
		return "", ErrNoSession
	}
	return id, nil
}

func key(id string) string {
	return "session:" + id
}

// WriteCookie устанавливает cookie с токеном сессии.
func WriteCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie удаляет cookie сессии у клиента.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
