// Package middlewarectx содержит HTTP middleware портала: загрузку сессии
// из cookie в контекст запроса и охранные проверки маршрутов
// (аутентифицированный пользователь, администратор).
//
// Проверка admin всегда выполняется живым запросом к хранилищу по email
// сессии: смена роли действует со следующего запроса, кеша ролей нет.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	"github.com/magabrotheeeer/members-portal/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// SessionData — ключ с данными сессии (*session.Data).
	SessionData Key = "session_data"
	// SessionToken — ключ с токеном сессии текущего запроса.
	SessionToken Key = "session_token"
)

// Data возвращает данные сессии из контекста запроса либо nil для
// анонимного запроса.
func Data(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionData).(*session.Data)
	return data
}

// Token возвращает токен сессии текущего запроса, если он есть.
func Token(ctx context.Context) string {
	token, _ := ctx.Value(SessionToken).(string)
	return token
}

// SessionStore описывает чтение сессии по токену.
type SessionStore interface {
	Get(ctx context.Context, token string) (*session.Data, error)
}

// SessionMiddleware читает cookie сессии и кладёт данные сессии в контекст.
//
// Невалидный или истёкший токен делает запрос анонимным, а не ошибочным.
// Чтение сессии продлевает её скользящий TTL.
func SessionMiddleware(store SessionStore, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			data, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					log.Error("failed to load session",
						slog.String("op", op),
						slog.String("request_id", middleware.GetReqID(r.Context())),
						sl.Err(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), SessionData, data)
			ctx = context.WithValue(ctx, SessionToken, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
