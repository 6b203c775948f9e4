package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

// RoleService описывает живую проверку административной роли по email.
type RoleService interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireSession пропускает только запросы с аутентифицированной сессией.
// Анонимный запрос уводится навигационным редиректом на страницу входа,
// это не ошибка.
func RequireSession(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data := Data(r.Context())
			if data == nil || !data.Authenticated {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin пропускает только администраторов. Ставится строго после
// RequireSession: валидность сессии здесь уже установлена. Роль
// перечитывается из хранилища на каждый запрос.
func RequireAdmin(roles RoleService, v *view.View, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAdmin"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			data := Data(r.Context())
			if data == nil {
				// RequireSession не отработал раньше — считаем запрос анонимным.
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			isAdmin, err := roles.IsAdmin(r.Context(), data.Email)
			if err != nil {
				log.Error("failed to resolve user role", sl.Err(err))
				if err := v.Render(w, http.StatusInternalServerError, "error.html",
					map[string]string{"Message": "Internal Server Error"}); err != nil {
					log.Error("failed to render error page", sl.Err(err))
				}
				return
			}
			if !isAdmin {
				log.Info("admin access denied", slog.String("email", data.Email))
				if err := v.Render(w, http.StatusForbidden, "error.html",
					map[string]string{"Message": "You are not authorized to view this page."}); err != nil {
					log.Error("failed to render error page", sl.Err(err))
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
