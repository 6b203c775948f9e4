// Package logout реализует выход из учётной записи: уничтожение записи
// сессии и возврат на анонимную главную страницу.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	"github.com/magabrotheeeer/members-portal/internal/session"
)

// Sessions описывает уничтожение записи сессии по токену.
type Sessions interface {
	Destroy(ctx context.Context, token string) error
}

// Handler обрабатывает POST выхода из учётной записи.
type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

// New создает обработчик выхода.
func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{log: log, sessions: sessions}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Уничтожение сессии — best effort: ошибка логируется,
	// клиент в любом случае уходит на главную уже без cookie.
	if token := middlewarectx.Token(r.Context()); token != "" {
		if err := h.sessions.Destroy(r.Context(), token); err != nil {
			log.Error("failed to destroy session", sl.Err(err))
		}
	}
	session.ClearCookie(w)

	http.Redirect(w, r, "/", http.StatusFound)
}
