// Package health реализует проверку готовности сервиса: живость базы
// данных и хранилища сессий.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/members-portal/internal/http/response"
	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
)

// Pinger проверяет доступность зависимой подсистемы.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает запрос проверки готовности.
type Handler struct {
	log      *slog.Logger
	storage  Pinger
	sessions Pinger
}

// New создает обработчик проверки готовности.
func New(log *slog.Logger, storage, sessions Pinger) *Handler {
	return &Handler{
		log:      log,
		storage:  storage,
		sessions: sessions,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.storage.Ping(r.Context()); err != nil {
		log.Error("database is not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}
	if err := h.sessions.Ping(r.Context()); err != nil {
		log.Error("session store is not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("session store is not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
