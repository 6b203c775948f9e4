// Package list отрисовывает административный список пользователей.
// В данные страницы попадают полные записи, включая хэши паролей;
// шаблон их клиенту не выводит.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	"github.com/magabrotheeeer/members-portal/internal/models"
	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

// Service описывает получение всех записей пользователей.
type Service interface {
	List(ctx context.Context) ([]*models.User, error)
}

// Handler обрабатывает GET административного списка.
type Handler struct {
	log     *slog.Logger
	service Service
	view    *view.View
}

// New создает обработчик административного списка.
func New(log *slog.Logger, service Service, v *view.View) *Handler {
	return &Handler{log: log, service: service, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		if err := h.view.Render(w, http.StatusInternalServerError, "error.html",
			map[string]string{"Message": "Internal Server Error"}); err != nil {
			log.Error("failed to render error page", sl.Err(err))
		}
		return
	}

	if err := h.view.Render(w, http.StatusOK, "admin.html",
		map[string]any{"Users": users}); err != nil {
		log.Error("failed to render admin page", sl.Err(err))
	}
}
