// Package demote реализует возврат пользователю роли user.
// Ограничений нет: администратор может снять роль и с самого себя.
package demote

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

// Service описывает операцию возврата роли user.
type Service interface {
	Demote(ctx context.Context, uid string) error
}

// Handler обрабатывает POST снятия роли.
type Handler struct {
	log     *slog.Logger
	service Service
	view    *view.View
}

// New создает обработчик снятия роли admin.
func New(log *slog.Logger, service Service, v *view.View) *Handler {
	return &Handler{log: log, service: service, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.demote"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "userID")
	if err := h.service.Demote(r.Context(), userID); err != nil {
		log.Error("failed to demote user", sl.Err(err))
		if err := h.view.Render(w, http.StatusInternalServerError, "error.html",
			map[string]string{"Message": "Internal Server Error"}); err != nil {
			log.Error("failed to render error page", sl.Err(err))
		}
		return
	}
	log.Info("user demoted from admin role", slog.String("uid", userID))

	http.Redirect(w, r, "/admin", http.StatusFound)
}
