// Package injection реализует демонстрационный маршрут защиты от
// инъекции через query-параметры. Оба параметра обязаны быть одиночными
// скалярными строками ограниченной длины; структурное значение в духе
// email[$ne]=x отклоняется до обращения к хранилищу.
package injection

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/members-portal/internal/lib/queryval"
	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	"github.com/magabrotheeeer/members-portal/internal/models"
	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

// maxParamLen — граница длины скалярного параметра по схеме.
const maxParamLen = 20

// Repository описывает проекционный запрос по email.
type Repository interface {
	FindLoginCandidates(ctx context.Context, email string) ([]models.LoginCandidate, error)
}

// PageData — данные страницы демонстрационного маршрута.
type PageData struct {
	Alert bool
	Hint  bool
	Email string
}

// Handler обрабатывает GET демонстрационного маршрута.
type Handler struct {
	log  *slog.Logger
	repo Repository
	view *view.View
}

// New создает обработчик демонстрационного маршрута.
func New(log *slog.Logger, repo Repository, v *view.View) *Handler {
	return &Handler{log: log, repo: repo, view: v}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.injection"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	values := r.URL.Query()

	email, emailErr := queryval.Scalar(values, "email", maxParamLen)
	_, passwordErr := queryval.Scalar(values, "password", maxParamLen)

	// Отсутствующий параметр — подсказка по использованию. Ключ с
	// оператором сюда не попадает: для него Scalar возвращает
	// ErrStructured, а не ErrMissing.
	if errors.Is(emailErr, queryval.ErrMissing) || errors.Is(passwordErr, queryval.ErrMissing) {
		h.render(log, w, http.StatusOK, PageData{Hint: true})
		return
	}

	if emailErr != nil || passwordErr != nil {
		if emailErr != nil {
			log.Error("email rejected", sl.Err(emailErr))
		}
		if passwordErr != nil {
			log.Error("password rejected", sl.Err(passwordErr))
		}
		h.render(log, w, http.StatusOK, PageData{Alert: true})
		return
	}

	log.Info("query parameters validated", slog.String("email", email))

	result, err := h.repo.FindLoginCandidates(r.Context(), email)
	if err != nil {
		log.Error("failed to query users", sl.Err(err))
		if err := h.view.Render(w, http.StatusInternalServerError, "error.html",
			map[string]string{"Message": "Internal Server Error"}); err != nil {
			log.Error("failed to render error page", sl.Err(err))
		}
		return
	}
	log.Info("projection query finished", slog.Int("matches", len(result)))

	h.render(log, w, http.StatusOK, PageData{Email: email})
}

func (h *Handler) render(log *slog.Logger, w http.ResponseWriter, status int, data PageData) {
	if err := h.view.Render(w, status, "injection.html", data); err != nil {
		log.Error("failed to render injection page", sl.Err(err))
	}
}
