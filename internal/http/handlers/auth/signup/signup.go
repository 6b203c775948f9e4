// Package signup реализует HTTP-обработчики страницы регистрации и
// обработки формы регистрации.
//
// Порядок проверок формы фиксирован: сначала присутствие каждого поля
// с отдельным сообщением, затем схема (границы длины и форма email),
// затем занятость email. До успешной валидации хранилище не трогается,
// из невалидных данных фильтры не строятся.
package signup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	"github.com/magabrotheeeer/members-portal/internal/models"
	"github.com/magabrotheeeer/members-portal/internal/services/auth"
	"github.com/magabrotheeeer/members-portal/internal/session"
	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

// Request — входные данные формы регистрации.
type Request struct {
	Name     string `validate:"required,min=3,max=20"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=3,max=20"`
}

// Service описывает бизнес-операцию регистрации.
type Service interface {
	Register(ctx context.Context, name, email, rawPassword string) (*models.User, error)
}

// Sessions описывает создание новой сессии после регистрации.
type Sessions interface {
	Create(ctx context.Context, data session.Data) (string, error)
	TTL() time.Duration
}

// Handler обрабатывает POST формы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
	view     *view.View
	validate *validator.Validate
}

// New создает обработчик обработки формы регистрации.
func New(log *slog.Logger, service Service, sessions Sessions, v *view.View) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		view:     v,
		validate: validator.New(),
	}
}

// NewPage возвращает обработчик, отрисовывающий страницу регистрации.
func NewPage(log *slog.Logger, v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := v.Render(w, http.StatusOK, "signup.html", nil); err != nil {
			log.Error("failed to render signup page", sl.Err(err))
		}
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.message(log, w, http.StatusBadRequest, "Invalid form submission.", "/signup")
		return
	}

	req := Request{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	// Отдельные сообщения про отсутствующие поля, как в форме.
	if req.Name == "" {
		h.message(log, w, http.StatusOK, "Name is required.", "/signup")
		return
	}
	if req.Email == "" {
		h.message(log, w, http.StatusOK, "Email is required.", "/signup")
		return
	}
	if req.Password == "" {
		h.message(log, w, http.StatusOK, "Password is required.", "/signup")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		h.message(log, w, http.StatusOK, "Invalid name, email, or password.", "/signup")
		return
	}
	log.Info("all fields are validated")

	user, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			h.message(log, w, http.StatusOK, "This email is used by a pre-existing account.", "/signup")
			return
		}
		log.Error("registration failed", sl.Err(err))
		h.message(log, w, http.StatusInternalServerError, "Internal server error.", "/signup")
		return
	}
	log.Info("user created", slog.String("uid", user.UID))

	token, err := h.sessions.Create(r.Context(), session.Data{
		Authenticated: true,
		Name:          user.Name,
		Email:         user.Email,
	})
	if err != nil {
		log.Error("failed to create session", sl.Err(err))
		h.message(log, w, http.StatusInternalServerError, "Internal server error.", "/login")
		return
	}
	session.WriteCookie(w, token, h.sessions.TTL())

	http.Redirect(w, r, "/members", http.StatusFound)
}

func (h *Handler) message(log *slog.Logger, w http.ResponseWriter, status int, text, href string) {
	if err := h.view.RenderMessage(w, status, text, href); err != nil {
		log.Error("failed to render message", sl.Err(err))
	}
}
