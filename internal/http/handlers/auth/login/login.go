// Package login реализует HTTP-обработчики страницы входа и проверки
// учётных данных.
//
// Валидация email на входе сознательно асимметрична регистрации:
// ошибка схемы уводит редиректом на /login?error=true, а не встроенным
// сообщением. Причины несовпадения учётных данных наружу не различаются.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/members-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	"github.com/magabrotheeeer/members-portal/internal/models"
	"github.com/magabrotheeeer/members-portal/internal/services/auth"
	"github.com/magabrotheeeer/members-portal/internal/session"
	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

// Request — входные данные формы входа. Пароль сверяется только
// с хэшем из хранилища, дополнительной схемы на него нет.
type Request struct {
	Email    string `validate:"required,max=20"`
	Password string `validate:"required"`
}

// Service описывает бизнес-операцию входа.
type Service interface {
	Login(ctx context.Context, email, rawPassword string) (*models.User, error)
}

// Sessions описывает создание новой сессии после входа.
type Sessions interface {
	Create(ctx context.Context, data session.Data) (string, error)
	TTL() time.Duration
}

// Handler обрабатывает POST формы входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
	view     *view.View
	validate *validator.Validate
}

// New создает обработчик проверки учётных данных.
func New(log *slog.Logger, service Service, sessions Sessions, v *view.View) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		view:     v,
		validate: validator.New(),
	}
}

// PageData — данные страницы входа.
type PageData struct {
	AlreadyLoggedIn bool
	Error           bool
}

// NewPage возвращает обработчик, отрисовывающий страницу входа.
// Страница показывает состояние уже выполненного входа и флаг ошибки
// из query-параметра error.
func NewPage(log *slog.Logger, v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			Error: r.URL.Query().Get("error") == "true",
		}
		if s := middlewarectx.Data(r.Context()); s != nil && s.Authenticated {
			data.AlreadyLoggedIn = true
		}
		if err := v.Render(w, http.StatusOK, "login.html", data); err != nil {
			log.Error("failed to render login page", sl.Err(err))
		}
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		http.Redirect(w, r, "/login?error=true", http.StatusFound)
		return
	}

	req := Request{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		http.Redirect(w, r, "/login?error=true", http.StatusFound)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserMismatch):
			log.Info("user does not exist")
			http.Redirect(w, r, "/login", http.StatusFound)
		case errors.Is(err, auth.ErrInvalidCredentials):
			log.Info("incorrect password")
			if err := h.view.RenderMessage(w, http.StatusOK, "Incorrect password.", "/login"); err != nil {
				log.Error("failed to render message", sl.Err(err))
			}
		default:
			log.Error("login failed", sl.Err(err))
			if err := h.view.RenderMessage(w, http.StatusInternalServerError, "Internal server error.", "/login"); err != nil {
				log.Error("failed to render message", sl.Err(err))
			}
		}
		return
	}
	log.Info("user logged in")

	token, err := h.sessions.Create(r.Context(), session.Data{
		Authenticated: true,
		Name:          user.Name,
		Email:         user.Email,
	})
	if err != nil {
		log.Error("failed to create session", sl.Err(err))
		if err := h.view.RenderMessage(w, http.StatusInternalServerError, "Internal server error.", "/login"); err != nil {
			log.Error("failed to render message", sl.Err(err))
		}
		return
	}
	session.WriteCookie(w, token, h.sessions.TTL())

	http.Redirect(w, r, "/members", http.StatusFound)
}
