// Package app предоставляет маршруты портала.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminlist "github.com/magabrotheeeer/members-portal/internal/http/handlers/admin/list"
	"github.com/magabrotheeeer/members-portal/internal/http/handlers/admin/demote"
	"github.com/magabrotheeeer/members-portal/internal/http/handlers/admin/promote"
	"github.com/magabrotheeeer/members-portal/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/members-portal/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/members-portal/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/members-portal/internal/http/handlers/health"
	"github.com/magabrotheeeer/members-portal/internal/http/handlers/home"
	"github.com/magabrotheeeer/members-portal/internal/http/handlers/injection"
	"github.com/magabrotheeeer/members-portal/internal/http/handlers/members"
	"github.com/magabrotheeeer/members-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	authservice "github.com/magabrotheeeer/members-portal/internal/services/auth"
	userservice "github.com/magabrotheeeer/members-portal/internal/services/users"
	"github.com/magabrotheeeer/members-portal/internal/session"
	"github.com/magabrotheeeer/members-portal/internal/storage"
	"github.com/magabrotheeeer/members-portal/internal/storage/repository"
	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, v *view.View, db *storage.Storage,
	sessions *session.Store, authService *authservice.AuthService,
	userService *userservice.UserService, usersRepo *repository.Users) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	// Сессия читается для каждого запроса; анонимные проходят дальше.
	r.Use(middlewarectx.SessionMiddleware(sessions, logger))

	// Открытые маршруты
	r.Get("/", home.New(logger, v))
	r.Get("/signup", signup.NewPage(logger, v))
	r.Post("/signup", signup.New(logger, authService, sessions, v).ServeHTTP)
	r.Get("/login", login.NewPage(logger, v))
	r.Post("/login", login.New(logger, authService, sessions, v).ServeHTTP)
	r.Post("/logout", logout.New(logger, sessions).ServeHTTP)
	r.Get("/members", members.New(logger, v))
	r.Get("/nosql-injection", injection.New(logger, usersRepo, v).ServeHTTP)

	// Административная группа: сессия, затем живая проверка роли.
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireSession(logger))
		r.Use(middlewarectx.RequireAdmin(userService, v, logger))
		r.Get("/admin", adminlist.New(logger, userService, v).ServeHTTP)
		r.Post("/admin/promote/{userID}", promote.New(logger, userService, v).ServeHTTP)
		r.Post("/admin/demote/{userID}", demote.New(logger, userService, v).ServeHTTP)
	})

	r.Get("/health", health.New(logger, db, sessions).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir("./public"))))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if err := v.Render(w, http.StatusNotFound, "notfound.html", nil); err != nil {
			logger.Error("failed to render not found page", sl.Err(err))
		}
	})
}
