// Package app собирает сервис: подключение к хранилищу, миграции,
// хранилище сессий, маршруты и HTTP-сервер. Все зависимости передаются
// обработчикам явно при регистрации маршрутов.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/members-portal/internal/config"
	"github.com/magabrotheeeer/members-portal/internal/migrations"
	"github.com/magabrotheeeer/members-portal/internal/session"
	"github.com/magabrotheeeer/members-portal/internal/services/auth"
	"github.com/magabrotheeeer/members-portal/internal/services/users"
	"github.com/magabrotheeeer/members-portal/internal/storage"
	"github.com/magabrotheeeer/members-portal/internal/storage/repository"
	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

// App держит HTTP-сервер и его долгоживущие зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

// New собирает приложение. Недоступность хранилища или Redis на старте —
// фатальная ошибка: без живых подключений сервис маршруты не обслуживает.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = storage.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	sessions, err := session.InitStore(ctx, cfg.RedisConnection, cfg.Secret, cfg.TTL)
	if err != nil {
		return nil, err
	}

	v, err := view.New()
	if err != nil {
		return nil, err
	}

	usersRepo := repository.NewUsers(db)
	authService := auth.NewAuthService(usersRepo)
	userService := users.NewUserService(usersRepo)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, v, db, sessions, authService, userService, usersRepo)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
