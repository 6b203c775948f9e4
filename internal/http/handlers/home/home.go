// Package home отрисовывает главную страницу с учётом состояния сессии.
package home

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/members-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

// PageData — данные главной страницы.
type PageData struct {
	Name  string
	Email string
}

// New возвращает обработчик главной страницы.
func New(log *slog.Logger, v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data PageData
		if s := middlewarectx.Data(r.Context()); s != nil {
			data.Name = s.Name
			data.Email = s.Email
		}
		if err := v.Render(w, http.StatusOK, "home.html", data); err != nil {
			log.Error("failed to render home page", sl.Err(err))
		}
	}
}
