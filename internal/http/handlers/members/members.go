// Package members отрисовывает страницу участников. Имена картинок
// вычисляются локально на каждый запрос, никакого разделяемого
// между запросами состояния.
package members

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/members-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/members-portal/internal/lib/sl"
	"github.com/magabrotheeeer/members-portal/internal/web/view"
)

// PageData — данные страницы участников.
type PageData struct {
	Name string
	Img1 string
	Img2 string
	Img3 string
}

// New возвращает обработчик страницы участников. Без email в сессии
// клиент уводится на страницу входа.
func New(log *slog.Logger, v *view.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := middlewarectx.Data(r.Context())
		if s == nil || s.Email == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		data := PageData{
			Name: s.Name,
			Img1: "garfield.jpg",
			Img2: "tom.jpg",
			Img3: "sylvester.png",
		}
		if err := v.Render(w, http.StatusOK, "members.html", data); err != nil {
			log.Error("failed to render members page", sl.Err(err))
		}
	}
}
