// Package view отвечает за отрисовку HTML-страниц портала.
// Шаблоны встроены в бинарник; страницам передаются только данные,
// никакой бизнес-логики на уровне шаблонов нет.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var files embed.FS

// View хранит разобранный набор шаблонов страниц.
type View struct {
	templates *template.Template
}

// New разбирает встроенные шаблоны страниц.
func New() (*View, error) {
	const op = "view.New"
	t, err := template.ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &View{templates: t}, nil
}

// Render отрисовывает страницу name с данными data и статусом status.
func (v *View) Render(w http.ResponseWriter, status int, name string, data any) error {
	const op = "view.Render"
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := v.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Message — данные для простого ответа с текстом и ссылкой повтора.
type Message struct {
	Text string
	Href string
	Link string
}

// RenderMessage отрисовывает короткое сообщение со ссылкой "Try again".
func (v *View) RenderMessage(w http.ResponseWriter, status int, text, href string) error {
	return v.Render(w, status, "message.html", Message{
		Text: text,
		Href: href,
		Link: "Try again",
	})
}
