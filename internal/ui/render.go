// Package ui renders HTML pages from templates embedded at build time.
package ui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/jacketapp/jacketapp/internal/ctxkeys"
	"github.com/jacketapp/jacketapp/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"login", "register", "profile", "dashboard"} {
		pages[name] = template.Must(template.ParseFS(templatesFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
}

// PageData carries per-request template data. CSRFToken and User are
// filled from the request context by Render.
type PageData struct {
	AppName   string
	Title     string
	CSRFToken string
	User      *model.User
	Error     string
	Notice    string
	Form      map[string]string
}

// Render writes the named page. Template failures log and return 500.
func Render(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	tmpl, ok := pages[name]
	if !ok {
		slog.Error("unknown template", "name", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data.CSRFToken = ctxkeys.CSRFToken(r.Context())
	if data.User == nil {
		data.User = ctxkeys.User(r.Context())
	}
	if data.AppName == "" {
		if cfg := ctxkeys.Config(r.Context()); cfg != nil {
			data.AppName = cfg.AppName
		}
	}
	if data.Form == nil {
		data.Form = map[string]string{}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := tmpl.ExecuteTemplate(w, "layout", data)
	if err != nil {
		slog.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
