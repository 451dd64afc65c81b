package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"todolist/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Routes builds the router for the web front-end.
func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/", h.Home)
	r.Post("/theme", h.ToggleTheme)

	r.Get("/api/tasks", h.ListTasks)
	r.Post("/api/tasks", h.CreateTask)
	r.Delete("/api/tasks/{id}", h.DeleteTask)
	r.Post("/api/tasks/reorder", h.ReorderTasks)

	return r
}

// ParseTemplates parses the embedded page templates.
func ParseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"color": func(c models.ColorHint) string {
			return c.Hex()
		},
	}

	tmpl := template.New("").Funcs(funcMap)

	matches, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}

	for _, match := range matches {
		content, err := templatesFS.ReadFile(match)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", match, err)
		}

		name := path.Base(match)
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
	}

	return tmpl, nil
}
