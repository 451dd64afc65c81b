package handlers

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"todolist/internal/app"
	"todolist/internal/models"
	"todolist/internal/store"
	"todolist/internal/tasklist"
)

// Handlers holds the HTTP handlers and their dependencies.
//
// Requests are handled one at a time so the browser sees the same
// single-event-loop behavior as the desktop and terminal front-ends.
type Handlers struct {
	mu        sync.Mutex
	store     store.Store
	templates *template.Template
	dark      bool
}

// New creates a new Handlers instance.
func New(s store.Store, tmpl *template.Template, dark bool) *Handlers {
	return &Handlers{
		store:     s,
		templates: tmpl,
		dark:      dark,
	}
}

// SetDarkMode changes the theme served to subsequent requests.
func (h *Handlers) SetDarkMode(dark bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dark = dark
}

// pageSurface collects what the controller shows while serving one request.
type pageSurface struct {
	form      app.Form
	items     []tasklist.Item
	dark      bool
	confirmed bool
}

func (p *pageSurface) Values() app.Form { return p.form }

func (p *pageSurface) ClearTitle() { p.form.Title = "" }

func (p *pageSurface) Show(items []tasklist.Item) { p.items = items }

func (p *pageSurface) ApplyTheme(dark bool) { p.dark = dark }

// Notify is a no-op; handlers get the error back from the controller.
func (p *pageSurface) Notify(error) {}

func (p *pageSurface) Confirm(_ string, answer func(bool)) { answer(p.confirmed) }

// withController runs fn with a controller bound to surface after loading
// the list through the surface's filter.
func (h *Handlers) withController(ctx context.Context, surface *pageSurface, fn func(*app.Controller) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := app.New(h.store, surface, app.WithDarkMode(h.dark))
	if err := c.Start(ctx); err != nil {
		return err
	}
	if fn != nil {
		if err := fn(c); err != nil {
			return err
		}
	}
	h.dark = c.Dark()
	return nil
}

// filterFromRequest reads the search box and filter dropdowns.
func filterFromRequest(r *http.Request) tasklist.Filter {
	return tasklist.Filter{
		Search:   r.FormValue("q"),
		Priority: r.FormValue("filter_priority"),
		Category: r.FormValue("filter_category"),
	}
}

// parseID extracts and parses an integer ID from URL parameters.
func parseID(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	return strconv.ParseInt(idStr, 10, 64)
}

// parseChoices reads the priority and category dropdowns of the add form.
// Empty values fall back to the first option.
func parseChoices(r *http.Request) (models.Priority, models.Category, error) {
	priority := models.Priorities[0]
	if v := r.FormValue("priority"); v != "" {
		p, err := models.ParsePriority(v)
		if err != nil {
			return "", "", err
		}
		priority = p
	}

	category := models.Categories[0]
	if v := r.FormValue("category"); v != "" {
		c, err := models.ParseCategory(v)
		if err != nil {
			return "", "", err
		}
		category = c
	}

	return priority, category, nil
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func respondServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// respondControllerError maps a failed event to a status code: store
// failures are server errors, everything else is a bad request.
func respondControllerError(w http.ResponseWriter, err error) {
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		respondServerError(w, err)
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}

func (h *Handlers) render(w http.ResponseWriter, name string, data interface{}) {
	if h.templates == nil {
		// For testing without templates
		w.WriteHeader(http.StatusOK)
		return
	}
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		respondServerError(w, err)
	}
}
