package handlers

import (
	"net/http"
	"net/url"

	"todolist/internal/app"
	"todolist/internal/models"
	"todolist/internal/tasklist"
)

// PageData holds data for the page and list templates.
type PageData struct {
	Title           string
	Items           []tasklist.Item
	Filter          tasklist.Filter
	Dark            bool
	Priorities      []models.Priority
	Categories      []models.Category
	PriorityOptions []string
	CategoryOptions []string
}

func newPageData(surface *pageSurface) PageData {
	return PageData{
		Title:           "To-Do List",
		Items:           surface.items,
		Filter:          surface.form.Filter,
		Dark:            surface.dark,
		Priorities:      models.Priorities,
		Categories:      models.Categories,
		PriorityOptions: tasklist.PriorityOptions(),
		CategoryOptions: tasklist.CategoryOptions(),
	}
}

// Home renders the full page with the list filtered by the query string.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	surface := &pageSurface{form: app.Form{Filter: filterFromRequest(r)}}

	if err := h.withController(r.Context(), surface, nil); err != nil {
		respondControllerError(w, err)
		return
	}

	h.render(w, "home.html", newPageData(surface))
}

// ListTasks renders only the task list, for search and filter changes.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	surface := &pageSurface{form: app.Form{Filter: filterFromRequest(r)}}

	if err := h.withController(r.Context(), surface, nil); err != nil {
		respondControllerError(w, err)
		return
	}

	h.render(w, "task_list.html", newPageData(surface))
}

// ToggleTheme flips the theme and sends the browser back to the page with
// its filters intact.
func (h *Handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	surface := &pageSurface{form: app.Form{Filter: filterFromRequest(r)}}

	err := h.withController(r.Context(), surface, func(c *app.Controller) error {
		return c.ToggleTheme(r.Context())
	})
	if err != nil {
		respondControllerError(w, err)
		return
	}

	http.Redirect(w, r, "/?"+filterQuery(surface.form.Filter).Encode(), http.StatusSeeOther)
}

func filterQuery(f tasklist.Filter) url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("q", f.Search)
	}
	if f.Priority != "" {
		v.Set("filter_priority", f.Priority)
	}
	if f.Category != "" {
		v.Set("filter_category", f.Category)
	}
	return v
}
