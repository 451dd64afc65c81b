package handlers

import (
	"encoding/json"
	"net/http"

	"todolist/internal/app"
)

// CreateTask adds a task from the form and returns the refreshed list.
// A blank title leaves the list unchanged.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	priority, category, err := parseChoices(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	surface := &pageSurface{form: app.Form{
		Title:    r.FormValue("title"),
		Priority: priority,
		Category: category,
		Filter:   filterFromRequest(r),
	}}

	err = h.withController(r.Context(), surface, func(c *app.Controller) error {
		return c.Add(r.Context())
	})
	if err != nil {
		respondControllerError(w, err)
		return
	}

	h.render(w, "task_list.html", newPageData(surface))
}

// DeleteTask deletes a displayed task. The browser asks for confirmation
// and sends confirm=yes; anything else leaves the task in place.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	surface := &pageSurface{
		form:      app.Form{Filter: filterFromRequest(r)},
		confirmed: r.FormValue("confirm") == "yes",
	}

	err = h.withController(r.Context(), surface, func(c *app.Controller) error {
		return c.Delete(r.Context(), id)
	})
	if err != nil {
		respondControllerError(w, err)
		return
	}

	h.render(w, "task_list.html", newPageData(surface))
}

// ReorderTasks saves the order of the displayed tasks after a drag.
func (h *Handlers) ReorderTasks(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		IDs      []int64 `json:"ids"`
		Search   string  `json:"q"`
		Priority string  `json:"filter_priority"`
		Category string  `json:"filter_category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	surface := &pageSurface{}
	surface.form.Filter.Search = payload.Search
	surface.form.Filter.Priority = payload.Priority
	surface.form.Filter.Category = payload.Category

	err := h.withController(r.Context(), surface, func(c *app.Controller) error {
		return c.Arrange(r.Context(), payload.IDs)
	})
	if err != nil {
		respondControllerError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
