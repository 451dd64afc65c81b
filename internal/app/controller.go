// Package app is the interaction controller between a front-end and the
// task store.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"todolist/internal/models"
	"todolist/internal/store"
	"todolist/internal/tasklist"
)

// Controller turns front-end events into store calls and list refreshes.
//
// A Controller handles one event at a time and is not safe for concurrent
// use; front-ends with concurrent callers must serialize Dispatch.
type Controller struct {
	store    store.Store
	surface  Surface
	logger   *slog.Logger
	handlers map[EventName]handlerFunc

	dark bool
	list *tasklist.List
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for failed events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithDarkMode sets the initial theme.
func WithDarkMode(dark bool) Option {
	return func(c *Controller) { c.dark = dark }
}

// New creates a controller for s that drives surface.
func New(s store.Store, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		store:   s,
		surface: surface,
		logger:  slog.Default(),
		list:    tasklist.Build(nil, tasklist.Filter{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.handlers = c.routes()
	return c
}

// Start applies the initial theme and loads the list.
func (c *Controller) Start(ctx context.Context) error {
	c.surface.ApplyTheme(c.dark)
	return c.Load(ctx)
}

// Dark reports whether the dark theme is on.
func (c *Controller) Dark() bool { return c.dark }

// SetDarkMode switches to the given theme if it differs from the current one.
func (c *Controller) SetDarkMode(dark bool) {
	if c.dark == dark {
		return
	}
	c.dark = dark
	c.surface.ApplyTheme(dark)
}

// Items returns the currently displayed items.
func (c *Controller) Items() []tasklist.Item { return c.list.Items() }

func (c *Controller) refresh(ctx context.Context) error {
	tasks, err := c.store.ListTasks(ctx)
	if err != nil {
		return err
	}
	c.list = tasklist.Build(tasks, c.surface.Values().Filter)
	c.surface.Show(c.list.Items())
	return nil
}

func (c *Controller) add(ctx context.Context, _ Event) error {
	form := c.surface.Values()
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil
	}

	task := &models.Task{
		Title:    title,
		Priority: form.Priority,
		Category: form.Category,
		Position: c.list.Len(),
	}
	if task.Priority == "" {
		task.Priority = models.Priorities[0]
	}
	if task.Category == "" {
		task.Category = models.Categories[0]
	}

	if err := c.store.AddTask(ctx, task); err != nil {
		return err
	}
	c.logger.Info("task added", "id", task.ID, "position", task.Position)

	c.surface.ClearTitle()
	return c.refresh(ctx)
}

func (c *Controller) confirmDelete(ctx context.Context, ev Event) error {
	item, ok := c.list.Find(ev.TaskID)
	if !ok {
		return nil
	}

	var (
		result  error
		waiting = true
	)
	c.surface.Confirm(fmt.Sprintf("Delete %q?", item.Title), func(yes bool) {
		if !yes {
			return
		}
		err := c.remove(ctx, item.ID)
		if waiting {
			result = err
			return
		}
		if err != nil {
			c.fail(ev, err)
		}
	})
	waiting = false

	return result
}

func (c *Controller) remove(ctx context.Context, id int64) error {
	if err := c.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	c.logger.Info("task deleted", "id", id)
	return c.refresh(ctx)
}

func (c *Controller) reorder(ctx context.Context, ev Event) error {
	var err error
	if ev.Order != nil {
		err = c.list.Arrange(ev.Order)
	} else {
		err = c.list.Move(ev.From, ev.To)
	}
	if err != nil {
		return err
	}

	if err := c.persistOrder(ctx); err != nil {
		return err
	}
	return c.refresh(ctx)
}

// persistOrder writes positions for the displayed order. Without a filter
// every displayed task gets its index. With a filter the visible tasks are
// merged back into the full order so that hidden tasks keep their relative
// place, and all tasks are renumbered from zero.
func (c *Controller) persistOrder(ctx context.Context) error {
	ids := c.list.IDs()

	if !c.list.Filter().Active() {
		for i, id := range ids {
			if err := c.store.UpdatePosition(ctx, id, i); err != nil {
				return err
			}
		}
		return nil
	}

	all, err := c.store.ListTasks(ctx)
	if err != nil {
		return err
	}
	current := make(map[int64]int, len(all))
	for _, t := range all {
		current[t.ID] = t.Position
	}
	for i, id := range tasklist.MergeOrder(all, ids) {
		if current[id] == i {
			continue
		}
		if err := c.store.UpdatePosition(ctx, id, i); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) toggleTheme(_ context.Context, _ Event) error {
	c.dark = !c.dark
	c.surface.ApplyTheme(c.dark)
	return nil
}

// Load refreshes the list from the store.
func (c *Controller) Load(ctx context.Context) error {
	return c.Dispatch(ctx, Event{Name: EventLoad})
}

// Add creates a task from the form fields.
func (c *Controller) Add(ctx context.Context) error {
	return c.Dispatch(ctx, Event{Name: EventAdd})
}

// Delete asks for confirmation and deletes the displayed task id.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	return c.Dispatch(ctx, Event{Name: EventItemDoubleClicked, TaskID: id})
}

// Move drags the displayed row at from to index to and saves the order.
func (c *Controller) Move(ctx context.Context, from, to int) error {
	return c.Dispatch(ctx, Event{Name: EventItemMoved, From: from, To: to})
}

// Arrange saves a new display order given as task ids.
func (c *Controller) Arrange(ctx context.Context, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	return c.Dispatch(ctx, Event{Name: EventItemMoved, Order: ids})
}

// ToggleTheme flips between dark and default styling.
func (c *Controller) ToggleTheme(ctx context.Context) error {
	return c.Dispatch(ctx, Event{Name: EventThemeToggled})
}
