package app

import (
	"context"
	"fmt"
	"sort"
)

// EventName identifies a user interaction a front-end reports.
type EventName string

const (
	EventLoad                  EventName = "load"
	EventAdd                   EventName = "add"
	EventSearchChanged         EventName = "search_changed"
	EventPriorityFilterChanged EventName = "priority_filter_changed"
	EventCategoryFilterChanged EventName = "category_filter_changed"
	EventItemDoubleClicked     EventName = "item_double_clicked"
	EventItemMoved             EventName = "item_moved"
	EventThemeToggled          EventName = "theme_toggled"
)

// Event is a named interaction plus the arguments it needs.
type Event struct {
	Name EventName

	// TaskID is the row an item_double_clicked event happened on.
	TaskID int64

	// An item_moved event either moves one row from From to To, or, when
	// Order is set, rearranges the whole displayed list to that id order.
	From  int
	To    int
	Order []int64
}

func (e Event) String() string {
	switch e.Name {
	case EventItemDoubleClicked:
		return fmt.Sprintf("%s(%d)", e.Name, e.TaskID)
	case EventItemMoved:
		if e.Order != nil {
			return fmt.Sprintf("%s(%v)", e.Name, e.Order)
		}
		return fmt.Sprintf("%s(%d->%d)", e.Name, e.From, e.To)
	default:
		return string(e.Name)
	}
}

type handlerFunc func(ctx context.Context, ev Event) error

func (c *Controller) routes() map[EventName]handlerFunc {
	refresh := func(ctx context.Context, _ Event) error { return c.refresh(ctx) }
	return map[EventName]handlerFunc{
		EventLoad:                  refresh,
		EventAdd:                   c.add,
		EventSearchChanged:         refresh,
		EventPriorityFilterChanged: refresh,
		EventCategoryFilterChanged: refresh,
		EventItemDoubleClicked:     c.confirmDelete,
		EventItemMoved:             c.reorder,
		EventThemeToggled:          c.toggleTheme,
	}
}

// eventNames lists the event names the controller dispatches, sorted.
func (c *Controller) eventNames() []EventName {
	names := make([]EventName, 0, len(c.handlers))
	for name := range c.handlers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Dispatch runs the handler registered for ev.Name. A failure is logged,
// shown on the surface and returned; it is never retried.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	h, ok := c.handlers[ev.Name]
	if !ok {
		return fmt.Errorf("unknown event %q, want one of %v", ev.Name, c.eventNames())
	}

	c.logger.Debug("dispatch", "event", ev.String())
	if err := h(ctx, ev); err != nil {
		c.fail(ev, err)
		return err
	}
	return nil
}

func (c *Controller) fail(ev Event, err error) {
	c.logger.Error("event failed", "event", ev.String(), "error", err)
	c.surface.Notify(err)
}
