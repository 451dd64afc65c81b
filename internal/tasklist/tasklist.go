// Package tasklist holds the filtered, ordered projection of tasks that a
// front-end displays.
package tasklist

import (
	"fmt"
	"strings"

	"todolist/internal/models"
)

// Sentinel filter values that disable the priority or category axis.
const (
	AllPriorities = "All priorities"
	AllCategories = "All categories"
)

// Filter is the search and dropdown state a list is projected through.
type Filter struct {
	Search   string
	Priority string
	Category string
}

// Active reports whether the filter can hide any task.
func (f Filter) Active() bool {
	return f.Search != "" || !allPriorities(f.Priority) || !allCategories(f.Category)
}

// Matches is the conjunctive visibility test: the search text is a
// case-insensitive substring of the title or category, and the priority and
// category filters are either "all" or equal to the task's value.
func (f Filter) Matches(t models.Task) bool {
	keyword := strings.ToLower(f.Search)
	if !strings.Contains(strings.ToLower(t.Title), keyword) &&
		!strings.Contains(strings.ToLower(string(t.Category)), keyword) {
		return false
	}
	if !allPriorities(f.Priority) && f.Priority != string(t.Priority) {
		return false
	}
	if !allCategories(f.Category) && f.Category != string(t.Category) {
		return false
	}
	return true
}

// An empty dropdown value counts as the "all" sentinel.
func allPriorities(v string) bool { return v == "" || v == AllPriorities }
func allCategories(v string) bool { return v == "" || v == AllCategories }

// PriorityOptions returns the priority filter choices, sentinel first.
func PriorityOptions() []string {
	opts := []string{AllPriorities}
	for _, p := range models.Priorities {
		opts = append(opts, string(p))
	}
	return opts
}

// CategoryOptions returns the category filter choices, sentinel first.
func CategoryOptions() []string {
	opts := []string{AllCategories}
	for _, c := range models.Categories {
		opts = append(opts, string(c))
	}
	return opts
}

// Item is one displayed row. It carries the backing task id so that events
// on the row can find the task again.
type Item struct {
	ID       int64
	Title    string
	Priority models.Priority
	Category models.Category
	Color    models.ColorHint
	Label    string
}

func newItem(t models.Task) Item {
	return Item{
		ID:       t.ID,
		Title:    t.Title,
		Priority: t.Priority,
		Category: t.Category,
		Color:    t.Priority.ColorHint(),
		Label:    t.Label(),
	}
}

// List is the displayed sequence of items.
type List struct {
	filter Filter
	items  []Item
}

// Build projects tasks, already in store order, through f.
func Build(tasks []models.Task, f Filter) *List {
	l := &List{filter: f, items: make([]Item, 0, len(tasks))}
	for _, t := range tasks {
		if f.Matches(t) {
			l.items = append(l.items, newItem(t))
		}
	}
	return l
}

// Filter returns the filter the list was built with.
func (l *List) Filter() Filter { return l.filter }

// Len returns the number of displayed items.
func (l *List) Len() int { return len(l.items) }

// Items returns a copy of the displayed items, top to bottom.
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Find returns the displayed item with the given task id.
func (l *List) Find(id int64) (Item, bool) {
	for _, it := range l.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// IDs returns the task ids in display order.
func (l *List) IDs() []int64 {
	ids := make([]int64, len(l.items))
	for i, it := range l.items {
		ids[i] = it.ID
	}
	return ids
}

// Move drags the item at index from so that it ends up at index to.
func (l *List) Move(from, to int) error {
	n := len(l.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move %d -> %d out of range for %d items", from, to, n)
	}
	if from == to {
		return nil
	}
	it := l.items[from]
	if from < to {
		copy(l.items[from:to], l.items[from+1:to+1])
	} else {
		copy(l.items[to+1:from+1], l.items[to:from])
	}
	l.items[to] = it
	return nil
}

// Arrange puts the displayed items in the order given by ids, which must be
// a permutation of the displayed ids.
func (l *List) Arrange(ids []int64) error {
	if len(ids) != len(l.items) {
		return fmt.Errorf("arrange: got %d ids for %d displayed items", len(ids), len(l.items))
	}
	byID := make(map[int64]Item, len(l.items))
	for _, it := range l.items {
		byID[it.ID] = it
	}
	arranged := make([]Item, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return fmt.Errorf("arrange: task %d is not displayed", id)
		}
		delete(byID, id)
		arranged = append(arranged, it)
	}
	l.items = arranged
	return nil
}

// MergeOrder returns the ids of all tasks in their new overall order after
// the visible subset was rearranged into visible. Visible tasks take over
// the slots visible tasks held before; hidden tasks keep theirs. Ids in
// visible that are no longer in all are dropped.
func MergeOrder(all []models.Task, visible []int64) []int64 {
	present := make(map[int64]bool, len(all))
	for _, t := range all {
		present[t.ID] = true
	}
	shown := make(map[int64]bool, len(visible))
	queue := make([]int64, 0, len(visible))
	for _, id := range visible {
		if present[id] && !shown[id] {
			shown[id] = true
			queue = append(queue, id)
		}
	}

	order := make([]int64, 0, len(all))
	for _, t := range all {
		if shown[t.ID] {
			order = append(order, queue[0])
			queue = queue[1:]
			continue
		}
		order = append(order, t.ID)
	}
	return order
}
