package models

import (
	"errors"
	"fmt"
	"strings"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the valid priorities in the order front-ends offer them.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Category groups tasks by area of life.
type Category string

const (
	CategoryGeneral  Category = "General"
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryReminder Category = "Reminder"
	CategoryIdea     Category = "Idea"
)

// Categories lists the valid categories in the order front-ends offer them.
var Categories = []Category{
	CategoryGeneral,
	CategoryWork,
	CategoryPersonal,
	CategoryReminder,
	CategoryIdea,
}

// ColorHint tells a front-end how to tint a task row.
type ColorHint string

const (
	ColorAlert   ColorHint = "alert"
	ColorCaution ColorHint = "caution"
	ColorNormal  ColorHint = "normal"
)

// Hex returns the RGB color used for the hint.
func (c ColorHint) Hex() string {
	switch c {
	case ColorAlert:
		return "#ff0000"
	case ColorCaution:
		return "#808000"
	default:
		return "#008000"
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// ColorHint derives the row color from the priority alone.
func (p Priority) ColorHint() ColorHint {
	switch p {
	case PriorityHigh:
		return ColorAlert
	case PriorityMedium:
		return ColorCaution
	default:
		return ColorNormal
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ParsePriority matches s case-insensitively against the known priorities.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// ParseCategory matches s case-insensitively against the known categories.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Task represents a single to-do entry.
type Task struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	Category Category `json:"category"`
	Position int      `json:"position"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}

	if !t.Priority.Valid() {
		return errors.New("priority must be 'Low', 'Medium', or 'High'")
	}

	if !t.Category.Valid() {
		return errors.New("category must be 'General', 'Work', 'Personal', 'Reminder', or 'Idea'")
	}

	return nil
}

// Label is the one-line text shown for the task in a list.
func (t *Task) Label() string {
	return fmt.Sprintf("%s [%s | %s]", t.Title, t.Priority, t.Category)
}
