package store

import (
	"context"
	"fmt"

	"todolist/internal/models"
)

// Store defines the interface for task persistence operations.
//
// Every mutation commits on its own; there are no transactions spanning
// several calls.
type Store interface {
	AddTask(ctx context.Context, task *models.Task) error
	ListTasks(ctx context.Context) ([]models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	UpdatePosition(ctx context.Context, id int64, position int) error

	// Lifecycle
	Close() error
}

// Error is returned when the underlying database fails.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	return &Error{Op: op, Err: err}
}
