package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"todolist/internal/models"
)

const (
	// DriverCGO is the mattn/go-sqlite3 driver.
	DriverCGO = "sqlite3"
	// DriverPure is the modernc.org/sqlite driver, which needs no C toolchain.
	DriverPure = "sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath with the default driver.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	return Open(DriverCGO, dbPath)
}

// Open opens a SQLite database with the named driver and brings its schema
// up to date.
func Open(driver, dbPath string) (*SQLiteStore, error) {
	if driver == "" {
		driver = DriverCGO
	}
	if driver != DriverCGO && driver != DriverPure {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dbPath)
	if err != nil {
		return nil, opError("open database", err)
	}

	// ":memory:" databases exist per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, opError("open database", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Debug("task store opened", "driver", driver, "path", dbPath)
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AddTask inserts a new task and sets its ID.
func (s *SQLiteStore) AddTask(ctx context.Context, task *models.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (title, priority, category, position)
		VALUES (?, ?, ?, ?)
	`, task.Title, string(task.Priority), string(task.Category), task.Position)
	if err != nil {
		return opError("create task", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return opError("get last insert id", err)
	}
	task.ID = id

	return nil
}

// ListTasks retrieves all tasks ordered by position. Tasks sharing a
// position keep insertion order.
func (s *SQLiteStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, priority, category, position
		FROM tasks ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return nil, opError("list tasks", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var (
			task     models.Task
			priority string
			category string
			position sql.NullInt64
		)

		if err := rows.Scan(&task.ID, &task.Title, &priority, &category, &position); err != nil {
			return nil, opError("scan task", err)
		}

		task.Priority = models.Priority(priority)
		task.Category = models.Category(category)
		task.Position = int(position.Int64)

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, opError("list tasks", err)
	}

	return tasks, nil
}

// DeleteTask deletes a task by ID. Deleting an unknown ID is not an error.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return opError("delete task", err)
	}
	return nil
}

// UpdatePosition overwrites the position of one task. Unknown IDs are ignored.
func (s *SQLiteStore) UpdatePosition(ctx context.Context, id int64, position int) error {
	_, err := s.db.ExecContext(ctx, `UPDATE tasks SET position = ? WHERE id = ?`, position, id)
	if err != nil {
		return opError("update task position", err)
	}
	return nil
}
