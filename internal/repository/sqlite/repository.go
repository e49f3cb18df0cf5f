package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"tasklog/internal/errors"
	"tasklog/internal/logging"
	"tasklog/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// LoadDay returns the day's tasks ordered by position, each with its
	// entries in order. A day with no rows yields an empty slice.
	LoadDay(ctx context.Context, day string) ([]DayTask, error)
	// ReplaceDay overwrites every row of the day in a single transaction.
	ReplaceDay(ctx context.Context, day string, tasks []DayTask) error
	// ListDays returns every day that has at least one task, ascending.
	ListDays(ctx context.Context) ([]string, error)
	// DeleteDay removes the day's rows; it fails with a not-found error when
	// there are none.
	DeleteDay(ctx context.Context, day string) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and brings its
// schema up to date.
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, errors.NewDatabaseError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps per-connection pragmas in effect and makes
	// ":memory:" databases usable.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA journal_mode = WAL"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("configure database", err)
		}
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	versions, err := migrations.AppliedVersions(ctx, db)
	if err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("read schema version", err)
	}
	logging.Debugf("sqlite repository ready at %s (schema versions %v)\n", dbPath, versions)
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// LoadDay loads all tasks and time entries recorded for day.
func (r *SQLiteRepository) LoadDay(ctx context.Context, day string) ([]DayTask, error) {
	tasks, err := queryAll(ctx, r.db, `
	SELECT id, day, position, task_name, running
	FROM tasks
	WHERE day = ?
	ORDER BY position ASC`, ScanTasks, "tasks", day)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []DayTask{}, nil
	}

	entries, err := queryAll(ctx, r.db, `
	SELECT e.id, e.task_id, e.position, e.start_time, e.end_time
	FROM time_entries e
	JOIN tasks t ON t.id = e.task_id
	WHERE t.day = ?
	ORDER BY e.task_id ASC, e.position ASC`, ScanTimeEntries, "time entries", day)
	if err != nil {
		return nil, err
	}

	byTask := make(map[int64][]TimeEntry, len(tasks))
	for _, entry := range entries {
		byTask[entry.TaskID] = append(byTask[entry.TaskID], *entry)
	}

	result := make([]DayTask, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, DayTask{Task: *task, Entries: byTask[task.ID]})
	}
	return result, nil
}

// ReplaceDay deletes the day's rows and inserts tasks in their place. The
// whole replacement commits or rolls back as one unit.
func (r *SQLiteRepository) ReplaceDay(ctx context.Context, day string, tasks []DayTask) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDBError("begin transaction", err)
	}

	if err := replaceDay(ctx, tx, day, tasks); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapDBError("commit day", err)
	}
	logging.Debugf("sqlite: saved %d task(s) for %s\n", len(tasks), day)
	return nil
}

func replaceDay(ctx context.Context, tx DBTX, day string, tasks []DayTask) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM time_entries WHERE task_id IN (SELECT id FROM tasks WHERE day = ?)`, day); err != nil {
		return wrapDBError("delete time entries", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE day = ?`, day); err != nil {
		return wrapDBError("delete tasks", err)
	}

	for i := range tasks {
		task := tasks[i].Task
		task.Day = day
		taskID, err := createTask(ctx, tx, &task)
		if err != nil {
			return err
		}
		for j := range tasks[i].Entries {
			entry := tasks[i].Entries[j]
			entry.TaskID = taskID
			if err := createTimeEntry(ctx, tx, &entry); err != nil {
				return err
			}
		}
	}
	return nil
}

func createTask(ctx context.Context, db DBTX, task *Task) (int64, error) {
	running := 0
	if task.Running {
		running = 1
	}
	id, err := insertReturningID(ctx, db,
		`INSERT INTO tasks (day, position, task_name, running) VALUES (?, ?, ?, ?)`,
		task.Day, task.Position, task.TaskName, running)
	if err != nil {
		return 0, err
	}
	task.ID = id
	return id, nil
}

func createTimeEntry(ctx context.Context, db DBTX, entry *TimeEntry) error {
	id, err := insertReturningID(ctx, db, `
	INSERT INTO time_entries (task_id, position, start_time, end_time)
	VALUES (?, ?, ?, ?)`,
		entry.TaskID, entry.Position, FormatTimeForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime))
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

// ListDays returns the distinct days that have stored tasks.
func (r *SQLiteRepository) ListDays(ctx context.Context) ([]string, error) {
	days, err := queryAll(ctx, r.db,
		`SELECT DISTINCT day FROM tasks ORDER BY day ASC`, ScanDays, "days")
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(days))
	for _, day := range days {
		result = append(result, *day)
	}
	return result, nil
}

// DeleteDay deletes a day's tasks and their entries.
func (r *SQLiteRepository) DeleteDay(ctx context.Context, day string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM time_entries WHERE task_id IN (SELECT id FROM tasks WHERE day = ?)`, day); err != nil {
		return wrapDBError("delete time entries", err)
	}
	return execExpectingRows(ctx, r.db, `DELETE FROM tasks WHERE day = ?`, "day", day, day)
}
