// Package storage persists one TaskManager per tracking day.
package storage

import (
	"context"

	"tasklog/internal/calendar"
	"tasklog/internal/domain"
)

// DayStore loads and saves the tasks of a single day.
//
// Load returns an empty manager when nothing is stored for the date. Stored
// data that breaks the task invariants fails with a deserialization error.
// Save replaces the whole day. Concurrent writers are not coordinated; the
// last Save wins.
type DayStore interface {
	Load(ctx context.Context, date calendar.Date) (*domain.TaskManager, error)
	Save(ctx context.Context, date calendar.Date, m *domain.TaskManager) error
	// Days lists the dates that have stored tasks, ascending.
	Days(ctx context.Context) ([]calendar.Date, error)
	Close() error
}
