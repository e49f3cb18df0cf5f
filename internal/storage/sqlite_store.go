package storage

import (
	"context"

	"tasklog/internal/calendar"
	"tasklog/internal/domain"
	"tasklog/internal/errors"
	"tasklog/internal/logging"
	"tasklog/internal/repository/sqlite"
)

// SQLiteStore keeps days in the normalised tasks and time_entries tables.
type SQLiteStore struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

// NewSQLiteStore wraps an open repository. The store owns repo and closes
// it in Close.
func NewSQLiteStore(repo sqlite.Repository) *SQLiteStore {
	return &SQLiteStore{repo: repo, mapper: domain.NewMapper()}
}

// OpenSQLiteStore opens (creating and migrating if needed) the database at
// path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	repo, err := sqlite.New(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(repo), nil
}

// Load reads the rows for date and re-validates them.
func (s *SQLiteStore) Load(ctx context.Context, date calendar.Date) (*domain.TaskManager, error) {
	rows, err := s.repo.LoadDay(ctx, date.String())
	if err != nil {
		return nil, err
	}
	return s.mapper.FromDatabase(rows)
}

// Save replaces the rows for date. An empty manager removes the day.
func (s *SQLiteStore) Save(ctx context.Context, date calendar.Date, m *domain.TaskManager) error {
	if m.IsEmpty() {
		err := s.repo.DeleteDay(ctx, date.String())
		if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return err
		}
		logging.Debugf("sqlite store: cleared %s\n", date)
		return nil
	}
	return s.repo.ReplaceDay(ctx, date.String(), s.mapper.ToDatabase(date.String(), m))
}

// Days lists the stored days.
func (s *SQLiteStore) Days(ctx context.Context) ([]calendar.Date, error) {
	raw, err := s.repo.ListDays(ctx)
	if err != nil {
		return nil, err
	}
	days := make([]calendar.Date, 0, len(raw))
	for _, day := range raw {
		date, err := calendar.ParseDate(day)
		if err != nil {
			return nil, errors.NewDeserializationError("stored day is not a date: "+day, err)
		}
		days = append(days, date)
	}
	return days, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.repo.Close()
}
