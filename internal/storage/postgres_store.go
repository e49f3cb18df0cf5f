package storage

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tasklog/internal/calendar"
	"tasklog/internal/domain"
	"tasklog/internal/errors"
	"tasklog/internal/logging"
)

// postgresSchemaDDL stores each day as the same JSON document the JSON store
// writes to disk.
const postgresSchemaDDL = `
CREATE TABLE IF NOT EXISTS task_days (
    day DATE PRIMARY KEY,
    state JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresStore keeps days in a task_days table. A connection is opened per
// call, which is plenty for a command that runs one operation and exits.
type PostgresStore struct {
	connString string
}

// NewPostgresStore creates the store and makes sure the schema exists.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	store := &PostgresStore{connString: connString}
	if err := store.ensureSchema(ctx); err != nil {
		return nil, errors.NewDatabaseError("initialize postgres schema", err)
	}
	return store, nil
}

func (s *PostgresStore) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, s.connString)
	if err != nil {
		return nil, errors.NewDatabaseError("connect to postgres", err)
	}
	return conn, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(ctx) }()

	if _, err := conn.Exec(ctx, postgresSchemaDDL); err != nil {
		return fmt.Errorf("failed to execute schema DDL: %w", err)
	}
	return nil
}

// Load reads and decodes the document stored for date.
func (s *PostgresStore) Load(ctx context.Context, date calendar.Date) (*domain.TaskManager, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close(ctx) }()

	var state []byte
	err = conn.QueryRow(ctx, `SELECT state FROM task_days WHERE day = $1::date`, date.String()).Scan(&state)
	if stderrors.Is(err, pgx.ErrNoRows) {
		logging.Debugf("postgres store: no row for %s\n", date)
		return domain.NewTaskManager(), nil
	}
	if err != nil {
		return nil, errors.NewDatabaseError("load day "+date.String(), err)
	}
	return domain.DecodeTaskManager(state)
}

// Save upserts the document for date. An empty manager removes the row.
func (s *PostgresStore) Save(ctx context.Context, date calendar.Date, m *domain.TaskManager) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(ctx) }()

	if m.IsEmpty() {
		if _, err := conn.Exec(ctx, `DELETE FROM task_days WHERE day = $1::date`, date.String()); err != nil {
			return errors.NewDatabaseError("clear day "+date.String(), err)
		}
		return nil
	}

	state, err := m.MarshalJSON()
	if err != nil {
		return errors.NewDatabaseError("encode day "+date.String(), err)
	}
	_, err = conn.Exec(ctx, `
		INSERT INTO task_days (day, state) VALUES ($1::date, $2::jsonb)
		ON CONFLICT (day) DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		date.String(), string(state))
	if err != nil {
		return errors.NewDatabaseError("save day "+date.String(), err)
	}
	logging.Debugf("postgres store: saved %s\n", date)
	return nil
}

// Days lists the stored days.
func (s *PostgresStore) Days(ctx context.Context) ([]calendar.Date, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close(ctx) }()

	rows, err := conn.Query(ctx, `SELECT to_char(day, 'YYYY-MM-DD') FROM task_days ORDER BY day`)
	if err != nil {
		return nil, errors.NewDatabaseError("list days", err)
	}
	raw, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.NewDatabaseError("list days", err)
	}

	days := make([]calendar.Date, 0, len(raw))
	for _, day := range raw {
		date, err := calendar.ParseDate(day)
		if err != nil {
			return nil, err
		}
		days = append(days, date)
	}
	return days, nil
}

// Close is a no-op; connections are per call.
func (s *PostgresStore) Close() error {
	return nil
}
