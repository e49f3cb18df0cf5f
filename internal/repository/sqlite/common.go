package sqlite

import (
	"context"
	"database/sql"

	"tasklog/internal/errors"
)

// DBTX is implemented by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func wrapDBError(operation string, err error) error {
	return errors.NewDatabaseError(operation, err)
}

// requireRows fails with a not-found error for resource key when result
// touched no rows.
func requireRows(result sql.Result, resource, key string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return wrapDBError("count affected rows", err)
	}
	if n == 0 {
		return errors.NewNotFoundError(resource, key)
	}
	return nil
}

// insertReturningID runs an INSERT and returns the new row id.
func insertReturningID(ctx context.Context, db DBTX, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapDBError("insert row", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, wrapDBError("read inserted id", err)
	}
	return id, nil
}

// execExpectingRows runs a statement that must affect at least one row of
// resource key.
func execExpectingRows(ctx context.Context, db DBTX, query, resource, key string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDBError("execute statement", err)
	}
	return requireRows(result, resource, key)
}

// queryAll scans every row returned by query.
func queryAll[T any](ctx context.Context, db DBTX, query string, scan func(Rows) ([]*T, error), resource string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("query "+resource, err)
	}
	defer rows.Close()

	items, err := scan(rows)
	if err != nil {
		return nil, wrapDBError("scan "+resource, err)
	}
	return items, nil
}
