package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "tasklog/internal/errors"
)

// MockResult implements sql.Result for testing
type MockResult struct {
	lastInsertID int64
	rowsAffected int64
	insertErr    error
	rowsErr      error
}

func (mr *MockResult) LastInsertId() (int64, error) {
	return mr.lastInsertID, mr.insertErr
}

func (mr *MockResult) RowsAffected() (int64, error) {
	return mr.rowsAffected, mr.rowsErr
}

func TestWrapDBError(t *testing.T) {
	originalErr := errors.New("database is locked")
	result := wrapDBError("save day", originalErr)

	assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeDatabase))
	assert.Contains(t, result.Error(), "save day")
	assert.ErrorIs(t, result, originalErr)
}

func TestRequireRows(t *testing.T) {
	tests := []struct {
		name      string
		result    sql.Result
		wantType  *apperrors.ErrorType
		wantInMsg string
	}{
		{
			name:   "rows deleted",
			result: &MockResult{rowsAffected: 3},
		},
		{
			name:      "nothing matched",
			result:    &MockResult{},
			wantType:  ptr(apperrors.ErrorTypeNotFound),
			wantInMsg: "day not found: 2024-07-16",
		},
		{
			name:      "driver failure",
			result:    &MockResult{rowsErr: errors.New("driver error")},
			wantType:  ptr(apperrors.ErrorTypeDatabase),
			wantInMsg: "driver error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireRows(tt.result, "day", "2024-07-16")
			if tt.wantType == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsErrorType(err, *tt.wantType))
			assert.Contains(t, err.Error(), tt.wantInMsg)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
