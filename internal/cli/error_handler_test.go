package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "tasklog/internal/errors"
	"tasklog/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "validation error",
			operation: "start task",
			err:       apperrors.NewValidationError("task_name is required", nil),
			expected:  "failed to start task: task_name is required",
		},
		{
			name:      "task not found",
			operation: "resume task",
			err:       apperrors.NewTaskNotFoundError("xyz"),
			expected:  "failed to resume task: " + apperrors.NewTaskNotFoundError("xyz").Message,
		},
		{
			name:      "state error",
			operation: "stop task",
			err:       apperrors.NewTaskNotRunningError(),
			expected:  "failed to stop task: " + apperrors.NewTaskNotRunningError().Message,
		},
		{
			name:      "database error hides details",
			operation: "list tasks",
			err:       apperrors.NewDatabaseError("query", errors.New("timeout")),
			expected:  "failed to list tasks: A database error occurred. Please try again.",
		},
		{
			name:      "corrupted data",
			operation: "generate report",
			err:       apperrors.NewDeserializationError("task \"a\": missing start", nil),
			expected:  "failed to generate report: stored task data is corrupted: task \"a\": missing start",
		},
		{
			name:      "regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleKeepsCause(t *testing.T) {
	eh := NewErrorHandler()
	cause := errors.New("boom")

	err := eh.Handle("process", cause)
	assert.ErrorIs(t, err, cause)
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.AddRequiredError("task")

	assert.True(t, eh.IsValidationError(ve))
	assert.True(t, eh.IsValidationError(ve.AppError()))
	assert.False(t, eh.IsValidationError(errors.New("x")))

	assert.True(t, eh.IsNotFoundError(apperrors.NewNoTasksFoundError()))
	assert.False(t, eh.IsNotFoundError(apperrors.NewTaskNotRunningError()))

	assert.Equal(t, apperrors.CodeTaskNotRunning, eh.GetErrorCode(apperrors.NewTaskNotRunningError()))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(errors.New("x")))
}
