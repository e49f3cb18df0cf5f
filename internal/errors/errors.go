package errors

import (
	"errors"
	"fmt"
)

// Codes for the task collection errors. Each one is exported as a sentinel
// below so callers can match with errors.Is regardless of the task name
// carried in the message.
const (
	CodeTaskAlreadyRunning    = "TASK_ALREADY_RUNNING"
	CodeTaskNotRunning        = "TASK_NOT_RUNNING"
	CodeNoTasksFound          = "NO_TASKS_FOUND"
	CodeTaskNotFound          = "TASK_NOT_FOUND"
	CodeTaskAlreadyExists     = "TASK_ALREADY_EXISTS"
	CodeMultipleTasksFound    = "MULTIPLE_TASKS_FOUND"
	CodeInvalidStopTime       = "INVALID_STOP_TIME"
	CodeInvalidStartTime      = "INVALID_START_TIME"
	CodeDeserializationFailed = "DESERIALIZATION_FAILED"
	CodeConfigInvalid         = "CONFIG_INVALID"
)

var (
	ErrTaskAlreadyRunning = &AppError{Type: ErrorTypeConflict, Code: CodeTaskAlreadyRunning}
	ErrTaskNotRunning     = &AppError{Type: ErrorTypeState, Code: CodeTaskNotRunning}
	ErrNoTasksFound       = &AppError{Type: ErrorTypeNotFound, Code: CodeNoTasksFound}
	ErrTaskNotFound       = &AppError{Type: ErrorTypeNotFound, Code: CodeTaskNotFound}
	ErrTaskAlreadyExists  = &AppError{Type: ErrorTypeConflict, Code: CodeTaskAlreadyExists}
	ErrMultipleTasksFound = &AppError{Type: ErrorTypeConflict, Code: CodeMultipleTasksFound}
	ErrInvalidStopTime    = &AppError{Type: ErrorTypeInvalidInput, Code: CodeInvalidStopTime}
	ErrInvalidStartTime   = &AppError{Type: ErrorTypeInvalidInput, Code: CodeInvalidStartTime}
	ErrDeserialization    = &AppError{Type: ErrorTypeDeserialization, Code: CodeDeserializationFailed}
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTaskAlreadyRunningError reports that name is already being tracked.
func NewTaskAlreadyRunningError(name string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: fmt.Sprintf("task already running: %s", name),
		Code:    CodeTaskAlreadyRunning,
		Context: map[string]interface{}{"task": name},
	}
}

// NewTaskNotRunningError reports that an operation needed a running task.
func NewTaskNotRunningError() *AppError {
	return &AppError{
		Type:    ErrorTypeState,
		Message: "no task is currently running",
		Code:    CodeTaskNotRunning,
		Context: make(map[string]interface{}),
	}
}

// NewNoTasksFoundError reports that there is no stopped task to pick up.
func NewNoTasksFoundError() *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: "no tasks found",
		Code:    CodeNoTasksFound,
		Context: make(map[string]interface{}),
	}
}

// NewTaskNotFoundError reports that no task matched query.
func NewTaskNotFoundError(query string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("task not found: %s", query),
		Code:    CodeTaskNotFound,
		Context: map[string]interface{}{"task": query},
	}
}

// NewTaskAlreadyExistsError reports a duplicate task name.
func NewTaskAlreadyExistsError(name string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: fmt.Sprintf("task already exists: %s", name),
		Code:    CodeTaskAlreadyExists,
		Context: map[string]interface{}{"task": name},
	}
}

// NewMultipleTasksFoundError reports an ambiguous task query.
func NewMultipleTasksFoundError(query string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: fmt.Sprintf("multiple tasks found matching: %s", query),
		Code:    CodeMultipleTasksFound,
		Context: map[string]interface{}{"task": query},
	}
}

// NewInvalidStopTimeError reports a stop time before the running entry started
// or beyond the current time.
func NewInvalidStopTimeError() *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: "invalid stop time",
		Code:    CodeInvalidStopTime,
		Context: make(map[string]interface{}),
	}
}

// NewInvalidStartTimeError reports a start time before the task last stopped.
func NewInvalidStartTimeError() *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: "invalid start time",
		Code:    CodeInvalidStartTime,
		Context: make(map[string]interface{}),
	}
}

// NewDeserializationError reports stored state that violates the task invariants.
func NewDeserializationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDeserialization,
		Message: message,
		Code:    CodeDeserializationFailed,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewConfigError wraps a configuration loading or validation failure.
func NewConfigError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Code:    CodeConfigInvalid,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation,
			ErrorTypeNotFound,
			ErrorTypeInvalidInput,
			ErrorTypeConflict,
			ErrorTypeState,
			ErrorTypeConfig:
			return appErr.Message
		case ErrorTypeDeserialization:
			msg := "stored task data is corrupted: " + appErr.Message
			if path, ok := appErr.GetContext("path"); ok {
				msg += fmt.Sprintf(" (%v)", path)
			}
			return msg
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput,
			ErrorTypeConflict, ErrorTypeState:
			return false // user errors
		default:
			return true
		}
	}
	return true
}
