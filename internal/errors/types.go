package errors

import "fmt"

// ErrorType groups errors by how a caller reacts to them.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeConflict
	ErrorTypeState
	ErrorTypeDeserialization
	ErrorTypeConfig
)

var typeNames = [...]string{
	ErrorTypeValidation:      "validation",
	ErrorTypeNotFound:        "not_found",
	ErrorTypeDatabase:        "database",
	ErrorTypeInvalidInput:    "invalid_input",
	ErrorTypeConflict:        "conflict",
	ErrorTypeState:           "state",
	ErrorTypeDeserialization: "deserialization",
	ErrorTypeConfig:          "config",
}

func (et ErrorType) String() string {
	if et < 0 || int(et) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[et]
}

// AppError is a categorised failure with a stable code. Context holds
// structured details such as the task query or the file that failed to load.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]any
}

func (e *AppError) Error() string {
	msg := e.Type.String() + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on type and code only, so a sentinel such as ErrTaskNotFound
// matches every task-not-found error whatever its message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

// IsType reports whether e belongs to errorType.
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records a detail on e and returns e.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = map[string]any{}
	}
	e.Context[key] = value
	return e
}

// GetContext returns the detail stored under key.
func (e *AppError) GetContext(key string) (any, bool) {
	value, ok := e.Context[key]
	return value, ok
}
