package validation

// TaskValidator checks task names and lookup queries.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithLimits creates a task validator with custom limits
func NewTaskValidatorWithLimits(limits Limits) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithLimits(limits)}
}

// ValidateTaskName validates a name that is about to be stored
func (tv *TaskValidator) ValidateTaskName(name string) error {
	return tv.validateName("task_name", name)
}

// ValidateQuery validates a substring used to look a task up
func (tv *TaskValidator) ValidateQuery(query string) error {
	validationError := NewValidationError()
	if !tv.validator.IsNonEmptyString(query) {
		validationError.AddRequiredError("task")
	}
	return validationError.result()
}

// GetValidTaskName returns the trimmed name if it is valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimString(name), nil
}

// GetValidQuery returns the trimmed query if it is valid
func (tv *TaskValidator) GetValidQuery(query string) (string, error) {
	if err := tv.ValidateQuery(query); err != nil {
		return "", err
	}
	return tv.validator.TrimString(query), nil
}

func (tv *TaskValidator) validateName(field, name string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimString(name)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError(field)
		return validationError.result()
	}

	if !tv.validator.IsValidTaskNameLength(trimmed) {
		validationError.AddInvalidLengthError(field, trimmed, tv.validator.MaxTaskNameLength())
	}
	if !tv.validator.HasNoControlCharacters(trimmed) {
		validationError.AddInvalidCharacterError(field, trimmed)
	}

	return validationError.result()
}
