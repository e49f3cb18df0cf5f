package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTaskNameMaxLength bounds task names in characters.
const DefaultTaskNameMaxLength = 255

// Limits tunes the Validator.
type Limits struct {
	TaskNameMaxLength int
}

// DefaultLimits returns the limits used by NewValidator.
func DefaultLimits() Limits {
	return Limits{TaskNameMaxLength: DefaultTaskNameMaxLength}
}

// Validator provides common validation utilities
type Validator struct {
	limits Limits
}

// NewValidator creates a validator with the default limits
func NewValidator() *Validator {
	return NewValidatorWithLimits(DefaultLimits())
}

// NewValidatorWithLimits creates a validator; non-positive limits fall back
// to the defaults.
func NewValidatorWithLimits(limits Limits) *Validator {
	if limits.TaskNameMaxLength <= 0 {
		limits.TaskNameMaxLength = DefaultTaskNameMaxLength
	}
	return &Validator{limits: limits}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTaskNameLength counts characters, not bytes.
func (v *Validator) IsValidTaskNameLength(name string) bool {
	return utf8.RuneCountInString(name) <= v.limits.TaskNameMaxLength
}

// HasNoControlCharacters rejects names that would break line-oriented output.
func (v *Validator) HasNoControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

// MaxTaskNameLength returns the configured limit
func (v *Validator) MaxTaskNameLength() int {
	return v.limits.TaskNameMaxLength
}

// TrimString trims surrounding whitespace
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}
