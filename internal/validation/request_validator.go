package validation

import (
	"fmt"
	"math"
	"time"

	"tasklog/internal/calendar"
)

// MaxStopMinutes is the largest minute count a time.Duration can hold.
const MaxStopMinutes = int64(math.MaxInt64 / int64(time.Minute))

// RequestValidator checks stop options and report date ranges.
type RequestValidator struct{}

// NewRequestValidator creates a new request validator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// ValidateStop checks that a backdated stop carries a duration, that the
// duration is not negative, and that the date is not after today.
func (rv *RequestValidator) ValidateStop(date *calendar.Date, duration *time.Duration, today calendar.Date) error {
	validationError := NewValidationError()

	if duration != nil && *duration < 0 {
		validationError.AddInvalidValueError("duration", *duration, "must not be negative")
	}
	if date != nil {
		if duration == nil {
			validationError.AddRequiredError("duration")
		}
		if date.After(today) {
			validationError.AddInvalidRangeError("date", *date, "must not be after today")
		}
	}

	return validationError.result()
}

// StopDuration converts a user supplied minute count into a duration.
// Counts must be whole, non-negative and no larger than MaxStopMinutes.
func (rv *RequestValidator) StopDuration(minutes float64) (time.Duration, error) {
	validationError := NewValidationError()
	switch {
	case math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes != math.Trunc(minutes):
		validationError.AddInvalidValueError("duration", minutes, "must be a whole number of minutes")
	case minutes < 0:
		validationError.AddInvalidValueError("duration", minutes, "must not be negative")
	case minutes > float64(MaxStopMinutes):
		validationError.AddInvalidRangeError("duration", minutes, fmt.Sprintf("must not exceed %d minutes", MaxStopMinutes))
	}
	if err := validationError.result(); err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

// ValidateDateRange rejects ranges whose end lies before their start.
func (rv *RequestValidator) ValidateDateRange(from, to calendar.Date) error {
	validationError := NewValidationError()
	if to.Before(from) {
		validationError.AddInvalidRangeError("to", to, "must not be before from")
	}
	return validationError.result()
}
