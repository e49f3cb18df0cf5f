package calendar

import (
	"fmt"
	"time"

	apperrors "tasklog/internal/errors"
)

// DefaultDayStart is the clock time at which a new tracking day begins.
var DefaultDayStart = DayStart{Hour: 4, Minute: 30}

// DayStart is the wall-clock time at which a tracking day begins.
type DayStart struct {
	Hour   int
	Minute int
}

// ParseDayStart parses an "HH:MM" clock time. Seconds are accepted and
// ignored ("04:30:00").
func ParseDayStart(s string) (DayStart, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DayStart{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return DayStart{}, apperrors.NewConfigError(fmt.Sprintf("invalid day_start %q: expected HH:MM", s), nil)
}

func (ds DayStart) String() string {
	return fmt.Sprintf("%02d:%02d", ds.Hour, ds.Minute)
}

func (ds DayStart) minutes() int {
	return ds.Hour*60 + ds.Minute
}

// Today returns the tracking date that now belongs to. Before the day start
// it is still the previous calendar date.
func Today(now time.Time, ds DayStart) Date {
	today := DateOf(now)
	if now.Hour()*60+now.Minute() < ds.minutes() {
		return today.AddDays(-1)
	}
	return today
}

// DaysAgo returns the tracking date n days before Today(now, ds).
func DaysAgo(now time.Time, ds DayStart, n int) Date {
	return Today(now, ds).AddDays(-n)
}
