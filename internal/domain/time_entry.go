package domain

import (
	"fmt"
	"time"
)

// TimeEntry is a closed interval of work on a task.
// Its start is never after its end.
type TimeEntry struct {
	start time.Time
	end   time.Time
}

// NewTimeEntry creates a closed entry. It panics if start is after end.
func NewTimeEntry(start, end time.Time) TimeEntry {
	if start.After(end) {
		panic(fmt.Sprintf("domain: time entry start %s is after end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}
	return TimeEntry{start: start, end: end}
}

// Start returns when the entry began.
func (te TimeEntry) Start() time.Time {
	return te.start
}

// End returns when the entry finished.
func (te TimeEntry) End() time.Time {
	return te.end
}

// Duration returns end minus start.
func (te TimeEntry) Duration() time.Duration {
	return te.end.Sub(te.start)
}

// OngoingTimeEntry is an entry that has started but not yet finished.
type OngoingTimeEntry struct {
	start time.Time
}

// NewOngoingTimeEntry starts an entry at start.
func NewOngoingTimeEntry(start time.Time) OngoingTimeEntry {
	return OngoingTimeEntry{start: start}
}

// Start returns when the entry began.
func (oe OngoingTimeEntry) Start() time.Time {
	return oe.start
}

// Duration returns the time elapsed between start and now.
// It panics if now is before start.
func (oe OngoingTimeEntry) Duration(now time.Time) time.Duration {
	if now.Before(oe.start) {
		panic(fmt.Sprintf("domain: now %s is before entry start %s",
			now.Format(time.RFC3339), oe.start.Format(time.RFC3339)))
	}
	return now.Sub(oe.start)
}

// Complete closes the entry at end. It panics if end is before start.
func (oe OngoingTimeEntry) Complete(end time.Time) TimeEntry {
	return NewTimeEntry(oe.start, end)
}
