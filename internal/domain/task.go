package domain

import (
	"fmt"
	"time"

	apperrors "tasklog/internal/errors"
)

// Task is the behaviour shared by running and stopped tasks.
type Task interface {
	Name() string
	// Entries returns a copy of the closed history, excluding the tail.
	Entries() []TimeEntry
	TimeSpent(now time.Time) time.Duration
	IsRunning() bool
}

var (
	_ Task = RunningTask{}
	_ Task = StoppedTask{}
)

// RunningTask is a task whose last entry is still open.
//
// Invariants: entries are chronological and non-overlapping, and the open
// tail starts no earlier than the end of the last entry.
type RunningTask struct {
	name      string
	entries   []TimeEntry
	lastEntry OngoingTimeEntry
}

// NewRunningTask creates a task with no history that started at now.
func NewRunningTask(name string, now time.Time) RunningTask {
	return RunningTask{name: name, lastEntry: NewOngoingTimeEntry(now)}
}

// RestoreRunningTask rebuilds a running task from stored parts, rejecting
// any that break the ordering invariants.
func RestoreRunningTask(name string, entries []TimeEntry, lastEntry OngoingTimeEntry) (RunningTask, error) {
	if err := checkHistory(name, entries, lastEntry.Start()); err != nil {
		return RunningTask{}, err
	}
	return RunningTask{name: name, entries: cloneEntries(entries), lastEntry: lastEntry}, nil
}

func (t RunningTask) Name() string {
	return t.name
}

func (t RunningTask) Entries() []TimeEntry {
	return cloneEntries(t.entries)
}

// LastEntry returns the open tail.
func (t RunningTask) LastEntry() OngoingTimeEntry {
	return t.lastEntry
}

func (t RunningTask) IsRunning() bool {
	return true
}

// StartTime returns when the open tail began.
func (t RunningTask) StartTime() time.Time {
	return t.lastEntry.Start()
}

// TimeSpent sums the history and the open tail measured up to now.
func (t RunningTask) TimeSpent(now time.Time) time.Duration {
	return sumEntries(t.entries) + t.lastEntry.Duration(now)
}

// Stop closes the tail at end. It panics if end is before StartTime.
func (t RunningTask) Stop(end time.Time) StoppedTask {
	return StoppedTask{
		name:      t.name,
		entries:   cloneEntries(t.entries),
		lastEntry: t.lastEntry.Complete(end),
	}
}

// Rename returns a copy of t called newName.
func (t RunningTask) Rename(newName string) RunningTask {
	t.entries = cloneEntries(t.entries)
	t.name = newName
	return t
}

func (t RunningTask) String() string {
	return t.name
}

// StoppedTask is a task whose entries are all closed.
type StoppedTask struct {
	name      string
	entries   []TimeEntry
	lastEntry TimeEntry
}

// RestoreStoppedTask rebuilds a stopped task from stored parts, rejecting
// any that break the ordering invariants.
func RestoreStoppedTask(name string, entries []TimeEntry, lastEntry TimeEntry) (StoppedTask, error) {
	if lastEntry.Start().After(lastEntry.End()) {
		return StoppedTask{}, apperrors.NewDeserializationError(
			fmt.Sprintf("task %q: last entry starts after it ends", name), nil)
	}
	if err := checkHistory(name, entries, lastEntry.Start()); err != nil {
		return StoppedTask{}, err
	}
	return StoppedTask{name: name, entries: cloneEntries(entries), lastEntry: lastEntry}, nil
}

func (t StoppedTask) Name() string {
	return t.name
}

func (t StoppedTask) Entries() []TimeEntry {
	return cloneEntries(t.entries)
}

// LastEntry returns the most recent closed entry.
func (t StoppedTask) LastEntry() TimeEntry {
	return t.lastEntry
}

func (t StoppedTask) IsRunning() bool {
	return false
}

// StopTime returns when the task was last stopped.
func (t StoppedTask) StopTime() time.Time {
	return t.lastEntry.End()
}

// TimeSpent sums every entry. now is ignored.
func (t StoppedTask) TimeSpent(time.Time) time.Duration {
	return sumEntries(t.entries) + t.lastEntry.Duration()
}

// CanStartAt reports whether the task may be resumed at now.
func (t StoppedTask) CanStartAt(now time.Time) bool {
	return !now.Before(t.StopTime())
}

// Start moves the last entry into the history and opens a new one at now.
// It panics if now is before StopTime.
func (t StoppedTask) Start(now time.Time) RunningTask {
	if !t.CanStartAt(now) {
		panic(fmt.Sprintf("domain: task %q cannot start at %s before it stopped at %s",
			t.name, now.Format(time.RFC3339), t.StopTime().Format(time.RFC3339)))
	}
	entries := make([]TimeEntry, 0, len(t.entries)+1)
	entries = append(entries, t.entries...)
	entries = append(entries, t.lastEntry)
	return RunningTask{
		name:      t.name,
		entries:   entries,
		lastEntry: NewOngoingTimeEntry(now),
	}
}

// Rename returns a copy of t called newName.
func (t StoppedTask) Rename(newName string) StoppedTask {
	t.entries = cloneEntries(t.entries)
	t.name = newName
	return t
}

func (t StoppedTask) String() string {
	return t.name
}

func checkHistory(name string, entries []TimeEntry, tailStart time.Time) error {
	for i, entry := range entries {
		if entry.Start().After(entry.End()) {
			return apperrors.NewDeserializationError(
				fmt.Sprintf("task %q: entry %d starts after it ends", name, i), nil)
		}
		if i > 0 && entry.Start().Before(entries[i-1].End()) {
			return apperrors.NewDeserializationError(
				fmt.Sprintf("task %q: entries are not in chronological order", name), nil)
		}
	}
	if n := len(entries); n > 0 && tailStart.Before(entries[n-1].End()) {
		return apperrors.NewDeserializationError(
			fmt.Sprintf("task %q: last entry starts before the previous entry ends", name), nil)
	}
	return nil
}

// cloneEntries copies entries so that no two tasks share a backing array.
// Empty histories are normalized to nil.
func cloneEntries(entries []TimeEntry) []TimeEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]TimeEntry, len(entries))
	copy(out, entries)
	return out
}

func sumEntries(entries []TimeEntry) time.Duration {
	var total time.Duration
	for _, entry := range entries {
		total += entry.Duration()
	}
	return total
}
