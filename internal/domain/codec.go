package domain

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "tasklog/internal/errors"
)

// The JSON documents below are the persisted day format. Timestamps use
// RFC 3339 with nanoseconds and a zone offset.

type timeEntryJSON struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

type ongoingEntryJSON struct {
	Start *time.Time `json:"start"`
}

type stoppedTaskJSON struct {
	Name      string          `json:"name"`
	Entries   []timeEntryJSON `json:"entries"`
	LastEntry *timeEntryJSON  `json:"last_entry"`
}

type runningTaskJSON struct {
	Name      string            `json:"name"`
	Entries   []timeEntryJSON   `json:"entries"`
	LastEntry *ongoingEntryJSON `json:"last_entry"`
}

type taskManagerJSON struct {
	Stopped []stoppedTaskJSON `json:"stopped"`
	Running *runningTaskJSON  `json:"running"`
}

// MarshalJSON encodes the manager in the persisted day format.
func (m *TaskManager) MarshalJSON() ([]byte, error) {
	doc := taskManagerJSON{Stopped: make([]stoppedTaskJSON, 0, len(m.stopped))}
	for _, task := range m.stopped {
		last := encodeEntry(task.lastEntry)
		doc.Stopped = append(doc.Stopped, stoppedTaskJSON{
			Name:      task.name,
			Entries:   encodeEntries(task.entries),
			LastEntry: &last,
		})
	}
	if m.running != nil {
		start := m.running.lastEntry.Start()
		doc.Running = &runningTaskJSON{
			Name:      m.running.name,
			Entries:   encodeEntries(m.running.entries),
			LastEntry: &ongoingEntryJSON{Start: &start},
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes the persisted day format. Malformed documents and
// documents whose tasks break the ordering invariants fail with a
// deserialization error; m is only replaced on success.
func (m *TaskManager) UnmarshalJSON(data []byte) error {
	var doc taskManagerJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperrors.NewDeserializationError("decode task list", err)
	}

	var stopped []StoppedTask
	for i, raw := range doc.Stopped {
		task, err := decodeStoppedTask(raw)
		if err != nil {
			return withIndex(err, i)
		}
		stopped = append(stopped, task)
	}

	var running *RunningTask
	if doc.Running != nil {
		task, err := decodeRunningTask(*doc.Running)
		if err != nil {
			return err
		}
		running = &task
	}

	*m = *RestoreTaskManager(stopped, running)
	return nil
}

// DecodeTaskManager is a convenience wrapper around UnmarshalJSON.
func DecodeTaskManager(data []byte) (*TaskManager, error) {
	m := NewTaskManager()
	if err := json.Unmarshal(data, m); err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.NewDeserializationError("decode task list", err)
	}
	return m, nil
}

func decodeStoppedTask(raw stoppedTaskJSON) (StoppedTask, error) {
	entries, err := decodeEntries(raw.Name, raw.Entries)
	if err != nil {
		return StoppedTask{}, err
	}
	if raw.LastEntry == nil {
		return StoppedTask{}, missingField(raw.Name, "last_entry")
	}
	last, err := decodeEntry(raw.Name, *raw.LastEntry)
	if err != nil {
		return StoppedTask{}, err
	}
	return RestoreStoppedTask(raw.Name, entries, last)
}

func decodeRunningTask(raw runningTaskJSON) (RunningTask, error) {
	entries, err := decodeEntries(raw.Name, raw.Entries)
	if err != nil {
		return RunningTask{}, err
	}
	if raw.LastEntry == nil || raw.LastEntry.Start == nil {
		return RunningTask{}, missingField(raw.Name, "last_entry.start")
	}
	return RestoreRunningTask(raw.Name, entries, NewOngoingTimeEntry(*raw.LastEntry.Start))
}

func decodeEntries(task string, raw []timeEntryJSON) ([]TimeEntry, error) {
	var entries []TimeEntry
	for _, r := range raw {
		entry, err := decodeEntry(task, r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// decodeEntry checks start <= end itself so that bad data never reaches the
// panicking constructor.
func decodeEntry(task string, raw timeEntryJSON) (TimeEntry, error) {
	if raw.Start == nil {
		return TimeEntry{}, missingField(task, "start")
	}
	if raw.End == nil {
		return TimeEntry{}, missingField(task, "end")
	}
	if raw.Start.After(*raw.End) {
		return TimeEntry{}, apperrors.NewDeserializationError(
			fmt.Sprintf("task %q: entry start must not be after its end", task), nil)
	}
	return NewTimeEntry(*raw.Start, *raw.End), nil
}

func encodeEntry(entry TimeEntry) timeEntryJSON {
	start, end := entry.Start(), entry.End()
	return timeEntryJSON{Start: &start, End: &end}
}

func encodeEntries(entries []TimeEntry) []timeEntryJSON {
	out := make([]timeEntryJSON, 0, len(entries))
	for _, entry := range entries {
		out = append(out, encodeEntry(entry))
	}
	return out
}

func missingField(task, field string) error {
	return apperrors.NewDeserializationError(fmt.Sprintf("task %q: missing %s", task, field), nil)
}

func withIndex(err error, index int) error {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.WithContext("stopped_index", index)
	}
	return err
}
