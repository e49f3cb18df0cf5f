package domain

import (
	"fmt"

	apperrors "tasklog/internal/errors"
	"tasklog/internal/repository/sqlite"
)

// Mapper converts a day's TaskManager to and from sqlite rows.
//
// Each task becomes one sqlite.Task row. Its entries are the history followed
// by the tail, so the last entry of a running task is the only one with a nil
// end time.
type Mapper struct{}

// NewMapper creates a new Mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// ToDatabase flattens m into rows for day. Stopped tasks keep their list
// order; the running task comes last.
func (mp *Mapper) ToDatabase(day string, m *TaskManager) []sqlite.DayTask {
	rows := make([]sqlite.DayTask, 0, len(m.stopped)+1)
	for _, task := range m.stopped {
		entries := append(task.Entries(), task.LastEntry())
		rows = append(rows, sqlite.DayTask{
			Task:    sqlite.Task{Day: day, Position: len(rows), TaskName: task.Name()},
			Entries: mp.entriesToDatabase(entries, nil),
		})
	}
	if m.running != nil {
		open := m.running.LastEntry()
		rows = append(rows, sqlite.DayTask{
			Task:    sqlite.Task{Day: day, Position: len(rows), TaskName: m.running.Name(), Running: true},
			Entries: mp.entriesToDatabase(m.running.Entries(), &open),
		})
	}
	return rows
}

func (mp *Mapper) entriesToDatabase(entries []TimeEntry, open *OngoingTimeEntry) []sqlite.TimeEntry {
	out := make([]sqlite.TimeEntry, 0, len(entries)+1)
	for i, entry := range entries {
		end := entry.End()
		out = append(out, sqlite.TimeEntry{Position: i, StartTime: entry.Start(), EndTime: &end})
	}
	if open != nil {
		out = append(out, sqlite.TimeEntry{Position: len(out), StartTime: open.Start()})
	}
	return out
}

// FromDatabase rebuilds a TaskManager from rows, re-checking every invariant.
// Rows are expected in position order.
func (mp *Mapper) FromDatabase(rows []sqlite.DayTask) (*TaskManager, error) {
	var stopped []StoppedTask
	var running *RunningTask

	for _, row := range rows {
		name := row.Task.TaskName
		if len(row.Entries) == 0 {
			return nil, apperrors.NewDeserializationError(fmt.Sprintf("task %q has no time entries", name), nil)
		}
		history, err := mp.closedEntries(name, row.Entries[:len(row.Entries)-1])
		if err != nil {
			return nil, err
		}
		tail := row.Entries[len(row.Entries)-1]

		if row.Task.Running {
			if running != nil {
				return nil, apperrors.NewDeserializationError("more than one running task", nil)
			}
			if tail.EndTime != nil {
				return nil, apperrors.NewDeserializationError(
					fmt.Sprintf("running task %q has no open entry", name), nil)
			}
			task, err := RestoreRunningTask(name, history, NewOngoingTimeEntry(tail.StartTime))
			if err != nil {
				return nil, err
			}
			running = &task
			continue
		}

		last, err := mp.closedEntries(name, []sqlite.TimeEntry{tail})
		if err != nil {
			return nil, err
		}
		task, err := RestoreStoppedTask(name, history, last[0])
		if err != nil {
			return nil, err
		}
		stopped = append(stopped, task)
	}

	return RestoreTaskManager(stopped, running), nil
}

func (mp *Mapper) closedEntries(task string, rows []sqlite.TimeEntry) ([]TimeEntry, error) {
	var entries []TimeEntry
	for _, row := range rows {
		if row.EndTime == nil {
			return nil, apperrors.NewDeserializationError(
				fmt.Sprintf("task %q: unexpected open entry", task), nil)
		}
		if row.StartTime.After(*row.EndTime) {
			return nil, apperrors.NewDeserializationError(
				fmt.Sprintf("task %q: entry start must not be after its end", task), nil)
		}
		entries = append(entries, NewTimeEntry(row.StartTime, *row.EndTime))
	}
	return entries, nil
}
