package sqlite

import "time"

// Task is a row of the tasks table: one task as recorded for one day.
// Position keeps the insertion order of the day's stopped tasks; the running
// task, if any, has the highest position.
type Task struct {
	ID       int64
	Day      string
	Position int
	TaskName string
	Running  bool
}

// TimeEntry is a row of the time_entries table.
// EndTime is nil only for the open entry of a running task.
type TimeEntry struct {
	ID        int64
	TaskID    int64
	Position  int
	StartTime time.Time
	EndTime   *time.Time
}

// DayTask is a task together with its entries in chronological order.
type DayTask struct {
	Task    Task
	Entries []TimeEntry
}
