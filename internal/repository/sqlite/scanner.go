package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var running int
	if err := scanner.Scan(&task.ID, &task.Day, &task.Position, &task.TaskName, &running); err != nil {
		return nil, err
	}
	task.Running = running != 0
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ScanTimeEntry scans a single time entry. Timestamps are stored as text and
// parsed here rather than left to the driver.
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var start string
	var end sql.NullString

	if err := scanner.Scan(&entry.ID, &entry.TaskID, &entry.Position, &start, &end); err != nil {
		return nil, err
	}

	startTime, err := ParseTimeFromDB(start)
	if err != nil {
		return nil, fmt.Errorf("time entry %d: bad start_time %q: %w", entry.ID, start, err)
	}
	entry.StartTime = startTime

	if end.Valid {
		endTime, err := ParseTimeFromDB(end.String)
		if err != nil {
			return nil, fmt.Errorf("time entry %d: bad end_time %q: %w", entry.ID, end.String, err)
		}
		entry.EndTime = &endTime
	}

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	var entries []*TimeEntry
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanDays scans a column of day strings.
func ScanDays(rows Rows) ([]*string, error) {
	var days []*string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, &day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}
