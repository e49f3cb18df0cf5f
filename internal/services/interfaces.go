package services

import (
	"context"
	"time"

	"tasklog/internal/calendar"
)

// StopOptions modifies how the running task is stopped.
//
// Duration stops the task that long after its last start instead of now.
// Date picks an earlier tracking day; it requires Duration.
type StopOptions struct {
	Date     *calendar.Date
	Duration *time.Duration
}

// CurrentTask describes the running task
type CurrentTask struct {
	Name  string        `json:"name"`
	Since time.Time     `json:"since"`
	Spent time.Duration `json:"spent"`
}

// ReportRequest selects the days to report on. From/To is exclusive with
// the other selectors; a request that selects nothing means today.
type ReportRequest struct {
	Today     bool
	Yesterday bool
	Dates     []calendar.Date
	From      *calendar.Date
	To        *calendar.Date
	// All reports every day that has stored tasks.
	All bool
}

// DayReport is the rendered report for one day
type DayReport struct {
	Date calendar.Date
	Text string
}

// TaskService applies one task operation to a tracking day and persists the
// result. A failed operation leaves the stored day untouched.
type TaskService interface {
	// Starting and resuming
	StartNew(ctx context.Context, name string) (string, error)
	Resume(ctx context.Context, query string) (string, error)
	ResumeLast(ctx context.Context) (string, error)

	// Stopping and switching
	Stop(ctx context.Context, opts StopOptions) (string, error)
	Switch(ctx context.Context, query string) (string, error)
	SwitchNew(ctx context.Context, name string) (string, error)
	SwitchLast(ctx context.Context) (string, error)

	// Editing
	Rename(ctx context.Context, query, newName string) (string, string, error)
	Delete(ctx context.Context, query string) (string, error)

	// Read-only
	Current(ctx context.Context) (*CurrentTask, error)
	List(ctx context.Context, daysAgo int) ([]string, error)
}

// ReportingService renders day reports
type ReportingService interface {
	ResolveDates(ctx context.Context, req ReportRequest) ([]calendar.Date, error)
	Report(ctx context.Context, req ReportRequest) ([]DayReport, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService      TaskService
	ReportingService ReportingService
}
