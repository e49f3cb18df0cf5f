package services

import (
	"time"

	"tasklog/internal/calendar"
	"tasklog/internal/report"
	"tasklog/internal/storage"
	"tasklog/internal/validation"
)

// Option configures the services.
type Option func(*settings)

type settings struct {
	clock     func() time.Time
	dayStart  calendar.DayStart
	limits    validation.Limits
	formatter *report.Formatter
}

func newSettings(opts []Option) settings {
	s := settings{
		clock:     time.Now,
		dayStart:  calendar.DefaultDayStart,
		limits:    validation.DefaultLimits(),
		formatter: report.NewFormatter(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) { s.clock = clock }
}

// WithDayStart sets the time of day at which a new tracking day begins.
func WithDayStart(ds calendar.DayStart) Option {
	return func(s *settings) { s.dayStart = ds }
}

// WithLimits sets the task name validation limits.
func WithLimits(limits validation.Limits) Option {
	return func(s *settings) { s.limits = limits }
}

// WithFormatter sets the report formatter.
func WithFormatter(f *report.Formatter) Option {
	return func(s *settings) { s.formatter = f }
}

// today returns the tracking day for the current clock reading.
func (s settings) today() (calendar.Date, time.Time) {
	now := s.clock()
	return calendar.Today(now, s.dayStart), now
}

// NewServiceContainer wires both services to store.
func NewServiceContainer(store storage.DayStore, opts ...Option) *ServiceContainer {
	return &ServiceContainer{
		TaskService:      NewTaskService(store, opts...),
		ReportingService: NewReportingService(store, opts...),
	}
}
