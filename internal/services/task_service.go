package services

import (
	"context"
	"time"

	"tasklog/internal/calendar"
	"tasklog/internal/domain"
	"tasklog/internal/logging"
	"tasklog/internal/storage"
	"tasklog/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store            storage.DayStore
	settings         settings
	taskValidator    *validation.TaskValidator
	requestValidator *validation.RequestValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(store storage.DayStore, opts ...Option) TaskService {
	s := newSettings(opts)
	return &taskServiceImpl{
		store:            store,
		settings:         s,
		taskValidator:    validation.NewTaskValidatorWithLimits(s.limits),
		requestValidator: validation.NewRequestValidator(),
	}
}

// mutate loads date, applies op and saves only if op succeeded.
func (t *taskServiceImpl) mutate(ctx context.Context, date calendar.Date, op func(*domain.TaskManager) error) error {
	m, err := t.store.Load(ctx, date)
	if err != nil {
		return err
	}
	if err := op(m); err != nil {
		logging.Debugf("operation on %s rejected: %v\n", date, err)
		return err
	}
	return t.store.Save(ctx, date, m)
}

// mutateToday runs op against today's tasks and returns the task name it
// reports.
func (t *taskServiceImpl) mutateToday(ctx context.Context, op func(*domain.TaskManager, time.Time) (string, error)) (string, error) {
	today, now := t.settings.today()
	var name string
	err := t.mutate(ctx, today, func(m *domain.TaskManager) error {
		var err error
		name, err = op(m, now)
		return err
	})
	return name, err
}

// StartNew creates a task and starts it
func (t *taskServiceImpl) StartNew(ctx context.Context, name string) (string, error) {
	name, err := t.taskValidator.GetValidTaskName(name)
	if err != nil {
		return "", err
	}
	return t.mutateToday(ctx, func(m *domain.TaskManager, now time.Time) (string, error) {
		return m.StartNewTask(name, now)
	})
}

// Resume restarts the stopped task matching query
func (t *taskServiceImpl) Resume(ctx context.Context, query string) (string, error) {
	query, err := t.taskValidator.GetValidQuery(query)
	if err != nil {
		return "", err
	}
	return t.mutateToday(ctx, func(m *domain.TaskManager, now time.Time) (string, error) {
		return m.ResumeTask(query, now)
	})
}

// ResumeLast restarts the most recently stopped task
func (t *taskServiceImpl) ResumeLast(ctx context.Context) (string, error) {
	return t.mutateToday(ctx, func(m *domain.TaskManager, now time.Time) (string, error) {
		return m.ResumeLastTask(now)
	})
}

// Stop stops the running task, now or after opts.Duration, on today or on
// opts.Date.
func (t *taskServiceImpl) Stop(ctx context.Context, opts StopOptions) (string, error) {
	today, now := t.settings.today()
	if err := t.requestValidator.ValidateStop(opts.Date, opts.Duration, today); err != nil {
		return "", err
	}

	date := today
	if opts.Date != nil {
		date = *opts.Date
	}

	var name string
	err := t.mutate(ctx, date, func(m *domain.TaskManager) error {
		var err error
		if opts.Duration != nil {
			name, err = m.StopRunningTaskWithDuration(*opts.Duration, now)
		} else {
			name, err = m.StopRunningTaskWithTime(now)
		}
		return err
	})
	return name, err
}

// Switch stops the running task and resumes the one matching query
func (t *taskServiceImpl) Switch(ctx context.Context, query string) (string, error) {
	query, err := t.taskValidator.GetValidQuery(query)
	if err != nil {
		return "", err
	}
	return t.mutateToday(ctx, func(m *domain.TaskManager, now time.Time) (string, error) {
		return m.SwitchTask(query, now)
	})
}

// SwitchNew stops the running task and starts a new one
func (t *taskServiceImpl) SwitchNew(ctx context.Context, name string) (string, error) {
	name, err := t.taskValidator.GetValidTaskName(name)
	if err != nil {
		return "", err
	}
	return t.mutateToday(ctx, func(m *domain.TaskManager, now time.Time) (string, error) {
		return m.SwitchNewTask(name, now)
	})
}

// SwitchLast stops the running task and resumes the previous one
func (t *taskServiceImpl) SwitchLast(ctx context.Context) (string, error) {
	return t.mutateToday(ctx, func(m *domain.TaskManager, now time.Time) (string, error) {
		return m.SwitchLastTask(now)
	})
}

// Rename renames the task matching query and returns the old and new names
func (t *taskServiceImpl) Rename(ctx context.Context, query, newName string) (string, string, error) {
	query, err := t.taskValidator.GetValidQuery(query)
	if err != nil {
		return "", "", err
	}
	newName, err = t.taskValidator.GetValidTaskName(newName)
	if err != nil {
		return "", "", err
	}

	today, _ := t.settings.today()
	var oldName string
	err = t.mutate(ctx, today, func(m *domain.TaskManager) error {
		var err error
		oldName, newName, err = m.RenameTask(query, newName)
		return err
	})
	if err != nil {
		return "", "", err
	}
	return oldName, newName, nil
}

// Delete removes the task matching query
func (t *taskServiceImpl) Delete(ctx context.Context, query string) (string, error) {
	query, err := t.taskValidator.GetValidQuery(query)
	if err != nil {
		return "", err
	}
	return t.mutateToday(ctx, func(m *domain.TaskManager, _ time.Time) (string, error) {
		return m.DeleteTask(query)
	})
}

// Current returns the running task, or nil when nothing is running
func (t *taskServiceImpl) Current(ctx context.Context) (*CurrentTask, error) {
	today, now := t.settings.today()
	m, err := t.store.Load(ctx, today)
	if err != nil {
		return nil, err
	}
	running, ok := m.Running()
	if !ok {
		return nil, nil
	}
	if now.Before(running.StartTime()) {
		now = running.StartTime()
	}
	return &CurrentTask{Name: running.Name(), Since: running.StartTime(), Spent: running.TimeSpent(now)}, nil
}

// List returns the task names of the day daysAgo days before today
func (t *taskServiceImpl) List(ctx context.Context, daysAgo int) ([]string, error) {
	if daysAgo < 0 {
		ve := validation.NewValidationError()
		ve.AddInvalidValueError("days", daysAgo, "must not be negative")
		return nil, ve.AppError()
	}
	date := calendar.DaysAgo(t.settings.clock(), t.settings.dayStart, daysAgo)
	m, err := t.store.Load(ctx, date)
	if err != nil {
		return nil, err
	}
	return m.ListTasks(), nil
}
