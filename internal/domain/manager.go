package domain

import (
	"slices"
	"strings"
	"time"

	apperrors "tasklog/internal/errors"
)

// TaskManager holds one day's tasks: at most one running task and the
// stopped tasks in insertion order.
//
// Every operation validates before it mutates. When an operation returns an
// error the manager is left exactly as it was.
type TaskManager struct {
	running *RunningTask
	stopped []StoppedTask
}

// NewTaskManager returns an empty manager.
func NewTaskManager() *TaskManager {
	return &TaskManager{}
}

// RestoreTaskManager builds a manager from already validated tasks.
func RestoreTaskManager(stopped []StoppedTask, running *RunningTask) *TaskManager {
	m := &TaskManager{}
	if len(stopped) > 0 {
		m.stopped = slices.Clone(stopped)
	}
	if running != nil {
		r := *running
		m.running = &r
	}
	return m
}

// Running returns the running task, if any.
func (m *TaskManager) Running() (RunningTask, bool) {
	if m.running == nil {
		return RunningTask{}, false
	}
	return *m.running, true
}

// Stopped returns a copy of the stopped tasks in insertion order.
func (m *TaskManager) Stopped() []StoppedTask {
	return slices.Clone(m.stopped)
}

// RunningTaskName returns the name of the running task, if any.
func (m *TaskManager) RunningTaskName() (string, bool) {
	if m.running == nil {
		return "", false
	}
	return m.running.Name(), true
}

// IsEmpty reports whether the manager holds no tasks at all.
func (m *TaskManager) IsEmpty() bool {
	return m.running == nil && len(m.stopped) == 0
}

// ListTasks returns the stopped task names followed by the running one.
func (m *TaskManager) ListTasks() []string {
	names := make([]string, 0, len(m.stopped)+1)
	for _, task := range m.stopped {
		names = append(names, task.Name())
	}
	if m.running != nil {
		names = append(names, m.running.Name())
	}
	return names
}

// StartNewTask starts a task that does not exist yet.
func (m *TaskManager) StartNewTask(name string, now time.Time) (string, error) {
	if err := m.checkNotRunning(); err != nil {
		return "", err
	}
	if err := m.checkNotExists(name); err != nil {
		return "", err
	}
	m.startNew(name, now)
	return name, nil
}

// StopRunningTaskWithTime stops the running task at end.
func (m *TaskManager) StopRunningTaskWithTime(end time.Time) (string, error) {
	if err := m.checkCanStop(end); err != nil {
		return "", err
	}
	return m.stopRunning(end), nil
}

// StopRunningTaskWithDuration stops the running task d after it started.
// The resulting stop time may not lie in the future relative to now.
func (m *TaskManager) StopRunningTaskWithDuration(d time.Duration, now time.Time) (string, error) {
	if m.running == nil {
		return "", apperrors.NewTaskNotRunningError()
	}
	end := m.running.StartTime().Add(d)
	if end.After(now) {
		return "", apperrors.NewInvalidStopTimeError()
	}
	return m.StopRunningTaskWithTime(end)
}

// ResumeLastTask resumes the most recently added stopped task.
func (m *TaskManager) ResumeLastTask(now time.Time) (string, error) {
	if err := m.checkNotRunning(); err != nil {
		return "", err
	}
	index, err := m.lastIndex()
	if err != nil {
		return "", err
	}
	if err := m.checkCanStart(index, now); err != nil {
		return "", err
	}
	return m.resume(index, now), nil
}

// ResumeTask resumes the single stopped task whose name contains query.
func (m *TaskManager) ResumeTask(query string, now time.Time) (string, error) {
	if err := m.checkNotRunning(); err != nil {
		return "", err
	}
	index, err := m.resolve(query)
	if err != nil {
		return "", err
	}
	if err := m.checkCanStart(index, now); err != nil {
		return "", err
	}
	return m.resume(index, now), nil
}

// SwitchNewTask stops the running task and starts a new one called name.
func (m *TaskManager) SwitchNewTask(name string, now time.Time) (string, error) {
	if err := m.checkNotExists(name); err != nil {
		return "", err
	}
	if err := m.checkCanStop(now); err != nil {
		return "", err
	}
	m.stopRunning(now)
	m.startNew(name, now)
	return name, nil
}

// SwitchLastTask stops the running task and resumes the most recently added
// stopped task.
func (m *TaskManager) SwitchLastTask(now time.Time) (string, error) {
	index, err := m.lastIndex()
	if err != nil {
		return "", err
	}
	return m.switchTo(index, now)
}

// SwitchTask stops the running task and resumes the single stopped task
// whose name contains query.
func (m *TaskManager) SwitchTask(query string, now time.Time) (string, error) {
	index, err := m.resolve(query)
	if err != nil {
		return "", err
	}
	return m.switchTo(index, now)
}

// DeleteTask removes the single task, stopped or running, whose name
// contains query and returns its name.
func (m *TaskManager) DeleteTask(query string) (string, error) {
	index, runningMatch, err := m.resolveAny(query)
	if err != nil {
		return "", err
	}
	if runningMatch {
		name := m.running.Name()
		m.running = nil
		return name, nil
	}
	name := m.stopped[index].Name()
	m.stopped = slices.Delete(m.stopped, index, index+1)
	return name, nil
}

// RenameTask renames the single task, stopped or running, whose name
// contains query. It returns the old and the new name. newName is not
// checked against existing names.
func (m *TaskManager) RenameTask(query, newName string) (string, string, error) {
	index, runningMatch, err := m.resolveAny(query)
	if err != nil {
		return "", "", err
	}
	if runningMatch {
		old := m.running.Name()
		renamed := m.running.Rename(newName)
		m.running = &renamed
		return old, newName, nil
	}
	old := m.stopped[index].Name()
	m.stopped[index] = m.stopped[index].Rename(newName)
	return old, newName, nil
}

// switchTo validates both halves of a switch before touching anything.
// The candidate index is taken before the running task joins the stopped
// list, so it still points at the right task afterwards.
func (m *TaskManager) switchTo(index int, now time.Time) (string, error) {
	if err := m.checkCanStart(index, now); err != nil {
		return "", err
	}
	if err := m.checkCanStop(now); err != nil {
		return "", err
	}
	candidate := m.stopped[index]
	m.stopped = slices.Delete(m.stopped, index, index+1)
	m.stopRunning(now)
	running := candidate.Start(now)
	m.running = &running
	return candidate.Name(), nil
}

func (m *TaskManager) checkNotRunning() error {
	if m.running != nil {
		return apperrors.NewTaskAlreadyRunningError(m.running.Name())
	}
	return nil
}

func (m *TaskManager) checkNotExists(name string) error {
	for _, task := range m.stopped {
		if task.Name() == name {
			return apperrors.NewTaskAlreadyExistsError(name)
		}
	}
	return nil
}

func (m *TaskManager) checkCanStop(end time.Time) error {
	if m.running == nil {
		return apperrors.NewTaskNotRunningError()
	}
	if end.Before(m.running.StartTime()) {
		return apperrors.NewInvalidStopTimeError()
	}
	return nil
}

func (m *TaskManager) checkCanStart(index int, now time.Time) error {
	if !m.stopped[index].CanStartAt(now) {
		return apperrors.NewInvalidStartTimeError()
	}
	return nil
}

func (m *TaskManager) lastIndex() (int, error) {
	if len(m.stopped) == 0 {
		return -1, apperrors.NewNoTasksFoundError()
	}
	return len(m.stopped) - 1, nil
}

// resolve finds the single stopped task whose name contains query.
func (m *TaskManager) resolve(query string) (int, error) {
	index, err := m.match(query)
	if err != nil {
		return -1, err
	}
	if index < 0 {
		return -1, apperrors.NewTaskNotFoundError(query)
	}
	return index, nil
}

// resolveAny looks at both the stopped tasks and the running one. Exactly one
// of them must match.
func (m *TaskManager) resolveAny(query string) (int, bool, error) {
	index, err := m.match(query)
	if err != nil {
		return -1, false, err
	}
	runningMatch := m.running != nil && strings.Contains(m.running.Name(), query)
	switch {
	case index >= 0 && runningMatch:
		return -1, false, apperrors.NewMultipleTasksFoundError(query)
	case index < 0 && !runningMatch:
		return -1, false, apperrors.NewTaskNotFoundError(query)
	}
	return index, runningMatch, nil
}

// match returns the index of the single stopped task containing query, -1 if
// none does.
func (m *TaskManager) match(query string) (int, error) {
	found := -1
	for i, task := range m.stopped {
		if !strings.Contains(task.Name(), query) {
			continue
		}
		if found >= 0 {
			return -1, apperrors.NewMultipleTasksFoundError(query)
		}
		found = i
	}
	return found, nil
}

func (m *TaskManager) startNew(name string, now time.Time) {
	running := NewRunningTask(name, now)
	m.running = &running
}

func (m *TaskManager) stopRunning(end time.Time) string {
	stopped := m.running.Stop(end)
	m.running = nil
	m.stopped = append(m.stopped, stopped)
	return stopped.Name()
}

func (m *TaskManager) resume(index int, now time.Time) string {
	task := m.stopped[index]
	m.stopped = slices.Delete(m.stopped, index, index+1)
	running := task.Start(now)
	m.running = &running
	return task.Name()
}
