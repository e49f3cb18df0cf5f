package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tasklog/internal/errors"
)

func TestRunningTask_Stop(t *testing.T) {
	running := NewRunningTask("write docs", mins(0))
	assert.True(t, running.IsRunning())
	assert.Equal(t, mins(0), running.StartTime())
	assert.Empty(t, running.Entries())

	stopped := running.Stop(mins(30))
	assert.False(t, stopped.IsRunning())
	assert.Equal(t, "write docs", stopped.Name())
	assert.Equal(t, mins(30), stopped.StopTime())
	assert.Equal(t, 30*time.Minute, stopped.TimeSpent(mins(999)))

	same := NewRunningTask("x", mins(5)).Stop(mins(5))
	assert.Zero(t, same.TimeSpent(mins(5)))

	assert.Panics(t, func() { running.Stop(mins(-1)) })
}

func TestStoppedTask_Start(t *testing.T) {
	stopped := NewRunningTask("a", mins(0)).Stop(mins(10))

	require.True(t, stopped.CanStartAt(mins(10)))
	assert.False(t, stopped.CanStartAt(mins(9)))
	assert.Panics(t, func() { stopped.Start(mins(9)) })

	running := stopped.Start(mins(20))
	assert.Equal(t, mins(20), running.StartTime())
	assert.Equal(t, []TimeEntry{NewTimeEntry(mins(0), mins(10))}, running.Entries())
	assert.Equal(t, 15*time.Minute, running.TimeSpent(mins(25)))

	again := running.Stop(mins(30)).Start(mins(30))
	assert.Len(t, again.Entries(), 2)
	assert.Equal(t, 20*time.Minute, again.TimeSpent(mins(30)))
}

func TestTransitionsDoNotAlias(t *testing.T) {
	stopped := NewRunningTask("a", mins(0)).Stop(mins(10)).Start(mins(10)).Stop(mins(20))
	first := stopped.Start(mins(30))
	second := stopped.Start(mins(40))

	entries := first.Entries()
	entries[0] = NewTimeEntry(mins(100), mins(200))

	assert.Equal(t, mins(0), first.Entries()[0].Start())
	assert.Equal(t, mins(0), second.Entries()[0].Start())
	assert.Len(t, stopped.Entries(), 1)
}

func TestRename(t *testing.T) {
	stopped := NewRunningTask("old", mins(0)).Stop(mins(1))
	renamed := stopped.Rename("new")
	assert.Equal(t, "new", renamed.Name())
	assert.Equal(t, "old", stopped.Name())
	assert.Equal(t, stopped.LastEntry(), renamed.LastEntry())

	running := NewRunningTask("old", mins(0)).Rename("new")
	assert.Equal(t, "new", running.String())
}

func TestRestoreStoppedTask(t *testing.T) {
	tests := []struct {
		name    string
		entries []TimeEntry
		last    TimeEntry
		wantErr bool
	}{
		{
			name: "ordered",
			entries: []TimeEntry{
				NewTimeEntry(mins(0), mins(5)),
				NewTimeEntry(mins(5), mins(10)),
			},
			last: NewTimeEntry(mins(20), mins(30)),
		},
		{
			name:    "no history",
			entries: nil,
			last:    NewTimeEntry(mins(0), mins(1)),
		},
		{
			name: "history overlaps",
			entries: []TimeEntry{
				NewTimeEntry(mins(0), mins(10)),
				NewTimeEntry(mins(5), mins(15)),
			},
			last:    NewTimeEntry(mins(20), mins(30)),
			wantErr: true,
		},
		{
			name:    "tail before history",
			entries: []TimeEntry{NewTimeEntry(mins(0), mins(10))},
			last:    NewTimeEntry(mins(9), mins(30)),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := RestoreStoppedTask("t", tt.entries, tt.last)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDeserialization))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.last, task.LastEntry())
		})
	}
}

func TestRestoreRunningTask(t *testing.T) {
	history := []TimeEntry{NewTimeEntry(mins(0), mins(10))}

	task, err := RestoreRunningTask("t", history, NewOngoingTimeEntry(mins(10)))
	require.NoError(t, err)
	assert.Equal(t, history, task.Entries())

	history[0] = NewTimeEntry(mins(1), mins(2))
	assert.Equal(t, mins(0), task.Entries()[0].Start(), "restore copies the history")

	_, err = RestoreRunningTask("t", []TimeEntry{NewTimeEntry(mins(0), mins(10))}, NewOngoingTimeEntry(mins(9)))
	assert.ErrorIs(t, err, apperrors.ErrDeserialization)
}
