package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklog/internal/calendar"
	"tasklog/internal/domain"
	"tasklog/internal/storage"
)

var (
	day  = calendar.NewDate(2024, time.July, 16)
	base = time.Date(2024, time.July, 16, 9, 0, 0, 0, time.UTC)
)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

// sampleDay has a stopped task with history, a plain stopped task and a
// running task with history.
func sampleDay() *domain.TaskManager {
	email := domain.NewRunningTask("email", at(0)).Stop(at(10)).Start(at(30)).Stop(at(45))
	standup := domain.NewRunningTask("standup", at(45)).Stop(at(60))
	review := domain.NewRunningTask("review", at(10)).Stop(at(30)).Start(at(60))
	return domain.RestoreTaskManager([]domain.StoppedTask{email, standup}, &review)
}

// testDayStore runs the behaviour every backend must share.
func testDayStore(t *testing.T, store storage.DayStore) {
	ctx := context.Background()

	t.Run("missing day loads empty", func(t *testing.T) {
		m, err := store.Load(ctx, day.AddDays(-30))
		require.NoError(t, err)
		assert.True(t, m.IsEmpty())
	})

	t.Run("round trip", func(t *testing.T) {
		want := sampleDay()
		require.NoError(t, store.Save(ctx, day, want))

		got, err := store.Load(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, want.ListTasks(), got.ListTasks())
		assert.Equal(t, want.Stopped(), normalizeStopped(got.Stopped()))
		running, ok := got.Running()
		require.True(t, ok)
		assert.Equal(t, 70*time.Minute, running.TimeSpent(at(110)))
	})

	t.Run("save overwrites", func(t *testing.T) {
		m, err := store.Load(ctx, day)
		require.NoError(t, err)
		_, err = m.StopRunningTaskWithTime(at(90))
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, day, m))

		got, err := store.Load(ctx, day)
		require.NoError(t, err)
		_, running := got.Running()
		assert.False(t, running)
		assert.Equal(t, []string{"email", "standup", "review"}, got.ListTasks())
	})

	t.Run("days are independent", func(t *testing.T) {
		other := day.AddDays(1)
		m := domain.NewTaskManager()
		_, err := m.StartNewTask("tomorrow", at(24*60))
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, other, m))

		got, err := store.Load(ctx, day)
		require.NoError(t, err)
		assert.NotContains(t, got.ListTasks(), "tomorrow")

		days, err := store.Days(ctx)
		require.NoError(t, err)
		assert.Equal(t, []calendar.Date{day, other}, days)
	})

	t.Run("saving an empty day", func(t *testing.T) {
		other := day.AddDays(1)
		require.NoError(t, store.Save(ctx, other, domain.NewTaskManager()))

		got, err := store.Load(ctx, other)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})
}

// normalizeStopped converts times to UTC so that backends that hand back a
// different location still compare equal.
func normalizeStopped(tasks []domain.StoppedTask) []domain.StoppedTask {
	out := make([]domain.StoppedTask, 0, len(tasks))
	for _, task := range tasks {
		entries := make([]domain.TimeEntry, 0, len(task.Entries()))
		for _, e := range task.Entries() {
			entries = append(entries, domain.NewTimeEntry(e.Start().UTC(), e.End().UTC()))
		}
		last := task.LastEntry()
		restored, err := domain.RestoreStoppedTask(task.Name(), entries,
			domain.NewTimeEntry(last.Start().UTC(), last.End().UTC()))
		if err != nil {
			panic(err)
		}
		out = append(out, restored)
	}
	return out
}
