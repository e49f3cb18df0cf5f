package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"tasklog/internal/calendar"
	"tasklog/internal/domain"
	"tasklog/internal/storage"
)

var (
	day  = calendar.NewDate(2024, time.July, 16)
	base = time.Date(2024, time.July, 16, 9, 0, 0, 0, time.UTC)
)

// testClock is a settable clock for the services.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Set(minutes int) {
	c.now = base.Add(time.Duration(minutes) * time.Minute)
}

func setupTaskService(t *testing.T) (TaskService, *storage.JSONStore, *testClock) {
	t.Helper()
	store := storage.NewJSONStore(t.TempDir())
	clock := &testClock{now: base}
	return NewTaskService(store, WithClock(clock.Now)), store, clock
}

// mockDayStore is a testify double for storage.DayStore.
type mockDayStore struct {
	mock.Mock
}

func (m *mockDayStore) Load(ctx context.Context, date calendar.Date) (*domain.TaskManager, error) {
	args := m.Called(ctx, date)
	if tm := args.Get(0); tm != nil {
		return tm.(*domain.TaskManager), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDayStore) Save(ctx context.Context, date calendar.Date, tm *domain.TaskManager) error {
	return m.Called(ctx, date, tm).Error(0)
}

func (m *mockDayStore) Days(ctx context.Context) ([]calendar.Date, error) {
	args := m.Called(ctx)
	if days := args.Get(0); days != nil {
		return days.([]calendar.Date), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDayStore) Close() error {
	return m.Called().Error(0)
}
