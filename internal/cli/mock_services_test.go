package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"tasklog/internal/calendar"
	"tasklog/internal/config"
	"tasklog/internal/services"
)

// mockTaskService implements services.TaskService for testing
type mockTaskService struct {
	mock.Mock
}

func (m *mockTaskService) StartNew(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *mockTaskService) Resume(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

func (m *mockTaskService) ResumeLast(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTaskService) Stop(ctx context.Context, opts services.StopOptions) (string, error) {
	args := m.Called(ctx, opts)
	return args.String(0), args.Error(1)
}

func (m *mockTaskService) Switch(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

func (m *mockTaskService) SwitchNew(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *mockTaskService) SwitchLast(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTaskService) Rename(ctx context.Context, query, newName string) (string, string, error) {
	args := m.Called(ctx, query, newName)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTaskService) Delete(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

func (m *mockTaskService) Current(ctx context.Context) (*services.CurrentTask, error) {
	args := m.Called(ctx)
	if current := args.Get(0); current != nil {
		return current.(*services.CurrentTask), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskService) List(ctx context.Context, daysAgo int) ([]string, error) {
	args := m.Called(ctx, daysAgo)
	if names := args.Get(0); names != nil {
		return names.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockReportingService implements services.ReportingService for testing
type mockReportingService struct {
	mock.Mock
}

func (m *mockReportingService) ResolveDates(ctx context.Context, req services.ReportRequest) ([]calendar.Date, error) {
	args := m.Called(ctx, req)
	if dates := args.Get(0); dates != nil {
		return dates.([]calendar.Date), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportingService) Report(ctx context.Context, req services.ReportRequest) ([]services.DayReport, error) {
	args := m.Called(ctx, req)
	if reports := args.Get(0); reports != nil {
		return reports.([]services.DayReport), args.Error(1)
	}
	return nil, args.Error(1)
}

type testHarness struct {
	tasks   *mockTaskService
	reports *mockReportingService
	app     *App
	// opened counts the calls to the AppOpener.
	opened int
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	h := &testHarness{
		tasks:   &mockTaskService{},
		reports: &mockReportingService{},
	}
	h.app = NewApp(config.NewConfig(), &services.ServiceContainer{
		TaskService:      h.tasks,
		ReportingService: h.reports,
	})
	t.Cleanup(func() {
		h.tasks.AssertExpectations(t)
		h.reports.AssertExpectations(t)
	})
	return h
}

// run executes the root command with args and returns what it printed.
func (h *testHarness) run(args ...string) (string, error) {
	root := NewRootCommand(WithAppOpener(func(context.Context, string, *config.ConfigOverrides) (*App, error) {
		h.opened++
		return h.app, nil
	}))
	var out bytes.Buffer
	root.Command().SetOut(&out)
	root.Command().SetErr(&out)
	root.Command().SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
