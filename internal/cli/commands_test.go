package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tasklog/internal/calendar"
	apperrors "tasklog/internal/errors"
	"tasklog/internal/services"
)

func TestStartCommand(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		setup  func(h *testHarness)
		output string
		err    string
	}{
		{
			name:   "resume last without task",
			args:   []string{"start"},
			setup:  func(h *testHarness) { h.tasks.On("ResumeLast", mock.Anything).Return("email", nil) },
			output: "Resumed task: email\n",
		},
		{
			name:   "resume matching task",
			args:   []string{"start", "mail"},
			setup:  func(h *testHarness) { h.tasks.On("Resume", mock.Anything, "mail").Return("email", nil) },
			output: "Resumed task: email\n",
		},
		{
			name:   "create joins the words",
			args:   []string{"start", "-c", "write", "docs"},
			setup:  func(h *testHarness) { h.tasks.On("StartNew", mock.Anything, "write docs").Return("write docs", nil) },
			output: "Started new task: write docs\n",
		},
		{
			name: "create requires a task",
			args: []string{"start", "--create"},
			err:  "failed to start task: invalid input for task: --create requires a task name",
		},
		{
			name: "domain error",
			args: []string{"start", "-c", "email"},
			setup: func(h *testHarness) {
				h.tasks.On("StartNew", mock.Anything, "email").Return("", apperrors.NewTaskAlreadyRunningError("review"))
			},
			err: "failed to start task: " + apperrors.NewTaskAlreadyRunningError("review").Message,
		},
		{
			name:  "resume error",
			args:  []string{"start"},
			setup: func(h *testHarness) { h.tasks.On("ResumeLast", mock.Anything).Return("", apperrors.NewNoTasksFoundError()) },
			err:   "failed to resume task: " + apperrors.NewNoTasksFoundError().Message,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			if tt.setup != nil {
				tt.setup(h)
			}

			out, err := h.run(tt.args...)

			if tt.err != "" {
				require.Error(t, err)
				assert.Equal(t, tt.err, err.Error())
				assert.Empty(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.output, out)
		})
	}
}

func TestSwitchCommand(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		setup  func(h *testHarness)
		output string
	}{
		{
			name:   "previous task",
			args:   []string{"switch"},
			setup:  func(h *testHarness) { h.tasks.On("SwitchLast", mock.Anything).Return("email", nil) },
			output: "Switched to task: email\n",
		},
		{
			name:   "matching task",
			args:   []string{"switch", "rev"},
			setup:  func(h *testHarness) { h.tasks.On("Switch", mock.Anything, "rev").Return("review", nil) },
			output: "Switched to task: review\n",
		},
		{
			name:   "new task",
			args:   []string{"switch", "-c", "standup"},
			setup:  func(h *testHarness) { h.tasks.On("SwitchNew", mock.Anything, "standup").Return("standup", nil) },
			output: "Switched to new task: standup\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			tt.setup(h)

			out, err := h.run(tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.output, out)
		})
	}

	t.Run("error", func(t *testing.T) {
		h := newTestHarness(t)
		h.tasks.On("SwitchLast", mock.Anything).Return("", apperrors.NewTaskNotRunningError())

		_, err := h.run("switch")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to switch task: ")
	})
}

func TestStopCommand(t *testing.T) {
	yesterday := calendar.NewDate(2024, time.July, 15)
	twentyFive := 25 * time.Minute

	tests := []struct {
		name string
		args []string
		opts services.StopOptions
	}{
		{name: "now", args: []string{"stop"}, opts: services.StopOptions{}},
		{name: "duration", args: []string{"stop", "-d=25"}, opts: services.StopOptions{Duration: &twentyFive}},
		{name: "long duration flag", args: []string{"stop", "--duration", "25"}, opts: services.StopOptions{Duration: &twentyFive}},
		{
			name: "date and duration",
			args: []string{"stop", "--date=2024-07-15", "-d=25"},
			opts: services.StopOptions{Date: &yesterday, Duration: &twentyFive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			h.tasks.On("Stop", mock.Anything, tt.opts).Return("email", nil)

			out, err := h.run(tt.args...)
			require.NoError(t, err)
			assert.Equal(t, "Stopped task: email\n", out)
		})
	}

	t.Run("bad date is rejected before opening storage", func(t *testing.T) {
		h := newTestHarness(t)

		_, err := h.run("stop", "--date=15/07/2024", "-d=5")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to stop task: invalid input for date")
		assert.Zero(t, h.opened)
	})

	t.Run("oversized duration is rejected before opening storage", func(t *testing.T) {
		h := newTestHarness(t)

		_, err := h.run("stop", "-d=9223372036854775807")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to stop task: duration: must not exceed")
		assert.Zero(t, h.opened)
		h.tasks.AssertNotCalled(t, "Stop", mock.Anything, mock.Anything)
	})

	t.Run("negative duration", func(t *testing.T) {
		h := newTestHarness(t)

		_, err := h.run("stop", "-d=-5")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to stop task: duration must not be negative")
		assert.Zero(t, h.opened)
	})
}

func TestCurrentCommand(t *testing.T) {
	t.Run("running", func(t *testing.T) {
		h := newTestHarness(t)
		h.tasks.On("Current", mock.Anything).Return(&services.CurrentTask{Name: "email"}, nil)

		out, err := h.run("current")
		require.NoError(t, err)
		assert.Equal(t, "Current task: email\n", out)
	})

	t.Run("idle", func(t *testing.T) {
		h := newTestHarness(t)
		h.tasks.On("Current", mock.Anything).Return(nil, nil)

		out, err := h.run("current")
		require.NoError(t, err)
		assert.Equal(t, "No task currently running\n", out)
	})
}

func TestRenameAndDeleteCommands(t *testing.T) {
	h := newTestHarness(t)
	h.tasks.On("Rename", mock.Anything, "rev", "code review").Return("review", "code review", nil)
	h.tasks.On("Delete", mock.Anything, "mail").Return("email", nil)

	out, err := h.run("rename", "rev", "code review")
	require.NoError(t, err)
	assert.Equal(t, "Renamed task: review to code review\n", out)

	out, err = h.run("delete", "mail")
	require.NoError(t, err)
	assert.Equal(t, "Deleted task: email\n", out)

	_, err = h.run("rename", "only-one")
	assert.Error(t, err)
	_, err = h.run("delete")
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	h := newTestHarness(t)
	h.tasks.On("List", mock.Anything, 0).Return([]string{"email", "review"}, nil)
	h.tasks.On("List", mock.Anything, 3).Return([]string{}, nil)
	h.tasks.On("List", mock.Anything, -1).Return(nil, apperrors.NewValidationError("days must not be negative", nil))

	out, err := h.run("list")
	require.NoError(t, err)
	assert.Equal(t, "email\nreview\n", out)

	out, err = h.run("list", "-n=3")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)

	_, err = h.run("list", "-n", "-1")
	require.Error(t, err)
	assert.Equal(t, "failed to list tasks: days must not be negative", err.Error())
}

func TestReportCommand(t *testing.T) {
	jul10 := calendar.NewDate(2024, time.July, 10)
	jul12 := calendar.NewDate(2024, time.July, 12)

	tests := []struct {
		name string
		args []string
		req  services.ReportRequest
	}{
		{name: "default", args: []string{"report"}, req: services.ReportRequest{}},
		{name: "today and yesterday", args: []string{"report", "-t", "-y"}, req: services.ReportRequest{Today: true, Yesterday: true}},
		{
			name: "dates",
			args: []string{"report", "--dates", "2024-07-10,2024-07-12"},
			req:  services.ReportRequest{Dates: []calendar.Date{jul10, jul12}},
		},
		{
			name: "range",
			args: []string{"report", "--from=2024-07-10", "--to=2024-07-12"},
			req:  services.ReportRequest{From: &jul10, To: &jul12},
		},
		{name: "all", args: []string{"report", "--all"}, req: services.ReportRequest{All: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			h.reports.On("Report", mock.Anything, tt.req).Return([]services.DayReport{
				{Date: jul10, Text: "  2024-07-10 \n"},
				{Date: jul12, Text: "  2024-07-12 \n"},
			}, nil)

			out, err := h.run(tt.args...)
			require.NoError(t, err)
			assert.Equal(t, "\n  2024-07-10 \n\n  2024-07-12 \n\n", out)
		})
	}
}

func TestReportCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  string
	}{
		{name: "from with today", args: []string{"report", "--from=2024-07-10", "-t"}, err: "none of the others can be"},
		{name: "to with dates", args: []string{"report", "--to=2024-07-10", "--dates=2024-07-11"}, err: "none of the others can be"},
		{name: "bad date", args: []string{"report", "--dates=yesterday"}, err: "failed to generate report: invalid input for date"},
		{name: "bad from", args: []string{"report", "--from=07-10"}, err: "failed to generate report: invalid input for date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)

			_, err := h.run(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
			assert.Zero(t, h.opened)
		})
	}

	t.Run("service error", func(t *testing.T) {
		h := newTestHarness(t)
		req := services.ReportRequest{To: func() *calendar.Date { d := calendar.NewDate(2024, time.July, 1); return &d }()}
		h.reports.On("Report", mock.Anything, req).Return(nil, apperrors.NewValidationError("from is required", nil))

		out, err := h.run("report", "--to=2024-07-01")
		require.Error(t, err)
		assert.Equal(t, "failed to generate report: from is required", err.Error())
		assert.Empty(t, out)
	})
}

func TestCommandTimeout(t *testing.T) {
	h := newTestHarness(t)
	h.app.Config.Application.Timeout = time.Minute
	h.tasks.On("ResumeLast", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= time.Minute
	})).Return("email", nil)

	_, err := h.run("start")
	require.NoError(t, err)
}
