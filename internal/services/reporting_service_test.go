package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tasklog/internal/calendar"
	"tasklog/internal/domain"
	apperrors "tasklog/internal/errors"
	"tasklog/internal/storage"
)

func datePtr(d calendar.Date) *calendar.Date { return &d }

func TestReportingService_ResolveDates(t *testing.T) {
	yesterday := day.AddDays(-1)
	lastWeek := day.AddDays(-7)

	tests := []struct {
		name      string
		req       ReportRequest
		want      []calendar.Date
		wantField string
	}{
		{name: "empty request means today", req: ReportRequest{}, want: []calendar.Date{day}},
		{name: "today", req: ReportRequest{Today: true}, want: []calendar.Date{day}},
		{name: "yesterday only", req: ReportRequest{Yesterday: true}, want: []calendar.Date{yesterday}},
		{
			name: "dates are sorted and de-duplicated",
			req:  ReportRequest{Today: true, Yesterday: true, Dates: []calendar.Date{day, lastWeek, yesterday}},
			want: []calendar.Date{lastWeek, yesterday, day},
		},
		{
			name: "explicit dates without today",
			req:  ReportRequest{Dates: []calendar.Date{lastWeek}},
			want: []calendar.Date{lastWeek},
		},
		{
			name: "from defaults to today",
			req:  ReportRequest{From: datePtr(day.AddDays(-2))},
			want: []calendar.Date{day.AddDays(-2), yesterday, day},
		},
		{
			name: "from and to",
			req:  ReportRequest{From: datePtr(lastWeek), To: datePtr(lastWeek.AddDays(1))},
			want: []calendar.Date{lastWeek, lastWeek.AddDays(1)},
		},
		{
			name: "single day range",
			req:  ReportRequest{From: datePtr(lastWeek), To: datePtr(lastWeek)},
			want: []calendar.Date{lastWeek},
		},
		{name: "reversed range", req: ReportRequest{From: datePtr(day), To: datePtr(lastWeek)}, wantField: "to"},
		{name: "to without from", req: ReportRequest{To: datePtr(day)}, wantField: "from"},
		{name: "from with today", req: ReportRequest{From: datePtr(lastWeek), Today: true}, wantField: "from"},
		{name: "from with dates", req: ReportRequest{From: datePtr(lastWeek), Dates: []calendar.Date{day}}, wantField: "from"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockDayStore{}
			service := NewReportingService(store, WithClock(func() time.Time { return base }))

			got, err := service.ResolveDates(context.Background(), tt.req)

			if tt.wantField != "" {
				require.Error(t, err)
				appErr, ok := apperrors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
				field, _ := appErr.GetContext("field")
				assert.Equal(t, tt.wantField, field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReportingService_ResolveAllDates(t *testing.T) {
	store := &mockDayStore{}
	service := NewReportingService(store, WithClock(func() time.Time { return base }))
	stored := []calendar.Date{day.AddDays(-3), day}
	store.On("Days", mock.Anything).Return(stored, nil).Once()

	got, err := service.ResolveDates(context.Background(), ReportRequest{All: true})
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	_, err = service.ResolveDates(context.Background(), ReportRequest{All: true, From: datePtr(day)})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	store.AssertExpectations(t)
}

func TestReportingService_Report(t *testing.T) {
	store := storage.NewJSONStore(t.TempDir())
	ctx := context.Background()
	clock := &testClock{now: base}
	container := NewServiceContainer(store, WithClock(clock.Now))

	_, err := container.TaskService.StartNew(ctx, "planning")
	require.NoError(t, err)
	clock.Set(90)
	_, err = container.TaskService.SwitchNew(ctx, "coding")
	require.NoError(t, err)
	clock.Set(120)

	reports, err := container.ReportingService.Report(ctx, ReportRequest{Today: true, Yesterday: true})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, day.AddDays(-1), reports[0].Date)
	assert.Contains(t, reports[0].Text, "Total")
	assert.Contains(t, reports[0].Text, "00:00")

	assert.Equal(t, day, reports[1].Date)
	assert.Contains(t, reports[1].Text, "planning")
	assert.Contains(t, reports[1].Text, "01:30 |  75.0%")
	assert.Contains(t, reports[1].Text, "00:30 |  25.0%")
	assert.Contains(t, reports[1].Text, "02:00 | 100.0%")
}

func TestReportingService_ReportStoreError(t *testing.T) {
	store := &mockDayStore{}
	service := NewReportingService(store, WithClock(func() time.Time { return base }))
	loadErr := apperrors.NewDeserializationError("bad day", errors.New("boom"))
	store.On("Load", mock.Anything, day).Return((*domain.TaskManager)(nil), loadErr)

	reports, err := service.Report(context.Background(), ReportRequest{})
	assert.Nil(t, reports)
	assert.ErrorIs(t, err, apperrors.ErrDeserialization)
}
