package services

import (
	"context"
	"sort"

	"tasklog/internal/calendar"
	"tasklog/internal/logging"
	"tasklog/internal/storage"
	"tasklog/internal/validation"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	store            storage.DayStore
	settings         settings
	requestValidator *validation.RequestValidator
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(store storage.DayStore, opts ...Option) ReportingService {
	return &reportingServiceImpl{
		store:            store,
		settings:         newSettings(opts),
		requestValidator: validation.NewRequestValidator(),
	}
}

// ResolveDates turns a request into the ascending, de-duplicated list of
// days to report on.
func (r *reportingServiceImpl) ResolveDates(ctx context.Context, req ReportRequest) ([]calendar.Date, error) {
	today, _ := r.settings.today()

	if req.From != nil {
		if req.Today || req.Yesterday || len(req.Dates) > 0 || req.All {
			ve := validation.NewValidationError()
			ve.AddInvalidValueError("from", req.From.String(), "cannot be combined with today, yesterday, dates or all")
			return nil, ve.AppError()
		}
		to := today
		if req.To != nil {
			to = *req.To
		}
		if err := r.requestValidator.ValidateDateRange(*req.From, to); err != nil {
			return nil, err
		}
		return calendar.Range(*req.From, to), nil
	}
	if req.To != nil {
		ve := validation.NewValidationError()
		ve.AddRequiredError("from")
		return nil, ve.AppError()
	}

	if req.All {
		return r.store.Days(ctx)
	}

	dates := append([]calendar.Date(nil), req.Dates...)
	if req.Yesterday {
		dates = append(dates, today.AddDays(-1))
	}
	if req.Today || len(dates) == 0 {
		dates = append(dates, today)
	}
	return sortUnique(dates), nil
}

// Report renders one report per resolved day
func (r *reportingServiceImpl) Report(ctx context.Context, req ReportRequest) ([]DayReport, error) {
	dates, err := r.ResolveDates(ctx, req)
	if err != nil {
		return nil, err
	}

	now := r.settings.clock()
	reports := make([]DayReport, 0, len(dates))
	for _, date := range dates {
		m, err := r.store.Load(ctx, date)
		if err != nil {
			return nil, err
		}
		reports = append(reports, DayReport{
			Date: date,
			Text: r.settings.formatter.Generate(m, date, now),
		})
	}
	logging.Debugf("rendered %d report(s)\n", len(reports))
	return reports, nil
}

func sortUnique(dates []calendar.Date) []calendar.Date {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	out := make([]calendar.Date, 0, len(dates))
	for _, d := range dates {
		if len(out) == 0 || d != out[len(out)-1] {
			out = append(out, d)
		}
	}
	return out
}
