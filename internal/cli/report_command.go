package cli

import (
	"context"
	"fmt"
	"io"

	"tasklog/internal/services"
)

// ReportCommand handles the report command
type ReportCommand struct {
	reports      services.ReportingService
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App, out io.Writer) *ReportCommand {
	return &ReportCommand{
		reports:      app.Services.ReportingService,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints a blank line followed by one report per selected day.
// Nothing is printed when the request fails.
func (c *ReportCommand) Execute(ctx context.Context, req services.ReportRequest) error {
	reports, err := c.reports.Report(ctx, req)
	if err != nil {
		return c.errorHandler.Handle("generate report", err)
	}

	fmt.Fprintln(c.out)
	for _, r := range reports {
		fmt.Fprintln(c.out, r.Text)
	}
	return nil
}
