package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tasklog/internal/services"
)

// ListCommand handles the list command
type ListCommand struct {
	tasks        services.TaskService
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App, out io.Writer) *ListCommand {
	return &ListCommand{
		tasks:        app.Services.TaskService,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints the task names of the day daysAgo days before today, one
// per line.
func (c *ListCommand) Execute(ctx context.Context, daysAgo int) error {
	names, err := c.tasks.List(ctx, daysAgo)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	fmt.Fprintln(c.out, strings.Join(names, "\n"))
	return nil
}
