package cli

import (
	"context"
	"fmt"
	"io"

	"tasklog/internal/services"
)

// CurrentCommand handles the current command
type CurrentCommand struct {
	tasks        services.TaskService
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewCurrentCommand creates a new current command handler
func NewCurrentCommand(app *App, out io.Writer) *CurrentCommand {
	return &CurrentCommand{
		tasks:        app.Services.TaskService,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints the running task
func (c *CurrentCommand) Execute(ctx context.Context) error {
	current, err := c.tasks.Current(ctx)
	if err != nil {
		return c.errorHandler.Handle("get current task", err)
	}

	if current == nil {
		fmt.Fprintln(c.out, "No task currently running")
		return nil
	}
	fmt.Fprintf(c.out, "Current task: %s\n", current.Name)
	return nil
}
