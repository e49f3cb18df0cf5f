package cli

import (
	"context"
	"fmt"
	"io"

	"tasklog/internal/services"
)

// StopCommand handles the stop command
type StopCommand struct {
	tasks        services.TaskService
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App, out io.Writer) *StopCommand {
	return &StopCommand{
		tasks:        app.Services.TaskService,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute stops the running task
func (c *StopCommand) Execute(ctx context.Context, opts services.StopOptions) error {
	name, err := c.tasks.Stop(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("stop task", err)
	}
	fmt.Fprintf(c.out, "Stopped task: %s\n", name)
	return nil
}
