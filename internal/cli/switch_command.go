package cli

import (
	"context"
	"fmt"
	"io"

	"tasklog/internal/errors"
	"tasklog/internal/services"
)

// SwitchCommand handles the switch command
type SwitchCommand struct {
	tasks        services.TaskService
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewSwitchCommand creates a new switch command handler
func NewSwitchCommand(app *App, out io.Writer) *SwitchCommand {
	return &SwitchCommand{
		tasks:        app.Services.TaskService,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute stops the running task and starts task, a new one when create is
// set, or the previous task when task is empty.
func (c *SwitchCommand) Execute(ctx context.Context, task string, create bool) error {
	if create {
		if task == "" {
			return c.errorHandler.Handle("switch task", errors.NewInvalidInputError("task", task, "--create requires a task name"))
		}
		name, err := c.tasks.SwitchNew(ctx, task)
		if err != nil {
			return c.errorHandler.Handle("switch task", err)
		}
		fmt.Fprintf(c.out, "Switched to new task: %s\n", name)
		return nil
	}

	var (
		name string
		err  error
	)
	if task == "" {
		name, err = c.tasks.SwitchLast(ctx)
	} else {
		name, err = c.tasks.Switch(ctx, task)
	}
	if err != nil {
		return c.errorHandler.Handle("switch task", err)
	}
	fmt.Fprintf(c.out, "Switched to task: %s\n", name)
	return nil
}
