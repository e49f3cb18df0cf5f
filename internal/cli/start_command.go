package cli

import (
	"context"
	"fmt"
	"io"

	"tasklog/internal/errors"
	"tasklog/internal/services"
)

// StartCommand handles the start command
type StartCommand struct {
	tasks        services.TaskService
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App, out io.Writer) *StartCommand {
	return &StartCommand{
		tasks:        app.Services.TaskService,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute creates task when create is set, resumes the task matching task
// otherwise, or the most recent task when task is empty.
func (c *StartCommand) Execute(ctx context.Context, task string, create bool) error {
	if create {
		if task == "" {
			return c.errorHandler.Handle("start task", errors.NewInvalidInputError("task", task, "--create requires a task name"))
		}
		name, err := c.tasks.StartNew(ctx, task)
		if err != nil {
			return c.errorHandler.Handle("start task", err)
		}
		fmt.Fprintf(c.out, "Started new task: %s\n", name)
		return nil
	}

	var (
		name string
		err  error
	)
	if task == "" {
		name, err = c.tasks.ResumeLast(ctx)
	} else {
		name, err = c.tasks.Resume(ctx, task)
	}
	if err != nil {
		return c.errorHandler.Handle("resume task", err)
	}
	fmt.Fprintf(c.out, "Resumed task: %s\n", name)
	return nil
}
