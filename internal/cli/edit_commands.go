package cli

import (
	"context"
	"fmt"
	"io"

	"tasklog/internal/services"
)

// RenameCommand handles the rename command
type RenameCommand struct {
	tasks        services.TaskService
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewRenameCommand creates a new rename command handler
func NewRenameCommand(app *App, out io.Writer) *RenameCommand {
	return &RenameCommand{
		tasks:        app.Services.TaskService,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute renames the task matching task to newName
func (c *RenameCommand) Execute(ctx context.Context, task, newName string) error {
	oldName, newName, err := c.tasks.Rename(ctx, task, newName)
	if err != nil {
		return c.errorHandler.Handle("rename task", err)
	}
	fmt.Fprintf(c.out, "Renamed task: %s to %s\n", oldName, newName)
	return nil
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	tasks        services.TaskService
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App, out io.Writer) *DeleteCommand {
	return &DeleteCommand{
		tasks:        app.Services.TaskService,
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Execute deletes the task matching task
func (c *DeleteCommand) Execute(ctx context.Context, task string) error {
	name, err := c.tasks.Delete(ctx, task)
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	fmt.Fprintf(c.out, "Deleted task: %s\n", name)
	return nil
}
