package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"tasklog/internal/calendar"
	apperrors "tasklog/internal/errors"
	"tasklog/internal/logging"
	"tasklog/internal/services"
	"tasklog/internal/validation"
)

// Handlers serves the tool calls from a ServiceContainer.
type Handlers struct {
	tasks   services.TaskService
	reports services.ReportingService
}

// NewHandlers creates tool handlers backed by container.
func NewHandlers(container *services.ServiceContainer) *Handlers {
	return &Handlers{
		tasks:   container.TaskService,
		reports: container.ReportingService,
	}
}

// toolError turns a failed operation into an error result. Tool failures
// are reported to the client, never returned as transport errors.
func toolError(operation string, err error) (*mcp.CallToolResult, error) {
	if apperrors.ShouldLogError(err) {
		logging.Debugf("tool %s failed: %v\n", operation, err)
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %s", operation, apperrors.GetUserMessage(err))), nil
}

// HandleStartTask starts, resumes or creates a task.
// Parameters:
//   - task (string, optional): name or name substring
//   - create (bool, optional): create task instead of resuming
func (h *Handlers) HandleStartTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task := request.GetString("task", "")
	create := request.GetBool("create", false)

	switch {
	case create:
		if task == "" {
			return mcp.NewToolResultError("Missing required parameter: task (create needs a task name)"), nil
		}
		name, err := h.tasks.StartNew(ctx, task)
		if err != nil {
			return toolError("start task", err)
		}
		return mcp.NewToolResultText("Started new task: " + name), nil
	case task != "":
		name, err := h.tasks.Resume(ctx, task)
		if err != nil {
			return toolError("resume task", err)
		}
		return mcp.NewToolResultText("Resumed task: " + name), nil
	default:
		name, err := h.tasks.ResumeLast(ctx)
		if err != nil {
			return toolError("resume task", err)
		}
		return mcp.NewToolResultText("Resumed task: " + name), nil
	}
}

// HandleStopTask stops the running task.
// Parameters:
//   - duration_minutes (number, optional): stop this long after the last start
//   - date (string, optional): tracking day, requires duration_minutes
func (h *Handlers) HandleStopTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var opts services.StopOptions

	args := request.GetArguments()
	if _, ok := args["duration_minutes"]; ok {
		d, err := validation.NewRequestValidator().StopDuration(request.GetFloat("duration_minutes", 0))
		if err != nil {
			return toolError("stop task", err)
		}
		opts.Duration = &d
	}
	if raw := request.GetString("date", ""); raw != "" {
		date, err := calendar.ParseDate(raw)
		if err != nil {
			return toolError("stop task", err)
		}
		opts.Date = &date
	}

	name, err := h.tasks.Stop(ctx, opts)
	if err != nil {
		return toolError("stop task", err)
	}
	return mcp.NewToolResultText("Stopped task: " + name), nil
}

// HandleSwitchTask stops the running task and starts another.
// Parameters:
//   - task (string, optional): name or name substring
//   - create (bool, optional): create task instead of resuming
func (h *Handlers) HandleSwitchTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task := request.GetString("task", "")
	create := request.GetBool("create", false)

	switch {
	case create:
		if task == "" {
			return mcp.NewToolResultError("Missing required parameter: task (create needs a task name)"), nil
		}
		name, err := h.tasks.SwitchNew(ctx, task)
		if err != nil {
			return toolError("switch task", err)
		}
		return mcp.NewToolResultText("Switched to new task: " + name), nil
	case task != "":
		name, err := h.tasks.Switch(ctx, task)
		if err != nil {
			return toolError("switch task", err)
		}
		return mcp.NewToolResultText("Switched to task: " + name), nil
	default:
		name, err := h.tasks.SwitchLast(ctx)
		if err != nil {
			return toolError("switch task", err)
		}
		return mcp.NewToolResultText("Switched to task: " + name), nil
	}
}

// HandleRenameTask renames a task.
func (h *Handlers) HandleRenameTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("Missing required parameter: task"), nil
	}
	newName, err := request.RequireString("new_name")
	if err != nil {
		return mcp.NewToolResultError("Missing required parameter: new_name"), nil
	}

	oldName, newName, err := h.tasks.Rename(ctx, task, newName)
	if err != nil {
		return toolError("rename task", err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Renamed task: %s to %s", oldName, newName)), nil
}

// HandleDeleteTask deletes a task.
func (h *Handlers) HandleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("Missing required parameter: task"), nil
	}

	name, err := h.tasks.Delete(ctx, task)
	if err != nil {
		return toolError("delete task", err)
	}
	return mcp.NewToolResultText("Deleted task: " + name), nil
}

// HandleListTasks lists the task names of a day.
func (h *Handlers) HandleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	daysAgo := int(request.GetFloat("days_ago", 0))

	names, err := h.tasks.List(ctx, daysAgo)
	if err != nil {
		return toolError("list tasks", err)
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

// HandleCurrentTask shows the running task.
func (h *Handlers) HandleCurrentTask(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current, err := h.tasks.Current(ctx)
	if err != nil {
		return toolError("get current task", err)
	}
	if current == nil {
		return mcp.NewToolResultText("No task currently running"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Current task: %s (since %s, %s)",
		current.Name, current.Since.Format("15:04"), current.Spent.Truncate(time.Minute))), nil
}

// HandleReport renders the report of the selected days.
func (h *Handlers) HandleReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := services.ReportRequest{
		Today:     request.GetBool("today", false),
		Yesterday: request.GetBool("yesterday", false),
		All:       request.GetBool("all", false),
	}

	for _, raw := range strings.Split(request.GetString("dates", ""), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		date, err := calendar.ParseDate(raw)
		if err != nil {
			return toolError("generate report", err)
		}
		req.Dates = append(req.Dates, date)
	}
	for key, target := range map[string]**calendar.Date{"from": &req.From, "to": &req.To} {
		raw := request.GetString(key, "")
		if raw == "" {
			continue
		}
		date, err := calendar.ParseDate(raw)
		if err != nil {
			return toolError("generate report", err)
		}
		*target = &date
	}

	reports, err := h.reports.Report(ctx, req)
	if err != nil {
		return toolError("generate report", err)
	}

	texts := make([]string, 0, len(reports))
	for _, r := range reports {
		texts = append(texts, r.Text)
	}
	return mcp.NewToolResultText(strings.Join(texts, "\n")), nil
}
