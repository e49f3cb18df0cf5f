// Package mcpserver exposes the task tracker as Model Context Protocol tools.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// startTaskTool returns a tool definition for starting or resuming a task.
func startTaskTool() mcp.Tool {
	return mcp.NewTool("start_task",
		mcp.WithDescription("Start work on a task. Without a task name the most recently stopped task is resumed. With a name, the single stopped task whose name contains it is resumed, or a new task is created when create is true."),
		mcp.WithString("task",
			mcp.Description("Task name, or a substring of an existing task's name")),
		mcp.WithBoolean("create",
			mcp.Description("Create a new task called task instead of resuming one")),
	)
}

// stopTaskTool returns a tool definition for stopping the running task.
func stopTaskTool() mcp.Tool {
	return mcp.NewTool("stop_task",
		mcp.WithDescription("Stop the running task, now or a number of minutes after it last started."),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Stop the task this many whole minutes after it last started")),
		mcp.WithString("date",
			mcp.Description("Tracking day (YYYY-MM-DD) whose running task to stop; requires duration_minutes")),
	)
}

// switchTaskTool returns a tool definition for switching tasks.
func switchTaskTool() mcp.Tool {
	return mcp.NewTool("switch_task",
		mcp.WithDescription("Stop the running task and start another. Without a task name the most recently stopped task is resumed."),
		mcp.WithString("task",
			mcp.Description("Task name, or a substring of an existing task's name")),
		mcp.WithBoolean("create",
			mcp.Description("Create a new task called task instead of resuming one")),
	)
}

// renameTaskTool returns a tool definition for renaming a task.
func renameTaskTool() mcp.Tool {
	return mcp.NewTool("rename_task",
		mcp.WithDescription("Rename the single task of today whose name contains task."),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("Substring of the task's current name")),
		mcp.WithString("new_name",
			mcp.Required(),
			mcp.Description("The new task name")),
	)
}

// deleteTaskTool returns a tool definition for deleting a task.
func deleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete the single task of today whose name contains task, with all its time entries."),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("Substring of the task's name")),
	)
}

// listTasksTool returns a tool definition for listing task names.
func listTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List the task names of a tracking day, one per line, the running task last."),
		mcp.WithNumber("days_ago",
			mcp.Description("Number of days before today (defaults to 0)")),
	)
}

// currentTaskTool returns a tool definition for showing the running task.
func currentTaskTool() mcp.Tool {
	return mcp.NewTool("current_task",
		mcp.WithDescription("Show the task that is currently running, if any."),
	)
}

// reportTool returns a tool definition for the daily report.
func reportTool() mcp.Tool {
	return mcp.NewTool("report",
		mcp.WithDescription("Render the time report of one or more tracking days. Without any selector the report covers today."),
		mcp.WithBoolean("today",
			mcp.Description("Include today")),
		mcp.WithBoolean("yesterday",
			mcp.Description("Include yesterday")),
		mcp.WithString("dates",
			mcp.Description("Comma separated list of dates (YYYY-MM-DD)")),
		mcp.WithString("from",
			mcp.Description("First day of an inclusive range (YYYY-MM-DD); cannot be combined with the other selectors")),
		mcp.WithString("to",
			mcp.Description("Last day of the range (YYYY-MM-DD, defaults to today); requires from")),
		mcp.WithBoolean("all",
			mcp.Description("Report every stored day")),
	)
}
