package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"tasklog/internal/services"
)

// ServerName is the name announced to MCP clients.
const ServerName = "tasklog"

// NewServer creates an MCP server exposing the task operations of container
// as tools.
func NewServer(container *services.ServiceContainer, version string) *server.MCPServer {
	h := NewHandlers(container)

	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)

	// Tracking
	s.AddTool(startTaskTool(), h.HandleStartTask)
	s.AddTool(stopTaskTool(), h.HandleStopTask)
	s.AddTool(switchTaskTool(), h.HandleSwitchTask)

	// Editing
	s.AddTool(renameTaskTool(), h.HandleRenameTask)
	s.AddTool(deleteTaskTool(), h.HandleDeleteTask)

	// Queries
	s.AddTool(listTasksTool(), h.HandleListTasks)
	s.AddTool(currentTaskTool(), h.HandleCurrentTask)
	s.AddTool(reportTool(), h.HandleReport)

	return s
}
