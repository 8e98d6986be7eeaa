package calendar_tools

import (
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/google-workspace-mcp/internal/server"
)

// RegisterCalendarTools registers all calendar-related tools with the MCP
// server. calendar_create_event is skipped when the server context is
// read-only.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerCalendarListTools(s, sc)
	registerEventTools(s, sc, sc.ReadOnly())
	return nil
}
