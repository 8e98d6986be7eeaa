package gmail_tools

import (
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/google-workspace-mcp/internal/server"
)

// RegisterGmailTools registers all Gmail-related tools with the MCP server.
// gmail_send_email is skipped when the server context is read-only.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerEmailTools(s, sc)

	if !sc.ReadOnly() {
		registerSendTools(s, sc)
	}
	return nil
}
