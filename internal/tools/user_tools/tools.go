package user_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
	"github.com/teemow/google-workspace-mcp/internal/server"
	"github.com/teemow/google-workspace-mcp/internal/tools/common"
	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// UserEmail is the result of user_get_email.
type UserEmail struct {
	Email string `json:"email"`
}

// RegisterUserTools registers the user identity tools with the MCP server.
func RegisterUserTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getEmailTool := mcp.NewTool("user_get_email",
		mcp.WithDescription("Get the email address of the authenticated Google account"),
	)

	s.AddTool(getEmailTool, common.InstrumentedToolHandlerWithService(
		"user_get_email", instrumentation.ServiceUser, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEmail(sc)
		}))

	return nil
}

// handleGetEmail reads only the configured address; it never calls Google.
func handleGetEmail(sc *server.ServerContext) (*mcp.CallToolResult, error) {
	email := sc.UserEmail()
	if email == "" {
		return nil, workspace.Configuration("User email not found. GOOGLE_USER_EMAIL environment variable is not set.")
	}
	return common.JSONResult(UserEmail{Email: email})
}
