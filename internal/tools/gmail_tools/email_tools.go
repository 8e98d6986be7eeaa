package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/google-workspace-mcp/internal/gmail"
	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
	"github.com/teemow/google-workspace-mcp/internal/server"
	"github.com/teemow/google-workspace-mcp/internal/tools/args"
	"github.com/teemow/google-workspace-mcp/internal/tools/common"
)

func registerEmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listEmailsTool := mcp.NewTool("gmail_list_emails",
		mcp.WithDescription("List recent emails from Gmail inbox with optional filtering. Returns email metadata and content."),
		mcp.WithNumber("hours",
			mcp.Description("Number of hours to look back (default: 24)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of emails to return (default: 50, max: 500)"),
		),
		mcp.WithString("query",
			mcp.Description(`Gmail search query (e.g., "from:user@example.com", "has:attachment", "is:unread"). Defaults to the inbox.`),
		),
	)
	s.AddTool(listEmailsTool, common.InstrumentedToolHandlerWithService(
		"gmail_list_emails", instrumentation.ServiceGmail, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEmails(ctx, request, sc)
		},
	))

	readEmailTool := mcp.NewTool("gmail_read_email",
		mcp.WithDescription("Read the full content of a specific email by ID"),
		mcp.WithString("emailId",
			mcp.Required(),
			mcp.Description("The Gmail message ID"),
		),
	)
	s.AddTool(readEmailTool, common.InstrumentedToolHandlerWithService(
		"gmail_read_email", instrumentation.ServiceGmail, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReadEmail(ctx, request, sc)
		},
	))

	searchEmailsTool := mcp.NewTool("gmail_search_emails",
		mcp.WithDescription("Search emails using Gmail query syntax. Supports complex queries with operators like from:, to:, subject:, has:, is:, after:, before:"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description(`Gmail search query (e.g., "from:boss@company.com subject:urgent", "has:attachment after:2025/11/01")`),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results (default: 50, max: 500)"),
		),
	)
	s.AddTool(searchEmailsTool, common.InstrumentedToolHandlerWithService(
		"gmail_search_emails", instrumentation.ServiceGmail, instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchEmails(ctx, request, sc)
		},
	))
}

func handleListEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	a := request.GetArguments()

	hours, _, err := args.OptionalPositiveNumber(a, "hours")
	if err != nil {
		return nil, err
	}
	maxResults, _, err := args.OptionalPositiveInt(a, "maxResults")
	if err != nil {
		return nil, err
	}
	query, err := args.OptionalString(a, "query")
	if err != nil {
		return nil, err
	}

	svc, err := sc.GmailService(ctx)
	if err != nil {
		return nil, err
	}
	emails, err := svc.ListEmails(ctx, gmail.ListOptions{
		Hours:      hours,
		MaxResults: maxResults,
		Query:      query,
	})
	if err != nil {
		return nil, err
	}
	return common.JSONResult(emails)
}

func handleReadEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	id, err := args.RequiredString(request.GetArguments(), "emailId")
	if err != nil {
		return nil, err
	}

	svc, err := sc.GmailService(ctx)
	if err != nil {
		return nil, err
	}
	email, err := svc.ReadEmail(ctx, id)
	if err != nil {
		return nil, err
	}
	return common.JSONResult(email)
}

func handleSearchEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	a := request.GetArguments()

	query, err := args.RequiredString(a, "query")
	if err != nil {
		return nil, err
	}
	maxResults, _, err := args.OptionalPositiveInt(a, "maxResults")
	if err != nil {
		return nil, err
	}

	svc, err := sc.GmailService(ctx)
	if err != nil {
		return nil, err
	}
	emails, err := svc.SearchEmails(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	return common.JSONResult(emails)
}
