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

func registerSendTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	sendEmailTool := mcp.NewTool("gmail_send_email",
		mcp.WithDescription(`Send an email through Gmail. Use "me" as a recipient to address the authenticated mailbox.`),
		mcp.WithString("to",
			args.StringOrArrayProperty(),
			mcp.Required(),
			mcp.Description("Recipient email address(es), comma-separated or as an array"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Email body content"),
		),
		mcp.WithString("cc",
			args.StringOrArrayProperty(),
			mcp.Description("CC email address(es), comma-separated or as an array"),
		),
		mcp.WithString("bcc",
			args.StringOrArrayProperty(),
			mcp.Description("BCC email address(es), comma-separated or as an array"),
		),
		mcp.WithBoolean("isHtml",
			mcp.Description("Whether the body is HTML (default: false for plain text)"),
		),
	)
	s.AddTool(sendEmailTool, common.InstrumentedToolHandlerWithService(
		"gmail_send_email", instrumentation.ServiceGmail, instrumentation.OperationSend, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendEmail(ctx, request, sc)
		},
	))
}

func handleSendEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	req, err := parseSendRequest(request.GetArguments())
	if err != nil {
		return nil, err
	}

	svc, err := sc.GmailService(ctx)
	if err != nil {
		return nil, err
	}
	result, err := svc.SendEmail(ctx, req)
	if err != nil {
		return nil, err
	}
	return common.JSONResult(result)
}

func parseSendRequest(a map[string]any) (gmail.SendRequest, error) {
	var req gmail.SendRequest
	var err error

	if req.To, err = args.StringOrArray(a, "to", true); err != nil {
		return req, err
	}
	if req.Subject, err = args.RequiredString(a, "subject"); err != nil {
		return req, err
	}
	if req.Body, err = args.RequiredString(a, "body"); err != nil {
		return req, err
	}
	if req.Cc, err = args.StringOrArray(a, "cc", false); err != nil {
		return req, err
	}
	if req.Bcc, err = args.StringOrArray(a, "bcc", false); err != nil {
		return req, err
	}
	if req.IsHTML, err = args.OptionalBool(a, "isHtml"); err != nil {
		return req, err
	}
	return req, nil
}
