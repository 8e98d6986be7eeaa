package calendar_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/google-workspace-mcp/internal/calendar"
	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
	"github.com/teemow/google-workspace-mcp/internal/server"
	"github.com/teemow/google-workspace-mcp/internal/tools/args"
	"github.com/teemow/google-workspace-mcp/internal/tools/common"
)

func registerCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	listCalendarsTool := mcp.NewTool("calendar_list_calendars",
		mcp.WithDescription("List all calendars accessible to the user"),
		mcp.WithBoolean("showHidden",
			mcp.Description("Include calendars hidden from the calendar list (default: false)"),
		),
		mcp.WithString("minAccessRole",
			mcp.Description("Only return calendars where the user has at least this role"),
			mcp.Enum(calendar.AccessRoles...),
		),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandlerWithService(
		"calendar_list_calendars", instrumentation.ServiceCalendar, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, request, sc)
		}))
}

func handleListCalendars(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	a := request.GetArguments()

	var opts calendar.ListCalendarsOptions
	var err error
	if opts.ShowHidden, err = args.OptionalBool(a, "showHidden"); err != nil {
		return nil, err
	}
	if opts.MinAccessRole, err = args.OptionalString(a, "minAccessRole"); err != nil {
		return nil, err
	}

	svc, err := sc.CalendarService(ctx)
	if err != nil {
		return nil, err
	}
	calendars, err := svc.ListCalendars(ctx, opts)
	if err != nil {
		return nil, err
	}
	return common.JSONResult(calendars)
}
