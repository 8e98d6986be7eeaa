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

func registerEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) {
	listEventsTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List calendar events for a specific date range"),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("date",
			mcp.Description("Start date in YYYY-MM-DD format (default: today)"),
		),
		mcp.WithNumber("days",
			mcp.Description("Number of days from start date (default: 1)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of events (default: 50, max: 2500)"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandlerWithService(
		"calendar_list_events", instrumentation.ServiceCalendar, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	if readOnly {
		return
	}

	createEventTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create a new calendar event with title, time, and optional details"),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title/summary"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description(`Start time in ISO 8601 format (e.g., "2025-11-02T10:00:00Z")`),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description(`End time in ISO 8601 format (e.g., "2025-11-02T11:00:00Z")`),
		),
		mcp.WithString("timeZone",
			mcp.Description("IANA time zone for start and end (default: UTC)"),
		),
		mcp.WithString("description",
			mcp.Description("Event description (optional)"),
		),
		mcp.WithString("location",
			mcp.Description("Event location (optional)"),
		),
		mcp.WithArray("attendees",
			args.StringOrArrayProperty(),
			mcp.Description("Attendee email addresses, as an array or comma-separated (optional)"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandlerWithService(
		"calendar_create_event", instrumentation.ServiceCalendar, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	opts, err := parseListEventsOptions(request.GetArguments())
	if err != nil {
		return nil, err
	}

	svc, err := sc.CalendarService(ctx)
	if err != nil {
		return nil, err
	}
	events, err := svc.ListEvents(ctx, opts)
	if err != nil {
		return nil, err
	}
	return common.JSONResult(events)
}

func parseListEventsOptions(a map[string]any) (calendar.ListEventsOptions, error) {
	var opts calendar.ListEventsOptions
	var err error

	if opts.CalendarID, err = args.OptionalString(a, "calendarId"); err != nil {
		return opts, err
	}
	if opts.Date, err = args.OptionalString(a, "date"); err != nil {
		return opts, err
	}
	days, _, err := args.OptionalPositiveInt(a, "days")
	if err != nil {
		return opts, err
	}
	opts.Days = int(days)
	if opts.MaxResults, _, err = args.OptionalPositiveInt(a, "maxResults"); err != nil {
		return opts, err
	}
	return opts, nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	in, err := parseCreateEventInput(request.GetArguments())
	if err != nil {
		return nil, err
	}

	svc, err := sc.CalendarService(ctx)
	if err != nil {
		return nil, err
	}
	event, err := svc.CreateEvent(ctx, in)
	if err != nil {
		return nil, err
	}
	return common.JSONResult(event)
}

func parseCreateEventInput(a map[string]any) (calendar.CreateEventInput, error) {
	var in calendar.CreateEventInput
	var err error

	if in.Summary, err = args.RequiredString(a, "summary"); err != nil {
		return in, err
	}
	if in.Start, err = args.RequiredString(a, "start"); err != nil {
		return in, err
	}
	if in.End, err = args.RequiredString(a, "end"); err != nil {
		return in, err
	}
	if in.CalendarID, err = args.OptionalString(a, "calendarId"); err != nil {
		return in, err
	}
	if in.TimeZone, err = args.OptionalString(a, "timeZone"); err != nil {
		return in, err
	}
	if in.Description, err = args.OptionalString(a, "description"); err != nil {
		return in, err
	}
	if in.Location, err = args.OptionalString(a, "location"); err != nil {
		return in, err
	}
	if in.Attendees, err = args.StringOrArray(a, "attendees", false); err != nil {
		return in, err
	}
	return in, nil
}
