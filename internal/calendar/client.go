package calendar

import (
	"context"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// API is the subset of the Calendar API used by Service.
type API interface {
	ListCalendars(ctx context.Context, showHidden bool, minAccessRole string) ([]*calendar.CalendarListEntry, error)
	ListEvents(ctx context.Context, calendarID string, q EventQuery) ([]*calendar.Event, error)
	InsertEvent(ctx context.Context, calendarID string, event *calendar.Event) (*calendar.Event, error)
}

type client struct {
	svc     *calendar.Service
	metrics *instrumentation.Metrics
}

// NewAPI adapts svc to API. metrics may be nil.
func NewAPI(svc *calendar.Service, metrics *instrumentation.Metrics) API {
	return &client{svc: svc, metrics: metrics}
}

func (c *client) ListCalendars(ctx context.Context, showHidden bool, minAccessRole string) (entries []*calendar.CalendarListEntry, err error) {
	ctx, done := c.observe(ctx, instrumentation.OperationList)
	defer func() { done(err) }()

	call := c.svc.CalendarList.List().ShowHidden(showHidden)
	if minAccessRole != "" {
		call = call.MinAccessRole(minAccessRole)
	}
	err = call.Pages(ctx, func(page *calendar.CalendarList) error {
		entries = append(entries, page.Items...)
		return nil
	})
	if err != nil {
		return nil, workspace.Upstream("failed to list calendars", err)
	}
	return entries, nil
}

func (c *client) ListEvents(ctx context.Context, calendarID string, q EventQuery) (events []*calendar.Event, err error) {
	ctx, done := c.observe(ctx, instrumentation.OperationList)
	defer func() { done(err) }()

	resp, err := c.svc.Events.List(calendarID).
		TimeMin(q.TimeMin).
		TimeMax(q.TimeMax).
		MaxResults(q.MaxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, workspace.Upstream("failed to list events", err)
	}
	return resp.Items, nil
}

func (c *client) InsertEvent(ctx context.Context, calendarID string, event *calendar.Event) (created *calendar.Event, err error) {
	ctx, done := c.observe(ctx, instrumentation.OperationCreate)
	defer func() { done(err) }()

	created, err = c.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, workspace.Upstream("failed to create event", err)
	}
	return created, nil
}

func (c *client) observe(ctx context.Context, op string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceCalendar, op)
	return ctx, func(err error) {
		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
		}
		c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, op, status, time.Since(start))
		instrumentation.EndSpan(span, err)
	}
}
