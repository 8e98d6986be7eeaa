package calendar_tools

import (
	"context"
	"errors"
	"sync"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"
	calendarv3 "google.golang.org/api/calendar/v3"

	"github.com/teemow/google-workspace-mcp/internal/calendar"
	"github.com/teemow/google-workspace-mcp/internal/gmail"
	"github.com/teemow/google-workspace-mcp/internal/server"
)

type fakeCalendar struct {
	mu        sync.Mutex
	calendars []*calendarv3.CalendarListEntry
	events    []*calendarv3.Event
	created   *calendarv3.Event

	showHidden    []bool
	minRoles      []string
	calendarIDs   []string
	queries       []calendar.EventQuery
	inserted      []*calendarv3.Event
	insertedCalID []string
}

func (f *fakeCalendar) ListCalendars(_ context.Context, showHidden bool, minAccessRole string) ([]*calendarv3.CalendarListEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showHidden = append(f.showHidden, showHidden)
	f.minRoles = append(f.minRoles, minAccessRole)
	return f.calendars, nil
}

func (f *fakeCalendar) ListEvents(_ context.Context, calendarID string, q calendar.EventQuery) ([]*calendarv3.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calendarIDs = append(f.calendarIDs, calendarID)
	f.queries = append(f.queries, q)
	return f.events, nil
}

func (f *fakeCalendar) InsertEvent(_ context.Context, calendarID string, event *calendarv3.Event) (*calendarv3.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, event)
	f.insertedCalID = append(f.insertedCalID, calendarID)
	if f.created != nil {
		return f.created, nil
	}
	return &calendarv3.Event{Id: "evt-1"}, nil
}

type fakeClients struct {
	calendar calendar.API
}

func (f *fakeClients) Gmail(context.Context) (gmail.API, error) {
	return nil, errors.New("gmail not configured")
}
func (f *fakeClients) Calendar(context.Context) (calendar.API, error) { return f.calendar, nil }
func (f *fakeClients) UserEmail() string                              { return "" }
func (f *fakeClients) Invalidate()                                    {}

func newTestServer(t *testing.T, api calendar.API, readOnly bool) *mcpserver.MCPServer {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), &fakeClients{calendar: api}, server.WithReadOnly(readOnly))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	s := mcpserver.NewMCPServer("test", "1.0.0", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterCalendarTools(s, sc))
	return s
}
