package calendar

import (
	"context"
	"log/slog"
	"slices"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/google-workspace-mcp/internal/logging"
	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// Service implements the calendar operations on top of an API.
type Service struct {
	api      API
	logger   *slog.Logger
	now      func() time.Time
	location *time.Location
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock replaces time.Now for the default date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone in which dates start at midnight. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

// NewService returns a Service backed by api.
func NewService(api API, opts ...Option) *Service {
	s := &Service{
		api:      api,
		logger:   slog.Default(),
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCalendars returns the user's calendar list.
func (s *Service) ListCalendars(ctx context.Context, opts ListCalendarsOptions) ([]CalendarInfo, error) {
	if opts.MinAccessRole != "" && !slices.Contains(AccessRoles, opts.MinAccessRole) {
		return nil, workspace.Validation("invalid minAccessRole %q, must be one of: freeBusyReader, reader, writer, owner", opts.MinAccessRole)
	}

	entries, err := s.api.ListCalendars(ctx, opts.ShowHidden, opts.MinAccessRole)
	if err != nil {
		return nil, err
	}

	out := make([]CalendarInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, MapCalendar(e))
	}
	return out, nil
}

// ListEvents returns the expanded events in the requested day window,
// ordered by start time.
func (s *Service) ListEvents(ctx context.Context, opts ListEventsOptions) ([]EventRecord, error) {
	calendarID := opts.CalendarID
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	days := opts.Days
	if days == 0 {
		days = DefaultDays
	}
	maxResults, err := NormalizeMaxResults(opts.MaxResults)
	if err != nil {
		return nil, err
	}

	timeMin, timeMax, err := TimeRange(opts.Date, days, s.now(), s.location)
	if err != nil {
		return nil, err
	}
	q := EventQuery{
		TimeMin:    FormatTime(timeMin),
		TimeMax:    FormatTime(timeMax),
		MaxResults: maxResults,
	}
	s.logger.DebugContext(ctx, "listing events",
		logging.CalendarID(calendarID),
		slog.String("time_min", q.TimeMin),
		slog.String("time_max", q.TimeMax),
	)

	events, err := s.api.ListEvents(ctx, calendarID, q)
	if err != nil {
		return nil, err
	}

	out := make([]EventRecord, 0, len(events))
	for _, ev := range events {
		out = append(out, MapEvent(ev))
	}
	return out, nil
}

// CreateEvent inserts a timed event and returns it as stored.
func (s *Service) CreateEvent(ctx context.Context, in CreateEventInput) (EventRecord, error) {
	start, err := time.Parse(time.RFC3339, in.Start)
	if err != nil {
		return EventRecord{}, workspace.Validation("invalid start %q, expected RFC 3339", in.Start)
	}
	end, err := time.Parse(time.RFC3339, in.End)
	if err != nil {
		return EventRecord{}, workspace.Validation("invalid end %q, expected RFC 3339", in.End)
	}
	if end.Before(start) {
		return EventRecord{}, workspace.Validation("end must not be before start")
	}

	calendarID := in.CalendarID
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	zone := in.TimeZone
	if zone == "" {
		zone = DefaultTimeZone
	}

	event := &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Location:    in.Location,
		Start:       &calendar.EventDateTime{DateTime: in.Start, TimeZone: zone},
		End:         &calendar.EventDateTime{DateTime: in.End, TimeZone: zone},
	}
	for _, email := range cleanEmails(in.Attendees) {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := s.api.InsertEvent(ctx, calendarID, event)
	if err != nil {
		return EventRecord{}, err
	}
	s.logger.DebugContext(ctx, "created event", logging.CalendarID(calendarID), slog.String("event_id", created.Id))
	return MapCreatedEvent(created, in), nil
}

// NormalizeMaxResults applies the default to 0, rejects negative values and
// clamps to MaxResultsLimit.
func NormalizeMaxResults(n int64) (int64, error) {
	switch {
	case n == 0:
		return DefaultMaxResults, nil
	case n < 0:
		return 0, workspace.Validation("maxResults must be at least 1, got %d", n)
	case n > MaxResultsLimit:
		return MaxResultsLimit, nil
	}
	return n, nil
}
