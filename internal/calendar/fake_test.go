package calendar

import (
	"context"
	"sync"

	calendar "google.golang.org/api/calendar/v3"
)

type listCalendarsCall struct {
	showHidden    bool
	minAccessRole string
}

type listEventsCall struct {
	calendarID string
	query      EventQuery
}

type fakeAPI struct {
	mu sync.Mutex

	calendars []*calendar.CalendarListEntry
	events    []*calendar.Event
	created   *calendar.Event
	err       error

	calendarCalls []listCalendarsCall
	eventCalls    []listEventsCall
	inserted      []*calendar.Event
	insertedIn    []string
}

func (f *fakeAPI) ListCalendars(_ context.Context, showHidden bool, minAccessRole string) ([]*calendar.CalendarListEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calendarCalls = append(f.calendarCalls, listCalendarsCall{showHidden, minAccessRole})
	return f.calendars, f.err
}

func (f *fakeAPI) ListEvents(_ context.Context, calendarID string, q EventQuery) ([]*calendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventCalls = append(f.eventCalls, listEventsCall{calendarID, q})
	return f.events, f.err
}

func (f *fakeAPI) InsertEvent(_ context.Context, calendarID string, event *calendar.Event) (*calendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, event)
	f.insertedIn = append(f.insertedIn, calendarID)
	if f.err != nil {
		return nil, f.err
	}
	if f.created != nil {
		return f.created, nil
	}
	return &calendar.Event{Id: "new-1"}, nil
}
