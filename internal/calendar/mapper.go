package calendar

import (
	"strings"

	calendar "google.golang.org/api/calendar/v3"
)

// MapEvent converts an upstream event into an EventRecord.
func MapEvent(ev *calendar.Event) EventRecord {
	rec := EventRecord{
		ID:          ev.Id,
		Summary:     firstNonEmpty(ev.Summary, defaultSummary),
		Description: ev.Description,
		Location:    ev.Location,
		Status:      firstNonEmpty(ev.Status, defaultStatus),
		Attendees:   attendeeEmails(ev.Attendees),
	}
	rec.Start, rec.StartTimeZone = eventTime(ev.Start)
	rec.End, rec.EndTimeZone = eventTime(ev.End)
	return rec
}

// MapCreatedEvent maps the insert response, falling back to the request for
// anything the response leaves empty.
func MapCreatedEvent(ev *calendar.Event, in CreateEventInput) EventRecord {
	rec := MapEvent(ev)
	rec.Summary = firstNonEmpty(ev.Summary, in.Summary, defaultSummary)
	rec.Description = firstNonEmpty(ev.Description, in.Description)
	rec.Location = firstNonEmpty(ev.Location, in.Location)
	rec.Start = firstNonEmpty(rec.Start, in.Start)
	rec.End = firstNonEmpty(rec.End, in.End)
	if rec.Attendees == nil {
		rec.Attendees = cleanEmails(in.Attendees)
	}
	return rec
}

// MapCalendar converts a calendar list entry into a CalendarInfo.
func MapCalendar(entry *calendar.CalendarListEntry) CalendarInfo {
	return CalendarInfo{
		ID:              entry.Id,
		Summary:         firstNonEmpty(entry.Summary, defaultSummary),
		Description:     entry.Description,
		Primary:         entry.Primary,
		AccessRole:      firstNonEmpty(entry.AccessRole, defaultAccessRole),
		BackgroundColor: entry.BackgroundColor,
		ForegroundColor: entry.ForegroundColor,
		TimeZone:        entry.TimeZone,
	}
}

func eventTime(t *calendar.EventDateTime) (value, zone string) {
	if t == nil {
		return "", ""
	}
	return firstNonEmpty(t.DateTime, t.Date), t.TimeZone
}

func attendeeEmails(attendees []*calendar.EventAttendee) []string {
	var out []string
	for _, a := range attendees {
		if a != nil && strings.TrimSpace(a.Email) != "" {
			out = append(out, a.Email)
		}
	}
	return out
}

func cleanEmails(emails []string) []string {
	var out []string
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
