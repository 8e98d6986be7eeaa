package google

import (
	calendar "google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
)

// Scopes are requested for the refresh-token grant. They must be a subset of
// the scopes the refresh token was issued for.
var Scopes = []string{
	gmail.GmailReadonlyScope,
	gmail.GmailSendScope,
	calendar.CalendarScope,
}
