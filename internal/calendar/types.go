package calendar

const (
	DefaultCalendarID = "primary"
	DefaultDays       = 1
	DefaultMaxResults = 50
	DefaultTimeZone   = "UTC"

	// MaxResultsLimit is the largest page events.list accepts.
	MaxResultsLimit = 2500

	// DateLayout is the accepted format of the date argument.
	DateLayout = "2006-01-02"

	defaultSummary    = "No title"
	defaultStatus     = "confirmed"
	defaultAccessRole = "reader"
)

// AccessRoles are the values accepted as a minimum access role, lowest first.
var AccessRoles = []string{"freeBusyReader", "reader", "writer", "owner"}

// EventRecord is the stable JSON shape returned for an event.
type EventRecord struct {
	ID            string   `json:"id"`
	Summary       string   `json:"summary"`
	Description   string   `json:"description,omitempty"`
	Start         string   `json:"start"`
	End           string   `json:"end"`
	StartTimeZone string   `json:"startTimeZone,omitempty"`
	EndTimeZone   string   `json:"endTimeZone,omitempty"`
	Location      string   `json:"location,omitempty"`
	Attendees     []string `json:"attendees,omitempty"`
	Status        string   `json:"status"`
}

// CalendarInfo is the stable JSON shape returned for a calendar list entry.
type CalendarInfo struct {
	ID              string `json:"id"`
	Summary         string `json:"summary"`
	Description     string `json:"description,omitempty"`
	Primary         bool   `json:"primary"`
	AccessRole      string `json:"accessRole"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	ForegroundColor string `json:"foregroundColor,omitempty"`
	TimeZone        string `json:"timeZone,omitempty"`
}

// ListCalendarsOptions filters the calendar list.
type ListCalendarsOptions struct {
	ShowHidden    bool
	MinAccessRole string
}

// ListEventsOptions selects events. Zero values take the defaults.
type ListEventsOptions struct {
	CalendarID string
	Date       string
	Days       int
	MaxResults int64
}

// EventQuery is the request sent to events.list.
type EventQuery struct {
	TimeMin    string
	TimeMax    string
	MaxResults int64
}

// CreateEventInput describes a new event. Start and End are RFC 3339.
type CreateEventInput struct {
	CalendarID  string
	Summary     string
	Description string
	Location    string
	Start       string
	End         string
	TimeZone    string
	Attendees   []string
}
