package calendar

import (
	"time"

	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// TimeRange returns the half-open window [min, max) starting at local
// midnight of date and spanning days calendar days. An empty date means
// today in loc.
func TimeRange(date string, days int, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if days < 1 {
		return time.Time{}, time.Time{}, workspace.Validation("days must be at least 1, got %d", days)
	}

	var start time.Time
	if date == "" {
		y, m, d := now.In(loc).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	} else {
		var err error
		start, err = time.ParseInLocation(DateLayout, date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, workspace.Validation("invalid date %q, expected YYYY-MM-DD", date)
		}
	}
	return start, start.AddDate(0, 0, days), nil
}

// FormatTime renders t as RFC 3339 in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
