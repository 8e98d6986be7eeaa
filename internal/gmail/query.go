package gmail

import (
	"fmt"
	"time"
)

// BuildQuery returns the messages.list query for mail received in the last
// hours before now. An empty query restricts the result to the inbox.
func BuildQuery(now time.Time, hours float64, query string) string {
	cutoff := now.Add(-time.Duration(hours * float64(time.Hour)))
	q := fmt.Sprintf("after:%d", cutoff.Unix())
	if query != "" {
		return q + " " + query
	}
	return q + " in:inbox"
}
