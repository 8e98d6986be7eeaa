package gmail

import (
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// HeaderValue returns the first header named name, ignoring case, or "".
func HeaderValue(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if h != nil && strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// MapEmail builds the output record for msg with an already extracted body.
func MapEmail(msg *gmail.Message, body string) EmailRecord {
	var headers []*gmail.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}

	labels := msg.LabelIds
	if labels == nil {
		labels = []string{}
	}

	return EmailRecord{
		ID:      msg.Id,
		From:    HeaderValue(headers, "From"),
		To:      HeaderValue(headers, "To"),
		Subject: HeaderValue(headers, "Subject"),
		Date:    HeaderValue(headers, "Date"),
		Snippet: msg.Snippet,
		Body:    body,
		Labels:  labels,
	}
}
