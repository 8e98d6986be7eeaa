package gmail

import (
	"encoding/base64"
	"mime"
	"strings"
	"unicode"
)

// ComposeMessage renders the RFC 5322 message for recipients that have
// already been joined and resolved. Cc and Bcc lines are only present when
// non-empty.
func ComposeMessage(to, cc, bcc, subject, body string, isHTML bool) string {
	contentType := "text/plain"
	if isHTML {
		contentType = "text/html"
	}

	lines := []string{"To: " + to}
	if cc != "" {
		lines = append(lines, "Cc: "+cc)
	}
	if bcc != "" {
		lines = append(lines, "Bcc: "+bcc)
	}
	lines = append(lines,
		"Subject: "+encodeHeader(subject),
		"Content-Type: "+contentType+"; charset=UTF-8",
		"",
		body,
	)
	return strings.Join(lines, "\n")
}

// EncodeRaw encodes a message for the Gmail raw field.
func EncodeRaw(msg string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(msg))
}

// DecodeRaw reverses EncodeRaw.
func DecodeRaw(raw string) (string, error) {
	return decodeData(raw)
}

// encodeHeader applies RFC 2047 B-encoding when s is not plain ASCII.
func encodeHeader(s string) string {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}
