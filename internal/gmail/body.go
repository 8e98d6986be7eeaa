package gmail

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

const (
	mimeTextPlain = "text/plain"
	mimeTextHTML  = "text/html"
)

var (
	styleBlock  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptBlock = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	htmlTag     = regexp.MustCompile(`<[A-Za-z/!?][^>]*>`)
	whitespace  = regexp.MustCompile(`\s+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
)

// ExtractBody returns the readable text of a message payload.
//
// Inline payload data wins over sub-parts. Otherwise the first text/plain part
// found depth-first is used, and only if there is none anywhere the first
// text/html part is converted to text.
func ExtractBody(payload *gmail.MessagePart) (string, error) {
	if payload == nil {
		return "", nil
	}

	var text string
	if payload.Body != nil && payload.Body.Data != "" {
		data, err := decodeData(payload.Body.Data)
		if err != nil {
			return "", err
		}
		text = data
		if strings.EqualFold(payload.MimeType, mimeTextHTML) {
			text = HTMLToText(text)
		}
	} else {
		plain, err := findPart(payload.Parts, mimeTextPlain)
		if err != nil {
			return "", err
		}
		text = plain
		if text == "" {
			html, err := findPart(payload.Parts, mimeTextHTML)
			if err != nil {
				return "", err
			}
			text = HTMLToText(html)
		}
	}
	return tidy(text), nil
}

// findPart returns the decoded data of the first part of mimeType with data,
// searching depth-first. Parts without data are skipped.
func findPart(parts []*gmail.MessagePart, mimeType string) (string, error) {
	for _, part := range parts {
		if part == nil {
			continue
		}
		if strings.EqualFold(part.MimeType, mimeType) && part.Body != nil && part.Body.Data != "" {
			return decodeData(part.Body.Data)
		}
		if len(part.Parts) > 0 {
			nested, err := findPart(part.Parts, mimeType)
			if err != nil {
				return "", err
			}
			if nested != "" {
				return nested, nil
			}
		}
	}
	return "", nil
}

// base64 alphabets Gmail has been observed to emit, most common first.
var encodings = []*base64.Encoding{
	base64.RawURLEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.StdEncoding,
}

func decodeData(data string) (string, error) {
	var errs []error
	for _, enc := range encodings {
		b, err := enc.DecodeString(data)
		if err == nil {
			return string(b), nil
		}
		errs = append(errs, err)
	}
	return "", workspace.Decode("message body", errors.Join(errs[0], errs[len(errs)-1]))
}

// HTMLToText drops style and script blocks, strips the remaining tags and
// collapses whitespace.
func HTMLToText(html string) string {
	s := styleBlock.ReplaceAllString(html, "")
	s = scriptBlock.ReplaceAllString(s, "")
	s = htmlTag.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func tidy(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Truncate returns at most limit runes of s.
func Truncate(s string, limit int) string {
	if limit < 0 || len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
