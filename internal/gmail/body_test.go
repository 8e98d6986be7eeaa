package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

func part(mimeType, data string, children ...*gmail.MessagePart) *gmail.MessagePart {
	p := &gmail.MessagePart{MimeType: mimeType, Parts: children}
	if data != "" {
		p.Body = &gmail.MessagePartBody{Data: b64(data)}
	}
	return p
}

func TestExtractBody(t *testing.T) {
	tests := []struct {
		name    string
		payload *gmail.MessagePart
		want    string
	}{
		{
			name:    "nil payload",
			payload: nil,
			want:    "",
		},
		{
			name:    "inline data takes precedence over parts",
			payload: part("text/plain", "inline text", part("text/plain", "part text")),
			want:    "inline text",
		},
		{
			name: "plain text preferred over html at the same level",
			payload: part("multipart/alternative", "",
				part("text/html", "<p>html</p>"),
				part("text/plain", "plain"),
			),
			want: "plain",
		},
		{
			name: "nested plain text wins over top level html",
			payload: part("multipart/mixed", "",
				part("text/html", "<b>top html</b>"),
				part("multipart/alternative", "",
					part("text/plain", "nested plain"),
				),
			),
			want: "nested plain",
		},
		{
			name: "html fallback strips tags and collapses whitespace",
			payload: part("multipart/alternative", "",
				part("text/html", "<html><head><STYLE type=\"text/css\">p { color: red; }</STYLE></head>"+
					"<body><script>alert('x')</script><p>Hello\n\n   <b>world</b></p>  <div>again</div></body></html>"),
			),
			want: "Hello world again",
		},
		{
			name:    "inline html payload is converted",
			payload: part("text/html", "<p>Hi <i>there</i></p>"),
			want:    "Hi there",
		},
		{
			name: "parts without data are skipped",
			payload: part("multipart/alternative", "",
				&gmail.MessagePart{MimeType: "text/plain"},
				part("text/plain", "second"),
			),
			want: "second",
		},
		{
			name:    "empty part list",
			payload: part("multipart/mixed", ""),
			want:    "",
		},
		{
			name:    "line endings and blank lines are normalized",
			payload: part("text/plain", "\r\n  line one\r\n\r\n\r\n\r\nline two\n\n\n\nline three  \r\n"),
			want:    "line one\n\nline two\n\nline three",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBody(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractBody_HTMLOnlyHasNoTagsOrDoubleSpaces(t *testing.T) {
	html := "<table><tr><td>  Cell   A </td>\n<td>Cell\tB</td></tr></table><br/> <a href=\"x\">link</a>"
	got, err := ExtractBody(part("multipart/alternative", "", part("text/html", html)))
	require.NoError(t, err)

	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.NotContains(t, got, "  ")
	assert.Equal(t, "Cell A Cell B link", got)
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"comment and doctype", "<!DOCTYPE html><!-- note --><p>x</p>", "x"},
		{"closing and self closing", "a<br/>b</div>", "ab"},
		{"literal angle brackets", "<p>a < b and c > d</p>", "a < b and c > d"},
		{"less than before digit", "<p>x <5 items</p>", "x <5 items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.html))
		})
	}
}

func TestExtractBody_AcceptsStandardAlphabet(t *testing.T) {
	// "??>" encodes to characters that differ between the alphabets.
	text := "??> ok"
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		payload := &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: enc.EncodeToString([]byte(text))},
		}
		got, err := ExtractBody(payload)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}

func TestExtractBody_MalformedData(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: "!!!not base64!!!"},
		}},
	}

	_, err := ExtractBody(payload)
	require.Error(t, err)
	assert.True(t, workspace.IsKind(err, workspace.KindDecode))
	assert.Contains(t, err.Error(), "failed to decode message body")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "äö", Truncate("äöü", 2), "counts runes, not bytes")
	assert.Equal(t, "", Truncate("abc", 0))

	long := strings.Repeat("x", ListBodyLimit+10)
	assert.Len(t, Truncate(long, ListBodyLimit), ListBodyLimit)
}
