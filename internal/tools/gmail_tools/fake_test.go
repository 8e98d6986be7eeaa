package gmail_tools

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"
	gmailv1 "google.golang.org/api/gmail/v1"

	"github.com/teemow/google-workspace-mcp/internal/calendar"
	"github.com/teemow/google-workspace-mcp/internal/gmail"
	"github.com/teemow/google-workspace-mcp/internal/server"
)

type fakeGmail struct {
	mu       sync.Mutex
	listed   []*gmailv1.Message
	messages map[string]*gmailv1.Message
	profile  *gmailv1.Profile

	queries    []string
	maxResults []int64
	sentRaw    []string
}

func (f *fakeGmail) ListMessages(_ context.Context, query string, maxResults int64) ([]*gmailv1.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	f.maxResults = append(f.maxResults, maxResults)
	return f.listed, nil
}

func (f *fakeGmail) GetMessage(_ context.Context, id string) (*gmailv1.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[id]
	if !ok {
		return nil, errors.New("message " + id + " not found")
	}
	return msg, nil
}

func (f *fakeGmail) SendMessage(_ context.Context, raw string) (*gmailv1.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentRaw = append(f.sentRaw, raw)
	return &gmailv1.Message{Id: "sent-1"}, nil
}

func (f *fakeGmail) GetProfile(context.Context) (*gmailv1.Profile, error) {
	return f.profile, nil
}

type fakeClients struct {
	gmail gmail.API
}

func (f *fakeClients) Gmail(context.Context) (gmail.API, error) { return f.gmail, nil }
func (f *fakeClients) Calendar(context.Context) (calendar.API, error) {
	return nil, errors.New("calendar not configured")
}
func (f *fakeClients) UserEmail() string { return "jane@example.com" }
func (f *fakeClients) Invalidate()       {}

func plainMessage(id, subject, body string) *gmailv1.Message {
	return &gmailv1.Message{
		Id:       id,
		Snippet:  body,
		LabelIds: []string{"INBOX"},
		Payload: &gmailv1.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmailv1.MessagePartHeader{
				{Name: "From", Value: "bob@example.com"},
				{Name: "To", Value: "jane@example.com"},
				{Name: "Subject", Value: subject},
				{Name: "Date", Value: "Thu, 2 Jan 2025 10:00:00 +0000"},
			},
			Body: &gmailv1.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte(body))},
		},
	}
}

func newTestServer(t *testing.T, api gmail.API, readOnly bool) *mcpserver.MCPServer {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), &fakeClients{gmail: api}, server.WithReadOnly(readOnly))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	s := mcpserver.NewMCPServer("test", "1.0.0", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterGmailTools(s, sc))
	return s
}

