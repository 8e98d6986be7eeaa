package gmail

import (
	"context"
	"encoding/base64"
	"sync"

	gmail "google.golang.org/api/gmail/v1"
)

type fakeAPI struct {
	mu sync.Mutex

	listed     []*gmail.Message
	messages   map[string]*gmail.Message
	profile    *gmail.Profile
	listErr    error
	getErr     map[string]error
	sendErr    error
	profileErr error

	queries     []string
	maxResults  []int64
	sentRaw     []string
	profileHits int
}

func (f *fakeAPI) ListMessages(_ context.Context, query string, maxResults int64) ([]*gmail.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	f.maxResults = append(f.maxResults, maxResults)
	return f.listed, f.listErr
}

func (f *fakeAPI) GetMessage(_ context.Context, id string) (*gmail.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.getErr[id]; err != nil {
		return nil, err
	}
	return f.messages[id], nil
}

func (f *fakeAPI) SendMessage(_ context.Context, raw string) (*gmail.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sentRaw = append(f.sentRaw, raw)
	return &gmail.Message{Id: "sent-1"}, nil
}

func (f *fakeAPI) GetProfile(context.Context) (*gmail.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileHits++
	return f.profile, f.profileErr
}

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func plainMessage(id, subject, body string) *gmail.Message {
	return &gmail.Message{
		Id:       id,
		Snippet:  "snippet " + id,
		LabelIds: []string{"INBOX"},
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "alice@example.com"},
				{Name: "To", Value: "bob@example.com"},
				{Name: "Subject", Value: subject},
				{Name: "Date", Value: "Mon, 6 Jan 2025 10:00:00 +0000"},
			},
			Body: &gmail.MessagePartBody{Data: b64(body)},
		},
	}
}
