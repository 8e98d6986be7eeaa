package server

import (
	"context"
	"sync/atomic"

	"github.com/teemow/google-workspace-mcp/internal/calendar"
	"github.com/teemow/google-workspace-mcp/internal/gmail"
)

type fakeClients struct {
	gmailAPI    gmail.API
	calendarAPI calendar.API
	err         error
	email       string
	invalidated atomic.Int32
}

func (f *fakeClients) Gmail(context.Context) (gmail.API, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.gmailAPI, nil
}

func (f *fakeClients) Calendar(context.Context) (calendar.API, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.calendarAPI, nil
}

func (f *fakeClients) UserEmail() string { return f.email }
func (f *fakeClients) Invalidate()       { f.invalidated.Add(1) }
