package gmail

import (
	"context"
	"time"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// userID addresses the mailbox of the authenticated user.
const userID = "me"

// API is the subset of the Gmail API used by Service.
type API interface {
	ListMessages(ctx context.Context, query string, maxResults int64) ([]*gmail.Message, error)
	GetMessage(ctx context.Context, id string) (*gmail.Message, error)
	SendMessage(ctx context.Context, raw string) (*gmail.Message, error)
	GetProfile(ctx context.Context) (*gmail.Profile, error)
}

type client struct {
	svc     *gmail.Service
	metrics *instrumentation.Metrics
}

// NewAPI adapts svc to API. Every call is traced and recorded on metrics,
// which may be nil. Failures are returned as upstream errors.
func NewAPI(svc *gmail.Service, metrics *instrumentation.Metrics) API {
	return &client{svc: svc, metrics: metrics}
}

func (c *client) ListMessages(ctx context.Context, query string, maxResults int64) (msgs []*gmail.Message, err error) {
	ctx, done := c.observe(ctx, instrumentation.OperationList)
	defer func() { done(err) }()

	resp, err := c.svc.Users.Messages.List(userID).Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, workspace.Upstream("failed to list messages", err)
	}
	return resp.Messages, nil
}

func (c *client) GetMessage(ctx context.Context, id string) (msg *gmail.Message, err error) {
	ctx, done := c.observe(ctx, instrumentation.OperationGet)
	defer func() { done(err) }()

	msg, err = c.svc.Users.Messages.Get(userID, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, workspace.Upstream("failed to get message "+id, err)
	}
	return msg, nil
}

func (c *client) SendMessage(ctx context.Context, raw string) (msg *gmail.Message, err error) {
	ctx, done := c.observe(ctx, instrumentation.OperationSend)
	defer func() { done(err) }()

	msg, err = c.svc.Users.Messages.Send(userID, &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return nil, workspace.Upstream("failed to send message", err)
	}
	return msg, nil
}

func (c *client) GetProfile(ctx context.Context) (p *gmail.Profile, err error) {
	ctx, done := c.observe(ctx, instrumentation.OperationGet)
	defer func() { done(err) }()

	p, err = c.svc.Users.GetProfile(userID).Context(ctx).Do()
	if err != nil {
		return nil, workspace.Upstream("failed to get profile", err)
	}
	return p, nil
}

func (c *client) observe(ctx context.Context, op string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceGmail, op)
	return ctx, func(err error) {
		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
		}
		c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceGmail, op, status, time.Since(start))
		instrumentation.EndSpan(span, err)
	}
}
