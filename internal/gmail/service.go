package gmail

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teemow/google-workspace-mcp/internal/logging"
	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// defaultFetchLimit bounds the concurrent messages.get calls of one listing.
const defaultFetchLimit = 10

// Service implements the mail operations on top of an API.
type Service struct {
	api        API
	logger     *slog.Logger
	now        func() time.Time
	fetchLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock replaces time.Now for query construction.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithFetchLimit sets how many messages are fetched concurrently.
func WithFetchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fetchLimit = n
		}
	}
}

// NewService returns a Service backed by api.
func NewService(api API, opts ...Option) *Service {
	s := &Service{
		api:        api,
		logger:     slog.Default(),
		now:        time.Now,
		fetchLimit: defaultFetchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListEmails returns the messages matching opts, newest first as ordered by
// Gmail. Details are fetched concurrently; the first failure aborts the whole
// listing.
func (s *Service) ListEmails(ctx context.Context, opts ListOptions) ([]EmailRecord, error) {
	hours := opts.Hours
	if hours == 0 {
		hours = DefaultHours
	}
	if hours < 0 {
		return nil, workspace.Validation("hours must be positive, got %v", hours)
	}
	maxResults, err := NormalizeMaxResults(opts.MaxResults)
	if err != nil {
		return nil, err
	}

	query := BuildQuery(s.now(), hours, opts.Query)
	s.logger.DebugContext(ctx, "listing messages", logging.Operation("gmail.list"), slog.String("query", query))

	msgs, err := s.api.ListMessages(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	records := make([]EmailRecord, len(msgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchLimit)
	for i, m := range msgs {
		g.Go(func() error {
			rec, err := s.fetch(gctx, m.Id)
			if err != nil {
				return err
			}
			rec.Body = Truncate(rec.Body, ListBodyLimit)
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "listed messages", logging.Operation("gmail.list"), logging.Count(len(records)))
	return records, nil
}

// ReadEmail returns one message with its full body.
func (s *Service) ReadEmail(ctx context.Context, id string) (EmailRecord, error) {
	if strings.TrimSpace(id) == "" {
		return EmailRecord{}, workspace.Validation("emailId is required")
	}
	return s.fetch(ctx, id)
}

// SearchEmails runs query over the last year of mail.
func (s *Service) SearchEmails(ctx context.Context, query string, maxResults int64) ([]EmailRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, workspace.Validation("query is required")
	}
	return s.ListEmails(ctx, ListOptions{
		Hours:      SearchHours,
		MaxResults: maxResults,
		Query:      query,
	})
}

// SendEmail sends req. A recipient entry that is exactly "me" is replaced
// with the mailbox address, which is looked up at most once.
func (s *Service) SendEmail(ctx context.Context, req SendRequest) (SendResult, error) {
	if len(splitAddresses(req.To)) == 0 {
		return SendResult{}, workspace.Validation("at least one recipient is required")
	}

	toList, ccList, bccList := req.To, req.Cc, req.Bcc
	if ReferencesMe(toList, ccList, bccList) {
		profile, err := s.api.GetProfile(ctx)
		if err != nil {
			return SendResult{}, err
		}
		toList = ReplaceMe(toList, profile.EmailAddress)
		ccList = ReplaceMe(ccList, profile.EmailAddress)
		bccList = ReplaceMe(bccList, profile.EmailAddress)
	}
	to, cc, bcc := JoinAddresses(toList), JoinAddresses(ccList), JoinAddresses(bccList)

	raw := EncodeRaw(ComposeMessage(to, cc, bcc, req.Subject, req.Body, req.IsHTML))
	sent, err := s.api.SendMessage(ctx, raw)
	if err != nil {
		return SendResult{}, err
	}
	return SendResult{Success: true, MessageID: sent.Id}, nil
}

// Profile returns the mailbox summary.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	p, err := s.api.GetProfile(ctx)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		EmailAddress:  p.EmailAddress,
		MessagesTotal: p.MessagesTotal,
		ThreadsTotal:  p.ThreadsTotal,
	}, nil
}

func (s *Service) fetch(ctx context.Context, id string) (EmailRecord, error) {
	msg, err := s.api.GetMessage(ctx, id)
	if err != nil {
		return EmailRecord{}, err
	}
	body, err := ExtractBody(msg.Payload)
	if err != nil {
		return EmailRecord{}, err
	}
	return MapEmail(msg, body), nil
}

// NormalizeMaxResults applies the default to 0, rejects negative values and
// clamps to MaxResultsLimit.
func NormalizeMaxResults(n int64) (int64, error) {
	switch {
	case n == 0:
		return DefaultMaxResults, nil
	case n < 0:
		return 0, workspace.Validation("maxResults must be at least 1, got %d", n)
	case n > MaxResultsLimit:
		return MaxResultsLimit, nil
	}
	return n, nil
}
