package google

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
	calendarv3 "google.golang.org/api/calendar/v3"
	gmailv1 "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/teemow/google-workspace-mcp/internal/calendar"
	"github.com/teemow/google-workspace-mcp/internal/gmail"
	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
	"github.com/teemow/google-workspace-mcp/internal/logging"
	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// Session lazily builds the authenticated Gmail and Calendar clients and
// shares them between tool calls. Concurrent first callers wait on a single
// initialization.
type Session struct {
	endpoint      oauth2.Endpoint
	clientOptions []option.ClientOption
	logger        logging.Logger
	metrics       *instrumentation.Metrics

	group singleflight.Group

	mu         sync.RWMutex
	creds      Credentials
	clients    *clients
	generation uint64
}

type clients struct {
	gmail    gmail.API
	calendar calendar.API
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger logging.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithMetrics records session and API metrics on m.
func WithMetrics(m *instrumentation.Metrics) SessionOption {
	return func(s *Session) { s.metrics = m }
}

// WithTokenEndpoint overrides Google's OAuth endpoint.
func WithTokenEndpoint(endpoint oauth2.Endpoint) SessionOption {
	return func(s *Session) { s.endpoint = endpoint }
}

// WithClientOptions appends options passed to the generated API clients,
// for example option.WithEndpoint.
func WithClientOptions(opts ...option.ClientOption) SessionOption {
	return func(s *Session) { s.clientOptions = append(s.clientOptions, opts...) }
}

// NewSession returns a session for creds. No network call is made until a
// client is requested.
func NewSession(creds Credentials, opts ...SessionOption) *Session {
	s := &Session{
		creds:  creds,
		logger: logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Gmail returns the Gmail client, initializing the session if needed.
func (s *Session) Gmail(ctx context.Context) (gmail.API, error) {
	c, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return c.gmail, nil
}

// Calendar returns the Calendar client, initializing the session if needed.
func (s *Session) Calendar(ctx context.Context) (calendar.API, error) {
	c, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return c.calendar, nil
}

// UserEmail returns the configured GOOGLE_USER_EMAIL, which may be empty.
func (s *Session) UserEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.UserEmail
}

// Invalidate drops the cached clients and any supplied access token. The
// next request rebuilds the clients from the refresh token.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients == nil && s.creds.AccessToken == "" {
		return
	}
	s.clients = nil
	s.creds.AccessToken = ""
	s.generation++
	s.logger.Info("google session invalidated")
}

func (s *Session) get(ctx context.Context) (*clients, error) {
	s.mu.RLock()
	c := s.clients
	s.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	v, err, _ := s.group.Do("init", func() (any, error) {
		s.mu.RLock()
		c, creds, gen := s.clients, s.creds, s.generation
		s.mu.RUnlock()
		if c != nil {
			return c, nil
		}

		// Shared by every waiter, so one caller's cancellation must not
		// fail the others.
		c, err := s.init(context.WithoutCancel(ctx), creds)
		if err != nil {
			s.metrics.RecordSessionInit(ctx, instrumentation.StatusError)
			return nil, err
		}
		s.metrics.RecordSessionInit(ctx, instrumentation.StatusSuccess)

		s.mu.Lock()
		if s.generation == gen {
			s.clients = c
		}
		s.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*clients), nil
}

func (s *Session) init(ctx context.Context, creds Credentials) (*clients, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceUser, instrumentation.OperationSession)
	c, err := s.build(ctx, creds)
	instrumentation.EndSpan(span, err)
	return c, err
}

func (s *Session) build(ctx context.Context, creds Credentials) (*clients, error) {
	conf := OAuthConfig(creds, s.endpoint)

	// Refreshes happen lazily on later requests, long after ctx's caller
	// has returned.
	ts := TokenSource(context.Background(), conf, creds)
	tok, err := ts.Token()
	if err != nil {
		s.logger.Error("google token refresh failed", logging.Err(err))
		return nil, workspace.Upstream("failed to authenticate with Google", err)
	}
	s.logger.Info("google session initialized",
		"access_token", logging.SanitizeToken(tok.AccessToken),
		"expiry", tok.Expiry,
	)

	opts := append([]option.ClientOption{option.WithHTTPClient(NewHTTPClient(ts))}, s.clientOptions...)

	gsvc, err := gmailv1.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	csvc, err := calendarv3.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &clients{
		gmail:    gmail.NewAPI(gsvc, s.metrics),
		calendar: calendar.NewAPI(csvc, s.metrics),
	}, nil
}
