package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/teemow/google-workspace-mcp/internal/calendar"
	"github.com/teemow/google-workspace-mcp/internal/gmail"
	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
)

// Clients hands out the upstream API clients. *google.Session implements it.
type Clients interface {
	Gmail(ctx context.Context) (gmail.API, error)
	Calendar(ctx context.Context) (calendar.API, error)
	UserEmail() string
	Invalidate()
}

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	clients Clients

	logger   *slog.Logger
	metrics  *instrumentation.Metrics
	audit    *instrumentation.AuditLogger
	readOnly bool

	mu       sync.RWMutex
	shutdown bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithLogger sets the logger shared by all handlers. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) { sc.logger = logger }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(sc *ServerContext) { sc.metrics = m }
}

// WithAuditLogger sets the tool audit logger.
func WithAuditLogger(al *instrumentation.AuditLogger) Option {
	return func(sc *ServerContext) { sc.audit = al }
}

// WithReadOnly hides the tools that send mail or create events.
func WithReadOnly(readOnly bool) Option {
	return func(sc *ServerContext) { sc.readOnly = readOnly }
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context, clients Clients, opts ...Option) (*ServerContext, error) {
	if clients == nil {
		return nil, errors.New("google clients are required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	sc := &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		clients: clients,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// GmailService returns the mail operations bound to the current client.
func (sc *ServerContext) GmailService(ctx context.Context) (*gmail.Service, error) {
	api, err := sc.clients.Gmail(ctx)
	if err != nil {
		return nil, err
	}
	return gmail.NewService(api, gmail.WithLogger(sc.logger)), nil
}

// CalendarService returns the calendar operations bound to the current client.
func (sc *ServerContext) CalendarService(ctx context.Context) (*calendar.Service, error) {
	api, err := sc.clients.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.NewService(api, calendar.WithLogger(sc.logger)), nil
}

// UserEmail returns the configured user address, which may be empty.
func (sc *ServerContext) UserEmail() string {
	return sc.clients.UserEmail()
}

// InvalidateClients forces the next call to rebuild the Google clients.
func (sc *ServerContext) InvalidateClients() {
	sc.clients.Invalidate()
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Metrics returns the recorder, which may be nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// AuditLogger returns the audit logger, which may be nil.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.audit
}

// ReadOnly reports whether write tools are hidden.
func (sc *ServerContext) ReadOnly() bool {
	return sc.readOnly
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. It is safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}
