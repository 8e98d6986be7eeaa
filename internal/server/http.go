package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
)

// MCPEndpoint is the path of the streamable HTTP transport.
const MCPEndpoint = "/mcp"

// HTTPServerConfig configures the streamable HTTP transport.
type HTTPServerConfig struct {
	Addr    string
	Version string
}

// HTTPServer serves the MCP streamable HTTP transport and the health probes.
type HTTPServer struct {
	httpServer *http.Server
	health     *HealthChecker
	addr       string
	listener   net.Listener
}

// NewHTTPServer wires mcpServer behind /mcp. Every request is recorded on the
// server context's metrics.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext, config HTTPServerConfig) *HTTPServer {
	health := NewHealthChecker(sc, config.Version)

	mux := http.NewServeMux()
	mux.Handle(MCPEndpoint, mcpserver.NewStreamableHTTPServer(mcpServer,
		mcpserver.WithEndpointPath(MCPEndpoint),
	))
	health.RegisterHealthEndpoints(mux)

	var metrics *instrumentation.Metrics
	if sc != nil {
		metrics = sc.Metrics()
	}

	return &HTTPServer{
		addr:   config.Addr,
		health: health,
		httpServer: &http.Server{
			Handler:           MetricsMiddleware(metrics, mux),
			ReadHeaderTimeout: 10 * time.Second,
			// No WriteTimeout: the transport keeps event streams open.
			IdleTimeout: 120 * time.Second,
		},
	}
}

// Handler returns the root handler, for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// Health returns the probe state so callers can flip readiness on shutdown.
func (s *HTTPServer) Health() *HealthChecker {
	return s.health
}

// Start listens on the configured address and serves until Shutdown.
func (s *HTTPServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	slog.Info("starting streamable HTTP server", "addr", ln.Addr().String(), "endpoint", MCPEndpoint)

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown marks the server not ready and drains connections.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	return s.httpServer.Shutdown(ctx)
}

// MetricsMiddleware records method, normalized path, status and latency of
// every request. metrics may be nil.
func MetricsMiddleware(metrics *instrumentation.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps server-sent event responses streaming through the wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
