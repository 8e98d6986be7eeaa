package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

func newTestHTTPServer(t *testing.T) *HTTPServer {
	t.Helper()
	sc, err := NewServerContext(context.Background(), &fakeClients{})
	if err != nil {
		t.Fatal(err)
	}
	mcpSrv := mcpserver.NewMCPServer("test-server", "1.0.0", mcpserver.WithToolCapabilities(true))
	return NewHTTPServer(mcpSrv, sc, HTTPServerConfig{Addr: "127.0.0.1:0", Version: "1.0.0"})
}

func TestHTTPServer_HealthRoutes(t *testing.T) {
	srv := newTestHTTPServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/healthz/detailed"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestHTTPServer_Initialize(t *testing.T) {
	srv := newTestHTTPServer(t)

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
	req := httptest.NewRequest(http.MethodPost, MCPEndpoint, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST %s = %d: %s", MCPEndpoint, rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"test-server"`) {
		t.Errorf("initialize response missing server name: %s", rec.Body.String())
	}
}

func TestHTTPServer_ShutdownClearsReadiness(t *testing.T) {
	srv := newTestHTTPServer(t)

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if srv.Health().IsReady() {
		t.Error("server should not be ready after shutdown")
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /readyz = %d, want 503", rec.Code)
	}
}
