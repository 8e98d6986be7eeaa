package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/teemow/google-workspace-mcp/internal/calendar"
	"github.com/teemow/google-workspace-mcp/internal/gmail"
	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
	"github.com/teemow/google-workspace-mcp/internal/server"
	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

type stubClients struct {
	invalidated atomic.Int32
}

func (s *stubClients) Gmail(context.Context) (gmail.API, error)       { return nil, errors.New("unused") }
func (s *stubClients) Calendar(context.Context) (calendar.API, error) { return nil, errors.New("unused") }
func (s *stubClients) UserEmail() string                              { return "jane@example.com" }
func (s *stubClients) Invalidate()                                    { s.invalidated.Add(1) }

func newServerContext(t *testing.T, opts ...server.Option) (*server.ServerContext, *stubClients) {
	t.Helper()
	clients := &stubClients{}
	sc, err := server.NewServerContext(context.Background(), clients, opts...)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc, clients
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected result content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return tc.Text
}

func TestInstrumentedToolHandler_Success(t *testing.T) {
	sc, _ := newServerContext(t)

	called := false
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("success"), nil
	}

	result, err := InstrumentedToolHandler("test_tool", sc, handler)(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
	if result.IsError {
		t.Error("expected a successful result")
	}
	if got := textOf(t, result); got != "success" {
		t.Errorf("text = %q", got)
	}
}

func TestInstrumentedToolHandler_ErrorBecomesResult(t *testing.T) {
	sc, clients := newServerContext(t)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, workspace.Validation("emailId is required")
	}

	result, err := InstrumentedToolHandler("gmail_read_email", sc, handler)(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("errors must not escape the tool boundary, got %v", err)
	}
	if !result.IsError {
		t.Error("expected result.IsError to be true")
	}
	if got := textOf(t, result); got != "Error: emailId is required" {
		t.Errorf("text = %q", got)
	}
	if clients.invalidated.Load() != 0 {
		t.Error("validation errors must not invalidate the session")
	}
}

func TestInstrumentedToolHandler_ErrorResultPassesThrough(t *testing.T) {
	sc, _ := newServerContext(t)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("error message"), nil
	}

	result, err := InstrumentedToolHandler("test_tool", sc, handler)(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected result.IsError to be true")
	}
	if got := textOf(t, result); got != "error message" {
		t.Errorf("text = %q", got)
	}
}

func TestInstrumentedToolHandler_InvalidatesOnAuthFailure(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantInvalidate bool
	}{
		{
			name:           "upstream 401",
			err:            workspace.Upstream("failed to list messages", &googleapi.Error{Code: http.StatusUnauthorized, Message: "Invalid Credentials"}),
			wantInvalidate: true,
		},
		{
			name:           "rejected refresh token",
			err:            fmt.Errorf("Get \"https://gmail\": %w", &oauth2.RetrieveError{ErrorCode: "invalid_grant"}),
			wantInvalidate: true,
		},
		{
			name: "upstream 404",
			err:  workspace.Upstream("failed to get message x", &googleapi.Error{Code: http.StatusNotFound, Message: "Not Found"}),
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, clients := newServerContext(t)
			handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return nil, tt.err
			}

			result, err := InstrumentedToolHandler("gmail_list_emails", sc, handler)(context.Background(), mcp.CallToolRequest{})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !result.IsError {
				t.Error("expected an error result")
			}
			if got := clients.invalidated.Load() > 0; got != tt.wantInvalidate {
				t.Errorf("invalidated = %v, want %v", got, tt.wantInvalidate)
			}
		})
	}
}

func TestInstrumentedToolHandler_UpstreamMessageVerbatim(t *testing.T) {
	sc, _ := newServerContext(t)
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, workspace.Upstream("failed to get message abc", &googleapi.Error{Code: http.StatusNotFound, Message: "Requested entity was not found."})
	}

	result, _ := InstrumentedToolHandler("gmail_read_email", sc, handler)(context.Background(), mcp.CallToolRequest{})
	want := "Error: failed to get message abc: Requested entity was not found."
	if got := textOf(t, result); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestInstrumentedToolHandlerWithService_MetricsAndAudit(t *testing.T) {
	metrics, err := instrumentation.NewMetrics(noop.NewMeterProvider().Meter("test"), true)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	audit := instrumentation.NewAuditLogger(logger, instrumentation.AuditLoggingConfig{Enabled: true})

	sc, _ := newServerContext(t, server.WithMetrics(metrics), server.WithAuditLogger(audit))

	ok := InstrumentedToolHandlerWithService("calendar_list_events", instrumentation.ServiceCalendar, instrumentation.OperationList, sc,
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("[]"), nil
		})
	failing := InstrumentedToolHandlerWithService("calendar_create_event", instrumentation.ServiceCalendar, instrumentation.OperationCreate, sc,
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return nil, errors.New("calendar API error")
		})

	if _, err := ok(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Fatal(err)
	}
	if _, err := failing(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		`"msg":"tool_executed"`,
		`"tool":"calendar_list_events"`,
		`"msg":"tool_failed"`,
		`"tool":"calendar_create_event"`,
		`"error":"calendar API error"`,
		`"service":"calendar"`,
		`"invocation_id":`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("audit log missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, "jane@example.com") {
		t.Error("audit log must not contain the raw address without IncludePII")
	}
}

func TestJSONResult(t *testing.T) {
	result, err := JSONResult([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if got := textOf(t, result); got != "[]" {
		t.Errorf("empty list = %q, want []", got)
	}

	result, err = JSONResult(map[string]string{"email": "jane@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"email\": \"jane@example.com\"\n}"
	if got := textOf(t, result); got != want {
		t.Errorf("object = %q, want %q", got, want)
	}

	if _, err := JSONResult(make(chan int)); err == nil {
		t.Error("expected an encoding error")
	}
}
