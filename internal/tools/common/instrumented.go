package common

import (
	"context"
	"errors"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/oauth2"

	"github.com/teemow/google-workspace-mcp/internal/instrumentation"
	"github.com/teemow/google-workspace-mcp/internal/logging"
	"github.com/teemow/google-workspace-mcp/internal/server"
	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// ToolHandler is the signature mcp-go dispatches tool calls to.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with tracing, metrics and
// audit logging, and renders a returned error as an error result.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return InstrumentedToolHandlerWithService(toolName, "", "", sc, handler)
}

// InstrumentedToolHandlerWithService is like InstrumentedToolHandler but also
// tags the span and audit entry with the Google service and operation.
//
// handler reports failures by returning an error. The wrapper is the only
// place errors become "Error: <message>" results, so the client always sees
// isError rather than a protocol error. An upstream 401 or a rejected
// refresh token drops the cached Google clients so the next call
// re-authenticates.
func InstrumentedToolHandlerWithService(
	toolName string,
	serviceName string,
	operation string,
	sc *server.ServerContext,
	handler ToolHandler,
) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := instrumentation.StartToolSpan(ctx, toolName)

		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx).
			WithUser(sc.UserEmail())
		if serviceName != "" {
			invocation.WithService(serviceName, operation)
		}

		result, err := handler(ctx, request)
		if err == nil && result != nil && result.IsError {
			err = errors.New(resultText(result))
		}
		invocation.Complete(err)
		instrumentation.EndSpan(span, err)

		sc.Metrics().RecordToolInvocation(ctx, toolName, invocation.Status(), sc.UserEmail(), invocation.Duration)
		sc.AuditLogger().LogToolInvocation(ctx, invocation)

		if err == nil {
			return result, nil
		}

		sc.Logger().DebugContext(ctx, "tool call failed",
			logging.Tool(toolName),
			logging.Err(err),
			logging.UserHash(sc.UserEmail()),
		)
		if authRejected(err) {
			sc.Logger().WarnContext(ctx, "google credentials rejected, dropping cached clients", logging.Tool(toolName))
			sc.InvalidateClients()
		}
		if result != nil && result.IsError {
			return result, nil
		}
		return ErrorResult(err), nil
	}
}

func authRejected(err error) bool {
	if workspace.HTTPStatus(err) == http.StatusUnauthorized {
		return true
	}
	var rerr *oauth2.RetrieveError
	return errors.As(err, &rerr)
}

func resultText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			return tc.Text
		case *mcp.TextContent:
			return tc.Text
		}
	}
	return "tool returned an error result"
}
