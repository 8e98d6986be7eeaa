// Package toolstest drives an MCP server through JSON-RPC messages in tests,
// the same way a client on the stdio transport would.
package toolstest

import (
	"context"
	"encoding/json"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"
)

// Result is the decoded result of a tools/call request.
type Result struct {
	IsError bool `json:"isError"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Text returns the first text content.
func (r Result) Text() string {
	for _, c := range r.Content {
		if c.Type == "text" {
			return c.Text
		}
	}
	return ""
}

// RPC sends one request through s and returns the raw result member. A
// JSON-RPC error fails the test.
func RPC(t *testing.T, s *mcpserver.MCPServer, method string, params any) json.RawMessage {
	t.Helper()
	req, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	raw, err := json.Marshal(s.HandleMessage(context.Background(), req))
	require.NoError(t, err)

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  json.RawMessage `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Empty(t, envelope.Error, "unexpected JSON-RPC error: %s", raw)
	return envelope.Result
}

// CallTool invokes a tool and decodes its result.
func CallTool(t *testing.T, s *mcpserver.MCPServer, name string, arguments map[string]any) Result {
	t.Helper()
	raw := RPC(t, s, "tools/call", map[string]any{"name": name, "arguments": arguments})
	var res Result
	require.NoError(t, json.Unmarshal(raw, &res))
	require.NotEmpty(t, res.Content, "empty tool result: %s", raw)
	return res
}

// ToolNames lists the registered tools.
func ToolNames(t *testing.T, s *mcpserver.MCPServer) []string {
	t.Helper()
	raw := RPC(t, s, "tools/list", map[string]any{})
	var res struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}

// InputProperties returns the input schema properties of the named tool as
// clients see them in tools/list.
func InputProperties(t *testing.T, s *mcpserver.MCPServer, name string) map[string]map[string]any {
	t.Helper()
	raw := RPC(t, s, "tools/list", map[string]any{})
	var res struct {
		Tools []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Properties map[string]map[string]any `json:"properties"`
			} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	for _, tool := range res.Tools {
		if tool.Name == name {
			return tool.InputSchema.Properties
		}
	}
	require.Failf(t, "tool not registered", "%s", name)
	return nil
}

// ReadResource reads uri and returns the text of its first content item.
func ReadResource(t *testing.T, s *mcpserver.MCPServer, uri string) (mimeType, text string) {
	t.Helper()
	raw := RPC(t, s, "resources/read", map[string]any{"uri": uri})
	var res struct {
		Contents []struct {
			URI      string `json:"uri"`
			MIMEType string `json:"mimeType"`
			Text     string `json:"text"`
		} `json:"contents"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	require.NotEmpty(t, res.Contents, "empty resource: %s", raw)
	return res.Contents[0].MIMEType, res.Contents[0].Text
}
