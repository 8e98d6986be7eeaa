package args

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

// StringOrArrayProperty declares a property as a string or an array of
// strings, the shapes StringOrArray accepts.
func StringOrArrayProperty() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = []string{"string", "array"}
		schema["items"] = map[string]any{"type": "string"}
	}
}

// StringOrArray parses an argument that can be either a single string or an
// array of strings. A single string is split on commas so "a@x.com, b@x.com"
// and ["a@x.com", "b@x.com"] are equivalent. Blank entries are dropped.
// Absent arguments yield nil; required arguments must yield at least one
// entry.
func StringOrArray(args map[string]any, name string, required bool) ([]string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		if required {
			return nil, workspace.Validation("%s is required", name)
		}
		return nil, nil
	}

	var result []string
	switch val := v.(type) {
	case string:
		result = splitList(val)
	case []string:
		for _, item := range val {
			result = append(result, splitList(item)...)
		}
	case []any:
		for i, item := range val {
			str, ok := item.(string)
			if !ok {
				return nil, workspace.Validation("%s[%d] must be a string", name, i)
			}
			result = append(result, splitList(str)...)
		}
	default:
		return nil, workspace.Validation("%s must be a string or array of strings", name)
	}

	if required && len(result) == 0 {
		return nil, workspace.Validation("%s cannot be empty", name)
	}
	return result, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
