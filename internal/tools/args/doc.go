// Package args parses MCP tool arguments.
//
// Arguments arrive as the decoded JSON object of a tools/call request, so
// numbers are float64 and arrays are []any. Every helper distinguishes an
// absent argument from a present one and returns a workspace validation
// error when a present value has the wrong shape.
package args
