package instrumentation

import "strings"

// Label values that come from user input are folded into a small fixed set
// before they reach a metric.

// knownPaths are the routes served by the HTTP transport and metrics server.
var knownPaths = map[string]bool{
	"/mcp":              true,
	"/healthz":          true,
	"/readyz":           true,
	"/healthz/detailed": true,
	"/metrics":          true,
}

// NormalizePath maps any route outside knownPaths to "other".
func NormalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if knownPaths[path] {
		return path
	}
	return "other"
}

// ExtractUserDomain returns the domain of an address, or "unknown".
//
//	ExtractUserDomain("jane@example.com") // "example.com"
//	ExtractUserDomain("invalid")          // "unknown"
func ExtractUserDomain(email string) string {
	_, domain, ok := strings.Cut(email, "@")
	if !ok || domain == "" || strings.Contains(domain, "@") {
		return "unknown"
	}
	return domain
}
