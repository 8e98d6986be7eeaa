// Package server holds the state shared by all tool handlers and the HTTP
// surfaces around the MCP server.
//
// ServerContext owns the Google client source, the metrics recorder, the
// audit logger and the read-only flag. HTTPServer serves the streamable
// HTTP transport at /mcp next to the health probes, and MetricsServer
// exposes Prometheus metrics on a separate port.
package server
