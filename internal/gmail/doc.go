// Package gmail implements the mail operations exposed as MCP tools:
// listing, reading, searching and sending messages.
//
// The package talks to Gmail through the small API interface so the
// operations can be exercised with fakes. NewAPI adapts a *gmail.Service
// from google.golang.org/api.
//
// Message bodies are extracted from the MIME tree with a two-pass walk:
// the first text/plain part wins, otherwise the first text/html part is
// reduced to plain text.
package gmail
