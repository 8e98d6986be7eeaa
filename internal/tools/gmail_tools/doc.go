// Package gmail_tools exposes the Gmail operations as MCP tools:
//
//   - gmail_list_emails: recent inbox messages, optionally filtered by a query
//   - gmail_read_email: one message with its full body
//   - gmail_search_emails: Gmail query syntax over the last year of mail
//   - gmail_send_email: send a plain text or HTML message (omitted in read-only mode)
//
// Results are JSON text content. Listed bodies are truncated; read bodies
// are not.
package gmail_tools
