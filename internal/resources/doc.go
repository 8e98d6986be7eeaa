// Package resources provides MCP resources for exposing user and session data.
// Resources are read-only data sources that MCP clients can fetch, such as
// the profile of the configured Google account.
package resources
