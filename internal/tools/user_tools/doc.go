// Package user_tools exposes the configured user identity as an MCP tool.
package user_tools
