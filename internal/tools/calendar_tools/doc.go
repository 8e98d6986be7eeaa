// Package calendar_tools exposes Google Calendar operations as MCP tools:
// calendar_list_calendars, calendar_list_events and, unless the server is
// read-only, calendar_create_event.
package calendar_tools
