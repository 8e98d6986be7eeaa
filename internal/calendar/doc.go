// Package calendar implements the calendar operations exposed as MCP tools:
// listing calendars, listing events in a day window and creating events.
//
// Upstream records are mapped to stable output shapes with fixed fallbacks:
// a missing summary becomes "No title", a missing status "confirmed" and a
// missing access role "reader".
package calendar
