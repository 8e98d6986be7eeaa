// Package common holds what every tool package shares: the instrumentation
// wrapper that forms the error boundary of a tool call, and the JSON result
// rendering.
package common
