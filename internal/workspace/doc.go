// Package workspace defines the error taxonomy shared by the Gmail and
// Calendar operations.
//
// Every failure that reaches a tool handler is one of four kinds:
//   - KindConfiguration: a required credential or environment value is missing
//   - KindValidation: a tool argument is missing or malformed
//   - KindUpstream: the Gmail or Calendar API call failed
//   - KindDecode: a message body could not be decoded
//
// Errors are rendered once at the tool boundary as an error-flagged text
// result. Nothing in this module retries.
package workspace
