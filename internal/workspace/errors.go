package workspace

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// Kind classifies an Error.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindValidation    Kind = "validation"
	KindUpstream      Kind = "upstream"
	KindDecode        Kind = "decode"
)

// Error is the error type returned by the mail and calendar operations.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s", e.Message, causeMessage(e.Err))
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return causeMessage(e.Err)
	default:
		return string(e.Kind) + " error"
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Configuration returns a KindConfiguration error.
func Configuration(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// Validation returns a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a failed provider call. The provider message is kept
// verbatim; op names the call that failed (e.g. "failed to list messages").
func Upstream(op string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: op, Err: err}
}

// Decode wraps a body decoding failure.
func Decode(what string, err error) *Error {
	return &Error{Kind: KindDecode, Message: "failed to decode " + what, Err: err}
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind == k
	}
	return false
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}

// HTTPStatus returns the HTTP status code carried by an upstream Google API
// error, or 0 if there is none.
func HTTPStatus(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// causeMessage prefers the bare provider message over the formatted
// googleapi error string, which repeats the status and error details.
func causeMessage(err error) string {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	return err.Error()
}
