package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
)

// Attribute keys shared by every log line in the server.
const (
	KeyTool       = "tool"
	KeyService    = "service"
	KeyOperation  = "operation"
	KeyStatus     = "status"
	KeyError      = "error"
	KeyUserHash   = "user_hash"
	KeyCalendarID = "calendar_id"
	KeyCount      = "count"
)

// Status values. Kept separate from the instrumentation constants because
// instrumentation imports this package.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithTool returns a logger annotated with the tool name.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// WithOperation returns a logger annotated with the operation name.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

func Service(svc string) slog.Attr {
	return slog.String(KeyService, svc)
}

func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

func CalendarID(id string) slog.Attr {
	return slog.String(KeyCalendarID, id)
}

func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Err returns an error attribute. A nil error yields an empty group, which
// slog drops, so Err(maybeNil) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeEmail hashes an address so log lines can be correlated without
// carrying the address itself.
func AnonymizeEmail(email string) string {
	if email == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(strings.ToLower(email)))
	return "user:" + hex.EncodeToString(sum[:8])
}

// UserHash returns the anonymized address as an attribute.
func UserHash(email string) slog.Attr {
	return slog.String(KeyUserHash, AnonymizeEmail(email))
}

// SanitizeToken reports only the length of a credential.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}

// ExtractDomain returns the part after "@", or "" for anything that is not a
// single-@ address.
func ExtractDomain(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return ""
	}
	return domain
}

// Domain returns the address domain as an attribute.
func Domain(email string) slog.Attr {
	return slog.String("user_domain", ExtractDomain(email))
}
