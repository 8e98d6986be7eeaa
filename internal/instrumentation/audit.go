package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teemow/google-workspace-mcp/internal/logging"
)

// ToolInvocation is one audited tool call.
//
// UserEmail is PII. LogAttrs replaces it with a hash; LogAuditAttrs keeps it
// and is only used when the audit stream is configured to include PII.
type ToolInvocation struct {
	ID        string
	Tool      string
	UserEmail string
	Service   string
	Operation string

	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	TraceID string
	SpanID  string
}

// NewToolInvocation starts timing a call and assigns it a fresh id.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		ID:        uuid.NewString(),
		Tool:      tool,
		StartTime: time.Now(),
	}
}

func (ti *ToolInvocation) WithUser(email string) *ToolInvocation {
	ti.UserEmail = email
	return ti
}

func (ti *ToolInvocation) WithService(service, operation string) *ToolInvocation {
	ti.Service = service
	ti.Operation = operation
	return ti
}

// WithSpanContext copies the trace and span ids from ctx.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	ti.TraceID = GetTraceID(ctx)
	ti.SpanID = GetSpanID(ctx)
	return ti
}

// Complete stops the clock. A nil err marks the call successful.
func (ti *ToolInvocation) Complete(err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = err == nil
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// Status is StatusSuccess or StatusError.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns the attributes with the user reduced to a hash.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	return ti.attrs(logging.UserHash(ti.UserEmail))
}

// LogAuditAttrs returns the attributes with the full user address.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	return ti.attrs(slog.String("user", ti.UserEmail))
}

func (ti *ToolInvocation) attrs(user slog.Attr) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("invocation_id", ti.ID),
		slog.String(logging.KeyTool, ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.UserEmail != "" {
		attrs = append(attrs, user)
	}
	if ti.Service != "" {
		attrs = append(attrs, slog.String(logging.KeyService, ti.Service))
	}
	if ti.Operation != "" {
		attrs = append(attrs, slog.String(logging.KeyOperation, ti.Operation))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, ti.Error))
	}
	return attrs
}

// AuditLogger writes one record per tool invocation.
type AuditLogger struct {
	logger *slog.Logger
	config AuditLoggingConfig
}

// NewAuditLogger returns an audit logger writing to logger, or slog.Default().
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger.With("component", "audit"), config: config}
}

// LogToolInvocation writes ti at INFO on success and WARN on failure. A nil
// or disabled logger does nothing.
func (al *AuditLogger) LogToolInvocation(ctx context.Context, ti *ToolInvocation) {
	if al == nil || !al.config.Enabled {
		return
	}

	attrs := ti.LogAttrs()
	if al.config.IncludePII {
		attrs = ti.LogAuditAttrs()
	}

	level, msg := slog.LevelInfo, "tool_executed"
	if !ti.Success {
		level, msg = slog.LevelWarn, "tool_failed"
	}
	al.logger.LogAttrs(ctx, level, msg, attrs...)
}
