package instrumentation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

const testEmail = "jane@example.com"

func TestToolInvocation_Complete(t *testing.T) {
	ti := NewToolInvocation("gmail_list_emails").WithUser(testEmail).WithService(ServiceGmail, OperationList)
	if ti.ID == "" {
		t.Fatal("expected an invocation id")
	}
	if other := NewToolInvocation("gmail_list_emails"); other.ID == ti.ID {
		t.Error("invocation ids should be unique")
	}

	ti.Complete(nil)
	if !ti.Success || ti.Status() != StatusSuccess || ti.Error != "" {
		t.Errorf("unexpected success state: %+v", ti)
	}
	if ti.Duration < 0 {
		t.Error("duration should not be negative")
	}

	failed := NewToolInvocation("calendar_create_event").Complete(errors.New("permission denied"))
	if failed.Success || failed.Status() != StatusError || failed.Error != "permission denied" {
		t.Errorf("unexpected failure state: %+v", failed)
	}
}

func TestToolInvocation_AttrsHidePII(t *testing.T) {
	ti := NewToolInvocation("gmail_send_email").WithUser(testEmail).Complete(nil)

	for _, a := range ti.LogAttrs() {
		if strings.Contains(a.Value.String(), testEmail) {
			t.Errorf("LogAttrs leaked the address in %q", a.Key)
		}
	}

	found := false
	for _, a := range ti.LogAuditAttrs() {
		if a.Key == "user" && a.Value.String() == testEmail {
			found = true
		}
	}
	if !found {
		t.Error("LogAuditAttrs should include the full address")
	}
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return rec
}

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	tests := []struct {
		name     string
		config   AuditLoggingConfig
		err      error
		wantMsg  string
		wantUser bool
	}{
		{"success anonymized", AuditLoggingConfig{Enabled: true}, nil, "tool_executed", false},
		{"failure anonymized", AuditLoggingConfig{Enabled: true}, errors.New("boom"), "tool_failed", false},
		{"success with pii", AuditLoggingConfig{Enabled: true, IncludePII: true}, nil, "tool_executed", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			al := NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)), tt.config)

			ti := NewToolInvocation("gmail_read_email").WithUser(testEmail).Complete(tt.err)
			al.LogToolInvocation(context.Background(), ti)

			rec := decodeRecord(t, &buf)
			if rec["msg"] != tt.wantMsg {
				t.Errorf("msg = %v, want %q", rec["msg"], tt.wantMsg)
			}
			if rec["invocation_id"] != ti.ID {
				t.Errorf("invocation_id = %v, want %q", rec["invocation_id"], ti.ID)
			}
			_, hasUser := rec["user"]
			if hasUser != tt.wantUser {
				t.Errorf("user present = %v, want %v", hasUser, tt.wantUser)
			}
			if !tt.wantUser && rec["user_hash"] == nil {
				t.Error("expected user_hash when PII is excluded")
			}
		})
	}
}

func TestAuditLogger_DisabledAndNil(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)), AuditLoggingConfig{Enabled: false})
	al.LogToolInvocation(context.Background(), NewToolInvocation("x").Complete(nil))
	if buf.Len() != 0 {
		t.Errorf("disabled audit logger wrote %q", buf.String())
	}

	var nilLogger *AuditLogger
	nilLogger.LogToolInvocation(context.Background(), NewToolInvocation("x").Complete(nil))
}
