package mailer

import (
	"errors"
	"testing"
)

func TestSendSummaryWithoutCredentials(t *testing.T) {
	svc := NewEmailService("smtp.gmail.com", 587, "", "")
	err := svc.SendSummary("user@example.com", "Subject", "# Report")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain markdown untouched", "# Report\n\nBody.", "# Report\n\nBody."},
		{"markdown fence removed", "```markdown\n# Report\n\nBody.\n```", "# Report\n\nBody."},
		{"surrounding whitespace trimmed", "  # Report  ", "# Report"},
		{"inner fences kept", "# Report\n\n```\ncode sample\n```\n\nEnd.", "# Report\n\n```\ncode sample\n```\n\nEnd."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}
