package extract

import (
	"testing"

	"github.com/qiwei66/claude-bell/internal/transcript"
)

func sysEvent(text string) transcript.Event {
	return transcript.Event{Role: transcript.RoleSystem, Text: text}
}

func TestClassify_Precedence(t *testing.T) {
	e := New(Options{})

	tests := []struct {
		name   string
		events []transcript.Event
		want   Status
	}{
		{
			name:   "empty is success",
			events: nil,
			want:   StatusSuccess,
		},
		{
			name:   "permission in system event",
			events: []transcript.Event{sysEvent("Claude needs your permission to run this command")},
			want:   StatusActionNeeded,
		},
		{
			name: "permission beats failure",
			events: []transcript.Event{
				sysEvent("Error: tool execution failed"),
				sysEvent("Claude is waiting for your approval"),
			},
			want: StatusActionNeeded,
		},
		{
			name: "permission beats failure regardless of order",
			events: []transcript.Event{
				sysEvent("Claude is waiting for your approval"),
				sysEvent("Error: tool execution failed"),
			},
			want: StatusActionNeeded,
		},
		{
			name:   "failure vocabulary in system event",
			events: []transcript.Event{sysEvent("Error: command exited with status 1")},
			want:   StatusError,
		},
		{
			name: "failure vocabulary in assistant text",
			events: []transcript.Event{
				{Role: transcript.RoleAssistant, Text: "The build failed, I could not fix it."},
			},
			want: StatusError,
		},
		{
			name: "error-flagged tool result",
			events: []transcript.Event{
				{Role: transcript.RoleToolResult, Text: "exit status 2", IsError: true},
			},
			want: StatusError,
		},
		{
			name: "case insensitive matching",
			events: []transcript.Event{
				sysEvent("WAITING FOR YOUR PERMISSION"),
			},
			want: StatusActionNeeded,
		},
		{
			name: "localized permission vocabulary",
			events: []transcript.Event{
				sysEvent("Claude 需要您的权限才能运行此命令"),
			},
			want: StatusActionNeeded,
		},
		{
			name: "localized failure vocabulary",
			events: []transcript.Event{
				{Role: transcript.RoleAssistant, Text: "构建失败"},
			},
			want: StatusError,
		},
		{
			name: "plain completion is success",
			events: []transcript.Event{
				{Role: transcript.RoleUser, Text: "fix the login bug"},
				{Role: transcript.RoleAssistant, Text: "Fixed and tests pass."},
			},
			want: StatusSuccess,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := e.classify(tc.events)
			if got != tc.want {
				t.Errorf("classify = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassify_CustomVocabulary(t *testing.T) {
	e := New(Options{
		PermissionWords: []string{"autorisation"},
		FailureWords:    []string{"échec"},
	})

	got := e.classify([]transcript.Event{sysEvent("Claude attend votre autorisation")})
	if got != StatusActionNeeded {
		t.Errorf("classify = %q, want %q", got, StatusActionNeeded)
	}

	got = e.classify([]transcript.Event{sysEvent("échec de la commande")})
	if got != StatusError {
		t.Errorf("classify = %q, want %q", got, StatusError)
	}

	// The default English vocabulary is replaced, not merged.
	got = e.classify([]transcript.Event{sysEvent("permission required")})
	if got != StatusSuccess {
		t.Errorf("classify = %q, want %q with custom vocabulary", got, StatusSuccess)
	}
}
