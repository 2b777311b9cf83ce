package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qiwei66/claude-bell/internal/extract"
)

// useTempConfig points flagConfig at a nonexistent file so tests always run
// with default configuration, regardless of the developer's own config.
func useTempConfig(t *testing.T) {
	t.Helper()
	prev := flagConfig
	flagConfig = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() { flagConfig = prev })
}

func TestExtractFromHookInput_StopEvent(t *testing.T) {
	useTempConfig(t)

	dir := t.TempDir()
	transcriptPath := filepath.Join(dir, "sess-1.jsonl")
	jsonl := strings.Join([]string{
		`{"type":"user","timestamp":"2026-01-15T10:00:00Z","message":{"role":"user","content":"add rate limiting to the API"}}`,
		`{"type":"assistant","timestamp":"2026-01-15T10:02:30Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"t1","name":"Edit","input":{"file_path":"/src/api/limiter.go"}},{"type":"tool_use","id":"t2","name":"Bash","input":{"command":"go test ./..."}}]}}`,
	}, "\n")
	if err := os.WriteFile(transcriptPath, []byte(jsonl), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	stdin := strings.NewReader(`{
		"session_id": "sess-1",
		"transcript_path": "` + strings.ReplaceAll(transcriptPath, `\`, `\\`) + `",
		"cwd": "/home/me/myproj",
		"hook_event_name": "Stop"
	}`)

	result, payload, cfg := extractFromHookInput(stdin)

	if payload.SessionID != "sess-1" {
		t.Errorf("SessionID = %q", payload.SessionID)
	}
	if result.Status != extract.StatusSuccess {
		t.Errorf("Status = %q, want success", result.Status)
	}
	if result.Summary != "add rate limiting to the API" {
		t.Errorf("Summary = %q", result.Summary)
	}
	if !strings.Contains(result.Stats, "1 file changed") || !strings.Contains(result.Stats, "1 command") {
		t.Errorf("Stats = %q", result.Stats)
	}

	encoded := result.Encode(cfg.Summary.Delimiter)
	fields := strings.Split(encoded, cfg.Summary.Delimiter)
	if len(fields) != 3 {
		t.Fatalf("encoded line has %d fields, want 3: %q", len(fields), encoded)
	}
	if fields[0] != "success" {
		t.Errorf("field 0 = %q", fields[0])
	}
}

func TestExtractFromHookInput_NotificationMessage(t *testing.T) {
	useTempConfig(t)

	stdin := strings.NewReader(`{
		"session_id": "sess-2",
		"hook_event_name": "Notification",
		"message": "Claude needs your permission to use Bash"
	}`)

	result, _, _ := extractFromHookInput(stdin)

	if result.Status != extract.StatusActionNeeded {
		t.Errorf("Status = %q, want action_needed", result.Status)
	}
	if result.Summary == "" {
		t.Error("Summary must never be empty")
	}
}

func TestExtractFromHookInput_GarbageStdin(t *testing.T) {
	useTempConfig(t)

	result, _, cfg := extractFromHookInput(strings.NewReader("not json"))

	if result.Status != extract.StatusSuccess {
		t.Errorf("Status = %q, want success", result.Status)
	}
	if result.Summary != "task completed" {
		t.Errorf("Summary = %q, want fallback", result.Summary)
	}
	if result.Stats != "" {
		t.Errorf("Stats = %q, want empty", result.Stats)
	}
	if got := result.Encode(cfg.Summary.Delimiter); got != "success|task completed|" {
		t.Errorf("Encode = %q", got)
	}
}

func TestNotificationTitle(t *testing.T) {
	if got := notificationTitle("/home/me/myproj"); got != "Claude Code · myproj" {
		t.Errorf("notificationTitle = %q", got)
	}
	if got := notificationTitle(""); got != "Claude Code" {
		t.Errorf("notificationTitle = %q", got)
	}
}

func TestNotificationBody(t *testing.T) {
	r := extract.Result{Summary: "fix the login bug", Stats: "2 files changed"}
	if got := notificationBody(r); got != "fix the login bug\n2 files changed" {
		t.Errorf("notificationBody = %q", got)
	}

	r.Stats = ""
	if got := notificationBody(r); got != "fix the login bug" {
		t.Errorf("notificationBody = %q", got)
	}
}
