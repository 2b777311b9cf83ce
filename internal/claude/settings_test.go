package claude

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const hookCmd = "/usr/local/bin/claude-bell hook"

func readSettings(t *testing.T, claudeHome string) map[string]json.RawMessage {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(claudeHome, "settings.json"))
	if err != nil {
		t.Fatalf("read settings.json: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse settings.json: %v", err)
	}
	return raw
}

func TestInstallHooks_FreshSettings(t *testing.T) {
	claudeHome := t.TempDir()

	if err := InstallHooks(claudeHome, hookCmd); err != nil {
		t.Fatalf("InstallHooks: %v", err)
	}

	installed, err := HookInstalled(claudeHome, hookCmd)
	if err != nil {
		t.Fatalf("HookInstalled: %v", err)
	}
	if !installed {
		t.Error("expected hooks to be installed")
	}

	raw := readSettings(t, claudeHome)
	var hooks map[string][]HookGroup
	if err := json.Unmarshal(raw["hooks"], &hooks); err != nil {
		t.Fatalf("parse hooks: %v", err)
	}
	for _, event := range []string{"Stop", "Notification"} {
		if len(hooks[event]) == 0 {
			t.Errorf("no hook group for %s event", event)
		}
	}
}

func TestInstallHooks_Idempotent(t *testing.T) {
	claudeHome := t.TempDir()

	if err := InstallHooks(claudeHome, hookCmd); err != nil {
		t.Fatalf("first install: %v", err)
	}
	if err := InstallHooks(claudeHome, hookCmd); err != nil {
		t.Fatalf("second install: %v", err)
	}

	raw := readSettings(t, claudeHome)
	var hooks map[string][]HookGroup
	if err := json.Unmarshal(raw["hooks"], &hooks); err != nil {
		t.Fatalf("parse hooks: %v", err)
	}
	if len(hooks["Stop"]) != 1 {
		t.Errorf("Stop groups = %d, want 1 after repeated install", len(hooks["Stop"]))
	}
}

func TestInstallHooks_PreservesUnrelatedSettings(t *testing.T) {
	claudeHome := t.TempDir()
	existing := `{
  "includeCoAuthoredBy": false,
  "hooks": {
    "Stop": [{"hooks": [{"type": "command", "command": "other-tool stop"}]}]
  }
}`
	if err := os.WriteFile(filepath.Join(claudeHome, "settings.json"), []byte(existing), 0o644); err != nil {
		t.Fatalf("seed settings.json: %v", err)
	}

	if err := InstallHooks(claudeHome, hookCmd); err != nil {
		t.Fatalf("InstallHooks: %v", err)
	}

	raw := readSettings(t, claudeHome)
	if _, ok := raw["includeCoAuthoredBy"]; !ok {
		t.Error("unrelated top-level setting was dropped")
	}

	var hooks map[string][]HookGroup
	if err := json.Unmarshal(raw["hooks"], &hooks); err != nil {
		t.Fatalf("parse hooks: %v", err)
	}
	if !eventHasCommand(hooks["Stop"], "other-tool stop") {
		t.Error("pre-existing Stop hook was dropped")
	}
	if !eventHasCommand(hooks["Stop"], hookCmd) {
		t.Error("claude-bell Stop hook was not added")
	}
}

func TestUninstallHooks(t *testing.T) {
	claudeHome := t.TempDir()

	if err := InstallHooks(claudeHome, hookCmd); err != nil {
		t.Fatalf("InstallHooks: %v", err)
	}
	if err := UninstallHooks(claudeHome, "claude-bell"); err != nil {
		t.Fatalf("UninstallHooks: %v", err)
	}

	installed, err := HookInstalled(claudeHome, hookCmd)
	if err != nil {
		t.Fatalf("HookInstalled: %v", err)
	}
	if installed {
		t.Error("expected hooks to be removed")
	}
}

func TestUninstallHooks_KeepsOtherHooks(t *testing.T) {
	claudeHome := t.TempDir()
	existing := `{
  "hooks": {
    "Stop": [{"hooks": [
      {"type": "command", "command": "other-tool stop"},
      {"type": "command", "command": "/usr/local/bin/claude-bell hook"}
    ]}]
  }
}`
	if err := os.WriteFile(filepath.Join(claudeHome, "settings.json"), []byte(existing), 0o644); err != nil {
		t.Fatalf("seed settings.json: %v", err)
	}

	if err := UninstallHooks(claudeHome, "claude-bell"); err != nil {
		t.Fatalf("UninstallHooks: %v", err)
	}

	raw := readSettings(t, claudeHome)
	var hooks map[string][]HookGroup
	if err := json.Unmarshal(raw["hooks"], &hooks); err != nil {
		t.Fatalf("parse hooks: %v", err)
	}
	if !eventHasCommand(hooks["Stop"], "other-tool stop") {
		t.Error("unrelated hook was removed")
	}
	if eventHasCommand(hooks["Stop"], hookCmd) {
		t.Error("claude-bell hook was not removed")
	}
}

func TestParseSettings_MissingFile(t *testing.T) {
	raw, err := ParseSettings(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("expected empty document, got %v", raw)
	}
}
