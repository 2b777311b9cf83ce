// Package claude reads and updates Claude Code's local settings file for
// hook registration.
package claude

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Settings is the subset of ~/.claude/settings.json that claude-bell
// touches. Unknown fields are preserved across rewrites via the raw map.
type Settings struct {
	Hooks map[string][]HookGroup `json:"hooks"`
}

// HookGroup is a matcher plus the hooks that run for it.
type HookGroup struct {
	Matcher string `json:"matcher,omitempty"`
	Hooks   []Hook `json:"hooks"`
}

// Hook is a single hook definition.
type Hook struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// hookEvents are the lifecycle events claude-bell registers for. Stop fires
// when a session finishes, Notification when Claude is blocked waiting on
// the operator.
var hookEvents = []string{"Stop", "Notification"}

// settingsPath returns the settings.json location under claudeHome.
func settingsPath(claudeHome string) string {
	return filepath.Join(claudeHome, "settings.json")
}

// ParseSettings reads claudeHome/settings.json. A missing file returns an
// empty raw document, not an error.
func ParseSettings(claudeHome string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(settingsPath(claudeHome))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing settings.json: %w", err)
	}
	return raw, nil
}

// HookInstalled reports whether the given command is already registered for
// every claude-bell hook event.
func HookInstalled(claudeHome, command string) (bool, error) {
	raw, err := ParseSettings(claudeHome)
	if err != nil {
		return false, err
	}
	hooks, err := decodeHooks(raw)
	if err != nil {
		return false, err
	}

	for _, event := range hookEvents {
		if !eventHasCommand(hooks[event], command) {
			return false, nil
		}
	}
	return true, nil
}

// InstallHooks registers command under the Stop and Notification events in
// settings.json, creating the file if needed. The operation is idempotent
// and preserves unrelated settings and hooks.
func InstallHooks(claudeHome, command string) error {
	raw, err := ParseSettings(claudeHome)
	if err != nil {
		return err
	}
	hooks, err := decodeHooks(raw)
	if err != nil {
		return err
	}
	if hooks == nil {
		hooks = map[string][]HookGroup{}
	}

	for _, event := range hookEvents {
		if eventHasCommand(hooks[event], command) {
			continue
		}
		hooks[event] = append(hooks[event], HookGroup{
			Hooks: []Hook{{Type: "command", Command: command}},
		})
	}

	return writeHooks(claudeHome, raw, hooks)
}

// UninstallHooks removes every hook whose command references claude-bell
// from the managed events. Other hooks in the same group are kept.
func UninstallHooks(claudeHome, command string) error {
	raw, err := ParseSettings(claudeHome)
	if err != nil {
		return err
	}
	hooks, err := decodeHooks(raw)
	if err != nil {
		return err
	}
	if hooks == nil {
		return nil
	}

	for _, event := range hookEvents {
		var kept []HookGroup
		for _, group := range hooks[event] {
			var keptHooks []Hook
			for _, h := range group.Hooks {
				if !strings.Contains(h.Command, command) {
					keptHooks = append(keptHooks, h)
				}
			}
			if len(keptHooks) > 0 {
				group.Hooks = keptHooks
				kept = append(kept, group)
			}
		}
		if len(kept) > 0 {
			hooks[event] = kept
		} else {
			delete(hooks, event)
		}
	}

	return writeHooks(claudeHome, raw, hooks)
}

func decodeHooks(raw map[string]json.RawMessage) (map[string][]HookGroup, error) {
	data, ok := raw["hooks"]
	if !ok {
		return nil, nil
	}
	var hooks map[string][]HookGroup
	if err := json.Unmarshal(data, &hooks); err != nil {
		return nil, fmt.Errorf("parsing hooks block: %w", err)
	}
	return hooks, nil
}

func eventHasCommand(groups []HookGroup, command string) bool {
	for _, group := range groups {
		for _, h := range group.Hooks {
			if h.Command == command {
				return true
			}
		}
	}
	return false
}

// writeHooks re-encodes the hooks block into the raw document and writes
// settings.json atomically via a temp file rename.
func writeHooks(claudeHome string, raw map[string]json.RawMessage, hooks map[string][]HookGroup) error {
	data, err := json.Marshal(hooks)
	if err != nil {
		return err
	}
	raw["hooks"] = data

	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	path := settingsPath(claudeHome)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
