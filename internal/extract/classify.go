package extract

import (
	"strings"

	"github.com/qiwei66/claude-bell/internal/transcript"
)

// classify decides the terminal status of a session. Precedence, first
// match wins:
//
//  1. Permission vocabulary anywhere in an event text -> action_needed.
//  2. Failure vocabulary -> error.
//  3. Otherwise success.
//
// A blocked session outranks a failed one: both signals can co-occur, and
// the operator being needed is the more urgent fact. Events are scanned
// most recent first, system and notification text before conversation text,
// so the latest state of the session decides.
func (e *Extractor) classify(events []transcript.Event) Status {
	if containsAny(events, transcript.RoleSystem, e.opts.PermissionWords) {
		return StatusActionNeeded
	}
	if containsAny(events, "", e.opts.PermissionWords) {
		return StatusActionNeeded
	}
	if containsAny(events, transcript.RoleSystem, e.opts.FailureWords) {
		return StatusError
	}
	if hasErrorFlag(events) || containsAny(events, "", e.opts.FailureWords) {
		return StatusError
	}
	return StatusSuccess
}

// containsAny reports whether any event text matches one of the words,
// case-insensitively, scanning newest to oldest. An empty role matches
// every non-system event.
func containsAny(events []transcript.Event, role transcript.Role, words []string) bool {
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if role != "" && ev.Role != role {
			continue
		}
		if role == "" && ev.Role == transcript.RoleSystem {
			continue
		}
		if ev.Text == "" {
			continue
		}
		text := strings.ToLower(ev.Text)
		for _, w := range words {
			if w == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(w)) {
				return true
			}
		}
	}
	return false
}

// hasErrorFlag reports whether any tool result was flagged as an error.
func hasErrorFlag(events []transcript.Event) bool {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].IsError {
			return true
		}
	}
	return false
}
