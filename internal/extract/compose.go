package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/qiwei66/claude-bell/internal/transcript"
)

// editTools are the tool names counted as file modifications.
var editTools = map[string]bool{
	"Edit":         true,
	"Write":        true,
	"MultiEdit":    true,
	"NotebookEdit": true,
}

// compose derives the one-line summary and the stats string. Preference
// order for the summary:
//
//	a. the most recent meaningful user prompt, truncated to the limit
//	b. a synthesized line from the tool call count
//	c. the fallback literal
func (e *Extractor) compose(events []transcript.Event) (summary, stats string) {
	summary = e.latestUserPrompt(events)
	if summary == "" {
		if n := countToolCalls(events); n > 0 {
			summary = fmt.Sprintf("%s (%d tool calls)", e.opts.FallbackSummary, n)
		} else {
			summary = e.opts.FallbackSummary
		}
	}
	return summary, composeStats(events)
}

// latestUserPrompt returns the newest user event text that looks like a
// task description, truncated to the summary limit. Bare confirmations
// ("continue", "ok", ...) and very short inputs are skipped so they never
// displace the actual request.
func (e *Extractor) latestUserPrompt(events []transcript.Event) string {
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if ev.Role != transcript.RoleUser {
			continue
		}
		text := strings.TrimSpace(ev.Text)
		if text == "" || len([]rune(text)) < minPromptLen {
			continue
		}
		if e.isSkipPrompt(text) {
			continue
		}
		return truncate(collapseWhitespace(text), e.opts.SummaryLimit)
	}
	return ""
}

func (e *Extractor) isSkipPrompt(text string) bool {
	lower := strings.ToLower(text)
	for _, skip := range e.opts.SkipPrompts {
		if lower == skip {
			return true
		}
	}
	return false
}

// composeStats renders file edit count, shell command count and elapsed
// wall-clock time, e.g. "3 files changed · 5 commands · 2m30s". Components
// whose data is unavailable are omitted rather than rendered as zero.
func composeStats(events []transcript.Event) string {
	files := make(map[string]bool)
	edits := 0
	commands := 0
	var first, last time.Time

	for _, ev := range events {
		if !ev.Timestamp.IsZero() {
			if first.IsZero() || ev.Timestamp.Before(first) {
				first = ev.Timestamp
			}
			if ev.Timestamp.After(last) {
				last = ev.Timestamp
			}
		}

		if ev.Role != transcript.RoleToolCall {
			continue
		}
		switch {
		case editTools[ev.ToolName]:
			edits++
			if name := transcript.BaseName(ev.FilePath); name != "" {
				files[name] = true
			}
		case ev.ToolName == "Bash":
			commands++
		}
	}

	fileCount := len(files)
	if fileCount == 0 {
		fileCount = edits
	}

	var parts []string
	if fileCount > 0 {
		parts = append(parts, fmt.Sprintf("%d %s changed", fileCount, plural(fileCount, "file", "files")))
	}
	if commands > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", commands, plural(commands, "command", "commands")))
	}
	if !first.IsZero() && last.After(first) {
		parts = append(parts, formatDuration(last.Sub(first)))
	}
	return strings.Join(parts, " · ")
}

func countToolCalls(events []transcript.Event) int {
	n := 0
	for _, ev := range events {
		if ev.Role == transcript.RoleToolCall {
			n++
		}
	}
	return n
}

// truncate cuts s to limit runes, appending the truncation marker when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + TruncationMarker
}

// collapseWhitespace flattens multi-line prompts into a single line.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// formatDuration renders a duration as a short human string: "45s",
// "2m30s", "1h12m".
func formatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 0 {
		return ""
	}
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm%ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh%dm", seconds/3600, (seconds%3600)/60)
	}
}
