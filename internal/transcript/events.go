// Package transcript locates and parses Claude Code session transcript files.
package transcript

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Role identifies the originator of a transcript event.
type Role string

const (
	RoleUser       Role = "user"
	RoleAssistant  Role = "assistant"
	RoleToolCall   Role = "tool_call"
	RoleToolResult Role = "tool_result"
	RoleSystem     Role = "system"
	RoleOther      Role = "other"
)

// Event is one parsed transcript line. Lines that cannot be decoded are
// dropped during parsing and never surface as zero-valued events.
type Event struct {
	Role      Role
	Text      string
	ToolName  string // set for tool_call events only
	FilePath  string // set for file-editing tool_call events
	Command   string // set for Bash tool_call events
	Timestamp time.Time
	IsError   bool
}

// rawEntry is the top-level structure of a JSONL transcript line.
type rawEntry struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	Content   string          `json:"content"`
	Message   json.RawMessage `json:"message"`
}

// rawMessage is the message payload of user and assistant entries.
type rawMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// contentBlock is a single block inside a message content array.
type contentBlock struct {
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
	IsError   bool            `json:"is_error"`
	Text      string          `json:"text"`
}

// toolInput covers the input fields we care about across tools.
type toolInput struct {
	FilePath     string `json:"file_path"`
	Path         string `json:"path"`
	NotebookPath string `json:"notebook_path"`
	Command      string `json:"command"`
}

// ParseFile opens and parses a transcript file in a single pass.
func ParseFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f), nil
}

// Parse decodes each line of r as a transcript entry. Malformed lines,
// truncated lines, and entries without a recognizable shape are skipped;
// schema drift between Claude Code versions must never abort extraction.
func Parse(r io.Reader) []Event {
	scanner := bufio.NewScanner(r)
	// Increase buffer for long JSONL lines (up to 10MB).
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var events []Event
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry rawEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}

		events = append(events, parseEntry(&entry)...)
	}
	// A scanner error means a line exceeded the buffer or the file was cut
	// mid-write; everything parsed so far is still usable.
	return events
}

// parseEntry converts one decoded entry into zero or more events. Assistant
// entries fan out each tool_use block into its own tool_call event.
func parseEntry(entry *rawEntry) []Event {
	ts := parseTimestamp(entry.Timestamp)

	switch entry.Type {
	case "user":
		return parseUserEntry(entry, ts)
	case "assistant":
		return parseAssistantEntry(entry, ts)
	case "system":
		text := entry.Content
		if text == "" {
			text = messageText(entry.Message)
		}
		if text == "" {
			return nil
		}
		return []Event{{Role: RoleSystem, Text: text, Timestamp: ts}}
	case "":
		return nil
	default:
		// Unknown entry types (progress, summary, file-history-snapshot, ...)
		// are preserved as "other" when they carry text, otherwise dropped.
		text := entry.Content
		if text == "" {
			text = messageText(entry.Message)
		}
		if text == "" {
			return nil
		}
		return []Event{{Role: RoleOther, Text: text, Timestamp: ts}}
	}
}

// parseUserEntry handles user-type entries. A user entry whose content is a
// list of tool_result blocks is the harness feeding results back to the
// model, not an operator prompt, and is surfaced as tool_result events.
func parseUserEntry(entry *rawEntry, ts time.Time) []Event {
	var msg rawMessage
	if err := json.Unmarshal(entry.Message, &msg); err != nil {
		return nil
	}

	// Plain string content is an operator prompt.
	var s string
	if err := json.Unmarshal(msg.Content, &s); err == nil {
		return []Event{{Role: RoleUser, Text: s, Timestamp: ts}}
	}

	var blocks []contentBlock
	if err := json.Unmarshal(msg.Content, &blocks); err != nil {
		return nil
	}

	var events []Event
	var textParts []string
	for _, block := range blocks {
		switch block.Type {
		case "tool_result":
			events = append(events, Event{
				Role:      RoleToolResult,
				Text:      resultText(block.Content, block.Text),
				Timestamp: ts,
				IsError:   block.IsError,
			})
		case "text":
			textParts = append(textParts, block.Text)
		}
	}
	if len(textParts) > 0 {
		events = append(events, Event{
			Role:      RoleUser,
			Text:      strings.Join(textParts, "\n"),
			Timestamp: ts,
		})
	}
	return events
}

// parseAssistantEntry handles assistant-type entries, splitting text blocks
// and tool_use blocks into separate events.
func parseAssistantEntry(entry *rawEntry, ts time.Time) []Event {
	var msg rawMessage
	if err := json.Unmarshal(entry.Message, &msg); err != nil {
		return nil
	}

	var blocks []contentBlock
	if err := json.Unmarshal(msg.Content, &blocks); err != nil {
		return nil
	}

	var events []Event
	var textParts []string
	for _, block := range blocks {
		switch block.Type {
		case "text":
			textParts = append(textParts, block.Text)
		case "tool_use":
			if block.Name == "" {
				continue
			}
			ev := Event{Role: RoleToolCall, ToolName: block.Name, Timestamp: ts}
			var input toolInput
			if err := json.Unmarshal(block.Input, &input); err == nil {
				ev.FilePath = firstNonEmpty(input.FilePath, input.Path, input.NotebookPath)
				ev.Command = input.Command
			}
			events = append(events, ev)
		}
	}
	if len(textParts) > 0 {
		events = append(events, Event{
			Role:      RoleAssistant,
			Text:      strings.Join(textParts, "\n"),
			Timestamp: ts,
		})
	}
	return events
}

// messageText extracts readable text from a message payload, which may be a
// plain string or an array of content blocks.
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var msg rawMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ""
	}

	var s string
	if err := json.Unmarshal(msg.Content, &s); err == nil {
		return s
	}

	var blocks []contentBlock
	if err := json.Unmarshal(msg.Content, &blocks); err != nil {
		return ""
	}
	var parts []string
	for _, block := range blocks {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// resultText extracts the text of a tool_result block. Content can be a
// string or an array of content blocks.
func resultText(raw json.RawMessage, text string) string {
	if text != "" {
		return text
	}
	if raw == nil {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var parts []string
		for _, b := range blocks {
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// BaseName returns the final path element of a file path, for display.
func BaseName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

// parseTimestamp parses an ISO 8601 timestamp string. It tries RFC3339Nano,
// RFC3339, and a plain datetime format without timezone. Returns the zero
// time if the string is empty or cannot be parsed by any supported format.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			t, err = time.Parse("2006-01-02T15:04:05", s)
			if err != nil {
				return time.Time{}
			}
		}
	}
	return t
}
