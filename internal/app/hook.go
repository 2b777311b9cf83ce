package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/qiwei66/claude-bell/internal/config"
	"github.com/qiwei66/claude-bell/internal/extract"
	"github.com/qiwei66/claude-bell/internal/notify"
	"github.com/qiwei66/claude-bell/internal/store"
	"github.com/qiwei66/claude-bell/internal/transcript"
	"github.com/spf13/cobra"
)

// maxHookStdinBytes caps stdin reads. Hook payloads are small JSON objects;
// 1 MB is generous headroom that prevents unbounded allocation.
const maxHookStdinBytes = 1 << 20

// notifyTimeout bounds notification delivery so the hook finishes well
// inside the framework's own hook timeout.
const notifyTimeout = 15 * time.Second

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Handle a Claude Code hook event from stdin",
	Long: `Read a Claude Code hook payload from stdin, extract a summary from the
session transcript, print the encoded result line, and send notifications.

Registered by 'claude-bell install' under the Stop and Notification events.
This command always exits 0: a notification hook must never fail the
session it is reporting on.`,
	RunE: runHook,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

// hookPayload is the JSON Claude Code writes to a hook's stdin.
type hookPayload struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	Cwd            string `json:"cwd"`
	HookEventName  string `json:"hook_event_name"`
	Message        string `json:"message"`
}

func runHook(cmd *cobra.Command, args []string) error {
	result, payload, cfg := extractFromHookInput(cmd.InOrStdin())

	// The encoded result line is the contract with the caller; print it
	// before anything that could fail.
	fmt.Fprintln(cmd.OutOrStdout(), result.Encode(cfg.Summary.Delimiter))

	deliver(result, payload, cfg)
	return nil
}

// extractFromHookInput parses the hook payload and runs the extraction
// core. Every failure degrades toward the fallback result; nothing here
// may abort the hook.
func extractFromHookInput(stdin io.Reader) (extract.Result, hookPayload, *config.Config) {
	var payload hookPayload
	if data, err := io.ReadAll(io.LimitReader(stdin, maxHookStdinBytes)); err == nil {
		// A malformed payload leaves the zero value; extraction still runs.
		_ = json.Unmarshal(data, &payload)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, "claude-bell: config:", err)
		cfg = &config.Config{}
	}

	extractor := newExtractor(cfg)

	var events []transcript.Event
	if path, err := transcript.Resolve(payload.TranscriptPath, payload.SessionID, cfg.ClaudeHome); err == nil {
		if payload.SessionID == "" {
			// Transcripts are named <session-id>.jsonl; backfill for history.
			payload.SessionID = transcript.SessionID(path)
		}
		if parsed, err := transcript.ParseFile(path); err == nil {
			events = parsed
		}
	}

	// A Notification hook carries the blocking message ("Claude needs your
	// permission to ...") in the payload itself; feed it to the classifier
	// as the most recent system event.
	if payload.Message != "" {
		events = append(events, transcript.Event{
			Role: transcript.RoleSystem,
			Text: payload.Message,
		})
	}

	return extractor.Extract(events), payload, cfg
}

// deliver sends the notification and records it in the history database.
// Failures are logged to stderr and otherwise swallowed.
func deliver(result extract.Result, payload hookPayload, cfg *config.Config) {
	notifier := newNotifier(cfg)

	n := notify.Notification{
		Title:   notificationTitle(payload.Cwd),
		Message: notificationBody(result),
		Status:  string(result.Status),
		Sound:   cfg.Push.Sound,
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	sendErr := notifier.Send(ctx, n)
	if sendErr != nil {
		fmt.Fprintln(os.Stderr, "claude-bell: notify:", sendErr)
	}

	recordHistory(result, payload, cfg, sendErr == nil)
}

func recordHistory(result extract.Result, payload hookPayload, cfg *config.Config, delivered bool) {
	db, err := store.Open(config.DBPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "claude-bell: history:", err)
		return
	}
	defer db.Close()

	_, err = db.RecordNotification(&store.Notification{
		SessionID:        payload.SessionID,
		Project:          projectName(payload.Cwd),
		Status:           string(result.Status),
		Summary:          result.Summary,
		Stats:            result.Stats,
		DeliveredDesktop: delivered && cfg.Desktop,
		DeliveredPush:    delivered && cfg.Push.DeviceKey != "",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "claude-bell: history:", err)
	}
}

// notificationTitle derives the notification title from the session's
// working directory.
func notificationTitle(cwd string) string {
	if name := projectName(cwd); name != "" {
		return config.DefaultTitle + " · " + name
	}
	return config.DefaultTitle
}

func projectName(cwd string) string {
	if cwd == "" {
		return ""
	}
	return filepath.Base(cwd)
}

// notificationBody joins summary and stats for display.
func notificationBody(result extract.Result) string {
	if result.Stats == "" {
		return result.Summary
	}
	return result.Summary + "\n" + result.Stats
}
