package notify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Desktop sends OS desktop notifications. On macOS it uses osascript, on
// Linux it tries notify-send. If neither is available, it falls back to
// printing to stderr so the message is never silently lost.
type Desktop struct {
	// goos overrides runtime.GOOS in tests.
	goos string
}

// NewDesktop returns the desktop notification sink.
func NewDesktop() *Desktop {
	return &Desktop{goos: runtime.GOOS}
}

func (d *Desktop) Name() string { return "desktop" }

// Send delivers the notification via the platform facility.
func (d *Desktop) Send(ctx context.Context, n Notification) error {
	switch d.goos {
	case "darwin":
		return d.sendMacOS(ctx, n)
	case "linux":
		return d.sendLinux(ctx, n)
	default:
		return d.sendFallback(n)
	}
}

// sendMacOS sends a notification via osascript on macOS.
func (d *Desktop) sendMacOS(ctx context.Context, n Notification) error {
	script := fmt.Sprintf(
		`display notification %q with title %q`,
		n.Message, n.Title,
	)
	if n.Sound != "" {
		script += fmt.Sprintf(` sound name %q`, n.Sound)
	}
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	if err := cmd.Run(); err != nil {
		return d.sendFallback(n)
	}
	return nil
}

// sendLinux sends a notification via notify-send on Linux.
func (d *Desktop) sendLinux(ctx context.Context, n Notification) error {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return d.sendFallback(n)
	}

	args := []string{n.Title, n.Message}
	if n.Status == "error" || n.Status == "action_needed" {
		args = append([]string{"--urgency=critical"}, args...)
	}
	cmd := exec.CommandContext(ctx, "notify-send", args...)
	if err := cmd.Run(); err != nil {
		return d.sendFallback(n)
	}
	return nil
}

// sendFallback prints the notification to stderr when no desktop
// notification system is available.
func (d *Desktop) sendFallback(n Notification) error {
	_, err := fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", n.Status, n.Title, n.Message)
	return err
}
