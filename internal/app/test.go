package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/qiwei66/claude-bell/internal/config"
	"github.com/qiwei66/claude-bell/internal/notify"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Long: `Send a test notification through every configured sink so you can
verify desktop and push delivery before relying on the hooks.`,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	notifier := newNotifier(cfg)
	sinks := notifier.Sinks()
	if len(sinks) == 0 {
		return fmt.Errorf("no notification sinks enabled; check desktop/push settings")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), notifyTimeout)
	defer cancel()

	n := notify.Notification{
		Title:   config.DefaultTitle,
		Message: "claude-bell test notification",
		Status:  "success",
		Sound:   cfg.Push.Sound,
	}
	if err := notifier.Send(ctx, n); err != nil {
		return fmt.Errorf("sending via %s: %w", strings.Join(sinks, ", "), err)
	}

	fmt.Println("Sent test notification via", strings.Join(sinks, ", "))
	return nil
}
