// Package app contains the Cobra command tree for claude-bell.
package app

import (
	"fmt"
	"os"

	"github.com/qiwei66/claude-bell/internal/config"
	"github.com/qiwei66/claude-bell/internal/extract"
	"github.com/qiwei66/claude-bell/internal/notify"
	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "claude-bell",
	Short: "Notifications for Claude Code sessions",
	Long: `claude-bell notifies you when a Claude Code session finishes or needs
your attention. Registered as a Stop and Notification hook, it reads the
session transcript, summarizes what you asked for, classifies the outcome,
and rings you via desktop notification and Bark push.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("claude-bell", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  hook       Handle a Claude Code hook event from stdin")
		fmt.Println("  summary    Extract and print the summary for a transcript")
		fmt.Println("  history    Show recently sent notifications")
		fmt.Println("  install    Register the claude-bell hooks in settings.json")
		fmt.Println("  uninstall  Remove the claude-bell hooks from settings.json")
		fmt.Println("  test       Send a test notification")
		fmt.Println("  doctor     Check whether the claude-bell setup is healthy")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/claude-bell/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}

// newExtractor builds an Extractor from the loaded configuration.
func newExtractor(cfg *config.Config) *extract.Extractor {
	return extract.New(extract.Options{
		SummaryLimit:    cfg.Summary.Limit,
		Delimiter:       cfg.Summary.Delimiter,
		FallbackSummary: cfg.Summary.Fallback,
		SkipPrompts:     cfg.Summary.SkipPrompts,
		PermissionWords: cfg.Classify.PermissionWords,
		FailureWords:    cfg.Classify.FailureWords,
	})
}

// newNotifier builds the notification fan-out from the loaded configuration.
func newNotifier(cfg *config.Config) *notify.Notifier {
	var sinks []notify.Sink
	if cfg.Desktop {
		sinks = append(sinks, notify.NewDesktop())
	}
	if push := notify.NewPush(cfg.Push.Server, cfg.Push.DeviceKey, cfg.Push.Group); push != nil {
		sinks = append(sinks, push)
	}
	return notify.NewNotifier(sinks...)
}
