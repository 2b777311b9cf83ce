package app

import (
	"fmt"
	"os"

	"github.com/qiwei66/claude-bell/internal/claude"
	"github.com/qiwei66/claude-bell/internal/config"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the claude-bell hooks in settings.json",
	Long: `Add the claude-bell hook command to the Stop and Notification events in
~/.claude/settings.json. Safe to run repeatedly; existing registrations and
unrelated settings are preserved.`,
	RunE: runInstall,
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the claude-bell hooks from settings.json",
	RunE:  runUninstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
}

// hookCommand returns the command line registered in settings.json.
func hookCommand() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating claude-bell binary: %w", err)
	}
	return exe + " hook", nil
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	command, err := hookCommand()
	if err != nil {
		return err
	}

	installed, err := claude.HookInstalled(cfg.ClaudeHome, command)
	if err != nil {
		return fmt.Errorf("checking settings.json: %w", err)
	}
	if installed {
		fmt.Println("claude-bell hooks already installed")
		return nil
	}

	if err := claude.InstallHooks(cfg.ClaudeHome, command); err != nil {
		return fmt.Errorf("updating settings.json: %w", err)
	}

	fmt.Println("Installed claude-bell hooks (Stop, Notification)")
	if cfg.Push.DeviceKey == "" {
		fmt.Println("Push is disabled; set push.device_key in", config.ConfigDir()+"/config.yaml to enable Bark")
	}
	return nil
}

func runUninstall(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := claude.UninstallHooks(cfg.ClaudeHome, "claude-bell"); err != nil {
		return fmt.Errorf("updating settings.json: %w", err)
	}

	fmt.Println("Removed claude-bell hooks")
	return nil
}
