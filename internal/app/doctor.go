package app

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/qiwei66/claude-bell/internal/claude"
	"github.com/qiwei66/claude-bell/internal/config"
	"github.com/qiwei66/claude-bell/internal/output"
	"github.com/qiwei66/claude-bell/internal/store"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the claude-bell setup is healthy",
	Long: `Run a series of health checks against your claude-bell configuration
and Claude Code data directory. Prints a pass/fail line for each check
and a summary of how many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	if flagNoColor {
		output.SetNoColor(true)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var checks []doctorCheck

	// 1. Claude home directory — exists and is readable.
	checks = append(checks, checkClaudeHome(cfg.ClaudeHome))

	// 2. Hooks — claude-bell registered for Stop and Notification.
	checks = append(checks, checkHooks(cfg.ClaudeHome))

	// 3. History database — opens and migrates.
	checks = append(checks, checkDatabase())

	// 4. Desktop notifier — platform facility available.
	checks = append(checks, checkDesktop(cfg))

	// 5. Push — device key configured.
	checks = append(checks, checkPush(cfg))

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		out := doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(output.Section("Doctor"))
	fmt.Println()

	for _, c := range checks {
		renderDoctorCheck(c)
	}

	fmt.Println()
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Printf(" %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Printf(" %s\n\n", output.StyleWarning.Render(summary))
	}

	return nil
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(c doctorCheck) {
	mark := output.StyleSuccess.Render("✓")
	if !c.Passed {
		mark = output.StyleError.Render("✗")
	}
	fmt.Printf(" %s %-22s %s\n", mark, c.Name, output.StyleMuted.Render(c.Message))
}

func checkClaudeHome(claudeHome string) doctorCheck {
	info, err := os.Stat(claudeHome)
	if err != nil || !info.IsDir() {
		return doctorCheck{
			Name:    "claude home",
			Passed:  false,
			Message: fmt.Sprintf("%s not found; has Claude Code run yet?", claudeHome),
		}
	}
	return doctorCheck{Name: "claude home", Passed: true, Message: claudeHome}
}

func checkHooks(claudeHome string) doctorCheck {
	command, err := hookCommand()
	if err != nil {
		return doctorCheck{Name: "hooks", Passed: false, Message: err.Error()}
	}
	installed, err := claude.HookInstalled(claudeHome, command)
	if err != nil {
		return doctorCheck{Name: "hooks", Passed: false, Message: err.Error()}
	}
	if !installed {
		return doctorCheck{Name: "hooks", Passed: false, Message: "not registered; run 'claude-bell install'"}
	}
	return doctorCheck{Name: "hooks", Passed: true, Message: "Stop and Notification registered"}
}

func checkDatabase() doctorCheck {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return doctorCheck{Name: "history database", Passed: false, Message: err.Error()}
	}
	defer db.Close()
	return doctorCheck{Name: "history database", Passed: true, Message: config.DBPath()}
}

func checkDesktop(cfg *config.Config) doctorCheck {
	if !cfg.Desktop {
		return doctorCheck{Name: "desktop notifier", Passed: true, Message: "disabled in config"}
	}
	switch runtime.GOOS {
	case "darwin":
		return doctorCheck{Name: "desktop notifier", Passed: true, Message: "osascript"}
	case "linux":
		if _, err := exec.LookPath("notify-send"); err != nil {
			return doctorCheck{
				Name:    "desktop notifier",
				Passed:  false,
				Message: "notify-send not found; install libnotify",
			}
		}
		return doctorCheck{Name: "desktop notifier", Passed: true, Message: "notify-send"}
	default:
		return doctorCheck{Name: "desktop notifier", Passed: false, Message: "unsupported platform, stderr fallback only"}
	}
}

func checkPush(cfg *config.Config) doctorCheck {
	if cfg.Push.DeviceKey == "" {
		return doctorCheck{Name: "push", Passed: false, Message: "push.device_key not set"}
	}
	return doctorCheck{Name: "push", Passed: true, Message: cfg.Push.Server}
}
