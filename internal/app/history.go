package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/qiwei66/claude-bell/internal/config"
	"github.com/qiwei66/claude-bell/internal/output"
	"github.com/qiwei66/claude-bell/internal/store"
	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently sent notifications",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of notifications to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if flagNoColor {
		output.SetNoColor(true)
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	notifications, err := db.RecentNotifications(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(notifications)
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications recorded yet.")
		return nil
	}

	fmt.Println(output.Section("Notification history"))
	fmt.Println()

	rows := make([][]string, 0, len(notifications))
	for _, n := range notifications {
		rows = append(rows, []string{
			n.SentAt.Local().Format(time.DateTime),
			output.StatusStyle(n.Status).Render(n.Status),
			n.Project,
			n.Summary,
		})
	}
	fmt.Print(output.RenderTable([]string{"TIME", "STATUS", "PROJECT", "SUMMARY"}, rows))

	counts, err := db.CountByStatus()
	if err != nil {
		return nil
	}
	fmt.Println()
	fmt.Printf(" %s success=%d error=%d action_needed=%d\n",
		output.StyleMuted.Render("totals:"),
		counts["success"], counts["error"], counts["action_needed"])
	return nil
}
