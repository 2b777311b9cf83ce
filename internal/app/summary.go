package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/qiwei66/claude-bell/internal/config"
	"github.com/qiwei66/claude-bell/internal/output"
	"github.com/qiwei66/claude-bell/internal/transcript"
	"github.com/spf13/cobra"
)

var (
	flagSummarySession string
	flagSummaryRaw     bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary [transcript.jsonl]",
	Short: "Extract and print the summary for a transcript",
	Long: `Run the extraction pipeline against a transcript file and print the
classified status, summary and stats. Useful for debugging what a hook
notification would say without firing one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&flagSummarySession, "session", "", "Session ID to locate under ~/.claude/projects")
	summaryCmd.Flags().BoolVar(&flagSummaryRaw, "raw", false, "Print the encoded hook result line instead of styled output")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	if flagNoColor {
		output.SetNoColor(true)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" && flagSummarySession == "" {
		return fmt.Errorf("provide a transcript path or --session")
	}

	extractor := newExtractor(cfg)
	result := extractor.ExtractFile(path, flagSummarySession, cfg.ClaudeHome)

	if flagSummaryRaw {
		fmt.Println(result.Encode(cfg.Summary.Delimiter))
		return nil
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{
			"status":  string(result.Status),
			"summary": result.Summary,
			"stats":   result.Stats,
		})
	}

	// Show which file was used, when resolvable.
	if resolved, err := transcript.Resolve(path, flagSummarySession, cfg.ClaudeHome); err == nil {
		fmt.Printf(" %s %s\n", output.StyleMuted.Render("transcript:"), resolved)
	} else {
		fmt.Printf(" %s\n", output.StyleMuted.Render("transcript: not found (fallback result)"))
	}

	fmt.Printf(" %s %s\n", output.StyleBold.Render("status: "),
		output.StatusStyle(string(result.Status)).Render(string(result.Status)))
	fmt.Printf(" %s %s\n", output.StyleBold.Render("summary:"), result.Summary)
	if result.Stats != "" {
		fmt.Printf(" %s %s\n", output.StyleBold.Render("stats:  "), result.Stats)
	}
	return nil
}
