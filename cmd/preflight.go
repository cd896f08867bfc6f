package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/repoguide/repoguide/internal/preflight"
	"github.com/repoguide/repoguide/internal/schema"
)

var preflightCmd = &cobra.Command{
	Use:   "preflight [path]",
	Short: "Run repository-health checks",
	Long: `Checks the repository for onboarding essentials: a README with setup
instructions, pinned runtime versions, docker-compose, an .env.example and
documented test instructions. Checks never fail the command; they report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreflight,
}

func init() {
	preflightCmd.Flags().Bool("json", false, "output the report as JSON")
	rootCmd.AddCommand(preflightCmd)
}

func runPreflight(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	report := preflight.Run(absRoot)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printPreflightReport(report)
	return nil
}

func printPreflightReport(report *schema.PreflightReport) {
	for _, check := range report.Checks {
		fmt.Printf("  %s %s", statusMark(check.Status), check.Name)
		if check.Found != "" {
			fmt.Printf(" - %s", check.Found)
		}
		fmt.Println()
		if check.Status != schema.StatusOK && check.Fix != "" {
			fmt.Printf("       fix: %s\n", check.Fix)
		}
	}
	fmt.Printf("\n%s\n", report.Summary)
}

func statusMark(status schema.CheckStatus) string {
	switch status {
	case schema.StatusOK:
		return "[ok]"
	case schema.StatusWarn:
		return "[warn]"
	default:
		return "[error]"
	}
}
