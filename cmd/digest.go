package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/repoguide/repoguide/internal/digest"
)

var digestCmd = &cobra.Command{
	Use:   "digest [path]",
	Short: "Summarize recent change activity in a repository",
	Long: `Parses the git log for recent commits and the most-touched files. For
directories that are not git repositories it falls back to file
modification times.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDigest,
}

func init() {
	digestCmd.Flags().Int("days", digest.DefaultDays, "how many days back to look")
	digestCmd.Flags().Bool("json", false, "output the report as JSON")
	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	days, _ := cmd.Flags().GetInt("days")
	report := digest.Run(absRoot, days)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Changes in %s since %s: %d commit(s)\n", report.Path, report.Since, report.CommitCount)
	if report.Note != "" {
		fmt.Printf("Note: %s\n", report.Note)
	}
	if len(report.TopFiles) > 0 {
		fmt.Println("\nMost touched files:")
		for _, f := range report.TopFiles {
			if f.Count > 0 {
				fmt.Printf("  %3d  %s\n", f.Count, f.File)
			} else {
				fmt.Printf("  %s  %s\n", f.ModifiedAt, f.File)
			}
		}
	}
	if len(report.Commits) > 0 {
		fmt.Println("\nRecent commits:")
		for _, c := range report.Commits {
			fmt.Printf("  %s %s %s\n", c.Hash, c.Date, c.Subject)
		}
	}
	return nil
}
