package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/repoguide/repoguide/internal/onboard"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard [path]",
	Short: "Produce an onboarding report for a repository",
	Long: `Runs the preflight checks, optionally indexes the repository, and
prints the links and next steps a newcomer needs to get productive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOnboard,
}

func init() {
	onboardCmd.Flags().Bool("index", false, "also index the repository")
	onboardCmd.Flags().Bool("json", false, "output the report as JSON")
	rootCmd.AddCommand(onboardCmd)
}

func runOnboard(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doIndex, _ := cmd.Flags().GetBool("index")

	opts := onboard.Options{
		Index:     doIndex,
		APIPort:   cfg.Port,
		QdrantURL: cfg.QdrantURL,
	}
	if doIndex {
		ix, _, err := createPipelineFromConfig(cfg)
		if err != nil {
			return err
		}
		opts.IndexFn = ix.Index
	}

	report, err := onboard.Run(ctx, absRoot, opts)
	if err != nil {
		return fmt.Errorf("onboarding failed: %w", err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Onboarding report for %s\n\n", report.Path)
	printPreflightReport(report.Preflight)
	if report.ChunksIndexed > 0 {
		fmt.Printf("\nIndexed %d chunks.\n", report.ChunksIndexed)
	}

	if len(report.Links) > 0 {
		fmt.Println("\nLinks:")
		names := make([]string, 0, len(report.Links))
		for name := range report.Links {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %s\n", name, report.Links[name])
		}
	}

	fmt.Println("\nNext steps:")
	for _, step := range report.NextSteps {
		fmt.Printf("  [%s] %s", step.Status, step.Name)
		if step.Detail != "" {
			fmt.Printf(" - %s", step.Detail)
		}
		fmt.Println()
	}
	return nil
}
