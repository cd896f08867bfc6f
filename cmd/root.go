package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "repoguide",
	Short: "Retrieval-grounded repository explanations",
	Long: `Repoguide chunks and embeds a repository's text files into a vector
index, then answers natural-language questions about the codebase with
explanations grounded in the retrieved snippets. It also ships repository
health checks, a recent-change digest, and an onboarding report, served
over a REST API or to AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".repoguide.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
