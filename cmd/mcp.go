package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repoguide/repoguide/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Starts a Model Context Protocol server exposing repoguide's tools
(explain_repo, index_repo, change_digest, preflight) to AI agents over
stdio. All logging goes to stderr; stdout carries protocol messages.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ix, rt, err := createPipelineFromConfig(cfg)
	if err != nil {
		return err
	}

	mcp.Version = Version
	return mcp.NewServer(ix, rt).Serve()
}
