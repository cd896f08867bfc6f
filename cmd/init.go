package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repoguide/repoguide/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize repoguide configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure repoguide for your project and generates a .repoguide.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
