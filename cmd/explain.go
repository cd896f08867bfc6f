package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repoguide/repoguide/internal/retriever"
	"github.com/repoguide/repoguide/internal/schema"
)

var explainCmd = &cobra.Command{
	Use:   "explain [question]",
	Short: "Answer a question about the indexed repository",
	Long: `Embeds the question, retrieves the closest indexed chunks and prints
an explanation grounded in those snippets, with a citation per bullet.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().String("scope", "", "optional scope hint for retrieval")
	explainCmd.Flags().Bool("json", false, "output the answer as JSON")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	scope, _ := cmd.Flags().GetString("scope")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, rt, err := createPipelineFromConfig(cfg)
	if err != nil {
		return err
	}

	answer, err := rt.Explain(ctx, question, scope)
	if err != nil {
		if errors.Is(err, retriever.ErrNoGrounding) {
			fmt.Println("Not enough indexed context to answer. Run `repoguide index` first.")
			return nil
		}
		return fmt.Errorf("explain failed: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	printAnswer(answer)
	return nil
}

func printAnswer(answer *schema.Answer) {
	fmt.Printf("%s\n\n", answer.Summary)
	for i, bullet := range answer.Bullets {
		fmt.Printf("  %d. %s\n", i+1, bullet)
		if i < len(answer.Citations) {
			c := answer.Citations[i]
			fmt.Printf("     [%s] %s\n", c.Source, c.File)
		}
		fmt.Println()
	}
}
