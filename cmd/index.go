package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/repoguide/repoguide/internal/db"
	"github.com/repoguide/repoguide/internal/indexer"
	"github.com/repoguide/repoguide/internal/progress"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Chunk and embed a repository into the vector index",
	Long: `Walks the repository, splits its text files into overlapping chunks,
embeds the chunks in batches and upserts them into the configured vector
index collection. Re-indexing the same repository overwrites previous
points rather than duplicating them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
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

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	index, err := createIndexFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating vector index: %w", err)
	}

	ix := indexer.New(embedder, index, cfg.Collection, indexer.Options{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		BatchSize:    cfg.BatchSize,
		Extensions:   cfg.Extensions,
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
		Reporter:     progress.NewReporter(),
	})

	fmt.Printf("Indexing %s into collection %q (%s)\n", absRoot, cfg.Collection, embedder.Name())

	start := time.Now()
	chunks, err := ix.Index(ctx, absRoot)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("Indexed %d chunks in %s\n", chunks, elapsed.Round(time.Millisecond))

	recordIndexRun(ctx, cfg.DataDir, absRoot, cfg.Collection, chunks, elapsed)
	return nil
}

// recordIndexRun appends the run to the local history database. History is
// best-effort; an unwritable data dir must not fail the indexing itself.
func recordIndexRun(ctx context.Context, dataDir, path, collection string, chunks int, elapsed time.Duration) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create data dir: %v\n", err)
		return
	}
	database, err := db.Open(filepath.Join(dataDir, "repoguide.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return
	}
	defer database.Close()

	_, err = database.RecordRun(ctx, db.IndexRun{
		Path:       path,
		Collection: collection,
		Chunks:     chunks,
		Duration:   elapsed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
	}
}
