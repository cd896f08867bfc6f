package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/repoguide/repoguide/internal/db"
	"github.com/repoguide/repoguide/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the repoguide HTTP API",
	Long: `Starts the REST API exposing indexing, grounded explanations, preflight
checks, the change digest and the onboarding report.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	ix, rt, err := createPipelineFromConfig(cfg)
	if err != nil {
		return err
	}

	// Run history is best-effort; the API works without it.
	var database *db.DB
	if err := os.MkdirAll(cfg.DataDir, 0o755); err == nil {
		database, err = db.Open(filepath.Join(cfg.DataDir, "repoguide.db"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: run history disabled: %v\n", err)
		}
	}
	if database != nil {
		defer database.Close()
	}

	srv := server.New(server.Config{
		Port:       cfg.Port,
		AllowAll:   cfg.AllowAll,
		QdrantURL:  cfg.QdrantURL,
		Collection: cfg.Collection,
	}, ix, rt, database)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		srv.Shutdown(context.Background())
	}()

	fmt.Fprintf(os.Stderr, "repoguide %s listening on port %d\n", Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "  Collection: %s\n", cfg.Collection)
	fmt.Fprintf(os.Stderr, "  Backend: %s\n", cfg.IndexBackend)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
