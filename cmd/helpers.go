package cmd

import (
	"fmt"

	"github.com/repoguide/repoguide/internal/config"
	"github.com/repoguide/repoguide/internal/embeddings"
	"github.com/repoguide/repoguide/internal/indexer"
	"github.com/repoguide/repoguide/internal/retriever"
	"github.com/repoguide/repoguide/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `repoguide init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// Credentials come from the environment; the constructors report exactly
// which variable is missing.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		return embeddings.NewOpenAIEmbedderFromEnv(embeddings.OpenAIModel(cfg.EmbeddingModel))
	default:
		return embeddings.NewAzureEmbedderFromEnv()
	}
}

// createIndexFromConfig creates the vector index backend named by config.
func createIndexFromConfig(cfg *config.Config) (vectordb.Index, error) {
	switch cfg.IndexBackend {
	case config.BackendMemory:
		return vectordb.NewMemory(cfg.Collection), nil
	default:
		return vectordb.NewQdrant(vectordb.QdrantConfig{
			URL:        cfg.QdrantURL,
			Collection: cfg.Collection,
		})
	}
}

// createPipelineFromConfig wires the full embed/index/retrieve pipeline.
func createPipelineFromConfig(cfg *config.Config) (*indexer.Indexer, *retriever.Retriever, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating embedder: %w", err)
	}
	index, err := createIndexFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating vector index: %w", err)
	}

	ix := indexer.New(embedder, index, cfg.Collection, indexer.Options{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		BatchSize:    cfg.BatchSize,
		Extensions:   cfg.Extensions,
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
	})
	rt := retriever.New(embedder, index, cfg.TopK)
	return ix, rt, nil
}
