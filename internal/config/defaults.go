package config

import (
	"github.com/repoguide/repoguide/internal/chunker"
	"github.com/repoguide/repoguide/internal/embeddings"
	"github.com/repoguide/repoguide/internal/vectordb"
	"github.com/repoguide/repoguide/internal/walker"
)

// DefaultCollection is the collection shared by indexing and retrieval unless
// overridden in configuration.
const DefaultCollection = "repoguide_docs"

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingProvider: ProviderAzure,
		IndexBackend:      BackendQdrant,
		QdrantURL:         vectordb.DefaultQdrantURL,
		Collection:        DefaultCollection,
		ChunkSize:         chunker.DefaultWindow,
		ChunkOverlap:      chunker.DefaultOverlap,
		BatchSize:         embeddings.BatchSize,
		Extensions:        append([]string(nil), walker.DefaultExtensions...),
		TopK:              3,
		DataDir:           ".repoguide",
		Port:              8000,
	}
}
