package config

// ProviderType identifies an embedding provider.
type ProviderType string

const (
	ProviderAzure  ProviderType = "azure"
	ProviderOpenAI ProviderType = "openai"
)

// BackendType identifies a vector index backend.
type BackendType string

const (
	BackendQdrant BackendType = "qdrant"
	BackendMemory BackendType = "memory"
)

// Config is the top-level repoguide configuration, corresponding to
// .repoguide.yml. The collection name lives here and is handed to both the
// indexer and the retriever at construction time, so there is a single source
// of truth for where vectors go and where they are searched.
type Config struct {
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`

	IndexBackend BackendType `yaml:"index_backend" koanf:"index_backend"`
	QdrantURL    string      `yaml:"qdrant_url" koanf:"qdrant_url"`
	Collection   string      `yaml:"collection" koanf:"collection"`

	ChunkSize    int      `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap int      `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	BatchSize    int      `yaml:"batch_size" koanf:"batch_size"`
	Extensions   []string `yaml:"extensions" koanf:"extensions"`
	Include      []string `yaml:"include" koanf:"include"`
	Exclude      []string `yaml:"exclude" koanf:"exclude"`

	TopK int `yaml:"top_k" koanf:"top_k"`

	DataDir  string `yaml:"data_dir" koanf:"data_dir"`
	Port     int    `yaml:"port" koanf:"port"`
	AllowAll bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
