package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (REPOGUIDE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: REPOGUIDE_QDRANT_URL -> qdrant_url, etc.
	if err := k.Load(env.Provider("REPOGUIDE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "REPOGUIDE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized embedding providers.
var validProviders = map[ProviderType]bool{
	ProviderAzure:  true,
	ProviderOpenAI: true,
}

// validBackends is the set of recognized index backends.
var validBackends = map[BackendType]bool{
	BackendQdrant: true,
	BackendMemory: true,
}

// Validate checks that the configuration contains valid values. Embedding
// credentials are checked later, by the embedder constructors, so that
// operations that never embed can run without them.
func (c *Config) Validate() error {
	if c.EmbeddingProvider == "" {
		return fmt.Errorf("embedding_provider is required")
	}
	if !validProviders[c.EmbeddingProvider] {
		return fmt.Errorf("invalid embedding_provider %q: must be one of azure, openai", c.EmbeddingProvider)
	}

	if c.IndexBackend != "" && !validBackends[c.IndexBackend] {
		return fmt.Errorf("invalid index_backend %q: must be one of qdrant, memory", c.IndexBackend)
	}

	if c.Collection == "" {
		return fmt.Errorf("collection is required")
	}

	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive")
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_overlap must be non-negative")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	return nil
}
