package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .repoguide.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to repoguide! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Embedding provider.
	providerPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{
			"azure  — Azure OpenAI deployment (AZURE_OPENAI_* env vars)",
			"openai — OpenAI API (OPENAI_API_KEY env var)",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []ProviderType{ProviderAzure, ProviderOpenAI}
	cfg.EmbeddingProvider = providers[providerIdx]

	// 2. Vector index backend.
	backendPrompt := promptui.Select{
		Label: "Select vector index backend",
		Items: []string{
			"qdrant — external Qdrant service (recommended)",
			"memory — in-process index, lost on exit",
		},
	}
	backendIdx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend selection: %w", err)
	}
	backends := []BackendType{BackendQdrant, BackendMemory}
	cfg.IndexBackend = backends[backendIdx]

	if cfg.IndexBackend == BackendQdrant {
		urlPrompt := promptui.Prompt{
			Label:   "Qdrant URL",
			Default: cfg.QdrantURL,
		}
		url, err := urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("qdrant url: %w", err)
		}
		cfg.QdrantURL = strings.TrimSpace(url)
	}

	// 3. Collection name.
	colPrompt := promptui.Prompt{
		Label:   "Collection name",
		Default: cfg.Collection,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("collection name cannot be empty")
			}
			return nil
		},
	}
	col, err := colPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("collection name: %w", err)
	}
	cfg.Collection = strings.TrimSpace(col)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(".repoguide.yml"); err != nil {
		return nil, err
	}
	fmt.Println("\nSaved configuration to .repoguide.yml")

	return cfg, nil
}
