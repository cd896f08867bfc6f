package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load() with missing file: %v", err)
	}

	if cfg.Collection != DefaultCollection {
		t.Errorf("Collection = %q, want %q", cfg.Collection, DefaultCollection)
	}
	if cfg.ChunkSize != 800 || cfg.ChunkOverlap != 100 {
		t.Errorf("chunk params = %d/%d, want 800/100", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.BatchSize != 16 {
		t.Errorf("BatchSize = %d, want 16", cfg.BatchSize)
	}
	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.TopK)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".repoguide.yml")
	content := "collection: my_docs\nchunk_size: 400\ntop_k: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if cfg.Collection != "my_docs" {
		t.Errorf("Collection = %q, want my_docs", cfg.Collection)
	}
	if cfg.ChunkSize != 400 {
		t.Errorf("ChunkSize = %d, want 400", cfg.ChunkSize)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	// Untouched keys keep defaults.
	if cfg.ChunkOverlap != 100 {
		t.Errorf("ChunkOverlap = %d, want default 100", cfg.ChunkOverlap)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("REPOGUIDE_COLLECTION", "env_docs")
	t.Setenv("REPOGUIDE_QDRANT_URL", "http://qdrant:6333")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if cfg.Collection != "env_docs" {
		t.Errorf("Collection = %q, want env override", cfg.Collection)
	}
	if cfg.QdrantURL != "http://qdrant:6333" {
		t.Errorf("QdrantURL = %q, want env override", cfg.QdrantURL)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"memory backend", func(c *Config) { c.IndexBackend = BackendMemory }, false},
		{"bad provider", func(c *Config) { c.EmbeddingProvider = "cohere" }, true},
		{"bad backend", func(c *Config) { c.IndexBackend = "redis" }, true},
		{"empty collection", func(c *Config) { c.Collection = "" }, true},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }, true},
		{"zero batch", func(c *Config) { c.BatchSize = 0 }, true},
		{"zero top_k", func(c *Config) { c.TopK = 0 }, true},
		{"bad port", func(c *Config) { c.Port = 70000 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".repoguide.yml")

	cfg := DefaultConfig()
	cfg.Collection = "roundtrip"
	cfg.TopK = 7
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if loaded.Collection != "roundtrip" || loaded.TopK != 7 {
		t.Errorf("reloaded config = %q/%d, want roundtrip/7", loaded.Collection, loaded.TopK)
	}
}
