package onboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/repoguide/repoguide/internal/schema"
)

func TestRun_WithoutIndexing(t *testing.T) {
	dir := t.TempDir()

	report, err := Run(context.Background(), dir, Options{APIPort: 8000, QdrantURL: "http://localhost:6333"})
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}

	if report.ChunksIndexed != 0 {
		t.Errorf("chunks = %d, want 0 without indexing", report.ChunksIndexed)
	}
	if report.Preflight == nil {
		t.Fatal("preflight report missing")
	}
	if report.Links["api_health"] != "http://localhost:8000/healthz" {
		t.Errorf("api_health link = %q", report.Links["api_health"])
	}
	if report.Links["qdrant_dashboard"] != "http://localhost:6333/dashboard" {
		t.Errorf("qdrant_dashboard link = %q", report.Links["qdrant_dashboard"])
	}
	// An empty repo has warnings, so next steps must all be todos.
	if len(report.NextSteps) == 0 {
		t.Fatal("expected next steps")
	}
	for _, s := range report.NextSteps {
		if s.Status != schema.ActionTodo {
			t.Errorf("step %q status = %q, want todo", s.Name, s.Status)
		}
		if s.Detail == "" {
			t.Errorf("step %q has no detail", s.Name)
		}
	}
}

func TestRun_WithIndexing(t *testing.T) {
	dir := t.TempDir()
	indexed := false

	report, err := Run(context.Background(), dir, Options{
		Index: true,
		IndexFn: func(_ context.Context, path string) (int, error) {
			indexed = true
			if path != dir {
				t.Errorf("index path = %q, want %q", path, dir)
			}
			return 42, nil
		},
	})
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}

	if !indexed {
		t.Error("index function was not invoked")
	}
	if report.ChunksIndexed != 42 {
		t.Errorf("chunks = %d, want 42", report.ChunksIndexed)
	}
}

func TestRun_IndexFailurePropagates(t *testing.T) {
	_, err := Run(context.Background(), t.TempDir(), Options{
		Index: true,
		IndexFn: func(context.Context, string) (int, error) {
			return 0, errors.New("provider down")
		},
	})
	if err == nil {
		t.Fatal("expected indexing failure to propagate")
	}
}

func TestNextSteps_CleanReport(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"README.md":          "# Demo\n\n## Setup\n\nRun `go test ./...`.\n",
		"go.mod":             "module demo\n\ngo 1.24\n",
		"docker-compose.yml": "services: {}\n",
		".env.example":       "KEY=\n",
		"pyproject.toml":     "[project]\nrequires-python = \">=3.11\"\n",
		"package.json":       `{"engines":{"node":">=20"}}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	report, err := Run(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}

	if len(report.NextSteps) != 1 {
		t.Fatalf("steps = %d, want single done marker: %+v", len(report.NextSteps), report.NextSteps)
	}
	if report.NextSteps[0].Status != schema.ActionDone {
		t.Errorf("step status = %q, want done", report.NextSteps[0].Status)
	}
}
