package digest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRun_MissingPath(t *testing.T) {
	report := Run(filepath.Join(t.TempDir(), "nope"), 30)

	if report.Note != "Path missing" {
		t.Errorf("note = %q, want path-missing note", report.Note)
	}
	if report.CommitCount != 0 || len(report.Commits) != 0 || len(report.TopFiles) != 0 {
		t.Errorf("missing path must yield an empty report: %+v", report)
	}
	if report.Since == "" {
		t.Error("since date should still be populated")
	}
}

func TestRun_MtimeFallback(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.md", "b.txt", "sub/c.py"} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	report := Run(dir, 30)

	if report.Note == "" {
		t.Error("non-git directory should carry the fallback note")
	}
	if report.CommitCount != 0 {
		t.Errorf("commit count = %d, want 0 in fallback mode", report.CommitCount)
	}
	if len(report.TopFiles) != 3 {
		t.Fatalf("top files = %d, want 3", len(report.TopFiles))
	}
	for _, fc := range report.TopFiles {
		if fc.ModifiedAt == "" {
			t.Errorf("file %q missing modification time", fc.File)
		}
		if fc.Count != 0 {
			t.Errorf("file %q has a commit count in mtime mode", fc.File)
		}
	}
}

func TestRun_MtimeFallbackCapsAtTen(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 15; i++ {
		name := filepath.Join(dir, "f"+string(rune('a'+i))+".txt")
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	report := Run(dir, 30)
	if len(report.TopFiles) != 10 {
		t.Errorf("top files = %d, want cap of 10", len(report.TopFiles))
	}
}

func TestTopTouchedFiles_Ranking(t *testing.T) {
	counts := map[string]int{
		"main.go":   5,
		"README.md": 2,
		"api.go":    5,
		"old.go":    1,
	}

	files := topTouchedFiles(counts)

	if len(files) != 4 {
		t.Fatalf("len = %d, want 4", len(files))
	}
	// Highest count first; ties broken by name.
	if files[0].File != "api.go" || files[1].File != "main.go" {
		t.Errorf("order = %q, %q; want api.go, main.go", files[0].File, files[1].File)
	}
	if files[3].File != "old.go" {
		t.Errorf("last = %q, want old.go", files[3].File)
	}
}
