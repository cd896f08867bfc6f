package digest

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/repoguide/repoguide/internal/schema"
)

// DefaultDays is the lookback window used when a caller does not specify one.
const DefaultDays = 30

const (
	topFileLimit       = 10
	defaultCommitLimit = 20
)

// Run summarizes change activity under path over the last days days. For git
// repositories it parses the commit log; everything else falls back to file
// modification times. A missing path yields an empty report with a note,
// never an error.
func Run(path string, days int) *schema.ChangeDigestReport {
	if days <= 0 {
		days = DefaultDays
	}
	root := filepath.Clean(path)
	since := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	if _, err := os.Stat(root); err != nil {
		return &schema.ChangeDigestReport{
			Path:  root,
			Since: since,
			Note:  "Path missing",
		}
	}

	if _, err := os.Stat(filepath.Join(root, ".git")); err == nil {
		if report, ok := gitDigest(root, since); ok {
			return report
		}
		// Unexpected git failure falls through to the mtime mode.
	}

	return mtimeDigest(root, since)
}

// gitDigest parses `git log --name-only` output into commit summaries and a
// per-file touch counter.
func gitDigest(root, since string) (*schema.ChangeDigestReport, bool) {
	out, err := runGit(root,
		"log", "--since="+since,
		"--date=short", "--pretty=format:%h\t%ad\t%s", "--name-only")
	if err != nil {
		return nil, false
	}

	var (
		commits []schema.CommitSummary
		counts  = map[string]int{}
		cur     *schema.CommitSummary
	)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if parts := strings.SplitN(line, "\t", 3); len(parts) == 3 {
			if cur != nil {
				commits = append(commits, *cur)
			}
			cur = &schema.CommitSummary{Hash: parts[0], Date: parts[1], Subject: parts[2]}
			continue
		}
		if cur != nil {
			file := strings.TrimSpace(line)
			cur.Files = append(cur.Files, file)
			counts[file]++
		}
	}
	if cur != nil {
		commits = append(commits, *cur)
	}

	if len(commits) > defaultCommitLimit {
		commits = commits[:defaultCommitLimit]
	}

	return &schema.ChangeDigestReport{
		Path:        root,
		Since:       since,
		CommitCount: len(commits),
		TopFiles:    topTouchedFiles(counts),
		Commits:     commits,
	}, true
}

// topTouchedFiles ranks files by commit count, ties broken by name for
// deterministic output.
func topTouchedFiles(counts map[string]int) []schema.FileChange {
	files := make([]schema.FileChange, 0, len(counts))
	for f, c := range counts {
		files = append(files, schema.FileChange{File: f, Count: c})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].Count != files[j].Count {
			return files[i].Count > files[j].Count
		}
		return files[i].File < files[j].File
	})
	if len(files) > topFileLimit {
		files = files[:topFileLimit]
	}
	return files
}

// mtimeDigest lists the most recently modified files under root.
func mtimeDigest(root, since string) *schema.ChangeDigestReport {
	cutoff, _ := time.Parse("2006-01-02", since)

	var changed []schema.FileChange
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		changed = append(changed, schema.FileChange{
			File:       filepath.ToSlash(rel),
			ModifiedAt: info.ModTime().Format(time.RFC3339),
		})
		return nil
	})

	sort.Slice(changed, func(i, j int) bool {
		return changed[i].ModifiedAt > changed[j].ModifiedAt
	})
	if len(changed) > topFileLimit {
		changed = changed[:topFileLimit]
	}

	return &schema.ChangeDigestReport{
		Path:     root,
		Since:    since,
		TopFiles: changed,
		Note:     "Not a git repo, using file modification time fallback",
	}
}

func runGit(root string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", root}, args...)...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String(), nil
}
