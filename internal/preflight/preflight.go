package preflight

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/repoguide/repoguide/internal/schema"
)

// Run executes the repository-health heuristics against path and returns the
// aggregated report. A missing path is the only hard error status; everything
// else is ok/warn with a suggested fix.
func Run(path string) *schema.PreflightReport {
	root := filepath.Clean(path)

	if _, err := os.Stat(root); err != nil {
		return &schema.PreflightReport{
			Path: root,
			Checks: []schema.PreflightCheck{{
				Name:     "Path exists",
				Status:   schema.StatusError,
				Found:    "missing",
				Expected: root,
				Fix:      "Double-check the path; mount or clone the repo.",
			}},
			Summary: "Repo path missing",
		}
	}

	var checks []schema.PreflightCheck

	readmePath, readmeText := findReadme(root)
	if readmePath != "" {
		checks = append(checks, schema.PreflightCheck{
			Name:   "README",
			Status: schema.StatusOK,
			Found:  readmePath,
		})
		checks = append(checks, checkReadmeSections(readmeText))
	} else {
		checks = append(checks, schema.PreflightCheck{
			Name:     "README",
			Status:   schema.StatusWarn,
			Expected: "README.md",
			Fix:      "Add a README with setup and run instructions.",
		})
	}

	checks = append(checks, checkPyproject(root))
	checks = append(checks, checkPackageJSON(root))
	checks = append(checks, checkGoMod(root))

	checks = append(checks, checkFileExists(root, "docker-compose.yml", "Docker Compose",
		"Add docker-compose.yml for one-command dev."))
	checks = append(checks, checkFileExists(root, ".env.example", ".env.example",
		"Create .env.example listing required env vars (no secrets)."))

	checks = append(checks, checkTestsInstruction(readmeText))

	errors, warns := 0, 0
	for _, c := range checks {
		switch c.Status {
		case schema.StatusError:
			errors++
		case schema.StatusWarn:
			warns++
		}
	}

	return &schema.PreflightReport{
		Path:    root,
		Checks:  checks,
		Summary: fmt.Sprintf("%d error(s), %d warning(s)", errors, warns),
	}
}

// findReadme returns the path and content of the repository README, if any.
func findReadme(root string) (string, string) {
	for _, name := range []string{"README.md", "readme.md"} {
		p := filepath.Join(root, name)
		if data, err := os.ReadFile(p); err == nil {
			return p, string(data)
		}
	}
	return "", ""
}

// checkFileExists builds an ok/warn check for a well-known file.
func checkFileExists(root, name, checkName, fix string) schema.PreflightCheck {
	p := filepath.Join(root, name)
	if _, err := os.Stat(p); err == nil {
		return schema.PreflightCheck{
			Name:     checkName,
			Status:   schema.StatusOK,
			Found:    p,
			Expected: name,
		}
	}
	return schema.PreflightCheck{
		Name:     checkName,
		Status:   schema.StatusWarn,
		Found:    "missing",
		Expected: name,
		Fix:      fix,
	}
}

// checkPyproject looks for a Python version pin in pyproject.toml, accepting
// both PEP 621 requires-python and the poetry dependency form.
func checkPyproject(root string) schema.PreflightCheck {
	data, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	if err != nil {
		return schema.PreflightCheck{
			Name:     "pyproject.toml",
			Status:   schema.StatusWarn,
			Expected: "pyproject.toml",
			Fix:      "Consider using pyproject.toml for Python deps and version.",
		}
	}

	req := ""
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "requires-python") || strings.HasPrefix(line, "python ") || strings.HasPrefix(line, "python=") {
			if _, val, ok := strings.Cut(line, "="); ok {
				req = strings.Trim(strings.TrimSpace(val), `"'`)
			}
			break
		}
	}

	if req != "" {
		return schema.PreflightCheck{
			Name:     "Python version (pyproject)",
			Status:   schema.StatusOK,
			Found:    req,
			Expected: ">=3.11",
		}
	}
	return schema.PreflightCheck{
		Name:     "Python version (pyproject)",
		Status:   schema.StatusWarn,
		Found:    "unspecified",
		Expected: ">=3.11",
		Fix:      "Add project.requires-python in pyproject.toml (e.g., '>=3.11')",
	}
}

// checkPackageJSON looks for an engines.node constraint.
func checkPackageJSON(root string) schema.PreflightCheck {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return schema.PreflightCheck{
			Name:     "package.json",
			Status:   schema.StatusWarn,
			Expected: "package.json",
			Fix:      "Add package.json if there is a frontend or scripts.",
		}
	}

	var pkg struct {
		Engines struct {
			Node string `json:"node"`
		} `json:"engines"`
	}
	// Unparseable JSON counts as unspecified, not a crash.
	_ = json.Unmarshal(data, &pkg)

	if pkg.Engines.Node != "" {
		return schema.PreflightCheck{
			Name:     "Node version (package.json)",
			Status:   schema.StatusOK,
			Found:    pkg.Engines.Node,
			Expected: ">=20",
		}
	}
	return schema.PreflightCheck{
		Name:     "Node version (package.json)",
		Status:   schema.StatusWarn,
		Found:    "unspecified",
		Expected: ">=20",
		Fix:      "Add engines.node to package.json (e.g., '>=20')",
	}
}

// checkGoMod looks for a go directive in go.mod.
func checkGoMod(root string) schema.PreflightCheck {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return schema.PreflightCheck{
			Name:     "go.mod",
			Status:   schema.StatusWarn,
			Expected: "go.mod",
			Fix:      "Add go.mod if the repo contains Go code.",
		}
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "go "); ok {
			return schema.PreflightCheck{
				Name:     "Go version (go.mod)",
				Status:   schema.StatusOK,
				Found:    strings.TrimSpace(rest),
				Expected: "go directive",
			}
		}
	}
	return schema.PreflightCheck{
		Name:     "Go version (go.mod)",
		Status:   schema.StatusWarn,
		Found:    "unspecified",
		Expected: "go directive",
		Fix:      "Add a go directive to go.mod (e.g., 'go 1.24').",
	}
}

// checkTestsInstruction verifies the README documents how to run tests.
func checkTestsInstruction(readmeText string) schema.PreflightCheck {
	lower := strings.ToLower(readmeText)
	for _, marker := range []string{"pytest", "go test", "npm test", "make test"} {
		if strings.Contains(lower, marker) {
			return schema.PreflightCheck{
				Name:   "Tests instruction",
				Status: schema.StatusOK,
				Found:  marker + " mentioned",
			}
		}
	}
	return schema.PreflightCheck{
		Name:     "Tests instruction",
		Status:   schema.StatusWarn,
		Expected: "README shows how to run tests",
		Fix:      "Document how to run tests (e.g., `pytest -q` or `go test ./...`).",
	}
}
