package preflight

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/repoguide/repoguide/internal/schema"
)

// setupMarkers are heading keywords that indicate the README explains how to
// get the project running.
var setupMarkers = []string{
	"setup", "set up", "getting started", "installation", "install",
	"usage", "quickstart", "quick start", "running", "run",
}

// checkReadmeSections parses the README as Markdown and scans its headings
// for a setup/usage section.
func checkReadmeSections(readmeText string) schema.PreflightCheck {
	for _, heading := range readmeHeadings(readmeText) {
		lower := strings.ToLower(heading)
		for _, marker := range setupMarkers {
			if strings.Contains(lower, marker) {
				return schema.PreflightCheck{
					Name:   "README sections",
					Status: schema.StatusOK,
					Found:  "heading: " + heading,
				}
			}
		}
	}
	return schema.PreflightCheck{
		Name:     "README sections",
		Status:   schema.StatusWarn,
		Expected: "a Setup/Getting Started/Usage heading",
		Fix:      "Add a setup or usage section to the README.",
	}
}

// readmeHeadings returns the text of every heading in the document.
func readmeHeadings(src string) []string {
	source := []byte(src)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, headingText(h, source))
		}
		return ast.WalkContinue, nil
	})
	return headings
}

// headingText concatenates the raw text segments of a heading's children.
func headingText(h *ast.Heading, source []byte) string {
	var sb strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}
