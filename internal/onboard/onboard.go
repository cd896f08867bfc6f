package onboard

import (
	"context"
	"fmt"

	"github.com/repoguide/repoguide/internal/preflight"
	"github.com/repoguide/repoguide/internal/schema"
)

// IndexFunc triggers an indexing run and reports the number of chunks
// indexed. Passed in so onboarding does not depend on the indexer wiring.
type IndexFunc func(ctx context.Context, path string) (int, error)

// Options configures an onboarding run.
type Options struct {
	Index     bool      // run the indexer as part of onboarding
	IndexFn   IndexFunc // required when Index is true
	APIPort   int       // port the HTTP API is served on
	QdrantURL string    // vector index base URL, for the dashboard link
}

// Run assembles the onboarding report for a repository: health checks,
// optionally a fresh index run, service links and suggested next steps.
func Run(ctx context.Context, path string, opts Options) (*schema.OnboardReport, error) {
	pf := preflight.Run(path)

	chunks := 0
	if opts.Index && opts.IndexFn != nil {
		n, err := opts.IndexFn(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("onboard: indexing: %w", err)
		}
		chunks = n
	}

	port := opts.APIPort
	if port == 0 {
		port = 8000
	}
	links := map[string]string{
		"api_health": fmt.Sprintf("http://localhost:%d/healthz", port),
	}
	if opts.QdrantURL != "" {
		links["qdrant_dashboard"] = opts.QdrantURL + "/dashboard"
	}

	return &schema.OnboardReport{
		Path:          path,
		ChunksIndexed: chunks,
		Preflight:     pf,
		Links:         links,
		NextSteps:     nextSteps(pf),
	}, nil
}

// nextSteps turns preflight warnings into a todo list; a clean report yields
// a single done marker.
func nextSteps(pf *schema.PreflightReport) []schema.OnboardAction {
	var steps []schema.OnboardAction
	for _, c := range pf.Checks {
		if c.Status != schema.StatusWarn {
			continue
		}
		detail := c.Fix
		if detail == "" {
			detail = "Review: " + c.Name
		}
		steps = append(steps, schema.OnboardAction{
			Name:   c.Name,
			Status: schema.ActionTodo,
			Detail: detail,
		})
	}
	if len(steps) == 0 {
		steps = append(steps, schema.OnboardAction{
			Name:   "Everything looks good",
			Status: schema.ActionDone,
		})
	}
	return steps
}
