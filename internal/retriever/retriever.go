package retriever

import (
	"context"
	"errors"
	"fmt"

	"github.com/repoguide/repoguide/internal/embeddings"
	"github.com/repoguide/repoguide/internal/schema"
	"github.com/repoguide/repoguide/internal/vectordb"
)

// ErrNoGrounding is returned when the index yields no hits for a question.
// It is a normal negative outcome, distinct from provider or index failures:
// callers surface it as "needs more context", never as a server error.
var ErrNoGrounding = errors.New("no grounding found")

// DefaultTopK is the number of nearest chunks retrieved per question.
const DefaultTopK = 3

// CitationSource tags citations whose grounding came from the vector index.
const CitationSource = "qdrant"

// Retriever answers questions by embedding them and searching the vector
// index for the nearest chunks, which become the answer's evidence.
type Retriever struct {
	embedder embeddings.Embedder
	index    vectordb.Index
	topK     int
}

// New creates a Retriever searching the given index. topK <= 0 selects
// DefaultTopK.
func New(embedder embeddings.Embedder, index vectordb.Index, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{embedder: embedder, index: index, topK: topK}
}

// Explain embeds the question, retrieves the nearest chunks and assembles a
// grounded answer with one bullet and one citation per hit, in ranking order.
// Zero hits return ErrNoGrounding rather than an empty Answer.
//
// The scope parameter is accepted for API compatibility but does not filter
// retrieval yet; wiring it into the search as a payload filter is an open
// extension point.
func (r *Retriever) Explain(ctx context.Context, question, scope string) (*schema.Answer, error) {
	_ = scope

	vectors, err := r.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("retriever: embed question: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("retriever: expected 1 question vector, got %d", len(vectors))
	}

	hits, err := r.index.Search(ctx, vectors[0], r.topK)
	if err != nil {
		return nil, fmt.Errorf("retriever: search: %w", err)
	}
	if len(hits) == 0 {
		return nil, ErrNoGrounding
	}

	bullets := make([]string, len(hits))
	citations := make([]schema.Citation, len(hits))
	for i, h := range hits {
		bullets[i] = h.Payload.Text
		citations[i] = schema.Citation{
			Source: CitationSource,
			File:   h.Payload.Source,
			// Chunk-level granularity only; line numbers are not tracked.
			StartLine: 1,
			EndLine:   1,
		}
	}

	return &schema.Answer{
		Summary:   fmt.Sprintf("Grounded explanation based on %d snippet(s).", len(hits)),
		Bullets:   bullets,
		Citations: citations,
	}, nil
}
