package vectordb

import (
	"context"
	"fmt"
	"sync"

	chromem "github.com/philippgille/chromem-go"
)

// Memory is an in-process Index backed by chromem-go. It serves local runs
// without a Qdrant instance and the test suite. Vectors are supplied by the
// caller; chromem's own embedding hook is never used.
type Memory struct {
	db         *chromem.DB
	name       string
	mu         sync.Mutex
	collection *chromem.Collection
	dim        int
}

// NewMemory creates an empty in-memory index for the named collection.
func NewMemory(collection string) *Memory {
	return &Memory{db: chromem.NewDB(), name: collection}
}

// noEmbed guards against any path that would ask chromem to embed text
// itself; all vectors must come in through Upsert and Search.
func noEmbed(context.Context, string) ([]float32, error) {
	return nil, fmt.Errorf("memory index: embeddings must be precomputed")
}

func (m *Memory) EnsureCollection(_ context.Context, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("memory index: invalid dimension %d", dim)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.collection != nil {
		// Idempotent: repeated creation with the same dimensionality is a
		// no-op, a different one is a contract violation.
		if dim != m.dim {
			return fmt.Errorf("memory index: collection %q has dimension %d, got %d", m.name, m.dim, dim)
		}
		return nil
	}

	col, err := m.db.GetOrCreateCollection(m.name, nil, noEmbed)
	if err != nil {
		return fmt.Errorf("memory index: create collection: %w", err)
	}
	m.collection = col
	m.dim = dim
	return nil
}

func (m *Memory) Upsert(ctx context.Context, points []Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.collection == nil {
		return fmt.Errorf("memory index: collection %q does not exist", m.name)
	}

	docs := make([]chromem.Document, len(points))
	for i, p := range points {
		if len(p.Vector) != m.dim {
			return fmt.Errorf("memory index: point %s has dimension %d, collection %q expects %d",
				p.ID, len(p.Vector), m.name, m.dim)
		}
		docs[i] = chromem.Document{
			ID:        p.ID,
			Content:   p.Payload.Text,
			Embedding: p.Vector,
			Metadata:  map[string]string{"source": p.Payload.Source},
		}
	}
	if len(docs) == 0 {
		return nil
	}
	if err := m.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("memory index: add documents: %w", err)
	}
	return nil
}

func (m *Memory) Search(ctx context.Context, vector []float32, limit int) ([]Hit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.collection == nil {
		return nil, nil
	}
	count := m.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}
	// chromem requires nResults <= collection size.
	if limit > count {
		limit = count
	}

	results, err := m.collection.QueryEmbedding(ctx, vector, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("memory index: query: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{
			Score: r.Similarity,
			Payload: Payload{
				Source: r.Metadata["source"],
				Text:   r.Content,
			},
		}
	}
	return hits, nil
}

// Count returns the number of points currently stored.
func (m *Memory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collection == nil {
		return 0
	}
	return m.collection.Count()
}
