package vectordb

import (
	"context"

	"github.com/google/uuid"
)

// Payload is the structured record stored alongside each vector. Source is
// "<relative path>:<chunk index>"; Text is the original chunk verbatim.
type Payload struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Point is one vector plus its payload, ready for upsert.
type Point struct {
	ID      string    `json:"id"`
	Vector  []float32 `json:"vector"`
	Payload Payload   `json:"payload"`
}

// Hit is one nearest-neighbor search result.
type Hit struct {
	Score   float32 `json:"score"`
	Payload Payload `json:"payload"`
}

// Index is a named vector collection supporting idempotent creation, batch
// upsert and nearest-neighbor search. The collection name is fixed at
// construction so indexer and retriever share a single source of truth.
type Index interface {
	// EnsureCollection creates the collection with the given dimensionality
	// if it does not already exist. Calling it again for an existing
	// collection is a no-op.
	EnsureCollection(ctx context.Context, dim int) error

	// Upsert writes points into the collection. Points with colliding IDs
	// overwrite the previous record.
	Upsert(ctx context.Context, points []Point) error

	// Search returns up to limit hits ordered nearest first. Zero hits is a
	// valid, non-error outcome.
	Search(ctx context.Context, vector []float32, limit int) ([]Hit, error)
}

// PointID derives a stable identifier for a chunk. Re-indexing the same
// source chunk produces the same ID, so stale points are overwritten rather
// than duplicated.
func PointID(collection, source string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(collection+"/"+source)).String()
}
