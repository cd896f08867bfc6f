package embeddings

import "context"

// Embedder converts text into fixed-length numeric vectors.
type Embedder interface {
	// Embed generates one vector per input text, order preserving.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector length, or 0 if not yet known.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// BatchSize is the recommended number of texts per Embed call. Callers batch
// at this size to bound request size and latency.
const BatchSize = 16
