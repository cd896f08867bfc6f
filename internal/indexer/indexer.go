package indexer

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/repoguide/repoguide/internal/chunker"
	"github.com/repoguide/repoguide/internal/embeddings"
	"github.com/repoguide/repoguide/internal/progress"
	"github.com/repoguide/repoguide/internal/vectordb"
	"github.com/repoguide/repoguide/internal/walker"
)

// Options tunes how a repository is chunked and embedded.
type Options struct {
	ChunkSize    int      // window size in bytes (0 = chunker default)
	ChunkOverlap int      // overlap between windows
	BatchSize    int      // texts per embedding request (0 = embeddings.BatchSize)
	Extensions   []string // extension allow-list (nil = walker default)
	Include      []string // include globs
	Exclude      []string // exclude globs
	MaxFileSize  int64

	Reporter progress.Reporter // optional progress feedback
}

// Indexer walks a repository, chunks its text files, embeds the chunks in
// batches and upserts them into a vector index collection.
type Indexer struct {
	embedder   embeddings.Embedder
	index      vectordb.Index
	collection string
	opts       Options
}

// New creates an Indexer writing into the named collection.
func New(embedder embeddings.Embedder, index vectordb.Index, collection string, opts Options) *Indexer {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = chunker.DefaultWindow
		opts.ChunkOverlap = chunker.DefaultOverlap
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = embeddings.BatchSize
	}
	return &Indexer{
		embedder:   embedder,
		index:      index,
		collection: collection,
		opts:       opts,
	}
}

// Index processes every allowed file under root and returns the number of
// points upserted. A missing root or a repository with no indexable content
// yields 0 without touching the embedding provider or the index. Unreadable
// files are skipped; embedding or index failures abort the run.
func (ix *Indexer) Index(ctx context.Context, root string) (int, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("indexer: stat %s: %w", root, err)
	}

	files, err := walker.Walk(walker.Config{
		RootDir:     root,
		Extensions:  ix.opts.Extensions,
		Include:     ix.opts.Include,
		Exclude:     ix.opts.Exclude,
		MaxFileSize: ix.opts.MaxFileSize,
	})
	if err != nil {
		return 0, fmt.Errorf("indexer: %w", err)
	}

	// Collect chunks. Chunk order is preserved end-to-end so vector i always
	// corresponds to payload i.
	var (
		payloads []vectordb.Payload
		texts    []string
	)
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			// Racing deletes and permission problems skip the file, not the run.
			log.Printf("indexer: skipping %s: %v", f.RelPath, err)
			continue
		}
		content := strings.ToValidUTF8(string(data), "")
		for idx, chunk := range chunker.Split(content, ix.opts.ChunkSize, ix.opts.ChunkOverlap) {
			texts = append(texts, chunk)
			payloads = append(payloads, vectordb.Payload{
				Source: fmt.Sprintf("%s:%d", f.RelPath, idx),
				Text:   chunk,
			})
		}
	}

	if len(texts) == 0 {
		return 0, nil
	}

	if ix.opts.Reporter != nil {
		ix.opts.Reporter.Start(len(texts))
		defer ix.opts.Reporter.Finish()
	}

	// Embed in fixed-size batches, preserving global order.
	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += ix.opts.BatchSize {
		end := i + ix.opts.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := ix.embedder.Embed(ctx, texts[i:end])
		if err != nil {
			return 0, fmt.Errorf("indexer: embed batch: %w", err)
		}
		vectors = append(vectors, batch...)
		if ix.opts.Reporter != nil {
			ix.opts.Reporter.Update(len(vectors), fmt.Sprintf("Embedding chunks (%d/%d)", len(vectors), len(texts)))
		}
	}
	if len(vectors) != len(payloads) {
		return 0, fmt.Errorf("indexer: embedded %d vectors for %d chunks", len(vectors), len(payloads))
	}

	// The collection's dimensionality is fixed by the first vector.
	if err := ix.index.EnsureCollection(ctx, len(vectors[0])); err != nil {
		return 0, fmt.Errorf("indexer: ensure collection: %w", err)
	}

	points := make([]vectordb.Point, len(vectors))
	for i := range vectors {
		points[i] = vectordb.Point{
			ID:      vectordb.PointID(ix.collection, payloads[i].Source),
			Vector:  vectors[i],
			Payload: payloads[i],
		}
	}
	if err := ix.index.Upsert(ctx, points); err != nil {
		return 0, fmt.Errorf("indexer: upsert: %w", err)
	}

	return len(points), nil
}
