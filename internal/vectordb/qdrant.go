package vectordb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultQdrantURL is the conventional local Qdrant REST endpoint.
const DefaultQdrantURL = "http://localhost:6333"

// QdrantConfig configures a Qdrant-backed index.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// Qdrant is a minimal REST client for a Qdrant collection. It assumes cosine
// distance and creates the collection on first use.
type Qdrant struct {
	baseURL    string
	apiKey     string
	collection string
	client     *http.Client
}

// NewQdrant creates a Qdrant index client. The collection name is required.
func NewQdrant(cfg QdrantConfig) (*Qdrant, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("qdrant: collection name is required")
	}
	url := cfg.URL
	if url == "" {
		url = DefaultQdrantURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Qdrant{
		baseURL:    strings.TrimRight(url, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}, nil
}

// Collection returns the collection name this client is bound to.
func (q *Qdrant) Collection() string { return q.collection }

// EnsureCollection creates the collection with the given dimensionality and
// cosine distance. An "already exists" response is swallowed; any other
// failure propagates.
func (q *Qdrant) EnsureCollection(ctx context.Context, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("qdrant: invalid dimension %d", dim)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dim,
			"distance": "Cosine",
		},
	}
	err := q.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s", q.collection), body, nil)
	if err != nil && isAlreadyExists(err) {
		return nil
	}
	return err
}

// Upsert writes all points in a single request and waits for them to be
// persisted before returning.
func (q *Qdrant) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	body := map[string]any{"points": points}
	path := fmt.Sprintf("/collections/%s/points?wait=true", q.collection)
	return q.do(ctx, http.MethodPut, path, body, nil)
}

// Search returns the nearest points to vector, best score first.
func (q *Qdrant) Search(ctx context.Context, vector []float32, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 3
	}
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float32 `json:"score"`
			Payload Payload `json:"payload"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points/search", q.collection)
	if err := q.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, Hit{Score: r.Score, Payload: r.Payload})
	}
	return hits, nil
}

// statusError carries the HTTP status and response body of a failed call so
// EnsureCollection can recognize the benign "already exists" case.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant returned status %d: %s", e.status, e.body)
}

func isAlreadyExists(err error) bool {
	se, ok := err.(*statusError)
	if !ok {
		return false
	}
	return se.status == http.StatusConflict || strings.Contains(se.body, "already exists")
}

func (q *Qdrant) do(ctx context.Context, method, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("qdrant: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, q.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("qdrant: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{status: resp.StatusCode, body: string(respBody)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("qdrant: decode response: %w", err)
		}
	}
	return nil
}
