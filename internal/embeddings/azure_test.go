package embeddings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewAzureEmbedder_RequiresAllConfig(t *testing.T) {
	cases := []struct {
		name                                     string
		endpoint, deployment, apiVersion, apiKey string
	}{
		{"missing endpoint", "", "dep", "v1", "key"},
		{"missing deployment", "http://x", "", "v1", "key"},
		{"missing api version", "http://x", "dep", "", "key"},
		{"missing api key", "http://x", "dep", "v1", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAzureEmbedder(tc.endpoint, tc.deployment, tc.apiVersion, tc.apiKey)
			if err == nil {
				t.Fatal("expected configuration error, got nil")
			}
		})
	}
}

func TestAzureEmbedder_OrderPreserving(t *testing.T) {
	// Stub provider returns a distinguishable vector per input: vector i is
	// [i, i, i] so positional identity is checkable.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "secret" {
			t.Errorf("missing api-key header")
		}
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		type item struct {
			Embedding []float32 `json:"embedding"`
		}
		var data []item
		for i := range req.Input {
			v := float32(i)
			data = append(data, item{Embedding: []float32{v, v, v}})
		}
		json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
	defer srv.Close()

	e, err := NewAzureEmbedder(srv.URL, "embed", "2024-02-01", "secret")
	if err != nil {
		t.Fatalf("NewAzureEmbedder: %v", err)
	}

	vectors, err := e.Embed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}
	for i, v := range vectors {
		if v[0] != float32(i) {
			t.Errorf("vector %d = %v, order not preserved", i, v)
		}
	}
	if e.Dimensions() != 3 {
		t.Errorf("Dimensions() = %d, want 3", e.Dimensions())
	}
}

func TestAzureEmbedder_NonSuccessIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e, err := NewAzureEmbedder(srv.URL, "embed", "2024-02-01", "secret")
	if err != nil {
		t.Fatalf("NewAzureEmbedder: %v", err)
	}

	if _, err := e.Embed(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected error on non-success response")
	}
}

func TestAzureEmbedder_CountMismatchIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{1}}},
		})
	}))
	defer srv.Close()

	e, err := NewAzureEmbedder(srv.URL, "embed", "2024-02-01", "secret")
	if err != nil {
		t.Fatalf("NewAzureEmbedder: %v", err)
	}

	if _, err := e.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error when provider returns wrong vector count")
	}
}

func TestAzureEmbedder_EmptyBatchNoCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	e, err := NewAzureEmbedder(srv.URL, "embed", "2024-02-01", "secret")
	if err != nil {
		t.Fatalf("NewAzureEmbedder: %v", err)
	}

	vectors, err := e.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if vectors != nil {
		t.Errorf("expected nil vectors for empty batch, got %v", vectors)
	}
	if called {
		t.Error("empty batch must not reach the provider")
	}
}
