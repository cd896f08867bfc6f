package vectordb

import (
	"context"
	"testing"
)

func TestMemory_EnsureCollectionIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("docs")

	if err := m.EnsureCollection(ctx, 4); err != nil {
		t.Fatalf("first EnsureCollection: %v", err)
	}
	if err := m.EnsureCollection(ctx, 4); err != nil {
		t.Fatalf("second EnsureCollection: %v", err)
	}
	if err := m.EnsureCollection(ctx, 8); err == nil {
		t.Fatal("expected error when re-creating with a different dimension")
	}
}

func TestMemory_DimensionMismatchOnUpsert(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("docs")

	if err := m.EnsureCollection(ctx, 3); err != nil {
		t.Fatalf("EnsureCollection: %v", err)
	}

	err := m.Upsert(ctx, []Point{
		{ID: "a", Vector: []float32{1, 0}, Payload: Payload{Source: "a.md:0", Text: "a"}},
	})
	if err == nil {
		t.Fatal("expected dimension mismatch error, got nil")
	}
}

func TestMemory_SearchOrdersByScore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("docs")

	if err := m.EnsureCollection(ctx, 3); err != nil {
		t.Fatalf("EnsureCollection: %v", err)
	}

	points := []Point{
		{ID: PointID("docs", "x.md:0"), Vector: []float32{1, 0, 0}, Payload: Payload{Source: "x.md:0", Text: "x axis"}},
		{ID: PointID("docs", "y.md:0"), Vector: []float32{0, 1, 0}, Payload: Payload{Source: "y.md:0", Text: "y axis"}},
		{ID: PointID("docs", "xy.md:0"), Vector: []float32{1, 1, 0}, Payload: Payload{Source: "xy.md:0", Text: "diagonal"}},
	}
	if err := m.Upsert(ctx, points); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	hits, err := m.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Payload.Source != "x.md:0" {
		t.Errorf("nearest hit = %q, want x.md:0", hits[0].Payload.Source)
	}
	if hits[0].Score < hits[1].Score {
		t.Errorf("hits not ordered by score: %v then %v", hits[0].Score, hits[1].Score)
	}
}

func TestMemory_SearchEmptyCollection(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("docs")

	if err := m.EnsureCollection(ctx, 3); err != nil {
		t.Fatalf("EnsureCollection: %v", err)
	}

	hits, err := m.Search(ctx, []float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected zero hits, got %d", len(hits))
	}
}

func TestMemory_UpsertOverwritesSameID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("docs")

	if err := m.EnsureCollection(ctx, 2); err != nil {
		t.Fatalf("EnsureCollection: %v", err)
	}

	id := PointID("docs", "a.md:0")
	first := []Point{{ID: id, Vector: []float32{1, 0}, Payload: Payload{Source: "a.md:0", Text: "old"}}}
	second := []Point{{ID: id, Vector: []float32{1, 0}, Payload: Payload{Source: "a.md:0", Text: "new"}}}

	if err := m.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if err := m.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	if m.Count() != 1 {
		t.Fatalf("expected 1 point after overwrite, got %d", m.Count())
	}

	hits, err := m.Search(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if hits[0].Payload.Text != "new" {
		t.Errorf("payload text = %q, want overwritten value", hits[0].Payload.Text)
	}
}

func TestPointID_Deterministic(t *testing.T) {
	a := PointID("docs", "README.md:3")
	b := PointID("docs", "README.md:3")
	if a != b {
		t.Errorf("same input produced different IDs: %s vs %s", a, b)
	}

	if PointID("docs", "README.md:3") == PointID("docs", "README.md:4") {
		t.Error("different chunks produced the same ID")
	}
	if PointID("docs", "a.md:0") == PointID("other", "a.md:0") {
		t.Error("different collections produced the same ID")
	}
}
