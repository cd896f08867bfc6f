package chunker

import (
	"strings"
	"testing"
)

func TestSplit_CoversWholeInput(t *testing.T) {
	text := strings.Repeat("abcdefghij", 100) // 1000 bytes, no whitespace
	chunks := Split(text, 300, 50)

	if len(chunks) == 0 {
		t.Fatal("Split() returned no chunks")
	}

	// Reconstruct coverage: each chunk i starts at i*step.
	step := 300 - 50
	covered := make([]bool, len(text))
	for i, c := range chunks {
		start := i * step
		if len(c) > 300 {
			t.Errorf("chunk %d has length %d, want <= 300", i, len(c))
		}
		if got := text[start : start+len(c)]; got != c {
			t.Errorf("chunk %d does not match source at offset %d", i, start)
		}
		for j := start; j < start+len(c); j++ {
			covered[j] = true
		}
	}
	for i, ok := range covered {
		if !ok {
			t.Fatalf("position %d not covered by any chunk", i)
		}
	}
}

func TestSplit_ShortInput(t *testing.T) {
	chunks := Split("hello world", 800, 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "hello world" {
		t.Errorf("chunk = %q, want %q", chunks[0], "hello world")
	}
}

func TestSplit_DropsWhitespaceWindows(t *testing.T) {
	// 10 bytes of content followed by 100 bytes of whitespace.
	text := "0123456789" + strings.Repeat(" ", 100)
	chunks := Split(text, 10, 0)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %q", len(chunks), chunks)
	}
	if chunks[0] != "0123456789" {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	if chunks := Split("", 800, 100); chunks != nil {
		t.Errorf("expected nil for empty input, got %v", chunks)
	}
	if chunks := Split("   \n\t  ", 800, 100); chunks != nil {
		t.Errorf("expected nil for whitespace input, got %v", chunks)
	}
}

func TestSplit_DegenerateOverlapStillTerminates(t *testing.T) {
	text := strings.Repeat("x", 50)
	// overlap >= window forces the step-of-one guard.
	chunks := Split(text, 10, 10)

	if len(chunks) != 50 {
		t.Fatalf("expected 50 chunks with step 1, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 10 {
			t.Errorf("chunk %d has length %d, want <= 10", i, len(c))
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := strings.Repeat("the quick brown fox ", 200)
	a := Split(text, 800, 100)
	b := Split(text, 800, 100)

	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("chunk %d differs between calls", i)
		}
	}
}
