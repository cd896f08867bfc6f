package chunker

import "strings"

// Default window parameters, in bytes.
const (
	DefaultWindow  = 800
	DefaultOverlap = 100
)

// Split cuts text into fixed-size windows of at most window bytes, each
// overlapping the previous one by overlap bytes. Windows that are empty after
// trimming whitespace are dropped. The function is pure: the same input always
// produces the same chunks.
func Split(text string, window, overlap int) []string {
	if window <= 0 {
		window = DefaultWindow
	}
	if overlap < 0 {
		overlap = 0
	}

	// A non-positive step would loop forever; clamp to 1 so every call
	// terminates even with a degenerate window/overlap pair.
	step := window - overlap
	if step <= 0 {
		step = 1
	}

	var chunks []string
	for i := 0; i < len(text); i += step {
		end := i + window
		if end > len(text) {
			end = len(text)
		}
		chunk := text[i:end]
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}
