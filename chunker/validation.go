package chunker

import (
	"fmt"
	"strings"

	"github.com/sevigo/ragchunk/schema"
)

// orphanKeywords only make sense as continuations of prior context; a chunk
// opening with one signals a bad boundary.
var orphanKeywords = map[string]struct{}{
	"else":    {},
	"elif":    {},
	"except":  {},
	"finally": {},
	"catch":   {},
}

// validateChunk checks a provisionally numbered chunk against the quality
// rules, in order. The reason string is empty for accepted chunks.
func (c *Chunker) validateChunk(chunk schema.Chunk) (bool, string) {
	if chunk.TokenCount < c.opts.minChunkSize {
		// A sole chunk may be small; so may one that carries a code block.
		if chunk.TotalChunks == 1 || containsCodeFence(chunk.Text) {
			return true, ""
		}
		return false, fmt.Sprintf("too small (%d tokens)", chunk.TokenCount)
	}

	// A chunk over the ceiling signals a splitter defect; it is reported to
	// the caller through the rejection list rather than dropped silently.
	if chunk.TokenCount > c.opts.maxChunkSize {
		return false, fmt.Sprintf("too large (%d tokens)", chunk.TokenCount)
	}

	if strings.Count(chunk.Text, codeFenceMarker)%2 != 0 {
		return false, "incomplete code block"
	}

	if orphan, ok := orphanedContinuation(chunk.Text); ok {
		return false, fmt.Sprintf("orphaned continuation: %q", orphan)
	}

	return true, ""
}

// orphanedContinuation reports whether the trimmed text opens with a
// dangling closing token or a bare continuation keyword.
func orphanedContinuation(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}

	switch trimmed[0] {
	case '}', ']', ')':
		return trimmed[:1], true
	}

	first := strings.Fields(trimmed)[0]
	first = strings.ToLower(strings.TrimRight(first, ":,{("))
	if _, ok := orphanKeywords[first]; ok {
		return first, true
	}

	return "", false
}
