package chunker

import (
	"errors"
	"strings"

	"github.com/sevigo/ragchunk/schema"
)

// Default size constants, in estimator tokens. Tuned for retrieval coherence:
// targets well under the max so grouped sections rarely need a forced split.
const (
	defaultMinChunkSize    = 500
	defaultTargetChunkSize = 800
	defaultMaxChunkSize    = 1200
	defaultChunkOverlap    = 150
)

const codeFenceMarker = "```"

var (
	ErrInvalidConfig = errors.New("invalid chunking configuration")
	ErrNilDocument   = errors.New("document is nil")
)

// candidate is an in-progress chunk accumulation. tokens is always the
// estimate of the current text, recomputed after every mutation.
type candidate struct {
	text   string
	titles []string
	tokens int
}

// Rejection describes a candidate chunk dropped by validation.
type Rejection struct {
	Text       string
	TokenCount int
	Reason     string
}

// Result holds the outcome of chunking one document. Rejected candidates are
// reported rather than silently discarded so a splitter defect surfaces to
// the caller.
type Result struct {
	Chunks   []schema.Chunk
	Rejected []Rejection
}

// Input pairs a document with the metadata passed through to its chunks.
type Input struct {
	Document *schema.Document
	Source   schema.SourceMetadata
}

func containsCodeFence(s string) bool {
	return strings.Contains(s, codeFenceMarker)
}
