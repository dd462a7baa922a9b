package chunker

import (
	"fmt"

	"github.com/sevigo/ragchunk/tokenizer"
)

// options holds configuration settings for the chunker.
type options struct {
	minChunkSize    int
	targetChunkSize int
	maxChunkSize    int
	chunkOverlap    int
	estimator       tokenizer.Estimator
}

// Option is a function type for configuring the chunker.
type Option func(*options)

// WithMinChunkSize sets the size below which a chunk is suspect.
func WithMinChunkSize(size int) Option {
	return func(o *options) {
		o.minChunkSize = size
	}
}

// WithTargetChunkSize sets the size grouping and splitting aim for.
func WithTargetChunkSize(size int) Option {
	return func(o *options) {
		o.targetChunkSize = size
	}
}

// WithMaxChunkSize sets the hard ceiling that forces a split.
func WithMaxChunkSize(size int) Option {
	return func(o *options) {
		o.maxChunkSize = size
	}
}

// WithChunkOverlap sets the token budget carried forward across size-forced
// splits.
func WithChunkOverlap(overlap int) Option {
	return func(o *options) {
		o.chunkOverlap = overlap
	}
}

// WithEstimator sets the token count estimator. Defaults to the tiktoken
// estimator with heuristic fallback.
func WithEstimator(e tokenizer.Estimator) Option {
	return func(o *options) {
		o.estimator = e
	}
}

func (o *options) validate() error {
	if o.minChunkSize <= 0 || o.targetChunkSize <= 0 || o.maxChunkSize <= 0 || o.chunkOverlap <= 0 {
		return fmt.Errorf("%w: size constants must be positive (min=%d target=%d max=%d overlap=%d)",
			ErrInvalidConfig, o.minChunkSize, o.targetChunkSize, o.maxChunkSize, o.chunkOverlap)
	}
	if o.minChunkSize >= o.targetChunkSize {
		return fmt.Errorf("%w: min chunk size (%d) must be below target (%d)",
			ErrInvalidConfig, o.minChunkSize, o.targetChunkSize)
	}
	if o.targetChunkSize >= o.maxChunkSize {
		return fmt.Errorf("%w: target chunk size (%d) must be below max (%d)",
			ErrInvalidConfig, o.targetChunkSize, o.maxChunkSize)
	}
	return nil
}
