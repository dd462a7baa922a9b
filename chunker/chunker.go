// Package chunker partitions cleaned, tree-structured documents into
// bounded-size, overlap-linked chunks suitable for embedding and retrieval.
//
// The pipeline runs strictly forward: sections are extracted from the
// document tree, merged into semantic groups at major boundaries, sized or
// split against the configured window, validated, and finally numbered with
// their pass-through source metadata attached.
package chunker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/ragchunk/schema"
	"github.com/sevigo/ragchunk/tokenizer"
)

// Chunker converts documents into validated chunks. It is stateless across
// invocations and safe for concurrent use.
type Chunker struct {
	logger *slog.Logger
	opts   options
}

// New creates a Chunker. Size constants must satisfy min < target < max and
// be positive, otherwise ErrInvalidConfig is returned before any processing.
func New(logger *slog.Logger, opts ...Option) (*Chunker, error) {
	o := options{
		minChunkSize:    defaultMinChunkSize,
		targetChunkSize: defaultTargetChunkSize,
		maxChunkSize:    defaultMaxChunkSize,
		chunkOverlap:    defaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.estimator == nil {
		o.estimator = tokenizer.NewTiktoken(logger)
	}

	if err := o.validate(); err != nil {
		return nil, err
	}

	return &Chunker{
		logger: logger,
		opts:   o,
	}, nil
}

// ChunkDocument runs the full pipeline over one document. It is a pure
// function of (document, configuration, source metadata): per-chunk
// rejections are reported in the result, never raised as errors.
func (c *Chunker) ChunkDocument(doc *schema.Document, source schema.SourceMetadata) (*Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	sections := extractSections(doc)
	if len(sections) == 0 {
		c.logger.Debug("document has no non-empty sections", "url", source.PageURL)
		return &Result{}, nil
	}

	groups := groupSections(sections)
	candidates := c.sizeGroups(groups)
	chunks, rejected := c.assemble(candidates, source)

	c.logger.Debug("chunked document",
		"url", source.PageURL,
		"sections", len(sections),
		"groups", len(groups),
		"chunks", len(chunks),
		"rejected", len(rejected))

	return &Result{Chunks: chunks, Rejected: rejected}, nil
}

// ChunkAll chunks many documents with a bounded pool of workers, one worker
// per document. Results are returned in input order. No state is shared
// between invocations, so no locking is needed beyond the estimator's
// one-time encoder initialization.
func (c *Chunker) ChunkAll(ctx context.Context, inputs []Input, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]*Result, len(inputs))
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.ChunkDocument(input.Document, input.Source)
			if err != nil {
				return fmt.Errorf("chunking %q: %w", input.Source.PageURL, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
