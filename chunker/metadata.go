package chunker

import (
	"github.com/google/uuid"

	"github.com/sevigo/ragchunk/schema"
)

// assemble numbers the candidates, validates each one, and attaches a
// private copy of the document-level metadata. Survivors are renumbered
// 1..N; rejections are returned with their reasons.
func (c *Chunker) assemble(candidates []candidate, source schema.SourceMetadata) ([]schema.Chunk, []Rejection) {
	provisional := make([]schema.Chunk, 0, len(candidates))
	for i, cand := range candidates {
		provisional = append(provisional, schema.Chunk{
			Text:          cand.text,
			TokenCount:    cand.tokens,
			ChunkIndex:    i + 1,
			TotalChunks:   len(candidates),
			SectionTitles: cand.titles,
			Source:        source.Clone(),
		})
	}

	var chunks []schema.Chunk
	var rejected []Rejection
	for _, chunk := range provisional {
		ok, reason := c.validateChunk(chunk)
		if !ok {
			c.logger.Warn("dropping chunk",
				"url", source.PageURL,
				"chunk", chunk.ChunkIndex,
				"tokens", chunk.TokenCount,
				"reason", reason)
			rejected = append(rejected, Rejection{
				Text:       chunk.Text,
				TokenCount: chunk.TokenCount,
				Reason:     reason,
			})
			continue
		}
		chunks = append(chunks, chunk)
	}

	renumber(chunks)
	for i := range chunks {
		chunks[i].ID = uuid.NewString()
	}

	return chunks, rejected
}

// renumber assigns contiguous 1-based indices and the final total to the
// surviving chunks. Applying it twice to the same list yields the same
// assignments.
func renumber(chunks []schema.Chunk) {
	for i := range chunks {
		chunks[i].ChunkIndex = i + 1
		chunks[i].TotalChunks = len(chunks)
	}
}
