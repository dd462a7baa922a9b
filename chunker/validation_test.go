package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/ragchunk/schema"
)

func TestValidateChunk(t *testing.T) {
	c := newTestChunker(t)

	valid := func(tokens int, text string, total int) schema.Chunk {
		return schema.Chunk{Text: text, TokenCount: tokens, TotalChunks: total}
	}

	t.Run("TooSmallRejected", func(t *testing.T) {
		ok, reason := c.validateChunk(valid(100, words(100), 3))
		assert.False(t, ok)
		assert.Contains(t, reason, "too small")
	})

	t.Run("SoleChunkMayBeSmall", func(t *testing.T) {
		ok, _ := c.validateChunk(valid(100, words(100), 1))
		assert.True(t, ok)
	})

	t.Run("SmallChunkWithCodeFenceAccepted", func(t *testing.T) {
		ok, _ := c.validateChunk(valid(50, "Example:\n\n```go\nx := 1\n```", 3))
		assert.True(t, ok)
	})

	t.Run("TooLargeRejected", func(t *testing.T) {
		ok, reason := c.validateChunk(valid(1500, words(1500), 2))
		assert.False(t, ok)
		assert.Contains(t, reason, "too large")
	})

	t.Run("UnbalancedFenceRejected", func(t *testing.T) {
		ok, reason := c.validateChunk(valid(400, words(395)+"\n\n```go\ncode here", 2))
		assert.False(t, ok)
		assert.Contains(t, reason, "incomplete code block")
	})

	t.Run("OrphanedContinuationRejected", func(t *testing.T) {
		for _, opening := range []string{"} else {", "] ,", ") end", "else:", "elif x:", "except ValueError:", "finally:", "catch (err) {"} {
			ok, reason := c.validateChunk(valid(400, opening+"\n\n"+words(395), 2))
			assert.False(t, ok, "opening %q must be rejected", opening)
			assert.Contains(t, reason, "orphaned continuation")
		}
	})

	t.Run("ProseResemblingKeywordsAccepted", func(t *testing.T) {
		for _, opening := range []string{"Elsewhere in the guide", "Exceptions are documented below", "Catching up on releases"} {
			ok, _ := c.validateChunk(valid(400, opening+" "+words(390), 2))
			assert.True(t, ok, "opening %q must be accepted", opening)
		}
	})
}

func TestOrphanedContinuation(t *testing.T) {
	cases := map[string]bool{
		"} trailing":   true,
		"]":            true,
		") closes":     true,
		"else:":        true,
		"Else, choose": true, // bare keyword, even capitalized
		"finally:":     true,
		"A fresh start": false,
		"":              false,
		"   ":           false,
	}

	for text, want := range cases {
		_, got := orphanedContinuation(text)
		assert.Equal(t, want, got, "text %q", text)
	}
}
