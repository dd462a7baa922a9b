package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/ragchunk/testutil"
	"github.com/sevigo/ragchunk/tokenizer"
)

func TestHeuristic(t *testing.T) {
	h := tokenizer.NewHeuristic()

	assert.Equal(t, "heuristic", h.Name())
	assert.Equal(t, 0, h.Count(""))
	assert.Equal(t, 4, h.Count(strings.Repeat("a", 15)))
	assert.Equal(t, 100, h.Count(strings.Repeat("a", 375)))
}

func TestTiktoken(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	e := tokenizer.NewTiktoken(logger)

	assert.Equal(t, "tiktoken", e.Name())

	// Works whether the encoding loads or the heuristic fallback kicks in.
	count := e.Count("The quick brown fox jumps over the lazy dog.")
	assert.Greater(t, count, 0)

	// Longer text never counts fewer tokens.
	longer := e.Count(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20))
	assert.Greater(t, longer, count)
}
