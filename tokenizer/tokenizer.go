// Package tokenizer provides token count estimation strategies for chunk
// sizing. The exact estimator uses the cl100k_base BPE encoding; the heuristic
// estimator approximates from character counts and needs no model data.
package tokenizer

import (
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Estimator counts or approximates the number of tokens in a text.
// Implementations must be safe for concurrent use after construction.
type Estimator interface {
	Name() string
	Count(text string) int
}

// charsPerToken is the approximation ratio for the heuristic estimator:
// ~0.75 words per token at ~5 characters per word.
const charsPerToken = 3.75

// Heuristic estimates token counts from character length alone.
type Heuristic struct{}

// NewHeuristic returns the character-ratio estimator.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Name() string { return "heuristic" }

func (h *Heuristic) Count(text string) int {
	return int(float64(len(text)) / charsPerToken)
}

// Tiktoken counts tokens with the cl100k_base encoding. The encoder is
// initialized lazily exactly once; after that it is read-only and safe for
// concurrent use. If initialization fails, every call degrades to the
// heuristic estimator and the failure is logged a single time.
type Tiktoken struct {
	logger   *slog.Logger
	fallback *Heuristic

	once    sync.Once
	logOnce sync.Once
	enc     *tiktoken.Tiktoken
	encErr  error
}

// NewTiktoken returns the exact estimator. The encoding is not loaded until
// the first Count call.
func NewTiktoken(logger *slog.Logger) *Tiktoken {
	return &Tiktoken{
		logger:   logger,
		fallback: NewHeuristic(),
	}
}

func (t *Tiktoken) Name() string { return "tiktoken" }

func (t *Tiktoken) Count(text string) int {
	enc := t.encoder()
	if enc == nil {
		t.logOnce.Do(func() {
			t.logger.Warn("tiktoken encoding unavailable, falling back to heuristic estimation",
				"error", t.encErr)
		})
		return t.fallback.Count(text)
	}
	return len(enc.Encode(text, nil, nil))
}

func (t *Tiktoken) encoder() *tiktoken.Tiktoken {
	t.once.Do(func() {
		t.enc, t.encErr = tiktoken.GetEncoding("cl100k_base")
	})
	return t.enc
}
