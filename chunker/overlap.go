package chunker

import "strings"

// tokensToWordsNum and tokensToWordsDen convert the overlap token budget to
// a whitespace-delimited word count (~0.8 words per token).
const (
	tokensToWordsNum = 4
	tokensToWordsDen = 5
)

// overlapContent returns the trailing slice of a flushed buffer that is
// carried into the next buffer after a size-forced split. It is never
// applied at group boundaries, which keeps topic breaks clean while giving
// forced breaks retrieval context. A buffer shorter than the overlap window
// is carried forward whole.
func (c *Chunker) overlapContent(text string) string {
	words := strings.Fields(text)
	n := c.opts.chunkOverlap * tokensToWordsNum / tokensToWordsDen
	if len(words) <= n {
		return text
	}
	return strings.Join(words[len(words)-n:], " ")
}
