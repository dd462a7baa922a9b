package chunker

import (
	"strings"

	"github.com/sevigo/ragchunk/schema"
)

// bufferPhase tracks what the next splitter transition may do with the
// running buffer.
type bufferPhase int

const (
	// phaseAccumulating: the buffer is collecting content.
	phaseAccumulating bufferPhase = iota
	// phaseFlushPending: the buffer was just emitted due to a size limit;
	// the next seed decides what context carries over.
	phaseFlushPending
)

// splitState is the running buffer of an oversized-group walk. Transition
// methods take and return states by value so each step is testable in
// isolation. tokens is recomputed from text after every mutation.
type splitState struct {
	phase  bufferPhase
	text   string
	titles []string
	tokens int
}

// sizeGroups turns semantic groups into chunk candidates. Groups inside the
// size window become one candidate each; oversized groups are split.
// Undersized groups are emitted as-is — merging a too-small group with a
// neighbor is a possible future improvement, not current behavior.
func (c *Chunker) sizeGroups(groups [][]schema.Section) []candidate {
	var out []candidate

	for _, group := range groups {
		total := 0
		for _, s := range group {
			total += c.opts.estimator.Count(s.Body)
		}

		if total <= c.opts.maxChunkSize {
			out = append(out, c.candidateFromSections(group))
			continue
		}

		if len(group) == 1 && !containsCodeFence(group[0].Body) {
			out = append(out, c.splitOversizedSection(group[0])...)
		} else {
			out = append(out, c.splitLargeGroup(group)...)
		}
	}

	return out
}

// candidateFromSections renders a whole group as one candidate, section
// headers re-inserted.
func (c *Chunker) candidateFromSections(sections []schema.Section) candidate {
	var b strings.Builder
	titles := make([]string, 0, len(sections))

	for _, s := range sections {
		b.WriteString(renderSection(s))
		titles = append(titles, s.Title)
	}

	text := strings.TrimSpace(b.String())
	return candidate{
		text:   text,
		titles: titles,
		tokens: c.opts.estimator.Count(text),
	}
}

// splitLargeGroup walks an oversized group section by section, maintaining a
// running buffer that flushes at size limits. Fenced code blocks are treated
// as indivisible units and never split across chunks.
func (c *Chunker) splitLargeGroup(group []schema.Section) []candidate {
	var out []candidate
	var st splitState

	for _, section := range group {
		var emitted []candidate
		if containsCodeFence(section.Body) {
			st, emitted = c.consumeFencedSection(st, section)
		} else {
			st, emitted = c.consumeTextSection(st, section)
		}
		out = append(out, emitted...)
	}

	if _, final := c.flushBuffer(st); final != nil {
		out = append(out, *final)
	}

	return out
}

// consumeTextSection applies the target-size flush rule to a section without
// code fences. A buffer below the minimum is never flushed; the section is
// appended anyway to avoid pathologically small chunks.
func (c *Chunker) consumeTextSection(st splitState, section schema.Section) (splitState, []candidate) {
	sectionTokens := c.opts.estimator.Count(section.Body)

	if st.tokens+sectionTokens > c.opts.targetChunkSize && st.tokens >= c.opts.minChunkSize {
		next, emitted := c.flushBuffer(st)
		next = c.seedBuffer(c.overlapContent(st.text)+renderSection(section), section.Title)
		if emitted != nil {
			return next, []candidate{*emitted}
		}
		return next, nil
	}

	return c.appendSection(st, section), nil
}

// consumeFencedSection walks a section containing fenced code blocks. The
// running buffer is flushed first, then re-opened with the section header
// and any text preceding the first fence. Each fence is appended whole; a
// fence that would exceed the max opens a "(continued)" chunk instead.
func (c *Chunker) consumeFencedSection(st splitState, section schema.Section) (splitState, []candidate) {
	var out []candidate
	var emitted *candidate

	st, emitted = c.flushBuffer(st)
	if emitted != nil {
		out = append(out, *emitted)
	}

	parts := strings.Split(section.Body, codeFenceMarker)
	st = c.seedBuffer(renderSectionText(section.Title, parts[0]), section.Title)

	for i := 1; i < len(parts); i += 2 {
		block := codeFenceMarker + parts[i] + codeFenceMarker
		blockTokens := c.opts.estimator.Count(block)

		if st.tokens+blockTokens > c.opts.maxChunkSize {
			st, emitted = c.flushBuffer(st)
			if emitted != nil {
				out = append(out, *emitted)
			}
			st = c.seedBuffer(continuedHeader(section.Title)+block, section.Title)
		} else {
			st = c.appendText(st, block)
		}

		if i+1 >= len(parts) {
			continue
		}
		trailing := strings.TrimSpace(parts[i+1])
		if trailing == "" {
			continue
		}

		trailingTokens := c.opts.estimator.Count(trailing)
		if st.tokens+trailingTokens <= c.opts.maxChunkSize {
			st = c.appendText(st, trailing)
		} else {
			st, emitted = c.flushBuffer(st)
			if emitted != nil {
				out = append(out, *emitted)
			}
			st = c.seedBuffer(continuedHeader(section.Title)+trailing, section.Title)
		}
	}

	return st, out
}

// splitOversizedSection splits a single over-limit, fence-free section on
// paragraph boundaries. A single paragraph is never split, even when it
// exceeds the target on its own.
func (c *Chunker) splitOversizedSection(section schema.Section) []candidate {
	header := ""
	if section.Title != schema.UntitledSectionTitle {
		header = "# " + section.Title + "\n\n"
	}

	var out []candidate
	text := header
	tokens := c.opts.estimator.Count(text)

	for _, para := range strings.Split(section.Body, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		paraTokens := c.opts.estimator.Count(para)
		if tokens+paraTokens > c.opts.targetChunkSize && strings.TrimSpace(text) != "" && strings.TrimSpace(text) != strings.TrimSpace(header) {
			trimmed := strings.TrimSpace(text)
			out = append(out, candidate{
				text:   trimmed,
				titles: []string{section.Title},
				tokens: c.opts.estimator.Count(trimmed),
			})
			text = header + para + "\n\n"
		} else {
			text += para + "\n\n"
		}
		tokens = c.opts.estimator.Count(text)
	}

	if trimmed := strings.TrimSpace(text); trimmed != "" && trimmed != strings.TrimSpace(header) {
		out = append(out, candidate{
			text:   trimmed,
			titles: []string{section.Title},
			tokens: c.opts.estimator.Count(trimmed),
		})
	}

	return out
}

// flushBuffer emits the running buffer as a candidate, if it has content,
// and leaves the state flush-pending.
func (c *Chunker) flushBuffer(st splitState) (splitState, *candidate) {
	next := splitState{phase: phaseFlushPending}
	if strings.TrimSpace(st.text) == "" {
		return next, nil
	}

	emitted := candidate{
		text:   strings.TrimSpace(st.text),
		titles: st.titles,
		tokens: st.tokens,
	}
	return next, &emitted
}

// seedBuffer opens a fresh accumulating buffer with the given rendered text.
func (c *Chunker) seedBuffer(text, title string) splitState {
	trimmed := strings.TrimSpace(text)
	return splitState{
		phase:  phaseAccumulating,
		text:   trimmed,
		titles: []string{title},
		tokens: c.opts.estimator.Count(trimmed),
	}
}

// appendSection adds a whole section, header re-inserted, to the buffer.
func (c *Chunker) appendSection(st splitState, section schema.Section) splitState {
	titles := make([]string, 0, len(st.titles)+1)
	titles = append(titles, st.titles...)
	titles = append(titles, section.Title)

	st.titles = titles
	st.text = strings.TrimSpace(st.text + renderSection(section))
	st.tokens = c.opts.estimator.Count(st.text)
	st.phase = phaseAccumulating
	return st
}

// appendText adds already-rendered text to the buffer without touching the
// contributing titles.
func (c *Chunker) appendText(st splitState, text string) splitState {
	st.text = strings.TrimSpace(st.text + "\n\n" + text)
	st.tokens = c.opts.estimator.Count(st.text)
	st.phase = phaseAccumulating
	return st
}

// renderSection re-inserts the section header as a markdown marker. The
// untitled sentinel renders as bare body text.
func renderSection(s schema.Section) string {
	return renderSectionText(s.Title, s.Body)
}

func renderSectionText(title, text string) string {
	if title == schema.UntitledSectionTitle {
		return "\n\n" + text
	}
	return "\n\n# " + title + "\n\n" + text
}

func continuedHeader(title string) string {
	return "# " + title + " (continued)\n\n"
}
