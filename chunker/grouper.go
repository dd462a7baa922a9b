package chunker

import "github.com/sevigo/ragchunk/schema"

// groupSections merges adjacent sections into semantic groups. Groups
// partition the section sequence exactly: no gaps, no overlaps, original
// order preserved.
func groupSections(sections []schema.Section) [][]schema.Section {
	var groups [][]schema.Section
	var current []schema.Section

	for i, section := range sections {
		var prev *schema.Section
		if i > 0 {
			prev = &sections[i-1]
		}

		if isMajorBoundary(section, prev) {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = []schema.Section{section}
		} else {
			current = append(current, section)
		}
	}

	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}

// isMajorBoundary reports whether a section opens a new group. Top-level and
// sub-top-level headings denote topic changes; a code/prose transition
// between neighbors denotes a register change worth a fresh chunk.
func isMajorBoundary(section schema.Section, prev *schema.Section) bool {
	if section.Level <= 2 {
		return true
	}

	if prev != nil && containsCodeFence(prev.Body) != containsCodeFence(section.Body) {
		return true
	}

	return false
}
