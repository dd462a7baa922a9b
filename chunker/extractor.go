package chunker

import (
	"strings"

	"github.com/sevigo/ragchunk/schema"
)

// extractSections splits a document into an ordered sequence of titled
// sections. A heading's section body covers every following sibling node up
// to, but excluding, the next heading of equal or higher rank; deeper
// headings and their content stay inside the outer body. A document without
// headings degenerates to a single level-0 "Content" section. Sections whose
// body trims to nothing are dropped.
func extractSections(doc *schema.Document) []schema.Section {
	if !hasHeadings(doc.Nodes) {
		body := joinNodeTexts(doc.Nodes)
		if body == "" {
			return nil
		}
		return []schema.Section{{
			Level: 0,
			Title: schema.UntitledSectionTitle,
			Body:  body,
		}}
	}

	var sections []schema.Section
	for i, node := range doc.Nodes {
		if node.Kind != schema.NodeKindHeading {
			continue
		}

		end := i + 1
		for end < len(doc.Nodes) {
			next := doc.Nodes[end]
			if next.Kind == schema.NodeKindHeading && next.Level <= node.Level {
				break
			}
			end++
		}

		body := joinNodeTexts(doc.Nodes[i+1 : end])
		if body == "" {
			continue
		}

		sections = append(sections, schema.Section{
			Level: node.Level,
			Title: strings.TrimSpace(node.Text),
			Body:  body,
		})
	}

	return sections
}

func hasHeadings(nodes []schema.Node) bool {
	for _, n := range nodes {
		if n.Kind == schema.NodeKindHeading {
			return true
		}
	}
	return false
}

// joinNodeTexts renders a run of nodes as blank-line separated text.
// Headings inside the run contribute their bare text.
func joinNodeTexts(nodes []schema.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if t := strings.TrimSpace(n.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
