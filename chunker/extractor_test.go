package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/ragchunk/schema"
)

func TestExtractSections(t *testing.T) {
	t.Run("NoHeadings", func(t *testing.T) {
		doc := &schema.Document{
			Nodes: []schema.Node{
				{Kind: schema.NodeKindText, Text: "First paragraph."},
				{Kind: schema.NodeKindText, Text: "Second paragraph."},
			},
		}

		sections := extractSections(doc)
		require.Len(t, sections, 1)
		assert.Equal(t, 0, sections[0].Level)
		assert.Equal(t, schema.UntitledSectionTitle, sections[0].Title)
		assert.Equal(t, "First paragraph.\n\nSecond paragraph.", sections[0].Body)
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		assert.Empty(t, extractSections(&schema.Document{}))
		assert.Empty(t, extractSections(&schema.Document{
			Nodes: []schema.Node{{Kind: schema.NodeKindText, Text: "   "}},
		}))
	})

	t.Run("SiblingHeadings", func(t *testing.T) {
		doc := &schema.Document{
			Nodes: []schema.Node{
				{Kind: schema.NodeKindHeading, Level: 2, Text: "Setup"},
				{Kind: schema.NodeKindText, Text: "Install the binary."},
				{Kind: schema.NodeKindHeading, Level: 2, Text: "Usage"},
				{Kind: schema.NodeKindText, Text: "Run the binary."},
			},
		}

		sections := extractSections(doc)
		require.Len(t, sections, 2)
		assert.Equal(t, "Setup", sections[0].Title)
		assert.Equal(t, "Install the binary.", sections[0].Body)
		assert.Equal(t, "Usage", sections[1].Title)
		assert.Equal(t, "Run the binary.", sections[1].Body)
	})

	t.Run("DeeperHeadingsStayInOuterBody", func(t *testing.T) {
		doc := &schema.Document{
			Nodes: []schema.Node{
				{Kind: schema.NodeKindHeading, Level: 2, Text: "API"},
				{Kind: schema.NodeKindText, Text: "Overview."},
				{Kind: schema.NodeKindHeading, Level: 3, Text: "Endpoints"},
				{Kind: schema.NodeKindText, Text: "GET /things."},
				{Kind: schema.NodeKindHeading, Level: 2, Text: "Errors"},
				{Kind: schema.NodeKindText, Text: "Error codes."},
			},
		}

		sections := extractSections(doc)
		require.Len(t, sections, 3)

		// The level-2 body runs up to the next level-2 heading and keeps the
		// deeper heading's content inside it.
		assert.Equal(t, "API", sections[0].Title)
		assert.Contains(t, sections[0].Body, "Overview.")
		assert.Contains(t, sections[0].Body, "GET /things.")

		assert.Equal(t, "Endpoints", sections[1].Title)
		assert.Equal(t, "GET /things.", sections[1].Body)

		assert.Equal(t, "Errors", sections[2].Title)
	})

	t.Run("EmptySectionsDropped", func(t *testing.T) {
		doc := &schema.Document{
			Nodes: []schema.Node{
				{Kind: schema.NodeKindHeading, Level: 2, Text: "Empty"},
				{Kind: schema.NodeKindHeading, Level: 2, Text: "Full"},
				{Kind: schema.NodeKindText, Text: "Content here."},
			},
		}

		sections := extractSections(doc)
		require.Len(t, sections, 1)
		assert.Equal(t, "Full", sections[0].Title)
	})

	t.Run("CodeFenceNodesKeepDelimiters", func(t *testing.T) {
		doc := &schema.Document{
			Nodes: []schema.Node{
				{Kind: schema.NodeKindHeading, Level: 2, Text: "Example"},
				{Kind: schema.NodeKindCodeFence, Language: "go", Text: "```go\nfmt.Println(1)\n```"},
			},
		}

		sections := extractSections(doc)
		require.Len(t, sections, 1)
		assert.True(t, containsCodeFence(sections[0].Body))
	})
}
