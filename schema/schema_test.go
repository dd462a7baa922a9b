package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/ragchunk/schema"
)

func TestSourceMetadataClone(t *testing.T) {
	src := schema.SourceMetadata{
		PageURL:      "https://docs.example.com/a",
		RelatedLinks: []string{"https://docs.example.com/b"},
	}

	clone := src.Clone()
	clone.RelatedLinks[0] = "mutated"

	assert.Equal(t, "https://docs.example.com/b", src.RelatedLinks[0])
}

func TestSourceMetadataCloneNilLinks(t *testing.T) {
	var src schema.SourceMetadata

	clone := src.Clone()
	assert.Nil(t, clone.RelatedLinks)
}
