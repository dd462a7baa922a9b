package schema

// NodeKind identifies the variant of a document tree node.
type NodeKind string

const (
	NodeKindHeading   NodeKind = "heading"
	NodeKindText      NodeKind = "text"
	NodeKindCodeFence NodeKind = "code_fence"
	NodeKindOther     NodeKind = "other"
)

// Node is one block-level element of a cleaned document. Code fence nodes
// carry their ``` delimiters in Text so fence detection works on rendered
// section bodies.
type Node struct {
	Kind     NodeKind
	Level    int // heading level 1-6, zero for other kinds
	Text     string
	Language string // code fence info string, if any
}

// Document is the structured body of one crawled page, as handed over by the
// fetching layer.
type Document struct {
	Title        string
	URL          string
	RelatedLinks []string
	Nodes        []Node
}

// UntitledSectionTitle is the sentinel title for content that sits under no
// heading at all.
const UntitledSectionTitle = "Content"

// Section is a contiguous run of document content under one heading.
// Level 0 means the whole-document fallback section. Body is never empty.
type Section struct {
	Level int
	Title string
	Body  string
}

// SourceMetadata is document-level context attached to every chunk. The
// chunking core treats it as opaque pass-through.
type SourceMetadata struct {
	PageURL      string
	PageTitle    string
	Space        string
	ContentType  string
	Breadcrumb   string
	RelatedLinks []string
}

// Clone returns a deep copy so that chunks never share one metadata value by
// reference.
func (m SourceMetadata) Clone() SourceMetadata {
	out := m
	if m.RelatedLinks != nil {
		out.RelatedLinks = make([]string, len(m.RelatedLinks))
		copy(out.RelatedLinks, m.RelatedLinks)
	}
	return out
}

// Chunk is a validated, retrieval-ready text segment of one document.
type Chunk struct {
	ID            string
	Text          string
	TokenCount    int
	ChunkIndex    int // 1-based position among surviving chunks
	TotalChunks   int
	SectionTitles []string
	Source        SourceMetadata
}
