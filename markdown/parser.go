// Package markdown converts markdown source into the heading-aware document
// tree consumed by the chunker, using goldmark.
package markdown

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/sevigo/ragchunk/schema"
)

const frontMatterSeparator = "---"

// Parser builds schema.Document values from markdown text.
type Parser struct {
	logger   *slog.Logger
	markdown goldmark.Markdown
}

// NewParser creates a markdown document parser.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{
		logger: logger,
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
			),
		),
	}
}

// Parse converts markdown content into a structured document. The path is
// only used to derive a title when the content carries no level-1 heading.
func (p *Parser) Parse(content, path string) (*schema.Document, error) {
	content = stripFrontMatter(content)

	doc := &schema.Document{}
	if content != "" {
		source := []byte(content)
		reader := text.NewReader(source)
		root := p.markdown.Parser().Parse(reader)

		for child := root.FirstChild(); child != nil; child = child.NextSibling() {
			node := p.convertNode(child, source)
			if node == nil {
				continue
			}
			doc.Nodes = append(doc.Nodes, *node)

			if doc.Title == "" && node.Kind == schema.NodeKindHeading && node.Level == 1 {
				doc.Title = node.Text
			}
		}
	}

	if doc.Title == "" {
		doc.Title = deriveTitleFromPath(path)
	}

	p.logger.Debug("parsed markdown document", "path", path, "nodes", len(doc.Nodes))
	return doc, nil
}

// convertNode maps a top-level goldmark AST node to a document tree node.
func (p *Parser) convertNode(node ast.Node, source []byte) *schema.Node {
	switch n := node.(type) {
	case *ast.Heading:
		return &schema.Node{
			Kind:  schema.NodeKindHeading,
			Level: n.Level,
			Text:  extractText(n, source),
		}

	case *ast.FencedCodeBlock:
		language := ""
		if n.Info != nil {
			language = strings.TrimSpace(string(n.Info.Text(source))) //nolint:staticcheck //SA1019
		}
		return &schema.Node{
			Kind:     schema.NodeKindCodeFence,
			Language: language,
			Text:     renderFence(language, blockLines(n, source)),
		}

	case *ast.CodeBlock:
		// Indented code is normalized to fenced form so downstream fence
		// detection sees one delimiter style.
		return &schema.Node{
			Kind: schema.NodeKindCodeFence,
			Text: renderFence("", blockLines(n, source)),
		}

	case *ast.ThematicBreak:
		return nil

	case *ast.HTMLBlock:
		return &schema.Node{
			Kind: schema.NodeKindOther,
			Text: rawSource(n, source),
		}

	default:
		raw := rawSource(node, source)
		if raw == "" {
			return nil
		}
		return &schema.Node{
			Kind: schema.NodeKindText,
			Text: raw,
		}
	}
}

// blockLines collects the literal lines of a code block, without delimiters.
func blockLines(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderFence(language, body string) string {
	var b strings.Builder
	b.WriteString("```")
	b.WriteString(language)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n```")
	return b.String()
}

// rawSource extracts the original markdown text spanned by a node. Blocks
// whose own line segments are empty (lists, tables) fall back to the byte
// span covered by their subtree.
func rawSource(node ast.Node, source []byte) string {
	start, stop, ok := byteSpan(node)
	if !ok {
		return extractText(node, source)
	}
	if start < 0 || stop > len(source) || start >= stop {
		return extractText(node, source)
	}
	return strings.TrimSpace(string(source[start:stop]))
}

// byteSpan walks a node's subtree and returns the smallest byte range in the
// source that covers all of its line segments.
func byteSpan(node ast.Node) (int, int, bool) {
	start, stop := -1, -1

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if n.Lines().Len() > 0 {
			first := n.Lines().At(0)
			last := n.Lines().At(n.Lines().Len() - 1)
			if start == -1 || first.Start < start {
				start = first.Start
			}
			if last.Stop > stop {
				stop = last.Stop
			}
			return ast.WalkSkipChildren, nil
		}

		if t, ok := n.(*ast.Text); ok && t.Segment.Len() > 0 {
			if start == -1 || t.Segment.Start < start {
				start = t.Segment.Start
			}
			if t.Segment.Stop > stop {
				stop = t.Segment.Stop
			}
		}
		return ast.WalkContinue, nil
	})

	return start, stop, start != -1
}

// extractText extracts plain text content from an AST node.
func extractText(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindText {
			segment := n.(*ast.Text).Segment //nolint:errcheck //ok
			buf.Write(segment.Value(source))
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(buf.String())
}

// stripFrontMatter drops a leading YAML frontmatter block; its properties
// belong to the crawling layer, not the document body.
func stripFrontMatter(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) < 3 || strings.TrimRight(lines[0], "\r") != frontMatterSeparator {
		return content
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == frontMatterSeparator {
			return strings.Join(lines[i+1:], "\n")
		}
	}
	return content
}
