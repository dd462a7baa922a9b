// Package writer persists validated chunks as markdown files with YAML
// frontmatter headers, grouped into per-space directories, plus an index of
// everything written.
package writer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/ragchunk/schema"
)

const (
	dirPerm          = 0o755
	filePerm         = 0o644
	maxFileNameTitle = 50
)

var (
	unsafeChars = regexp.MustCompile(`[^\w\s-]`)
	dashRuns    = regexp.MustCompile(`[-\s]+`)
)

// Writer stores chunks under a root output directory.
type Writer struct {
	logger *slog.Logger
	dir    string
}

// New creates a Writer rooted at dir. The directory is created on first
// write.
func New(dir string, logger *slog.Logger) *Writer {
	return &Writer{
		logger: logger,
		dir:    dir,
	}
}

// frontMatter is the structured header block preceding each chunk's text.
type frontMatter struct {
	Title        string   `yaml:"title"`
	PageURL      string   `yaml:"page_url"`
	Space        string   `yaml:"space,omitempty"`
	Breadcrumb   string   `yaml:"breadcrumb,omitempty"`
	ContentType  string   `yaml:"content_type,omitempty"`
	ChunkIndex   int      `yaml:"chunk_index"`
	TotalChunks  int      `yaml:"total_chunks"`
	TokenCount   int      `yaml:"token_count"`
	RelatedLinks []string `yaml:"related_links,omitempty"`
}

// WriteChunk stores one chunk and returns the file path.
func (w *Writer) WriteChunk(chunk schema.Chunk) (string, error) {
	spaceDir := w.dir
	if chunk.Source.Space != "" {
		spaceDir = filepath.Join(w.dir, chunk.Source.Space)
	}
	if err := os.MkdirAll(spaceDir, dirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := fmt.Sprintf("%s-%02d.md", safeFileName(chunkTitle(chunk)), chunk.ChunkIndex)
	path := filepath.Join(spaceDir, name)

	header, err := yaml.Marshal(frontMatter{
		Title:        chunkTitle(chunk),
		PageURL:      chunk.Source.PageURL,
		Space:        chunk.Source.Space,
		Breadcrumb:   chunk.Source.Breadcrumb,
		ContentType:  chunk.Source.ContentType,
		ChunkIndex:   chunk.ChunkIndex,
		TotalChunks:  chunk.TotalChunks,
		TokenCount:   chunk.TokenCount,
		RelatedLinks: chunk.Source.RelatedLinks,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(chunk.Text)
	buf.WriteString("\n")

	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return "", fmt.Errorf("writing chunk file: %w", err)
	}

	w.logger.Debug("wrote chunk", "path", path, "tokens", chunk.TokenCount)
	return path, nil
}

// WriteChunks stores every chunk and returns index entries for WriteIndex.
func (w *Writer) WriteChunks(chunks []schema.Chunk) ([]IndexEntry, error) {
	entries := make([]IndexEntry, 0, len(chunks))
	for _, chunk := range chunks {
		path, err := w.WriteChunk(chunk)
		if err != nil {
			return entries, err
		}
		entries = append(entries, IndexEntry{
			Path:        path,
			URL:         chunk.Source.PageURL,
			Space:       chunk.Source.Space,
			ChunkIndex:  chunk.ChunkIndex,
			TotalChunks: chunk.TotalChunks,
		})
	}
	return entries, nil
}

// chunkTitle prefers the first contributing section title, falling back to
// the page title.
func chunkTitle(chunk schema.Chunk) string {
	if len(chunk.SectionTitles) > 0 && chunk.SectionTitles[0] != "" {
		return chunk.SectionTitles[0]
	}
	return chunk.Source.PageTitle
}

// safeFileName reduces a title to a short, filesystem-safe slug.
func safeFileName(title string) string {
	slug := unsafeChars.ReplaceAllString(strings.ToLower(title), "")
	slug = dashRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "chunk"
	}
	if len(slug) > maxFileNameTitle {
		slug = slug[:maxFileNameTitle]
	}
	return slug
}
