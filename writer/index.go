package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// IndexEntry locates one written chunk for the index file.
type IndexEntry struct {
	Path        string
	URL         string
	Space       string
	ChunkIndex  int
	TotalChunks int
}

// WriteIndex generates index.md under the output root, listing every chunk
// grouped by space and source URL. Returns the index path.
func (w *Writer) WriteIndex(entries []IndexEntry) (string, error) {
	if err := os.MkdirAll(w.dir, dirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	bySpace := make(map[string][]IndexEntry)
	for _, entry := range entries {
		bySpace[entry.Space] = append(bySpace[entry.Space], entry)
	}

	spaces := make([]string, 0, len(bySpace))
	for space := range bySpace {
		spaces = append(spaces, space)
	}
	sort.Strings(spaces)

	var b strings.Builder
	b.WriteString("# RAG Documentation Index\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "Total chunks: %d\n", len(entries))

	for _, space := range spaces {
		fmt.Fprintf(&b, "\n## %s\n", space)

		byURL := make(map[string][]IndexEntry)
		for _, entry := range bySpace[space] {
			byURL[entry.URL] = append(byURL[entry.URL], entry)
		}

		urls := make([]string, 0, len(byURL))
		for url := range byURL {
			urls = append(urls, url)
		}
		sort.Strings(urls)

		for _, url := range urls {
			urlEntries := byURL[url]
			sort.Slice(urlEntries, func(i, j int) bool {
				return urlEntries[i].ChunkIndex < urlEntries[j].ChunkIndex
			})

			fmt.Fprintf(&b, "\n### %s\n", url)
			fmt.Fprintf(&b, "Chunks: %d\n\n", len(urlEntries))

			for _, entry := range urlEntries {
				rel, err := filepath.Rel(w.dir, entry.Path)
				if err != nil {
					rel = entry.Path
				}
				fmt.Fprintf(&b, "- [%s](%s) (chunk %d/%d)\n",
					rel, rel, entry.ChunkIndex, entry.TotalChunks)
			}
		}
	}

	path := filepath.Join(w.dir, "index.md")
	if err := os.WriteFile(path, []byte(b.String()), filePerm); err != nil {
		return "", fmt.Errorf("writing index: %w", err)
	}

	w.logger.Info("index generated", "path", path, "chunks", len(entries))
	return path, nil
}
