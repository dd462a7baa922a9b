package markdown

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// deriveTitleFromPath creates a title from the file name when the document
// itself carries none.
func deriveTitleFromPath(path string) string {
	filename := filepath.Base(path)
	title := strings.TrimSuffix(filename, filepath.Ext(filename))

	if title == "" || title == "." {
		return "Document"
	}

	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")

	return cases.Title(language.English).String(title)
}
