// Package docxtext extracts plain text from DOCX files.
package docxtext

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// tagPattern strips the WordprocessingML markup around text runs.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Extract returns the plain text of the DOCX file at path.
// Markup is stripped and XML entities are decoded; whitespace is collapsed
// per run, not preserved.
func Extract(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}
	defer func() { _ = r.Close() }()

	content := r.Editable().GetContent()
	text := tagPattern.ReplaceAllString(content, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " "), nil
}
