package docx2pdf

import (
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-docx2pdf/internal/docxhtml"
	"github.com/alnah/go-docx2pdf/internal/docxtext"
	"github.com/alnah/go-docx2pdf/internal/fileutil"
)

// Content length thresholds for the format guess, in extracted characters.
const (
	letterMinLength = 500
	letterMaxLength = 3000
)

// defaultMetadata is what ExtractMetadata degrades to on any internal failure.
func defaultMetadata() *Metadata {
	return &Metadata{
		SuggestedFormat: FormatA4,
		ContentLength:   0,
		HasHeaders:      false,
		HasFooters:      false,
		Messages:        []string{},
	}
}

// ExtractMetadata inspects a DOCX buffer and guesses page format and
// header/footer presence. It never fails outward: any internal error,
// including a non-DOCX buffer, yields the default guess (A4, length 0,
// no headers or footers). The guess is a convenience for SmartConvert,
// not a correctness-critical classifier.
func (c *Converter) ExtractMetadata(doc []byte) (meta *Metadata) {
	defer func() {
		if r := recover(); r != nil {
			meta = defaultMetadata()
		}
	}()

	if len(doc) == 0 {
		return defaultMetadata()
	}

	ws, err := fileutil.NewWorkspace("docx2pdf-meta-*")
	if err != nil {
		return defaultMetadata()
	}
	defer ws.Cleanup(c.cfg.logf)

	docPath, err := ws.WriteFile("input.docx", doc)
	if err != nil {
		return defaultMetadata()
	}

	text, err := docxtext.Extract(docPath)
	if err != nil {
		return defaultMetadata()
	}

	// Part probing is best-effort on top of an already-readable archive.
	messages, err := docxhtml.ProbeParts(docPath)
	if err != nil {
		messages = nil
	}

	return guessMetadata(utf8.RuneCountInString(text), messages)
}

// guessMetadata classifies content length and scans diagnostics for
// header/footer mentions.
//
// The length policy is asymmetric on purpose: strictly more than 500 and at
// most 3000 characters suggests Letter, anything else suggests A4. The upper
// fallback to A4 looks like a missing branch rather than a deliberate rule,
// but it is kept as-is for compatibility with existing callers.
func guessMetadata(contentLength int, messages []string) *Metadata {
	format := FormatA4
	if contentLength > letterMinLength && contentLength <= letterMaxLength {
		format = FormatLetter
	}

	hasHeaders := false
	hasFooters := false
	for _, msg := range messages {
		lower := strings.ToLower(msg)
		if strings.Contains(lower, "header") {
			hasHeaders = true
		}
		if strings.Contains(lower, "footer") {
			hasFooters = true
		}
	}

	if messages == nil {
		messages = []string{}
	}

	return &Metadata{
		SuggestedFormat: format,
		ContentLength:   contentLength,
		HasHeaders:      hasHeaders,
		HasFooters:      hasFooters,
		Messages:        messages,
	}
}
