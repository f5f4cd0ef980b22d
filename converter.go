package docx2pdf

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/alnah/go-docx2pdf/internal/docxhtml"
	"github.com/alnah/go-docx2pdf/internal/fileutil"
)

// structureExtractor abstracts DOCX-to-HTML extraction to allow test fakes.
type structureExtractor interface {
	ExtractHTML(ctx context.Context, docPath string, rules []StyleRule) (html string, messages []string, err error)
}

// Compile-time interface check.
var _ structureExtractor = (*docxExtractor)(nil)

// docxExtractor delegates to internal/docxhtml.
type docxExtractor struct{}

func (docxExtractor) ExtractHTML(ctx context.Context, docPath string, rules []StyleRule) (string, []string, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	internal := make([]docxhtml.Rule, len(rules))
	for i, r := range rules {
		internal[i] = docxhtml.Rule(r)
	}
	html, messages, err := docxhtml.Extract(docPath, internal)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return html, messages, nil
}

// Converter runs the DOCX-to-PDF pipeline. Create with NewConverter, use
// Convert, SmartConvert, or ExtractMetadata, and Close when done. A
// Converter holds no per-call state; concurrent calls are safe but each
// launches its own browser, so callers should bound parallelism (see
// ConverterPool).
type Converter struct {
	cfg       converterConfig
	extractor structureExtractor
	renderer  pdfRenderer
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyleMap).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			logf:    func(string, ...any) {},
		},
		extractor: docxExtractor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create renderer if not injected (e.g., by tests)
	if c.renderer == nil {
		c.renderer = newRodRenderer(c.cfg.timeout)
	}

	return c
}

// ParseStyleMap parses style-map rules for WithStyleMap from text of the form
//
//	p[style-name='Quote'] => blockquote
//
// one rule per line.
func ParseStyleMap(text string) ([]StyleRule, error) {
	internal, err := docxhtml.ParseRules(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyleMap, err)
	}
	rules := make([]StyleRule, len(internal))
	for i, r := range internal {
		rules[i] = StyleRule(r)
	}
	return rules, nil
}

// Convert runs the full pipeline on a DOCX buffer and packages the result
// according to opts.ReturnType. filename names the source document and is
// only used to derive the output name. Passing nil opts or format selects
// the defaults (buffer output, A4, 1 inch margins, headers preserved).
//
// All validation happens before any file I/O. Failures inside extraction or
// rendering are returned wrapped in ErrConversion with the underlying cause
// preserved; no partial result is ever returned.
func (c *Converter) Convert(ctx context.Context, doc []byte, filename string, opts *ConvertOptions, format *FormatOptions) (*Result, error) {
	if len(doc) == 0 {
		return nil, ErrEmptyDocument
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if format == nil {
		format = DefaultFormatOptions()
	}

	start := time.Now()

	ws, err := fileutil.NewWorkspace("docx2pdf-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	defer ws.Cleanup(c.cfg.logf)

	docPath, err := ws.WriteFile("input.docx", doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	htmlFragment, messages, err := c.extractor.ExtractHTML(ctx, docPath, c.cfg.styleRules)
	if err != nil {
		// The sniffed content type makes "corrupt archive" failures legible.
		detected := mimetype.Detect(doc)
		c.cfg.logf("extraction failed for %s (detected content type %s): %v", filename, detected.String(), err)
		return nil, fmt.Errorf("%w: %w (detected content type %s)", ErrConversion, err, detected.String())
	}
	for _, msg := range messages {
		c.cfg.logf("extraction: %s", msg)
	}

	wrapped := wrapDocument(htmlFragment, format)
	htmlPath, err := ws.WriteFile("document.html", []byte(wrapped))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	pdf, err := c.renderer.RenderFile(ctx, htmlPath, &renderOptions{
		Format:          format.Page.Format,
		Margin:          format.Page.Margin,
		PreserveHeaders: format.PreserveHeaders,
	})
	if err != nil {
		c.cfg.logf("render failed for %s: %v", filename, err)
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}

	result, err := c.packageResult(pdf, filename, opts)
	if err != nil {
		return nil, err
	}

	c.cfg.logf("converted %s in %s", filename, time.Since(start).Round(time.Millisecond))
	return result, nil
}

// SmartConvert composes metadata extraction with conversion: the guessed
// page format and header/footer presence drive the format options.
func (c *Converter) SmartConvert(ctx context.Context, doc []byte, filename string, opts *ConvertOptions) (*Result, error) {
	guess := c.ExtractMetadata(doc)

	format := DefaultFormatOptions()
	format.Page.Format = guess.SuggestedFormat
	format.PreserveHeaders = guess.HasHeaders || guess.HasFooters

	return c.Convert(ctx, doc, filename, opts, format)
}

// Close releases resources. The renderer launches a browser per call and
// keeps nothing open between calls, so Close currently has nothing to free;
// it exists so pooled callers can treat Converter like any other closer.
func (c *Converter) Close() error {
	return nil
}

// packageResult builds the Result for the requested return type.
// Exactly one representation is populated.
func (c *Converter) packageResult(pdf []byte, filename string, opts *ConvertOptions) (*Result, error) {
	name := outputFilename(filename)

	returnType := ReturnBuffer
	outputDir := ""
	if opts != nil {
		if opts.ReturnType != "" {
			returnType = opts.ReturnType
		}
		outputDir = opts.OutputDir
	}

	switch returnType {
	case ReturnBuffer:
		return &Result{Buffer: pdf, Filename: name}, nil

	case ReturnFile:
		if outputDir == "" {
			outputDir = os.TempDir()
		}
		if err := os.MkdirAll(outputDir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		outPath := filepath.Join(outputDir, name)
		if err := os.WriteFile(outPath, pdf, 0o644); err != nil { // #nosec G306 -- PDF output is meant to be readable
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return &Result{Filename: outPath}, nil

	case ReturnBase64:
		return &Result{Base64: base64.StdEncoding.EncodeToString(pdf), Filename: name}, nil
	}

	// Unreachable: opts.Validate rejected anything else before any I/O.
	return nil, fmt.Errorf("%w: %q", ErrInvalidReturnType, string(returnType))
}

// outputFilename derives the .pdf name from the source filename.
func outputFilename(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "document.docx"
	}
	ext := filepath.Ext(base)
	if ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".pdf"
}
