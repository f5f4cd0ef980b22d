package docx2pdf

import (
	"fmt"
	"strings"
	"time"
)

// Page format constants.
const (
	FormatA4     = "A4"
	FormatLetter = "Letter"
	FormatLegal  = "Legal"
)

// ReturnType selects the output representation of a conversion.
type ReturnType string

// Supported return types.
const (
	ReturnBuffer ReturnType = "buffer"
	ReturnFile   ReturnType = "file"
	ReturnBase64 ReturnType = "base64"
)

// Validate checks that the return type is one of the supported values.
// An empty value is valid and means ReturnBuffer.
func (rt ReturnType) Validate() error {
	switch rt {
	case "", ReturnBuffer, ReturnFile, ReturnBase64:
		return nil
	}
	return fmt.Errorf("%w: %q (must be buffer, file, or base64)", ErrInvalidReturnType, string(rt))
}

// Margin bounds in inches.
const (
	MinMargin     = 0.0
	MaxMargin     = 3.0
	DefaultMargin = 1.0
)

// Margin holds the four page margins in inches.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins returns 1 inch on every side.
func DefaultMargins() Margin {
	return Margin{Top: DefaultMargin, Right: DefaultMargin, Bottom: DefaultMargin, Left: DefaultMargin}
}

// Validate checks that every margin is within bounds.
func (m Margin) Validate() error {
	for _, side := range []struct {
		name  string
		value float64
	}{
		{"top", m.Top},
		{"right", m.Right},
		{"bottom", m.Bottom},
		{"left", m.Left},
	} {
		if side.value < MinMargin || side.value > MaxMargin {
			return fmt.Errorf("%w: %s %.2f (must be between %.2f and %.2f)",
				ErrInvalidMargin, side.name, side.value, MinMargin, MaxMargin)
		}
	}
	return nil
}

// PageConfig configures the output page geometry.
type PageConfig struct {
	Format string // "A4", "Letter", "Legal"
	Margin Margin // inches
}

// FormatOptions control the document shell and render pass.
// Build from DefaultFormatOptions and override fields as needed;
// the zero value disables header/footer preservation.
type FormatOptions struct {
	Page            PageConfig
	PreserveHeaders bool
}

// DefaultFormatOptions returns A4, 1 inch margins, headers preserved.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{
		Page: PageConfig{
			Format: FormatA4,
			Margin: DefaultMargins(),
		},
		PreserveHeaders: true,
	}
}

// Validate checks page format and margins.
// Returns nil if f is nil (nil means use defaults).
func (f *FormatOptions) Validate() error {
	if f == nil {
		return nil
	}
	if !isValidPageFormat(f.Page.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidPageFormat, f.Page.Format)
	}
	return f.Page.Margin.Validate()
}

// isValidPageFormat checks if format is a known page format (case-insensitive).
func isValidPageFormat(format string) bool {
	switch strings.ToLower(format) {
	case strings.ToLower(FormatA4), strings.ToLower(FormatLetter), strings.ToLower(FormatLegal):
		return true
	}
	return false
}

// ConvertOptions control how the conversion result is delivered.
type ConvertOptions struct {
	ReturnType ReturnType // default ReturnBuffer
	OutputDir  string     // default os.TempDir(), only used by ReturnFile
}

// Validate checks that the options are usable.
// Returns nil if o is nil (nil means use defaults).
func (o *ConvertOptions) Validate() error {
	if o == nil {
		return nil
	}
	return o.ReturnType.Validate()
}

// Result holds the conversion output. Exactly one representation is
// populated, selected by ConvertOptions.ReturnType:
//
//   - ReturnBuffer: Buffer and Filename
//   - ReturnFile: Filename only (the path of the written file)
//   - ReturnBase64: Base64 and Filename
type Result struct {
	Buffer   []byte
	Filename string
	Base64   string
}

// Metadata is a best-effort guess about a document, derived from its
// extracted plain text and conversion diagnostics. It is a convenience,
// not a correctness-critical classifier.
type Metadata struct {
	SuggestedFormat string // "A4" or "Letter"
	ContentLength   int    // extracted plain text length in runes
	HasHeaders      bool
	HasFooters      bool
	Messages        []string // extraction diagnostics
}

// StyleRule maps a source paragraph style name to a target HTML tag and
// optional class, e.g. {"Quote", "blockquote", "pull"}.
type StyleRule struct {
	StyleName string
	Tag       string
	Class     string
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	styleRules []StyleRule
	logf       func(format string, args ...any)
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docx2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyleMap sets style-mapping rules applied during extraction.
func WithStyleMap(rules []StyleRule) Option {
	return func(c *Converter) {
		c.cfg.styleRules = rules
	}
}

// WithLogger sets the logger for non-fatal warnings (temp cleanup failures,
// render timing). The default discards everything.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(c *Converter) {
		if logf != nil {
			c.cfg.logf = logf
		}
	}
}
