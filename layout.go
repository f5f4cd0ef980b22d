package docx2pdf

import (
	"fmt"
	"strings"
)

// defaultFontFamily is the base font stack for the document shell.
const defaultFontFamily = `"Times New Roman", Georgia, serif`

// docShellTemplate wraps the extracted fragment in a complete HTML5 document.
// Slots: CSS, header placeholder, body fragment, footer placeholder.
const docShellTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Document</title>
<style>
%s</style>
</head>
<body>
%s<div class="docx-content">
%s
</div>
%s</body>
</html>`

// headerPlaceholder is measured by the renderer to compute margin offsets.
const headerPlaceholder = `<div class="docx-header"></div>` + "\n"

// footerPlaceholder mirrors headerPlaceholder at the bottom of the page.
const footerPlaceholder = `<div class="docx-footer"></div>` + "\n"

// wrapDocument builds the full HTML document around an extracted fragment.
// Pure function: no I/O, deterministic for identical inputs.
func wrapDocument(fragment string, opts *FormatOptions) string {
	if opts == nil {
		opts = DefaultFormatOptions()
	}

	css := buildShellCSS(opts)

	header, footer := "", ""
	if opts.PreserveHeaders {
		header = headerPlaceholder
		footer = footerPlaceholder
	}

	return fmt.Sprintf(docShellTemplate, css, header, fragment, footer)
}

// buildShellCSS generates the embedded stylesheet: page geometry, base
// typography, header/footer placeholders, and table/alignment utilities.
func buildShellCSS(opts *FormatOptions) string {
	var buf strings.Builder

	m := opts.Page.Margin
	fmt.Fprintf(&buf, `@page {
  size: %s;
  margin: %s %s %s %s;
}
`, cssPageSize(opts.Page.Format), inches(m.Top), inches(m.Right), inches(m.Bottom), inches(m.Left))

	fmt.Fprintf(&buf, `
body {
  font-family: %s;
  font-size: 12pt;
  line-height: 1.4;
  margin: 0;
  color: #000;
}

h1, h2, h3, h4, h5, h6 {
  font-family: Arial, Helvetica, sans-serif;
  line-height: 1.2;
}

p {
  margin: 0 0 0.6em 0;
}

img {
  max-width: 100%%;
}
`, defaultFontFamily)

	if opts.PreserveHeaders {
		buf.WriteString(`
.docx-header {
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  min-height: 0.4in;
  border-bottom: 1px solid #ccc;
}

.docx-footer {
  position: fixed;
  bottom: 0;
  left: 0;
  right: 0;
  min-height: 0.4in;
  border-top: 1px solid #ccc;
}
`)
	}

	buf.WriteString(`
table {
  border-collapse: collapse;
  width: 100%;
  margin: 0.6em 0;
}

th, td {
  border: 1px solid #999;
  padding: 4pt 6pt;
  text-align: left;
  vertical-align: top;
}

th {
  background: #f0f0f0;
}

.align-left { text-align: left; }
.align-center { text-align: center; }
.align-right { text-align: right; }
.align-justify { text-align: justify; }
`)

	return buf.String()
}

// cssPageSize maps a page format to its CSS @page size keyword.
func cssPageSize(format string) string {
	switch strings.ToLower(format) {
	case "letter":
		return "letter"
	case "legal":
		return "legal"
	default:
		return "A4"
	}
}

// inches renders a float as a CSS inch length.
func inches(v float64) string {
	return fmt.Sprintf("%.2fin", v)
}
