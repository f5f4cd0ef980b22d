// Package docx2pdf converts DOCX documents to PDF.
//
// The pipeline is deliberately thin: the DOCX buffer is written to a scoped
// temporary directory, its structure is extracted to HTML, the HTML is
// wrapped in a fixed CSS document shell, and headless Chrome (via go-rod)
// renders the result to PDF. No parsing, layout, or rendering logic beyond
// that glue lives here.
//
// Basic usage:
//
//	conv := docx2pdf.NewConverter()
//	defer conv.Close()
//
//	doc, _ := os.ReadFile("report.docx")
//	res, err := conv.Convert(context.Background(), doc, "report.docx", nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile(res.Filename, res.Buffer, 0o644)
//
// Every call is stateless and independent; each uses its own temporary
// directory and browser instance. The library does not bound concurrency
// itself. Browser instances are resource-heavy, so callers running many
// conversions in parallel should bound them, for example with ConverterPool.
package docx2pdf
