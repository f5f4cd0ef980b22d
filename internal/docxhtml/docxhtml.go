// Package docxhtml extracts the structure of a DOCX file as an HTML fragment.
//
// The extraction is intentionally lossy: it covers paragraphs, run formatting
// (bold, italic, underline, strikethrough), headings, hyperlinks, tables,
// lists, line breaks, tabs, and embedded images. Everything it cannot
// represent is reported as a non-fatal diagnostic message rather than an
// error. Only a corrupt archive or a missing document part fails outright.
package docxhtml

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Sentinel errors for extraction.
var (
	ErrOpenArchive   = errors.New("cannot open DOCX archive")
	ErrMissingPart   = errors.New("DOCX archive is missing a required part")
	ErrMalformedPart = errors.New("DOCX part is malformed")
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
	documentRels = "word/_rels/document.xml.rels"

	relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Extract converts the DOCX file at docPath to an HTML fragment.
// rules map paragraph style names to HTML tags; they take precedence over
// the built-in heading detection. Returned messages are non-fatal
// diagnostics collected during the walk.
func Extract(docPath string, rules []Rule) (html string, messages []string, err error) {
	zr, err := zip.OpenReader(docPath)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrOpenArchive, err)
	}
	defer func() { _ = zr.Close() }()

	messages = append(messages, probeParts(&zr.Reader)...)

	docData, err := readPart(&zr.Reader, documentPart)
	if err != nil {
		return "", nil, err
	}

	w := &walker{
		reader: &zr.Reader,
		styles: parseStyles(&zr.Reader),
		rels:   parseRelationships(&zr.Reader),
		rules:  rules,
	}

	fragment, walkErr := w.walk(docData)
	if walkErr != nil {
		return "", nil, walkErr
	}

	messages = append(messages, w.messages...)
	return fragment, messages, nil
}

// ProbeParts lists diagnostics about the archive structure without walking
// the document body. Used by the metadata heuristic.
func ProbeParts(docPath string) ([]string, error) {
	zr, err := zip.OpenReader(docPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenArchive, err)
	}
	defer func() { _ = zr.Close() }()
	return probeParts(&zr.Reader), nil
}

// probeParts reports header and footer parts present in the archive.
// The messages deliberately contain the words "header" and "footer" so
// downstream heuristics can match on them.
func probeParts(zr *zip.Reader) []string {
	var headers, footers []string
	for _, f := range zr.File {
		name := path.Base(f.Name)
		switch {
		case strings.HasPrefix(f.Name, "word/header") && strings.HasSuffix(f.Name, ".xml"):
			headers = append(headers, name)
		case strings.HasPrefix(f.Name, "word/footer") && strings.HasSuffix(f.Name, ".xml"):
			footers = append(footers, name)
		}
	}
	sort.Strings(headers)
	sort.Strings(footers)

	var msgs []string
	for _, h := range headers {
		msgs = append(msgs, fmt.Sprintf("document contains header part %s; rendered as a page margin placeholder", h))
	}
	for _, f := range footers {
		msgs = append(msgs, fmt.Sprintf("document contains footer part %s; rendered as a page margin placeholder", f))
	}
	return msgs
}

// readPart reads a named file out of the archive.
func readPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPart, name, err)
		}
		defer func() { _ = rc.Close() }()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPart, name, err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
}

// parseStyles maps style IDs to their display names from styles.xml.
// A missing or unreadable styles part yields an empty map, not an error.
func parseStyles(zr *zip.Reader) map[string]string {
	styles := make(map[string]string)
	data, err := readPart(zr, stylesPart)
	if err != nil {
		return styles
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var currentID string
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "style":
				currentID = attrValue(t, "styleId")
			case "name":
				if currentID != "" {
					if v := attrValue(t, "val"); v != "" {
						styles[currentID] = v
					}
				}
			}
		case xml.EndElement:
			if t.Name.Local == "style" {
				currentID = ""
			}
		}
	}
	return styles
}

// parseRelationships maps relationship IDs to targets (hyperlink URLs,
// image paths) from the document rels part.
func parseRelationships(zr *zip.Reader) map[string]string {
	rels := make(map[string]string)
	data, err := readPart(zr, documentRels)
	if err != nil {
		return rels
	}

	var parsed struct {
		Relationships []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return rels
	}
	for _, r := range parsed.Relationships {
		rels[r.ID] = r.Target
	}
	return rels
}

// walker carries the state of a single document.xml traversal.
type walker struct {
	reader   *zip.Reader
	styles   map[string]string
	rels     map[string]string
	rules    []Rule
	messages []string

	// reported deduplicates per-style diagnostics.
	reported map[string]bool
}

// runState tracks formatting of the current run.
type runState struct {
	bold      bool
	italic    bool
	underline bool
	strike    bool
}

func (w *walker) walk(docData []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(docData))

	var (
		blocks      []string
		currentPara strings.Builder
		textBuf     strings.Builder

		run      runState
		styleID  string
		inRun    bool
		inText   bool
		inHyper  bool
		hyperRef string
		inList   bool

		inCell      bool
		cellContent strings.Builder
		currentRow  []string
		tableRows   [][]string
		tblDepth    int

		listOpen bool
	)

	flushList := func() {
		if listOpen {
			blocks = append(blocks, "</ul>")
			listOpen = false
		}
	}

	appendBlock := func(b string) {
		blocks = append(blocks, b)
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				currentPara.Reset()
				styleID = ""
				inList = false

			case "pStyle":
				styleID = attrValue(t, "val")

			case "numPr":
				inList = true

			case "r":
				run = runState{}
				inRun = true

			case "b":
				run.bold = !onOffDisabled(attrValue(t, "val"))

			case "i":
				run.italic = !onOffDisabled(attrValue(t, "val"))

			case "u":
				run.underline = attrValue(t, "val") != "none"

			case "strike":
				run.strike = !onOffDisabled(attrValue(t, "val"))

			case "t":
				inText = true
				textBuf.Reset()

			case "tab":
				// Tab stop definitions under w:pPr/w:tabs share the element
				// name; only a run-level w:tab is actual content.
				if inRun {
					currentTarget(&currentPara, &cellContent, inCell).WriteString("\t")
				}

			case "br":
				currentTarget(&currentPara, &cellContent, inCell).WriteString("<br/>")

			case "hyperlink":
				inHyper = true
				hyperRef = w.resolveHyperlink(t)

			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					tableRows = nil
				} else {
					w.report("nested-table", "nested table flattened into its parent cell")
				}

			case "tr":
				if tblDepth == 1 {
					currentRow = nil
				}

			case "tc":
				if tblDepth == 1 {
					inCell = true
					cellContent.Reset()
				}

			case "drawing", "pict":
				if img := w.extractImage(decoder); img != "" {
					currentTarget(&currentPara, &cellContent, inCell).WriteString(img)
				}
			}

		case xml.CharData:
			if inText {
				textBuf.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if inText {
					text := formatRun(escapeText(textBuf.String()), run)
					if inHyper && hyperRef != "" {
						text = `<a href="` + escapeAttr(hyperRef) + `">` + text + "</a>"
					}
					currentTarget(&currentPara, &cellContent, inCell).WriteString(text)
					inText = false
				}

			case "r":
				inRun = false

			case "hyperlink":
				inHyper = false
				hyperRef = ""

			case "p":
				paraText := currentPara.String()
				if inCell {
					cellContent.WriteString(paraText)
					break
				}

				isListItem := inList
				block := w.renderParagraph(paraText, styleID, isListItem)
				if block == "" {
					break
				}
				if isListItem {
					if !listOpen {
						appendBlock("<ul>")
						listOpen = true
					}
					appendBlock(block)
				} else {
					flushList()
					appendBlock(block)
				}

			case "tc":
				if tblDepth == 1 {
					currentRow = append(currentRow, cellContent.String())
					inCell = false
				}

			case "tr":
				if tblDepth == 1 {
					tableRows = append(tableRows, currentRow)
				}

			case "tbl":
				tblDepth--
				if tblDepth == 0 {
					flushList()
					if tbl := renderTable(tableRows); tbl != "" {
						appendBlock(tbl)
					}
				}
			}
		}
	}

	flushList()
	return strings.Join(blocks, "\n"), nil
}

// renderParagraph wraps paragraph content in the tag determined by the
// style map, the built-in heading detection, or a plain <p>.
func (w *walker) renderParagraph(content, styleID string, listItem bool) string {
	if listItem {
		if content == "" {
			return ""
		}
		return "<li>" + content + "</li>"
	}

	styleName := w.styles[styleID]

	if rule, ok := matchRule(w.rules, styleID, styleName); ok {
		return rule.open() + content + rule.close()
	}

	if level := headingLevel(styleID, styleName); level > 0 {
		tag := fmt.Sprintf("h%d", level)
		return "<" + tag + ">" + content + "</" + tag + ">"
	}

	if styleID != "" && styleName == "" {
		w.report(styleID, fmt.Sprintf("unrecognised paragraph style: %s (no style map rule)", styleID))
	}

	if content == "" {
		return ""
	}
	return "<p>" + content + "</p>"
}

// report records a diagnostic once per key.
func (w *walker) report(key, msg string) {
	if w.reported == nil {
		w.reported = make(map[string]bool)
	}
	if w.reported[key] {
		return
	}
	w.reported[key] = true
	w.messages = append(w.messages, msg)
}

// resolveHyperlink looks up the r:id relationship target of a hyperlink.
func (w *walker) resolveHyperlink(t xml.StartElement) string {
	for _, attr := range t.Attr {
		if attr.Name.Space == relNamespace && attr.Name.Local == "id" {
			return w.rels[attr.Value]
		}
	}
	return ""
}

// extractImage consumes a drawing/pict element and returns an <img> with a
// data URI when the embedded image can be resolved, or "".
func (w *walker) extractImage(decoder *xml.Decoder) string {
	depth := 1
	var embedID, altText string

	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "blip":
				for _, attr := range t.Attr {
					if attr.Name.Local == "embed" {
						embedID = attr.Value
					}
				}
			case "docPr":
				if v := attrValue(t, "descr"); v != "" {
					altText = v
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	if embedID == "" {
		return ""
	}
	target, ok := w.rels[embedID]
	if !ok {
		return ""
	}

	imgData, err := readPart(w.reader, "word/"+target)
	if err != nil {
		imgData, err = readPart(w.reader, target)
		if err != nil {
			w.report("img:"+target, fmt.Sprintf("embedded image %s could not be read; skipped", target))
			return ""
		}
	}

	if altText == "" {
		altText = path.Base(target)
	}
	src := fmt.Sprintf("data:%s;base64,%s", imageContentType(target), base64.StdEncoding.EncodeToString(imgData))
	return fmt.Sprintf(`<img src="%s" alt="%s"/>`, src, escapeAttr(altText))
}

// imageContentType guesses a MIME type from the image file extension.
func imageContentType(target string) string {
	switch strings.ToLower(path.Ext(target)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// renderTable builds an HTML table, treating the first row as a header row.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("<table>")
	for i, row := range rows {
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		buf.WriteString("<tr>")
		for _, cell := range row {
			buf.WriteString("<" + tag + ">" + cell + "</" + tag + ">")
		}
		buf.WriteString("</tr>")
	}
	buf.WriteString("</table>")
	return buf.String()
}

// headingLevel returns 1-6 for heading styles, 0 otherwise.
// Matches both style IDs ("Heading1", "heading 2") and style names
// ("Heading 1") case-insensitively.
func headingLevel(styleID, styleName string) int {
	for _, candidate := range []string{styleID, styleName} {
		lower := strings.ToLower(strings.ReplaceAll(candidate, " ", ""))
		for i := 1; i <= 6; i++ {
			if lower == fmt.Sprintf("heading%d", i) {
				return i
			}
		}
		if lower == "title" {
			return 1
		}
	}
	return 0
}

// formatRun applies run formatting tags inner-to-outer.
func formatRun(text string, r runState) string {
	if r.bold {
		text = "<b>" + text + "</b>"
	}
	if r.italic {
		text = "<i>" + text + "</i>"
	}
	if r.underline {
		text = "<u>" + text + "</u>"
	}
	if r.strike {
		text = "<s>" + text + "</s>"
	}
	return text
}

// currentTarget selects where run-level output goes: the open table cell
// or the current paragraph.
func currentTarget(para, cell *strings.Builder, inCell bool) *strings.Builder {
	if inCell {
		return cell
	}
	return para
}

// onOffDisabled reports whether an OOXML on/off property value explicitly
// turns the property off. Writers emit "false" (or "0", or ST_OnOff "off")
// to override a style-inherited property; a bare element or any other value
// means on.
func onOffDisabled(val string) bool {
	switch strings.ToLower(val) {
	case "0", "false", "off":
		return true
	}
	return false
}

// attrValue returns the value of the named attribute, ignoring namespace.
func attrValue(t xml.StartElement, name string) string {
	for _, attr := range t.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	return strings.ReplaceAll(escapeText(s), `"`, "&quot;")
}
