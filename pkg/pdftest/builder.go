package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Text is one positioned show-text instruction. X and Y are native PDF
// coordinates: bottom-left origin, Y is the text baseline.
type Text struct {
	X, Y  float64
	Size  float64
	Value string
}

// Page describes one page of a built PDF
type Page struct {
	Width  float64
	Height float64
	Font   string // BaseFont name; defaults to Times-Roman
	Texts  []Text

	// Filter, when set, is written as the content stream's /Filter without
	// encoding the data. A name no reader implements (e.g. "BogusDecode")
	// yields a page whose content cannot be decoded, for failure-path tests.
	Filter string
}

// BuildPDF assembles a syntactically complete, uncompressed PDF 1.4 file:
// catalog, page tree, one content stream and one Type1 font per page, and a
// cross-reference table with computed offsets. The font carries a flat
// Widths array so readers can derive text extents.
func BuildPDF(pages ...Page) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	// object numbering: 1 catalog, 2 page tree, then page/content/font
	// triples in page order
	objCount := 2 + 3*len(pages)
	offsets := make([]int, objCount+1)

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+3*i)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pages)))

	for i, page := range pages {
		pageNum := 3 + 3*i
		contentNum := pageNum + 1
		fontNum := pageNum + 2

		width, height := page.Width, page.Height
		if width == 0 {
			width = 612
		}
		if height == 0 {
			height = 792
		}
		font := page.Font
		if font == "" {
			font = "Times-Roman"
		}

		writeObj(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			width, height, fontNum, contentNum))

		content := contentStream(page.Texts)
		filter := ""
		if page.Filter != "" {
			filter = fmt.Sprintf(" /Filter /%s", page.Filter)
		}
		writeObj(contentNum, fmt.Sprintf(
			"<< /Length %d%s >>\nstream\n%sendstream", len(content), filter, content))

		writeObj(fontNum, fmt.Sprintf(
			"<< /Type /Font /Subtype /Type1 /BaseFont /%s /FirstChar 32 /LastChar 126 /Widths [%s] >>",
			font, flatWidths(95, 500)))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f\r\n")
	for num := 1; num <= objCount; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n\r\n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		objCount+1, xrefOffset)

	return buf.Bytes()
}

// contentStream renders the text instructions as a BT/ET block
func contentStream(texts []Text) string {
	var sb strings.Builder
	sb.WriteString("BT\n")
	for _, t := range texts {
		size := t.Size
		if size == 0 {
			size = 12
		}
		fmt.Fprintf(&sb, "/F1 %g Tf\n1 0 0 1 %g %g Tm\n(%s) Tj\n",
			size, t.X, t.Y, escapeString(t.Value))
	}
	sb.WriteString("ET\n")
	return sb.String()
}

// escapeString escapes the characters with meaning inside a literal string
func escapeString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// flatWidths renders a Widths array of n identical glyph widths
func flatWidths(n, width int) string {
	entries := make([]string, n)
	for i := range entries {
		entries[i] = fmt.Sprintf("%d", width)
	}
	return strings.Join(entries, " ")
}
