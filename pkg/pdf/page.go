package pdf

import "strings"

// page is the Page implementation shared by all backends. Backends fully
// populate a page during document construction; afterwards it is immutable.
type page struct {
	pageNumber int
	width      float64
	height     float64
	objects    Objects
	text       strings.Builder
}

// newPage creates an empty page with US Letter dimensions as fallback
func newPage(pageNumber int) *page {
	return &page{pageNumber: pageNumber, width: 612, height: 792}
}

// addTextItem records one positioned text item: a run, its per-character
// boxes, and its contribution to the page text. x and y are PDF coordinates
// with y the baseline; boxes come out top-origin. The glyph top sits roughly
// 80% of the font size above the baseline.
func (p *page) addTextItem(s, font string, fontSize, x, y, w float64) {
	p.text.WriteString(s)

	chars := []rune(s)
	if len(chars) == 0 {
		return
	}

	p.objects.Runs = append(p.objects.Runs, TextRun{
		Text:       s,
		Font:       font,
		FontSize:   fontSize,
		PageNumber: p.pageNumber,
	})

	top := p.height - (y + fontSize*0.8)

	// Individual glyph extents are not exposed by the readers, so spread
	// the item width evenly across its characters.
	charWidth := w / float64(len(chars))

	for _, ch := range chars {
		if ch != ' ' && ch != '\n' && ch != '\r' {
			p.objects.Chars = append(p.objects.Chars, CharObject{
				Text:     string(ch),
				Font:     font,
				FontSize: fontSize,
				X0:       x,
				Top:      top,
				X1:       x + charWidth,
				Bottom:   top + fontSize,
			})
		}
		x += charWidth
	}
}

// GetPageNumber returns the page number (1-based)
func (p *page) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width in points
func (p *page) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height in points
func (p *page) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box
func (p *page) GetBBox() BoundingBox {
	return BoundingBox{X0: 0, Top: 0, X1: p.width, Bottom: p.height}
}

// GetObjects returns the characters and text runs extracted from the page
func (p *page) GetObjects() Objects {
	return p.objects
}

// ExtractText returns the plain text of the page
func (p *page) ExtractText() string {
	return p.text.String()
}
