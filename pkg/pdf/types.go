package pdf

// All coordinates in this package follow the pdfplumber convention:
// the origin is the top-left corner of the page, Top increases downward,
// and Top < Bottom for every object. Backends reading native PDF
// coordinates (bottom-left origin) convert during extraction.

// BoundingBox represents a rectangular area in page coordinates (points)
type BoundingBox struct {
	X0     float64 // Left
	Top    float64
	X1     float64 // Right
	Bottom float64
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Bottom - b.Top
}

// TextRun represents one contiguous span of text sharing a single font
// family and size
type TextRun struct {
	Text       string
	Font       string
	FontSize   float64
	PageNumber int // 1-based
}

// CharObject represents a single character and its bounding box
type CharObject struct {
	Text     string
	Font     string
	FontSize float64
	X0       float64
	Top      float64
	X1       float64
	Bottom   float64
}

// GetBBox returns the character's bounding box
func (c CharObject) GetBBox() BoundingBox {
	return BoundingBox{X0: c.X0, Top: c.Top, X1: c.X1, Bottom: c.Bottom}
}

// Objects represents the extracted objects of a page
type Objects struct {
	Chars []CharObject
	Runs  []TextRun
}
