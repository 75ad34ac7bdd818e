// Package pdftest provides test doubles for the document layer: an
// in-memory fake Document/Page pair and a builder that assembles real,
// minimal PDF files in memory.
package pdftest

import (
	"fmt"

	"github.com/pyhub-apps/pdfcomply-golang/pkg/pdf"
)

// FakePage is an in-memory pdf.Page
type FakePage struct {
	Number  int
	Width   float64
	Height  float64
	Objects pdf.Objects
	Text    string
}

// GetPageNumber returns the page number (1-based)
func (p *FakePage) GetPageNumber() int { return p.Number }

// GetWidth returns the page width in points
func (p *FakePage) GetWidth() float64 { return p.Width }

// GetHeight returns the page height in points
func (p *FakePage) GetHeight() float64 { return p.Height }

// GetBBox returns the page bounding box
func (p *FakePage) GetBBox() pdf.BoundingBox {
	return pdf.BoundingBox{X0: 0, Top: 0, X1: p.Width, Bottom: p.Height}
}

// GetObjects returns the page's objects
func (p *FakePage) GetObjects() pdf.Objects { return p.Objects }

// ExtractText returns the page's text
func (p *FakePage) ExtractText() string { return p.Text }

// FakeDocument is an in-memory pdf.Document
type FakeDocument struct {
	Pages  []*FakePage
	Closed bool
}

// NewFakeDocument builds a document of empty US Letter pages
func NewFakeDocument(pageCount int) *FakeDocument {
	doc := &FakeDocument{}
	for i := 1; i <= pageCount; i++ {
		doc.Pages = append(doc.Pages, &FakePage{Number: i, Width: 612, Height: 792})
	}
	return doc
}

// GetPages returns all pages in the document
func (d *FakeDocument) GetPages() []pdf.Page {
	pages := make([]pdf.Page, len(d.Pages))
	for i, p := range d.Pages {
		pages[i] = p
	}
	return pages
}

// GetPage returns a specific page by index (0-based)
func (d *FakeDocument) GetPage(index int) (pdf.Page, error) {
	if index < 0 || index >= len(d.Pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.Pages))
	}
	return d.Pages[index], nil
}

// PageCount returns the total number of pages
func (d *FakeDocument) PageCount() int { return len(d.Pages) }

// Close marks the document closed
func (d *FakeDocument) Close() error {
	d.Closed = true
	return nil
}
