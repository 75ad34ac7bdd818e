package pdf

import "fmt"

// document is the Document implementation shared by all backends. Pages are
// built eagerly at open time; the document holds no reader state afterwards.
type document struct {
	pages []Page
}

// GetPages returns all pages in the document
func (d *document) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *document) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *document) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *document) Close() error {
	d.pages = nil
	return nil
}
