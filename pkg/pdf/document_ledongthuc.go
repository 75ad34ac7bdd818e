package pdf

import (
	"bytes"
	"fmt"

	lpdf "github.com/ledongthuc/pdf"
)

// OpenWithLedongthuc parses PDF bytes using the ledongthuc/pdf library.
// It is the primary backend: of the three it reports the most accurate
// text coordinates and font attributes.
func OpenWithLedongthuc(data []byte) (doc Document, err error) {
	defer recoverAs(&err)

	reader, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	pageCount := reader.NumPage()
	pages := make([]Page, pageCount)
	for i := 1; i <= pageCount; i++ {
		pages[i-1] = newLedongthucPage(reader, i)
	}

	return &document{pages: pages}, nil
}

// newLedongthucPage extracts one page. A page whose content cannot be parsed
// degrades to whatever was extracted before the failure instead of failing
// the whole document.
func newLedongthucPage(reader *lpdf.Reader, pageNumber int) (result Page) {
	p := newPage(pageNumber)
	result = p

	// The ledongthuc reader panics on some malformed pages. The named
	// result already holds the partial page, so unwinding returns it.
	defer func() { recover() }()

	lp := reader.Page(pageNumber)
	if lp.V.IsNull() {
		return p
	}

	mediaBox := lp.V.Key("MediaBox")
	if mediaBox.Kind() == lpdf.Array && mediaBox.Len() == 4 {
		// MediaBox is [x0, y0, x1, y1]
		p.width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		p.height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}

	for _, item := range lp.Content().Text {
		p.addTextItem(item.S, item.Font, item.FontSize, item.X, item.Y, item.W)
	}

	return p
}
