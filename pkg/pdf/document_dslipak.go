package pdf

import (
	"bytes"
	"fmt"

	gopdf "github.com/dslipak/pdf"
)

// OpenWithDslipak parses PDF bytes using the dslipak/pdf library, the
// secondary backend. It shares ancestry with ledongthuc/pdf but tolerates a
// different set of malformed inputs.
func OpenWithDslipak(data []byte) (doc Document, err error) {
	defer recoverAs(&err)

	reader, err := gopdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	pageCount := reader.NumPage()
	pages := make([]Page, pageCount)
	for i := 1; i <= pageCount; i++ {
		pages[i-1] = newDslipakPage(reader, i)
	}

	return &document{pages: pages}, nil
}

// newDslipakPage extracts one page, degrading to a partial page on failure
func newDslipakPage(reader *gopdf.Reader, pageNumber int) (result Page) {
	p := newPage(pageNumber)
	result = p

	// named result keeps the partial page when the reader panics
	defer func() { recover() }()

	gp := reader.Page(pageNumber)
	if gp.V.IsNull() {
		return p
	}

	mediaBox := gp.V.Key("MediaBox")
	if mediaBox.Kind() == gopdf.Array && mediaBox.Len() == 4 {
		p.width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		p.height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}

	for _, item := range gp.Content().Text {
		p.addTextItem(item.S, item.Font, item.FontSize, item.X, item.Y, item.W)
	}

	return p
}
