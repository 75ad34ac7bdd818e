package pdf

import (
	"errors"
	"fmt"
)

// OpenFunc attempts to parse a byte buffer with one backend. It reports the
// parsed document or an error; it must not panic.
type OpenFunc func(data []byte) (Document, error)

// strategy pairs a backend name with its opener. Open tries strategies in
// order, so the list runs from the most accurate text extraction to the most
// tolerant structural parser.
type strategy struct {
	name string
	open OpenFunc
}

var strategies = []strategy{
	{"ledongthuc", OpenWithLedongthuc},
	{"dslipak", OpenWithDslipak},
	{"pdfcpu", OpenWithPDFCPU},
}

// Open parses PDF bytes, trying each backend until one produces a document
// with at least one page. A document that no backend can open is not a
// usable PDF.
func Open(data []byte) (Document, error) {
	var errs []error
	for _, s := range strategies {
		doc, err := s.open(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			continue
		}
		if doc.PageCount() == 0 {
			doc.Close()
			errs = append(errs, fmt.Errorf("%s: document has no pages", s.name))
			continue
		}
		return doc, nil
	}
	return nil, fmt.Errorf("no backend could open the document: %w", errors.Join(errs...))
}

// recoverAs converts a panic inside a third-party parser into an error.
// The ledongthuc and dslipak readers are known to panic on malformed input.
func recoverAs(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("parser panic: %v", r)
	}
}
