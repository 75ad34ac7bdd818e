package analyzer

import (
	"fmt"
	"math"

	"github.com/pyhub-apps/pdfcomply-golang/pkg/pdf"
)

// FontInfo is the set of typography evidence observed in a document
type FontInfo struct {
	// Sizes holds every distinct font size, rounded to the nearest point.
	// Raw sizes vary by fractions of a point across producers, so exact
	// comparison would be useless.
	Sizes map[int]bool

	// Families holds every distinct font name as reported, unnormalized
	Families map[string]bool
}

// NewFontInfo returns an empty FontInfo
func NewFontInfo() FontInfo {
	return FontInfo{Sizes: map[int]bool{}, Families: map[string]bool{}}
}

// ExtractFontInfo walks every text run on every page and collects the
// distinct rounded font sizes and font family names. It never fails the
// analysis: on any error the returned FontInfo is empty and the error is a
// diagnostic only. Empty sets read downstream as "no typography evidence".
func ExtractFontInfo(doc pdf.Document) (info FontInfo, err error) {
	info = NewFontInfo()
	if doc == nil {
		return info, fmt.Errorf("no document")
	}

	defer func() {
		if r := recover(); r != nil {
			info = NewFontInfo()
			err = fmt.Errorf("font extraction panic: %v", r)
		}
	}()

	for _, page := range doc.GetPages() {
		for _, run := range page.GetObjects().Runs {
			info.Sizes[int(math.Round(run.FontSize))] = true
			info.Families[run.Font] = true
		}
	}

	return info, nil
}
