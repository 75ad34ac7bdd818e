package analyzer

import (
	"fmt"

	"github.com/pyhub-apps/pdfcomply-golang/pkg/pdf"
)

// PointsPerInch converts PDF page coordinates to inches
const PointsPerInch = 72.0

// Margins are the distances in inches from each page edge to the nearest
// character's bounding edge.
type Margins struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// ExtractMargins measures the margins of the first page only; typography is
// sampled document-wide but margins deliberately are not, matching the
// analyzer's historical behavior. A page with no characters yields all-zero
// margins, which a nonzero margin policy will fail. Errors are diagnostics;
// the zero value is always safe to evaluate.
func ExtractMargins(doc pdf.Document) (m Margins, err error) {
	if doc == nil {
		return Margins{}, fmt.Errorf("no document")
	}

	defer func() {
		if r := recover(); r != nil {
			m = Margins{}
			err = fmt.Errorf("margin extraction panic: %v", r)
		}
	}()

	page, err := doc.GetPage(0)
	if err != nil {
		return Margins{}, fmt.Errorf("failed to get first page: %w", err)
	}

	chars := page.GetObjects().Chars
	if len(chars) == 0 {
		return Margins{}, nil
	}

	minX0, maxX1 := chars[0].X0, chars[0].X1
	minTop, maxBottom := chars[0].Top, chars[0].Bottom
	for _, c := range chars[1:] {
		if c.X0 < minX0 {
			minX0 = c.X0
		}
		if c.X1 > maxX1 {
			maxX1 = c.X1
		}
		if c.Top < minTop {
			minTop = c.Top
		}
		if c.Bottom > maxBottom {
			maxBottom = c.Bottom
		}
	}

	return Margins{
		Left:   minX0 / PointsPerInch,
		Right:  (page.GetWidth() - maxX1) / PointsPerInch,
		Top:    minTop / PointsPerInch,
		Bottom: (page.GetHeight() - maxBottom) / PointsPerInch,
	}, nil
}
