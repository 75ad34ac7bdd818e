package analyzer

import (
	"log/slog"
	"math"
	"strings"

	"github.com/pyhub-apps/pdfcomply-golang/pkg/pdf"
)

// Analyzer evaluates documents against one policy. It holds no per-document
// state, so a single Analyzer is safe for concurrent use.
type Analyzer struct {
	policy   Policy
	matchers []sectionMatcher
	logger   *slog.Logger
}

// New creates an Analyzer for the given policy. Section patterns are
// compiled once here. A nil logger falls back to slog.Default.
func New(policy Policy, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		policy:   policy,
		matchers: compileRules(policy.Sections, logger),
		logger:   logger,
	}
}

// Policy returns the policy the analyzer was built with
func (a *Analyzer) Policy() Policy {
	return a.policy
}

// Analyze runs the full compliance analysis on raw PDF bytes. It never
// fails: unparsable input produces a result with every format check failed
// and zero section matches.
func (a *Analyzer) Analyze(data []byte) Result {
	doc, err := pdf.Open(data)
	if err != nil {
		a.logger.Warn("document is not a parseable PDF", slog.String("error", err.Error()))
		// invalid file: all format checks fail, no extraction is attempted
		return Result{
			Format:  FormatResult{FileType: StatusFail, FontSize: StatusFail, FontFamily: StatusFail, Margin: StatusFail},
			Content: a.evaluateContent(detectSections(nil, a.matchers)),
		}
	}
	defer doc.Close()

	return a.AnalyzeDocument(doc)
}

// AnalyzeDocument runs the analysis on an already-opened document
func (a *Analyzer) AnalyzeDocument(doc pdf.Document) Result {
	return Result{
		Format:  a.evaluateFormat(doc),
		Content: a.evaluateContent(detectSections(doc, a.matchers)),
	}
}

// evaluateFormat checks typography and margins. The checks are independent:
// one failing never short-circuits the others.
func (a *Analyzer) evaluateFormat(doc pdf.Document) FormatResult {
	fonts, err := ExtractFontInfo(doc)
	if err != nil {
		a.logger.Warn("font extraction degraded", slog.String("error", err.Error()))
	}

	margins, err := ExtractMargins(doc)
	if err != nil {
		a.logger.Warn("margin extraction degraded", slog.String("error", err.Error()))
	}

	return FormatResult{
		FileType:   StatusPass,
		FontSize:   statusOf(a.checkFontSize(fonts)),
		FontFamily: statusOf(a.checkFontFamily(fonts)),
		Margin:     statusOf(a.checkMargins(margins)),
	}
}

// checkFontSize passes when at least one observed size lies within the
// tolerance of the required size, inclusive.
func (a *Analyzer) checkFontSize(fonts FontInfo) bool {
	for size := range fonts.Sizes {
		if abs(size-a.policy.RequiredFontSize) <= a.policy.FontSizeTolerance {
			return true
		}
	}
	return false
}

// checkFontFamily passes when at least one observed family name contains,
// case-insensitively, an accepted variant of the required family.
func (a *Analyzer) checkFontFamily(fonts FontInfo) bool {
	variants := familyVariants(a.policy.RequiredFontFamily)
	for family := range fonts.Families {
		lower := strings.ToLower(family)
		for _, variant := range variants {
			if strings.Contains(lower, strings.ToLower(variant)) {
				return true
			}
		}
	}
	return false
}

// timesVariants are the name spellings PDF producers use for Times New Roman
var timesVariants = []string{"Times", "Times-Roman", "TimesNewRoman", "Times New Roman"}

// familyVariants returns the accepted name variants for a required family.
// The Times family has a fixed variant table; any other family accepts its
// own name and the name with spaces squashed (the common embedded-font form).
func familyVariants(required string) []string {
	squashed := strings.ReplaceAll(required, " ", "")
	if strings.EqualFold(squashed, "TimesNewRoman") || strings.EqualFold(squashed, "Times") || strings.EqualFold(squashed, "Times-Roman") {
		return timesVariants
	}
	if squashed != required {
		return []string{required, squashed}
	}
	return []string{required}
}

// checkMargins passes only when all four margins are within tolerance; a
// single non-compliant side fails the whole check.
func (a *Analyzer) checkMargins(m Margins) bool {
	for _, margin := range []float64{m.Left, m.Right, m.Top, m.Bottom} {
		if math.Abs(margin-a.policy.RequiredMarginInches) > a.policy.MarginToleranceInches {
			return false
		}
	}
	return true
}

// evaluateContent turns section matches into per-category verdicts. The raw
// observed page count is always reported alongside the verdict.
func (a *Analyzer) evaluateContent(matches SectionMatches) ContentResult {
	result := ContentResult{Sections: make([]SectionResult, 0, len(a.matchers))}
	for _, m := range a.matchers {
		count := len(matches[m.category])
		result.Sections = append(result.Sections, SectionResult{
			Category:  m.category,
			PageCount: count,
			Status:    statusOf(count <= m.maxPages),
		})
	}
	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
