// Package pdfcomply analyzes PDF documents for compliance with formatting
// and content rules: font size and family, page margins, and per-section
// page budgets.
package pdfcomply

import (
	"log/slog"

	"github.com/pyhub-apps/pdfcomply-golang/pkg/analyzer"
	"github.com/pyhub-apps/pdfcomply-golang/pkg/pdf"
)

// Re-export types from the analyzer and pdf packages for the public API
type (
	Document       = pdf.Document
	Page           = pdf.Page
	TextRun        = pdf.TextRun
	CharObject     = pdf.CharObject
	BoundingBox    = pdf.BoundingBox
	Analyzer       = analyzer.Analyzer
	Policy         = analyzer.Policy
	SectionRule    = analyzer.SectionRule
	Category       = analyzer.Category
	Result         = analyzer.Result
	FormatResult   = analyzer.FormatResult
	ContentResult  = analyzer.ContentResult
	SectionResult  = analyzer.SectionResult
	SectionMatches = analyzer.SectionMatches
	FontInfo       = analyzer.FontInfo
	Margins        = analyzer.Margins
	Status         = analyzer.Status
)

// Re-export constants and constructors
const (
	StatusPass = analyzer.StatusPass
	StatusFail = analyzer.StatusFail

	CategoryTechnicalRequirements = analyzer.CategoryTechnicalRequirements
	CategoryBudget                = analyzer.CategoryBudget
	CategoryQualification         = analyzer.CategoryQualification
)

var (
	DefaultPolicy = analyzer.DefaultPolicy
	LoadPolicy    = analyzer.LoadPolicy
	NewAnalyzer   = analyzer.New
)

// Open parses PDF bytes, trying each parser backend until one succeeds
func Open(data []byte) (Document, error) {
	return pdf.Open(data)
}

// IsValidPDF reports whether the bytes are a structurally parseable PDF
// with at least one page
func IsValidPDF(data []byte) bool {
	doc, err := pdf.Open(data)
	if err != nil {
		return false
	}
	doc.Close()
	return true
}

// Analyze runs one compliance analysis of the document bytes against the
// policy. It is a pure function of (bytes, policy) and safe to call
// concurrently.
func Analyze(data []byte, policy Policy, logger *slog.Logger) Result {
	return analyzer.New(policy, logger).Analyze(data)
}
