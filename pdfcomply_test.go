package pdfcomply_test

import (
	"strings"
	"testing"

	pdfcomply "github.com/pyhub-apps/pdfcomply-golang"
	"github.com/pyhub-apps/pdfcomply-golang/pkg/pdftest"
)

// compliantPage lays out one page that satisfies the default policy: 12pt
// Times-Roman with a text block sitting one inch from every page edge. Glyphs
// are 6pt wide (Widths 500 at 12pt), so 78 of them span 612-2*72 points, the
// top line's baseline puts the glyph tops at 72pt from the page top, and the
// bottom line's glyph bottoms end 72pt above the page bottom.
func compliantPage(heading string) pdftest.Page {
	return pdftest.Page{
		Texts: []pdftest.Text{
			{X: 72, Y: 710.4, Size: 12, Value: pad(heading, 78)},
			{X: 72, Y: 74.4, Size: 12, Value: pad("end of page", 78)},
		},
	}
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(".", n-len(s))
}

func TestIsValidPDF(t *testing.T) {
	if pdfcomply.IsValidPDF([]byte("not a pdf")) {
		t.Error("garbage bytes reported as valid")
	}

	data := pdftest.BuildPDF(pdftest.Page{Texts: []pdftest.Text{{X: 72, Y: 700, Value: "ok"}}})
	if !pdfcomply.IsValidPDF(data) {
		t.Error("built PDF reported as invalid")
	}
}

func TestAnalyze_EndToEndCompliant(t *testing.T) {
	data := pdftest.BuildPDF(
		compliantPage("Technical requirements"),
		compliantPage("Budget"),
		compliantPage("Qualifications"),
	)

	result := pdfcomply.Analyze(data, pdfcomply.DefaultPolicy(), nil)

	if result.Format.FileType != pdfcomply.StatusPass {
		t.Errorf("file_type = %s, want pass", result.Format.FileType)
	}
	if result.Format.FontSize != pdfcomply.StatusPass {
		t.Errorf("font_size = %s, want pass", result.Format.FontSize)
	}
	if result.Format.FontFamily != pdfcomply.StatusPass {
		t.Errorf("font_family = %s, want pass", result.Format.FontFamily)
	}
	if result.Format.Margin != pdfcomply.StatusPass {
		t.Errorf("margin = %s, want pass", result.Format.Margin)
	}

	for _, want := range []struct {
		category pdfcomply.Category
		pages    int
	}{
		{pdfcomply.CategoryTechnicalRequirements, 1},
		{pdfcomply.CategoryBudget, 1},
		{pdfcomply.CategoryQualification, 1},
	} {
		section, ok := result.Content.Section(want.category)
		if !ok {
			t.Fatalf("category %s missing from result", want.category)
		}
		if section.PageCount != want.pages {
			t.Errorf("%s pages = %d, want %d", want.category, section.PageCount, want.pages)
		}
		if section.Status != pdfcomply.StatusPass {
			t.Errorf("%s = %s, want pass", want.category, section.Status)
		}
	}

	if !result.AllPass() {
		t.Error("expected every check to pass")
	}
}

func TestAnalyze_EndToEndNonCompliantTypography(t *testing.T) {
	// 9pt Helvetica fails both typography checks
	data := pdftest.BuildPDF(pdftest.Page{
		Font:  "Helvetica",
		Texts: []pdftest.Text{{X: 72, Y: 700, Size: 9, Value: "tiny print"}},
	})

	result := pdfcomply.Analyze(data, pdfcomply.DefaultPolicy(), nil)

	if result.Format.FileType != pdfcomply.StatusPass {
		t.Errorf("file_type = %s, want pass", result.Format.FileType)
	}
	if result.Format.FontSize != pdfcomply.StatusFail {
		t.Errorf("font_size = %s, want fail", result.Format.FontSize)
	}
	if result.Format.FontFamily != pdfcomply.StatusFail {
		t.Errorf("font_family = %s, want fail", result.Format.FontFamily)
	}
	if result.AllPass() {
		t.Error("expected a failing result")
	}
}

func TestAnalyze_CorruptSecondPageKeepsFirstPageEvidence(t *testing.T) {
	// a later page whose content stream cannot be decoded must not erase the
	// typography and margin evidence extracted from the healthy first page
	pages := []pdftest.Page{
		compliantPage("Technical requirements"),
		{
			Filter: "BogusDecode",
			Texts:  []pdftest.Text{{X: 72, Y: 700, Size: 12, Value: "unreachable"}},
		},
	}
	data := pdftest.BuildPDF(pages...)

	result := pdfcomply.Analyze(data, pdfcomply.DefaultPolicy(), nil)

	if result.Format.FileType != pdfcomply.StatusPass {
		t.Errorf("file_type = %s, want pass", result.Format.FileType)
	}
	if result.Format.FontSize != pdfcomply.StatusPass {
		t.Errorf("font_size = %s, want pass", result.Format.FontSize)
	}
	if result.Format.FontFamily != pdfcomply.StatusPass {
		t.Errorf("font_family = %s, want pass", result.Format.FontFamily)
	}
	if result.Format.Margin != pdfcomply.StatusPass {
		t.Errorf("margin = %s, want pass", result.Format.Margin)
	}
}

func TestAnalyze_GarbageBytes(t *testing.T) {
	result := pdfcomply.Analyze([]byte("garbage"), pdfcomply.DefaultPolicy(), nil)

	if result.Format.FileType != pdfcomply.StatusFail {
		t.Errorf("file_type = %s, want fail", result.Format.FileType)
	}
	if result.AllPass() {
		t.Error("expected a failing result")
	}
}
