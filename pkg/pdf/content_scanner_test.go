package pdf

import (
	"strings"
	"testing"
)

func scan(content string, fonts map[string]*pageFont) *page {
	p := newPage(1)
	scanContent([]byte(content), fonts, p)
	return p
}

func TestScanContent_SimpleText(t *testing.T) {
	p := scan("BT /F1 12 Tf 72 700 Td (Hello World) Tj ET",
		map[string]*pageFont{"F1": {baseFont: "Times-Roman"}})

	if got := p.ExtractText(); got != "Hello World" {
		t.Errorf("text = %q, want %q", got, "Hello World")
	}

	runs := p.GetObjects().Runs
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Font != "Times-Roman" {
		t.Errorf("font = %q, want Times-Roman", runs[0].Font)
	}
	if runs[0].FontSize != 12 {
		t.Errorf("font size = %v, want 12", runs[0].FontSize)
	}
}

func TestScanContent_UnknownFontResourceKeepsName(t *testing.T) {
	p := scan("BT /F9 10 Tf 0 0 Td (x) Tj ET", nil)

	runs := p.GetObjects().Runs
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Font != "F9" {
		t.Errorf("font = %q, want the resource name F9", runs[0].Font)
	}
}

func TestScanContent_TJArray(t *testing.T) {
	p := scan("BT /F1 12 Tf 72 700 Td [(Hel) -20 (lo)] TJ ET", nil)

	if got := p.ExtractText(); got != "Hello" {
		t.Errorf("text = %q, want %q", got, "Hello")
	}
	// the kerning adjustment produced two runs
	if runs := p.GetObjects().Runs; len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestScanContent_NextLineOperators(t *testing.T) {
	p := scan("BT /F1 12 Tf 14 TL 72 700 Td (one) Tj T* (two) Tj (three) ' ET", nil)

	if got := p.ExtractText(); got != "onetwothree" {
		t.Errorf("text = %q, want %q", got, "onetwothree")
	}

	chars := p.GetObjects().Chars
	if len(chars) == 0 {
		t.Fatal("expected chars")
	}
	// each T*/' moved the baseline down by the leading, so later lines sit
	// lower on the page (larger Top in top-origin coordinates)
	first, last := chars[0], chars[len(chars)-1]
	if !(first.Top < last.Top) {
		t.Errorf("expected line 1 above line 3: first.Top=%v last.Top=%v", first.Top, last.Top)
	}
}

func TestScanContent_StringEscapesAndHex(t *testing.T) {
	p := scan(`BT /F1 12 Tf (a\(b\)c\\d) Tj <48656C6C6F> Tj ET`, nil)

	if got := p.ExtractText(); got != `a(b)c\d`+"Hello" {
		t.Errorf("text = %q", got)
	}
}

func TestScanContent_OctalEscape(t *testing.T) {
	p := scan(`BT /F1 12 Tf (\101\102) Tj ET`, nil)

	if got := p.ExtractText(); got != "AB" {
		t.Errorf("text = %q, want AB", got)
	}
}

func TestScanContent_IgnoresInlineDictsAndImages(t *testing.T) {
	content := strings.Join([]string{
		"/GS1 << /Type /ExtGState /CA 0.5 >> gs",
		"BI /W 2 /H 2 /BPC 8 ID \x00\x01\x02\x03 EI",
		"BT /F1 12 Tf (visible) Tj ET",
	}, "\n")

	p := scan(content, nil)
	if got := p.ExtractText(); got != "visible" {
		t.Errorf("text = %q, want %q", got, "visible")
	}
}

func TestScanContent_MalformedStreamDoesNotPanic(t *testing.T) {
	for _, content := range []string{
		"",
		"BT",
		"(unterminated",
		"<< /never closed",
		"] ) >> } BT (ok) Tj",
		"BT /F1 Tf (missing size) Tj ET",
	} {
		p := newPage(1)
		scanContent([]byte(content), nil, p) // must not panic
	}
}

func TestScanContent_CIDTextDecodesThroughCMap(t *testing.T) {
	cmapData := `
/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 beginbfrange
<0001> <001A> <0061>
endbfrange
endcmap
end
end
`
	fonts := map[string]*pageFont{
		"F1": {baseFont: "NotoSansKR-Regular", toUnicode: parseToUnicodeCMap([]byte(cmapData))},
	}

	// codes 2,21,4,7,5,20 spell "budget" through the a-z range above
	p := scan("BT /F1 12 Tf 72 700 Td <000200150004000700050014> Tj ET", fonts)

	if got := p.ExtractText(); got != "budget" {
		t.Errorf("text = %q, want %q", got, "budget")
	}
	runs := p.GetObjects().Runs
	if len(runs) != 1 || runs[0].Font != "NotoSansKR-Regular" {
		t.Fatalf("runs = %+v, want one NotoSansKR-Regular run", runs)
	}
}

func TestScanContent_NoCMapFallsBackToBytes(t *testing.T) {
	p := scan("BT /F1 12 Tf (plain) Tj ET",
		map[string]*pageFont{"F1": {baseFont: "Times-Roman"}})

	if got := p.ExtractText(); got != "plain" {
		t.Errorf("text = %q, want %q", got, "plain")
	}
}

func TestScanContent_TmPositionsText(t *testing.T) {
	p := scan("BT /F1 12 Tf 1 0 0 1 100 650 Tm (x) Tj ET", nil)

	chars := p.GetObjects().Chars
	if len(chars) != 1 {
		t.Fatalf("expected 1 char, got %d", len(chars))
	}
	if chars[0].X0 != 100 {
		t.Errorf("X0 = %v, want 100", chars[0].X0)
	}
	// top-origin: 792 - (650 + 12*0.8) = 132.4
	if got := chars[0].Top; got < 132.3 || got > 132.5 {
		t.Errorf("Top = %v, want ~132.4", got)
	}
}
