package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status is the verdict vocabulary of a single compliance check
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// statusOf converts a boolean check outcome to a Status
func statusOf(ok bool) Status {
	if ok {
		return StatusPass
	}
	return StatusFail
}

// FormatResult holds the four formatting verdicts. Field names are part of
// the report contract and must not change.
type FormatResult struct {
	FileType   Status `json:"file_type"`
	FontSize   Status `json:"font_size"`
	FontFamily Status `json:"font_family"`
	Margin     Status `json:"margin"`
}

// SectionResult is the verdict for one section category
type SectionResult struct {
	Category  Category
	PageCount int
	Status    Status
}

// ContentResult holds per-category verdicts in category order
type ContentResult struct {
	Sections []SectionResult
}

// Section returns the result for a category, if present
func (c ContentResult) Section(category Category) (SectionResult, bool) {
	for _, s := range c.Sections {
		if s.Category == category {
			return s, true
		}
	}
	return SectionResult{}, false
}

// MarshalJSON serializes to the flat report shape the export machinery
// expects: a "<category>_pages" count followed by the "<category>" verdict,
// per category.
func (c ContentResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range c.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		pagesKey, err := json.Marshal(string(s.Category) + "_pages")
		if err != nil {
			return nil, err
		}
		verdictKey, err := json.Marshal(string(s.Category))
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%s:%d,%s:%q", pagesKey, s.PageCount, verdictKey, s.Status)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the terminal artifact of one analysis
type Result struct {
	Format  FormatResult  `json:"format"`
	Content ContentResult `json:"content"`
}

// AllPass reports whether every format and content check passed
func (r Result) AllPass() bool {
	if r.Format.FileType != StatusPass || r.Format.FontSize != StatusPass ||
		r.Format.FontFamily != StatusPass || r.Format.Margin != StatusPass {
		return false
	}
	for _, s := range r.Content.Sections {
		if s.Status != StatusPass {
			return false
		}
	}
	return true
}
