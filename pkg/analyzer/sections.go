package analyzer

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/pyhub-apps/pdfcomply-golang/pkg/pdf"
)

// SectionMatches maps each category to the 1-indexed page numbers where any
// of its patterns matched, ascending and duplicate-free.
type SectionMatches map[Category][]int

// sectionMatcher is a compiled SectionRule
type sectionMatcher struct {
	category Category
	patterns []*regexp.Regexp
	maxPages int
}

// compileRules compiles section rules into matchers, sorted by category so
// detection and reporting order is deterministic. Patterns that do not
// compile are skipped with a diagnostic.
func compileRules(rules map[Category]SectionRule, logger *slog.Logger) []sectionMatcher {
	matchers := make([]sectionMatcher, 0, len(rules))
	for category, rule := range rules {
		m := sectionMatcher{category: category, maxPages: rule.MaxPages}
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				logger.Warn("skipping invalid section pattern",
					slog.String("category", string(category)),
					slog.String("pattern", pattern),
					slog.String("error", err.Error()))
				continue
			}
			m.patterns = append(m.patterns, re)
		}
		matchers = append(matchers, m)
	}
	sort.Slice(matchers, func(i, j int) bool {
		return matchers[i].category < matchers[j].category
	})
	return matchers
}

// DetectSections scans every page's text for the rules' keyword patterns and
// records, per category, the pages where a match occurred. Matching is
// permissive substring/regex search so morphological variants still hit.
func DetectSections(doc pdf.Document, rules map[Category]SectionRule) SectionMatches {
	return detectSections(doc, compileRules(rules, slog.Default()))
}

func detectSections(doc pdf.Document, matchers []sectionMatcher) SectionMatches {
	matches := SectionMatches{}
	for _, m := range matchers {
		matches[m.category] = []int{}
	}
	if doc == nil {
		return matches
	}

	for _, page := range doc.GetPages() {
		text := strings.ToLower(pageText(page))
		if text == "" {
			continue
		}

		for _, m := range matchers {
			// first pattern hit claims the page; further patterns for
			// the same category must not double-count it
			for _, re := range m.patterns {
				if re.MatchString(text) {
					matches[m.category] = appendPage(matches[m.category], page.GetPageNumber())
					break
				}
			}
		}
	}

	return matches
}

// appendPage adds a page number unless it is already recorded. Pages arrive
// in ascending traversal order, so the list stays sorted.
func appendPage(pages []int, page int) []int {
	for _, p := range pages {
		if p == page {
			return pages
		}
	}
	return append(pages, page)
}

// pageText extracts a page's text, degrading to empty on a panicking backend
func pageText(page pdf.Page) (text string) {
	defer func() { recover() }()
	return page.ExtractText()
}
