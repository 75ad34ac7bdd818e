// Package analyzer evaluates PDF documents against a compliance policy:
// typography, page margins, and per-section page budgets.
package analyzer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category identifies a topical document section detected via keyword
// matching, not structural markup.
type Category string

// Built-in section categories
const (
	CategoryTechnicalRequirements Category = "technical_requirements"
	CategoryBudget                Category = "budget"
	CategoryQualification         Category = "qualification"
)

// SectionRule configures detection and the page budget for one category.
// Patterns are case-insensitive regular expressions tried in order; the
// first match on a page claims that page for the category.
type SectionRule struct {
	Patterns []string `yaml:"patterns"`
	MaxPages int      `yaml:"max_pages"`
}

// Policy is the set of thresholds and limits a document is judged against.
// It is a plain value: copy it, modify the copy, and pass it to New. The
// analyzer never mutates it, so concurrent analyses with different policies
// cannot interfere.
//
// Tolerances are not validated; a negative tolerance is a caller bug.
type Policy struct {
	RequiredFontSize      int     `yaml:"required_font_size"`
	RequiredFontFamily    string  `yaml:"required_font_family"`
	RequiredMarginInches  float64 `yaml:"required_margin_inches"`
	FontSizeTolerance     int     `yaml:"font_size_tolerance"`
	MarginToleranceInches float64 `yaml:"margin_tolerance_inches"`

	Sections map[Category]SectionRule `yaml:"sections"`
}

// DefaultPolicy returns the standard submission policy: 12pt Times New
// Roman, 1-inch margins, and the default section page budgets.
func DefaultPolicy() Policy {
	return Policy{
		RequiredFontSize:      12,
		RequiredFontFamily:    "Times New Roman",
		RequiredMarginInches:  1.0,
		FontSizeTolerance:     1,
		MarginToleranceInches: 0.2,
		Sections: map[Category]SectionRule{
			CategoryTechnicalRequirements: {
				Patterns: []string{
					`technical\s+requirements?`,
					`technical\s+specifications?`,
					`system\s+requirements?`,
					`technical\s+details`,
				},
				MaxPages: 8,
			},
			CategoryBudget: {
				Patterns: []string{
					`budget`,
					`financial`,
					`cost`,
					`pricing`,
					`expenses?`,
				},
				MaxPages: 4,
			},
			CategoryQualification: {
				Patterns: []string{
					`qualifications?`,
					`credentials?`,
					`experience`,
					`expertise`,
					`competenc`,
				},
				MaxPages: 4,
			},
		},
	}
}

// LoadPolicy reads a YAML policy file and merges it over DefaultPolicy.
// Top-level fields present in the file override the default; a sections
// entry replaces that category's rule entirely, so an entry overriding only
// max_pages must restate its patterns.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("failed to read policy file: %w", err)
	}

	var override struct {
		RequiredFontSize      *int                     `yaml:"required_font_size"`
		RequiredFontFamily    *string                  `yaml:"required_font_family"`
		RequiredMarginInches  *float64                 `yaml:"required_margin_inches"`
		FontSizeTolerance     *int                     `yaml:"font_size_tolerance"`
		MarginToleranceInches *float64                 `yaml:"margin_tolerance_inches"`
		Sections              map[Category]SectionRule `yaml:"sections"`
	}
	if err := yaml.Unmarshal(data, &override); err != nil {
		return policy, fmt.Errorf("failed to parse policy file: %w", err)
	}

	if override.RequiredFontSize != nil {
		policy.RequiredFontSize = *override.RequiredFontSize
	}
	if override.RequiredFontFamily != nil {
		policy.RequiredFontFamily = *override.RequiredFontFamily
	}
	if override.RequiredMarginInches != nil {
		policy.RequiredMarginInches = *override.RequiredMarginInches
	}
	if override.FontSizeTolerance != nil {
		policy.FontSizeTolerance = *override.FontSizeTolerance
	}
	if override.MarginToleranceInches != nil {
		policy.MarginToleranceInches = *override.MarginToleranceInches
	}
	for category, rule := range override.Sections {
		policy.Sections[category] = rule
	}

	return policy, nil
}
