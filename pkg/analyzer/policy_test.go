package analyzer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdfcomply-golang/pkg/analyzer"
)

func TestDefaultPolicy(t *testing.T) {
	policy := analyzer.DefaultPolicy()

	assert.Equal(t, 12, policy.RequiredFontSize)
	assert.Equal(t, "Times New Roman", policy.RequiredFontFamily)
	assert.Equal(t, 1.0, policy.RequiredMarginInches)
	assert.Equal(t, 1, policy.FontSizeTolerance)
	assert.Equal(t, 0.2, policy.MarginToleranceInches)

	require.Len(t, policy.Sections, 3)
	assert.Equal(t, 8, policy.Sections[analyzer.CategoryTechnicalRequirements].MaxPages)
	assert.Equal(t, 4, policy.Sections[analyzer.CategoryBudget].MaxPages)
	assert.Equal(t, 4, policy.Sections[analyzer.CategoryQualification].MaxPages)

	for category, rule := range policy.Sections {
		assert.NotEmpty(t, rule.Patterns, "category %s has no patterns", category)
	}
}

func TestLoadPolicy_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `
required_font_size: 11
margin_tolerance_inches: 0.5
sections:
  appendix:
    patterns: ["appendix", "annex"]
    max_pages: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	policy, err := analyzer.LoadPolicy(path)
	require.NoError(t, err)

	// overridden fields
	assert.Equal(t, 11, policy.RequiredFontSize)
	assert.Equal(t, 0.5, policy.MarginToleranceInches)

	// untouched fields keep their defaults
	assert.Equal(t, "Times New Roman", policy.RequiredFontFamily)
	assert.Equal(t, 1.0, policy.RequiredMarginInches)
	assert.Equal(t, 1, policy.FontSizeTolerance)

	// the new section is added, the built-ins survive
	require.Len(t, policy.Sections, 4)
	appendix := policy.Sections[analyzer.Category("appendix")]
	assert.Equal(t, 2, appendix.MaxPages)
	assert.Equal(t, []string{"appendix", "annex"}, appendix.Patterns)
	assert.Equal(t, 4, policy.Sections[analyzer.CategoryBudget].MaxPages)
}

func TestLoadPolicy_MissingFile(t *testing.T) {
	_, err := analyzer.LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPolicy_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("required_font_size: [broken"), 0o644))

	_, err := analyzer.LoadPolicy(path)
	assert.Error(t, err)
}
