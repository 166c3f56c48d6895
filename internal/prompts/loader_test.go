package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		key       string
		wantError bool
	}{
		{name: "system prompt exists", filename: "sections.json", key: "system"},
		{name: "section prompt exists", filename: "sections.json", key: "company-overview"},
		{name: "missing key", filename: "sections.json", key: "nonexistent", wantError: true},
		{name: "missing file", filename: "nope.json", key: "system", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, prompt)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	template := "Title: {{.Title}}\nBody: {{.BodyText}}"
	result := Format(template, map[string]string{
		"Title":    "Vendor Inc",
		"BodyText": "We build software.",
	})

	assert.Equal(t, "Title: Vendor Inc\nBody: We build software.", result)
	assert.NotContains(t, result, "{{.")
}

func TestSectionPromptsComplete(t *testing.T) {
	keys, err := List("sections.json")
	require.NoError(t, err)

	for _, want := range []string{
		"system",
		"company-overview",
		"product-information",
		"integrations",
		"contact-information",
		"compliance-certifications",
	} {
		assert.Contains(t, keys, want)
	}

	// Section templates must carry the content placeholders.
	for _, key := range []string{"company-overview", "product-information", "integrations"} {
		prompt := MustGet("sections.json", key)
		assert.True(t, strings.Contains(prompt, "{{.BodyText}}"), "%s must reference the body text", key)
	}
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("sections.json", "nonexistent") })
}
