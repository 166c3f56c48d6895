package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/vendor-profiler/internal/types"
)

func TestPrintWebsiteContent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWebsiteContent(&types.WebsiteContent{
		URL:               "https://vendor.example.com",
		Title:             "Vendor Inc",
		MetaDescription:   "Practice management software",
		BodyText:          "body text",
		CandidateSections: []string{"About us", "Integrations"},
	})

	out := buf.String()
	assert.Contains(t, out, "WEBSITE CONTENT")
	assert.Contains(t, out, "https://vendor.example.com")
	assert.Contains(t, out, "Vendor Inc")
	assert.Contains(t, out, "2 candidates")
}

func TestPrintWebsiteContent_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintWebsiteContent(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSectionResult(t *testing.T) {
	tests := []struct {
		name         string
		usedDefaults bool
		wantStatus   string
	}{
		{name: "extracted", usedDefaults: false, wantStatus: "Status: extracted"},
		{name: "defaulted", usedDefaults: true, wantStatus: "Status: fell back to empty defaults"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinter(&buf)

			p.PrintSectionResult("Company Overview", map[string]any{"companyName": "Vendor Inc"}, tt.usedDefaults)

			out := buf.String()
			assert.Contains(t, out, "COMPANY OVERVIEW")
			assert.Contains(t, out, tt.wantStatus)
			assert.Contains(t, out, "companyName")
		})
	}
}

func TestPrintVendorProfile(t *testing.T) {
	// Reconciliation produces []string category lists in process; a JSON
	// round trip produces []any. Both must print.
	tests := []struct {
		name       string
		categories map[string]any
	}{
		{
			name: "in-process string lists",
			categories: map[string]any{
				types.CategoryPayments: []string{"Stripe"},
				types.CategoryEHRs:     []string{"Epic", "athenahealth"},
			},
		},
		{
			name: "json-decoded lists",
			categories: map[string]any{
				types.CategoryPayments: []any{"Stripe"},
				types.CategoryEHRs:     []any{"Epic", "athenahealth"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinter(&buf)

			p.PrintVendorProfile(map[string]any{
				"companyName":           "Vendor Inc",
				"website":               "https://vendor.example.com",
				"products":              []any{map[string]any{"name": "Scheduler"}},
				"integrationCategories": tt.categories,
				"otherIntegrations":     "Mystery Vendor",
			})

			out := buf.String()
			assert.Contains(t, out, "VENDOR PROFILE")
			assert.Contains(t, out, "Company:  Vendor Inc")
			assert.Contains(t, out, "Scheduler")
			assert.Contains(t, out, "Payments: Stripe")
			assert.Contains(t, out, "EHRs: Epic, athenahealth")
			assert.Contains(t, out, "Other: Mystery Vendor")
		})
	}
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringList([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, stringList([]any{"a", "b"}))
	assert.Equal(t, []string{"a"}, stringList([]any{"a", 42}))
	assert.Nil(t, stringList("a"))
	assert.Nil(t, stringList(nil))
}
