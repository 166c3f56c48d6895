package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/vendor-profiler/internal/types"
)

func TestCatalogMatcher_RulePriority(t *testing.T) {
	// "Epic Systems" both substring-matches "Epic" and whitespace-strips to
	// nothing useful; the catalog order below makes rule precedence visible.
	matcher := CatalogMatcher{Records: []types.IntegrationRecord{
		{Name: "Epic Systems Integration", Category: types.CategoryAnalytics},
		{Name: "Epic", Category: types.CategoryEHRs},
		{Name: "athenahealth", Category: types.CategoryEHRs},
	}}

	tests := []struct {
		name         string
		entry        string
		wantName     string
		wantCategory string
		wantMatch    bool
	}{
		{
			// An exact match wins even when an earlier record would match by
			// substring.
			name:         "exact match beats substring",
			entry:        "epic",
			wantName:     "Epic",
			wantCategory: types.CategoryEHRs,
			wantMatch:    true,
		},
		{
			name:         "substring match scans in catalog order",
			entry:        "Epic Systems",
			wantName:     "Epic Systems Integration",
			wantCategory: types.CategoryAnalytics,
			wantMatch:    true,
		},
		{
			name:         "whitespace-stripped equality is the last resort",
			entry:        "Athena Health",
			wantName:     "athenahealth",
			wantCategory: types.CategoryEHRs,
			wantMatch:    true,
		},
		{
			name:      "no rule matches",
			entry:     "Obscure Custom Tool",
			wantMatch: false,
		},
		{
			name:      "blank entry never matches",
			entry:     "   ",
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, ok := matcher.match(tt.entry)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantName, record.Name)
				assert.Equal(t, tt.wantCategory, record.Category)
			}
		})
	}
}

func TestCatalogMatcher_Categorize(t *testing.T) {
	matcher := CatalogMatcher{Records: []types.IntegrationRecord{
		{Name: "Stripe", Category: types.CategoryPayments},
		{Name: "Twilio", Category: types.CategoryCommunication},
	}}

	matched, remaining := matcher.Categorize([]string{"stripe", "Twilio", "Nothing Known"})

	assert.Equal(t, []string{"Stripe"}, matched[types.CategoryPayments])
	assert.Equal(t, []string{"Twilio"}, matched[types.CategoryCommunication])
	assert.Equal(t, []string{"Nothing Known"}, remaining)
}

func TestKeywordMatcher_Categorize(t *testing.T) {
	tests := []struct {
		name         string
		entry        string
		wantCategory string
		wantMatch    bool
	}{
		{name: "payment vendor", entry: "Stripe", wantCategory: types.CategoryPayments, wantMatch: true},
		{name: "EHR vendor inside a longer phrase", entry: "Epic Systems", wantCategory: types.CategoryEHRs, wantMatch: true},
		{name: "communication keyword", entry: "Twilio SMS", wantCategory: types.CategoryCommunication, wantMatch: true},
		{name: "analytics keyword", entry: "Google Analytics 4", wantCategory: types.CategoryAnalytics, wantMatch: true},
		{name: "unknown vendor", entry: "Mystery Vendor", wantMatch: false},
	}

	matcher := KeywordMatcher{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, remaining := matcher.Categorize([]string{tt.entry})
			if tt.wantMatch {
				assert.Equal(t, []string{tt.entry}, matched[tt.wantCategory])
				assert.Empty(t, remaining)
			} else {
				assert.Empty(t, matched)
				assert.Equal(t, []string{tt.entry}, remaining)
			}
		})
	}
}

func TestStripWhitespace(t *testing.T) {
	assert.Equal(t, "AthenaHealth", stripWhitespace("Athena  Health"))
	assert.Equal(t, "abc", stripWhitespace(" a\tb\nc "))
	assert.Equal(t, "", stripWhitespace("   "))
}
