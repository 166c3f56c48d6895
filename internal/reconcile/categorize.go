package reconcile

import (
	"strings"

	"github.com/jonathan/vendor-profiler/internal/types"
)

// Categorizer routes free-text integration entries into the fixed categories.
// It returns the matched names grouped by category and the entries that
// matched nothing.
type Categorizer interface {
	Categorize(entries []string) (matched map[string][]string, remaining []string)
}

// CatalogMatcher categorizes entries against the canonical catalog. A matched
// entry is replaced by the catalog's canonical-cased name.
type CatalogMatcher struct {
	Records []types.IntegrationRecord
}

// Categorize matches each entry against the catalog using, in priority order:
// case-insensitive exact match, case-insensitive substring match in either
// direction, and whitespace-stripped case-insensitive equality.
func (m CatalogMatcher) Categorize(entries []string) (map[string][]string, []string) {
	matched := make(map[string][]string)
	var remaining []string

	for _, entry := range entries {
		record, ok := m.match(entry)
		if ok {
			matched[record.Category] = append(matched[record.Category], record.Name)
		} else {
			remaining = append(remaining, entry)
		}
	}

	return matched, remaining
}

// match finds the first catalog record for an entry, trying each rule over
// the whole catalog before falling through to the next.
//
// The substring rule can false-positive on very short catalog names (a record
// named "AI" would match almost anything); this mirrors the catalog data
// being curated to multi-word product names.
func (m CatalogMatcher) match(entry string) (types.IntegrationRecord, bool) {
	lower := strings.ToLower(strings.TrimSpace(entry))
	if lower == "" {
		return types.IntegrationRecord{}, false
	}

	for _, record := range m.Records {
		if strings.ToLower(record.Name) == lower {
			return record, true
		}
	}

	for _, record := range m.Records {
		name := strings.ToLower(record.Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, lower) || strings.Contains(lower, name) {
			return record, true
		}
	}

	stripped := stripWhitespace(lower)
	for _, record := range m.Records {
		if stripWhitespace(strings.ToLower(record.Name)) == stripped {
			return record, true
		}
	}

	return types.IntegrationRecord{}, false
}

// KeywordMatcher is the fallback strategy used when the catalog cannot be
// read. Entries are matched against fixed per-category keyword lists by
// bidirectional substring containment; a matched entry keeps its own casing
// since no canonical name is available.
type KeywordMatcher struct{}

// Categorize routes entries using the static keyword table.
func (KeywordMatcher) Categorize(entries []string) (map[string][]string, []string) {
	matched := make(map[string][]string)
	var remaining []string

	for _, entry := range entries {
		category, ok := matchKeyword(entry)
		if ok {
			matched[category] = append(matched[category], strings.TrimSpace(entry))
		} else {
			remaining = append(remaining, entry)
		}
	}

	return matched, remaining
}

// matchKeyword returns the first category whose keyword list matches entry.
func matchKeyword(entry string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(entry))
	if lower == "" {
		return "", false
	}

	for _, category := range types.IntegrationCategories() {
		for _, keyword := range fallbackKeywords[category] {
			if strings.Contains(lower, keyword) || strings.Contains(keyword, lower) {
				return category, true
			}
		}
	}

	return "", false
}

// stripWhitespace removes all whitespace characters from s.
func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
