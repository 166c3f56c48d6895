// Package reconcile normalizes merged extraction output into a consistent
// vendor profile draft: it repairs legacy shapes, filters thin products, and
// re-categorizes free-text integration names against the canonical catalog
// (with a static keyword fallback when the catalog is unavailable).
package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/vendor-profiler/internal/types"
)

// MinProductOverviewLen is the minimum trimmed overview length for a product
// to survive filtering.
const MinProductOverviewLen = 50

// unnamedProduct is substituted for products missing a name.
const unnamedProduct = "Unnamed Product"

// deprecatedKeys are legacy fields removed once their data has been folded in.
var deprecatedKeys = []string{"integrationsRequired", "productName", "productOverview"}

// CatalogSource provides the canonical integration catalog. The read is best
// effort: a failure silently switches categorization to the keyword fallback.
type CatalogSource interface {
	ListIntegrations(ctx context.Context) ([]types.IntegrationRecord, error)
}

// Reconciler applies the post-extraction normalization pass.
type Reconciler struct {
	catalog CatalogSource
}

// New creates a Reconciler. catalog may be nil, which forces the keyword
// fallback for every run.
func New(catalog CatalogSource) *Reconciler {
	return &Reconciler{catalog: catalog}
}

// Reconcile normalizes a merged draft. The input is not mutated; the returned
// draft satisfies the profile invariants and reconciling it again is a no-op.
func (r *Reconciler) Reconcile(ctx context.Context, draft map[string]any) map[string]any {
	d := deepCopy(draft)

	migrateLegacyProduct(d)
	filterProducts(d)
	normalizeCategoryArrays(d)
	r.categorizeOtherIntegrations(ctx, d)
	normalizeOtherByCategory(d)

	for _, key := range deprecatedKeys {
		delete(d, key)
	}

	return d
}

// migrateLegacyProduct wraps the flat productName/productOverview pair into a
// one-element products list when no products list exists.
func migrateLegacyProduct(d map[string]any) {
	if _, ok := d["products"]; ok {
		return
	}

	name := strings.TrimSpace(asString(d["productName"]))
	overview := strings.TrimSpace(asString(d["productOverview"]))
	if name == "" && overview == "" {
		d["products"] = []any{}
		return
	}

	d["products"] = []any{
		map[string]any{"name": name, "overview": overview, "url": ""},
	}
}

// filterProducts drops products with overviews under MinProductOverviewLen
// chars (accepting "description" as an alias) and names the nameless.
func filterProducts(d map[string]any) {
	items, _ := d["products"].([]any)
	kept := make([]any, 0, len(items))

	for _, item := range items {
		product, ok := item.(map[string]any)
		if !ok {
			continue
		}

		overview := strings.TrimSpace(asString(product["overview"]))
		if overview == "" {
			overview = strings.TrimSpace(asString(product["description"]))
		}
		if len(overview) < MinProductOverviewLen {
			continue
		}

		name := strings.TrimSpace(asString(product["name"]))
		if name == "" {
			name = unnamedProduct
		}

		kept = append(kept, map[string]any{
			"name":     name,
			"overview": overview,
			"url":      strings.TrimSpace(asString(product["url"])),
		})
	}

	d["products"] = kept
}

// normalizeCategoryArrays coerces every category's value to an array of
// trimmed, non-empty strings, wrapping bare scalars into singleton arrays.
func normalizeCategoryArrays(d map[string]any) {
	categories, ok := d["integrationCategories"].(map[string]any)
	if !ok {
		categories = make(map[string]any)
		d["integrationCategories"] = categories
	}

	for _, category := range types.IntegrationCategories() {
		categories[category] = coerceStringList(categories[category])
	}
}

// categorizeOtherIntegrations splits the free-text otherIntegrations bucket
// and routes each entry through the active categorization strategy: the
// catalog matcher when the catalog read succeeds, the static keyword matcher
// when it fails. The two strategies are mutually exclusive per run.
func (r *Reconciler) categorizeOtherIntegrations(ctx context.Context, d map[string]any) {
	entries := splitEntries(coerceJoinedString(d["otherIntegrations"]))
	categories := d["integrationCategories"].(map[string]any)

	// Entries the extractor already categorized stay where they are.
	entries = dropAlreadyCategorized(entries, categories)

	if len(entries) == 0 {
		d["otherIntegrations"] = ""
		return
	}

	var matcher Categorizer
	if records, err := r.listCatalog(ctx); err == nil {
		matcher = CatalogMatcher{Records: records}
	} else {
		matcher = KeywordMatcher{}
	}

	matched, remaining := matcher.Categorize(entries)

	for category, names := range matched {
		list := coerceStringList(categories[category])
		for _, name := range names {
			if !containsFold(list, name) {
				list = append(list, name)
			}
		}
		categories[category] = list
	}

	d["otherIntegrations"] = strings.Join(remaining, ", ")
}

// listCatalog reads the canonical catalog, treating a nil source as a failure.
func (r *Reconciler) listCatalog(ctx context.Context) ([]types.IntegrationRecord, error) {
	if r.catalog == nil {
		return nil, fmt.Errorf("no catalog configured")
	}
	return r.catalog.ListIntegrations(ctx)
}

// normalizeOtherByCategory coerces every category's value to a single trimmed
// string, joining arrays with ", " and stringifying scalars.
func normalizeOtherByCategory(d map[string]any) {
	other, ok := d["otherIntegrationsByCategory"].(map[string]any)
	if !ok {
		other = make(map[string]any)
		d["otherIntegrationsByCategory"] = other
	}

	for _, category := range types.IntegrationCategories() {
		other[category] = coerceJoinedString(other[category])
	}
}

// dropAlreadyCategorized removes entries already present in a category list,
// preserving the invariant that a name never appears in both a category and
// the leftover bucket.
func dropAlreadyCategorized(entries []string, categories map[string]any) []string {
	kept := entries[:0]
	for _, entry := range entries {
		found := false
		for _, category := range types.IntegrationCategories() {
			if containsFold(coerceStringList(categories[category]), entry) {
				found = true
				break
			}
		}
		if !found {
			kept = append(kept, entry)
		}
	}
	return kept
}

// splitEntries splits a comma-separated string into trimmed non-empty entries.
func splitEntries(s string) []string {
	var entries []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			entries = append(entries, part)
		}
	}
	return entries
}

// coerceStringList turns a value into a slice of trimmed non-empty strings.
func coerceStringList(v any) []string {
	switch value := v.(type) {
	case nil:
		return []string{}
	case []string:
		return trimNonEmpty(value)
	case []any:
		items := make([]string, 0, len(value))
		for _, item := range value {
			items = append(items, asString(item))
		}
		return trimNonEmpty(items)
	default:
		// A bare scalar becomes a singleton array.
		return trimNonEmpty([]string{asString(value)})
	}
}

// coerceJoinedString turns a value into a single trimmed string, joining
// arrays with ", ".
func coerceJoinedString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case []string:
		return strings.Join(trimNonEmpty(value), ", ")
	case []any:
		items := make([]string, 0, len(value))
		for _, item := range value {
			items = append(items, asString(item))
		}
		return strings.Join(trimNonEmpty(items), ", ")
	default:
		return strings.TrimSpace(asString(value))
	}
}

// asString stringifies a scalar value; maps and slices yield "".
func asString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		// JSON numbers arrive as float64; render integers without a decimal.
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%v", value)
	case bool:
		return fmt.Sprintf("%v", value)
	case int:
		return fmt.Sprintf("%d", value)
	default:
		return ""
	}
}

// trimNonEmpty trims entries and drops the empty ones.
func trimNonEmpty(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// containsFold reports whether list contains s, comparing case-insensitively.
func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// deepCopy clones a draft through a JSON round trip so reconciliation never
// mutates its input.
func deepCopy(d map[string]any) map[string]any {
	if d == nil {
		return map[string]any{}
	}
	data, err := json.Marshal(d)
	if err != nil {
		return map[string]any{}
	}
	var clone map[string]any
	if err := json.Unmarshal(data, &clone); err != nil {
		return map[string]any{}
	}
	return clone
}
