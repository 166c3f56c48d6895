package types

// Integration category names. These five categories are fixed: the catalog, the
// extraction prompts, and the reconciler all agree on them.
const (
	CategoryEHRs          = "EHRs"
	CategoryPayments      = "Payments"
	CategoryForms         = "Forms"
	CategoryCommunication = "Communication"
	CategoryAnalytics     = "Analytics"
)

// IntegrationCategories returns the fixed category names in canonical order.
func IntegrationCategories() []string {
	return []string{
		CategoryEHRs,
		CategoryPayments,
		CategoryForms,
		CategoryCommunication,
		CategoryAnalytics,
	}
}

// IntegrationRecord is one entry of the canonical integration catalog.
// Name carries the canonical casing used when re-categorizing free-text input.
type IntegrationRecord struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}
