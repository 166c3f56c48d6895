// Package extraction runs per-section LLM extraction over retrieved website
// content. Each of the five sections is extracted independently; a failed
// extraction degrades that section to its fixed empty default instead of
// failing the pipeline.
package extraction

import "github.com/jonathan/vendor-profiler/internal/types"

// SectionKind identifies one of the five independent facets of a vendor profile.
type SectionKind string

// The five section kinds, extracted and merged in this order.
const (
	SectionCompanyOverview          SectionKind = "companyOverview"
	SectionProductInformation       SectionKind = "productInformation"
	SectionIntegrations             SectionKind = "integrations"
	SectionContactInformation       SectionKind = "contactInformation"
	SectionComplianceCertifications SectionKind = "complianceCertifications"
)

// Sections returns all section kinds in their fixed merge order.
func Sections() []SectionKind {
	return []SectionKind{
		SectionCompanyOverview,
		SectionProductInformation,
		SectionIntegrations,
		SectionContactInformation,
		SectionComplianceCertifications,
	}
}

// DisplayName returns the human-readable name used in progress events.
func (k SectionKind) DisplayName() string {
	switch k {
	case SectionCompanyOverview:
		return "Company Overview"
	case SectionProductInformation:
		return "Product Information"
	case SectionIntegrations:
		return "Integrations"
	case SectionContactInformation:
		return "Contact Information"
	case SectionComplianceCertifications:
		return "Compliance Certifications"
	}
	return string(k)
}

// promptKey returns the key of this section's template in sections.json.
func (k SectionKind) promptKey() string {
	switch k {
	case SectionCompanyOverview:
		return "company-overview"
	case SectionProductInformation:
		return "product-information"
	case SectionIntegrations:
		return "integrations"
	case SectionContactInformation:
		return "contact-information"
	case SectionComplianceCertifications:
		return "compliance-certifications"
	}
	return string(k)
}

// EmptyDefault returns the fixed empty object substituted when extraction of
// the given section fails. Each call returns a fresh copy; callers may mutate
// the result freely.
func EmptyDefault(kind SectionKind) map[string]any {
	switch kind {
	case SectionCompanyOverview:
		return map[string]any{
			"companyName":      "",
			"companyType":      "",
			"companyTypeOther": "",
			"location": map[string]any{
				"state":        "",
				"country":      "United States",
				"countryOther": "",
			},
			"website": "",
			"address": "",
		}
	case SectionProductInformation:
		return map[string]any{
			"products": []any{},
		}
	case SectionIntegrations:
		categories := make(map[string]any)
		otherByCategory := make(map[string]any)
		for _, category := range types.IntegrationCategories() {
			categories[category] = []any{}
			otherByCategory[category] = ""
		}
		return map[string]any{
			"integrationCategories":       categories,
			"otherIntegrationsByCategory": otherByCategory,
			"otherIntegrations":           "",
		}
	case SectionContactInformation:
		return map[string]any{
			"primaryContact": map[string]any{
				"name":  "",
				"title": "",
				"email": "",
				"phone": "",
			},
		}
	case SectionComplianceCertifications:
		return map[string]any{
			"complianceCertifications":      []any{},
			"complianceCertificationsOther": "",
		}
	}
	return map[string]any{}
}
