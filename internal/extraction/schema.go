package extraction

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Section output stays loosely typed, but a response whose known keys carry
// the wrong JSON type would poison reconciliation. These schemas check shape
// only; unknown keys and missing keys are allowed.
var sectionSchemas = map[SectionKind]string{
	SectionCompanyOverview: `{
		"type": "object",
		"properties": {
			"companyName": {"type": "string"},
			"companyType": {"type": "string"},
			"companyTypeOther": {"type": "string"},
			"location": {"type": "object"},
			"website": {"type": "string"},
			"address": {"type": "string"}
		}
	}`,
	SectionProductInformation: `{
		"type": "object",
		"properties": {
			"products": {"type": "array", "items": {"type": "object"}}
		}
	}`,
	SectionIntegrations: `{
		"type": "object",
		"properties": {
			"integrationCategories": {"type": "object"},
			"otherIntegrationsByCategory": {"type": "object"}
		}
	}`,
	SectionContactInformation: `{
		"type": "object",
		"properties": {
			"primaryContact": {"type": "object"}
		}
	}`,
	SectionComplianceCertifications: `{
		"type": "object",
		"properties": {
			"complianceCertifications": {"type": "array"},
			"complianceCertificationsOther": {"type": "string"}
		}
	}`,
}

// validateShape checks an unmarshaled section result against the section's
// shape schema. Returns nil when the result is acceptable.
func validateShape(kind SectionKind, result map[string]any) error {
	schema, ok := sectionSchemas[kind]
	if !ok {
		return nil
	}

	validation, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(result),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !validation.Valid() {
		first := validation.Errors()[0]
		return fmt.Errorf("unexpected shape at %s: %s", first.Field(), first.Description())
	}

	return nil
}
