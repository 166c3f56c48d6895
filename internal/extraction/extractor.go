package extraction

import (
	"context"
	"encoding/json"

	"github.com/jonathan/vendor-profiler/internal/llm"
	"github.com/jonathan/vendor-profiler/internal/prompts"
	"github.com/jonathan/vendor-profiler/internal/types"
)

// JSONGenerator is the structured-extraction capability the extractor consumes.
// llm.Client satisfies it; tests substitute stubs.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, tier llm.ModelTier) (string, error)
}

// Outcome is the tagged result of one section extraction. Result is always
// populated: either the extracted object or the section's empty default.
// Defaulted reports which one, and Err retains the causal error for
// informational progress events. Extraction errors never propagate as errors.
type Outcome struct {
	Kind      SectionKind
	Result    map[string]any
	Defaulted bool
	Err       error
}

// Extractor turns website content into per-section results.
type Extractor struct {
	client JSONGenerator
	tier   llm.ModelTier
}

// NewExtractor creates an Extractor using the standard model tier.
func NewExtractor(client JSONGenerator) *Extractor {
	return &Extractor{client: client, tier: llm.TierStandard}
}

// WithTier overrides the model tier used for extraction calls.
func (e *Extractor) WithTier(tier llm.ModelTier) *Extractor {
	e.tier = tier
	return e
}

// Extract runs one section extraction against the shared content snapshot.
// Never fails outward: any failure of the extraction call, or malformed
// output, is caught here and replaced by the section's empty default.
func (e *Extractor) Extract(ctx context.Context, content *types.WebsiteContent, kind SectionKind) Outcome {
	systemPrompt := prompts.MustGet("sections.json", "system")
	userPrompt := prompts.Format(prompts.MustGet("sections.json", kind.promptKey()), map[string]string{
		"Title":           content.Title,
		"MetaDescription": content.MetaDescription,
		"BodyText":        content.BodyText,
	})

	raw, err := e.client.GenerateJSON(ctx, systemPrompt, userPrompt, e.tier)
	if err != nil {
		return defaulted(kind, err)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &result); err != nil {
		return defaulted(kind, err)
	}

	if err := validateShape(kind, result); err != nil {
		return defaulted(kind, err)
	}

	return Outcome{Kind: kind, Result: result}
}

// defaulted builds the degraded outcome for a failed section.
func defaulted(kind SectionKind, err error) Outcome {
	return Outcome{
		Kind:      kind,
		Result:    EmptyDefault(kind),
		Defaulted: true,
		Err:       err,
	}
}
