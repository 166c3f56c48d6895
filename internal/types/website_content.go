// Package types defines the shared data structures passed between pipeline stages.
package types

// WebsiteContent is the bounded text snapshot of a vendor website produced by a
// single content-retrieval call. It is immutable for the lifetime of a pipeline
// run; every section extraction reads the same snapshot.
type WebsiteContent struct {
	URL               string   `json:"url"`
	Title             string   `json:"title"`
	MetaDescription   string   `json:"meta_description"`
	BodyText          string   `json:"body_text"`
	CandidateSections []string `json:"candidate_sections"`
}
