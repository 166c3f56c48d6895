// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/vendor-profiler/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintWebsiteContent outputs a summary of the retrieved website snapshot.
func (p *Printer) PrintWebsiteContent(content *types.WebsiteContent) {
	if content == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:      %s\n", content.URL))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", content.Title))
	if content.MetaDescription != "" {
		sb.WriteString(fmt.Sprintf("Meta:     %s\n", content.MetaDescription))
	}
	sb.WriteString(fmt.Sprintf("Body:     %d chars\n", len(content.BodyText)))
	sb.WriteString(fmt.Sprintf("Sections: %d candidates", len(content.CandidateSections)))

	p.printBox("WEBSITE CONTENT", sb.String())
}

// PrintSectionResult outputs the keys produced by one section extraction.
func (p *Printer) PrintSectionResult(displayName string, result map[string]any, usedDefaults bool) {
	var sb strings.Builder
	if usedDefaults {
		sb.WriteString("Status: fell back to empty defaults\n")
	} else {
		sb.WriteString("Status: extracted\n")
	}

	keys := make([]string, 0, len(result))
	for key := range result {
		keys = append(keys, key)
	}
	sb.WriteString(fmt.Sprintf("Keys:   %s", strings.Join(keys, ", ")))

	p.printBox(strings.ToUpper(displayName), sb.String())
}

// PrintVendorProfile outputs a human-readable summary of the reconciled profile.
func (p *Printer) PrintVendorProfile(profile map[string]any) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if name, ok := profile["companyName"].(string); ok && name != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", name))
	}
	if website, ok := profile["website"].(string); ok && website != "" {
		sb.WriteString(fmt.Sprintf("Website:  %s\n", website))
	}

	if products, ok := profile["products"].([]any); ok {
		sb.WriteString(fmt.Sprintf("\nProducts (%d):\n", len(products)))
		count := min(len(products), maxItemsToShow)
		for i := 0; i < count; i++ {
			if product, ok := products[i].(map[string]any); ok {
				if name, ok := product["name"].(string); ok {
					sb.WriteString(fmt.Sprintf("  • %s\n", name))
				}
			}
		}
		if len(products) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(products)-maxItemsToShow))
		}
	}

	if categories, ok := profile["integrationCategories"].(map[string]any); ok {
		sb.WriteString("\nIntegrations:\n")
		for _, category := range types.IntegrationCategories() {
			names := stringList(categories[category])
			if len(names) == 0 {
				continue
			}
			line := fmt.Sprintf("  %s: %s", category, strings.Join(names, ", "))
			if len(line) > 50 {
				line = line[:47] + "..."
			}
			sb.WriteString(line + "\n")
		}
	}

	if other, ok := profile["otherIntegrations"].(string); ok && other != "" {
		sb.WriteString(fmt.Sprintf("\nOther: %s", other))
	}

	p.printBox("VENDOR PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// stringList accepts both the in-process []string shape produced by
// reconciliation and the []any shape a JSON round trip produces.
func stringList(value any) []string {
	switch list := value.(type) {
	case []string:
		return list
	case []any:
		names := make([]string, 0, len(list))
		for _, item := range list {
			if name, ok := item.(string); ok {
				names = append(names, name)
			}
		}
		return names
	}
	return nil
}
