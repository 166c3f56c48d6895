// Package fetch retrieves and renders vendor websites, producing the bounded
// text snapshot the extraction pipeline works from.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/jonathan/vendor-profiler/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; VendorProfiler/1.0)"

// Bounds on the retrieved snapshot. Extraction prompts are sized for these.
const (
	MaxBodyTextLen         = 15000
	MaxCandidateSections   = 20
	MinCandidateSectionLen = 20
	MaxCandidateSectionLen = 500
)

// noiseSelector matches elements stripped before any text extraction.
const noiseSelector = "script, style, noscript, iframe, svg, nav, footer, header, aside, .ad, .ads, .advertisement, .sidebar, .cookie-banner, .popup"

// Error represents an error during website retrieval.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures retrieval behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool // allow headless browser fallback for SPA sites
	Verbose    bool
}

// DefaultOptions returns sensible defaults for retrieval.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Retriever fetches a vendor website and converts it into WebsiteContent.
type Retriever struct {
	opts *Options
}

// NewRetriever creates a Retriever with the given options (nil means defaults).
func NewRetriever(opts *Options) *Retriever {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Retriever{opts: opts}
}

// Fetch retrieves the website at urlStr and returns its bounded text snapshot.
// This is the single fatal failure point of a pipeline run: any error here
// aborts the run, there is no per-section fallback for retrieval.
func (r *Retriever) Fetch(ctx context.Context, urlStr string) (*types.WebsiteContent, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	html, err := r.httpGet(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	content, err := BuildContent(urlStr, html)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	// SPA sites often serve an empty shell over plain HTTP. Render with a
	// headless browser and re-extract when the first pass came back thin.
	if r.opts.UseBrowser && ShouldUseBrowser(content.BodyText) {
		browserHTML, browserErr := WithBrowser(ctx, urlStr, r.opts.Timeout, r.opts.Verbose)
		if browserErr == nil {
			if rendered, buildErr := BuildContent(urlStr, browserHTML); buildErr == nil {
				content = rendered
			}
		}
	}

	return content, nil
}

// httpGet performs a plain HTTP GET and returns the response body.
func (r *Retriever) httpGet(ctx context.Context, urlStr string) (string, error) {
	client := &http.Client{Timeout: r.opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", r.opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	return string(bodyBytes), nil
}

// BuildContent parses raw HTML into a bounded WebsiteContent snapshot.
func BuildContent(urlStr, html string) (*types.WebsiteContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	metaDescription := strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))

	doc.Find(noiseSelector).Remove()

	bodyText := extractBodyText(urlStr, html, doc)
	sections := extractCandidateSections(doc)

	return &types.WebsiteContent{
		URL:               urlStr,
		Title:             title,
		MetaDescription:   metaDescription,
		BodyText:          truncateRunes(bodyText, MaxBodyTextLen),
		CandidateSections: sections,
	}, nil
}

// extractBodyText prefers a readability pass over the original HTML and falls
// back to the noise-stripped document body when readability finds nothing.
func extractBodyText(urlStr, html string, doc *goquery.Document) string {
	pageURL, _ := url.Parse(urlStr)
	if pageURL != nil {
		article, err := readability.FromReader(strings.NewReader(html), pageURL)
		if err == nil {
			text := cleanWhitespace(article.TextContent)
			if text != "" {
				return text
			}
		}
	}
	return cleanWhitespace(doc.Find("body").Text())
}

// extractCandidateSections collects heading and paragraph blocks in document
// order, bounded to MaxCandidateSections entries of 20-500 chars each.
func extractCandidateSections(doc *goquery.Document) []string {
	var sections []string
	seen := make(map[string]bool)

	doc.Find("h1, h2, h3, p, li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if len(text) < MinCandidateSectionLen {
			return true
		}
		text = truncateRunes(text, MaxCandidateSectionLen)
		if seen[text] {
			return true
		}
		seen[text] = true
		sections = append(sections, text)
		return len(sections) < MaxCandidateSections
	})

	return sections
}

// cleanWhitespace normalizes whitespace while keeping line structure.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// truncateRunes bounds s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
