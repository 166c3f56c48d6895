package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointRule is the rate limit applied to one endpoint. A trailing slash in
// Path makes it a prefix rule. A Limit of zero or less disables limiting for
// the endpoint.
type EndpointRule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// pathKey returns the bucket key component for a matched request path, so
// prefix rules share one bucket per client.
func (r *EndpointRule) pathKey(path string) string {
	if r.Path != "" {
		return r.Path
	}
	return path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Endpoints       []EndpointRule
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 300),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Endpoints:       DefaultEndpointRules(),
	}
}

// DefaultEndpointRules returns the built-in per-endpoint limits. Analysis
// runs invoke the LLM several times each, so they get the strictest budget.
func DefaultEndpointRules() []EndpointRule {
	return []EndpointRule{
		{Path: "/analyze", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/analyze/stream", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/health", Method: "GET", Limit: 0},
	}
}

// matchEndpoint returns the most specific rule matching path and method, or
// nil when none matches. Exact paths beat prefix rules; among prefix rules
// the longest prefix wins.
func matchEndpoint(path, method string, rules []EndpointRule) *EndpointRule {
	var best *EndpointRule
	bestLen := -1

	for i := range rules {
		rule := &rules[i]
		if rule.Method != "" && rule.Method != method {
			continue
		}

		switch {
		case rule.Path == path:
			return rule
		case strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path):
			if len(rule.Path) > bestLen {
				best = rule
				bestLen = len(rule.Path)
			}
		}
	}

	return best
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
