package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointRule{
			{Path: "/analyze", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
			{Path: "/health", Method: "GET", Limit: 0},
		},
	}
}

func TestLimiter_BurstThenLimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	// Burst of 2 allowed, third request rejected.
	allowed, _ := l.Allow("1.2.3.4", "/analyze", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/analyze", "POST")
	assert.True(t, allowed)

	allowed, info := l.Allow("1.2.3.4", "/analyze", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/analyze", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("1.2.3.4", "/analyze", "POST")
	assert.False(t, allowed)

	// A different client still has its full burst.
	allowed, _ = l.Allow("5.6.7.8", "/analyze", "POST")
	assert.True(t, allowed)
}

func TestLimiter_UnlimitedEndpoint(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("1.2.3.4", "/health", "GET")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/analyze", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_DefaultRuleForUnknownEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 3
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/integrations", "GET")
		assert.True(t, allowed, "request %d should be allowed", i)
	}
	allowed, _ := l.Allow("1.2.3.4", "/integrations", "GET")
	assert.False(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	rules := []EndpointRule{
		{Path: "/analyze", Method: "POST", Limit: 10},
		{Path: "/analyze/stream", Method: "POST", Limit: 10},
		{Path: "/runs/", Method: "GET", Limit: 50},
	}

	tests := []struct {
		name     string
		path     string
		method   string
		wantPath string
		wantNil  bool
	}{
		{name: "exact match", path: "/analyze", method: "POST", wantPath: "/analyze"},
		{name: "longer exact match", path: "/analyze/stream", method: "POST", wantPath: "/analyze/stream"},
		{name: "prefix match", path: "/runs/abc-123", method: "GET", wantPath: "/runs/"},
		{name: "method mismatch", path: "/analyze", method: "GET", wantNil: true},
		{name: "unknown path", path: "/nowhere", method: "GET", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := matchEndpoint(tt.path, tt.method, rules)
			if tt.wantNil {
				assert.Nil(t, rule)
			} else {
				assert.NotNil(t, rule)
				assert.Equal(t, tt.wantPath, rule.Path)
			}
		})
	}
}

func TestBucket_Refill(t *testing.T) {
	// 1000 tokens/sec so the refill is observable without sleeping long.
	b := newBucket(1, 1000)

	allowed, _, _ := b.take()
	assert.True(t, allowed)
	allowed, _, _ = b.take()
	assert.False(t, allowed)

	time.Sleep(5 * time.Millisecond)
	allowed, _, _ = b.take()
	assert.True(t, allowed)
}

func TestLimiter_DropIdle(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i), "/analyze", "POST")
	}

	l.mu.Lock()
	count := len(l.buckets)
	l.mu.Unlock()
	assert.Equal(t, 5, count)

	l.dropIdle(0)

	l.mu.Lock()
	count = len(l.buckets)
	l.mu.Unlock()
	assert.Zero(t, count)
}
