package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(rules []Rule) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
		Rules:         rules,
	}
}

func TestBurstThenLimited(t *testing.T) {
	l := NewLimiter(testConfig([]Rule{
		{Path: "/extract/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
	}))
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/extract/github", "POST")
		require.True(t, allowed, "request %d within burst should pass", i+1)
	}

	allowed, info := l.Allow("1.2.3.4", "/extract/github", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig([]Rule{
		{Path: "/extract/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
	}))
	defer l.Stop()

	allowed, _ := l.Allow("1.1.1.1", "/extract/cv", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.1.1.1", "/extract/cv", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("2.2.2.2", "/extract/cv", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestUnlimitedEndpoint(t *testing.T) {
	l := NewLimiter(testConfig(DefaultRules()))
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestWhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig([]Rule{
		{Path: "/extract/", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
	})
	cfg.Whitelist["10.0.0.1"] = true
	cfg.Blacklist["10.0.0.2"] = true

	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/extract/cv", "POST")
		assert.True(t, allowed, "whitelisted client is never limited")
	}

	allowed, _ := l.Allow("10.0.0.2", "/extract/cv", "POST")
	assert.False(t, allowed, "blacklisted client is always rejected")
}

func TestDisabledLimiter(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/extract/cv", "POST")
		require.True(t, allowed)
	}
}

func TestMatchRule(t *testing.T) {
	rules := DefaultRules()

	r := matchRule("/extract/linkedin", "POST", rules)
	require.NotNil(t, r)
	assert.Equal(t, "/extract/", r.Path)

	r = matchRule("/jobs/abc-123", "GET", rules)
	require.NotNil(t, r)
	assert.Equal(t, "/jobs/", r.Path)

	assert.Nil(t, matchRule("/profiles/u1", "GET", rules))
}

func TestEvictIdle(t *testing.T) {
	l := NewLimiter(testConfig([]Rule{
		{Path: "/extract/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 5},
	}))
	defer l.Stop()

	l.Allow("1.2.3.4", "/extract/cv", "POST")
	require.Len(t, l.buckets, 1)

	l.evictIdle(0)
	assert.Empty(t, l.buckets)
}
