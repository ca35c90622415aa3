package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/enhance", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiterBurstThenDeny(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/enhance", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		},
	})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4", "/enhance", "POST")
		require.True(t, allowed, "request %d should be allowed", i)
		assert.Equal(t, 10, info.Limit)
	}

	allowed, info := l.Allow("1.2.3.4", "/enhance", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterClientsIndependent(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/enhance", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	})
	defer l.Stop()

	allowed, _ := l.Allow("1.1.1.1", "/enhance", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.1.1.1", "/enhance", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("2.2.2.2", "/enhance", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestLimiterUnlimitedEndpoint(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		EndpointConfigs: []EndpointConfig{
			{Path: "/health", Method: "GET", Limit: 0},
		},
	})
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiterFallsBackToDefault(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
	})
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/anything", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/anything", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/anything", "GET")
	assert.False(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/enhance", Method: "POST", Limit: 10},
		{Path: "/runs/", Method: "GET", Limit: 120},
		{Path: "/runs", Method: "GET", Limit: 120},
	}

	tests := []struct {
		name     string
		path     string
		method   string
		wantPath string
	}{
		{"exact match", "/enhance", "POST", "/enhance"},
		{"method mismatch", "/enhance", "GET", ""},
		{"prefix match", "/runs/abc-123", "GET", "/runs/"},
		{"list endpoint", "/runs", "GET", "/runs"},
		{"no match", "/unknown", "POST", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantPath == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}
}

func TestTokenBucketRefill(t *testing.T) {
	// 1000 tokens per second so the bucket refills within the test.
	tb := newTokenBucket(1, 1000)

	require.True(t, tb.allow())
	// Bucket may still hold a fraction; drain until empty.
	for tb.allow() {
	}

	time.Sleep(5 * time.Millisecond)
	assert.True(t, tb.allow(), "bucket should refill after the window elapses")
}
