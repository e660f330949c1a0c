package ratelimiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllowBurst(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 10, MaxBurst: 3})

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("client"), "request %d should pass within the burst", i)
	}
	require.False(t, rl.Allow("client"))
}

func TestRefill(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 100, MaxBurst: 1})

	require.True(t, rl.Allow("client"))
	require.False(t, rl.Allow("client"))

	// 100 tokens/s means one token back within tens of milliseconds.
	time.Sleep(50 * time.Millisecond)
	require.True(t, rl.Allow("client"))
}

func TestKeysAreIndependent(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 10, MaxBurst: 1})

	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))
	require.True(t, rl.Allow("b"))
}

func TestRemaining(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 5})

	require.Equal(t, 5, rl.Remaining("client"))
	require.True(t, rl.Allow("client"))
	require.Equal(t, 4, rl.Remaining("client"))
}

func TestGetSourceKey(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 1, SourceHeaderKey: "X-Forwarded-For"})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	require.Equal(t, "10.0.0.1:1234", rl.GetSourceKey(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	require.Equal(t, "203.0.113.7", rl.GetSourceKey(req))
}

func TestBurstDefaultsToRate(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 2})
	require.Equal(t, 2, rl.GetMaxBurst())
}
