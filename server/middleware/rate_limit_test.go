package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Burst(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	assert.True(t, rl.Allow("client"))
	assert.True(t, rl.Allow("client"))
	assert.False(t, rl.Allow("client"))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
}

func TestRateLimiter_EvictsOnlyIdleKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	require.True(t, rl.Allow("idle"))
	require.True(t, rl.Allow("active"))
	require.False(t, rl.Allow("active"), "active key should have drained its bucket")

	rl.mu.Lock()
	rl.limits["idle"].lastSeen = time.Now().Add(-10 * time.Minute)
	rl.evictIdleLocked(time.Now())
	rl.mu.Unlock()

	rl.mu.Lock()
	_, idleKept := rl.limits["idle"]
	_, activeKept := rl.limits["active"]
	rl.mu.Unlock()
	assert.False(t, idleKept)
	assert.True(t, activeKept)

	// The survivor keeps its drained bucket instead of starting fresh.
	assert.False(t, rl.Allow("active"))
}

func TestRateLimiter_Reset(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))

	rl.Reset()
	assert.True(t, rl.Allow("a"))
}
