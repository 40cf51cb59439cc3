package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests step the limiter's notion of time.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(perMinute, burst int) (*planRateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := newPlanRateLimiter(perMinute, burst)
	rl.now = clock.now
	return rl, clock
}

func TestPlanRateLimiter_BurstThenRefill(t *testing.T) {
	rl, clock := newTestLimiter(6, 2)

	assert.True(t, rl.allow("u1"))
	assert.True(t, rl.allow("u1"))
	assert.False(t, rl.allow("u1"), "burst exhausted")

	// 6/min refills one token every 10s.
	clock.advance(10 * time.Second)
	assert.True(t, rl.allow("u1"))
	assert.False(t, rl.allow("u1"))
}

func TestPlanRateLimiter_PerUser(t *testing.T) {
	rl, _ := newTestLimiter(1, 1)

	assert.True(t, rl.allow("u1"))
	assert.False(t, rl.allow("u1"))
	assert.True(t, rl.allow("u2"), "other users have their own bucket")
}

func TestPlanRateLimiter_Disabled(t *testing.T) {
	rl, _ := newTestLimiter(0, 0)

	for i := 0; i < 100; i++ {
		assert.True(t, rl.allow("u1"))
	}
}

// TestPlanRateLimiter_SweepsIdle drops limiters unused for longer than the
// idle TTL the next time anyone calls allow.
func TestPlanRateLimiter_SweepsIdle(t *testing.T) {
	rl, clock := newTestLimiter(1, 1)

	rl.allow("u1")
	rl.allow("u2")
	assert.Equal(t, 2, rl.size())

	clock.advance(limiterIdleTTL + time.Minute)
	rl.allow("u3")
	assert.Equal(t, 1, rl.size())

	// A swept user starts again with a full bucket.
	assert.True(t, rl.allow("u1"))
}
