package main

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an unused per-user limiter is kept.
const limiterIdleTTL = 30 * time.Minute

type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// planRateLimiter throttles plan requests per user. Each plan request is a
// call to the external prediction service, so one user cannot hammer it.
// Idle limiters are swept lazily on access instead of by a background loop.
type planRateLimiter struct {
	limit rate.Limit
	burst int

	mu        sync.Mutex
	limiters  map[string]*userLimiter
	lastSweep time.Time
	now       func() time.Time
}

// newPlanRateLimiter allows perMinute requests per user with the given burst.
// A non-positive perMinute disables limiting.
func newPlanRateLimiter(perMinute, burst int) *planRateLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60.0)
	}
	if burst < 1 {
		burst = 1
	}
	return &planRateLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*userLimiter),
		now:      time.Now,
	}
}

// allow reports whether userID may make a request now.
func (rl *planRateLimiter) allow(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > limiterIdleTTL {
		for id, ul := range rl.limiters {
			if now.Sub(ul.lastAccess) > limiterIdleTTL {
				delete(rl.limiters, id)
			}
		}
		rl.lastSweep = now
	}

	ul, ok := rl.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[userID] = ul
	}
	ul.lastAccess = now
	return ul.limiter.AllowN(now, 1)
}

// size is the number of tracked users.
func (rl *planRateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// middleware rejects over-limit requests with 429 and a Retry-After header.
// Must run after authMiddleware so the user id is set.
func (rl *planRateLimiter) middleware(m *metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.allow(currentUserID(c)) {
			c.Next()
			return
		}
		if m != nil {
			m.recordPlanOutcome(planOutcomeRateLimited)
		}
		retryAfter := 1
		if rl.limit > 0 && rl.limit != rate.Inf {
			retryAfter = int(math.Ceil(1 / float64(rl.limit)))
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		apiError(c, http.StatusTooManyRequests, "too many plan requests, try again later")
		c.Abort()
	}
}
