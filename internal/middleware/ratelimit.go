package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateBucket struct {
	count       int
	windowStart time.Time
}

// InMemoryRateLimiter caps requests per client IP over a fixed window.
// State lives in process memory, which is enough for a single instance.
type InMemoryRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	limit   int
	window  time.Duration
}

func NewInMemoryRateLimiter(limit int, window time.Duration) *InMemoryRateLimiter {
	l := &InMemoryRateLimiter{
		buckets: make(map[string]*rateBucket),
		limit:   limit,
		window:  window,
	}
	go l.evictLoop()
	return l
}

func (l *InMemoryRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	b := l.buckets[key]
	if b == nil || now.Sub(b.windowStart) >= l.window {
		l.buckets[key] = &rateBucket{count: 1, windowStart: now}
		return true
	}
	if b.count >= l.limit {
		return false
	}
	b.count++
	return true
}

func (l *InMemoryRateLimiter) evictLoop() {
	tick := time.NewTicker(l.window)
	for range tick.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-l.window)
		for k, b := range l.buckets {
			if b.windowStart.Before(cutoff) {
				delete(l.buckets, k)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(limiter *InMemoryRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
