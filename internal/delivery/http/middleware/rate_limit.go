package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-landing-page/internal/delivery/http/response"
	"go-landing-page/pkg/audit"
	"go-landing-page/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WindowCounter counts hits per key in fixed windows (Redis in production)
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Reject instead of falling back to memory when the counter errors
	FailClosed bool
	// Counter is optional; nil uses the in-memory store
	Counter WindowCounter
	// Audit receives rate-limit events; nil disables them
	Audit *audit.Logger
}

// ContactRateLimitConfig is the strict config of the contact relay
func ContactRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:contact:",
	}
}

// GlobalRateLimitConfig is the lenient config applied to every route
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
	}
}

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// memoryStore is the fallback when Redis is unavailable.
// Expired entries are dropped on a sweep piggybacked on hits.
type memoryStore struct {
	mu        sync.Mutex
	entries   map[string]*memoryEntry
	nextSweep time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *memoryStore) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.After(s.nextSweep) {
		for k, e := range s.entries {
			if now.After(e.resetAt) {
				delete(s.entries, k)
			}
		}
		s.nextSweep = now.Add(5 * time.Minute)
	}

	entry, ok := s.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &memoryEntry{resetAt: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, entry.resetAt
}

// RateLimitMiddleware limits requests per key.
// It uses the configured counter when available and falls back to memory when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string {
			return c.ClientIP()
		}
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	store := newMemoryStore()

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)

		var count int
		var resetAt time.Time

		if config.Counter != nil {
			var err error
			count, resetAt, err = config.Counter.Hit(c.Request.Context(), fullKey, config.Window)
			if err != nil {
				logger.Log.Warn("Rate limit counter unavailable", "key_prefix", config.KeyPrefix, "error", err)
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt = store.hit(fullKey, config.Window, time.Now())
			}
		} else {
			count, resetAt = store.hit(fullKey, config.Window, time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			config.Audit.Log(c.Request.Context(), audit.Event{
				Event:     audit.EventRateLimitTriggered,
				IP:        c.ClientIP(),
				UserAgent: c.GetHeader("User-Agent"),
				RequestID: GetRequestID(c),
				Details:   map[string]interface{}{"endpoint": c.FullPath()},
			})

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}
