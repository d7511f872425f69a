package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"jobmatch-backend/internal/delivery/http/response"
	"jobmatch-backend/pkg/logger"
	"jobmatch-backend/pkg/metrics"
	"jobmatch-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

const msgRateLimited = "Prea multe cereri. Te rugăm să încerci din nou mai târziu."

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Scope names the limit in logs, metrics and the Redis key
	Scope string
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Skip exempts a request from the limit
	Skip func(*gin.Context) bool
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

// RateLimiter counts requests in Redis when it is configured and falls back
// to a process-local store when it is not or when Redis fails.
type RateLimiter struct {
	client *goredis.Client
	audit  *security.SecurityLogger
	store  sync.Map
	now    func() time.Time
}

func NewRateLimiter(client *goredis.Client, audit *security.SecurityLogger) *RateLimiter {
	return &RateLimiter{client: client, audit: audit, now: time.Now}
}

// Cleanup drops expired in-memory entries every interval until ctx is done.
func (rl *RateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := rl.now()
			rl.store.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rl.store.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}
}

// Middleware enforces cfg on every request it is mounted on.
func (rl *RateLimiter) Middleware(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	return func(c *gin.Context) {
		if cfg.Skip != nil && cfg.Skip(c) {
			c.Next()
			return
		}

		key := "rl:" + cfg.Scope + ":" + cfg.KeyFunc(c)
		count, resetAt := rl.hit(c.Request.Context(), key, cfg)

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > cfg.Limit {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			metrics.RateLimited.WithLabelValues(cfg.Scope).Inc()
			rl.audit.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(), c.GetString(response.RequestIDKey), cfg.Scope)

			response.Error(c, http.StatusTooManyRequests, msgRateLimited, nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(cfg.Limit-count))
		c.Next()
	}
}

func (rl *RateLimiter) hit(ctx context.Context, key string, cfg RateLimitConfig) (int, time.Time) {
	if rl.client != nil {
		count, resetAt, err := rl.checkRedis(ctx, key, cfg)
		if err == nil {
			return count, resetAt
		}
		metrics.RedisErrors.WithLabelValues("rate_limit").Inc()
		logger.Log.WarnContext(ctx, "rate limit falling back to memory", "error", err)
	}
	return rl.checkInMemory(key, cfg)
}

// checkRedis checks rate limit using Redis with atomic Lua script
func (rl *RateLimiter) checkRedis(ctx context.Context, key string, cfg RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(cfg.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := rateLimitScript.Run(ctx, rl.client, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), rl.now().Add(time.Duration(ttl) * time.Second), nil
}

// checkInMemory checks rate limit using the in-memory store
func (rl *RateLimiter) checkInMemory(key string, cfg RateLimitConfig) (int, time.Time) {
	now := rl.now()
	entryI, _ := rl.store.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(cfg.Window)})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// Reset if window expired
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(cfg.Window)
	}
	entry.count++

	return entry.count, entry.resetAt
}

// GlobalRateLimit applies threshold requests per window to every route.
func GlobalRateLimit(rl *RateLimiter, threshold int, window time.Duration) gin.HandlerFunc {
	return rl.Middleware(RateLimitConfig{Scope: "global", Limit: threshold, Window: window})
}

// MutationRateLimit limits writes only; reads pass through.
func MutationRateLimit(rl *RateLimiter, threshold int, window time.Duration) gin.HandlerFunc {
	return rl.Middleware(RateLimitConfig{
		Scope:  "mutation",
		Limit:  threshold,
		Window: window,
		Skip: func(c *gin.Context) bool {
			switch c.Request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return true
			}
			return false
		},
	})
}
