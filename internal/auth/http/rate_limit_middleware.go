package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/allisson/mealguard/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = time.Hour
)

// limiterStore holds one token bucket per key with periodic cleanup of idle
// entries.
type limiterStore[K comparable] struct {
	limiters sync.Map // map[K]*limiterEntry
	rps      float64
	burst    int
}

// limiterEntry holds a rate limiter and its last access time.
type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

func newLimiterStore[K comparable](rps float64, burst int) *limiterStore[K] {
	store := &limiterStore[K]{rps: rps, burst: burst}
	go store.cleanupStale(context.Background(), limiterCleanupInterval, limiterIdleTTL)
	return store
}

// allow consumes one token for key. When the bucket is empty it returns the
// whole seconds to wait before retrying.
func (s *limiterStore[K]) allow(key K) (bool, int) {
	limiter := s.getLimiter(key)
	if limiter.Allow() {
		return true, 0
	}

	reservation := limiter.Reserve()
	retryAfter := int(reservation.Delay().Seconds())
	reservation.Cancel()
	return false, max(retryAfter, 1)
}

// getLimiter retrieves or creates the limiter for key.
func (s *limiterStore[K]) getLimiter(key K) *rate.Limiter {
	if val, ok := s.limiters.Load(key); ok {
		entry := val.(*limiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &limiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: time.Now(),
	}
	actual, _ := s.limiters.LoadOrStore(key, entry)
	return actual.(*limiterEntry).limiter
}

// cleanupStale removes limiters idle for longer than ttl.
func (s *limiterStore[K]) cleanupStale(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			threshold := time.Now().Add(-ttl)
			s.limiters.Range(func(key, value any) bool {
				entry := value.(*limiterEntry)
				entry.mu.Lock()
				stale := entry.lastAccess.Before(threshold)
				entry.mu.Unlock()

				if stale {
					s.limiters.Delete(key)
				}
				return true
			})
		}
	}
}

// tooManyRequests writes the 429 response with a Retry-After header.
func tooManyRequests(c *gin.Context, retryAfter int, message string) {
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
		Error:   "rate_limit_exceeded",
		Message: message,
	})
}

// RateLimitMiddleware enforces per-account rate limiting on authenticated requests.
//
// MUST be used after AuthenticationMiddleware. Each account gets an independent
// token bucket of rps requests per second with the given burst.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[uuid.UUID](rps, burst)

	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		if !ok {
			logger.Error("rate limit middleware: no authenticated identity in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgAuthenticationRequired})
			return
		}

		if allowed, retryAfter := store.allow(identity.ID); !allowed {
			logger.Debug("rate limit exceeded",
				slog.String("account_id", identity.ID.String()),
				slog.Int("retry_after", retryAfter))
			tooManyRequests(c, retryAfter, "Too many requests. Please retry after the specified delay.")
			return
		}

		c.Next()
	}
}
