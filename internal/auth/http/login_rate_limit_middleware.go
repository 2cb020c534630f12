package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// LoginRateLimitMiddleware enforces per-IP rate limiting on the login endpoint
// to slow down credential stuffing.
//
// The client address comes from c.ClientIP(), which honours X-Forwarded-For and
// X-Real-IP only from trusted proxies.
func LoginRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[string](rps, burst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if allowed, retryAfter := store.allow(clientIP); !allowed {
			logger.Debug("login rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))
			tooManyRequests(c, retryAfter, "Too many login attempts from this IP. Please retry after the specified delay.")
			return
		}

		c.Next()
	}
}
