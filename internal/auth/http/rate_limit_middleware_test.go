package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

func newRateLimitedRouter(identity **authDomain.Identity, rps float64, burst int) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if *identity != nil {
			c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), *identity))
		}
		c.Next()
	})
	router.Use(RateLimitMiddleware(rps, burst, createTestLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func serve(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	identity := newTestIdentity(authDomain.RoleEmployee)
	router := newRateLimitedRouter(&identity, 10.0, 20)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(router).Code)
	}
}

func TestRateLimitMiddleware_BlocksRequestsExceedingLimit(t *testing.T) {
	identity := newTestIdentity(authDomain.RoleEmployee)
	router := newRateLimitedRouter(&identity, 0.5, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, serve(router).Code)
	}

	w := serve(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
}

func TestRateLimitMiddleware_IndependentLimitsPerAccount(t *testing.T) {
	first := newTestIdentity(authDomain.RoleEmployee)
	second := newTestIdentity(authDomain.RoleEmployee)
	current := first
	router := newRateLimitedRouter(&current, 1.0, 1)

	assert.Equal(t, http.StatusOK, serve(router).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router).Code)

	current = second
	assert.Equal(t, http.StatusOK, serve(router).Code)
}

func TestRateLimitMiddleware_RefillsOverTime(t *testing.T) {
	identity := newTestIdentity(authDomain.RoleEmployee)
	router := newRateLimitedRouter(&identity, 20.0, 1)

	assert.Equal(t, http.StatusOK, serve(router).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router).Code)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, http.StatusOK, serve(router).Code)
}

func TestRateLimitMiddleware_RequiresIdentity(t *testing.T) {
	var identity *authDomain.Identity
	router := newRateLimitedRouter(&identity, 10.0, 20)

	w := serve(router)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, map[string]any{"error": "Authentication required"}, decodeBody(t, w))
}

func TestLimiterStore_CleanupStale(t *testing.T) {
	store := &limiterStore[string]{rps: 1, burst: 1}
	store.getLimiter("idle")

	ctx, cancel := contextWithCancel(t)
	done := make(chan struct{})
	go func() {
		store.cleanupStale(ctx, 10*time.Millisecond, time.Nanosecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, ok := store.limiters.Load("idle")
		return !ok
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
