// Package http provides the HTTP server, its router and the shared middleware.
package http

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountHTTP "github.com/allisson/mealguard/internal/account/http"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	authHTTP "github.com/allisson/mealguard/internal/auth/http"
	authUseCase "github.com/allisson/mealguard/internal/auth/usecase"
	"github.com/allisson/mealguard/internal/config"
	cryptoHTTP "github.com/allisson/mealguard/internal/crypto/http"
	"github.com/allisson/mealguard/internal/metrics"
)

// readinessTimeout bounds the database ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// Handlers groups the request handlers mounted by SetupRouter.
type Handlers struct {
	Authenticator authUseCase.Authenticator
	Auth          *authHTTP.AuthHandler
	Account       *accountHTTP.AccountHandler
	Key           *cryptoHTTP.KeyHandler
}

// SetupRouter builds the Gin router with every route and middleware.
//
// Routes:
//
//	GET    /health                   liveness
//	GET    /ready                    readiness (database ping)
//	POST   /v1/auth/login            credentials for a bearer token (per-IP rate limit)
//	GET    /v1/me                    caller profile (authenticated)
//	GET    /v1/admin/accounts        list a tenant's accounts (admin, super_admin)
//	POST   /v1/admin/accounts        open an account (admin, super_admin)
//	DELETE /v1/admin/accounts/:id    deactivate an account (admin, super_admin)
//	GET    /v1/admin/keys            field key versions (super_admin)
func (s *Server) SetupRouter(cfg *config.Config, handlers Handlers, metricsProvider *metrics.Provider) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}
	if cors := corsMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); cors != nil {
		router.Use(cors)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	login := v1.Group("/auth")
	if cfg.RateLimitLoginEnabled {
		login.Use(authHTTP.LoginRateLimitMiddleware(
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			s.logger,
		))
	}
	login.POST("/login", handlers.Auth.LoginHandler)

	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(handlers.Authenticator, s.logger))
	if cfg.RateLimitEnabled {
		authenticated.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	authenticated.GET("/me", handlers.Account.MeHandler)

	admin := authenticated.Group("/admin")
	accounts := admin.Group("/accounts", authHTTP.RequireRole(s.logger, authDomain.RoleAdmin, authDomain.RoleSuperAdmin))
	accounts.GET("", handlers.Account.ListHandler)
	accounts.POST("", handlers.Account.CreateHandler)
	accounts.DELETE("/:id", handlers.Account.DeactivateHandler)

	admin.GET("/keys", authHTTP.RequireRole(s.logger, authDomain.RoleSuperAdmin), handlers.Key.ListHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router is not configured")
	}
	s.server.Handler = s.router
	return listen(s.server, "api", s.logger)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if database != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": database},
	})
}
