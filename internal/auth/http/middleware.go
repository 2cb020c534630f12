package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	authUseCase "github.com/allisson/mealguard/internal/auth/usecase"
	apperrors "github.com/allisson/mealguard/internal/errors"
)

// Response bodies of the authentication gate.
const (
	msgAuthenticationRequired = "Authentication required"
	msgTokenExpired           = "Token expired"
	msgInvalidToken           = "Invalid token"
	msgAccountUnavailable     = "User account not found or deactivated"
	msgAuthenticationFailed   = "Authentication failed"
	msgInsufficientRole       = "Insufficient permissions"
)

// AuthenticationMiddleware authenticates requests with a Bearer token in the
// Authorization header.
//
// The token is verified and its subject re-resolved on every request; the
// resulting identity is stored in the request context for GetIdentity.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer")
//
// Responses:
//   - No bearer token → 401 {"error":"Authentication required"}
//   - Expired token → 401 {"error":"Token expired"}
//   - Bad signature or shape → 401 {"error":"Invalid token"}
//   - Missing or deactivated account → 401 {"error":"User account not found or deactivated"}
//   - Account lookup failure → 500 {"error":"Authentication failed"}
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(authenticator, logger))
//	router.GET("/v1/me", func(c *gin.Context) {
//	    identity, _ := GetIdentity(c.Request.Context())
//	    ...
//	})
func AuthenticationMiddleware(authenticator authUseCase.Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authenticator.Authenticate(c.Request.Context(), bearerToken(c))
		if err != nil {
			status, message := authenticationFailure(err)
			if status == http.StatusInternalServerError {
				logger.Error("authentication lookup failed",
					slog.String("path", c.Request.URL.Path),
					slog.Any("error", err))
			} else {
				logger.Debug("authentication rejected",
					slog.String("path", c.Request.URL.Path),
					slog.String("reason", message))
			}
			c.AbortWithStatusJSON(status, gin.H{"error": message})
			return
		}

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("account_id", identity.ID.String()),
			slog.String("role", identity.Role.String()))

		c.Next()
	}
}

// RequireRole admits only identities holding one of roles.
//
// MUST be used after AuthenticationMiddleware. Responses:
//   - No identity in context → 401 {"error":"Authentication required"}
//   - Role not allowed → 403 {"error":"Insufficient permissions","required":[...],"current":"<role>"}
func RequireRole(logger *slog.Logger, roles ...authDomain.Role) gin.HandlerFunc {
	required := make([]string, 0, len(roles))
	for _, role := range roles {
		required = append(required, role.String())
	}

	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no authenticated identity in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgAuthenticationRequired})
			return
		}

		if !identity.HasRole(roles...) {
			logger.Debug("authorization failed: insufficient role",
				slog.String("account_id", identity.ID.String()),
				slog.String("role", identity.Role.String()),
				slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    msgInsufficientRole,
				"required": required,
				"current":  identity.Role.String(),
			})
			return
		}

		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, or "" when the
// header is absent or not a Bearer credential.
func bearerToken(c *gin.Context) string {
	const bearerPrefix = "bearer "

	header := c.GetHeader("Authorization")
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// authenticationFailure maps an Authenticate error to its response.
func authenticationFailure(err error) (int, string) {
	switch {
	case apperrors.Is(err, authDomain.ErrTokenMissing):
		return http.StatusUnauthorized, msgAuthenticationRequired
	case apperrors.Is(err, authDomain.ErrTokenExpired):
		return http.StatusUnauthorized, msgTokenExpired
	case apperrors.Is(err, authDomain.ErrTokenInvalid):
		return http.StatusUnauthorized, msgInvalidToken
	case apperrors.Is(err, authDomain.ErrAccountUnavailable):
		return http.StatusUnauthorized, msgAccountUnavailable
	default:
		return http.StatusInternalServerError, msgAuthenticationFailed
	}
}
