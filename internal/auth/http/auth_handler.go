package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	"github.com/allisson/mealguard/internal/auth/http/dto"
	authUseCase "github.com/allisson/mealguard/internal/auth/usecase"
	apperrors "github.com/allisson/mealguard/internal/errors"
	"github.com/allisson/mealguard/internal/httputil"
	customValidation "github.com/allisson/mealguard/internal/validation"
)

// AuthHandler handles credential exchange for bearer tokens.
type AuthHandler struct {
	loginUseCase authUseCase.LoginUseCase
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(loginUseCase authUseCase.LoginUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		loginUseCase: loginUseCase,
		logger:       logger,
	}
}

// LoginHandler exchanges an email and password for a bearer token.
// POST /v1/auth/login - No authentication required.
// Returns 200 OK with the token, its expiration and the account identity.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.AsInvalidInput(err), h.logger)
		return
	}

	output, err := h.loginUseCase.Login(c.Request.Context(), &authUseCase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleLoginError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     output.Token,
		TokenType: "Bearer",
		ExpiresAt: output.ExpiresAt,
		Account:   dto.MapIdentityToResponse(output.Identity),
	})
}

// handleLoginError keeps unknown emails and wrong passwords indistinguishable.
func (h *AuthHandler) handleLoginError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, authDomain.ErrInvalidCredentials):
		h.logger.Debug("login rejected", slog.String("reason", "invalid_credentials"))
		c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid email or password",
		})
	case apperrors.Is(err, authDomain.ErrAccountUnavailable):
		h.logger.Debug("login rejected", slog.String("reason", "account_unavailable"))
		c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
			Error:   "account_unavailable",
			Message: msgAccountUnavailable,
		})
	default:
		httputil.HandleErrorGin(c, err, h.logger)
	}
}
