// Package http provides HTTP handlers for account operations.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/mealguard/internal/account/domain"
	"github.com/allisson/mealguard/internal/account/http/dto"
	accountUseCase "github.com/allisson/mealguard/internal/account/usecase"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	authHTTP "github.com/allisson/mealguard/internal/auth/http"
	"github.com/allisson/mealguard/internal/httputil"
	customValidation "github.com/allisson/mealguard/internal/validation"
)

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	accountUseCase accountUseCase.UseCase
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler with required dependencies.
func NewAccountHandler(accountUseCase accountUseCase.UseCase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// MeHandler returns the profile of the authenticated caller.
// GET /v1/me - Requires authentication.
func (h *AccountHandler) MeHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrTokenMissing, h.logger)
		return
	}

	profile, err := h.accountUseCase.Profile(c.Request.Context(), identity.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProfileToResponse(profile))
}

// CreateHandler opens a new account.
// POST /v1/admin/accounts - Requires the admin or super_admin role.
// Returns 201 Created with the account.
func (h *AccountHandler) CreateHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrTokenMissing, h.logger)
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.AsInvalidInput(err), h.logger)
		return
	}

	account, err := h.accountUseCase.Create(c.Request.Context(), identity, &domain.CreateAccountInput{
		TenantID: uuid.MustParse(req.TenantID),
		Email:    req.Email,
		Name:     req.Name,
		Role:     authDomain.Role(req.Role),
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("account created",
		slog.String("account_id", account.ID.String()),
		slog.String("tenant_id", account.TenantID.String()),
		slog.String("created_by", identity.ID.String()))

	c.JSON(http.StatusCreated, dto.MapAccountToResponse(account))
}

// ListHandler returns a page of a tenant's accounts.
// GET /v1/admin/accounts?tenant_id=&offset=0&limit=50 - Requires the admin or super_admin role.
// tenant_id defaults to the caller's tenant.
func (h *AccountHandler) ListHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrTokenMissing, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	tenantID := identity.TenantID
	if raw := c.Query("tenant_id"); raw != "" {
		tenantID, err = uuid.Parse(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, errors.New("invalid tenant id format: must be a valid UUID"), h.logger)
			return
		}
	}

	accounts, err := h.accountUseCase.List(c.Request.Context(), identity, tenantID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountsToListResponse(accounts))
}

// DeactivateHandler disables an account.
// DELETE /v1/admin/accounts/:id - Requires the admin or super_admin role.
// Returns 204 No Content.
func (h *AccountHandler) DeactivateHandler(c *gin.Context) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrTokenMissing, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, errors.New("invalid account id format: must be a valid UUID"), h.logger)
		return
	}

	if err := h.accountUseCase.Deactivate(c.Request.Context(), identity, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("account deactivated",
		slog.String("account_id", id.String()),
		slog.String("deactivated_by", identity.ID.String()))

	c.Status(http.StatusNoContent)
}
