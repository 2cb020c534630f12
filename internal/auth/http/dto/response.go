package dto

import (
	"time"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
)

// LoginResponse contains the issued bearer token.
type LoginResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountIdentity `json:"account"`
}

// AccountIdentity describes the account a token was issued for.
type AccountIdentity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// MapIdentityToResponse converts an identity to its API form.
func MapIdentityToResponse(identity *authDomain.Identity) AccountIdentity {
	return AccountIdentity{
		ID:       identity.ID.String(),
		Email:    identity.Email,
		TenantID: identity.TenantID.String(),
		Role:     identity.Role.String(),
	}
}
