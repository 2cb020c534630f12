package dto

import (
	"time"

	"github.com/allisson/mealguard/internal/account/domain"
)

// AccountResponse represents an account in admin API responses. Credentials and
// stored envelopes are never included.
type AccountResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// MapAccountToResponse converts a domain account to an API response.
func MapAccountToResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		TenantID:  account.TenantID.String(),
		Email:     account.Email,
		Name:      account.Name,
		Role:      account.Role.String(),
		IsActive:  account.IsActive,
		CreatedAt: account.CreatedAt,
	}
}

// ListAccountsResponse represents a page of accounts in API responses.
type ListAccountsResponse struct {
	Data []AccountResponse `json:"data"`
}

// MapAccountsToListResponse converts a slice of domain accounts to a list response.
func MapAccountsToListResponse(accounts []*domain.Account) ListAccountsResponse {
	data := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		data = append(data, MapAccountToResponse(account))
	}
	return ListAccountsResponse{Data: data}
}

// ProfileResponse is the caller's own profile with PII decrypted.
type ProfileResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MapProfileToResponse converts a domain profile to an API response.
func MapProfileToResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.ID.String(),
		TenantID:  profile.TenantID.String(),
		Email:     profile.Email,
		Name:      profile.Name,
		Role:      profile.Role.String(),
		Phone:     profile.Phone,
		CreatedAt: profile.CreatedAt,
	}
}
