// Package dto provides data transfer objects for account HTTP handlers.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/mealguard/internal/validation"
)

// CreateAccountRequest contains the parameters for opening an account.
type CreateAccountRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"` //nolint:gosec // hashed before storage
	Phone    string `json:"phone"`
}

// Validate checks the shape of the request. Password strength and tenant
// scoping are enforced by the use case.
func (r *CreateAccountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TenantID,
			validation.Required,
			customValidation.UUID,
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
		),
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Role,
			validation.Required,
			customValidation.Role,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
		validation.Field(&r.Phone,
			validation.Length(0, 32),
			customValidation.Phone,
		),
	)
}
