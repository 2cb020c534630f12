// Package validation holds the jellydator/validation rules shared by request
// DTOs and the account use case.
package validation

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	apperrors "github.com/allisson/mealguard/internal/errors"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// Digits with optional leading +, spaces, dashes, dots and parentheses.
	phonePattern = regexp.MustCompile(`^\+?[0-9(][0-9 ().\-]{5,30}$`)
)

// AsInvalidInput turns a validation failure into ErrInvalidInput so the HTTP
// layer answers 422 with the failed field messages.
func AsInvalidInput(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "must not be blank"),
)

var Email = validation.NewStringRuleWithError(
	emailPattern.MatchString,
	validation.NewError("validation_email", "must be a valid email address"),
)

// Phone accepts the usual human formats. The value is stored encrypted, so
// no normalization happens here.
var Phone = validation.NewStringRuleWithError(
	func(s string) bool { return phonePattern.MatchString(strings.TrimSpace(s)) },
	validation.NewError("validation_phone", "must be a valid phone number"),
)

// UUID validates the string form of an id.
var UUID = validation.NewStringRuleWithError(
	func(s string) bool { return uuid.Validate(s) == nil },
	validation.NewError("validation_uuid", "must be a valid UUID"),
)

// Tenant requires a non-nil tenant id.
var Tenant = validation.By(func(value interface{}) error {
	if id, ok := value.(uuid.UUID); !ok || id == uuid.Nil {
		return validation.NewError("validation_tenant", "tenant is required")
	}
	return nil
})

// Role accepts employee, admin and super_admin, either as authDomain.Role or
// string. Empty values are left to validation.Required.
var Role = validation.By(func(value interface{}) error {
	var role authDomain.Role
	switch v := value.(type) {
	case authDomain.Role:
		role = v
	case string:
		role = authDomain.Role(v)
	default:
		return validation.NewError("validation_role_type", "must be a string")
	}
	if role == "" || role.Valid() {
		return nil
	}
	return validation.NewError("validation_role", "must be one of employee, admin, super_admin")
})

// PasswordStrength reports every failed password rule in one message.
type PasswordStrength struct {
	Check func(password string) authDomain.PasswordStrength
}

func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_type", "password must be a string")
	}
	if result := p.Check(s); !result.Valid {
		return validation.NewError("validation_password_strength", strings.Join(result.Messages, "; "))
	}
	return nil
}
