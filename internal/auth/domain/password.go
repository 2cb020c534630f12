package domain

const (
	// MinPasswordLength is the shortest password accepted for hashing.
	MinPasswordLength = 8

	// MaxPasswordLength is the longest password accepted by strength validation.
	MaxPasswordLength = 128
)

// PasswordStrength is the outcome of a password strength check. Messages holds
// one entry per failed rule.
type PasswordStrength struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`
}
