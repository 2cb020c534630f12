package commands

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"

	authService "github.com/allisson/mealguard/internal/auth/service"
)

// RunHashPassword hashes a password with the configured bcrypt cost and prints
// the hash token, for seeding accounts or resetting a password by hand. When
// password is empty it is read from io.Reader. Strength problems are reported
// as warnings; the hash is produced anyway.
func RunHashPassword(
	hasher authService.PasswordHasher,
	logger *slog.Logger,
	io IOTuple,
	password string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if password == "" {
		var err error
		password, err = readLine(bufio.NewReader(io.Reader), io.Writer, "Password: ")
		if err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("password is required")
	}

	strength := hasher.ValidateStrength(password)

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	logger.Info("password hashed", slog.Bool("strong", strength.Valid))

	if format == "json" {
		return writeJSON(io.Writer, map[string]any{
			"hash":     hash,
			"strong":   strength.Valid,
			"warnings": strength.Messages,
		})
	}

	for _, message := range strength.Messages {
		_, _ = fmt.Fprintf(io.Writer, "warning: %s\n", message)
	}
	_, _ = fmt.Fprintln(io.Writer, hash)
	return nil
}
