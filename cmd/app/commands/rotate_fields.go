package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	accountUseCase "github.com/allisson/mealguard/internal/account/usecase"
)

// RunRotateFields re-encrypts stored account PII to the current field key
// version and encrypts legacy plaintext values. Run it after promoting a new
// key version; a deprecated slot can be removed once a run reports no failures.
//
// Requirements: every key version still referenced by stored envelopes must be
// configured, otherwise those fields are counted as failed.
func RunRotateFields(
	ctx context.Context,
	useCase accountUseCase.RotationUseCase,
	logger *slog.Logger,
	writer io.Writer,
	batchSize int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("rotating encrypted fields", slog.Int("batch_size", batchSize))

	result, err := useCase.RotateFields(ctx, batchSize)
	if err != nil {
		return fmt.Errorf("failed to rotate fields: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]int{
			"scanned":     result.Scanned,
			"encrypted":   result.Encrypted,
			"reencrypted": result.Reencrypted,
			"unchanged":   result.Unchanged,
			"failed":      result.Failed,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(writer, "Field rotation completed")
		_, _ = fmt.Fprintf(writer, "Scanned: %d\n", result.Scanned)
		_, _ = fmt.Fprintf(writer, "Encrypted legacy plaintext: %d\n", result.Encrypted)
		_, _ = fmt.Fprintf(writer, "Re-encrypted: %d\n", result.Reencrypted)
		_, _ = fmt.Fprintf(writer, "Unchanged: %d\n", result.Unchanged)
		_, _ = fmt.Fprintf(writer, "Failed: %d\n", result.Failed)
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d fields could not be rotated", result.Failed)
	}
	return nil
}
