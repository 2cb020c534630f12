package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoService "github.com/allisson/mealguard/internal/crypto/service"
)

// RunGenerateKey prints a new random 32-byte field encryption key for the slot
// version. When kmsKeyURI is set the key is wrapped with that KMS key before it
// is encoded, matching what the key store expects when FIELD_ENCRYPTION_KMS_KEY_URI
// is configured.
//
// Rotation is two deploys: add the printed slot, then raise
// FIELD_ENCRYPTION_CURRENT_VERSION to version and run rotate-fields.
func RunGenerateKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	version int,
	prefix string,
	kmsKeyURI string,
	format string,
) error {
	if version < 1 {
		return fmt.Errorf("key version must be positive, got %d", version)
	}
	if err := validateFormat(format); err != nil {
		return err
	}
	if prefix == "" {
		prefix = cryptoService.DefaultKeyEnvPrefix
	}

	var opts []cryptoService.KeyStoreOption
	if kmsKeyURI != "" {
		keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := keeper.Close(); closeErr != nil {
				logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
			}
		}()
		opts = append(opts, cryptoService.WithKMSKeeper(keeper))
	}

	store := cryptoService.NewKeyStore(cryptoService.StaticKeySource{}, version, logger, opts...)
	encoded, err := store.GenerateKey(ctx)
	if err != nil {
		return err
	}

	envName := fmt.Sprintf("%s%d", prefix, version)
	logger.Info("field encryption key generated",
		slog.Int("key_version", version),
		slog.Bool("kms_wrapped", kmsKeyURI != ""),
	)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"env":         envName,
			"key":         encoded,
			"key_version": version,
			"kms_wrapped": kmsKeyURI != "",
		})
	}

	_, _ = fmt.Fprintf(writer, "# Field encryption key version %d\n", version)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "# Wrapped with KMS key: %s\n", kmsKeyURI)
	}
	_, _ = fmt.Fprintln(writer, "# Deploy this slot first, then set FIELD_ENCRYPTION_CURRENT_VERSION to promote it.")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "%s=\"%s\"\n", envName, encoded)
	return nil
}
