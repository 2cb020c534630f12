package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/mealguard/internal/account/domain"
	cryptoDomain "github.com/allisson/mealguard/internal/crypto/domain"
	cryptoService "github.com/allisson/mealguard/internal/crypto/service"
)

// rotationWorkers bounds concurrent re-encryptions within a batch.
const rotationWorkers = 4

// rotationUseCase implements RotationUseCase.
type rotationUseCase struct {
	accountRepo AccountRepository
	fields      cryptoService.FieldEncryptor
	keys        KeyVersions
	logger      *slog.Logger
}

// NewRotationUseCase creates a new RotationUseCase.
func NewRotationUseCase(
	accountRepo AccountRepository,
	fields cryptoService.FieldEncryptor,
	keys KeyVersions,
	logger *slog.Logger,
) RotationUseCase {
	return &rotationUseCase{
		accountRepo: accountRepo,
		fields:      fields,
		keys:        keys,
		logger:      logger,
	}
}

type rotationCounters struct {
	encrypted, reencrypted, unchanged, failed atomic.Int64
}

// RotateFields pages through every account and rewrites its phone so that:
// legacy plaintext is encrypted, envelopes under a deprecated version are
// re-encrypted with the current key, and everything else is left alone.
//
// Fields that fail to decrypt are counted and logged but do not stop the run.
func (r *rotationUseCase) RotateFields(ctx context.Context, batchSize int) (*RotationResult, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	var (
		counters rotationCounters
		scanned  int
		afterID  = uuid.Nil
	)

	for {
		accounts, err := r.accountRepo.ListForRotation(ctx, afterID, batchSize)
		if err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(rotationWorkers)
		for _, account := range accounts {
			g.Go(func() error {
				return r.rotateAccount(gctx, account, &counters)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		scanned += len(accounts)
		afterID = accounts[len(accounts)-1].ID
		if len(accounts) < batchSize {
			break
		}
	}

	result := &RotationResult{
		Scanned:     scanned,
		Encrypted:   int(counters.encrypted.Load()),
		Reencrypted: int(counters.reencrypted.Load()),
		Unchanged:   int(counters.unchanged.Load()),
		Failed:      int(counters.failed.Load()),
	}
	r.logger.Info("field rotation finished",
		slog.Int("scanned", result.Scanned),
		slog.Int("encrypted", result.Encrypted),
		slog.Int("reencrypted", result.Reencrypted),
		slog.Int("unchanged", result.Unchanged),
		slog.Int("failed", result.Failed),
	)
	return result, nil
}

// rotateAccount handles one account. Only storage errors are returned; a
// stored value that cannot be decrypted is counted as failed.
func (r *rotationUseCase) rotateAccount(
	ctx context.Context,
	account *domain.Account,
	counters *rotationCounters,
) error {
	stored := account.PhoneEncrypted
	if stored == "" {
		counters.unchanged.Add(1)
		return nil
	}

	ctx = cryptoDomain.WithRecordID(ctx, account.ID.String())
	plaintext := stored
	reencrypt := false

	if r.fields.IsEncrypted(stored) {
		envelope, err := cryptoDomain.ParseEnvelope(stored)
		if err != nil {
			return err
		}
		if !r.keys.IsDeprecated(envelope.KeyVersion) {
			counters.unchanged.Add(1)
			return nil
		}
		plaintext, err = r.fields.Decrypt(ctx, envelope)
		if err != nil {
			counters.failed.Add(1)
			r.logger.Error("failed to decrypt field for rotation",
				slog.String("account_id", account.ID.String()),
				slog.Int("key_version", envelope.KeyVersion),
				slog.Any("error", err),
			)
			return nil
		}
		reencrypt = true
	}

	rotated, err := r.fields.EncryptField(ctx, plaintext)
	if err != nil {
		return fmt.Errorf("account %s: %w", account.ID, err)
	}
	if err := r.accountRepo.UpdatePhoneEncrypted(ctx, account.ID, rotated); err != nil {
		return err
	}

	if reencrypt {
		counters.reencrypted.Add(1)
	} else {
		counters.encrypted.Add(1)
	}
	return nil
}
