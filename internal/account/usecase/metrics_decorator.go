package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/mealguard/internal/account/domain"
	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	"github.com/allisson/mealguard/internal/metrics"
)

// useCaseWithMetrics decorates UseCase with metrics instrumentation.
type useCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUseCaseWithMetrics(next UseCase, m metrics.BusinessMetrics) UseCase {
	return &useCaseWithMetrics{next: next, metrics: m}
}

func (u *useCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	u.metrics.RecordOperation(ctx, metrics.DomainAccount, operation, status)
	u.metrics.RecordDuration(ctx, metrics.DomainAccount, operation, time.Since(start), status)
}

func (u *useCaseWithMetrics) Create(
	ctx context.Context,
	actor *authDomain.Identity,
	input *domain.CreateAccountInput,
) (*domain.Account, error) {
	start := time.Now()
	account, err := u.next.Create(ctx, actor, input)
	u.record(ctx, "create", start, err)
	return account, err
}

func (u *useCaseWithMetrics) Profile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	start := time.Now()
	profile, err := u.next.Profile(ctx, id)
	u.record(ctx, "profile", start, err)
	return profile, err
}

func (u *useCaseWithMetrics) List(
	ctx context.Context,
	actor *authDomain.Identity,
	tenantID uuid.UUID,
	offset, limit int,
) ([]*domain.Account, error) {
	start := time.Now()
	accounts, err := u.next.List(ctx, actor, tenantID, offset, limit)
	u.record(ctx, "list", start, err)
	return accounts, err
}

func (u *useCaseWithMetrics) Deactivate(ctx context.Context, actor *authDomain.Identity, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Deactivate(ctx, actor, id)
	u.record(ctx, "deactivate", start, err)
	return err
}
