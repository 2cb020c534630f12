package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/mealguard/internal/auth/domain"
	"github.com/allisson/mealguard/internal/metrics"
)

// authenticatorWithMetrics decorates Authenticator with metrics instrumentation.
type authenticatorWithMetrics struct {
	next    Authenticator
	metrics metrics.BusinessMetrics
}

// NewAuthenticatorWithMetrics wraps an Authenticator with metrics recording.
func NewAuthenticatorWithMetrics(next Authenticator, m metrics.BusinessMetrics) Authenticator {
	return &authenticatorWithMetrics{
		next:    next,
		metrics: m,
	}
}

// Authenticate records metrics for request authentication.
func (a *authenticatorWithMetrics) Authenticate(ctx context.Context, token string) (*authDomain.Identity, error) {
	start := time.Now()
	identity, err := a.next.Authenticate(ctx, token)
	status := metrics.Status(err)

	a.metrics.RecordOperation(ctx, metrics.DomainAuth, "authenticate", status)
	a.metrics.RecordDuration(ctx, metrics.DomainAuth, "authenticate", time.Since(start), status)

	return identity, err
}

// loginUseCaseWithMetrics decorates LoginUseCase with metrics instrumentation.
type loginUseCaseWithMetrics struct {
	next    LoginUseCase
	metrics metrics.BusinessMetrics
}

// NewLoginUseCaseWithMetrics wraps a LoginUseCase with metrics recording.
func NewLoginUseCaseWithMetrics(next LoginUseCase, m metrics.BusinessMetrics) LoginUseCase {
	return &loginUseCaseWithMetrics{
		next:    next,
		metrics: m,
	}
}

// Login records metrics for login attempts.
func (l *loginUseCaseWithMetrics) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	start := time.Now()
	output, err := l.next.Login(ctx, input)
	status := metrics.Status(err)

	l.metrics.RecordOperation(ctx, metrics.DomainAuth, "login", status)
	l.metrics.RecordDuration(ctx, metrics.DomainAuth, "login", time.Since(start), status)

	return output, err
}
