package usecase

import (
	"context"
	"time"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	"github.com/allisson/clinicnotes/internal/metrics"
)

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *accountUseCaseWithMetrics) record(ctx context.Context, operation, status string, start time.Time) {
	a.metrics.RecordOperation(ctx, "account", operation, status)
	a.metrics.RecordDuration(ctx, "account", operation, time.Since(start), status)
}

// Create records metrics for account creation.
func (a *accountUseCaseWithMetrics) Create(
	ctx context.Context,
	username string,
	password []byte,
) (*accountDomain.Identity, error) {
	start := time.Now()
	identity, err := a.next.Create(ctx, username, password)
	a.record(ctx, "account_create", statusOf(err), start)
	return identity, err
}

// Authenticate records metrics for password checks. A wrong password is a "failure".
func (a *accountUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	password []byte,
) (*accountDomain.Identity, bool, error) {
	start := time.Now()
	identity, ok, err := a.next.Authenticate(ctx, password)

	status := statusOf(err)
	if err == nil && !ok {
		status = metrics.StatusFailure
	}
	a.record(ctx, "account_authenticate", status, start)

	return identity, ok, err
}

// Unlock records metrics for DEK unlocks.
func (a *accountUseCaseWithMetrics) Unlock(
	ctx context.Context,
	password []byte,
) (*accountDomain.Identity, *cryptoDomain.Dek, error) {
	start := time.Now()
	identity, dek, err := a.next.Unlock(ctx, password)
	a.record(ctx, "account_unlock", statusOf(err), start)
	return identity, dek, err
}

// ChangePassword records metrics for password changes.
func (a *accountUseCaseWithMetrics) ChangePassword(ctx context.Context, current, next []byte) error {
	start := time.Now()
	err := a.next.ChangePassword(ctx, current, next)
	a.record(ctx, "account_change_password", statusOf(err), start)
	return err
}

// Status records metrics for status lookups.
func (a *accountUseCaseWithMetrics) Status(ctx context.Context) (*accountDomain.Identity, error) {
	start := time.Now()
	identity, err := a.next.Status(ctx)
	a.record(ctx, "account_status", statusOf(err), start)
	return identity, err
}

func statusOf(err error) string {
	if err != nil {
		return metrics.StatusError
	}
	return metrics.StatusSuccess
}
