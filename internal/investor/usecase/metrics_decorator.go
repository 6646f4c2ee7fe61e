package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/onboarding/internal/investor/domain"
	"github.com/allisson/onboarding/internal/metrics"
)

// investorUseCaseWithMetrics decorates InvestorUseCase with metrics instrumentation.
type investorUseCaseWithMetrics struct {
	next    InvestorUseCase
	metrics metrics.BusinessMetrics
}

// NewInvestorUseCaseWithMetrics wraps an InvestorUseCase with metrics recording.
func NewInvestorUseCaseWithMetrics(useCase InvestorUseCase, m metrics.BusinessMetrics) InvestorUseCase {
	return &investorUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (i *investorUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)

	i.metrics.RecordOperation(ctx, metrics.DomainInvestor, operation, status)
	i.metrics.RecordDuration(ctx, metrics.DomainInvestor, operation, time.Since(start), status)
}

// SelectType records metrics for profile creation.
func (i *investorUseCaseWithMetrics) SelectType(
	ctx context.Context,
	userID uuid.UUID,
	input SelectTypeInput,
) (*domain.Profile, error) {
	start := time.Now()
	profile, err := i.next.SelectType(ctx, userID, input)
	i.record(ctx, "profile_select_type", start, err)
	return profile, err
}

// GetByUserID records metrics for profile lookup.
func (i *investorUseCaseWithMetrics) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	start := time.Now()
	profile, err := i.next.GetByUserID(ctx, userID)
	i.record(ctx, "profile_get", start, err)
	return profile, err
}

// UpdateAccreditation records metrics for accreditation updates.
func (i *investorUseCaseWithMetrics) UpdateAccreditation(
	ctx context.Context,
	profileID uuid.UUID,
	isAccredited bool,
	accreditationType *domain.AccreditationType,
) error {
	start := time.Now()
	err := i.next.UpdateAccreditation(ctx, profileID, isAccredited, accreditationType)
	i.record(ctx, "accreditation_update", start, err)
	return err
}

// RevealTaxID records metrics for tax id reveals.
func (i *investorUseCaseWithMetrics) RevealTaxID(ctx context.Context, profileID, actorID uuid.UUID) (string, error) {
	start := time.Now()
	taxID, err := i.next.RevealTaxID(ctx, profileID, actorID)
	i.record(ctx, "tax_id_reveal", start, err)
	return taxID, err
}

// Delete records metrics for profile deletion.
func (i *investorUseCaseWithMetrics) Delete(ctx context.Context, profileID uuid.UUID) error {
	start := time.Now()
	err := i.next.Delete(ctx, profileID)
	i.record(ctx, "profile_delete", start, err)
	return err
}
