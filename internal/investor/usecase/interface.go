// Package usecase implements investor profile onboarding: type selection,
// accreditation and access to encrypted tax identifiers.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/onboarding/internal/investor/domain"
)

// ProfileRepository persists investor profiles together with their detail.
type ProfileRepository interface {
	// Create inserts the profile row, its detail row and the detail's child rows.
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	UpdateAccreditation(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuditRecorder writes audit entries. The auth audit log use case implements it.
type AuditRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, action string, metadata map[string]any) error
}

// InvestorUseCase defines the investor profile operations.
type InvestorUseCase interface {
	// SelectType creates the user's profile and its single type-specific detail atomically.
	SelectType(ctx context.Context, userID uuid.UUID, input SelectTypeInput) (*domain.Profile, error)

	// GetByUserID loads the user's profile and the detail named by its type.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// UpdateAccreditation sets the accreditation flag and basis.
	UpdateAccreditation(
		ctx context.Context,
		profileID uuid.UUID,
		isAccredited bool,
		accreditationType *domain.AccreditationType,
	) error

	// RevealTaxID decrypts the primary tax identifier of the profile. Every
	// reveal is audited; when the audit entry cannot be written nothing is revealed.
	RevealTaxID(ctx context.Context, profileID, actorID uuid.UUID) (string, error)

	// Delete removes the profile; its detail and child rows cascade.
	Delete(ctx context.Context, profileID uuid.UUID) error
}
