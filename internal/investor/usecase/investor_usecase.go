package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	cryptoUseCase "github.com/allisson/onboarding/internal/crypto/usecase"
	"github.com/allisson/onboarding/internal/database"
	apperrors "github.com/allisson/onboarding/internal/errors"
	"github.com/allisson/onboarding/internal/investor/domain"
	appValidation "github.com/allisson/onboarding/internal/validation"
)

// ErrTaxIDNotSet indicates the profile has no stored tax identifier to reveal.
var ErrTaxIDNotSet = apperrors.Wrap(apperrors.ErrNotFound, "tax id not set")

// investorUseCase implements InvestorUseCase.
type investorUseCase struct {
	txManager     database.TxManager
	profileRepo   ProfileRepository
	fieldCipher   cryptoUseCase.FieldCipher
	auditRecorder AuditRecorder
	logger        *slog.Logger
	now           func() time.Time
}

// SelectType validates the input, encrypts every tax identifier, then creates
// the profile, its detail and the audit entry in one transaction.
func (u *investorUseCase) SelectType(
	ctx context.Context,
	userID uuid.UUID,
	input SelectTypeInput,
) (*domain.Profile, error) {
	if _, err := domain.ParseInvestorType(string(input.Type)); err != nil {
		return nil, err
	}
	if input.Detail == nil {
		return nil, domain.ErrDetailRequired
	}
	if input.Detail.InvestorType() != input.Type {
		return nil, domain.ErrDetailTypeMismatch
	}
	if err := input.Detail.Validate(); err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	detail, err := input.Detail.toDetail(ctx, u.protect)
	if err != nil {
		return nil, err
	}

	profile, err := domain.NewProfile(userID, detail, u.now().UTC())
	if err != nil {
		return nil, err
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		_, err := u.profileRepo.GetByUserID(ctx, userID)
		switch {
		case err == nil:
			return domain.ErrProfileAlreadyExists
		case !apperrors.Is(err, domain.ErrProfileNotFound):
			return err
		}

		if err := u.profileRepo.Create(ctx, profile); err != nil {
			return err
		}

		return u.auditRecorder.Record(ctx, userID, authDomain.ActionProfileCreated, map[string]any{
			"profile_id":    profile.ID.String(),
			"investor_type": string(profile.Type),
		})
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("investor profile created",
		slog.String("profile_id", profile.ID.String()),
		slog.String("investor_type", string(profile.Type)))

	return profile, nil
}

// GetByUserID loads the user's profile.
func (u *investorUseCase) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return u.profileRepo.GetByUserID(ctx, userID)
}

// UpdateAccreditation changes the accreditation state and records it in the audit log.
func (u *investorUseCase) UpdateAccreditation(
	ctx context.Context,
	profileID uuid.UUID,
	isAccredited bool,
	accreditationType *domain.AccreditationType,
) error {
	if err := domain.ValidateAccreditation(isAccredited, accreditationType); err != nil {
		return err
	}

	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		profile, err := u.profileRepo.GetByID(ctx, profileID)
		if err != nil {
			return err
		}

		if err := profile.SetAccreditation(isAccredited, accreditationType, u.now().UTC()); err != nil {
			return err
		}

		if err := u.profileRepo.UpdateAccreditation(ctx, profile); err != nil {
			return err
		}

		metadata := map[string]any{
			"profile_id":    profile.ID.String(),
			"is_accredited": isAccredited,
		}
		if accreditationType != nil {
			metadata["accreditation_type"] = string(*accreditationType)
		}
		return u.auditRecorder.Record(ctx, profile.UserID, authDomain.ActionAccreditationUpdated, metadata)
	})
}

// RevealTaxID records the reveal and then decrypts the primary tax identifier.
func (u *investorUseCase) RevealTaxID(ctx context.Context, profileID, actorID uuid.UUID) (string, error) {
	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return "", err
	}

	taxID := profile.Detail.PrimaryTaxID()
	if !taxID.IsSet() {
		return "", ErrTaxIDNotSet
	}

	err = u.auditRecorder.Record(ctx, actorID, authDomain.ActionTaxIDRevealed, map[string]any{
		"profile_id": profile.ID.String(),
		"owner_id":   profile.UserID.String(),
	})
	if err != nil {
		return "", apperrors.Wrap(err, "failed to audit tax id reveal")
	}

	plaintext, err := u.fieldCipher.Decrypt(ctx, taxID.Envelope)
	if err != nil {
		u.logger.Error("failed to decrypt tax id",
			slog.String("profile_id", profile.ID.String()),
			slog.Any("error", err))
		return "", err
	}

	return plaintext, nil
}

// Delete removes the profile and records the deletion.
func (u *investorUseCase) Delete(ctx context.Context, profileID uuid.UUID) error {
	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		profile, err := u.profileRepo.GetByID(ctx, profileID)
		if err != nil {
			return err
		}

		if err := u.profileRepo.Delete(ctx, profileID); err != nil {
			return err
		}

		return u.auditRecorder.Record(ctx, profile.UserID, authDomain.ActionProfileDeleted, map[string]any{
			"profile_id":    profile.ID.String(),
			"investor_type": string(profile.Type),
		})
	})
}

func (u *investorUseCase) protect(ctx context.Context, plaintext string) (domain.ProtectedID, error) {
	envelope, err := u.fieldCipher.Encrypt(ctx, plaintext)
	if err != nil {
		return domain.ProtectedID{}, err
	}
	return domain.ProtectedID{
		Envelope: envelope,
		Masked:   u.fieldCipher.Mask(plaintext),
	}, nil
}

// NewInvestorUseCase creates a new InvestorUseCase with the provided dependencies.
func NewInvestorUseCase(
	txManager database.TxManager,
	profileRepo ProfileRepository,
	fieldCipher cryptoUseCase.FieldCipher,
	auditRecorder AuditRecorder,
	logger *slog.Logger,
) InvestorUseCase {
	return &investorUseCase{
		txManager:     txManager,
		profileRepo:   profileRepo,
		fieldCipher:   fieldCipher,
		auditRecorder: auditRecorder,
		logger:        logger,
		now:           time.Now,
	}
}
