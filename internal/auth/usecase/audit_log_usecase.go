package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	authService "github.com/allisson/onboarding/internal/auth/service"
	apperrors "github.com/allisson/onboarding/internal/errors"
)

// verifyBatchSize is the page size used when walking audit logs for verification.
const verifyBatchSize = 500

// auditLogUseCase implements AuditLogUseCase.
type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
	signer       authService.AuditSigner
	keySource    SigningKeySource
	logger       *slog.Logger
}

// Record signs and stores an audit entry. CreatedAt is truncated to
// microseconds so the signature survives a database round trip. When the
// signing key is unavailable the entry is stored unsigned and a warning is logged.
func (a *auditLogUseCase) Record(
	ctx context.Context,
	userID uuid.UUID,
	action string,
	metadata map[string]any,
) error {
	auditLog := &authDomain.AuditLog{
		ID:        uuid.Must(uuid.NewV7()),
		RequestID: RequestIDFromContext(ctx),
		UserID:    userID,
		Action:    action,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	key, err := a.keySource.Key(ctx)
	if err != nil {
		a.logger.Warn("storing unsigned audit log, signing key unavailable",
			slog.String("action", action),
			slog.Any("error", err),
		)
	} else {
		signature, signErr := a.signer.Sign(key, auditLog)
		clear(key)
		if signErr != nil {
			return apperrors.Wrap(signErr, "failed to sign audit log")
		}
		auditLog.Signature = signature
	}

	if err := a.auditLogRepo.Create(ctx, auditLog); err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}

	return nil
}

// List retrieves audit logs matching filter, newest first.
func (a *auditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	auditLogs, err := a.auditLogRepo.List(ctx, offset, limit, filter)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}

	return auditLogs, nil
}

// VerifyBatch walks the matching logs page by page and checks each signature.
func (a *auditLogUseCase) VerifyBatch(ctx context.Context, filter authDomain.AuditLogFilter) (*VerificationReport, error) {
	key, err := a.keySource.Key(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load signing key")
	}
	defer clear(key)

	report := &VerificationReport{
		InvalidLogs: make([]uuid.UUID, 0),
		ByAction:    make(map[string]int64),
	}

	for offset := 0; ; offset += verifyBatchSize {
		auditLogs, err := a.auditLogRepo.List(ctx, offset, verifyBatchSize, filter)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list audit logs")
		}

		for _, auditLog := range auditLogs {
			report.TotalChecked++
			report.ByAction[auditLog.Action]++

			if !auditLog.IsSigned() {
				report.UnsignedCount++
				continue
			}
			report.SignedCount++

			err := a.signer.Verify(key, auditLog)
			switch {
			case err == nil:
				report.ValidCount++
			case errors.Is(err, authDomain.ErrSignatureInvalid):
				report.InvalidCount++
				report.InvalidLogs = append(report.InvalidLogs, auditLog.ID)
			default:
				return nil, apperrors.Wrap(err, "failed to verify audit log")
			}
		}

		if len(auditLogs) < verifyBatchSize {
			break
		}
	}

	return report, nil
}

// NewAuditLogUseCase creates a new AuditLogUseCase with the provided dependencies.
func NewAuditLogUseCase(
	auditLogRepo AuditLogRepository,
	signer authService.AuditSigner,
	keySource SigningKeySource,
	logger *slog.Logger,
) AuditLogUseCase {
	return &auditLogUseCase{
		auditLogRepo: auditLogRepo,
		signer:       signer,
		keySource:    keySource,
		logger:       logger,
	}
}
