package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	authService "github.com/allisson/onboarding/internal/auth/service"
	"github.com/allisson/onboarding/internal/database"
	apperrors "github.com/allisson/onboarding/internal/errors"
	userDomain "github.com/allisson/onboarding/internal/user/domain"
)

// credentialUseCase implements CredentialUseCase.
type credentialUseCase struct {
	txManager              database.TxManager
	refreshTokenRepo       RefreshTokenRepository
	userReader             UserReader
	accessTokenService     authService.AccessTokenService
	tokenService           authService.TokenService
	passwordService        authService.PasswordService
	auditLogUseCase        AuditLogUseCase
	refreshTokenExpiration time.Duration
	logger                 *slog.Logger
	now                    func() time.Time
}

// IssueAccessToken signs a short-lived access token.
func (c *credentialUseCase) IssueAccessToken(
	userID uuid.UUID,
	email, name, role string,
) (string, time.Time, error) {
	return c.accessTokenService.Issue(userID, email, name, role)
}

// IssueRefreshToken generates a refresh token and stores its hash.
func (c *credentialUseCase) IssueRefreshToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	return c.issueRefreshToken(ctx, userID, c.now().UTC())
}

func (c *credentialUseCase) issueRefreshToken(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (string, time.Time, error) {
	plainToken, tokenHash, err := c.tokenService.GenerateToken()
	if err != nil {
		return "", time.Time{}, err
	}

	token := &authDomain.RefreshToken{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		TokenHash: tokenHash,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.refreshTokenExpiration),
	}

	if err := c.refreshTokenRepo.Create(ctx, token); err != nil {
		return "", time.Time{}, err
	}

	return plainToken, token.ExpiresAt, nil
}

// ValidateRefreshToken returns the owner of an active token.
func (c *credentialUseCase) ValidateRefreshToken(ctx context.Context, token string) (*uuid.UUID, error) {
	stored, err := c.refreshTokenRepo.GetByTokenHash(ctx, c.tokenService.HashToken(token))
	if err != nil {
		if errors.Is(err, authDomain.ErrRefreshTokenNotFound) {
			c.logger.Debug("refresh token not found")
			return nil, nil
		}
		return nil, err
	}

	if state := stored.State(c.now()); state != authDomain.TokenStateActive {
		c.logger.Debug("refresh token not active", slog.String("state", string(state)))
		return nil, nil
	}

	userID := stored.UserID
	return &userID, nil
}

// RevokeToken revokes the token if it is still unrevoked.
func (c *credentialUseCase) RevokeToken(ctx context.Context, token string) error {
	_, err := c.refreshTokenRepo.Revoke(ctx, c.tokenService.HashToken(token), c.now().UTC())
	return err
}

// RevokeAllForUser revokes every active token of the user.
func (c *credentialUseCase) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	count, err := c.refreshTokenRepo.RevokeAllForUser(ctx, userID, c.now().UTC())
	if err != nil {
		return err
	}

	c.recordAudit(ctx, userID, authDomain.ActionRevokeAll, map[string]any{"revoked_count": count})
	return nil
}

// RecoverClaimsFromExpiredToken parses a token ignoring its expiration.
func (c *credentialUseCase) RecoverClaimsFromExpiredToken(token string) (*authDomain.AccessClaims, error) {
	claims, err := c.accessTokenService.ParseIgnoringExpiry(token)
	if err != nil {
		c.logger.Debug("could not recover claims from access token")
		return nil, nil
	}
	return claims, nil
}

// Login verifies the user's password and issues a new token pair.
//
// Unknown email, inactive user and wrong password all return
// ErrInvalidCredentials so the response does not reveal which one failed.
func (c *credentialUseCase) Login(ctx context.Context, email, password string) (*authDomain.TokenPair, error) {
	user, err := c.userReader.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			c.passwordService.CompareDummy(password)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	matches := c.passwordService.Compare(password, user.Password)
	if !user.IsActive || !matches {
		c.recordAudit(ctx, user.ID, authDomain.ActionLoginFailed, nil)
		return nil, authDomain.ErrInvalidCredentials
	}

	pair, err := c.issuePair(ctx, user, c.now().UTC())
	if err != nil {
		return nil, err
	}

	c.recordAudit(ctx, user.ID, authDomain.ActionLogin, nil)
	return pair, nil
}

// Refresh rotates the refresh token.
//
// The presented token is revoked with a conditional update in the same
// transaction that stores its replacement. When two refreshes race on one
// token only one of them revokes a row; the other gets ErrInvalidCredentials.
func (c *credentialUseCase) Refresh(
	ctx context.Context,
	refreshToken, expiredAccessToken string,
) (*authDomain.TokenPair, error) {
	tokenHash := c.tokenService.HashToken(refreshToken)
	now := c.now().UTC()

	var pair *authDomain.TokenPair
	var userID uuid.UUID

	err := c.txManager.WithTx(ctx, func(ctx context.Context) error {
		stored, err := c.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, authDomain.ErrRefreshTokenNotFound) {
				return authDomain.ErrInvalidCredentials
			}
			return err
		}

		if !stored.IsActive(now) {
			return authDomain.ErrInvalidCredentials
		}

		if expiredAccessToken != "" {
			claims, err := c.accessTokenService.ParseIgnoringExpiry(expiredAccessToken)
			if err != nil || claims.Subject != stored.UserID.String() {
				return authDomain.ErrInvalidCredentials
			}
		}

		user, err := c.userReader.GetByID(ctx, stored.UserID)
		if err != nil {
			if errors.Is(err, userDomain.ErrUserNotFound) {
				return authDomain.ErrInvalidCredentials
			}
			return err
		}
		if !user.IsActive {
			return authDomain.ErrInvalidCredentials
		}

		revoked, err := c.refreshTokenRepo.Revoke(ctx, tokenHash, now)
		if err != nil {
			return err
		}
		if !revoked {
			return authDomain.ErrInvalidCredentials
		}

		pair, err = c.issuePair(ctx, user, now)
		if err != nil {
			return err
		}

		userID = user.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.recordAudit(ctx, userID, authDomain.ActionRefresh, nil)
	return pair, nil
}

// Logout revokes the refresh token. Unknown or inactive tokens succeed silently.
func (c *credentialUseCase) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := c.tokenService.HashToken(refreshToken)

	stored, err := c.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrRefreshTokenNotFound) {
			return nil
		}
		return err
	}

	revoked, err := c.refreshTokenRepo.Revoke(ctx, tokenHash, c.now().UTC())
	if err != nil {
		return err
	}

	if revoked {
		c.recordAudit(ctx, stored.UserID, authDomain.ActionLogout, nil)
	}
	return nil
}

// CleanupExpired deletes refresh tokens that expired or were revoked more than days ago.
func (c *credentialUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be non-negative")
	}

	cutoff := c.now().UTC().AddDate(0, 0, -days)

	if dryRun {
		return c.refreshTokenRepo.CountExpired(ctx, cutoff)
	}
	return c.refreshTokenRepo.DeleteExpired(ctx, cutoff)
}

func (c *credentialUseCase) issuePair(
	ctx context.Context,
	user *userDomain.User,
	now time.Time,
) (*authDomain.TokenPair, error) {
	accessToken, accessExpiresAt, err := c.accessTokenService.Issue(
		user.ID,
		user.Email,
		user.Name,
		string(user.Role),
	)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiresAt, err := c.issueRefreshToken(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}

	return &authDomain.TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}

// recordAudit writes an audit entry. A failure is logged and does not fail the
// credential operation that already happened.
func (c *credentialUseCase) recordAudit(
	ctx context.Context,
	userID uuid.UUID,
	action string,
	metadata map[string]any,
) {
	if err := c.auditLogUseCase.Record(ctx, userID, action, metadata); err != nil {
		c.logger.Warn("failed to record audit log",
			slog.String("action", action),
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	}
}

// CredentialConfig holds credential lifetimes.
type CredentialConfig struct {
	RefreshTokenExpiration time.Duration
}

// NewCredentialUseCase creates a new CredentialUseCase with the provided dependencies.
func NewCredentialUseCase(
	txManager database.TxManager,
	refreshTokenRepo RefreshTokenRepository,
	userReader UserReader,
	accessTokenService authService.AccessTokenService,
	tokenService authService.TokenService,
	passwordService authService.PasswordService,
	auditLogUseCase AuditLogUseCase,
	cfg CredentialConfig,
	logger *slog.Logger,
) CredentialUseCase {
	return &credentialUseCase{
		txManager:              txManager,
		refreshTokenRepo:       refreshTokenRepo,
		userReader:             userReader,
		accessTokenService:     accessTokenService,
		tokenService:           tokenService,
		passwordService:        passwordService,
		auditLogUseCase:        auditLogUseCase,
		refreshTokenExpiration: cfg.RefreshTokenExpiration,
		logger:                 logger,
		now:                    time.Now,
	}
}
