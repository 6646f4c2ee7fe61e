// Package repository persists refresh tokens and audit logs for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	"github.com/allisson/onboarding/internal/database"
	apperrors "github.com/allisson/onboarding/internal/errors"
)

// PostgreSQLRefreshTokenRepository implements refresh token persistence for PostgreSQL.
type PostgreSQLRefreshTokenRepository struct {
	db *sql.DB
}

// Create inserts a new refresh token.
func (p *PostgreSQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO refresh_tokens (id, user_id, token_hash, issued_at, expires_at, revoked_at) 
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.IssuedAt,
		token.ExpiresAt,
		token.RevokedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refresh token")
	}
	return nil
}

// GetByTokenHash returns the token row whatever its state. Returns
// ErrRefreshTokenNotFound when no row matches.
func (p *PostgreSQLRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, token_hash, issued_at, expires_at, revoked_at 
			  FROM refresh_tokens WHERE token_hash = $1`

	var token authDomain.RefreshToken
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.IssuedAt,
		&token.ExpiresAt,
		&token.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRefreshTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get refresh token")
	}

	return &token, nil
}

// Revoke sets revoked_at when the token is not yet revoked. Reports whether a
// row changed, which lets two concurrent revocations of the same token be told apart.
func (p *PostgreSQLRefreshTokenRepository) Revoke(
	ctx context.Context,
	tokenHash string,
	at time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens SET revoked_at = $1 WHERE token_hash = $2 AND revoked_at IS NULL`

	result, err := querier.ExecContext(ctx, query, at, tokenHash)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to revoke refresh token")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}

	return rowsAffected > 0, nil
}

// RevokeAllForUser revokes every active token of the user in one statement.
// Rows already revoked or expired keep their state.
func (p *PostgreSQLRefreshTokenRepository) RevokeAllForUser(
	ctx context.Context,
	userID uuid.UUID,
	at time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens SET revoked_at = $1 
			  WHERE user_id = $2 AND revoked_at IS NULL AND expires_at > $1`

	result, err := querier.ExecContext(ctx, query, at, userID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to revoke refresh tokens")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}

	return rowsAffected, nil
}

// DeleteExpired deletes tokens that expired or were revoked before olderThan.
func (p *PostgreSQLRefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM refresh_tokens WHERE expires_at < $1 OR revoked_at < $1`

	result, err := querier.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired refresh tokens")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}

	return rowsAffected, nil
}

// CountExpired counts what DeleteExpired would delete.
func (p *PostgreSQLRefreshTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM refresh_tokens WHERE expires_at < $1 OR revoked_at < $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired refresh tokens")
	}

	return count, nil
}

// NewPostgreSQLRefreshTokenRepository creates a new PostgreSQL refresh token repository.
func NewPostgreSQLRefreshTokenRepository(db *sql.DB) *PostgreSQLRefreshTokenRepository {
	return &PostgreSQLRefreshTokenRepository{db: db}
}
