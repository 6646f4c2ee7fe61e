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

// MySQLRefreshTokenRepository implements refresh token persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLRefreshTokenRepository struct {
	db *sql.DB
}

// Create inserts a new refresh token.
func (m *MySQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal refresh token id")
	}

	userID, err := token.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal refresh token user_id")
	}

	query := `INSERT INTO refresh_tokens (id, user_id, token_hash, issued_at, expires_at, revoked_at) 
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
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
func (m *MySQLRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, token_hash, issued_at, expires_at, revoked_at 
			  FROM refresh_tokens WHERE token_hash = ?`

	var token authDomain.RefreshToken
	var id, userID []byte
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&id,
		&userID,
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

	if err := token.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal refresh token id")
	}
	if err := token.UserID.UnmarshalBinary(userID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal refresh token user_id")
	}

	return &token, nil
}

// Revoke sets revoked_at when the token is not yet revoked and reports whether a row changed.
func (m *MySQLRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string, at time.Time) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL`

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
func (m *MySQLRefreshTokenRepository) RevokeAllForUser(
	ctx context.Context,
	userID uuid.UUID,
	at time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `UPDATE refresh_tokens SET revoked_at = ? 
			  WHERE user_id = ? AND revoked_at IS NULL AND expires_at > ?`

	result, err := querier.ExecContext(ctx, query, at, id, at)
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
func (m *MySQLRefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM refresh_tokens WHERE expires_at < ? OR revoked_at < ?`

	result, err := querier.ExecContext(ctx, query, olderThan, olderThan)
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
func (m *MySQLRefreshTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM refresh_tokens WHERE expires_at < ? OR revoked_at < ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, olderThan, olderThan).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired refresh tokens")
	}

	return count, nil
}

// NewMySQLRefreshTokenRepository creates a new MySQL refresh token repository.
func NewMySQLRefreshTokenRepository(db *sql.DB) *MySQLRefreshTokenRepository {
	return &MySQLRefreshTokenRepository{db: db}
}
