package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	cryptoDomain "github.com/allisson/onboarding/internal/crypto/domain"
	"github.com/allisson/onboarding/internal/database"
	apperrors "github.com/allisson/onboarding/internal/errors"
	secretsDomain "github.com/allisson/onboarding/internal/secrets/domain"
)

// MySQLSecretStore keeps secrets in the app_secrets table. Values are sealed by
// a KMS keeper before they reach the database.
type MySQLSecretStore struct {
	db     *sql.DB
	keeper cryptoDomain.KMSKeeper
}

// NewMySQLSecretStore creates a new MySQL secret store.
func NewMySQLSecretStore(db *sql.DB, keeper cryptoDomain.KMSKeeper) *MySQLSecretStore {
	return &MySQLSecretStore{db: db, keeper: keeper}
}

// Get loads and opens the named secret.
func (m *MySQLSecretStore) Get(ctx context.Context, name string) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ciphertext, updated_at FROM app_secrets WHERE name = ?`

	var ciphertext []byte
	var updatedAt time.Time
	if err := querier.QueryRowContext(ctx, query, name).Scan(&ciphertext, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret")
	}

	plaintext, err := m.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open secret")
	}

	return &secretsDomain.Secret{Name: name, Value: string(plaintext), UpdatedAt: updatedAt}, nil
}

// Set seals and upserts the named secret.
func (m *MySQLSecretStore) Set(ctx context.Context, name, value string) error {
	ciphertext, err := m.keeper.Encrypt(ctx, []byte(value))
	if err != nil {
		return apperrors.Wrap(err, "failed to seal secret")
	}

	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO app_secrets (name, ciphertext, updated_at) VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE ciphertext = VALUES(ciphertext), updated_at = VALUES(updated_at)`

	if _, err := querier.ExecContext(ctx, query, name, ciphertext, time.Now().UTC()); err != nil {
		return apperrors.Wrap(err, "failed to set secret")
	}
	return nil
}
