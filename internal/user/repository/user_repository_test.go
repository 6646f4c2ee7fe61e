package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/onboarding/internal/user/domain"
)

var userColumns = []string{"id", "name", "email", "password", "role", "is_active", "created_at", "updated_at"}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestUser() *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "John Doe",
		Email:     "john@example.com",
		Password:  "hashed",
		Role:      domain.RoleInvestor,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLUserRepository(db)
		user := newTestUser()

		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(user.ID, user.Name, user.Email, user.Password, "investor", true, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, user))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, newTestUser())

		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("connection reset"))

		err := repo.Create(ctx, newTestUser())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create user")
	})
}

func TestPostgreSQLUserRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ByEmail", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLUserRepository(db)
		user := newTestUser()

		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs(user.Email).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				user.ID, user.Name, user.Email, user.Password, "advisor", true, user.CreatedAt, user.UpdatedAt,
			))

		got, err := repo.GetByEmail(ctx, user.Email)

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, domain.RoleAdvisor, got.Role)
		assert.True(t, got.IsActive)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLUserRepository(db)
		id := uuid.Must(uuid.NewV7())

		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetByID(ctx, id)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestMySQLUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreateUsesBinaryID", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewMySQLUserRepository(db)
		user := newTestUser()
		idBytes, err := user.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO users .* VALUES \(\?, \?, \?, \?, \?, \?, \?, \?\)`).
			WithArgs(idBytes, user.Name, user.Email, user.Password, "investor", true, user.CreatedAt, user.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, user))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		err := repo.Create(ctx, newTestUser())

		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("Success_GetByIDDecodesBinaryID", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewMySQLUserRepository(db)
		user := newTestUser()
		idBytes, err := user.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \?`).
			WithArgs(idBytes).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				idBytes, user.Name, user.Email, user.Password, "admin", false, user.CreatedAt, user.UpdatedAt,
			))

		got, err := repo.GetByID(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, domain.RoleAdmin, got.Role)
		assert.False(t, got.IsActive)
	})
}
