package usecase

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	cryptoUseCase "github.com/allisson/onboarding/internal/crypto/usecase"
	"github.com/allisson/onboarding/internal/database"
	"github.com/allisson/onboarding/internal/investor/domain"
	"github.com/allisson/onboarding/internal/investor/repository"
	"github.com/allisson/onboarding/internal/testutil"
)

const rejectedGrantor = "Rejected Grantor"

// staticKeySource serves a fixed field key.
type staticKeySource struct{}

func (staticKeySource) GetSecret(context.Context, string) (string, error) {
	return "0123456789abcdef0123456789abcdef", nil
}

func TestInvestorUseCase_SelectType_Database(t *testing.T) {
	t.Run("PostgreSQL", func(t *testing.T) {
		testutil.SkipIfNoPostgres(t)
		db := testutil.SetupPostgresDB(t)
		defer testutil.TeardownDB(t, db)

		runSelectTypeAtomicityScenarios(t, db, database.DriverPostgres,
			`ALTER TABLE trust_grantors DROP CONSTRAINT trust_grantors_reject_name`)
	})

	t.Run("MySQL", func(t *testing.T) {
		testutil.SkipIfNoMySQL(t)
		db := testutil.SetupMySQLDB(t)
		defer testutil.TeardownDB(t, db)

		runSelectTypeAtomicityScenarios(t, db, database.DriverMySQL,
			`ALTER TABLE trust_grantors DROP CHECK trust_grantors_reject_name`)
	})
}

func runSelectTypeAtomicityScenarios(t *testing.T, db *sql.DB, driver, dropCheck string) {
	ctx := context.Background()

	// Make the last child insert of a trust profile fail inside the transaction.
	_, err := db.ExecContext(ctx,
		`ALTER TABLE trust_grantors ADD CONSTRAINT trust_grantors_reject_name CHECK (name <> '`+rejectedGrantor+`')`)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), dropCheck)
	})

	newUseCase := func(audit AuditRecorder) InvestorUseCase {
		return NewInvestorUseCase(
			database.NewTxManager(db),
			repository.NewSQLProfileRepository(db, driver),
			cryptoUseCase.NewFieldCipher(staticKeySource{}, "pii-encryption-key"),
			audit,
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)
	}

	trustInput := func(grantor string) SelectTypeInput {
		return SelectTypeInput{
			Type: domain.InvestorTypeTrust,
			Detail: TrustInput{
				TrustName: "Family Trust",
				TrustType: "revocable",
				TaxID:     "12-3456789",
				Grantors: []domain.TrustGrantor{
					{Name: "Mary Shelley"},
					{Name: grantor},
				},
			},
		}
	}

	assertNothingPersisted := func(t *testing.T) {
		t.Helper()
		assert.Equal(t, 0, testutil.CountRows(t, db, "investor_profiles"))
		assert.Equal(t, 0, testutil.CountRows(t, db, "trust_details"))
		assert.Equal(t, 0, testutil.CountRows(t, db, "trust_grantors"))
	}

	t.Run("Error_DetailInsertFailureRollsBackProfile", func(t *testing.T) {
		userID := testutil.CreateTestUser(t, db, driver, "rollback-"+driver+"@example.com")
		audit := &mockAuditRecorder{}

		profile, err := newUseCase(audit).SelectType(ctx, userID, trustInput(rejectedGrantor))

		require.Error(t, err)
		assert.Nil(t, profile)
		assertNothingPersisted(t)
		audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_AuditFailureRollsBackProfile", func(t *testing.T) {
		userID := testutil.CreateTestUser(t, db, driver, "audit-rollback-"+driver+"@example.com")
		audit := &mockAuditRecorder{}
		audit.On("Record", mock.Anything, userID, authDomain.ActionProfileCreated, mock.Anything).
			Return(errors.New("audit store down")).Once()

		_, err := newUseCase(audit).SelectType(ctx, userID, trustInput("Percy Shelley"))

		require.Error(t, err)
		assertNothingPersisted(t)
		audit.AssertExpectations(t)
	})

	t.Run("Success_RetryAfterRollback", func(t *testing.T) {
		userID := testutil.CreateTestUser(t, db, driver, "retry-"+driver+"@example.com")
		uc := newUseCase(&mockAuditRecorder{})

		_, err := uc.SelectType(ctx, userID, trustInput(rejectedGrantor))
		require.Error(t, err)

		audit := &mockAuditRecorder{}
		audit.On("Record", mock.Anything, userID, authDomain.ActionProfileCreated, mock.Anything).Return(nil).Once()

		profile, err := newUseCase(audit).SelectType(ctx, userID, trustInput("Percy Shelley"))
		require.NoError(t, err)

		got, err := uc.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, got.ID)

		detail, ok := got.Detail.(domain.TrustDetail)
		require.True(t, ok)
		require.Len(t, detail.Grantors, 2)
		assert.Equal(t, "Percy Shelley", detail.Grantors[1].Name)
		assert.Equal(t, 2, testutil.CountRows(t, db, "trust_grantors"))
	})
}
