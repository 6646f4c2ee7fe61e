package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/onboarding/internal/database"
	"github.com/allisson/onboarding/internal/investor/domain"
	"github.com/allisson/onboarding/internal/testutil"
)

// These tests run against the databases started for integration testing and
// are skipped when those are unreachable.

func TestSQLProfileRepository_Database(t *testing.T) {
	t.Run("PostgreSQL", func(t *testing.T) {
		testutil.SkipIfNoPostgres(t)
		db := testutil.SetupPostgresDB(t)
		defer testutil.TeardownDB(t, db)

		runProfileRepositoryScenarios(t, db, database.DriverPostgres)
	})

	t.Run("MySQL", func(t *testing.T) {
		testutil.SkipIfNoMySQL(t)
		db := testutil.SetupMySQLDB(t)
		defer testutil.TeardownDB(t, db)

		runProfileRepositoryScenarios(t, db, database.DriverMySQL)
	})
}

func runProfileRepositoryScenarios(t *testing.T, db *sql.DB, driver string) {
	ctx := context.Background()
	repo := NewSQLProfileRepository(db, driver)
	now := time.Now().UTC().Truncate(time.Second)

	newDBProfile := func(userID uuid.UUID, detail domain.Detail) *domain.Profile {
		return &domain.Profile{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    userID,
			Type:      detail.InvestorType(),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			Detail:    detail,
		}
	}

	t.Run("Success_EntityRoundTrip", func(t *testing.T) {
		userID := testutil.CreateTestUser(t, db, driver, "entity-"+driver+"@example.com")
		detail := domain.EntityDetail{
			LegalName:        "Acme Holdings LLC",
			EntityType:       "llc",
			StateOfFormation: "DE",
			TaxID:            domain.ProtectedID{Envelope: "env-ein", Masked: "**-***6789"},
			EquityOwners: []domain.EquityOwner{
				{Name: "Grace Hopper", Title: "CEO", OwnershipPercent: decimal.RequireFromString("60.50")},
				{Name: "Alan Turing", Title: "CTO", OwnershipPercent: decimal.RequireFromString("39.50")},
			},
		}
		profile := newDBProfile(userID, detail)

		require.NoError(t, repo.Create(ctx, profile))

		got, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, got.ID)
		assert.Equal(t, domain.InvestorTypeEntity, got.Type)
		assert.True(t, got.CreatedAt.Equal(now))

		gotDetail, ok := got.Detail.(domain.EntityDetail)
		require.True(t, ok)
		assert.Equal(t, "Acme Holdings LLC", gotDetail.LegalName)
		assert.Equal(t, "env-ein", gotDetail.TaxID.Envelope)
		require.Len(t, gotDetail.EquityOwners, 2)
		assert.Equal(t, "Grace Hopper", gotDetail.EquityOwners[0].Name)
		assert.True(t, gotDetail.EquityOwners[0].OwnershipPercent.Equal(decimal.RequireFromString("60.5")))
	})

	t.Run("Success_JointHoldersKeepOrder", func(t *testing.T) {
		userID := testutil.CreateTestUser(t, db, driver, "joint-"+driver+"@example.com")
		detail := domain.JointDetail{
			JointType: "jtwros",
			Holders: []domain.JointHolder{
				{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
				{FirstName: "Charles", LastName: "Babbage", Email: "charles@example.com"},
			},
		}
		profile := newDBProfile(userID, detail)
		require.NoError(t, repo.Create(ctx, profile))

		got, err := repo.GetByID(ctx, profile.ID)
		require.NoError(t, err)
		gotDetail, ok := got.Detail.(domain.JointDetail)
		require.True(t, ok)
		require.Len(t, gotDetail.Holders, 2)
		assert.Equal(t, "Ada", gotDetail.Holders[0].FirstName)
		assert.Equal(t, "Charles", gotDetail.Holders[1].FirstName)
	})

	t.Run("Error_OneProfilePerUser", func(t *testing.T) {
		userID := testutil.CreateTestUser(t, db, driver, "dup-"+driver+"@example.com")
		require.NoError(t, repo.Create(ctx, newDBProfile(userID, domain.IRADetail{Custodian: "Fidelity", IRAType: "roth"})))

		err := repo.Create(ctx, newDBProfile(userID, domain.IRADetail{Custodian: "Vanguard", IRAType: "traditional"}))
		assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
	})

	t.Run("Success_UpdateAccreditation", func(t *testing.T) {
		userID := testutil.CreateTestUser(t, db, driver, "accredit-"+driver+"@example.com")
		profile := newDBProfile(userID, domain.TrustDetail{TrustName: "Family Trust", TrustType: "revocable"})
		require.NoError(t, repo.Create(ctx, profile))

		accreditation := domain.AccreditationNetWorth
		profile.IsAccredited = true
		profile.AccreditationType = &accreditation
		profile.CompletionPercentage = 80
		profile.UpdatedAt = now.Add(time.Minute)
		require.NoError(t, repo.UpdateAccreditation(ctx, profile))

		got, err := repo.GetByID(ctx, profile.ID)
		require.NoError(t, err)
		assert.True(t, got.IsAccredited)
		require.NotNil(t, got.AccreditationType)
		assert.Equal(t, domain.AccreditationNetWorth, *got.AccreditationType)
		assert.Equal(t, 80, got.CompletionPercentage)
	})

	t.Run("Success_DeleteCascadesDetail", func(t *testing.T) {
		userID := testutil.CreateTestUser(t, db, driver, "delete-"+driver+"@example.com")
		profile := newDBProfile(userID, domain.TrustDetail{
			TrustName: "Estate Trust",
			TrustType: "irrevocable",
			Grantors:  []domain.TrustGrantor{{Name: "Mary Shelley"}},
		})
		require.NoError(t, repo.Create(ctx, profile))
		before := testutil.CountRows(t, db, "trust_grantors")

		require.NoError(t, repo.Delete(ctx, profile.ID))

		_, err := repo.GetByID(ctx, profile.ID)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
		assert.Equal(t, before-1, testutil.CountRows(t, db, "trust_grantors"))
	})
}
