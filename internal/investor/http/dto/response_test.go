package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/onboarding/internal/investor/domain"
)

func TestMapProfileToResponse(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	base := func(detail domain.Detail) *domain.Profile {
		return &domain.Profile{
			ID:                   uuid.Must(uuid.NewV7()),
			UserID:               uuid.Must(uuid.NewV7()),
			Type:                 detail.InvestorType(),
			CompletionPercentage: 80,
			IsActive:             true,
			CreatedAt:            now,
			UpdatedAt:            now,
			Detail:               detail,
		}
	}

	t.Run("IndividualMasksTaxID", func(t *testing.T) {
		dob := time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC)
		profile := base(domain.IndividualDetail{
			FirstName:   "Ada",
			DateOfBirth: &dob,
			TaxID:       domain.ProtectedID{Envelope: "v1:secret-envelope", Masked: "***-**-6789"},
		})
		income := domain.AccreditationIncome
		profile.IsAccredited = true
		profile.AccreditationType = &income

		resp := MapProfileToResponse(profile)

		assert.Equal(t, "individual", resp.InvestorType)
		require.NotNil(t, resp.AccreditationType)
		assert.Equal(t, "income", *resp.AccreditationType)
		require.NotNil(t, resp.Individual)
		assert.Equal(t, "***-**-6789", resp.Individual.TaxIDMasked)
		require.NotNil(t, resp.Individual.DateOfBirth)
		assert.Equal(t, "1985-06-15", *resp.Individual.DateOfBirth)
		assert.Nil(t, resp.Joint)

		body, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "secret-envelope")
	})

	t.Run("Entity", func(t *testing.T) {
		profile := base(domain.EntityDetail{
			LegalName:    "Acme LLC",
			TaxID:        domain.ProtectedID{Envelope: "env", Masked: "**-***6789"},
			EquityOwners: []domain.EquityOwner{{Name: "Ada", OwnershipPercent: decimal.NewFromInt(100)}},
		})

		resp := MapProfileToResponse(profile)

		require.NotNil(t, resp.Entity)
		assert.Nil(t, resp.AccreditationType)
		assert.Equal(t, "**-***6789", resp.Entity.TaxIDMasked)
		require.Len(t, resp.Entity.EquityOwners, 1)
		assert.Equal(t, "100", resp.Entity.EquityOwners[0].OwnershipPercent.String())
	})

	t.Run("JointAndTrust", func(t *testing.T) {
		joint := MapProfileToResponse(base(domain.JointDetail{
			JointType: "jtwros",
			Holders:   []domain.JointHolder{{FirstName: "Ada", TaxID: domain.ProtectedID{Masked: "***-**-1111"}}},
		}))
		require.NotNil(t, joint.Joint)
		assert.Equal(t, "***-**-1111", joint.Joint.Holders[0].TaxIDMasked)

		trust := MapProfileToResponse(base(domain.TrustDetail{TrustName: "T"}))
		require.NotNil(t, trust.Trust)
		assert.Nil(t, trust.Trust.FormationDate)
		assert.Empty(t, trust.Trust.Grantors)
	})
}
