package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/allisson/onboarding/internal/investor/domain"
)

// ProfileResponse represents an investor profile in API responses. Tax
// identifiers are only ever returned in masked form.
type ProfileResponse struct {
	ID                   string              `json:"id"`
	UserID               string              `json:"user_id"`
	InvestorType         string              `json:"investor_type"`
	IsAccredited         bool                `json:"is_accredited"`
	AccreditationType    *string             `json:"accreditation_type"`
	CompletionPercentage int                 `json:"completion_percentage"`
	IsActive             bool                `json:"is_active"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
	Individual           *IndividualResponse `json:"individual,omitempty"`
	Joint                *JointResponse      `json:"joint,omitempty"`
	IRA                  *IRAResponse        `json:"ira,omitempty"`
	Trust                *TrustResponse      `json:"trust,omitempty"`
	Entity               *EntityResponse     `json:"entity,omitempty"`
}

// IndividualResponse is the detail of an individual investor.
type IndividualResponse struct {
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	DateOfBirth *string        `json:"date_of_birth"`
	TaxIDMasked string         `json:"tax_id_masked"`
	Address     AddressRequest `json:"address"`
}

// JointHolderResponse is one holder of a joint account.
type JointHolderResponse struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	TaxIDMasked string `json:"tax_id_masked"`
}

// JointResponse is the detail of a joint account.
type JointResponse struct {
	JointType string                `json:"joint_type"`
	Holders   []JointHolderResponse `json:"holders"`
}

// IRAResponse is the detail of an individual retirement account.
type IRAResponse struct {
	Custodian     string `json:"custodian"`
	AccountNumber string `json:"account_number"`
	IRAType       string `json:"ira_type"`
	OwnerName     string `json:"owner_name"`
	TaxIDMasked   string `json:"tax_id_masked"`
}

// TrustResponse is the detail of a trust.
type TrustResponse struct {
	TrustName     string           `json:"trust_name"`
	TrustType     string           `json:"trust_type"`
	FormationDate *string          `json:"formation_date"`
	TaxIDMasked   string           `json:"tax_id_masked"`
	Grantors      []GrantorRequest `json:"grantors"`
}

// EquityOwnerResponse is an owner of an entity.
type EquityOwnerResponse struct {
	Name             string          `json:"name"`
	Title            string          `json:"title"`
	OwnershipPercent decimal.Decimal `json:"ownership_percent"`
}

// EntityResponse is the detail of a legal entity.
type EntityResponse struct {
	LegalName        string                `json:"legal_name"`
	EntityType       string                `json:"entity_type"`
	StateOfFormation string                `json:"state_of_formation"`
	TaxIDMasked      string                `json:"tax_id_masked"`
	EquityOwners     []EquityOwnerResponse `json:"equity_owners"`
}

// RevealTaxIDResponse carries a decrypted tax identifier.
type RevealTaxIDResponse struct {
	TaxID string `json:"tax_id"` //nolint:gosec // explicitly revealed
}

// MapProfileToResponse converts a domain profile to an API response.
func MapProfileToResponse(profile *domain.Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:                   profile.ID.String(),
		UserID:               profile.UserID.String(),
		InvestorType:         string(profile.Type),
		IsAccredited:         profile.IsAccredited,
		CompletionPercentage: profile.CompletionPercentage,
		IsActive:             profile.IsActive,
		CreatedAt:            profile.CreatedAt,
		UpdatedAt:            profile.UpdatedAt,
	}
	if profile.AccreditationType != nil {
		t := string(*profile.AccreditationType)
		resp.AccreditationType = &t
	}

	switch d := profile.Detail.(type) {
	case domain.IndividualDetail:
		resp.Individual = &IndividualResponse{
			FirstName:   d.FirstName,
			LastName:    d.LastName,
			DateOfBirth: formatDate(d.DateOfBirth),
			TaxIDMasked: d.TaxID.Masked,
			Address: AddressRequest{
				Line1:      d.Address.Line1,
				Line2:      d.Address.Line2,
				City:       d.Address.City,
				State:      d.Address.State,
				PostalCode: d.Address.PostalCode,
				Country:    d.Address.Country,
			},
		}

	case domain.JointDetail:
		holders := make([]JointHolderResponse, 0, len(d.Holders))
		for _, h := range d.Holders {
			holders = append(holders, JointHolderResponse{
				FirstName:   h.FirstName,
				LastName:    h.LastName,
				Email:       h.Email,
				TaxIDMasked: h.TaxID.Masked,
			})
		}
		resp.Joint = &JointResponse{JointType: d.JointType, Holders: holders}

	case domain.IRADetail:
		resp.IRA = &IRAResponse{
			Custodian:     d.Custodian,
			AccountNumber: d.AccountNumber,
			IRAType:       d.IRAType,
			OwnerName:     d.OwnerName,
			TaxIDMasked:   d.TaxID.Masked,
		}

	case domain.TrustDetail:
		grantors := make([]GrantorRequest, 0, len(d.Grantors))
		for _, g := range d.Grantors {
			grantors = append(grantors, GrantorRequest{Name: g.Name, Email: g.Email})
		}
		resp.Trust = &TrustResponse{
			TrustName:     d.TrustName,
			TrustType:     d.TrustType,
			FormationDate: formatDate(d.FormationDate),
			TaxIDMasked:   d.TaxID.Masked,
			Grantors:      grantors,
		}

	case domain.EntityDetail:
		owners := make([]EquityOwnerResponse, 0, len(d.EquityOwners))
		for _, o := range d.EquityOwners {
			owners = append(owners, EquityOwnerResponse{
				Name:             o.Name,
				Title:            o.Title,
				OwnershipPercent: o.OwnershipPercent,
			})
		}
		resp.Entity = &EntityResponse{
			LegalName:        d.LegalName,
			EntityType:       d.EntityType,
			StateOfFormation: d.StateOfFormation,
			TaxIDMasked:      d.TaxID.Masked,
			EquityOwners:     owners,
		}
	}

	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
