// Package dto provides data transfer objects for investor profile requests and responses.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	"github.com/allisson/onboarding/internal/investor/domain"
	investorUseCase "github.com/allisson/onboarding/internal/investor/usecase"
)

// dateLayout is the wire format of calendar dates.
const dateLayout = "2006-01-02"

var investorTypes = []any{"individual", "joint", "ira", "trust", "entity"}

// AddressRequest is a postal address.
type AddressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// IndividualRequest is the detail of an individual investor.
type IndividualRequest struct {
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	DateOfBirth string         `json:"date_of_birth"`
	TaxID       string         `json:"tax_id"` //nolint:gosec // request field
	Address     AddressRequest `json:"address"`
}

// Validate checks the date format. Field rules are applied by the use case.
func (r *IndividualRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DateOfBirth, validation.Date(dateLayout)),
	)
}

// JointHolderRequest is one holder of a joint account.
type JointHolderRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	TaxID     string `json:"tax_id"` //nolint:gosec // request field
}

// JointRequest is the detail of a joint account.
type JointRequest struct {
	JointType string               `json:"joint_type"`
	Holders   []JointHolderRequest `json:"holders"`
}

// IRARequest is the detail of an individual retirement account.
type IRARequest struct {
	Custodian     string `json:"custodian"`
	AccountNumber string `json:"account_number"`
	IRAType       string `json:"ira_type"`
	OwnerName     string `json:"owner_name"`
	TaxID         string `json:"tax_id"` //nolint:gosec // request field
}

// GrantorRequest is a trust grantor.
type GrantorRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TrustRequest is the detail of a trust.
type TrustRequest struct {
	TrustName     string           `json:"trust_name"`
	TrustType     string           `json:"trust_type"`
	FormationDate string           `json:"formation_date"`
	TaxID         string           `json:"tax_id"` //nolint:gosec // request field
	Grantors      []GrantorRequest `json:"grantors"`
}

// Validate checks the date format. Field rules are applied by the use case.
func (r *TrustRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FormationDate, validation.Date(dateLayout)),
	)
}

// EquityOwnerRequest is an owner of an entity. Percentages are accepted as
// JSON numbers or strings.
type EquityOwnerRequest struct {
	Name             string          `json:"name"`
	Title            string          `json:"title"`
	OwnershipPercent decimal.Decimal `json:"ownership_percent"`
}

// EntityRequest is the detail of a legal entity.
type EntityRequest struct {
	LegalName        string               `json:"legal_name"`
	EntityType       string               `json:"entity_type"`
	StateOfFormation string               `json:"state_of_formation"`
	TaxID            string               `json:"tax_id"` //nolint:gosec // request field
	EquityOwners     []EquityOwnerRequest `json:"equity_owners"`
}

// SelectTypeRequest creates the investor profile. Exactly the detail object
// named by investor_type must be present.
type SelectTypeRequest struct {
	InvestorType string             `json:"investor_type"`
	Individual   *IndividualRequest `json:"individual,omitempty"`
	Joint        *JointRequest      `json:"joint,omitempty"`
	IRA          *IRARequest        `json:"ira,omitempty"`
	Trust        *TrustRequest      `json:"trust,omitempty"`
	Entity       *EntityRequest     `json:"entity,omitempty"`
}

// Validate checks the type and that only its detail object is present.
func (r *SelectTypeRequest) Validate() error {
	detailFor := func(t domain.InvestorType) validation.Rule {
		if r.InvestorType == string(t) {
			return validation.NotNil
		}
		return validation.Nil.Error("must be omitted for this investor type")
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.InvestorType, validation.Required, validation.In(investorTypes...)),
		validation.Field(&r.Individual, detailFor(domain.InvestorTypeIndividual)),
		validation.Field(&r.Joint, detailFor(domain.InvestorTypeJoint)),
		validation.Field(&r.IRA, detailFor(domain.InvestorTypeIRA)),
		validation.Field(&r.Trust, detailFor(domain.InvestorTypeTrust)),
		validation.Field(&r.Entity, detailFor(domain.InvestorTypeEntity)),
	)
}

// ToInput converts a validated request into the use case input.
func (r *SelectTypeRequest) ToInput() investorUseCase.SelectTypeInput {
	input := investorUseCase.SelectTypeInput{Type: domain.InvestorType(r.InvestorType)}

	switch {
	case r.Individual != nil:
		d := r.Individual
		input.Detail = investorUseCase.IndividualInput{
			FirstName:   d.FirstName,
			LastName:    d.LastName,
			DateOfBirth: parseDate(d.DateOfBirth),
			TaxID:       d.TaxID,
			Address: domain.Address{
				Line1:      d.Address.Line1,
				Line2:      d.Address.Line2,
				City:       d.Address.City,
				State:      d.Address.State,
				PostalCode: d.Address.PostalCode,
				Country:    d.Address.Country,
			},
		}

	case r.Joint != nil:
		holders := make([]investorUseCase.JointHolderInput, 0, len(r.Joint.Holders))
		for _, h := range r.Joint.Holders {
			holders = append(holders, investorUseCase.JointHolderInput{
				FirstName: h.FirstName,
				LastName:  h.LastName,
				Email:     h.Email,
				TaxID:     h.TaxID,
			})
		}
		input.Detail = investorUseCase.JointInput{JointType: r.Joint.JointType, Holders: holders}

	case r.IRA != nil:
		input.Detail = investorUseCase.IRAInput{
			Custodian:     r.IRA.Custodian,
			AccountNumber: r.IRA.AccountNumber,
			IRAType:       r.IRA.IRAType,
			OwnerName:     r.IRA.OwnerName,
			TaxID:         r.IRA.TaxID,
		}

	case r.Trust != nil:
		grantors := make([]domain.TrustGrantor, 0, len(r.Trust.Grantors))
		for _, g := range r.Trust.Grantors {
			grantors = append(grantors, domain.TrustGrantor{Name: g.Name, Email: g.Email})
		}
		input.Detail = investorUseCase.TrustInput{
			TrustName:     r.Trust.TrustName,
			TrustType:     r.Trust.TrustType,
			FormationDate: parseDate(r.Trust.FormationDate),
			TaxID:         r.Trust.TaxID,
			Grantors:      grantors,
		}

	case r.Entity != nil:
		owners := make([]domain.EquityOwner, 0, len(r.Entity.EquityOwners))
		for _, o := range r.Entity.EquityOwners {
			owners = append(owners, domain.EquityOwner{
				Name:             o.Name,
				Title:            o.Title,
				OwnershipPercent: o.OwnershipPercent,
			})
		}
		input.Detail = investorUseCase.EntityInput{
			LegalName:        r.Entity.LegalName,
			EntityType:       r.Entity.EntityType,
			StateOfFormation: r.Entity.StateOfFormation,
			TaxID:            r.Entity.TaxID,
			EquityOwners:     owners,
		}
	}

	return input
}

// UpdateAccreditationRequest sets the accreditation state.
type UpdateAccreditationRequest struct {
	IsAccredited      *bool   `json:"is_accredited"`
	AccreditationType *string `json:"accreditation_type"`
}

// Validate checks the accreditation request. The flag and type combination
// is checked by the use case.
func (r *UpdateAccreditationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IsAccredited, validation.NotNil),
		validation.Field(&r.AccreditationType, validation.In(
			string(domain.AccreditationIncome),
			string(domain.AccreditationNetWorth),
			string(domain.AccreditationProfessional),
			string(domain.AccreditationEntityAssets),
			string(domain.AccreditationKnowledgeableEmployee),
		)),
	)
}

// Type returns the requested accreditation type as a domain value.
func (r *UpdateAccreditationRequest) Type() *domain.AccreditationType {
	if r.AccreditationType == nil {
		return nil
	}
	t := domain.AccreditationType(*r.AccreditationType)
	return &t
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
