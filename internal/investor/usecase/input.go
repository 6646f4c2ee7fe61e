package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/onboarding/internal/investor/domain"
	appValidation "github.com/allisson/onboarding/internal/validation"
)

// SelectTypeInput is the request to create a profile of Type with the given detail.
type SelectTypeInput struct {
	Type   domain.InvestorType
	Detail DetailInput
}

// protectFunc encrypts a plaintext tax identifier into its stored form.
type protectFunc func(ctx context.Context, plaintext string) (domain.ProtectedID, error)

// DetailInput is the plaintext payload of one detail variant. Its
// implementations are IndividualInput, JointInput, IRAInput, TrustInput and EntityInput.
type DetailInput interface {
	InvestorType() domain.InvestorType
	Validate() error
	toDetail(ctx context.Context, protect protectFunc) (domain.Detail, error)
}

var notInFuture = validation.By(func(value any) error {
	t, _ := value.(*time.Time)
	if t != nil && t.After(time.Now()) {
		return validation.NewError("validation_date_future", "must not be in the future")
	}
	return nil
})

// IndividualInput is the payload of an individual investor.
type IndividualInput struct {
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	TaxID       string
	Address     domain.Address
}

// InvestorType implements DetailInput.
func (IndividualInput) InvestorType() domain.InvestorType { return domain.InvestorTypeIndividual }

// Validate checks the individual payload.
func (in IndividualInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Required, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&in.LastName, validation.Required, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&in.DateOfBirth, notInFuture),
		validation.Field(&in.TaxID, validation.Required, appValidation.TaxID),
	)
}

func (in IndividualInput) toDetail(ctx context.Context, protect protectFunc) (domain.Detail, error) {
	taxID, err := protect(ctx, in.TaxID)
	if err != nil {
		return nil, err
	}
	return domain.IndividualDetail{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		TaxID:       taxID,
		Address:     in.Address,
	}, nil
}

// JointHolderInput is one holder of a joint account.
type JointHolderInput struct {
	FirstName string
	LastName  string
	Email     string
	TaxID     string
}

// JointInput is the payload of a joint account.
type JointInput struct {
	JointType string
	Holders   []JointHolderInput
}

// InvestorType implements DetailInput.
func (JointInput) InvestorType() domain.InvestorType { return domain.InvestorTypeJoint }

// Validate checks the joint payload.
func (in JointInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.JointType,
			validation.Required,
			validation.In("jtwros", "tenants_in_common", "tenants_by_entirety", "community_property"),
		),
		validation.Field(&in.Holders,
			validation.Required,
			validation.Length(2, 4),
			validation.Each(validation.By(func(value any) error {
				holder, _ := value.(JointHolderInput)
				return validation.ValidateStruct(&holder,
					validation.Field(&holder.FirstName, validation.Required, appValidation.NotBlank),
					validation.Field(&holder.LastName, validation.Required, appValidation.NotBlank),
					validation.Field(&holder.Email, appValidation.Email),
					validation.Field(&holder.TaxID, validation.Required, appValidation.TaxID),
				)
			})),
		),
	)
}

func (in JointInput) toDetail(ctx context.Context, protect protectFunc) (domain.Detail, error) {
	holders := make([]domain.JointHolder, 0, len(in.Holders))
	for _, h := range in.Holders {
		taxID, err := protect(ctx, h.TaxID)
		if err != nil {
			return nil, err
		}
		holders = append(holders, domain.JointHolder{
			FirstName: h.FirstName,
			LastName:  h.LastName,
			Email:     h.Email,
			TaxID:     taxID,
		})
	}
	return domain.JointDetail{JointType: in.JointType, Holders: holders}, nil
}

// IRAInput is the payload of an individual retirement account.
type IRAInput struct {
	Custodian     string
	AccountNumber string
	IRAType       string
	OwnerName     string
	TaxID         string
}

// InvestorType implements DetailInput.
func (IRAInput) InvestorType() domain.InvestorType { return domain.InvestorTypeIRA }

// Validate checks the IRA payload.
func (in IRAInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Custodian, validation.Required, appValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&in.AccountNumber, validation.Length(0, 64)),
		validation.Field(&in.IRAType, validation.Required, validation.In("traditional", "roth", "sep", "simple")),
		validation.Field(&in.OwnerName, validation.Required, appValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&in.TaxID, validation.Required, appValidation.TaxID),
	)
}

func (in IRAInput) toDetail(ctx context.Context, protect protectFunc) (domain.Detail, error) {
	taxID, err := protect(ctx, in.TaxID)
	if err != nil {
		return nil, err
	}
	return domain.IRADetail{
		Custodian:     in.Custodian,
		AccountNumber: in.AccountNumber,
		IRAType:       in.IRAType,
		OwnerName:     in.OwnerName,
		TaxID:         taxID,
	}, nil
}

// TrustInput is the payload of a trust. TaxID is the trust's EIN.
type TrustInput struct {
	TrustName     string
	TrustType     string
	FormationDate *time.Time
	TaxID         string
	Grantors      []domain.TrustGrantor
}

// InvestorType implements DetailInput.
func (TrustInput) InvestorType() domain.InvestorType { return domain.InvestorTypeTrust }

// Validate checks the trust payload.
func (in TrustInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.TrustName, validation.Required, appValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&in.TrustType, validation.Required, validation.In("revocable", "irrevocable")),
		validation.Field(&in.FormationDate, notInFuture),
		validation.Field(&in.TaxID, validation.Required, appValidation.TaxID),
		validation.Field(&in.Grantors, validation.Each(validation.By(func(value any) error {
			grantor, _ := value.(domain.TrustGrantor)
			return validation.ValidateStruct(&grantor,
				validation.Field(&grantor.Name, validation.Required, appValidation.NotBlank, validation.Length(1, 255)),
				validation.Field(&grantor.Email, appValidation.Email),
			)
		}))),
	)
}

func (in TrustInput) toDetail(ctx context.Context, protect protectFunc) (domain.Detail, error) {
	taxID, err := protect(ctx, in.TaxID)
	if err != nil {
		return nil, err
	}
	return domain.TrustDetail{
		TrustName:     in.TrustName,
		TrustType:     in.TrustType,
		FormationDate: in.FormationDate,
		TaxID:         taxID,
		Grantors:      in.Grantors,
	}, nil
}

// EntityInput is the payload of a legal entity. TaxID is the entity's EIN.
type EntityInput struct {
	LegalName        string
	EntityType       string
	StateOfFormation string
	TaxID            string
	EquityOwners     []domain.EquityOwner
}

// InvestorType implements DetailInput.
func (EntityInput) InvestorType() domain.InvestorType { return domain.InvestorTypeEntity }

// Validate checks the entity payload. Ownership shares are checked by the domain.
func (in EntityInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.LegalName, validation.Required, appValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&in.EntityType,
			validation.Required,
			validation.In("llc", "corporation", "partnership", "s_corporation", "other"),
		),
		validation.Field(&in.StateOfFormation, validation.Length(2, 2)),
		validation.Field(&in.TaxID, validation.Required, appValidation.TaxID),
		validation.Field(&in.EquityOwners, validation.Each(validation.By(func(value any) error {
			owner, _ := value.(domain.EquityOwner)
			return validation.ValidateStruct(&owner,
				validation.Field(&owner.Name, validation.Required, appValidation.NotBlank),
			)
		}))),
	)
}

func (in EntityInput) toDetail(ctx context.Context, protect protectFunc) (domain.Detail, error) {
	taxID, err := protect(ctx, in.TaxID)
	if err != nil {
		return nil, err
	}
	return domain.EntityDetail{
		LegalName:        in.LegalName,
		EntityType:       in.EntityType,
		StateOfFormation: in.StateOfFormation,
		TaxID:            taxID,
		EquityOwners:     in.EquityOwners,
	}, nil
}
