package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProtectedID is the stored form of a tax identifier (SSN, TIN, EIN): the
// encrypted envelope plus its masked display form. Plaintext is never kept here.
type ProtectedID struct {
	Envelope string
	Masked   string
}

// IsSet reports whether an encrypted value is present.
func (p ProtectedID) IsSet() bool {
	return p.Envelope != ""
}

// Detail is the type-specific part of a profile. The set of implementations
// is closed: IndividualDetail, JointDetail, IRADetail, TrustDetail and EntityDetail.
type Detail interface {
	InvestorType() InvestorType

	// PrimaryTaxID returns the identifier revealed on request for this detail.
	PrimaryTaxID() ProtectedID

	isDetail()
	validate() error
	completion() (filled, total int)
}

// Address is a postal address.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// IndividualDetail describes a natural person investing in their own name.
type IndividualDetail struct {
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	TaxID       ProtectedID
	Address     Address
}

func (IndividualDetail) isDetail()                   {}
func (IndividualDetail) InvestorType() InvestorType  { return InvestorTypeIndividual }
func (d IndividualDetail) PrimaryTaxID() ProtectedID { return d.TaxID }
func (IndividualDetail) validate() error             { return nil }

func (d IndividualDetail) completion() (int, int) {
	return countFilled(
		d.FirstName != "",
		d.LastName != "",
		d.DateOfBirth != nil,
		d.TaxID.IsSet(),
		d.Address.Line1 != "",
		d.Address.City != "",
		d.Address.State != "",
		d.Address.PostalCode != "",
		d.Address.Country != "",
	)
}

// JointHolder is one of the people holding a joint account.
type JointHolder struct {
	FirstName string
	LastName  string
	Email     string
	TaxID     ProtectedID
}

// JointDetail describes an account held jointly by two or more people.
type JointDetail struct {
	JointType string
	Holders   []JointHolder
}

// minJointHolders is the number of holders a complete joint account has.
const minJointHolders = 2

func (JointDetail) isDetail()                  {}
func (JointDetail) InvestorType() InvestorType { return InvestorTypeJoint }

// PrimaryTaxID returns the first holder's identifier.
func (d JointDetail) PrimaryTaxID() ProtectedID {
	if len(d.Holders) == 0 {
		return ProtectedID{}
	}
	return d.Holders[0].TaxID
}

func (JointDetail) validate() error { return nil }

func (d JointDetail) completion() (int, int) {
	filled, total := countFilled(d.JointType != "")
	for _, h := range d.Holders {
		f, t := countFilled(h.FirstName != "", h.LastName != "", h.Email != "", h.TaxID.IsSet())
		filled, total = filled+f, total+t
	}
	// Missing holders count as four empty fields each.
	if missing := minJointHolders - len(d.Holders); missing > 0 {
		total += missing * 4
	}
	return filled, total
}

// IRADetail describes an individual retirement account held through a custodian.
type IRADetail struct {
	Custodian     string
	AccountNumber string
	IRAType       string
	OwnerName     string
	TaxID         ProtectedID
}

func (IRADetail) isDetail()                   {}
func (IRADetail) InvestorType() InvestorType  { return InvestorTypeIRA }
func (d IRADetail) PrimaryTaxID() ProtectedID { return d.TaxID }
func (IRADetail) validate() error             { return nil }

func (d IRADetail) completion() (int, int) {
	return countFilled(
		d.Custodian != "",
		d.AccountNumber != "",
		d.IRAType != "",
		d.OwnerName != "",
		d.TaxID.IsSet(),
	)
}

// TrustGrantor is a person who funded a trust.
type TrustGrantor struct {
	Name  string
	Email string
}

// TrustDetail describes a trust. TaxID holds the trust's EIN.
type TrustDetail struct {
	TrustName     string
	TrustType     string
	FormationDate *time.Time
	TaxID         ProtectedID
	Grantors      []TrustGrantor
}

func (TrustDetail) isDetail()                   {}
func (TrustDetail) InvestorType() InvestorType  { return InvestorTypeTrust }
func (d TrustDetail) PrimaryTaxID() ProtectedID { return d.TaxID }
func (TrustDetail) validate() error             { return nil }

func (d TrustDetail) completion() (int, int) {
	return countFilled(
		d.TrustName != "",
		d.TrustType != "",
		d.FormationDate != nil,
		d.TaxID.IsSet(),
		len(d.Grantors) > 0,
	)
}

// EquityOwner is a beneficial owner of an entity.
type EquityOwner struct {
	Name             string
	Title            string
	OwnershipPercent decimal.Decimal
}

// EntityDetail describes a company, partnership or other legal entity. TaxID holds its EIN.
type EntityDetail struct {
	LegalName        string
	EntityType       string
	StateOfFormation string
	TaxID            ProtectedID
	EquityOwners     []EquityOwner
}

var hundred = decimal.NewFromInt(100)

func (EntityDetail) isDetail()                   {}
func (EntityDetail) InvestorType() InvestorType  { return InvestorTypeEntity }
func (d EntityDetail) PrimaryTaxID() ProtectedID { return d.TaxID }

// validate checks that each owner holds a share in (0, 100] and the shares sum to at most 100.
func (d EntityDetail) validate() error {
	return ValidateOwnership(d.EquityOwners)
}

func (d EntityDetail) completion() (int, int) {
	return countFilled(
		d.LegalName != "",
		d.EntityType != "",
		d.StateOfFormation != "",
		d.TaxID.IsSet(),
		len(d.EquityOwners) > 0,
	)
}

// ValidateOwnership checks equity owner percentages.
func ValidateOwnership(owners []EquityOwner) error {
	sum := decimal.Zero
	for _, o := range owners {
		if !o.OwnershipPercent.IsPositive() || o.OwnershipPercent.GreaterThan(hundred) {
			return ErrInvalidOwnership
		}
		sum = sum.Add(o.OwnershipPercent)
	}
	if sum.GreaterThan(hundred) {
		return ErrInvalidOwnership
	}
	return nil
}

func countFilled(fields ...bool) (filled, total int) {
	for _, f := range fields {
		if f {
			filled++
		}
	}
	return filled, len(fields)
}
