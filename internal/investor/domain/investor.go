// Package domain defines the investor profile and its type-specific detail.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvestorType is the legal structure an investor invests through.
type InvestorType string

// Investor types.
const (
	InvestorTypeIndividual InvestorType = "individual"
	InvestorTypeJoint      InvestorType = "joint"
	InvestorTypeIRA        InvestorType = "ira"
	InvestorTypeTrust      InvestorType = "trust"
	InvestorTypeEntity     InvestorType = "entity"
)

// ParseInvestorType validates an investor type name.
func ParseInvestorType(s string) (InvestorType, error) {
	switch t := InvestorType(s); t {
	case InvestorTypeIndividual, InvestorTypeJoint, InvestorTypeIRA, InvestorTypeTrust, InvestorTypeEntity:
		return t, nil
	}
	return "", ErrInvalidInvestorType
}

// AccreditationType is the basis on which an investor qualifies as accredited.
type AccreditationType string

// Accreditation types.
const (
	AccreditationIncome                AccreditationType = "income"
	AccreditationNetWorth              AccreditationType = "net_worth"
	AccreditationProfessional          AccreditationType = "professional"
	AccreditationEntityAssets          AccreditationType = "entity_assets"
	AccreditationKnowledgeableEmployee AccreditationType = "knowledgeable_employee"
)

// ParseAccreditationType validates an accreditation type name.
func ParseAccreditationType(s string) (AccreditationType, error) {
	switch t := AccreditationType(s); t {
	case AccreditationIncome,
		AccreditationNetWorth,
		AccreditationProfessional,
		AccreditationEntityAssets,
		AccreditationKnowledgeableEmployee:
		return t, nil
	}
	return "", ErrInvalidAccreditationType
}

// Profile is an investor's onboarding profile. It owns exactly one Detail
// whose variant matches Type.
type Profile struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Type                 InvestorType
	IsAccredited         bool
	AccreditationType    *AccreditationType
	CompletionPercentage int
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Detail               Detail
}

// NewProfile creates an active, unaccredited profile. Type is taken from the
// detail so the two cannot disagree.
func NewProfile(userID uuid.UUID, detail Detail, now time.Time) (*Profile, error) {
	if detail == nil {
		return nil, ErrDetailRequired
	}

	profile := &Profile{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		Type:      detail.InvestorType(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		Detail:    detail,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	profile.CompletionPercentage = CompletionPercentage(profile)
	return profile, nil
}

// Validate checks the structural invariants of the profile.
func (p *Profile) Validate() error {
	if p.Detail == nil {
		return ErrDetailRequired
	}
	if p.Detail.InvestorType() != p.Type {
		return ErrDetailTypeMismatch
	}
	if err := ValidateAccreditation(p.IsAccredited, p.AccreditationType); err != nil {
		return err
	}
	return p.Detail.validate()
}

// SetAccreditation updates the accreditation state after checking that the
// type is present exactly when the flag is set.
func (p *Profile) SetAccreditation(isAccredited bool, accreditationType *AccreditationType, now time.Time) error {
	if err := ValidateAccreditation(isAccredited, accreditationType); err != nil {
		return err
	}

	p.IsAccredited = isAccredited
	p.AccreditationType = accreditationType
	p.CompletionPercentage = CompletionPercentage(p)
	p.UpdatedAt = now
	return nil
}

// ValidateAccreditation reports ErrInvalidAccreditationType when a type is
// given without the flag, the flag without a type, or the type is unknown.
func ValidateAccreditation(isAccredited bool, accreditationType *AccreditationType) error {
	if isAccredited != (accreditationType != nil) {
		return ErrInvalidAccreditationType
	}
	if accreditationType != nil {
		if _, err := ParseAccreditationType(string(*accreditationType)); err != nil {
			return err
		}
	}
	return nil
}
