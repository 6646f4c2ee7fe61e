package domain

import (
	"github.com/allisson/onboarding/internal/errors"
)

// Investor profile errors.
var (
	// ErrProfileAlreadyExists indicates the user already owns an investor profile.
	ErrProfileAlreadyExists = errors.Wrap(errors.ErrConflict, "investor profile already exists")

	// ErrProfileNotFound indicates the investor profile does not exist.
	ErrProfileNotFound = errors.Wrap(errors.ErrNotFound, "investor profile not found")

	// ErrInvalidAccreditationType indicates the accreditation type does not agree with the flag.
	ErrInvalidAccreditationType = errors.Wrap(errors.ErrInvalidInput, "invalid accreditation type")

	// ErrInvalidInvestorType indicates an unknown investor type.
	ErrInvalidInvestorType = errors.Wrap(errors.ErrInvalidInput, "invalid investor type")

	// ErrDetailRequired indicates a profile without its type-specific detail.
	ErrDetailRequired = errors.Wrap(errors.ErrInvalidInput, "investor detail is required")

	// ErrDetailTypeMismatch indicates the detail variant does not match the profile type.
	ErrDetailTypeMismatch = errors.Wrap(errors.ErrInvalidInput, "investor detail does not match investor type")

	// ErrInvalidOwnership indicates equity ownership percentages outside (0, 100] or summing above 100.
	ErrInvalidOwnership = errors.Wrap(errors.ErrInvalidInput, "invalid equity ownership")
)
