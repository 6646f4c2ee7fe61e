package service

import (
	"strings"

	cryptoDomain "github.com/allisson/onboarding/internal/crypto/domain"
)

// Mask renders a tax identifier (SSN, TIN, EIN) for display, keeping only the
// last four digits. Formatting characters are ignored. Identifiers with fewer
// than four digits are fully masked.
func Mask(identifier string) string {
	var digits strings.Builder
	for _, r := range identifier {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if len(d) < 4 {
		return cryptoDomain.FullMask
	}
	return cryptoDomain.MaskPrefix + d[len(d)-4:]
}
