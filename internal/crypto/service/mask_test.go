package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		expected   string
	}{
		{name: "SSN", identifier: "123-45-6789", expected: "***-**-6789"},
		{name: "EIN", identifier: "12-3456789", expected: "***-**-6789"},
		{name: "DigitsOnly", identifier: "987654321", expected: "***-**-4321"},
		{name: "ExactlyFourDigits", identifier: "1234", expected: "***-**-1234"},
		{name: "SpacesAndDashes", identifier: " 11 22-3344 ", expected: "***-**-3344"},
		{name: "ThreeDigits", identifier: "123", expected: "***-**-****"},
		{name: "Empty", identifier: "", expected: "***-**-****"},
		{name: "NoDigits", identifier: "abc-de-fghi", expected: "***-**-****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Mask(tt.identifier))
		})
	}
}
