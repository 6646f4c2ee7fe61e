package domain

// CompletionPercentage returns the share of required profile fields that are
// filled, from 0 to 100. Accreditation counts as one field, filled once a
// basis is recorded.
func CompletionPercentage(p *Profile) int {
	if p == nil || p.Detail == nil {
		return 0
	}

	filled, total := p.Detail.completion()
	total++
	if p.IsAccredited && p.AccreditationType != nil {
		filled++
	}

	return filled * 100 / total
}
