package enums

import "fmt"

// B2BTier is the business-customer pricing level, gated on GST verification.
type B2BTier string

const (
	B2BTierBronze B2BTier = "Bronze"
	B2BTierSilver B2BTier = "Silver"
	B2BTierGold   B2BTier = "Gold"
)

var validB2BTiers = []B2BTier{
	B2BTierBronze,
	B2BTierSilver,
	B2BTierGold,
}

// IsValid reports whether the value matches the canonical B2B tier enum.
func (b B2BTier) IsValid() bool {
	for _, candidate := range validB2BTiers {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseB2BTier converts the raw string to B2BTier.
func ParseB2BTier(value string) (B2BTier, error) {
	for _, candidate := range validB2BTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid b2b tier %q", value)
}
