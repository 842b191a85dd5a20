package enums

import "fmt"

// CustomerType splits retail customers from verified business buyers.
type CustomerType string

const (
	CustomerTypeB2C CustomerType = "B2C"
	CustomerTypeB2B CustomerType = "B2B"
)

var validCustomerTypes = []CustomerType{
	CustomerTypeB2C,
	CustomerTypeB2B,
}

// IsValid reports whether the value matches the canonical customer type enum.
func (c CustomerType) IsValid() bool {
	for _, candidate := range validCustomerTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerType converts the raw string to CustomerType.
func ParseCustomerType(value string) (CustomerType, error) {
	for _, candidate := range validCustomerTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer type %q", value)
}
