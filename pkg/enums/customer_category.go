package enums

import "fmt"

// CustomerCategory is the retail loyalty band that sets the base discount.
type CustomerCategory string

const (
	CustomerCategoryNormal   CustomerCategory = "Normal"
	CustomerCategoryStandard CustomerCategory = "Standard"
	CustomerCategoryPremium  CustomerCategory = "Premium"
)

var validCustomerCategories = []CustomerCategory{
	CustomerCategoryNormal,
	CustomerCategoryStandard,
	CustomerCategoryPremium,
}

// IsValid reports whether the value matches the canonical customer category enum.
func (c CustomerCategory) IsValid() bool {
	for _, candidate := range validCustomerCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerCategory converts the raw string to CustomerCategory.
func ParseCustomerCategory(value string) (CustomerCategory, error) {
	for _, candidate := range validCustomerCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer category %q", value)
}
