package pricing

import "github.com/tecbunny/storefront/pkg/enums"

// ResolveCustomerContext derives the commercial classification from a stored
// profile. B2B pricing is never applied to an unverified account: the stored
// intent is ignored until GSTVerified is set. The function has no failure
// mode; a nil profile resolves to retail Normal.
func ResolveCustomerContext(profile *CustomerProfile) CustomerContext {
	if profile == nil {
		return CustomerContext{B2C: true, Category: enums.CustomerCategoryNormal}
	}

	if profile.CustomerType == enums.CustomerTypeB2B && profile.GSTVerified {
		tier := enums.B2BTierBronze
		if profile.B2BTier != nil && profile.B2BTier.IsValid() {
			tier = *profile.B2BTier
		}
		return CustomerContext{B2C: false, Tier: tier}
	}

	category := enums.CustomerCategoryNormal
	if profile.CustomerCategory != nil && profile.CustomerCategory.IsValid() {
		category = *profile.CustomerCategory
	}
	return CustomerContext{B2C: true, Category: category}
}
