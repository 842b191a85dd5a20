package pricing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

// normalizeCouponCode is the canonical form used for lookups and equality.
func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// couponScope is the shared eligibility surface of coupons and auto-offers:
// either the whole cart, one category, or one product.
type couponScope struct {
	category  *string
	productID *string
}

func (s couponScope) global() bool {
	return s.category == nil && s.productID == nil
}

func (s couponScope) matches(line PricedLine) bool {
	if s.global() {
		return true
	}
	if s.category != nil && equalFoldTrim(line.Product.Category, *s.category) {
		return true
	}
	if s.productID != nil && line.Product.ID.String() == *s.productID {
		return true
	}
	return false
}

// applicableSubtotal is the portion of the cart the discount is allowed to
// act on.
func (s couponScope) applicableSubtotal(lines []PricedLine, subtotal decimal.Decimal) decimal.Decimal {
	if s.global() {
		return subtotal
	}
	sum := decimal.Zero
	for _, line := range lines {
		if s.matches(line) {
			sum = sum.Add(line.LineTotal)
		}
	}
	return sum
}

func scopeOf(category *string, productID *string) couponScope {
	return couponScope{category: category, productID: productID}
}

// ValidateCoupon reports whether the coupon is currently usable against the
// cart. A coupon whose condition fails after a cart change is invalid, full
// stop; callers must clear it rather than keep it applied.
func (e *Engine) ValidateCoupon(coupon Coupon, lines []PricedLine, subtotal decimal.Decimal, now time.Time) bool {
	ok := e.validateCoupon(coupon, lines, subtotal, now)
	if ok {
		e.metrics.IncCouponValidation("valid")
	} else {
		e.metrics.IncCouponValidation("invalid")
	}
	return ok
}

func (e *Engine) validateCoupon(coupon Coupon, lines []PricedLine, subtotal decimal.Decimal, now time.Time) bool {
	if coupon.Status != enums.CouponStatusActive {
		return false
	}
	if !coupon.Value.IsPositive() {
		return false
	}
	if coupon.Type == enums.DiscountTypePercentage && !validPercent(coupon.Value) {
		return false
	}
	if now.Before(coupon.StartDate) || now.After(coupon.ExpiryDate) {
		return false
	}
	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return false
	}
	if coupon.PerUserLimit > 0 && coupon.UserUsageCount >= coupon.PerUserLimit {
		return false
	}

	scope := scopeOf(coupon.ApplicableCategory, uuidPtrString(coupon.ApplicableProductID))
	if !scope.global() {
		matched := false
		for _, line := range lines {
			if scope.matches(line) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if coupon.MinPurchase != nil && coupon.MinPurchase.IsPositive() {
		if scope.applicableSubtotal(lines, subtotal).LessThan(*coupon.MinPurchase) {
			return false
		}
	}

	return true
}

// ComputeCouponDiscount returns the coupon's discount against its applicable
// subtotal. The discount is never more than that subtotal and never negative.
func (e *Engine) ComputeCouponDiscount(coupon Coupon, lines []PricedLine, subtotal decimal.Decimal) decimal.Decimal {
	scope := scopeOf(coupon.ApplicableCategory, uuidPtrString(coupon.ApplicableProductID))
	applicable := scope.applicableSubtotal(lines, subtotal)
	return discountAmount(coupon.Type, coupon.Value, applicable)
}

// discountAmount computes a fixed or percentage reduction against an
// applicable subtotal, clamped to [0, applicable].
func discountAmount(kind enums.DiscountType, value, applicable decimal.Decimal) decimal.Decimal {
	if !value.IsPositive() || !applicable.IsPositive() {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch kind {
	case enums.DiscountTypeFixed:
		amount = value
	case enums.DiscountTypePercentage:
		if !validPercent(value) {
			return decimal.Zero
		}
		amount = applicable.Mul(value).Div(hundred)
	default:
		return decimal.Zero
	}

	if amount.GreaterThan(applicable) {
		amount = applicable
	}
	return round2(amount)
}
