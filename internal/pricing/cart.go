package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComputeCartPricing is the top-level orchestrator: it resolves every line's
// unit price, runs the auto-offer selector, re-validates any applied coupon
// against the current cart, combines the discounts, and computes GST on the
// discounted subtotal. The result is derived from scratch on every call;
// nothing is cached between invocations.
func (e *Engine) ComputeCartPricing(in CartPricingInput) PricingResult {
	started := time.Now()
	defer func() {
		e.metrics.ObserveCompute(string(in.Customer.CustomerType()), time.Since(started))
	}()

	lines := make([]PricedLine, 0, len(in.Lines))
	subtotal := decimal.Zero
	for _, line := range in.Lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		unit := e.ResolveUnitPrice(line.Product, in.Customer, qty, in.Catalog, in.Now)
		lineTotal := round2(unit.Price.Mul(decimal.NewFromInt(int64(qty))))
		lines = append(lines, PricedLine{
			Product:      line.Product,
			Quantity:     qty,
			UnitPrice:    unit.Price,
			LineTotal:    lineTotal,
			AppliedRules: unit.AppliedRules,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	subtotal = round2(subtotal)

	result := PricingResult{
		Lines:               lines,
		Subtotal:            subtotal,
		AutoOfferDiscount:   decimal.Zero,
		CouponDiscount:      decimal.Zero,
		CanCombineDiscounts: true,
	}

	if applied := e.SelectAutoOffer(in.Catalog.Offers, lines, subtotal, in.Now); applied != nil {
		offer := applied.Offer
		result.AutoOffer = &offer
		result.AutoOfferDiscount = applied.Discount
	}

	if code := normalizeCouponCode(in.AppliedCouponCode); code != "" {
		coupon, found := findCoupon(in.Catalog.Coupons, code)
		if found && e.ValidateCoupon(coupon, lines, subtotal, in.Now) {
			applied := coupon
			result.AppliedCoupon = &applied
			result.CouponDiscount = e.ComputeCouponDiscount(coupon, lines, subtotal)
		} else {
			// Applied-but-invalid is not a state: the coupon reverts to
			// unapplied and the caller surfaces a notice.
			result.CouponRemoved = true
		}
	}

	totalDiscount := result.AutoOfferDiscount
	if result.CanCombineDiscounts {
		totalDiscount = totalDiscount.Add(result.CouponDiscount)
	} else if result.CouponDiscount.GreaterThan(totalDiscount) {
		totalDiscount = result.CouponDiscount
	}
	if totalDiscount.GreaterThan(subtotal) {
		totalDiscount = subtotal
	}
	result.TotalDiscount = round2(totalDiscount)

	discounted := subtotal.Sub(result.TotalDiscount)
	result.GSTAmount = round2(discounted.Mul(e.gstRatePercent).Div(hundred))

	final := discounted.Add(result.GSTAmount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	result.FinalTotal = round2(final)

	result.AvailableCoupons = e.availableCoupons(in, lines, subtotal)

	return result
}

// availableCoupons lists every currently valid coupon not yet applied, for
// display.
func (e *Engine) availableCoupons(in CartPricingInput, lines []PricedLine, subtotal decimal.Decimal) []Coupon {
	appliedCode := normalizeCouponCode(in.AppliedCouponCode)
	available := make([]Coupon, 0, len(in.Catalog.Coupons))
	for _, coupon := range in.Catalog.Coupons {
		if normalizeCouponCode(coupon.Code) == appliedCode && appliedCode != "" {
			continue
		}
		if e.validateCoupon(coupon, lines, subtotal, in.Now) {
			available = append(available, coupon)
		}
	}
	return available
}

func findCoupon(coupons []Coupon, normalizedCode string) (Coupon, bool) {
	for _, coupon := range coupons {
		if normalizeCouponCode(coupon.Code) == normalizedCode {
			return coupon, true
		}
	}
	return Coupon{}, false
}
