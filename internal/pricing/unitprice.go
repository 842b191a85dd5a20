package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

// discountKind enumerates the closed set of rule variants the resolver
// dispatches through candidatePrice. Adding a kind cannot bypass the floor
// or rounding steps.
type discountKind int

const (
	kindCustomerCategory discountKind = iota
	kindCategory
	kindBrand
	kindSeasonal
)

// scopeRule is a percentage rule scoped to the customer band, the product's
// category or brand, or a seasonal window.
type scopeRule struct {
	kind    discountKind
	label   string
	percent decimal.Decimal
}

// candidatePrice always computes from the ORIGINAL selling price. Scope
// discounts are mutually exclusive: the single cheapest candidate wins, they
// never compound with each other.
func (r scopeRule) candidatePrice(original decimal.Decimal) decimal.Decimal {
	return percentOff(original, r.percent)
}

// ResolveUnitPrice returns the resolved per-unit price for one product given
// the customer's commercial context and the requested quantity, plus the
// labels of the rules that fired.
func (e *Engine) ResolveUnitPrice(product Product, ctx CustomerContext, quantity int, catalog Catalog, now time.Time) UnitPrice {
	if quantity < 1 {
		quantity = 1
	}

	if !ctx.B2C {
		return e.resolveB2BUnitPrice(product, ctx.Tier, quantity, catalog.TierPrices, now)
	}

	original := product.Price
	if !original.IsPositive() {
		return UnitPrice{Price: round2(decimal.Zero)}
	}

	best := original
	bestLabel := ""
	for _, rule := range scopeRules(product, ctx, catalog, now) {
		candidate := rule.candidatePrice(original)
		if candidate.LessThan(best) {
			best = candidate
			bestLabel = rule.label
		}
	}

	labels := make([]string, 0, 3)
	if bestLabel != "" {
		labels = append(labels, bestLabel)
	}

	// Bulk breaks multiply on top of the current best rather than competing
	// with the scope candidates.
	for _, b := range bulkBreaks {
		if quantity >= b.minQty {
			best = percentOff(best, b.percent)
			labels = append(labels, fmt.Sprintf("Bulk %d+ units %s%% off", b.minQty, b.percent.String()))
			break
		}
	}

	if price, label, ok := bestCustomPrice(best, original, product, quantity, catalog.CustomDiscounts, now); ok {
		best = price
		labels = append(labels, label)
	}

	floor := original.Mul(marginFloorPercent).Div(hundred)
	if best.LessThan(floor) {
		best = floor
		labels = append(labels, "Margin floor")
		e.metrics.IncFloorClamp()
	}

	return UnitPrice{Price: round2(best), AppliedRules: labels}
}

func scopeRules(product Product, ctx CustomerContext, catalog Catalog, now time.Time) []scopeRule {
	rules := make([]scopeRule, 0, 4)

	if pct, ok := customerCategoryPercents[ctx.Category]; ok && validPercent(pct) {
		rules = append(rules, scopeRule{
			kind:    kindCustomerCategory,
			label:   fmt.Sprintf("%s customer %s%% off", ctx.Category, pct.String()),
			percent: pct,
		})
	}

	if pct, ok := catalog.CategoryDiscounts[product.Category]; ok && validPercent(pct) {
		rules = append(rules, scopeRule{
			kind:    kindCategory,
			label:   fmt.Sprintf("%s category %s%% off", product.Category, pct.String()),
			percent: pct,
		})
	}

	if pct, ok := catalog.BrandDiscounts[product.Brand]; ok && validPercent(pct) {
		rules = append(rules, scopeRule{
			kind:    kindBrand,
			label:   fmt.Sprintf("%s brand %s%% off", product.Brand, pct.String()),
			percent: pct,
		})
	}

	for _, window := range catalog.Seasonal {
		if !validPercent(window.Percent) {
			continue
		}
		if now.Before(window.StartDate) || now.After(window.EndDate) {
			continue
		}
		rules = append(rules, scopeRule{
			kind:    kindSeasonal,
			label:   fmt.Sprintf("%s %s%% off", window.Name, window.Percent.String()),
			percent: window.Percent,
		})
	}

	return rules
}

// bestCustomPrice evaluates every matching custom discount against the
// running best price and returns the single cheapest outcome, if any beats
// it. Custom discounts do not stack with each other.
func bestCustomPrice(current, original decimal.Decimal, product Product, quantity int, discounts []CustomDiscount, now time.Time) (decimal.Decimal, string, bool) {
	best := current
	label := ""
	found := false

	for _, d := range discounts {
		if !customDiscountApplies(d, product, quantity, now) {
			continue
		}
		candidate, ok := customCandidatePrice(d, current, original, quantity)
		if !ok {
			continue
		}
		if candidate.LessThan(best) {
			best = candidate
			label = d.Name
			found = true
		}
	}

	return best, label, found
}

func customDiscountApplies(d CustomDiscount, product Product, quantity int, now time.Time) bool {
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	if d.MinQuantity != nil && quantity < *d.MinQuantity {
		return false
	}
	if len(d.ApplicableCategories) > 0 && !containsFold(d.ApplicableCategories, product.Category) {
		return false
	}
	if len(d.ApplicableBrands) > 0 && !containsFold(d.ApplicableBrands, product.Brand) {
		return false
	}
	return true
}

// customCandidatePrice computes a custom rule's candidate from the current
// best price. Malformed values report not-ok and are skipped.
func customCandidatePrice(d CustomDiscount, current, original decimal.Decimal, quantity int) (decimal.Decimal, bool) {
	switch d.Type {
	case enums.DiscountTypePercentage:
		if !validPercent(d.Value) {
			return decimal.Zero, false
		}
		amount := current.Mul(d.Value).Div(hundred)
		if d.MaxDiscountPercent != nil && validPercent(*d.MaxDiscountPercent) {
			// The cap bounds the discount amount relative to the original
			// price, not the resulting price.
			maxAmount := original.Mul(*d.MaxDiscountPercent).Div(hundred)
			if amount.GreaterThan(maxAmount) {
				amount = maxAmount
			}
		}
		return current.Sub(amount), true
	case enums.DiscountTypeFixed:
		if !d.Value.IsPositive() {
			return decimal.Zero, false
		}
		price := current.Sub(d.Value)
		if price.IsNegative() {
			price = decimal.Zero
		}
		return price, true
	case enums.DiscountTypeBuyOneGetOne:
		if quantity < 2 {
			return decimal.Zero, false
		}
		return current.Div(decimal.NewFromInt(2)), true
	}
	return decimal.Zero, false
}

// resolveB2BUnitPrice prefers an explicit tier row; otherwise it falls back
// to the flat tier percentage. Either way the result never exceeds the B2C
// selling price.
func (e *Engine) resolveB2BUnitPrice(product Product, tier enums.B2BTier, quantity int, rows []TierPrice, now time.Time) UnitPrice {
	original := product.Price
	if !original.IsPositive() {
		return UnitPrice{Price: round2(decimal.Zero)}
	}

	labels := make([]string, 0, 2)
	var price decimal.Decimal
	if row, ok := firstMatchingTier(product.ID, tier, quantity, rows, now); ok {
		price = row.Price
		labels = append(labels, fmt.Sprintf("%s tier contract price", tier))
	} else {
		pct, ok := b2bTierPercents[tier]
		if !ok {
			pct = b2bTierPercents[enums.B2BTierBronze]
		}
		price = percentOff(original, pct)
		labels = append(labels, fmt.Sprintf("%s tier %s%% off", tier, pct.String()))
	}

	if price.GreaterThan(original) {
		price = original
		labels = append(labels, "Retail price ceiling")
	}

	floor := original.Mul(marginFloorPercent).Div(hundred)
	if price.LessThan(floor) {
		price = floor
		labels = append(labels, "Margin floor")
		e.metrics.IncFloorClamp()
	}

	return UnitPrice{Price: round2(price), AppliedRules: labels}
}

// firstMatchingTier tolerates duplicate active rows by taking the first
// match in declaration order.
func firstMatchingTier(productID uuid.UUID, tier enums.B2BTier, quantity int, rows []TierPrice, now time.Time) (TierPrice, bool) {
	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		if row.ProductID != productID {
			continue
		}
		if row.Tier != tier {
			continue
		}
		minQty := 1
		if row.MinQuantity != nil {
			minQty = *row.MinQuantity
		}
		if quantity < minQty {
			continue
		}
		if row.MaxQuantity != nil && quantity > *row.MaxQuantity {
			continue
		}
		if row.ValidFrom != nil && now.Before(*row.ValidFrom) {
			continue
		}
		if row.ValidTo != nil && now.After(*row.ValidTo) {
			continue
		}
		if !row.Price.IsPositive() {
			continue
		}
		return row, true
	}
	return TierPrice{}, false
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}
