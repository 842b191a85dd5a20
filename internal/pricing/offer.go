package pricing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

// SelectAutoOffer scans the always-on offers and picks at most one winner for
// the cart: the offer with the strictly greatest computed discount, ties
// broken by declaration order. Offers never stack with each other.
func (e *Engine) SelectAutoOffer(offers []Offer, lines []PricedLine, subtotal decimal.Decimal, now time.Time) *AppliedOffer {
	var winner *AppliedOffer

	for i := range offers {
		offer := offers[i]
		if offer.Status != enums.CouponStatusActive {
			continue
		}
		if now.Before(offer.StartDate) || now.After(offer.ExpiryDate) {
			continue
		}

		scope := scopeOf(offer.ApplicableCategory, uuidPtrString(offer.ApplicableProductID))
		applicable := scope.applicableSubtotal(lines, subtotal)
		if offer.MinPurchase != nil && offer.MinPurchase.IsPositive() && applicable.LessThan(*offer.MinPurchase) {
			continue
		}

		discount := discountAmount(offer.Type, offer.Value, applicable)
		if !discount.IsPositive() {
			continue
		}

		if winner == nil || discount.GreaterThan(winner.Discount) {
			winner = &AppliedOffer{Offer: offer, Discount: discount}
		}
	}

	return winner
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
