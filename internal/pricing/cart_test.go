package pricing

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

func TestComputeCartPricingPremiumWithAutoOffer(t *testing.T) {
	engine := NewEngine(18, nil)

	laptops := "Laptops"
	minPurchase := dec("500")
	offer := activeOffer("Laptop Week", enums.DiscountTypePercentage, "10")
	offer.ApplicableCategory = &laptops
	offer.MinPurchase = &minPurchase

	in := CartPricingInput{
		Lines:    []CartLine{{Product: testProduct("1000"), Quantity: 1}},
		Customer: b2cContext(enums.CustomerCategoryPremium),
		Catalog:  Catalog{Offers: []Offer{offer}},
		Now:      testNow,
	}

	got := engine.ComputeCartPricing(in)

	// Premium knocks the 1000 unit to 900; the offer takes 10% of that.
	if !got.Subtotal.Equal(dec("900")) {
		t.Fatalf("subtotal: expected 900, got %s", got.Subtotal)
	}
	if got.AutoOffer == nil || got.AutoOffer.Name != "Laptop Week" {
		t.Fatalf("expected Laptop Week to apply, got %+v", got.AutoOffer)
	}
	if !got.AutoOfferDiscount.Equal(dec("90")) {
		t.Fatalf("offer discount: expected 90, got %s", got.AutoOfferDiscount)
	}
	if !got.TotalDiscount.Equal(dec("90")) {
		t.Fatalf("total discount: expected 90, got %s", got.TotalDiscount)
	}
	if !got.GSTAmount.Equal(dec("145.80")) {
		t.Fatalf("gst: expected 145.80, got %s", got.GSTAmount)
	}
	if !got.FinalTotal.Equal(dec("955.80")) {
		t.Fatalf("final total: expected 955.80, got %s", got.FinalTotal)
	}
}

func TestComputeCartPricingIsDeterministic(t *testing.T) {
	engine := NewEngine(18, nil)

	in := CartPricingInput{
		Lines: []CartLine{
			{Product: testProduct("1000"), Quantity: 2},
			{Product: testProduct("250"), Quantity: 1},
		},
		Customer: b2cContext(enums.CustomerCategoryStandard),
		Catalog: Catalog{
			CategoryDiscounts: map[string]decimal.Decimal{"Laptops": dec("15")},
			Offers:            []Offer{activeOffer("Everything", enums.DiscountTypePercentage, "5")},
			Coupons:           []Coupon{activeCoupon("SAVE50", enums.DiscountTypeFixed, "50")},
		},
		AppliedCouponCode: "save50",
		Now:               testNow,
	}

	first := engine.ComputeCartPricing(in)
	second := engine.ComputeCartPricing(in)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestComputeCartPricingCombinesOfferAndCoupon(t *testing.T) {
	engine := NewEngine(18, nil)

	in := CartPricingInput{
		Lines:    []CartLine{{Product: testProduct("1000"), Quantity: 1}},
		Customer: b2cContext(enums.CustomerCategoryNormal),
		Catalog: Catalog{
			Offers:  []Offer{activeOffer("Flat 100", enums.DiscountTypeFixed, "100")},
			Coupons: []Coupon{activeCoupon("EXTRA50", enums.DiscountTypeFixed, "50")},
		},
		AppliedCouponCode: "extra50",
		Now:               testNow,
	}

	got := engine.ComputeCartPricing(in)
	if got.AppliedCoupon == nil {
		t.Fatal("expected the coupon to stay applied")
	}
	if !got.TotalDiscount.Equal(dec("150")) {
		t.Fatalf("expected offer and coupon to combine to 150, got %s", got.TotalDiscount)
	}
	// 850 discounted + 153 GST.
	if !got.FinalTotal.Equal(dec("1003")) {
		t.Fatalf("expected 1003, got %s", got.FinalTotal)
	}
}

func TestComputeCartPricingRemovesInvalidatedCoupon(t *testing.T) {
	engine := NewEngine(18, nil)

	minPurchase := dec("2000")
	coupon := activeCoupon("BIGCART", enums.DiscountTypeFixed, "200")
	coupon.MinPurchase = &minPurchase

	in := CartPricingInput{
		Lines:             []CartLine{{Product: testProduct("1000"), Quantity: 1}},
		Customer:          b2cContext(enums.CustomerCategoryNormal),
		Catalog:           Catalog{Coupons: []Coupon{coupon}},
		AppliedCouponCode: "BIGCART",
		Now:               testNow,
	}

	got := engine.ComputeCartPricing(in)
	if got.AppliedCoupon != nil {
		t.Fatalf("coupon below min purchase must be dropped, got %+v", got.AppliedCoupon)
	}
	if !got.CouponRemoved {
		t.Fatal("expected the coupon-removed notice")
	}
	if !got.CouponDiscount.IsZero() {
		t.Fatalf("removed coupon must contribute nothing, got %s", got.CouponDiscount)
	}
}

func TestComputeCartPricingUnknownCouponCode(t *testing.T) {
	engine := NewEngine(18, nil)

	in := CartPricingInput{
		Lines:             []CartLine{{Product: testProduct("1000"), Quantity: 1}},
		Customer:          b2cContext(enums.CustomerCategoryNormal),
		AppliedCouponCode: "NOSUCHCODE",
		Now:               testNow,
	}

	got := engine.ComputeCartPricing(in)
	if !got.CouponRemoved {
		t.Fatal("an unknown code must surface the removed notice")
	}
}

func TestComputeCartPricingListsAvailableCoupons(t *testing.T) {
	engine := NewEngine(18, nil)

	applied := activeCoupon("APPLIED", enums.DiscountTypeFixed, "50")
	other := activeCoupon("OTHER", enums.DiscountTypePercentage, "5")
	dead := activeCoupon("DEAD", enums.DiscountTypeFixed, "50")
	dead.Status = enums.CouponStatusInactive

	in := CartPricingInput{
		Lines:             []CartLine{{Product: testProduct("1000"), Quantity: 1}},
		Customer:          b2cContext(enums.CustomerCategoryNormal),
		Catalog:           Catalog{Coupons: []Coupon{applied, other, dead}},
		AppliedCouponCode: "applied",
		Now:               testNow,
	}

	got := engine.ComputeCartPricing(in)
	if len(got.AvailableCoupons) != 1 || got.AvailableCoupons[0].Code != "OTHER" {
		t.Fatalf("expected only OTHER to be listed, got %+v", got.AvailableCoupons)
	}
}

func TestComputeCartPricingDiscountNeverExceedsSubtotal(t *testing.T) {
	engine := NewEngine(18, nil)

	in := CartPricingInput{
		Lines:    []CartLine{{Product: testProduct("100"), Quantity: 1}},
		Customer: b2cContext(enums.CustomerCategoryNormal),
		Catalog: Catalog{
			Offers:  []Offer{activeOffer("Flat 90", enums.DiscountTypeFixed, "90")},
			Coupons: []Coupon{activeCoupon("FLAT90", enums.DiscountTypeFixed, "90")},
		},
		AppliedCouponCode: "FLAT90",
		Now:               testNow,
	}

	got := engine.ComputeCartPricing(in)
	if got.TotalDiscount.GreaterThan(got.Subtotal) {
		t.Fatalf("discount %s exceeds subtotal %s", got.TotalDiscount, got.Subtotal)
	}
	if got.FinalTotal.IsNegative() {
		t.Fatalf("final total went negative: %s", got.FinalTotal)
	}
}

func TestComputeCartPricingEmptyCart(t *testing.T) {
	engine := NewEngine(18, nil)

	got := engine.ComputeCartPricing(CartPricingInput{
		Customer: b2cContext(enums.CustomerCategoryNormal),
		Now:      testNow,
	})
	if !got.Subtotal.IsZero() || !got.FinalTotal.IsZero() {
		t.Fatalf("empty cart must price to zero, got subtotal %s final %s", got.Subtotal, got.FinalTotal)
	}
}
