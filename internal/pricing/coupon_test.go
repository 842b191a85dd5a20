package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

func activeCoupon(code string, kind enums.DiscountType, value string) Coupon {
	return Coupon{
		ID:         uuid.New(),
		Code:       code,
		Type:       kind,
		Value:      dec(value),
		StartDate:  testNow.AddDate(0, -1, 0),
		ExpiryDate: testNow.AddDate(0, 1, 0),
		Status:     enums.CouponStatusActive,
	}
}

func pricedLine(category string, unitPrice string, qty int) PricedLine {
	product := Product{
		ID:       uuid.New(),
		Category: category,
		Brand:    "Bunny",
		Price:    dec(unitPrice),
		MRP:      dec(unitPrice),
	}
	unit := dec(unitPrice)
	total := unit.Mul(decimal.NewFromInt(int64(qty)))
	return PricedLine{Product: product, Quantity: qty, UnitPrice: unit, LineTotal: total}
}

func cartOf(lines ...PricedLine) ([]PricedLine, decimal.Decimal) {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}
	return lines, subtotal
}

func TestValidateCouponHappyPath(t *testing.T) {
	engine := NewEngine(18, nil)
	lines, subtotal := cartOf(pricedLine("Audio", "500", 1))

	if !engine.ValidateCoupon(activeCoupon("SAVE10", enums.DiscountTypePercentage, "10"), lines, subtotal, testNow) {
		t.Fatal("expected coupon to validate")
	}
}

func TestValidateCouponRejectsPercentageOverHundred(t *testing.T) {
	engine := NewEngine(18, nil)
	lines, subtotal := cartOf(pricedLine("Audio", "500", 1))

	// An out-of-range percentage must read as invalid, not as an applied
	// coupon with a zero discount.
	if engine.ValidateCoupon(activeCoupon("MEGA", enums.DiscountTypePercentage, "150"), lines, subtotal, testNow) {
		t.Fatal("expected an over-100-percent coupon to be rejected")
	}
}

func TestValidateCouponRejectsInactive(t *testing.T) {
	engine := NewEngine(18, nil)
	lines, subtotal := cartOf(pricedLine("Audio", "500", 1))

	coupon := activeCoupon("SAVE10", enums.DiscountTypePercentage, "10")
	coupon.Status = enums.CouponStatusInactive
	if engine.ValidateCoupon(coupon, lines, subtotal, testNow) {
		t.Fatal("inactive coupon must not validate")
	}
}

func TestValidateCouponDateWindowInclusive(t *testing.T) {
	engine := NewEngine(18, nil)
	lines, subtotal := cartOf(pricedLine("Audio", "500", 1))

	coupon := activeCoupon("SAVE10", enums.DiscountTypePercentage, "10")
	coupon.StartDate = testNow
	coupon.ExpiryDate = testNow
	if !engine.ValidateCoupon(coupon, lines, subtotal, testNow) {
		t.Fatal("boundary instants are inside the window")
	}

	if engine.ValidateCoupon(coupon, lines, subtotal, testNow.Add(time.Second)) {
		t.Fatal("expired coupon must not validate")
	}
}

func TestValidateCouponUsageLimits(t *testing.T) {
	engine := NewEngine(18, nil)
	lines, subtotal := cartOf(pricedLine("Audio", "500", 1))

	coupon := activeCoupon("SAVE10", enums.DiscountTypePercentage, "10")
	coupon.UsageLimit = 5
	coupon.UsageCount = 5
	if engine.ValidateCoupon(coupon, lines, subtotal, testNow) {
		t.Fatal("exhausted coupon must not validate")
	}

	coupon = activeCoupon("SAVE10", enums.DiscountTypePercentage, "10")
	coupon.PerUserLimit = 1
	coupon.UserUsageCount = 1
	if engine.ValidateCoupon(coupon, lines, subtotal, testNow) {
		t.Fatal("per-user exhausted coupon must not validate")
	}
}

func TestValidateCouponMinPurchaseAgainstScopedSubtotal(t *testing.T) {
	engine := NewEngine(18, nil)
	lines, subtotal := cartOf(
		pricedLine("Audio", "150", 1),
		pricedLine("Laptops", "500", 1),
	)

	audio := "Audio"
	minPurchase := dec("200")
	coupon := activeCoupon("AUDIO200", enums.DiscountTypeFixed, "200")
	coupon.ApplicableCategory = &audio
	coupon.MinPurchase = &minPurchase

	// The 650 cart total does not help: only 150 of Audio counts.
	if engine.ValidateCoupon(coupon, lines, subtotal, testNow) {
		t.Fatal("min purchase must be checked against the scoped subtotal")
	}
}

func TestValidateCouponScopedNeedsMatchingLine(t *testing.T) {
	engine := NewEngine(18, nil)
	lines, subtotal := cartOf(pricedLine("Laptops", "500", 1))

	audio := "Audio"
	coupon := activeCoupon("AUDIO10", enums.DiscountTypePercentage, "10")
	coupon.ApplicableCategory = &audio

	if engine.ValidateCoupon(coupon, lines, subtotal, testNow) {
		t.Fatal("scoped coupon with no matching line must not validate")
	}
}

func TestComputeCouponDiscountFixedCappedAtScope(t *testing.T) {
	engine := NewEngine(18, nil)
	lines, subtotal := cartOf(
		pricedLine("Audio", "150", 1),
		pricedLine("Laptops", "500", 1),
	)

	audio := "Audio"
	coupon := activeCoupon("AUDIO200", enums.DiscountTypeFixed, "200")
	coupon.ApplicableCategory = &audio

	got := engine.ComputeCouponDiscount(coupon, lines, subtotal)
	if !got.Equal(dec("150")) {
		t.Fatalf("expected 150 (capped at scoped subtotal), got %s", got)
	}
}

func TestComputeCouponDiscountPercentageOnScope(t *testing.T) {
	engine := NewEngine(18, nil)
	lines, subtotal := cartOf(
		pricedLine("Audio", "200", 2),
		pricedLine("Laptops", "600", 1),
	)

	audio := "Audio"
	coupon := activeCoupon("AUDIO25", enums.DiscountTypePercentage, "25")
	coupon.ApplicableCategory = &audio

	got := engine.ComputeCouponDiscount(coupon, lines, subtotal)
	if !got.Equal(dec("100")) {
		t.Fatalf("expected 100 (25%% of 400), got %s", got)
	}
}

func TestComputeCouponDiscountGlobal(t *testing.T) {
	engine := NewEngine(18, nil)
	lines, subtotal := cartOf(pricedLine("Audio", "500", 2))

	got := engine.ComputeCouponDiscount(activeCoupon("FLAT100", enums.DiscountTypeFixed, "100"), lines, subtotal)
	if !got.Equal(dec("100")) {
		t.Fatalf("expected 100, got %s", got)
	}
}

func TestComputeCouponDiscountProductScope(t *testing.T) {
	engine := NewEngine(18, nil)
	target := pricedLine("Audio", "300", 1)
	lines, subtotal := cartOf(target, pricedLine("Laptops", "700", 1))

	coupon := activeCoupon("ONE50", enums.DiscountTypePercentage, "50")
	productID := target.Product.ID
	coupon.ApplicableProductID = &productID

	got := engine.ComputeCouponDiscount(coupon, lines, subtotal)
	if !got.Equal(dec("150")) {
		t.Fatalf("expected 150 (50%% of the one product), got %s", got)
	}
}
