package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
	"github.com/tecbunny/storefront/pkg/metrics"
)

var (
	hundred = decimal.NewFromInt(100)

	// marginFloorPercent is the hard lower bound: no discount stack may
	// price a unit below this share of the original selling price.
	marginFloorPercent = decimal.NewFromInt(10)

	customerCategoryPercents = map[enums.CustomerCategory]decimal.Decimal{
		enums.CustomerCategoryNormal:   decimal.Zero,
		enums.CustomerCategoryStandard: decimal.NewFromInt(5),
		enums.CustomerCategoryPremium:  decimal.NewFromInt(10),
	}

	b2bTierPercents = map[enums.B2BTier]decimal.Decimal{
		enums.B2BTierBronze: decimal.NewFromInt(8),
		enums.B2BTierSilver: decimal.NewFromInt(12),
		enums.B2BTierGold:   decimal.NewFromInt(15),
	}
)

// bulkBreak is a quantity threshold with its multiplicative percentage off.
type bulkBreak struct {
	minQty  int
	percent decimal.Decimal
}

// Ordered highest threshold first; the first match wins.
var bulkBreaks = []bulkBreak{
	{minQty: 50, percent: decimal.NewFromInt(15)},
	{minQty: 20, percent: decimal.NewFromInt(10)},
	{minQty: 10, percent: decimal.NewFromInt(5)},
}

// Engine resolves discounts and prices. It is a pure, synchronous computation
// over data already fetched into memory: no locks, no I/O, no cached state.
type Engine struct {
	gstRatePercent decimal.Decimal
	metrics        *metrics.PricingMetrics
}

// NewEngine builds an engine with the flat GST rate (percent). Metrics may be
// nil.
func NewEngine(gstRatePercent int, m *metrics.PricingMetrics) *Engine {
	rate := decimal.NewFromInt(int64(gstRatePercent))
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return &Engine{gstRatePercent: rate, metrics: m}
}

// round2 applies standard half-away-from-zero rounding to the smallest
// currency unit.
func round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// percentOff returns base reduced by pct percent.
func percentOff(base, pct decimal.Decimal) decimal.Decimal {
	return base.Sub(base.Mul(pct).Div(hundred))
}

// validPercent filters malformed percentage values; one bad rule must never
// break pricing for the whole cart.
func validPercent(pct decimal.Decimal) bool {
	return pct.IsPositive() && pct.LessThanOrEqual(hundred)
}
