package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

// Product is the catalog snapshot the engine prices against. It is immutable
// for the duration of one computation.
type Product struct {
	ID       uuid.UUID       `json:"id"`
	SKU      string          `json:"sku"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Brand    string          `json:"brand"`
	Price    decimal.Decimal `json:"price"`
	MRP      decimal.Decimal `json:"mrp"`
}

// CartLine is one requested line: a product and a quantity.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// PricedLine is a cart line after unit-price resolution.
type PricedLine struct {
	Product      Product         `json:"product"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	AppliedRules []string        `json:"applied_rules"`
}

// CustomerProfile is the stored classification for a user, handed in by the
// profile store.
type CustomerProfile struct {
	CustomerType     enums.CustomerType
	CustomerCategory *enums.CustomerCategory
	B2BTier          *enums.B2BTier
	GSTVerified      bool
}

// CustomerContext is the resolved commercial classification used for pricing.
// Category is meaningful when B2C is true, Tier when it is false.
type CustomerContext struct {
	B2C      bool                   `json:"b2c"`
	Category enums.CustomerCategory `json:"category,omitempty"`
	Tier     enums.B2BTier          `json:"b2b_tier,omitempty"`
}

// CustomerType returns the enum form of the resolved context.
func (c CustomerContext) CustomerType() enums.CustomerType {
	if c.B2C {
		return enums.CustomerTypeB2C
	}
	return enums.CustomerTypeB2B
}

// SeasonalWindow is a catalog-wide percentage inside a fixed calendar window.
type SeasonalWindow struct {
	Name      string
	Percent   decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
}

// CustomDiscount is a named discount rule. Absent date bounds mean unbounded
// on that side.
type CustomDiscount struct {
	ID                   uuid.UUID
	Name                 string
	Type                 enums.DiscountType
	Value                decimal.Decimal
	MinQuantity          *int
	MaxDiscountPercent   *decimal.Decimal
	StartDate            *time.Time
	EndDate              *time.Time
	ApplicableCategories []string
	ApplicableBrands     []string
}

// Coupon is a manually entered code. UserUsageCount is the calling user's
// redemption count, resolved by the caller before pricing.
type Coupon struct {
	ID                  uuid.UUID          `json:"id"`
	Code                string             `json:"code"`
	Type                enums.DiscountType `json:"type"`
	Value               decimal.Decimal    `json:"value"`
	StartDate           time.Time          `json:"start_date"`
	ExpiryDate          time.Time          `json:"expiry_date"`
	MinPurchase         *decimal.Decimal   `json:"min_purchase,omitempty"`
	UsageLimit          int                `json:"usage_limit"`
	UsageCount          int                `json:"-"`
	PerUserLimit        int                `json:"per_user_limit"`
	UserUsageCount      int                `json:"-"`
	Status              enums.CouponStatus `json:"status"`
	ApplicableCategory  *string            `json:"applicable_category,omitempty"`
	ApplicableProductID *uuid.UUID         `json:"applicable_product_id,omitempty"`
}

// Offer is an always-on discount applied without a code. Priority is a
// display hint; selection is by computed discount amount.
type Offer struct {
	ID                  uuid.UUID          `json:"id"`
	Name                string             `json:"name"`
	Type                enums.DiscountType `json:"type"`
	Value               decimal.Decimal    `json:"value"`
	StartDate           time.Time          `json:"start_date"`
	ExpiryDate          time.Time          `json:"expiry_date"`
	MinPurchase         *decimal.Decimal   `json:"min_purchase,omitempty"`
	Priority            int                `json:"priority"`
	Status              enums.CouponStatus `json:"status"`
	ApplicableCategory  *string            `json:"applicable_category,omitempty"`
	ApplicableProductID *uuid.UUID         `json:"applicable_product_id,omitempty"`
}

// TierPrice is one B2B price-tier row for a product.
type TierPrice struct {
	ProductID   uuid.UUID
	Tier        enums.B2BTier
	Price       decimal.Decimal
	MinQuantity *int
	MaxQuantity *int
	ValidFrom   *time.Time
	ValidTo     *time.Time
	IsActive    bool
}

// Catalog bundles every discount-like record fetched for one computation.
// A stale or empty catalog is valid input: the engine simply finds no
// matching rules.
type Catalog struct {
	CategoryDiscounts map[string]decimal.Decimal
	BrandDiscounts    map[string]decimal.Decimal
	Seasonal          []SeasonalWindow
	CustomDiscounts   []CustomDiscount
	Coupons           []Coupon
	Offers            []Offer
	TierPrices        []TierPrice
}

// UnitPrice is a resolved per-unit price plus the labels of whichever rules
// fired, for display.
type UnitPrice struct {
	Price        decimal.Decimal `json:"price"`
	AppliedRules []string        `json:"applied_rules"`
}

// AppliedOffer pairs the winning auto-offer with its computed discount.
type AppliedOffer struct {
	Offer    Offer           `json:"offer"`
	Discount decimal.Decimal `json:"discount"`
}

// PricingResult is the engine's sole externally visible artifact. Field names
// are a stable contract with the cart and checkout UI.
type PricingResult struct {
	Lines               []PricedLine    `json:"lines"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	GSTAmount           decimal.Decimal `json:"gst_amount"`
	AutoOffer           *Offer          `json:"auto_offer,omitempty"`
	AutoOfferDiscount   decimal.Decimal `json:"auto_offer_discount"`
	AppliedCoupon       *Coupon         `json:"applied_coupon,omitempty"`
	CouponDiscount      decimal.Decimal `json:"coupon_discount"`
	TotalDiscount       decimal.Decimal `json:"total_discount"`
	FinalTotal          decimal.Decimal `json:"final_total"`
	CanCombineDiscounts bool            `json:"can_combine_discounts"`
	AvailableCoupons    []Coupon        `json:"available_coupons"`
	CouponRemoved       bool            `json:"coupon_removed"`
}

// CartPricingInput carries everything one cart computation needs. Now is an
// explicit input so identical inputs always produce identical output.
type CartPricingInput struct {
	Lines             []CartLine
	Customer          CustomerContext
	Catalog           Catalog
	AppliedCouponCode string
	Now               time.Time
}
