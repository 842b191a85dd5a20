package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

// Coupon is a manually entered discount code. Scope is global when neither
// ApplicableCategory nor ApplicableProductID is set.
type Coupon struct {
	ID                  uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code                string             `gorm:"column:code;not null;uniqueIndex"`
	Description         *string            `gorm:"column:description"`
	Type                enums.DiscountType `gorm:"column:type;not null"`
	Value               decimal.Decimal    `gorm:"column:value;type:numeric(12,2);not null"`
	StartDate           time.Time          `gorm:"column:start_date;not null"`
	ExpiryDate          time.Time          `gorm:"column:expiry_date;not null"`
	MinPurchase         *decimal.Decimal   `gorm:"column:min_purchase;type:numeric(12,2)"`
	UsageLimit          int                `gorm:"column:usage_limit;not null;default:0"`
	UsageCount          int                `gorm:"column:usage_count;not null;default:0"`
	PerUserLimit        int                `gorm:"column:per_user_limit;not null;default:0"`
	Status              enums.CouponStatus `gorm:"column:status;not null;default:active"`
	ApplicableCategory  *string            `gorm:"column:applicable_category"`
	ApplicableProductID *uuid.UUID         `gorm:"column:applicable_product_id;type:uuid"`
	CreatedAt           time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// CouponRedemption records one use of a coupon by a user at order placement.
type CouponRedemption struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CouponID  uuid.UUID `gorm:"column:coupon_id;type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
