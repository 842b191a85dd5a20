package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

// Offer is an always-on discount applied without a code. Priority is a
// display hint only; selection is by computed discount amount.
type Offer struct {
	ID                  uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                string             `gorm:"column:name;not null"`
	Type                enums.DiscountType `gorm:"column:type;not null"`
	Value               decimal.Decimal    `gorm:"column:value;type:numeric(12,2);not null"`
	StartDate           time.Time          `gorm:"column:start_date;not null"`
	ExpiryDate          time.Time          `gorm:"column:expiry_date;not null"`
	MinPurchase         *decimal.Decimal   `gorm:"column:min_purchase;type:numeric(12,2)"`
	Priority            int                `gorm:"column:priority;not null;default:0"`
	Status              enums.CouponStatus `gorm:"column:status;not null;default:active"`
	ApplicableCategory  *string            `gorm:"column:applicable_category"`
	ApplicableProductID *uuid.UUID         `gorm:"column:applicable_product_id;type:uuid"`
	CreatedAt           time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
