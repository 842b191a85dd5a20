package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

// ProductPricing is one B2B price tier row per (product, tier, quantity band).
// At most one row should be active for a given lookup; duplicates are
// tolerated by taking the first match.
type ProductPricing struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	Tier        enums.B2BTier   `gorm:"column:tier;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	MinQuantity *int            `gorm:"column:min_quantity"`
	MaxQuantity *int            `gorm:"column:max_quantity"`
	ValidFrom   *time.Time      `gorm:"column:valid_from"`
	ValidTo     *time.Time      `gorm:"column:valid_to"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
