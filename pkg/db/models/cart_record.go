package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

// CartRecord is the persisted cart snapshot. The monetary columns mirror the
// last pricing computation; they are derived data and are overwritten on
// every mutation.
type CartRecord struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	Status            enums.CartStatus `gorm:"column:status;not null;default:active"`
	AppliedCouponCode *string          `gorm:"column:applied_coupon_code"`
	Subtotal          decimal.Decimal  `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	TotalDiscount     decimal.Decimal  `gorm:"column:total_discount;type:numeric(12,2);not null;default:0"`
	GSTAmount         decimal.Decimal  `gorm:"column:gst_amount;type:numeric(12,2);not null;default:0"`
	FinalTotal        decimal.Decimal  `gorm:"column:final_total;type:numeric(12,2);not null;default:0"`
	Items             []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
