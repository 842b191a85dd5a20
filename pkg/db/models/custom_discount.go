package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/pkg/enums"
)

// CustomDiscount is a named discount rule with an optional validity window,
// minimum quantity, and category/brand scoping.
type CustomDiscount struct {
	ID                   uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                 string             `gorm:"column:name;not null"`
	Type                 enums.DiscountType `gorm:"column:type;not null"`
	Value                decimal.Decimal    `gorm:"column:value;type:numeric(12,2);not null"`
	MinQuantity          *int               `gorm:"column:min_quantity"`
	MaxDiscountPercent   *decimal.Decimal   `gorm:"column:max_discount_percent;type:numeric(5,2)"`
	StartDate            *time.Time         `gorm:"column:start_date"`
	EndDate              *time.Time         `gorm:"column:end_date"`
	ApplicableCategories pq.StringArray     `gorm:"column:applicable_categories;type:text[]"`
	ApplicableBrands     pq.StringArray     `gorm:"column:applicable_brands;type:text[]"`
	IsActive             bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt            time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
