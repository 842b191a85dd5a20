package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDiscount maps a product category to a flat percentage off.
// Pre-seeded, read-only inside the pricing flow.
type CategoryDiscount struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Category  string          `gorm:"column:category;not null;uniqueIndex"`
	Percent   decimal.Decimal `gorm:"column:percent;type:numeric(5,2);not null"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// BrandDiscount maps a brand to a flat percentage off.
type BrandDiscount struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Brand     string          `gorm:"column:brand;not null;uniqueIndex"`
	Percent   decimal.Decimal `gorm:"column:percent;type:numeric(5,2);not null"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// SeasonalDiscount applies a percentage to the whole catalog inside a fixed
// calendar window.
type SeasonalDiscount struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Percent   decimal.Decimal `gorm:"column:percent;type:numeric(5,2);not null"`
	StartDate time.Time       `gorm:"column:start_date;not null"`
	EndDate   time.Time       `gorm:"column:end_date;not null"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
