package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tecbunny/storefront/pkg/enums"
)

// CustomerProfile stores the commercial classification for a user. The B2B
// fields only take effect once GSTVerified is set by the upgrade flow.
type CustomerProfile struct {
	ID               uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID               `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	CustomerType     enums.CustomerType      `gorm:"column:customer_type;not null;default:B2C"`
	CustomerCategory *enums.CustomerCategory `gorm:"column:customer_category"`
	B2BTier          *enums.B2BTier          `gorm:"column:b2b_tier"`
	GSTIN            *string                 `gorm:"column:gstin"`
	GSTVerified      bool                    `gorm:"column:gst_verified;not null;default:false"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
