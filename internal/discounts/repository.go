package discounts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tecbunny/storefront/pkg/db/models"
	"github.com/tecbunny/storefront/pkg/enums"
)

// RedemptionLedger is the coupon bookkeeping surface checkout needs: code
// lookup at apply time and the redemption write at order placement. WithTx
// rebinds the ledger so the redemption row and its caller's writes share one
// transaction.
type RedemptionLedger interface {
	WithTx(tx *gorm.DB) RedemptionLedger
	FindCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	RecordRedemption(ctx context.Context, couponID, userID, cartID uuid.UUID) error
}

// Repository exposes read access to every discount-like table plus coupon
// redemption bookkeeping.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) RedemptionLedger {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListCategoryDiscounts returns the active category percentages.
func (r *Repository) ListCategoryDiscounts(ctx context.Context) ([]models.CategoryDiscount, error) {
	var rows []models.CategoryDiscount
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&rows).Error
	return rows, err
}

// ListBrandDiscounts returns the active brand percentages.
func (r *Repository) ListBrandDiscounts(ctx context.Context) ([]models.BrandDiscount, error) {
	var rows []models.BrandDiscount
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&rows).Error
	return rows, err
}

// ListSeasonalDiscounts returns seasonal windows overlapping now.
func (r *Repository) ListSeasonalDiscounts(ctx context.Context, now time.Time) ([]models.SeasonalDiscount, error) {
	var rows []models.SeasonalDiscount
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Find(&rows).Error
	return rows, err
}

// ListCustomDiscounts returns the active custom discount rules.
func (r *Repository) ListCustomDiscounts(ctx context.Context) ([]models.CustomDiscount, error) {
	var rows []models.CustomDiscount
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListCoupons returns every active coupon; validity windows and usage limits
// are the engine's concern.
func (r *Repository) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var rows []models.Coupon
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.CouponStatusActive).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// FindCouponByCode loads one coupon by code, case-insensitively, matching
// the engine's code normalization.
func (r *Repository) FindCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var row models.Coupon
	if err := r.db.WithContext(ctx).Where("UPPER(code) = UPPER(?)", strings.TrimSpace(code)).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListOffers returns every active auto-applied offer.
func (r *Repository) ListOffers(ctx context.Context) ([]models.Offer, error) {
	var rows []models.Offer
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.CouponStatusActive).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListTierPrices returns the active B2B tier rows for the given products,
// ordered by creation so duplicate rows resolve deterministically.
func (r *Repository) ListTierPrices(ctx context.Context, productIDs []uuid.UUID) ([]models.ProductPricing, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var rows []models.ProductPricing
	err := r.db.WithContext(ctx).
		Where("product_id IN ? AND is_active = ?", productIDs, true).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// CountUserRedemptions returns how many times the user has redeemed each of
// the given coupons.
func (r *Repository) CountUserRedemptions(ctx context.Context, userID uuid.UUID, couponIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(couponIDs))
	if len(couponIDs) == 0 {
		return counts, nil
	}
	type row struct {
		CouponID uuid.UUID
		Total    int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.CouponRedemption{}).
		Select("coupon_id, COUNT(*) AS total").
		Where("user_id = ? AND coupon_id IN ?", userID, couponIDs).
		Group("coupon_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.CouponID] = r.Total
	}
	return counts, nil
}

// RecordRedemption inserts a redemption row and bumps the coupon counter.
// Called inside the order-placement transaction.
func (r *Repository) RecordRedemption(ctx context.Context, couponID, userID, cartID uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	redemption := models.CouponRedemption{CouponID: couponID, UserID: userID, CartID: cartID}
	if err := tx.Create(&redemption).Error; err != nil {
		return err
	}
	return tx.Model(&models.Coupon{}).
		Where("id = ?", couponID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
