package discounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tecbunny/storefront/internal/pricing"
	"github.com/tecbunny/storefront/pkg/db/models"
	pkgerrors "github.com/tecbunny/storefront/pkg/errors"
	"github.com/tecbunny/storefront/pkg/logger"
)

// CatalogRepository is the persistence surface the loader needs.
type CatalogRepository interface {
	ListCategoryDiscounts(ctx context.Context) ([]models.CategoryDiscount, error)
	ListBrandDiscounts(ctx context.Context) ([]models.BrandDiscount, error)
	ListSeasonalDiscounts(ctx context.Context, now time.Time) ([]models.SeasonalDiscount, error)
	ListCustomDiscounts(ctx context.Context) ([]models.CustomDiscount, error)
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	ListOffers(ctx context.Context) ([]models.Offer, error)
	ListTierPrices(ctx context.Context, productIDs []uuid.UUID) ([]models.ProductPricing, error)
	CountUserRedemptions(ctx context.Context, userID uuid.UUID, couponIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// Service loads every discount-like record for one pricing run and hands the
// engine a plain catalog. The engine never touches gorm rows.
type Service interface {
	BuildCatalog(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID, now time.Time) (pricing.Catalog, error)
}

type service struct {
	repo CatalogRepository
	logg *logger.Logger
}

// NewService builds the catalog loader.
func NewService(repo CatalogRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discounts repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// BuildCatalog fetches and converts every rule set. Rows that cannot be
// expressed as engine input are skipped and logged, never guessed at.
func (s *service) BuildCatalog(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID, now time.Time) (pricing.Catalog, error) {
	var catalog pricing.Catalog

	categories, err := s.repo.ListCategoryDiscounts(ctx)
	if err != nil {
		return catalog, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list category discounts")
	}
	brands, err := s.repo.ListBrandDiscounts(ctx)
	if err != nil {
		return catalog, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brand discounts")
	}
	seasonal, err := s.repo.ListSeasonalDiscounts(ctx, now)
	if err != nil {
		return catalog, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seasonal discounts")
	}
	custom, err := s.repo.ListCustomDiscounts(ctx)
	if err != nil {
		return catalog, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list custom discounts")
	}
	coupons, err := s.repo.ListCoupons(ctx)
	if err != nil {
		return catalog, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	offers, err := s.repo.ListOffers(ctx)
	if err != nil {
		return catalog, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}
	tiers, err := s.repo.ListTierPrices(ctx, productIDs)
	if err != nil {
		return catalog, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tier prices")
	}

	catalog = pricing.Catalog{
		CategoryDiscounts: s.categoryMap(ctx, categories),
		BrandDiscounts:    s.brandMap(ctx, brands),
		Seasonal:          s.seasonalWindows(ctx, seasonal),
		CustomDiscounts:   customRules(custom),
		Offers:            offerRules(offers),
		TierPrices:        tierRows(tiers),
	}

	catalog.Coupons, err = s.couponRules(ctx, userID, coupons)
	if err != nil {
		return pricing.Catalog{}, err
	}
	return catalog, nil
}

func (s *service) couponRules(ctx context.Context, userID uuid.UUID, rows []models.Coupon) ([]pricing.Coupon, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	userCounts := map[uuid.UUID]int{}
	if userID != uuid.Nil {
		var err error
		userCounts, err = s.repo.CountUserRedemptions(ctx, userID, ids)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count coupon redemptions")
		}
	}

	coupons := make([]pricing.Coupon, 0, len(rows))
	for _, row := range rows {
		if row.Code == "" || !row.Value.IsPositive() {
			s.logg.Warn(s.logg.WithField(ctx, "coupon_id", row.ID.String()), "skipping malformed coupon row")
			continue
		}
		coupons = append(coupons, pricing.Coupon{
			ID:                  row.ID,
			Code:                row.Code,
			Type:                row.Type,
			Value:               row.Value,
			StartDate:           row.StartDate,
			ExpiryDate:          row.ExpiryDate,
			MinPurchase:         row.MinPurchase,
			UsageLimit:          row.UsageLimit,
			UsageCount:          row.UsageCount,
			PerUserLimit:        row.PerUserLimit,
			UserUsageCount:      userCounts[row.ID],
			Status:              row.Status,
			ApplicableCategory:  row.ApplicableCategory,
			ApplicableProductID: row.ApplicableProductID,
		})
	}
	return coupons, nil
}
