package discounts

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/internal/pricing"
	"github.com/tecbunny/storefront/pkg/db/models"
)

// percentUsable filters out rows whose percentage cannot produce a price in
// (0, original]; the engine defends again, but bad rows are worth a log line
// at load time.
func percentUsable(pct decimal.Decimal) bool {
	return pct.IsPositive() && !pct.GreaterThan(decimal.NewFromInt(100))
}

func (s *service) categoryMap(ctx context.Context, rows []models.CategoryDiscount) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		if row.Category == "" || !percentUsable(row.Percent) {
			s.logg.Warn(s.logg.WithField(ctx, "category_discount_id", row.ID.String()), "skipping malformed category discount")
			continue
		}
		out[row.Category] = row.Percent
	}
	return out
}

func (s *service) brandMap(ctx context.Context, rows []models.BrandDiscount) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		if row.Brand == "" || !percentUsable(row.Percent) {
			s.logg.Warn(s.logg.WithField(ctx, "brand_discount_id", row.ID.String()), "skipping malformed brand discount")
			continue
		}
		out[row.Brand] = row.Percent
	}
	return out
}

func (s *service) seasonalWindows(ctx context.Context, rows []models.SeasonalDiscount) []pricing.SeasonalWindow {
	out := make([]pricing.SeasonalWindow, 0, len(rows))
	for _, row := range rows {
		if !percentUsable(row.Percent) || row.EndDate.Before(row.StartDate) {
			s.logg.Warn(s.logg.WithField(ctx, "seasonal_discount_id", row.ID.String()), "skipping malformed seasonal discount")
			continue
		}
		out = append(out, pricing.SeasonalWindow{
			Name:      row.Name,
			Percent:   row.Percent,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
		})
	}
	return out
}

func customRules(rows []models.CustomDiscount) []pricing.CustomDiscount {
	out := make([]pricing.CustomDiscount, 0, len(rows))
	for _, row := range rows {
		out = append(out, pricing.CustomDiscount{
			ID:                   row.ID,
			Name:                 row.Name,
			Type:                 row.Type,
			Value:                row.Value,
			MinQuantity:          row.MinQuantity,
			MaxDiscountPercent:   row.MaxDiscountPercent,
			StartDate:            row.StartDate,
			EndDate:              row.EndDate,
			ApplicableCategories: row.ApplicableCategories,
			ApplicableBrands:     row.ApplicableBrands,
		})
	}
	return out
}

func offerRules(rows []models.Offer) []pricing.Offer {
	out := make([]pricing.Offer, 0, len(rows))
	for _, row := range rows {
		out = append(out, pricing.Offer{
			ID:                  row.ID,
			Name:                row.Name,
			Type:                row.Type,
			Value:               row.Value,
			StartDate:           row.StartDate,
			ExpiryDate:          row.ExpiryDate,
			MinPurchase:         row.MinPurchase,
			Priority:            row.Priority,
			Status:              row.Status,
			ApplicableCategory:  row.ApplicableCategory,
			ApplicableProductID: row.ApplicableProductID,
		})
	}
	return out
}

func tierRows(rows []models.ProductPricing) []pricing.TierPrice {
	out := make([]pricing.TierPrice, 0, len(rows))
	for _, row := range rows {
		out = append(out, pricing.TierPrice{
			ProductID:   row.ProductID,
			Tier:        row.Tier,
			Price:       row.Price,
			MinQuantity: row.MinQuantity,
			MaxQuantity: row.MaxQuantity,
			ValidFrom:   row.ValidFrom,
			ValidTo:     row.ValidTo,
			IsActive:    row.IsActive,
		})
	}
	return out
}
