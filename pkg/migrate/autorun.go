package migrate

import (
	"context"
	"fmt"

	"github.com/tecbunny/storefront/pkg/config"
	"github.com/tecbunny/storefront/pkg/db"
	"github.com/tecbunny/storefront/pkg/db/models"
	"github.com/tecbunny/storefront/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app runs in dev mode
// and the feature flag is enabled. The SQLite dev backend has no goose
// support here, so it uses gorm's schema sync instead.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if cfg.FeatureFlags.UseSQLite {
		logg.Info(ctx, "syncing sqlite schema (dev auto-run)")
		return client.DB().WithContext(ctx).AutoMigrate(
			&models.Product{},
			&models.CategoryDiscount{},
			&models.BrandDiscount{},
			&models.SeasonalDiscount{},
			&models.CustomDiscount{},
			&models.Coupon{},
			&models.CouponRedemption{},
			&models.Offer{},
			&models.ProductPricing{},
			&models.CustomerProfile{},
			&models.CartRecord{},
			&models.CartItem{},
		)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "running goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
