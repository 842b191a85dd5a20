package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tecbunny/storefront/internal/pricing"
	"github.com/tecbunny/storefront/pkg/db/models"
	"github.com/tecbunny/storefront/pkg/enums"
	pkgerrors "github.com/tecbunny/storefront/pkg/errors"
	"github.com/tecbunny/storefront/pkg/logger"
)

// ProfileRepository is the persistence surface the customer service needs.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error)
	Create(ctx context.Context, row *models.CustomerProfile) (*models.CustomerProfile, error)
	Update(ctx context.Context, row *models.CustomerProfile) (*models.CustomerProfile, error)
}

// Service exposes profile reads, the B2B upgrade flow, and the back-office
// classification updates.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error)
	ResolveContext(ctx context.Context, userID uuid.UUID) (pricing.CustomerContext, error)
	UpgradeToB2B(ctx context.Context, userID uuid.UUID, gstin string) (*models.CustomerProfile, error)
	AssignCategory(ctx context.Context, userID uuid.UUID, category enums.CustomerCategory) (*models.CustomerProfile, error)
	AssignTier(ctx context.Context, userID uuid.UUID, tier enums.B2BTier) (*models.CustomerProfile, error)
}

type service struct {
	repo ProfileRepository
	logg *logger.Logger
}

// NewService builds the customer service.
func NewService(repo ProfileRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// GetProfile returns the stored profile, creating the default retail profile
// on first access.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	row, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer profile")
	}

	normal := enums.CustomerCategoryNormal
	created, err := s.repo.Create(ctx, &models.CustomerProfile{
		UserID:           userID,
		CustomerType:     enums.CustomerTypeB2C,
		CustomerCategory: &normal,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer profile")
	}
	return created, nil
}

// ResolveContext maps the stored profile to the pricing classification. A
// missing profile resolves to retail Normal rather than failing the request.
func (s *service) ResolveContext(ctx context.Context, userID uuid.UUID) (pricing.CustomerContext, error) {
	if userID == uuid.Nil {
		return pricing.ResolveCustomerContext(nil), nil
	}
	row, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.ResolveCustomerContext(nil), nil
		}
		return pricing.CustomerContext{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer profile")
	}
	return pricing.ResolveCustomerContext(&pricing.CustomerProfile{
		CustomerType:     row.CustomerType,
		CustomerCategory: row.CustomerCategory,
		B2BTier:          row.B2BTier,
		GSTVerified:      row.GSTVerified,
	}), nil
}

// UpgradeToB2B switches the profile to business pricing. The GSTIN must pass
// format and state-code validation; anything else leaves the profile at
// retail pricing.
func (s *service) UpgradeToB2B(ctx context.Context, userID uuid.UUID, gstin string) (*models.CustomerProfile, error) {
	if err := pricing.ValidateGSTIN(gstin); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gstin")
	}

	row, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	tier := enums.B2BTierBronze
	if row.B2BTier != nil && row.B2BTier.IsValid() {
		tier = *row.B2BTier
	}

	row.CustomerType = enums.CustomerTypeB2B
	row.B2BTier = &tier
	row.GSTIN = &gstin
	row.GSTVerified = true

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer profile")
	}
	s.logg.Info(s.logg.WithUserID(ctx, userID.String()), "customer upgraded to B2B pricing")
	return updated, nil
}

// AssignCategory sets the retail loyalty category.
func (s *service) AssignCategory(ctx context.Context, userID uuid.UUID, category enums.CustomerCategory) (*models.CustomerProfile, error) {
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown customer category")
	}
	row, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	row.CustomerCategory = &category
	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer profile")
	}
	return updated, nil
}

// AssignTier sets the negotiated B2B tier. The tier only affects pricing once
// the account is GST verified.
func (s *service) AssignTier(ctx context.Context, userID uuid.UUID, tier enums.B2BTier) (*models.CustomerProfile, error) {
	if !tier.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown b2b tier")
	}
	row, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	row.B2BTier = &tier
	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer profile")
	}
	return updated, nil
}
