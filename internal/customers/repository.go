package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tecbunny/storefront/pkg/db/models"
)

// Repository exposes customer profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByUserID loads the profile for a user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.CustomerProfile, error) {
	var row models.CustomerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new profile.
func (r *Repository) Create(ctx context.Context, row *models.CustomerProfile) (*models.CustomerProfile, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update saves the provided profile.
func (r *Repository) Update(ctx context.Context, row *models.CustomerProfile) (*models.CustomerProfile, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
