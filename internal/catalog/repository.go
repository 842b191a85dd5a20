package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tecbunny/storefront/pkg/db/models"
)

// ListProductsInput narrows a product listing. Empty fields mean no filter.
type ListProductsInput struct {
	Category string
	Brand    string
	Search   string
	Limit    int
	Offset   int
}

// Repository exposes product persistence.
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

// FindByID loads one product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var row models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByIDs loads several products in one query.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns active products matching the filters, newest first.
func (r *Repository) List(ctx context.Context, input ListProductsInput) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if input.Category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(input.Category))
	}
	if input.Brand != "" {
		q = q.Where("LOWER(brand) = ?", strings.ToLower(input.Brand))
	}
	if input.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(input.Search)) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var rows []models.Product
	err := q.Order("created_at DESC").Limit(limit).Offset(input.Offset).Find(&rows).Error
	return rows, err
}
