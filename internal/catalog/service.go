package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tecbunny/storefront/internal/pricing"
	"github.com/tecbunny/storefront/pkg/db/models"
	pkgerrors "github.com/tecbunny/storefront/pkg/errors"
)

// ProductRepository is the persistence surface the catalog service needs.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	List(ctx context.Context, input ListProductsInput) ([]models.Product, error)
}

// Service exposes product reads to the API and the cart flow.
type Service interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, error)
}

type service struct {
	repo ProductRepository
}

// NewService builds the catalog service.
func NewService(repo ProductRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !row.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return row, nil
}

// GetProducts loads the requested products keyed by id. Missing or inactive
// ids are simply absent from the result; the caller decides whether that is
// an error.
func (s *service) GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	rows, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	out := make(map[uuid.UUID]models.Product, len(rows))
	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		out[row.ID] = row
	}
	return out, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, error) {
	rows, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

// PricingProduct converts a catalog row into the engine's product snapshot.
func PricingProduct(row models.Product) pricing.Product {
	return pricing.Product{
		ID:       row.ID,
		SKU:      row.SKU,
		Title:    row.Title,
		Category: row.Category,
		Brand:    row.Brand,
		Price:    row.Price,
		MRP:      row.MRP,
	}
}
