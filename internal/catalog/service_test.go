package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tecbunny/storefront/pkg/db/models"
	pkgerrors "github.com/tecbunny/storefront/pkg/errors"
)

type stubProductRepo struct {
	rows map[uuid.UUID]models.Product
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (s *stubProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if row, ok := s.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubProductRepo) List(ctx context.Context, input ListProductsInput) ([]models.Product, error) {
	var out []models.Product
	for _, row := range s.rows {
		out = append(out, row)
	}
	return out, nil
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubProductRepo{rows: map[uuid.UUID]models.Product{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetProductHidesInactive(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &stubProductRepo{rows: map[uuid.UUID]models.Product{
		id: {ID: id, SKU: "SKU-1", IsActive: false, Price: decimal.NewFromInt(100), MRP: decimal.NewFromInt(120)},
	}}
	svc, _ := NewService(repo)

	_, err := svc.GetProduct(context.Background(), id)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("inactive product must read as not found, got %v", err)
	}
}

func TestGetProductsSkipsMissingAndInactive(t *testing.T) {
	t.Parallel()

	active := uuid.New()
	inactive := uuid.New()
	repo := &stubProductRepo{rows: map[uuid.UUID]models.Product{
		active:   {ID: active, SKU: "SKU-1", IsActive: true, Price: decimal.NewFromInt(100), MRP: decimal.NewFromInt(120)},
		inactive: {ID: inactive, SKU: "SKU-2", IsActive: false, Price: decimal.NewFromInt(100), MRP: decimal.NewFromInt(120)},
	}}
	svc, _ := NewService(repo)

	got, err := svc.GetProducts(context.Background(), []uuid.UUID{active, inactive, uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the active product, got %d", len(got))
	}
	if _, ok := got[active]; !ok {
		t.Fatal("active product missing from result")
	}
}

func TestPricingProductCarriesSnapshot(t *testing.T) {
	t.Parallel()

	row := models.Product{
		ID:       uuid.New(),
		SKU:      "SKU-9",
		Title:    "Bunny Buds",
		Category: "Audio",
		Brand:    "Bunny",
		Price:    decimal.NewFromInt(999),
		MRP:      decimal.NewFromInt(1299),
	}

	got := PricingProduct(row)
	if got.ID != row.ID || got.Category != "Audio" || !got.Price.Equal(row.Price) || !got.MRP.Equal(row.MRP) {
		t.Fatalf("snapshot mismatch: %+v", got)
	}
}
