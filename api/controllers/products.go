package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tecbunny/storefront/api/responses"
	"github.com/tecbunny/storefront/internal/catalog"
	"github.com/tecbunny/storefront/pkg/db/models"
	pkgerrors "github.com/tecbunny/storefront/pkg/errors"
	"github.com/tecbunny/storefront/pkg/logger"
)

type productResponse struct {
	ID       uuid.UUID       `json:"id"`
	SKU      string          `json:"sku"`
	Title    string          `json:"title"`
	BodyHTML *string         `json:"body_html,omitempty"`
	Category string          `json:"category"`
	Brand    string          `json:"brand"`
	Price    decimal.Decimal `json:"price"`
	MRP      decimal.Decimal `json:"mrp"`
	InStock  bool            `json:"in_stock"`
}

func newProductResponse(row models.Product) productResponse {
	return productResponse{
		ID:       row.ID,
		SKU:      row.SKU,
		Title:    row.Title,
		BodyHTML: row.BodyHTML,
		Category: row.Category,
		Brand:    row.Brand,
		Price:    row.Price,
		MRP:      row.MRP,
		InStock:  row.Stock > 0,
	}
}

// ProductList serves the public catalog listing.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query()
		input := catalog.ListProductsInput{
			Category: query.Get("category"),
			Brand:    query.Get("brand"),
			Search:   query.Get("q"),
		}
		if raw := query.Get("limit"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				input.Limit = v
			}
		}
		if raw := query.Get("offset"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				input.Offset = v
			}
		}

		rows, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]productResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, newProductResponse(row))
		}
		responses.WriteSuccess(w, out)
	}
}

// ProductDetail serves one catalog listing.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		row, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductResponse(*row))
	}
}
