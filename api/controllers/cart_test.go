package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecbunny/storefront/api/middleware"
	cartsvc "github.com/tecbunny/storefront/internal/cart"
	"github.com/tecbunny/storefront/internal/pricing"
	"github.com/tecbunny/storefront/pkg/db/models"
	pkgerrors "github.com/tecbunny/storefront/pkg/errors"
)

type stubCartService struct {
	view    *cartsvc.CartView
	err     error
	applied string
}

func (s *stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cartsvc.CartView, error) {
	return s.view, s.err
}

func (s *stubCartService) UpsertLine(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cartsvc.CartView, error) {
	return s.view, s.err
}

func (s *stubCartService) RemoveLine(ctx context.Context, userID, productID uuid.UUID) (*cartsvc.CartView, error) {
	return s.view, s.err
}

func (s *stubCartService) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*cartsvc.CartView, error) {
	s.applied = code
	return s.view, s.err
}

func (s *stubCartService) RemoveCoupon(ctx context.Context, userID uuid.UUID) (*cartsvc.CartView, error) {
	return s.view, s.err
}

func (s *stubCartService) Checkout(ctx context.Context, userID uuid.UUID) (*cartsvc.CartView, error) {
	return s.view, s.err
}

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
}

func TestCartFetchRequiresUserContext(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartApplyCouponPassesCode(t *testing.T) {
	svc := &stubCartService{view: &cartsvc.CartView{
		Cart:    &models.CartRecord{ID: uuid.New()},
		Pricing: pricing.PricingResult{},
	}}
	handler := CartApplyCoupon(svc, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/cart/coupon", `{"code":"SAVE10"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SAVE10", svc.applied)

	var payload struct {
		Data cartsvc.CartView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotNil(t, payload.Data.Cart)
}

func TestCartApplyCouponRejectsEmptyBody(t *testing.T) {
	handler := CartApplyCoupon(&stubCartService{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/cart/coupon", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartUpsertLineSurfacesServiceError(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeValidation, "requested quantity exceeds available stock")}
	handler := CartUpsertLine(svc, nil)

	body := `{"product_id":"` + uuid.NewString() + `","quantity":3}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/v1/cart/items", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "VALIDATION_ERROR", payload.Error.Code)
	assert.Contains(t, payload.Error.Message, "stock")
}
