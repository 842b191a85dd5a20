package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tecbunny/storefront/api/responses"
	"github.com/tecbunny/storefront/api/validators"
	customersvc "github.com/tecbunny/storefront/internal/customers"
	"github.com/tecbunny/storefront/internal/pricing"
	"github.com/tecbunny/storefront/pkg/db/models"
	"github.com/tecbunny/storefront/pkg/enums"
	pkgerrors "github.com/tecbunny/storefront/pkg/errors"
	"github.com/tecbunny/storefront/pkg/logger"
)

type customerProfileResponse struct {
	UserID           uuid.UUID               `json:"user_id"`
	CustomerType     enums.CustomerType      `json:"customer_type"`
	CustomerCategory *enums.CustomerCategory `json:"customer_category,omitempty"`
	B2BTier          *enums.B2BTier          `json:"b2b_tier,omitempty"`
	GSTIN            *string                 `json:"gstin,omitempty"`
	GSTVerified      bool                    `json:"gst_verified"`
	GSTState         string                  `json:"gst_state,omitempty"`
}

func newCustomerProfileResponse(row *models.CustomerProfile) customerProfileResponse {
	out := customerProfileResponse{
		UserID:           row.UserID,
		CustomerType:     row.CustomerType,
		CustomerCategory: row.CustomerCategory,
		B2BTier:          row.B2BTier,
		GSTIN:            row.GSTIN,
		GSTVerified:      row.GSTVerified,
	}
	if row.GSTIN != nil {
		if state, err := pricing.GSTStateName(*row.GSTIN); err == nil {
			out.GSTState = state
		}
	}
	return out
}

// CustomerProfile returns the caller's stored commercial classification.
func CustomerProfile(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCustomerProfileResponse(row))
	}
}

type b2bUpgradeRequest struct {
	GSTIN string `json:"gstin" validate:"required,len=15"`
}

// CustomerB2BUpgrade switches the caller to business pricing after GSTIN
// validation.
func CustomerB2BUpgrade(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload b2bUpgradeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.UpgradeToB2B(r.Context(), userID, payload.GSTIN)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCustomerProfileResponse(row))
	}
}

func pathUserID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return id, nil
}

type assignCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

// AdminAssignCategory sets a customer's loyalty category.
func AdminAssignCategory(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseCustomerCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		row, err := svc.AssignCategory(r.Context(), userID, category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCustomerProfileResponse(row))
	}
}

type assignTierRequest struct {
	Tier string `json:"tier" validate:"required"`
}

// AdminAssignTier sets a customer's negotiated B2B tier.
func AdminAssignTier(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignTierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := enums.ParseB2BTier(payload.Tier)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tier"))
			return
		}

		row, err := svc.AssignTier(r.Context(), userID, tier)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCustomerProfileResponse(row))
	}
}
