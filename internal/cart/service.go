package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tecbunny/storefront/internal/catalog"
	"github.com/tecbunny/storefront/internal/discounts"
	"github.com/tecbunny/storefront/internal/pricing"
	"github.com/tecbunny/storefront/pkg/db/models"
	"github.com/tecbunny/storefront/pkg/enums"
	pkgerrors "github.com/tecbunny/storefront/pkg/errors"
	"github.com/tecbunny/storefront/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

type contextResolver interface {
	ResolveContext(ctx context.Context, userID uuid.UUID) (pricing.CustomerContext, error)
}

type catalogLoader interface {
	BuildCatalog(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID, now time.Time) (pricing.Catalog, error)
}

// CartView is the API-facing cart: the stored record plus the freshly
// computed pricing breakdown.
type CartView struct {
	Cart    *models.CartRecord    `json:"cart"`
	Pricing pricing.PricingResult `json:"pricing"`
}

// Service exposes the server-side cart. Every mutation recomputes the full
// pricing breakdown from scratch and persists the snapshot; the stored
// monetary columns are never trusted as input.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
	UpsertLine(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartView, error)
	RemoveLine(ctx context.Context, userID, productID uuid.UUID) (*CartView, error)
	ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*CartView, error)
	RemoveCoupon(ctx context.Context, userID uuid.UUID) (*CartView, error)
	Checkout(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

type service struct {
	repo        CartRepository
	tx          txRunner
	products    productLoader
	customers   contextResolver
	discounts   catalogLoader
	redemptions discounts.RedemptionLedger
	engine      *pricing.Engine
	logg        *logger.Logger
	now         func() time.Time
}

// NewService builds a cart service backed by the provided stack.
func NewService(
	repo CartRepository,
	tx txRunner,
	products productLoader,
	customers contextResolver,
	discounts catalogLoader,
	redemptions discounts.RedemptionLedger,
	engine *pricing.Engine,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer resolver required")
	}
	if discounts == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if redemptions == nil {
		return nil, fmt.Errorf("redemption recorder required")
	}
	if engine == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		tx:          tx,
		products:    products,
		customers:   customers,
		discounts:   discounts,
		redemptions: redemptions,
		engine:      engine,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// GetCart returns the active cart with fresh pricing, creating an empty cart
// on first access.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	record, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.reprice(ctx, userID, record)
}

// UpsertLine sets the quantity for a product, adding the line if absent.
func (s *service) UpsertLine(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "requested quantity exceeds available stock").
			WithDetails(map[string]int{"available": product.Stock})
	}

	record, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range record.Items {
		if record.Items[i].ProductID == productID {
			record.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		record.Items = append(record.Items, models.CartItem{
			CartID:    record.ID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}

	return s.reprice(ctx, userID, record)
}

// RemoveLine deletes the product's line. Removing the last line leaves an
// empty active cart.
func (s *service) RemoveLine(ctx context.Context, userID, productID uuid.UUID) (*CartView, error) {
	record, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := record.Items[:0]
	removed := false
	for _, item := range record.Items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
	}
	record.Items = kept

	return s.reprice(ctx, userID, record)
}

// ApplyCoupon attaches a code to the cart. The code must validate against the
// current cart contents; otherwise nothing is stored.
func (s *service) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*CartView, error) {
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	record, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot apply a coupon to an empty cart")
	}

	// Distinguish a code that does not exist from one that exists but fails
	// validation against this cart.
	if _, err := s.redemptions.FindCouponByCode(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon code not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up coupon")
	}

	previous := record.AppliedCouponCode
	record.AppliedCouponCode = &code

	view, err := s.reprice(ctx, userID, record)
	if err != nil {
		return nil, err
	}
	if view.Pricing.AppliedCoupon == nil {
		// Roll the stored code back so the invalid attempt leaves no trace.
		record.AppliedCouponCode = previous
		if _, restoreErr := s.reprice(ctx, userID, record); restoreErr != nil {
			return nil, restoreErr
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not applicable to this cart")
	}
	return view, nil
}

// RemoveCoupon clears any applied code.
func (s *service) RemoveCoupon(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	record, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	record.AppliedCouponCode = nil
	return s.reprice(ctx, userID, record)
}

// Checkout reprices one final time, records the coupon redemption, and marks
// the cart converted. The redemption row and the status flip share one
// transaction.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	record, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot check out an empty cart")
	}

	view, err := s.reprice(ctx, userID, record)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if view.Pricing.AppliedCoupon != nil {
			if err := s.redemptions.WithTx(tx).RecordRedemption(ctx, view.Pricing.AppliedCoupon.ID, userID, record.ID); err != nil {
				return err
			}
		}
		return s.repo.WithTx(tx).UpdateStatus(ctx, record.ID, userID, enums.CartStatusConverted)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "convert cart")
	}

	view.Cart.Status = enums.CartStatusConverted
	s.logg.Info(s.logg.WithCartID(ctx, record.ID.String()), "cart converted")
	return view, nil
}

func (s *service) loadOrCreate(ctx context.Context, userID uuid.UUID) (*models.CartRecord, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	record, err := s.repo.FindActiveByUser(ctx, userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	created, err := s.repo.Create(ctx, &models.CartRecord{UserID: userID, Status: enums.CartStatusActive})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	return created, nil
}

// reprice recomputes the full breakdown for the record's current lines and
// persists the derived snapshot atomically.
func (s *service) reprice(ctx context.Context, userID uuid.UUID, record *models.CartRecord) (*CartView, error) {
	now := s.now()

	productIDs := make([]uuid.UUID, 0, len(record.Items))
	for _, item := range record.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.products.GetProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	// Lines whose product vanished or went inactive are dropped from the
	// cart rather than priced from stale data.
	lines := make([]pricing.CartLine, 0, len(record.Items))
	items := make([]models.CartItem, 0, len(record.Items))
	for _, item := range record.Items {
		product, ok := products[item.ProductID]
		if !ok {
			s.logg.Warn(s.logg.WithCartID(ctx, record.ID.String()), "dropping cart line for unavailable product")
			continue
		}
		lines = append(lines, pricing.CartLine{Product: catalog.PricingProduct(product), Quantity: item.Quantity})
		items = append(items, item)
	}
	record.Items = items

	customer, err := s.customers.ResolveContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	ruleCatalog, err := s.discounts.BuildCatalog(ctx, userID, productIDs, now)
	if err != nil {
		return nil, err
	}

	appliedCode := ""
	if record.AppliedCouponCode != nil {
		appliedCode = *record.AppliedCouponCode
	}

	result := s.engine.ComputeCartPricing(pricing.CartPricingInput{
		Lines:             lines,
		Customer:          customer,
		Catalog:           ruleCatalog,
		AppliedCouponCode: appliedCode,
		Now:               now,
	})

	if result.CouponRemoved {
		record.AppliedCouponCode = nil
	}

	record.Subtotal = result.Subtotal
	record.TotalDiscount = result.TotalDiscount
	record.GSTAmount = result.GSTAmount
	record.FinalTotal = result.FinalTotal
	for i := range record.Items {
		record.Items[i].UnitPrice = result.Lines[i].UnitPrice
		record.Items[i].LineTotal = result.Lines[i].LineTotal
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Update(ctx, record); err != nil {
			return err
		}
		return repo.ReplaceItems(ctx, record.ID, record.Items)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart snapshot")
	}

	return &CartView{Cart: record, Pricing: result}, nil
}
