package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tecbunny/storefront/api/controllers"
	"github.com/tecbunny/storefront/api/middleware"
	cartsvc "github.com/tecbunny/storefront/internal/cart"
	"github.com/tecbunny/storefront/internal/catalog"
	customersvc "github.com/tecbunny/storefront/internal/customers"
	"github.com/tecbunny/storefront/pkg/config"
	"github.com/tecbunny/storefront/pkg/db"
	"github.com/tecbunny/storefront/pkg/enums"
	"github.com/tecbunny/storefront/pkg/logger"
	"github.com/tecbunny/storefront/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        db.Pinger
	Redis     *redis.Client
	Registry  *prometheus.Registry
	Catalog   catalog.Service
	Customers customersvc.Service
	Cart      cartsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	couponPolicy := middleware.NewCouponRateLimitPolicy(
		cfg.Coupons.ApplyWindow,
		cfg.Coupons.ApplyIPLimit,
		cfg.Coupons.ApplyUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps(deps)))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.Catalog, logg))
		r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Put("/items", controllers.CartUpsertLine(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveLine(deps.Cart, logg))
			r.With(middleware.CouponRateLimit(couponPolicy, deps.Redis, logg)).
				Post("/coupon", controllers.CartApplyCoupon(deps.Cart, logg))
			r.Delete("/coupon", controllers.CartRemoveCoupon(deps.Cart, logg))
			r.Post("/checkout", controllers.CartCheckout(deps.Cart, logg))
		})

		r.Get("/coupons", controllers.CartAvailableCoupons(deps.Cart, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/me", controllers.CustomerProfile(deps.Customers, logg))
			r.Post("/me/b2b-upgrade", controllers.CustomerB2BUpgrade(deps.Customers, logg))
		})

		r.Route("/admin/customers", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
			r.Put("/{userId}/category", controllers.AdminAssignCategory(deps.Customers, logg))
			r.Put("/{userId}/tier", controllers.AdminAssignTier(deps.Customers, logg))
		})
	})

	return r
}

func readinessDeps(deps Deps) map[string]controllers.Pinger {
	out := map[string]controllers.Pinger{}
	if deps.DB != nil {
		out["postgres"] = deps.DB
	}
	if deps.Redis != nil {
		out["redis"] = deps.Redis
	}
	return out
}
