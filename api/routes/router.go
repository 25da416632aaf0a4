package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nourzaidi/nourfashion-backend/api/controllers"
	"github.com/nourzaidi/nourfashion-backend/api/middleware"
	authsvc "github.com/nourzaidi/nourfashion-backend/internal/auth"
	cartsvc "github.com/nourzaidi/nourfashion-backend/internal/cart"
	productsvc "github.com/nourzaidi/nourfashion-backend/internal/products"
	settingssvc "github.com/nourzaidi/nourfashion-backend/internal/settings"
	"github.com/nourzaidi/nourfashion-backend/pkg/auth/session"
	"github.com/nourzaidi/nourfashion-backend/pkg/config"
	"github.com/nourzaidi/nourfashion-backend/pkg/logger"
	"github.com/nourzaidi/nourfashion-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Sessions session.AccessSessionChecker
	Metrics  *metrics.HTTPMetrics

	AuthService     authsvc.Service
	ProductService  productsvc.Service
	CartService     cartsvc.Service
	SettingsService settingssvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductsList(deps.ProductService, logg))
		r.Get("/products/categories", controllers.ProductsCategories(deps.ProductService, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(deps.ProductService, logg))
		r.Get("/settings", controllers.SettingsFetch(deps.SettingsService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Get("/", controllers.CartFetch(deps.CartService, logg))
			r.Delete("/", controllers.CartClear(deps.CartService, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
			r.Put("/items/{itemKey}", controllers.CartUpdateItem(deps.CartService, logg))
			r.Delete("/items/{itemKey}", controllers.CartRemoveItem(deps.CartService, logg))
			r.Put("/open", controllers.CartSetOpen(deps.CartService, logg))
			r.Post("/checkout", controllers.CartCheckout(deps.CartService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AuthLogin(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/auth/logout", controllers.AuthLogout(deps.AuthService, logg))

			r.Post("/products", controllers.AdminCreateProduct(deps.ProductService, logg))
			r.Patch("/products/{productId}", controllers.AdminUpdateProduct(deps.ProductService, logg))
			r.Delete("/products/{productId}", controllers.AdminDeleteProduct(deps.ProductService, logg))

			r.Put("/settings", controllers.SettingsUpdate(deps.SettingsService, logg))
		})
	})

	return r
}
