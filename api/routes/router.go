package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/vendo-storefront/api/controllers"
	"github.com/angelmondragon/vendo-storefront/api/middleware"
	"github.com/angelmondragon/vendo-storefront/internal/cart"
	"github.com/angelmondragon/vendo-storefront/internal/cartview"
	"github.com/angelmondragon/vendo-storefront/internal/customization"
	"github.com/angelmondragon/vendo-storefront/internal/menu"
	"github.com/angelmondragon/vendo-storefront/pkg/config"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
	"github.com/angelmondragon/vendo-storefront/pkg/metrics"
)

// Params carries everything the router wires into controllers.
type Params struct {
	Config         *config.Config
	Logger         *logger.Logger
	Catalog        controllers.CatalogSource
	Carts          cart.Service
	Customizations customization.Registry
	HTTPMetrics    *metrics.HTTPMetrics
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	Readiness      map[string]controllers.Pinger
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger
	builder := menu.NewBuilder(cfg.Storefront.CurrencySymbol)
	renderer := cartview.NewRenderer(cfg.Storefront.CurrencySymbol)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Readiness))
	})
	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SessionID(logg))

		r.Get("/storefront", controllers.StorefrontPage(p.Catalog, p.Carts, logg))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.MenuList(p.Catalog, p.Carts, builder, logg))
			r.Route("/items/{itemId}", func(r chi.Router) {
				r.Get("/", controllers.MenuItemCard(p.Catalog, p.Carts, builder, logg))
				r.Route("/customization", func(r chi.Router) {
					r.Post("/", controllers.CustomizationOpen(p.Customizations, builder, logg))
					r.Get("/", controllers.CustomizationFetch(p.Customizations, builder, logg))
					r.Delete("/", controllers.CustomizationCancel(p.Customizations, logg))
					r.Put("/variation", controllers.CustomizationSelectVariation(p.Customizations, builder, logg))
					r.Put("/add-ons/{addOnId}", controllers.CustomizationSetAddOn(p.Customizations, builder, logg))
					r.Post("/confirm", controllers.CustomizationConfirm(p.Customizations, renderer, logg))
				})
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(p.Carts, renderer, logg))
			r.Delete("/", controllers.CartClear(p.Carts, renderer, logg))
			r.Get("/total", controllers.CartTotal(p.Carts, renderer, logg))
			r.Post("/checkout", controllers.CartCheckout(p.Carts, renderer, logg))
			r.Post("/items", controllers.CartAddItem(p.Carts, renderer, logg))
			r.Put("/items/{lineId}", controllers.CartUpdateItem(p.Carts, renderer, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveItem(p.Carts, renderer, logg))
		})
	})

	return r
}
