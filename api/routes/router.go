package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atlastours/rentals-backend/api/controllers"
	"github.com/atlastours/rentals-backend/api/middleware"
	"github.com/atlastours/rentals-backend/pkg/config"
	"github.com/atlastours/rentals-backend/pkg/enums"
	"github.com/atlastours/rentals-backend/pkg/logger"
	"github.com/atlastours/rentals-backend/pkg/metrics"
	"github.com/atlastours/rentals-backend/pkg/redis"
)

// Deps collects everything the router needs. All wiring happens in main;
// nothing here reaches for globals.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Health   *controllers.HealthController
	Quote    *controllers.QuoteController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Location *controllers.LocationController
	Car      *controllers.CarController
	Tour     *controllers.TourController
	Booking  *controllers.BookingController
	Message  *controllers.MessageController
}

// New assembles the HTTP routing tree.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))
	r.Use(middleware.RequestLogger(deps.Logger, deps.HTTPMetrics))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", deps.Health.Live)
	r.Get("/readyz", deps.Health.Ready)
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront surface.
		r.Post("/quote", deps.Quote.Quote)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.Get)
			r.Get("/contains", deps.Cart.Contains)
			r.Post("/items", deps.Cart.AddItem)
			r.Patch("/items/{itemID}", deps.Cart.UpdateItem)
			r.Delete("/items/{itemID}", deps.Cart.RemoveItem)
			r.Delete("/", deps.Cart.Clear)
		})

		r.With(middleware.Idempotency(deps.Redis, "checkout", deps.Logger)).
			Post("/checkout", deps.Checkout.Checkout)

		r.Get("/locations", deps.Location.List)
		r.Get("/locations/{locationID}", deps.Location.Get)
		r.Get("/cars", deps.Car.List)
		r.Get("/cars/{carID}", deps.Car.Get)
		r.Get("/tours", deps.Tour.List)
		r.Get("/tours/{tourID}", deps.Tour.Get)

		r.Post("/messages", deps.Message.Submit)

		// Back office.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth(deps.Config.JWT, deps.Logger))
			r.Use(middleware.RequireRole(enums.RoleAdmin, deps.Logger))

			r.Post("/locations", deps.Location.Create)
			r.Put("/locations/{locationID}", deps.Location.Update)
			r.Delete("/locations/{locationID}", deps.Location.Delete)

			r.Post("/cars", deps.Car.Create)
			r.Put("/cars/{carID}", deps.Car.Update)
			r.Delete("/cars/{carID}", deps.Car.Delete)

			r.Post("/tours", deps.Tour.Create)
			r.Put("/tours/{tourID}", deps.Tour.Update)
			r.Delete("/tours/{tourID}", deps.Tour.Delete)

			r.Get("/bookings", deps.Booking.List)
			r.Get("/bookings/{bookingID}", deps.Booking.Get)
			r.Patch("/bookings/{bookingID}/status", deps.Booking.UpdateStatus)

			r.Get("/messages", deps.Message.List)
			r.Patch("/messages/{messageID}/read", deps.Message.MarkRead)
			r.Delete("/messages/{messageID}", deps.Message.Delete)
		})
	})

	return r
}
