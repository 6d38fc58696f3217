package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/atlastours/rentals-backend/api/controllers"
	"github.com/atlastours/rentals-backend/api/routes"
	"github.com/atlastours/rentals-backend/internal/bookings"
	"github.com/atlastours/rentals-backend/internal/cars"
	"github.com/atlastours/rentals-backend/internal/cart"
	"github.com/atlastours/rentals-backend/internal/locations"
	"github.com/atlastours/rentals-backend/internal/messages"
	"github.com/atlastours/rentals-backend/internal/pricing"
	"github.com/atlastours/rentals-backend/internal/tours"
	"github.com/atlastours/rentals-backend/pkg/config"
	"github.com/atlastours/rentals-backend/pkg/db"
	"github.com/atlastours/rentals-backend/pkg/logger"
	"github.com/atlastours/rentals-backend/pkg/metrics"
	"github.com/atlastours/rentals-backend/pkg/migrate"
	"github.com/atlastours/rentals-backend/pkg/outbox"
	"github.com/atlastours/rentals-backend/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logg := logger.New(logger.Options{
		ServiceName: "rentals-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connecting database: %w", err)
	}
	defer database.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, database); err != nil {
		return fmt.Errorf("auto-migrating: %w", err)
	}

	cache, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting redis: %w", err)
	}
	defer cache.Close()

	slotDB, err := db.OpenSQLite(cfg.CartSlot.Path)
	if err != nil {
		return fmt.Errorf("opening cart slot: %w", err)
	}
	slot, err := cart.NewSQLiteSlot(slotDB, cfg.CartSlot.Key)
	if err != nil {
		return fmt.Errorf("preparing cart slot: %w", err)
	}
	store, err := cart.NewStore(ctx, slot)
	if err != nil {
		return fmt.Errorf("loading cart: %w", err)
	}

	locationSvc, err := locations.NewService(locations.NewRepository(database.DB()))
	if err != nil {
		return err
	}
	carSvc, err := cars.NewService(cars.NewRepository(database.DB()))
	if err != nil {
		return err
	}
	tourSvc, err := tours.NewService(tours.NewRepository(database.DB()))
	if err != nil {
		return err
	}

	outboxRepo := outbox.NewRepository(database.DB())
	bookingSvc, err := bookings.NewService(bookings.NewRepository(database.DB()), database, outboxRepo, cfg.Checkout)
	if err != nil {
		return err
	}
	messageSvc, err := messages.NewService(messages.NewRepository(database.DB()), database, outboxRepo)
	if err != nil {
		return err
	}

	rates := pricing.RatesFromConfig(cfg.Pricing)
	engine := pricing.NewEngine(rates, locationSvc)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.New(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Redis:       cache,
		HTTPMetrics: httpMetrics,
		Registry:    registry,
		Health:      controllers.NewHealthController(database, cache, logg),
		Quote:       controllers.NewQuoteController(engine, logg),
		Cart:        controllers.NewCartController(store, engine, rates, carSvc, tourSvc, logg),
		Checkout:    controllers.NewCheckoutController(store, bookingSvc, logg),
		Location:    controllers.NewLocationController(locationSvc, logg),
		Car:         controllers.NewCarController(carSvc, logg),
		Tour:        controllers.NewTourController(tourSvc, logg),
		Booking:     controllers.NewBookingController(bookingSvc, logg),
		Message:     controllers.NewMessageController(messageSvc, logg),
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
