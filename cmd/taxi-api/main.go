// README: Entry point; loads config, wires services, starts the HTTP server and shuts it down on signal.
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

	"taxifare/internal/config"
	httptransport "taxifare/internal/http"
	"taxifare/internal/http/handlers"
	"taxifare/internal/http/middleware"
	"taxifare/internal/infra"
	"taxifare/internal/logger"
	"taxifare/internal/maps"
	"taxifare/internal/modules/booking"
	"taxifare/internal/modules/fare"
	"taxifare/internal/modules/location"
	"taxifare/internal/modules/pricing"
	"taxifare/internal/modules/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if err := cfg.CheckAdmin(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New("taxi-api", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "taxi-api stopped", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	loc, err := time.LoadLocation(cfg.Fare.Timezone)
	if err != nil {
		return err
	}
	httpClient := infra.NewHTTPClient(cfg.HTTP.Timeout)

	// Redis and Postgres are optional at startup; without them the service
	// keeps state in memory.
	var rateStore pricing.Store = pricing.NewMemoryStore()
	var distanceCache location.DistanceCache
	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Warn(ctx, "redis unavailable, using in-memory rate cache", "error", err.Error())
	} else {
		defer redisClient.Close()
		rateStore = pricing.NewRedisStore(redisClient)
		distanceCache = location.NewStore(redisClient)
	}

	db, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Warn(ctx, "postgres unavailable, featured routes kept in memory", "error", err.Error())
	} else {
		defer db.Close()
	}

	var remote pricing.Remote
	switch cfg.PricingRemote {
	case "postgres":
		if db == nil {
			return errors.New("TAXI_PRICING_REMOTE=postgres requires a reachable database")
		}
		remote = pricing.NewPGRemote(db)
	default:
		remote = pricing.NewHTTPRemote(cfg.Backend.BaseURL, cfg.Backend.Token, httpClient)
	}
	pricingSvc := pricing.NewService(rateStore, remote, log)

	var router location.Router
	var places handlers.PlacesSearcher
	if cfg.Routing.Enabled() {
		switch cfg.Routing.Provider {
		case "google":
			routeSvc, err := maps.NewRouteService(cfg.Routing.GoogleMapsKey, httpClient)
			if err != nil {
				return err
			}
			placesSvc, err := maps.NewPlacesService(cfg.Routing.GoogleMapsKey, cfg.Routing.Country, httpClient)
			if err != nil {
				return err
			}
			router, places = routeSvc, placesSvc
		default:
			ors := maps.NewORSClient(cfg.Routing.ORSBaseURL, cfg.Routing.ORSAPIKey, cfg.Routing.Country, httpClient)
			router, places = ors, ors
		}
		log.Info(ctx, "routing enabled", "provider", cfg.Routing.Provider)
	} else {
		log.Warn(ctx, "routing api key not configured, distances use haversine")
	}

	resolver := location.NewResolver(location.Gazetteer)
	distance := location.NewDistanceProvider(resolver, router, distanceCache, log)
	fareSvc := fare.NewService(distance, pricingSvc, loc, log)

	live := fare.NewRecalculator(fareSvc, cfg.Fare.Debounce, cfg.HTTP.Timeout, log).WithSessionTTL(cfg.Fare.SessionTTL)
	defer live.Stop()

	var routeStore routes.Store = routes.NewMemoryStore()
	if db != nil {
		routeStore = routes.NewPGStore(db)
	}
	routesSvc := routes.NewService(routeStore, fareSvc, log)

	bookingSvc := booking.NewService(
		booking.NewBackendClient(cfg.Backend.BaseURL, cfg.Backend.Token, httpClient),
		booking.NewEmailClient(booking.EmailConfig{
			Endpoint:   cfg.Email.Endpoint,
			ServiceID:  cfg.Email.ServiceID,
			TemplateID: cfg.Email.TemplateID,
			PublicKey:  cfg.Email.PublicKey,
			AdminTo:    cfg.Email.AdminTo,
		}, httpClient),
		booking.NewFareQuoter(fareSvc, loc),
		log,
	)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Fare:          fareSvc,
		Pricing:       pricingSvc,
		Routes:        routesSvc,
		Booking:       bookingSvc,
		Places:        places,
		Live:          live,
		Tokens:        middleware.NewJWTManager(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL),
		AdminPassword: cfg.Admin.Password,
		Location:      loc,
		Log:           log,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info(shutdownCtx, "shutting down")
	return server.Shutdown(shutdownCtx)
}
