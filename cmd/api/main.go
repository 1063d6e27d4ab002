package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meet-halfway/internal/api"
	"meet-halfway/internal/config"
	"meet-halfway/internal/logging"
	"meet-halfway/internal/maps"
	"meet-halfway/internal/models"
	"meet-halfway/internal/modules/midpoint"
	"meet-halfway/internal/modules/places"
	"meet-halfway/internal/modules/session"
	"meet-halfway/internal/modules/share"
	"meet-halfway/internal/modules/venues"
	"meet-halfway/pkg/email"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// 1. --- Configuration ---
	// A local .env is optional; app.env and the process environment are read by viper.
	_ = godotenv.Load()
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	logging.Configure(e.Logger, os.Stdout, cfg.LogLevel, cfg.LogSuppress)

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173", cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// 3. --- Mapping Platform ---
	// Without an API key the platform stays "not ready" and mapping routes answer 503.
	var provider maps.Provider
	if cfg.MapsReady() {
		google, err := maps.NewGoogleClient(cfg.GoogleMapsAPIKey, cfg.MapsRateLimit)
		if err != nil {
			e.Logger.Errorf("Google Maps client unavailable: %v", err)
		} else {
			provider = google
		}
	} else {
		e.Logger.Warn("GOOGLE_MAPS_API_KEY is not set; mapping routes are disabled")
	}
	platform := maps.NewPlatform(provider)

	// --- Share-by-email (optional) ---
	var sender email.ServiceInterface
	templates, err := email.NewTemplateManager()
	if err != nil {
		log.Fatalf("Failed to parse email templates: %v", err)
	}
	if cfg.SESFromAddress != "" {
		ses, err := email.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.SESFromAddress)
		if err != nil {
			e.Logger.Errorf("SES sender unavailable, email sharing disabled: %v", err)
		} else {
			sender = ses
		}
	}

	// 4. --- Dependency Injection (Wiring everything up) ---
	midpointService := midpoint.NewService(platform, e.Logger, cfg.RequestTimeout)
	pipeline := venues.NewPipeline(platform, e.Logger, cfg.RequestTimeout, cfg.EnrichmentPolicy, cfg.CostCacheTTL)
	placesService := places.NewService(platform, e.Logger, cfg.RequestTimeout)
	shareService := share.NewService(sender, templates, e.Logger)

	store := session.NewStore(&session.Deps{
		Midpoint: midpointService,
		Venues:   pipeline,
		Places:   placesService,
		Share:    shareService,
		Logger:   e.Logger,
		Defaults: session.Defaults{
			Mode:         models.OptimizationMode(cfg.DefaultMode),
			Category:     models.Category(cfg.DefaultCategory),
			RadiusMeters: cfg.DefaultRadiusMeters,
		},
	}, cfg.SessionTTL)

	// 5. --- Initialize Router ---
	api.SetupRoutes(e,
		places.NewHandler(placesService),
		session.NewHandler(store, cfg.ClientOrigin),
		platform.Ready,
	)

	// 6. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server an error occurred:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exiting")
}
