package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/username/ibportal/src/cache"
	"github.com/username/ibportal/src/config"
	"github.com/username/ibportal/src/database"
	"github.com/username/ibportal/src/handlers"
	"github.com/username/ibportal/src/logger"
	"github.com/username/ibportal/src/parsers"
	"github.com/username/ibportal/src/processors"
	"github.com/username/ibportal/src/services"
	"golang.org/x/time/rate"
)

func buildCatalogSource() (services.CatalogSource, error) {
	if config.Cfg.CatalogSource == "database" || config.Cfg.CatalogSeedPath != "" {
		logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
		if err := database.InitDB(config.Cfg.DatabasePath); err != nil {
			return nil, err
		}
		logger.L.Info("Database initialized successfully.")
	}

	if config.Cfg.CatalogSeedPath != "" {
		catalog, err := parsers.LoadCatalogFile(config.Cfg.CatalogSeedPath)
		if err != nil {
			return nil, err
		}
		if err := services.NewDatabaseSource(database.DB).SeedCatalog(catalog); err != nil {
			return nil, err
		}
		logger.L.Info("Catalog seeded from file",
			"path", config.Cfg.CatalogSeedPath,
			"accountTypes", len(catalog.AccountTypes),
			"commissionLevels", len(catalog.CommissionLevels))
	}

	switch config.Cfg.CatalogSource {
	case "database":
		return services.NewDatabaseSource(database.DB), nil
	case "api":
		return services.NewDashboardClient(services.DashboardClientConfig{
			BaseURL:            config.Cfg.DashboardAPIBaseURL,
			Timeout:            config.Cfg.DashboardAPITimeout,
			AuthMode:           services.DashboardAuthMode(config.Cfg.DashboardAuthMode),
			JWTSecret:          config.Cfg.DashboardJWTSecret,
			ServiceName:        config.Cfg.DashboardServiceName,
			ServiceTokenExpiry: config.Cfg.ServiceTokenExpiry,
			OAuthClientID:      config.Cfg.OAuthClientID,
			OAuthClientSecret:  config.Cfg.OAuthClientSecret,
			OAuthTokenURL:      config.Cfg.OAuthTokenURL,
			OAuthScopes:        config.Cfg.OAuthScopes,
		})
	default:
		return nil, errors.New("CATALOG_SOURCE must be 'api' or 'database', got " + config.Cfg.CatalogSource)
	}
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("IB portal calculator server starting...")

	source, err := buildCatalogSource()
	if err != nil {
		logger.L.Error("Failed to set up catalog source", "error", err)
		os.Exit(1)
	}

	logger.L.Info("Initializing catalog cache...", "maxAge", config.Cfg.CatalogMaxAge, "retention", config.Cfg.CatalogRetention)
	catalogStore := cache.NewTimedStore(config.Cfg.CatalogRetention, 2*config.Cfg.CatalogRetention, nil)
	catalogService := services.NewCatalogService(source, catalogStore, cache.FreshnessPolicy{MaxAge: config.Cfg.CatalogMaxAge})

	logger.L.Info("Initializing services and handlers...")
	calculatorService := services.NewCalculatorService(
		catalogService,
		processors.NewCommissionProcessor(),
		processors.NewInstrumentFilter(),
		config.Cfg.SessionTTL,
	)
	catalogHandler := handlers.NewCatalogHandler(catalogService, calculatorService)
	calculatorHandler := handlers.NewCalculatorHandler(calculatorService)

	logger.L.Info("Configuring routes...")
	router := handlers.NewRouter(catalogHandler, calculatorHandler, handlers.RouterConfig{
		AllowedOrigins: config.Cfg.AllowedOrigins,
		Limiter:        rate.NewLimiter(rate.Limit(config.Cfg.RateLimitPerSecond), config.Cfg.RateLimitBurst),
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.L.Info("Server starting", "address", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L.Error("Failed to start server", "error", err)
			stdlog.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.L.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L.Error("Graceful shutdown failed", "error", err)
	}
	if database.DB != nil {
		database.DB.Close()
	}
	logger.L.Info("Server stopped gracefully.")
}
