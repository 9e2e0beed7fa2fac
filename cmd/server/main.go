package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "frostbar-backend/internal/api/http"
	"frostbar-backend/internal/availability"
	"frostbar-backend/internal/cache"
	"frostbar-backend/internal/clients"
	"frostbar-backend/internal/config"
	"frostbar-backend/internal/events"
	"frostbar-backend/internal/logger"
	"frostbar-backend/internal/repository/postgres"
	"frostbar-backend/internal/security"
	"frostbar-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FrostBar Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize settings cache
	settingsCache := cache.NewSettingsCache(cfg.Redis)
	defer settingsCache.Close()

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize external clients
	paymentClient := clients.NewPaymentClient(cfg.Payment)

	var publisher events.Publisher
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("Kafka event publishing enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.OrdersTopic)
	} else {
		publisher = events.NopPublisher{}
		logger.Info("Kafka event publishing disabled")
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	quoteSvc := service.NewQuoteService(store.SettingsRepository, settingsCache, cfg.Pricing)
	settingsSvc := service.NewSettingsService(store.SettingsRepository, settingsCache)
	checker := availability.NewChecker(store.ReservationRepository, availability.DefaultFleet)
	orderSvc := service.NewOrderService(
		store.OrderRepository,
		store.ReservationRepository,
		quoteSvc,
		checker,
		paymentClient,
		emailSvc,
		publisher,
	)

	// Initialize HTTP handlers
	catalogHandler := httpapi.NewCatalogHandler(quoteSvc)
	quoteHandler := httpapi.NewQuoteHandler(quoteSvc)
	availabilityHandler := httpapi.NewAvailabilityHandler(checker)
	orderHandler := httpapi.NewOrderHandler(orderSvc)
	adminHandler := httpapi.NewAdminHandler(cfg.Admin, tokenManager, settingsSvc)

	router := httpapi.NewRouter(catalogHandler, quoteHandler, availabilityHandler, orderHandler, adminHandler, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
