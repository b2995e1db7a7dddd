package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "equipme-backend/internal/api/http"
	"equipme-backend/internal/config"
	"equipme-backend/internal/logger"
	"equipme-backend/internal/repository/postgres"
	"equipme-backend/internal/security"
	"equipme-backend/internal/service"
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
	logger.Info("Starting EquipMe Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Services. The lock table is shared so agreement confirmation
	// and manual transitions serialize on the same equipment keys.
	locks := service.NewLockTable()
	inventorySvc := service.NewInventoryService(store, locks)
	agreementSvc := service.NewAgreementService(store, locks)
	cartSvc := service.NewCartService(store)
	summarySvc := service.NewSummaryService(store)

	// Initialize HTTP handlers
	handlers := &httpapi.Handlers{
		Inventory: httpapi.NewInventoryHandler(inventorySvc),
		Agreement: httpapi.NewAgreementHandler(agreementSvc),
		Cart:      httpapi.NewCartHandler(cartSvc),
		Summary:   httpapi.NewSummaryHandler(summarySvc),
	}
	router := httpapi.NewRouter(handlers, tokenManager, cfg.Payment.CallbackSecret)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
