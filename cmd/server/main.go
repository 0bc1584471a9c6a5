package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	api "carpool-backend/internal/api/http"
	"carpool-backend/internal/config"
	"carpool-backend/internal/logger"
	"carpool-backend/internal/repository/postgres"
	"carpool-backend/internal/security"
	"carpool-backend/internal/service"

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
	logger.Info("Starting Campus Carpool Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName, cfg.Email.Disabled)
	identitySvc := service.NewIdentityService(store.MemberRepository, tokenManager)
	rideSvc := service.NewRideService(
		store.RideRepository,
		store.SeatRequestRepository,
		store.MemberRepository,
		store.NotificationRepository,
		emailSvc,
	)
	reservationSvc := service.NewReservationService(
		store.SeatRequestRepository,
		store.RideRepository,
		store.MemberRepository,
		store.NotificationRepository,
		emailSvc,
	)
	reputationSvc := service.NewReputationService(
		store.RatingRepository,
		store.RideRepository,
		store.SeatRequestRepository,
	)
	querySvc := service.NewQueryService(
		store.RideRepository,
		store.SeatRequestRepository,
		store.MemberRepository,
		store.RatingRepository,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP Server
	server := api.NewServer(
		identitySvc,
		rideSvc,
		reservationSvc,
		reputationSvc,
		querySvc,
		noteSvc,
		tokenManager,
		logger.Get(),
	)

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}
