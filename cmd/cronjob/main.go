package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"carpool-backend/internal/config"
	"carpool-backend/internal/jobs"
	"carpool-backend/internal/logger"
	"carpool-backend/internal/repository/postgres"
	"carpool-backend/internal/scheduler"
	"carpool-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('deactivate-past-rides', 'send-departure-reminders', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Carpool Cronjob Runner...", "log_level", cfg.Log.Level)

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

	// Initialize Repositories and Services
	store := postgres.NewStore(db)
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName, cfg.Email.Disabled)
	jobRunner := jobs.NewJobRunner(db, store, emailSvc, cfg)

	// Run-once mode for manual execution and debugging
	if *runOnce != "" {
		switch *runOnce {
		case "deactivate-past-rides":
			jobRunner.DeactivatePastRides()
		case "send-departure-reminders":
			jobRunner.SendDepartureReminders()
		case "all-nightly":
			jobRunner.RunAllNightlyJobs()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	// Scheduled mode
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Block until interrupted
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("Shutdown signal received")
}
