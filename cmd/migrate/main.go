package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/papertrails/papertrails/internal/config"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/postgres"
)

func main() {
	// Parse command line flags
	dryRun := flag.Bool("dry-run", false, "List pending migrations without applying them")
	flag.Parse()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if *dryRun {
		logger.Info("Dry run mode - listing pending migrations without applying them")
		if err := db.Migrate(true, os.Stdout); err != nil {
			logger.Fatalw("Failed to list pending migrations", "error", err)
		}
		return
	}

	logger.Info("Running database migrations...")
	if err := db.Migrate(false, os.Stdout); err != nil {
		logger.Fatalw("Failed to apply migrations", "error", err)
	}
	logger.Info("Migration completed successfully")

	fmt.Println("Migration process completed")
}
