// Command cleanup_sessions removes expired configuration sessions. Meant for cron.
package main

import (
	"context"
	"log"
	"os"

	"agency-configurator-be/internal/config"
	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/internal/repository/unitofwork"
	"agency-configurator-be/internal/service"
	"agency-configurator-be/pkg/clock"
	"agency-configurator-be/pkg/database"
	"agency-configurator-be/pkg/events"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.DefaultOptions())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	sessionService := service.NewConfigurationSessionService(
		unitofwork.NewRepositoryFactory(db),
		clock.Real(),
		cfg.Session.TTL,
		events.NopPublisher{},
		sysLogger,
	)

	color.Cyan("Removing sessions older than %s...", cfg.Session.TTL)
	res, err := sessionService.CleanupExpired(context.Background())
	if err != nil {
		color.Red("Cleanup failed: %v", err)
		os.Exit(1)
	}
	color.Green("Deleted %d session(s) created before %s", res.Deleted, res.Cutoff.Format("2006-01-02 15:04:05"))
}
