package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"agency-configurator-be/internal/bootstrap"
	"agency-configurator-be/internal/config"
	"agency-configurator-be/internal/server"
	"agency-configurator-be/internal/tracer"
	"agency-configurator-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracing (off unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.App.ServiceName)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	dbOpts := database.DefaultOptions()
	dbOpts.Verbose = !cfg.IsProduction()
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, dbOpts)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}
	go container.LeadFeedHub.Run(ctx)
	if cfg.Session.CleanupInterval > 0 {
		log.Printf("Background: Session cleanup every %s", cfg.Session.CleanupInterval)
		go container.SessionService.RunCleanupLoop(ctx, cfg.Session.CleanupInterval)
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
