package main

import (
	"context"
	"log"

	"ai-visionboard-be/internal/bootstrap"
	"ai-visionboard-be/internal/config"
	"ai-visionboard-be/internal/server"
	"ai-visionboard-be/internal/tracer"
	"ai-visionboard-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (disabled unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Persistence Service...")
		if err := container.PersistenceService.Consume(context.Background()); err != nil {
			log.Printf("Background Persistence Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
