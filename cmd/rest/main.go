package main

import (
	"context"
	"log"

	"saedam-be/internal/bootstrap"
	"saedam-be/internal/config"
	"saedam-be/internal/server"
	"saedam-be/internal/tracer"
	"saedam-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to migrate schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go container.WebSocketHub.Run()
	go func() {
		log.Println("Background: Starting Notifier Service...")
		if err := container.NotifierService.Consume(context.Background()); err != nil {
			log.Printf("Background Notifier Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
