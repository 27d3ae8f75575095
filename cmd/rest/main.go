package main

import (
	"context"
	"log"

	"chat-messaging-be/internal/bootstrap"
	"chat-messaging-be/internal/config"
	"chat-messaging-be/internal/server"
	"chat-messaging-be/internal/tracer"
	"chat-messaging-be/pkg/database"
)

func main() {
	// 0. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load configuration
	cfg := config.Load()

	// 2. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)
	if container.NatsPublisher != nil {
		defer container.NatsPublisher.Close()
	}

	// 4. Background delivery consumer
	go func() {
		log.Println("Background: Starting delivery consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	// 5. HTTP server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
