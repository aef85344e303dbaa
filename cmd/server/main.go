// Command server is the entry point for the Mirador backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mirador/internal/config"
	"mirador/internal/observability"
	"mirador/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize tracing
	exporter := "stdout"
	if cfg.OTLPEndpoint != "" {
		exporter = "otlp"
	}
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "mirador-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.Env == "production" || cfg.OTLPEndpoint != "",
		Exporter:       exporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   0.1,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Create server with dependency injection
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Bootstrap the admin account if configured
	if cfg.AdminEmail != "" {
		if err := srv.EnsureAdmin(context.Background()); err != nil {
			log.Fatalf("Failed to ensure admin account: %v", err)
		}
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
}
