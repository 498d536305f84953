package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/asset-hive/asset-service/cmd/middleware"
	"github.com/asset-hive/asset-service/internal/api"
	"github.com/asset-hive/asset-service/internal/api/handlers"
	"github.com/asset-hive/asset-service/internal/configuration"
	"github.com/asset-hive/asset-service/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configuration.Load()

	// Metadata store and blob store are hard dependencies
	if err := services.InitializePostgres(cfg.Database.ConnectionString()); err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	if err := services.InitializeMinio(
		cfg.MinIO.Endpoint,
		cfg.MinIO.AccessKey,
		cfg.MinIO.SecretKey,
		cfg.MinIO.BucketName,
		cfg.MinIO.UseSSL,
	); err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	// Eventing and scanning are best effort; the service runs without them
	if _, _, err := services.ConnectNATS(cfg.NATSURL); err != nil {
		log.Printf("Warning: NATS unavailable, events disabled: %v", err)
	} else {
		if _, err := services.SubscribeEvent(
			"assets.uploaded",
			"asset-service-scan",
			handlers.HandleAssetUploaded(cfg.CLAMAVURL),
		); err != nil {
			log.Printf("Warning: failed to subscribe scan consumer: %v", err)
		}
	}

	requireAuth := false
	if cfg.OIDCIssuer != "" {
		if err := middleware.InitAuth(cfg.OIDCIssuer); err != nil {
			log.Fatalf("Failed to initialize OIDC: %v", err)
		}
		requireAuth = true
	}

	setupGracefulShutdown()

	r := gin.Default()
	r.LoadHTMLGlob("web/templates/*.html")

	api.RegisterRoutes(r, requireAuth)

	log.Printf("Server starting on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Shutting down gracefully...")
		services.CloseNATS()
		os.Exit(0)
	}()
}
