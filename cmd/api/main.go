package main

import (
	"context"
	"log"
	"time"

	"cargoconnect/internal/core/blob"
	"cargoconnect/internal/core/config"
	"cargoconnect/internal/core/logger"
	"cargoconnect/internal/core/server"
	"cargoconnect/internal/core/storage"
	authdomain "cargoconnect/internal/features/auth/domain"
	authhandler "cargoconnect/internal/features/auth/handler"
	authmiddleware "cargoconnect/internal/features/auth/middleware"
	authservice "cargoconnect/internal/features/auth/service"
	notifyservice "cargoconnect/internal/features/notifications/service"
	receipthandler "cargoconnect/internal/features/receipts/handler"
	receiptservice "cargoconnect/internal/features/receipts/service"
	shipmentadapter "cargoconnect/internal/features/shipments/adapters"
	shipmenthandler "cargoconnect/internal/features/shipments/handler"
	shipmentservice "cargoconnect/internal/features/shipments/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// @title CargoConnect API
// @version 1.0
// @description Shipment tracking backend: admin-managed shipment records with public tracking by code.
// @contact.name API Support
// @contact.email support@cargoconnect.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Connect the shipment store and verify reachability.
	client, err := storage.Open(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to open shipment store", zap.Error(err))
	}
	defer client.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := storage.Ping(pingCtx, client); err != nil {
		cancel()
		l.Fatal("Shipment store health check failed", zap.Error(err))
	}
	cancel()
	l.Info("Shipment store connection verified")

	// Build the single admin identity once at startup.
	admin, err := authdomain.NewAdmin(cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	if err != nil {
		l.Fatal("Failed to build admin identity", zap.Error(err))
	}

	authSvc := authservice.NewAuthService(admin, cfg.Auth.JWTSecret)
	authHdl := authhandler.NewAuthHandler(authSvc)
	requireAdmin := authmiddleware.RequireAdmin(authSvc)

	// Shipment lifecycle wiring.
	repo := shipmentadapter.NewRedisShipmentRepository(client)
	blobs := blob.NewLocalStore(cfg.Uploads.Dir, "/files")
	shipmentSvc := shipmentservice.NewShipmentService(repo, blobs)
	notifier := notifyservice.NewSMTPDispatcher(cfg.SMTP, cfg.PublicBaseURL)
	shipmentHdl := shipmenthandler.NewShipmentHandler(shipmentSvc, notifier)

	renderer := receiptservice.NewReceiptRenderer(cfg.PublicBaseURL)
	receiptHdl := receipthandler.NewReceiptHandler(shipmentSvc, renderer)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "CargoConnect API running"})
	})
	srv.App.Get("/test", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"backend":           "running",
			"store":             "available",
			"connection_status": "connected",
		}
		if err := storage.Ping(c.Context(), client); err != nil {
			status["store"] = "unavailable"
			status["connection_status"] = "not connected"
		}
		return c.JSON(status)
	})

	srv.App.Post("/auth/login", authHdl.Login)

	srv.App.Post("/shipments", requireAdmin, shipmentHdl.Create)
	srv.App.Get("/shipments", requireAdmin, shipmentHdl.List)
	srv.App.Patch("/shipments/:code", requireAdmin, shipmentHdl.Update)
	srv.App.Post("/shipments/:code/proof", requireAdmin, shipmentHdl.UploadProof)
	srv.App.Post("/shipments/:code/notify", requireAdmin, shipmentHdl.Notify)

	srv.App.Get("/track/:code", shipmentHdl.Track)
	srv.App.Get("/shipments/:code/receipt.pdf", receiptHdl.Receipt)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
