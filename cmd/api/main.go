package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "meesho-recon/docs"
	"meesho-recon/internal/config"
	"meesho-recon/internal/export"
	"meesho-recon/internal/handler"
	"meesho-recon/internal/repository"
	"meesho-recon/internal/service"
	"meesho-recon/pkg/logger"
)

// @title Meesho Order Reconciliation API
// @version 1.0
// @description Upload marketplace order, ads, returns and payout exports, classify and aggregate them, reconcile order snapshots and download the results
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.App.LogLevel)
	logger.GetLogger().Info("Starting Order Reconciliation Service")
	gin.SetMode(cfg.Server.GinMode)

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository()

	// Initialize services
	sessionService := service.NewSessionService(sessionRepo, cfg.Session.IdleTimeout)
	uploadService := service.NewUploadService(cfg)
	analyticsService, err := service.NewAnalyticsService(cfg)
	if err != nil {
		logger.GetLogger().WithError(err).Fatal("Failed to initialize analytics")
	}
	reconService := service.NewReconciliationService()
	exportService := service.NewExportService(export.NewDefaultRegistry(), analyticsService, reconService)

	sweeper, err := sessionService.StartSweeper(cfg.Session.SweepSpec)
	if err != nil {
		logger.GetLogger().WithError(err).Fatal("Failed to start session sweeper")
	}

	// Setup router
	router := handler.SetupRouter(handler.Services{
		Sessions:       sessionService,
		Uploads:        uploadService,
		Analytics:      analyticsService,
		Reconciliation: reconService,
		Exports:        exportService,
	}, handler.RouterConfig{
		SessionSecret:     cfg.Session.Secret,
		SessionMaxAge:     int(cfg.Session.IdleTimeout.Seconds()),
		MaxMultipartBytes: cfg.Ingest.MaxUploadBytes(),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.GetLogger().WithField("address", addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.GetLogger().Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	<-sweeper.Stop().Done()
	if err := server.Shutdown(ctx); err != nil {
		logger.GetLogger().WithError(err).Error("Server forced to shut down")
	}

	logger.GetLogger().Info("Server stopped")
}
