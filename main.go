// File: queuepoint/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"queuepoint/config"
	"queuepoint/cron"
	"queuepoint/handlers"
	"queuepoint/middleware"
	"queuepoint/routes"
	"queuepoint/services/auth"
	"queuepoint/services/directory"
	"queuepoint/services/wizard"
	"queuepoint/upstream"
	"queuepoint/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.MetricsMiddleware())

	// Upstream queue backend client.
	backend := upstream.NewClient(config.AppConfig.UpstreamBaseURL, config.AppConfig.UpstreamTimeout)

	// services.
	sessionService := &auth.DefaultSessionService{
		Upstream: backend,
		Cache:    utils.GetSessionCacheClient(),
	}

	directoryService := directory.NewDefaultDirectoryService(
		backend,
		utils.GetDirectoryCacheClient(),
		config.AppConfig.DirectoryCacheTTL,
	)

	wizardService := &wizard.DefaultWizardService{
		Directory: directoryService,
		Upstream:  backend,
		Sessions:  sessionService,
		Cache:     utils.GetSessionCacheClient(),
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Session:   handlers.NewSessionHandler(sessionService),
		Directory: handlers.NewDirectoryHandler(directoryService),
		Wizard:    handlers.NewWizardHandler(wizardService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Keep the directory cache warm in the background.
	cron.InitDirectoryRefreshWorker(directoryService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
