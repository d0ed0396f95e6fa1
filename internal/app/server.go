package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fisker/webdb-console/internal/api/router"
	"github.com/fisker/webdb-console/pkg/config"
	"github.com/fisker/webdb-console/pkg/database"
	"github.com/fisker/webdb-console/pkg/logger"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// StartServer 启动 HTTP 服务器，收到 SIGINT/SIGTERM 后优雅退出
func StartServer(application *App) {
	cfg := application.Config
	gin.SetMode(cfg.Server.Mode)

	// Setup router
	r := router.Setup(
		application.Handlers.Home,
		application.Handlers.Client,
		application.Handlers.Demand,
	)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Print startup banner
	printStartupBanner(cfg)

	// Start HTTP server in goroutine
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Infof("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// 1. Shutdown HTTP server
	logger.Infof("  → Stopping HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("  HTTP server shutdown error: %v", err)
	} else {
		logger.Infof("  ✓ HTTP server stopped")
	}

	// 2. Close database
	logger.Infof("  → Closing database...")
	database.Close(application.DB)
	logger.Infof("  ✓ Database closed")

	logger.Infof("Shutdown complete")
	logger.Sync()
}

// printStartupBanner 打印启动横幅
func printStartupBanner(cfg *config.Config) {
	logger.Infof("")
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("WebDB Console")
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("")
	logger.Infof("Pages:")
	logger.Infof("   • /          - Table search (max 100 rows)")
	logger.Infof("   • /clients   - Client baseline tracking")
	logger.Infof("   • /demands   - Open GLPI tickets per analyst")
	logger.Infof("")
	logger.Infof("Database: %s (%s)", cfg.Database.Driver, cfg.Database.DBName)
	if cfg.Reports.GLPISchema != "" {
		logger.Infof("GLPI schema: %s", cfg.Reports.GLPISchema)
	}
	logger.Infof("Listening on http://%s", displayAddr(cfg))
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("")
}

func displayAddr(cfg *config.Config) string {
	if cfg.Server.Host == "" {
		return "localhost" + cfg.Server.Addr()
	}
	return cfg.Server.Addr()
}
