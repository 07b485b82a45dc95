package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"webPerfAnalyzerGO/internal/api"
	"webPerfAnalyzerGO/internal/config"
	"webPerfAnalyzerGO/internal/logging"
	"webPerfAnalyzerGO/internal/probe"
	"webPerfAnalyzerGO/internal/report"
	"webPerfAnalyzerGO/internal/repository"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	// Create config
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to create config", "error", err)
		os.Exit(1)
	}

	// Setup logging to stdout and the log file
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Determine rich or basic mode once, at startup
	mode := probe.DetectCapability(ctx, cfg.Browser, logger)
	analyzer := probe.New(cfg.Analyzer, cfg.Browser, mode, logger)

	// Initialize MongoDB connection
	mongoRepo, err := repository.NewMongoRepository(ctx, cfg.MongoDB)
	if err != nil {
		logger.Error("Failed to create MongoDB repository", "error", err)
		os.Exit(1)
	}
	defer mongoRepo.Close(ctx)

	// Report files land in the configured directory
	sink := report.NewFileWriter(cfg.Report.Dir)

	// Initialize and start the API server
	server := api.NewServer(cfg, mongoRepo, analyzer, sink, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server failed to start", "error", err)
			cancel()
		}
	}()

	logger.Info("Server started", "port", cfg.Server.Port, "mode", mode.String())

	// Wait for shutdown signal
	<-shutdown
	logger.Info("Shutting down server...")

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited properly")
}
