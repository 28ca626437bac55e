package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/osa911/contactrelay/internal/server"
	"github.com/osa911/contactrelay/internal/telemetry"
	"github.com/osa911/contactrelay/internal/version"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the contact API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "contactrelay", cfg.Telemetry)
	if err != nil {
		logger.Error("Failed to initialize telemetry: %v", err)
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	logger.Info("Starting contactrelay %s in %s mode", version.Version, cfg.Environment)
	if !cfg.SMTP.Configured() {
		logger.Warn("SMTP relay is not configured; submissions will be acknowledged with delivered=false")
	}

	srv := server.NewFromConfig(cfg, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("Server stopped: %v", err)
		return err
	}

	logger.Info("Server stopped")
	return nil
}
