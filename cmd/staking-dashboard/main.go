package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const (
	warmTimeout     = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	root, err := NewCompositionRoot()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := root.Cleanup(); err != nil {
			root.Logger.Error("Failed to cleanup resources", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A cold network must not keep the API down; pollers keep retrying on their interval.
	warmCtx, cancelWarm := context.WithTimeout(ctx, warmTimeout)
	if err := root.Store.Warm(warmCtx); err != nil {
		root.Logger.Warn("Initial fetch incomplete", zap.Error(err))
	}
	cancelWarm()

	root.Store.Start(ctx)

	addr := root.Config.HTTP.Addr
	go func() {
		if err := root.HTTPServer.Start(addr); err != nil {
			root.Logger.Error("HTTP server failed", zap.String("addr", addr), zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	root.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := root.HTTPServer.Stop(shutdownCtx); err != nil {
		root.Logger.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	root.Store.Stop()

	root.Logger.Info("Server exited")
}
