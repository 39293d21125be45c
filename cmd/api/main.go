// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "my-money/internal"
	"my-money/internal/api/handler"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication()
	if err := application.Initialize(ctx); err != nil {
		// The application logger may not exist yet.
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	logger := application.Logger

	// WriteTimeout leaves room for the handler timeout so slow requests
	// still get their 503 written.
	server := &http.Server{
		Addr:              ":" + application.Config.ServerPort,
		Handler:           application.HTTPHandler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      handler.DefaultTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server",
			"port", application.Config.ServerPort,
			"db_driver", application.Config.DB.Driver,
			"currency", application.Config.Currency)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP server failed", "error", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		exitCode = 1
	}
	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("Application shutdown failed", "error", err)
		exitCode = 1
	}

	if exitCode == 0 {
		logger.Info("Application gracefully stopped.")
	}
	os.Exit(exitCode)
}
