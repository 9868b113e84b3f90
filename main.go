package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pediadose/dosage-api/config"
	"github.com/pediadose/dosage-api/data"
	"github.com/pediadose/dosage-api/formulary"
	"github.com/pediadose/dosage-api/logging"
	"github.com/pediadose/dosage-api/scheduler"
	"github.com/pediadose/dosage-api/server"
	"github.com/pediadose/dosage-api/validation"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogLevel, cfg.LogRetentionWeeks, cfg.MaxLogFileSize)
	defer logging.Shutdown()

	container := data.NewFormularyContainer()
	validator := validation.NewValidator()
	loader := formulary.NewLoader(validator)

	sched := scheduler.NewScheduler(container, loader, validator, cfg.FormularyFile)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	var watcher *formulary.Watcher
	if cfg.FormularyFile != "" {
		watcher, err = formulary.NewWatcher(cfg.FormularyFile, container, loader)
		if err != nil {
			logging.Error("Failed to create formulary watcher", "error", err)
			os.Exit(1)
		}
		watcher.Start()
		defer watcher.Close()
	}

	srv := server.NewServer(cfg, container, validator)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	logging.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server close error", "error", err)
	}

	logging.Info("Server shutdown complete")
}
