// Package main is the entry point for the back-office background worker.
// It runs the scheduled low-stock scan and serves its metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/infrastructure/scheduler"
	"backoffice/pkg/logger"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	once := flag.Bool("once", false, "run a single scan and exit")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log = log.WithComponent("worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn("worker is using in-memory storage; it will not see the server's data")
	}

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize services", "error", err)
	}
	defer application.Close()

	sched := scheduler.New(scheduler.Config{
		Spec:       cfg.Scheduler.LowStockCron,
		Branch:     cfg.Scheduler.Branch,
		JobTimeout: cfg.Scheduler.JobTimeout,
	}, application.Alerts, application.Metrics, log)

	if *once {
		scanCtx, scanCancel := context.WithTimeout(ctx, cfg.Scheduler.JobTimeout)
		defer scanCancel()
		if err := sched.RunOnce(logger.WithLogger(scanCtx, log)); err != nil {
			log.Fatalw("low-stock scan failed", "error", err)
		}
		log.Info("low-stock scan finished")
		return
	}

	if err := sched.Start(); err != nil {
		log.Fatalw("failed to start scheduler", "error", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", application.Metrics.Handler())
	metricsServer := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Infow("metrics endpoint starting", "port", cfg.App.Port)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("metrics endpoint failed", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	sched.Stop(shutdownCtx)
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Warnw("metrics endpoint shutdown", "error", err)
	}
	log.Info("worker stopped")
}
