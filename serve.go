package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spine-db/internal/browser"
	"spine-db/internal/catalog"
	"spine-db/internal/logging"
	"spine-db/internal/metrics"
	"spine-db/internal/middleware"
	"spine-db/internal/startup"
)

// runServe implements the serve command: the catalog browsing web
// server plus an optional metrics listener.
func runServe(args []string) {
	startTime := time.Now()

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbFlag := fs.String("db", "", "catalog database URL or SQLite path (default: DATABASE_URL)")
	portFlag := fs.String("port", "", "listen port (default: PORT or 8050)")
	metricsPortFlag := fs.String("metrics-port", "", "metrics listen port (default: METRICS_PORT or 9090)")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	config := startup.LoadConfig()
	if *portFlag != "" {
		config.Port = *portFlag
	}
	if *metricsPortFlag != "" {
		config.MetricsPort = *metricsPortFlag
	}
	if *dbFlag != "" {
		config.DatabaseURL = *dbFlag
	}

	dbURL, err := databaseURL(config.DatabaseURL)
	if err != nil {
		logging.Fatal("serve: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := catalog.Open(ctx, dbURL)
	if err != nil {
		logging.Fatal("serve: %v", err)
	}
	defer store.Close()

	if err := store.Verify(ctx); err != nil {
		logging.Fatal("serve: %v", err)
	}

	metrics.InitializeMetrics()

	h := browser.New(store, config.StaticDir)
	router := h.Router()
	startup.LogHTTPRoutes(router)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(router)
	handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = startMetricsServer(config.MetricsPort)
	}

	// Refresh pool gauges off the request path.
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				store.UpdateDBMetrics()
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		handleShutdown(srv, metricsSrv)
	}()

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("serve: %v", err)
	}
}

func startMetricsServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logging.Error("metrics server error: %v", err)
		}
	}()

	return srv
}

func handleShutdown(srv, metricsSrv *http.Server) {
	startup.LogShutdownInitiated("signal")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownComplete()
}
