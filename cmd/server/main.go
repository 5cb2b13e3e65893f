package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpattn/leadrecon/internal/config"
	"github.com/rpattn/leadrecon/internal/logging"
	"github.com/rpattn/leadrecon/internal/middleware"
	"github.com/rpattn/leadrecon/internal/reconcile"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	configDir := os.Getenv("LEADRECON_CONFIG_DIR")
	if configDir == "" {
		configDir = "."
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		logging.Default().Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logging.SetDefault(logger)
	if cfg.ConfigFile != "" {
		logger.Info().Str("file", cfg.ConfigFile).Msg("loaded config file")
	} else {
		logger.Info().Msg("no config.yaml found, using defaults and env vars")
	}

	serviceCfg, err := cfg.ServiceConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid reconcile configuration")
	}
	service := reconcile.NewService(serviceCfg)

	router := mux.NewRouter()
	router.Use(middleware.Recovery(&logger), middleware.LoggingMiddleware(&logger))
	router.Handle("/api/reconcile", reconcile.NewHTTPHandler(service, cfg.MaxUploadBytes())).Methods(http.MethodPost)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("starting reconciliation server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
