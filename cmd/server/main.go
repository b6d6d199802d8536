package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/citywatch/alerts-backend-go/internal/api"
	"github.com/citywatch/alerts-backend-go/internal/config"
	"github.com/citywatch/alerts-backend-go/internal/database"
	"github.com/citywatch/alerts-backend-go/internal/handler"
	"github.com/citywatch/alerts-backend-go/internal/notify"
	"github.com/citywatch/alerts-backend-go/internal/realtime"
	"github.com/citywatch/alerts-backend-go/internal/repository"
	"github.com/citywatch/alerts-backend-go/internal/service"
)

func main() {
	// Structured logging
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Database
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer database.Close()
	db := database.GetDB()

	// Notification channels
	notifyCfg, err := notify.LoadConfig(cfg.NotifyConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.NotifyConfigPath).Msg("Failed to load notify config")
	}
	dispatcher := notify.NewDispatcher(notifyCfg)

	// Wiring
	alertRepo := repository.NewAlertRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)

	hub := realtime.NewHub(cfg.WSWriteTimeout, cfg.WSIdleTimeout)

	alertService := service.NewAlertService(alertRepo)
	incidentService := service.NewIncidentService(incidentRepo)
	detectService := service.NewDetectService(
		incidentRepo, alertRepo, dispatcher, hub,
		cfg.Granularity, cfg.MinCount, cfg.SnapshotLimit,
	)

	router := api.SetupRouter(cfg, api.Handlers{
		Alerts:    handler.NewAlertHandler(alertService, detectService),
		Incidents: handler.NewIncidentHandler(incidentService),
		Realtime:  handler.NewRealtimeHandler(hub),
	})

	// Background detection passes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go detectService.RunLoop(ctx, cfg.DetectInterval)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.Port).
			Int("granularity", cfg.Granularity).
			Int("min_count", cfg.MinCount).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")
	cancel()
	hub.CloseAll()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	} else {
		log.Info().Msg("Server shutdown complete")
	}
}
