package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sumanachary99/dentalclinic/internal/api/router"
	"github.com/sumanachary99/dentalclinic/internal/appointments"
	"github.com/sumanachary99/dentalclinic/internal/auth"
	"github.com/sumanachary99/dentalclinic/internal/booking"
	"github.com/sumanachary99/dentalclinic/internal/clinic"
	appconfig "github.com/sumanachary99/dentalclinic/internal/config"
	"github.com/sumanachary99/dentalclinic/internal/dashboard"
	"github.com/sumanachary99/dentalclinic/internal/followup"
	"github.com/sumanachary99/dentalclinic/internal/observability/metrics"
	"github.com/sumanachary99/dentalclinic/pkg/logging"
)

func main() {
	// Load .env in development; missing file is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting dentalclinic API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	reg := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(reg)

	// Appointment store. Postgres when configured, otherwise the Sheets
	// web app backed by a local bolt fallback.
	store, cleanup, err := buildStore(cfg, logger, bookingMetrics)
	if err != nil {
		logger.Error("failed to initialize appointment store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	profile := clinic.ProfileFromConfig(cfg)
	apptService := appointments.NewService(store, logger, bookingMetrics)
	engine := followup.NewEngine(profile, cfg.CountryCode, logger, bookingMetrics)
	sessions := auth.NewSessions(auth.NewStaticPIN(cfg.DashboardPIN), cfg.SessionSecret, cfg.SessionTTL)

	wizardSessions := buildWizardSessions(cfg, logger)
	bookingHandler := booking.NewHandler(wizardSessions, apptService, profile, logger, bookingMetrics)
	dashboardHandler := dashboard.NewHandler(apptService, engine, sessions, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		BookingHandler:     bookingHandler,
		DashboardHandler:   dashboardHandler,
		ClinicHandler:      clinic.NewHandler(profile),
		Sessions:           sessions,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.AllowedOrigins(),
	}
	r := router.New(routerCfg)

	// Background stage progression.
	progressCtx, stopProgress := context.WithCancel(context.Background())
	defer stopProgress()
	if cfg.ProgressionEnabled {
		progressor := followup.NewProgressor(store, logger)
		go progressor.Run(progressCtx, cfg.ProgressionInterval)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stopProgress()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildStore selects the appointment backend from config. The returned
// cleanup closes whatever the store opened.
func buildStore(cfg *appconfig.Config, logger *logging.Logger, m *metrics.BookingMetrics) (appointments.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("using postgres appointment store")
		return appointments.NewPostgresStore(pool), pool.Close, nil
	}

	local, err := appointments.OpenBoltStore(cfg.LocalStorePath, cfg.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open local store: %w", err)
	}
	cleanup := func() { _ = local.Close() }

	if cfg.SheetsAPIURL == "" {
		logger.Warn("SHEETS_API_URL not set, running on local store only")
		return local, cleanup, nil
	}

	primary := appointments.NewSheetsStore(cfg.SheetsAPIURL, cfg.SheetsTimeout)
	logger.Info("using sheets appointment store with local fallback")
	return appointments.NewFallbackStore(primary, local, logger, m), cleanup, nil
}

// buildWizardSessions keeps wizard state in Redis when configured so that
// booking sessions survive restarts. Memory otherwise.
func buildWizardSessions(cfg *appconfig.Config, logger *logging.Logger) booking.SessionStore {
	if cfg.RedisAddr == "" {
		return booking.NewMemorySessionStore(cfg.WizardTTL)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	logger.Info("using redis wizard session store", "addr", cfg.RedisAddr)
	return booking.NewRedisSessionStore(client, cfg.WizardTTL)
}
