package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"furnace_forecast/internal/handlers"
	"furnace_forecast/internal/logger"
	"furnace_forecast/internal/metrics"
	"furnace_forecast/internal/repository"
	"furnace_forecast/internal/server"
	"furnace_forecast/internal/service"
	"furnace_forecast/internal/telemetry"
	"furnace_forecast/internal/thermal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

const defaultPollTick = 5 * time.Minute

func main() {
	// load config.yml first so the log level honors it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// prediction engine
	engine, err := thermal.NewEngine(thermal.Config{
		ThermalConstant:    viper.GetFloat64("thermal.constant"),
		FallbackHeatUpRate: viper.GetFloat64("thermal.fallback_rate"),
	})
	if err != nil {
		log.Fatalw("invalid thermal config", "err", err)
	}

	// metrics registry
	registry := prometheus.NewRegistry()
	mets := metrics.New(registry)

	// wire dependencies
	repos := repository.NewRepository(db)
	source, fallback := buildSources(repos, log)
	services := service.NewService(service.Deps{
		Repos:      repos,
		Source:     source,
		Fallback:   fallback,
		Engine:     engine,
		Metrics:    mets,
		Log:        log,
		SigningKey: viper.GetString("auth.signing_key"),
	})
	apiHandler := handlers.NewHandler(services, log,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start telemetry poller (via composed service)
	go services.Poller.Run(ctx, pollTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "forecast.db")
		dbPath = "forecast.db"
	}
	return repository.InitDB(dbPath)
}

// buildSources selects the telemetry source. The mock source doubles as the
// fallback when a vendor poll fails, so the forecast endpoints stay alive.
func buildSources(repos *repository.Repository, log *logger.Logger) (telemetry.Source, telemetry.Source) {
	mock := telemetry.NewMockSource()
	if viper.GetBool("telemetry.mock") {
		log.Infow("telemetry source: mock")
		return mock, mock
	}
	vendor := telemetry.NewVendorClient(telemetry.VendorConfig{
		BaseURL: viper.GetString("telemetry.base_url"),
		AuthURL: viper.GetString("telemetry.auth_url"),
		APIKey:  viper.GetString("telemetry.api_key"),
		Timeout: viper.GetDuration("telemetry.timeout"),
	}, repos.Token)
	log.Infow("telemetry source: vendor", "base_url", viper.GetString("telemetry.base_url"))
	return vendor, mock
}

func pollTick() time.Duration {
	if d := viper.GetDuration("telemetry.poll_interval"); d > 0 {
		return d
	}
	return defaultPollTick
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
