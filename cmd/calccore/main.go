// calc-core - arithmetic HTTP service with a persisted operation history.
//
// Every successful operation is stored in SQLite and, when configured,
// published to MQTT and written to InfluxDB as a time-series point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/calc-core/migrations"

	"github.com/nerrad567/calc-core/internal/api"
	"github.com/nerrad567/calc-core/internal/history"
	"github.com/nerrad567/calc-core/internal/infrastructure/config"
	"github.com/nerrad567/calc-core/internal/infrastructure/database"
	"github.com/nerrad567/calc-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/calc-core/internal/infrastructure/logging"
	"github.com/nerrad567/calc-core/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path, used only when it exists.
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application lifecycle, separated from main for testability.
// It blocks until ctx is cancelled and returns nil on a clean shutdown.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting calc-core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", db.Path())

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	opts := []history.Option{history.WithLogger(log.With("component", "history"))}
	checks := make(map[string]api.HealthChecker)

	if mqttClient := connectMQTT(cfg.MQTT, log); mqttClient != nil {
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		opts = append(opts, history.WithPublisher("mqtt", mqttClient))
		checks["mqtt"] = mqttClient
	}

	if influxClient := connectInfluxDB(ctx, cfg.InfluxDB, log); influxClient != nil {
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		opts = append(opts, history.WithPublisher("influxdb", influxClient))
		checks["influxdb"] = influxClient
	}

	recorder := history.NewRecorder(history.NewSQLiteRepository(db.DB), opts...)

	server, err := api.New(api.Deps{
		Config:   cfg.API,
		Timeouts: apiTimeouts(cfg),
		Logger:   log.With("component", "api"),
		Recorder: recorder,
		Database: db,
		Checks:   checks,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	<-ctx.Done()

	// Deferred Close() calls run in reverse order:
	// API server, InfluxDB, MQTT, database.
	log.Info("shutdown signal received, cleaning up")
	return nil
}

// connectMQTT returns a connected client, or nil when MQTT is disabled or
// the broker is unreachable. Publishing is optional, so failure only warns.
func connectMQTT(cfg config.MQTTConfig, log *logging.Logger) *mqtt.Client {
	if !cfg.Enabled {
		log.Info("MQTT disabled")
		return nil
	}

	client, err := mqtt.Connect(cfg)
	if err != nil {
		log.Warn("MQTT unavailable, operations will not be published", "error", err)
		return nil
	}
	client.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	client.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.Broker.Host, cfg.Broker.Port),
		"client_id", cfg.Broker.ClientID,
	)
	return client
}

// connectInfluxDB mirrors connectMQTT for the time-series sink.
func connectInfluxDB(ctx context.Context, cfg config.InfluxDBConfig, log *logging.Logger) *influxdb.Client {
	client, err := influxdb.Connect(ctx, cfg)
	switch {
	case errors.Is(err, influxdb.ErrDisabled):
		log.Info("InfluxDB disabled")
		return nil
	case err != nil:
		log.Warn("InfluxDB unavailable, operations will not be written", "error", err)
		return nil
	}

	client.SetOnError(func(err error) {
		log.Error("InfluxDB write error", "error", err)
	})
	log.Info("InfluxDB connected",
		"url", cfg.URL,
		"org", cfg.Org,
		"bucket", cfg.Bucket,
	)
	return client
}

// apiTimeouts converts the configured HTTP and history timeouts.
func apiTimeouts(cfg *config.Config) api.Timeouts {
	return api.Timeouts{
		Read:   cfg.GetReadTimeout(),
		Write:  cfg.GetWriteTimeout(),
		Idle:   cfg.GetIdleTimeout(),
		Record: cfg.GetRecordTimeout(),
	}
}

// getConfigPath returns the configuration file path.
// CALCCORE_CONFIG wins; otherwise the default file is used if present, and
// an empty path means built-in defaults plus environment overrides.
func getConfigPath() string {
	if path := os.Getenv("CALCCORE_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}
