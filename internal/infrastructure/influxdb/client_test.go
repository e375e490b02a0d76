package influxdb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nerrad567/calc-core/internal/calc"
	"github.com/nerrad567/calc-core/internal/history"
	"github.com/nerrad567/calc-core/internal/infrastructure/config"
	"github.com/nerrad567/calc-core/internal/infrastructure/influxdb"
)

// testConfig returns a configuration for a local development InfluxDB.
func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "calccore-dev-token",
		Org:           "calccore",
		Bucket:        "operations",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

// connectOrSkip connects to the local InfluxDB or skips the test.
func connectOrSkip(t *testing.T) *influxdb.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := influxdb.Connect(ctx, testConfig())
	if err != nil {
		t.Skip("InfluxDB not available, skipping integration test")
	}
	t.Cleanup(func() { client.Close() }) //nolint:errcheck // Test cleanup
	return client
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := influxdb.Connect(context.Background(), cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	cfg := testConfig()
	cfg.URL = "http://127.0.0.1:59999"

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := influxdb.Connect(ctx, cfg)
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestConnect_HealthAndWrite(t *testing.T) {
	client := connectOrSkip(t)

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	rec := history.Record{
		ID:        "op-int",
		Operation: calc.OpAdd,
		Operands:  []float64{5, 3},
		Result:    8,
		Timestamp: time.Now().UTC(),
	}
	if err := client.PublishOperation(context.Background(), rec); err != nil {
		t.Errorf("PublishOperation() error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
