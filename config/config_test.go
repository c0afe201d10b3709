package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
grpc_addr: ":6000"
kafka:
  brokers: ["kafka-1:9092", "kafka-2:9092"]
  drain_interval: 1s
filler:
  scan_interval: 50ms
markets:
  - type: "perp"
    index: 0
    spread_bps: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":6000", cfg.GRPCAddr)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, time.Second, cfg.Kafka.DrainInterval.Std())
	require.Equal(t, 50*time.Millisecond, cfg.Filler.ScanInterval.Std())

	// untouched fields keep their defaults
	require.Equal(t, ":9102", cfg.MetricsAddr)
	require.Equal(t, "order-events", cfg.Kafka.EventsTopic)
	require.Equal(t, 30*time.Second, cfg.Filler.CheckpointInterval.Std())

	require.Len(t, cfg.Markets, 1)
	require.Equal(t, uint16(0), cfg.Markets[0].Index)
	require.Equal(t, int64(10), cfg.Markets[0].SpreadBps)
}

func TestLoad_RejectsNoMarkets(t *testing.T) {
	path := writeConfig(t, `
grpc_addr: ":6000"
`)
	_, err := Load(path)
	require.ErrorContains(t, err, "no markets")
}

func TestLoad_RejectsBadMarketType(t *testing.T) {
	path := writeConfig(t, `
markets:
  - type: "forex"
    index: 0
`)
	_, err := Load(path)
	require.ErrorContains(t, err, "unknown type")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
