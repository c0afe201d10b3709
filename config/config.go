// Package config loads the filler's runtime configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GRPCAddr    string `yaml:"grpc_addr"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`

	Journal JournalConfig `yaml:"journal"`
	Mirror  MirrorConfig  `yaml:"mirror"`
	Outbox  OutboxConfig  `yaml:"outbox"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Filler  FillerConfig  `yaml:"filler"`

	Markets []MarketConfig `yaml:"markets"`
}

type JournalConfig struct {
	Dir         string `yaml:"dir"`
	SegmentSize int64  `yaml:"segment_size"`
}

type MirrorConfig struct {
	Dir string `yaml:"dir"`
}

type OutboxConfig struct {
	Dir string `yaml:"dir"`
}

type KafkaConfig struct {
	Brokers        []string `yaml:"brokers"`
	GroupID        string   `yaml:"group_id"`
	EventsTopic    string   `yaml:"events_topic"`
	OracleTopic    string   `yaml:"oracle_topic"`
	SlotTopic      string   `yaml:"slot_topic"`
	CandidateTopic string   `yaml:"candidate_topic"`
	DrainInterval  Duration `yaml:"drain_interval"`
}

type FillerConfig struct {
	ScanInterval       Duration `yaml:"scan_interval"`
	CheckpointInterval Duration `yaml:"checkpoint_interval"`
}

type MarketConfig struct {
	Type      string `yaml:"type"` // "perp" or "spot"
	Index     uint16 `yaml:"index"`
	SpreadBps int64  `yaml:"spread_bps"`
}

// Load reads and validates a YAML config file, filling in defaults for
// anything left unset.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config populated with development defaults.
func Default() *Config {
	return &Config{
		GRPCAddr:    ":50051",
		MetricsAddr: ":9102",
		LogLevel:    "info",
		Journal: JournalConfig{
			Dir:         "./data/journal",
			SegmentSize: 8 * 1024 * 1024,
		},
		Mirror: MirrorConfig{Dir: "./data/mirror"},
		Outbox: OutboxConfig{Dir: "./data/outbox"},
		Kafka: KafkaConfig{
			Brokers:        []string{"localhost:9092"},
			GroupID:        "fenrir-filler",
			EventsTopic:    "order-events",
			OracleTopic:    "oracle-prices",
			SlotTopic:      "slots",
			CandidateTopic: "fill-candidates",
			DrainInterval:  Duration(250 * time.Millisecond),
		},
		Filler: FillerConfig{
			ScanInterval:       Duration(100 * time.Millisecond),
			CheckpointInterval: Duration(30 * time.Second),
		},
	}
}

func (c *Config) validate() error {
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: no kafka brokers")
	}
	if len(c.Markets) == 0 {
		return fmt.Errorf("config: no markets configured")
	}
	for i, m := range c.Markets {
		if m.Type != "perp" && m.Type != "spot" {
			return fmt.Errorf("config: markets[%d]: unknown type %q", i, m.Type)
		}
		if m.SpreadBps < 0 {
			return fmt.Errorf("config: markets[%d]: negative spread", i)
		}
	}
	return nil
}
