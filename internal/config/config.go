package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Service holds settings shared by every binary.
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

// ClickHouse holds connection settings for the analytics store.
type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST" default:"localhost"`
	Port            string `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	Database        string `envconfig:"CLICKHOUSE_DB" default:"search_analytics"`
	User            string `envconfig:"CLICKHOUSE_USER" default:""`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// Pipeline holds settings for the batch processing runs.
type Pipeline struct {
	// Timezone is the local calendar used for session dates. The exporter
	// delivers UTC timestamps; session boundaries follow this zone.
	Timezone        string `envconfig:"PIPELINE_TIMEZONE" default:"Europe/Berlin"`
	IngestBatchSize int    `envconfig:"PIPELINE_INGEST_BATCH_SIZE" default:"5000"`
}

// Retention holds the journey retention policy.
type Retention struct {
	// JourneyRetentionDays is the detail horizon: journeys older than this
	// many days are rolled into daily aggregates and then purged.
	JourneyRetentionDays int `envconfig:"RETENTION_JOURNEY_DAYS" default:"90"`
}

type Config struct {
	Service    Service
	ClickHouse ClickHouse
	Pipeline   Pipeline
	Retention  Retention
}

// Location resolves the configured pipeline timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Pipeline.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline timezone %q: %w", c.Pipeline.Timezone, err)
	}
	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Retention.JourneyRetentionDays < 1 {
		return nil, fmt.Errorf("RETENTION_JOURNEY_DAYS must be at least 1, got %d", cfg.Retention.JourneyRetentionDays)
	}

	return &cfg, nil
}
