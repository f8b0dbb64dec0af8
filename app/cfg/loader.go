package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version == "" {
		return "unknown"
	}
	return Version
}

type rawCfg struct {
	// Database configuration
	DatabaseURL string `long:"database-url" env:"DATABASE_URL" description:"PostgreSQL connection string (required)" required:"true"`

	// Enrichment configuration
	KinopoiskAPIKey string `long:"kinopoisk-api-key" env:"KINOPOISK_API_KEY" description:"Kinopoisk API key; enrichment is disabled when empty"`

	// Application configuration
	Port             string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SourceConfigPath string `long:"source-config" env:"SOURCE_CONFIG" description:"Path to YAML file with listing source settings (optional)"`
	IngestInterval   int    `long:"ingest-interval" env:"INGEST_INTERVAL" default:"0" description:"Periodic ingestion interval in minutes (0 disables the scheduler)"`
	WorkerCount      int    `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of background workers for task processing"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0" description:"User agent string for outbound HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Moscow)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DatabaseURL:      raw.DatabaseURL,
		KinopoiskAPIKey:  raw.KinopoiskAPIKey,
		Port:             raw.Port,
		SourceConfigPath: raw.SourceConfigPath,
		IngestInterval:   raw.IngestInterval,
		WorkerCount:      raw.WorkerCount,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
