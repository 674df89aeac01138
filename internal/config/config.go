// Package config loads service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	// URL is the Postgres connection string. Empty disables the
	// persistent distance cache, scenario repository, and solve store.
	URL string `yaml:"url"`
}

type RoutingConfig struct {
	// OSRMBaseURL points at the routing server. Empty runs offline on
	// the great-circle approximation alone.
	OSRMBaseURL           string  `yaml:"osrmBaseUrl"`
	RequestTimeoutSeconds int     `yaml:"requestTimeoutSeconds"`
	RequestsPerSecond     float64 `yaml:"requestsPerSecond"`
}

type SolverConfig struct {
	UnloadMinutesPer100Units float64 `yaml:"unloadMinutesPer100Units"`
	ReturnToDepot            bool    `yaml:"returnToDepot"`
	UtilizationThreshold     float64 `yaml:"utilizationThreshold"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Routing  RoutingConfig  `yaml:"routing"`
	Solver   SolverConfig   `yaml:"solver"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{},
		Routing: RoutingConfig{
			OSRMBaseURL:           "https://router.project-osrm.org",
			RequestTimeoutSeconds: 15,
			RequestsPerSecond:     2,
		},
		Solver: SolverConfig{
			UnloadMinutesPer100Units: 30,
			ReturnToDepot:            true,
			UtilizationThreshold:     0.5,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load reads configuration from path (optional, empty for defaults) and
// applies environment overrides: PORT, DATABASE_URL, OSRM_BASE_URL,
// LOG_LEVEL, LOG_FORMAT, OSRM_REQUESTS_PER_SECOND.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("OSRM_BASE_URL"); v != "" {
		cfg.Routing.OSRMBaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("OSRM_REQUESTS_PER_SECOND"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("load config: OSRM_REQUESTS_PER_SECOND: %w", err)
		}
		cfg.Routing.RequestsPerSecond = rps
	}

	return cfg, nil
}
