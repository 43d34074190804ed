// Package config handles configuration for the server component,
// including defaults, a JSON or YAML file overlay, and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/userdirectory/internal/server/validation"
)

// Config holds runtime settings for the user directory server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses of the REST API and
//     of the gRPC health endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - MinAge: minimum age in years accepted by validation.
//   - ReadTimeout / WriteTimeout / ShutdownTimeout: HTTP server limits.
//   - HealthProbeInterval: how often the gRPC health status pings the store.
//   - LogLevel / LogFormat: slog level name and "json", "text" or "auto".
type Config struct {
	EndpointAddrHTTP    string
	EndpointAddrGRPC    string
	DatabaseDSN         string
	MinAge              int
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	ShutdownTimeout     time.Duration
	HealthProbeInterval time.Duration
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.MinAge = validation.DefaultMinAge
	c.ReadTimeout = 15 * time.Second
	c.WriteTimeout = 15 * time.Second
	c.ShutdownTimeout = 10 * time.Second
	c.HealthProbeInterval = 5 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "auto"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
