package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdirectory/internal/flagx"
	"github.com/dmitrijs2005/userdirectory/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of Config. Durations use timex.Duration,
// so both "15s" and integer nanoseconds are accepted. Absent keys leave the
// current value untouched.
type FileConfig struct {
	EndpointAddrHTTP    string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC    string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN         string         `json:"database_dsn" yaml:"database_dsn"`
	MinAge              *int           `json:"min_age" yaml:"min_age"`
	ReadTimeout         timex.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout        timex.Duration `json:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout     timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	HealthProbeInterval timex.Duration `json:"health_probe_interval" yaml:"health_probe_interval"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	LogFormat           string         `json:"log_format" yaml:"log_format"`
}

// parseFile loads configuration values from the file named by -c or
// -config. Files ending in .yaml or .yml are decoded as YAML, anything else
// as JSON. Nothing happens when neither flag is set. An unreadable or
// malformed file panics.
func parseFile(config *Config) {

	// try flags
	configFile := flagx.ConfigFileFlag(os.Args[1:])

	// nothing to load
	if configFile == "" {
		return
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	if c.MinAge != nil {
		config.MinAge = *c.MinAge
	}
	setDuration(&config.ReadTimeout, c.ReadTimeout)
	setDuration(&config.WriteTimeout, c.WriteTimeout)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
	setDuration(&config.HealthProbeInterval, c.HealthProbeInterval)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
