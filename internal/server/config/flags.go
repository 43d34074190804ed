package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/userdirectory/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN; empty selects the in-memory store
//	-m int      minimum user age, years
//	-rt int     HTTP read timeout, seconds
//	-wt int     HTTP write timeout, seconds
//	-st int     shutdown timeout, seconds
//	-hp int     health probe interval, seconds
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (json, text, auto)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs. Duration flags are integers in seconds.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-m", "-rt", "-wt", "-st", "-hp", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.MinAge, "m", config.MinAge, "minimum user age (in years)")

	readTimeout := fs.Int("rt", int(config.ReadTimeout.Seconds()), "read_timeout (in seconds)")
	writeTimeout := fs.Int("wt", int(config.WriteTimeout.Seconds()), "write_timeout (in seconds)")
	shutdownTimeout := fs.Int("st", int(config.ShutdownTimeout.Seconds()), "shutdown_timeout (in seconds)")
	healthProbeInterval := fs.Int("hp", int(config.HealthProbeInterval.Seconds()), "health_probe_interval (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only flags actually given override durations, so sub-second values
	// from the config file survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rt":
			config.ReadTimeout = time.Duration(*readTimeout) * time.Second
		case "wt":
			config.WriteTimeout = time.Duration(*writeTimeout) * time.Second
		case "st":
			config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
		case "hp":
			config.HealthProbeInterval = time.Duration(*healthProbeInterval) * time.Second
		}
	})
}
