// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON file and
// environment variables, applied in that order.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/atinyakov/GophCards/internal/service"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// DatabaseDSN holds the database connection string. Empty selects the
	// in-memory store.
	DatabaseDSN string `json:"database_dsn"`

	// Config is the path to the Config file.
	Config string `json:"-"`

	// JWTSecret verifies bearer tokens.
	JWTSecret string `json:"jwt_secret"`

	// LogLevel is the zap level name.
	LogLevel string `json:"log_level"`

	// PurgeInterval is how often soft-deleted cards past PurgeRetention are
	// removed. Zero disables the sweep.
	PurgeInterval time.Duration `json:"-"`

	// PurgeRetention is how long a soft-deleted card is kept by the sweep.
	// It may not be shorter than the restore window.
	PurgeRetention time.Duration `json:"-"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`
}

// Parse parses the command-line flags, config file and environment
// variables. It exits the process on malformed input.
func Parse() *Options {
	options, err := parse(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return options
}

func parse(args []string, getenv func(string) string) (*Options, error) {
	options := &Options{}
	fset := flag.NewFlagSet("server", flag.ContinueOnError)
	fset.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fset.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fset.StringVar(&options.Config, "config", "config.json", "path to config file")
	fset.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	fset.StringVar(&options.JWTSecret, "jwt-secret", "", "secret for HS256 bearer tokens")
	fset.StringVar(&options.LogLevel, "log-level", "info", "log level")
	fset.DurationVar(&options.PurgeInterval, "purge-interval", 0, "interval of the expired card sweep, 0 disables it")
	fset.DurationVar(&options.PurgeRetention, "purge-retention", service.RestoreWindow, "age after which soft-deleted cards are swept")
	fset.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	fset.StringVar(&options.TLSKey, "tls-key", "", "path to TLS key")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if configPath := getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		data, err := os.ReadFile(options.Config)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("error while reading config file: %w", err)
		default:
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	overrides := []struct {
		env string
		dst *string
	}{
		{"SERVER_ADDRESS", &options.Port},
		{"DATABASE_DSN", &options.DatabaseDSN},
		{"JWT_SECRET", &options.JWTSecret},
		{"LOG_LEVEL", &options.LogLevel},
		{"TLS_CERT", &options.TLSCert},
		{"TLS_KEY", &options.TLSKey},
	}
	for _, o := range overrides {
		if v := getenv(o.env); v != "" {
			*o.dst = v
		}
	}

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"PURGE_INTERVAL", &options.PurgeInterval},
		{"PURGE_RETENTION", &options.PurgeRetention},
	}
	for _, d := range durations {
		v := getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.env, err)
		}
		*d.dst = parsed
	}

	if err := service.CheckRetention(options.PurgeRetention); err != nil {
		return nil, fmt.Errorf("purge retention: %w", err)
	}

	return options, nil
}
