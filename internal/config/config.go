// Package config loads the gateway configuration from an optional YAML file
// with environment-variable overrides. Credentials are expected from the
// environment in normal operation; the file covers everything else.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/harborview/gateway/internal/store"
	"go.yaml.in/yaml/v3"
)

// Config is the root gateway configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig tunes the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// ReadHeaderTimeout bounds how long a client may take to send headers.
	// Request and response bodies stream, so there is deliberately no
	// whole-request read or write timeout.
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// StorageConfig configures the remote object store connection.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL"`
	Region    string `yaml:"region"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns runnable local-development defaults (MinIO on localhost).
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
		},
		Storage: StorageConfig{
			Endpoint: "localhost:9000",
			UseSSL:   false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment overrides. It fails fast when the
// resulting config is missing credentials.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can produce a working gateway.
func (c *Config) Validate() error {
	if c.Storage.Endpoint == "" {
		return fmt.Errorf("storage endpoint must be set")
	}
	if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
		return fmt.Errorf("storage access key and secret key must be set (GATEWAY_STORE_ACCESS_KEY / GATEWAY_STORE_SECRET_KEY)")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr must be set")
	}
	return nil
}

// StoreConfig converts the storage section into the store package's Config.
func (c *Config) StoreConfig() *store.Config {
	return &store.Config{
		Provider:  store.ProviderMinIO,
		Endpoint:  c.Storage.Endpoint,
		AccessKey: c.Storage.AccessKey,
		SecretKey: c.Storage.SecretKey,
		UseSSL:    c.Storage.UseSSL,
		Region:    c.Storage.Region,
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "GATEWAY_ADDR")
	setString(&cfg.Storage.Endpoint, "GATEWAY_STORE_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "GATEWAY_STORE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "GATEWAY_STORE_SECRET_KEY")
	setString(&cfg.Storage.Region, "GATEWAY_STORE_REGION")
	setString(&cfg.Log.Level, "GATEWAY_LOG_LEVEL")
	setString(&cfg.Log.Format, "GATEWAY_LOG_FORMAT")
	setBool(&cfg.Storage.UseSSL, "GATEWAY_STORE_USE_SSL")
}

func setString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
