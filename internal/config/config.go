// Package config loads service configuration from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the variable holding an explicit config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{"config.yaml", "config/config.yaml"}

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	Storage  StorageConfig  `koanf:"storage"`
	Facebook FacebookConfig `koanf:"facebook"`
	Sync     SyncConfig     `koanf:"sync"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	RateLimit       int           `koanf:"rate_limit" validate:"min=1"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
}

// LogConfig configures pkg/log.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

// StorageConfig selects the artifact store.
type StorageConfig struct {
	Backend         string        `koanf:"backend" validate:"oneof=file badger mongo"`
	Dir             string        `koanf:"dir" validate:"required_unless=Backend mongo"`
	MongoURI        string        `koanf:"mongo_uri" validate:"required_if=Backend mongo"`
	MongoDatabase   string        `koanf:"mongo_database" validate:"required_if=Backend mongo"`
	MongoCollection string        `koanf:"mongo_collection"`
	CacheTTL        time.Duration `koanf:"cache_ttl" validate:"min=0"`
}

// FacebookConfig configures the Graph API source.
type FacebookConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"required,url"`
	Version     string        `koanf:"version" validate:"required"`
	PageID      string        `koanf:"page_id"`
	AccessToken string        `koanf:"access_token"`
	Limit       int           `koanf:"limit" validate:"min=1,max=100"`
	Timeout     time.Duration `koanf:"timeout" validate:"min=0"`
}

// SyncConfig configures the pipeline triggers.
type SyncConfig struct {
	CronSecret   string        `koanf:"cron_secret"`
	Interval     time.Duration `koanf:"interval" validate:"min=0"`
	TaxonomyPath string        `koanf:"taxonomy_path"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			RateLimit:       10,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Backend:       "file",
			Dir:           "data",
			MongoDatabase: "house31",
			CacheTTL:      30 * time.Second,
		},
		Facebook: FacebookConfig{
			BaseURL: "https://graph.facebook.com",
			Version: "v18.0",
			Limit:   20,
			Timeout: 15 * time.Second,
		},
	}
}

// Load reads .env if present, then layers defaults, the config file and the
// environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadFrom(findConfigFile())
}

// LoadFrom is Load without .env handling, reading the YAML file at path when
// path is non-empty.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks field constraints.
func (c *Config) Validate() error {
	validateOnce.Do(func() { validate = validator.New() })
	return validate.Struct(c)
}

// findConfigFile returns CONFIG_PATH or the first default path that exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps environment variable names, lower-cased, to config paths.
var envMappings = map[string]string{
	"server_host":                "server.host",
	"port":                       "server.port",
	"rate_limit":                 "server.rate_limit",
	"shutdown_timeout":           "server.shutdown_timeout",
	"log_level":                  "log.level",
	"log_format":                 "log.format",
	"storage_backend":            "storage.backend",
	"data_dir":                   "storage.dir",
	"mongo_uri":                  "storage.mongo_uri",
	"mongo_database":             "storage.mongo_database",
	"mongo_collection":           "storage.mongo_collection",
	"cache_ttl":                  "storage.cache_ttl",
	"facebook_graph_url":         "facebook.base_url",
	"facebook_graph_version":     "facebook.version",
	"facebook_page_id":           "facebook.page_id",
	"facebook_page_access_token": "facebook.access_token",
	"facebook_post_limit":        "facebook.limit",
	"facebook_timeout":           "facebook.timeout",
	"cron_secret":                "sync.cron_secret",
	"sync_interval":              "sync.interval",
	"taxonomy_path":              "sync.taxonomy_path",
}

// envTransformFunc maps an environment variable name to a config path.
// Unmapped names return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
