package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces the environment variables, e.g. SUBPIX_SERVER_PORT.
const envPrefix = "SUBPIX"

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Merchant MerchantConfig `yaml:"merchant" envconfig:"MERCHANT"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Output string `yaml:"output" envconfig:"OUTPUT"`
}

// MerchantConfig is the Pix recipient rendered into every charge payload.
type MerchantConfig struct {
	PixKey string `yaml:"pix_key" envconfig:"PIX_KEY"`
	Name   string `yaml:"name" envconfig:"NAME"`
	City   string `yaml:"city" envconfig:"CITY"`
}

// PathsConfig contains file system paths.
type PathsConfig struct {
	DataFile    string `yaml:"data_file" envconfig:"DATA_FILE"`
	CatalogFile string `yaml:"catalog_file" envconfig:"CATALOG_FILE"`
}

// SecurityConfig contains rate limiting configuration.
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stdout",
		},
		Paths: PathsConfig{
			DataFile:    "data/subpix.json",
			CatalogFile: "config/keys.yaml",
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{Enabled: true, RPS: 100, Burst: 50},
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (when
// it exists), then environment variables on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file is fine; env and defaults carry the config.
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if c.Paths.DataFile == "" {
		return fmt.Errorf("paths.data_file is required")
	}
	if c.Paths.CatalogFile == "" {
		return fmt.Errorf("paths.catalog_file is required")
	}
	if c.Merchant.PixKey == "" {
		return fmt.Errorf("merchant.pix_key is required")
	}
	if c.Merchant.Name == "" || c.Merchant.City == "" {
		return fmt.Errorf("merchant.name and merchant.city are required")
	}
	return nil
}
