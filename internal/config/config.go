// Package config loads the service configuration from a YAML file, an optional
// .env file and RESTORAN_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int    `yaml:"port"`
		MetricsPort int    `yaml:"metrics_port"`
		Mode        string `yaml:"mode"`
	} `yaml:"server"`
	Chat struct {
		ReplyDelay  time.Duration `yaml:"reply_delay"`
		IdleTimeout time.Duration `yaml:"idle_timeout"`
	} `yaml:"chat"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	CatalogFile string `yaml:"catalog_file"`
}

// overrides are the environment variables that win over the file
type overrides struct {
	Port        *int           `env:"RESTORAN_PORT"`
	MetricsPort *int           `env:"RESTORAN_METRICS_PORT"`
	Mode        *string        `env:"RESTORAN_MODE"`
	ReplyDelay  *time.Duration `env:"RESTORAN_CHAT_REPLY_DELAY"`
	IdleTimeout *time.Duration `env:"RESTORAN_CHAT_IDLE_TIMEOUT"`
	LogLevel    *string        `env:"RESTORAN_LOG_LEVEL"`
	LogFile     *string        `env:"RESTORAN_LOG_FILE"`
	CatalogFile *string        `env:"RESTORAN_CATALOG_FILE"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	c := &Config{}
	c.Server.Port = 8080
	c.Server.MetricsPort = 9090
	c.Server.Mode = "release"
	c.Chat.ReplyDelay = time.Second
	c.Chat.IdleTimeout = 30 * time.Minute
	c.Log.Level = "info"
	c.Log.File = "./logs/app.log"
	c.Log.MaxSizeMB = 100
	c.Log.MaxAgeDays = 28
	return c
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var o overrides
	if _, err := env.UnmarshalFromEnviron(&o); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	c.apply(o)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) apply(o overrides) {
	if o.Port != nil {
		c.Server.Port = *o.Port
	}
	if o.MetricsPort != nil {
		c.Server.MetricsPort = *o.MetricsPort
	}
	if o.Mode != nil {
		c.Server.Mode = *o.Mode
	}
	if o.ReplyDelay != nil {
		c.Chat.ReplyDelay = *o.ReplyDelay
	}
	if o.IdleTimeout != nil {
		c.Chat.IdleTimeout = *o.IdleTimeout
	}
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
	}
	if o.LogFile != nil {
		c.Log.File = *o.LogFile
	}
	if o.CatalogFile != nil {
		c.CatalogFile = *o.CatalogFile
	}
}

// Validate rejects values the servers cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MetricsPort < 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port %d", c.Server.MetricsPort)
	}
	if c.Chat.ReplyDelay < 0 {
		return fmt.Errorf("chat reply delay must not be negative")
	}
	if c.Chat.IdleTimeout <= 0 {
		return fmt.Errorf("chat idle timeout must be positive")
	}
	return nil
}
