package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for scanpulse
type Config struct {
	// Base URL of the findings-pipeline dashboard API
	APIURL string `mapstructure:"api_url"`

	// Fast cadence: stats and projects
	PollFast time.Duration `mapstructure:"poll_fast"`

	// Slow cadence: findings table and filter facets
	PollSlow time.Duration `mapstructure:"poll_slow"`

	// Progress cadence: activity feed and per-project scan progress
	PollProgress time.Duration `mapstructure:"poll_progress"`

	// Findings table page size
	PerPage int `mapstructure:"per_page"`

	// HTTP client timeout per request
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	// Session log file for the dashboard (empty disables file logging)
	LogFile string `mapstructure:"log_file"`

	// Output format for one-shot commands (text, json)
	Format string `mapstructure:"format"`

	// Verbose output
	Verbose bool `mapstructure:"verbose"`

	// Debug mode
	Debug bool `mapstructure:"debug"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		APIURL:       "http://localhost:8001",
		PollFast:     5 * time.Second,
		PollSlow:     15 * time.Second,
		PollProgress: 2 * time.Second,
		PerPage:      15,
		HTTPTimeout:  10 * time.Second,
		Format:       "text",
	}
}

// Load loads configuration with the following precedence (lowest to highest):
// 1. Default values
// 2. Config file (~/.scanpulse.yaml or ./scanpulse.yaml)
// 3. Environment variables (SCANPULSE_*)
// 4. CLI flags (handled by caller)
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile loads configuration from a specific file path
// If path is empty, it searches for config in standard locations
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("api_url", defaults.APIURL)
	v.SetDefault("poll_fast", defaults.PollFast)
	v.SetDefault("poll_slow", defaults.PollSlow)
	v.SetDefault("poll_progress", defaults.PollProgress)
	v.SetDefault("per_page", defaults.PerPage)
	v.SetDefault("http_timeout", defaults.HTTPTimeout)
	v.SetDefault("log_file", "")
	v.SetDefault("format", defaults.Format)
	v.SetDefault("verbose", false)
	v.SetDefault("debug", false)

	v.SetConfigName("scanpulse")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// 1. Current directory
		v.AddConfigPath(".")

		// 2. Home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}

		// 3. XDG config directory
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			v.AddConfigPath(filepath.Join(xdgConfig, "scanpulse"))
		}
	}

	v.SetEnvPrefix("SCANPULSE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is OK, we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url cannot be empty")
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format: %s (must be text or json)", c.Format)
	}

	if c.PollFast <= 0 || c.PollSlow <= 0 || c.PollProgress <= 0 {
		return fmt.Errorf("poll cadences must be positive")
	}

	if c.PerPage <= 0 {
		return fmt.Errorf("per_page must be positive")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}

	return nil
}

// GenerateSampleConfig generates a sample configuration file content
func GenerateSampleConfig() string {
	return `# scanpulse Configuration
# Save this file as ~/.scanpulse.yaml or ./scanpulse.yaml

# Base URL of the findings-pipeline dashboard API
api_url: http://localhost:8001

# Poll cadences for the live dashboard
poll_fast: 5s        # stats and projects
poll_slow: 15s       # findings table and filter facets
poll_progress: 2s    # per-project scan progress

# Findings table page size
per_page: 15

# HTTP client timeout per request
http_timeout: 10s

# Session log file for the dashboard (empty disables file logging)
# log_file: /tmp/scanpulse.log

# Output format for one-shot commands: text or json
format: text

# Enable verbose output
verbose: false

# Enable debug mode
debug: false
`
}
