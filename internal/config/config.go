// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"github.com/gedeza/business-consulting/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Quote contains defaults for new quotes
	Quote QuoteConfig `yaml:"quote" mapstructure:"quote"`

	// Storage selects the key-value store backend
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Rates configures the exchange-rate source
	Rates RatesConfig `yaml:"rates" mapstructure:"rates"`

	// Catalog configures extra custom service files
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`

	// Server configures the HTTP API
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Logging contains logging configuration
	Logging logging.Config `yaml:"logging" mapstructure:"logging"`
}

// QuoteConfig holds the values the estimator starts from
type QuoteConfig struct {
	DefaultCurrency            string  `yaml:"default_currency" mapstructure:"default_currency"`
	DefaultHourlyRate          float64 `yaml:"default_hourly_rate" mapstructure:"default_hourly_rate"`
	DefaultComplexity          float64 `yaml:"default_complexity" mapstructure:"default_complexity"`
	DefaultPolishingPercentage float64 `yaml:"default_polishing_percentage" mapstructure:"default_polishing_percentage"`
	VATEnabled                 bool    `yaml:"vat_enabled" mapstructure:"vat_enabled"`
	BusinessName               string  `yaml:"business_name" mapstructure:"business_name"`
	ConsultantName             string  `yaml:"consultant_name" mapstructure:"consultant_name"`
	ConsultantTitle            string  `yaml:"consultant_title" mapstructure:"consultant_title"`
	ConsultantEmail            string  `yaml:"consultant_email" mapstructure:"consultant_email"`
}

// StorageConfig configures the key-value store
type StorageConfig struct {
	// Driver is one of file, sqlite, memory
	Driver string `yaml:"driver" mapstructure:"driver"`

	// Path is the JSON file or SQLite database path
	Path string `yaml:"path" mapstructure:"path"`
}

// RatesConfig configures exchange rates
type RatesConfig struct {
	URL         string             `yaml:"url" mapstructure:"url"`
	TimeoutSecs int                `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Offline     bool               `yaml:"offline" mapstructure:"offline"`
	Fallback    map[string]float64 `yaml:"fallback" mapstructure:"fallback"`
}

// CatalogConfig configures service catalog files
type CatalogConfig struct {
	// File is an optional HCL or YAML file of custom services loaded at startup
	File string `yaml:"file" mapstructure:"file"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// HomeDir is the per-user directory for config and data
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".consulting-quote")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("quote.default_currency", "ZAR")
	v.SetDefault("quote.default_hourly_rate", 1000)
	v.SetDefault("quote.default_complexity", 1)
	v.SetDefault("quote.default_polishing_percentage", 20)
	v.SetDefault("quote.vat_enabled", true)
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", filepath.Join(HomeDir(), "store.json"))
	v.SetDefault("rates.url", "https://api.exchangerate-api.com/v4/latest/ZAR")
	v.SetDefault("rates.timeout_secs", 10)
	v.SetDefault("rates.offline", false)
	v.SetDefault("rates.fallback", map[string]float64{"ZAR": 1, "USD": 0.054, "EUR": 0.05})
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.development", false)
}

// Default returns a default configuration
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	cfg.Rates.Fallback = normalizeRates(cfg.Rates.Fallback)
	return &cfg
}

// Load reads configuration from file and environment. An empty path searches
// for config.yaml in the working directory and HomeDir.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(HomeDir())
	}

	v.SetEnvPrefix("QUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	cfg.Rates.Fallback = normalizeRates(cfg.Rates.Fallback)

	return &cfg, nil
}

// viper lower-cases map keys; currency codes are upper case everywhere else.
func normalizeRates(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[strings.ToUpper(k)] = v
	}
	return out
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
