// Package config handles configuration loading for the finanzas tools.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FINANZAS_STORE_DSN.
const EnvPrefix = "FINANZAS"

// Config represents the complete application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis" json:"analysis"`
	Store    StoreConfig    `mapstructure:"store"    yaml:"store"    json:"store"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"      json:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"  json:"logging"`
}

// AnalysisConfig holds analysis engine settings.
type AnalysisConfig struct {
	Currency    string  `mapstructure:"currency"    yaml:"currency"    json:"currency"` // ISO 4217
	Tolerance   float64 `mapstructure:"tolerance"   yaml:"tolerance"   json:"tolerance"`
	CacheTTL    int     `mapstructure:"cache_ttl"   yaml:"cache_ttl"   json:"cache_ttl"` // seconds
	Concurrency int     `mapstructure:"concurrency" yaml:"concurrency" json:"concurrency"`
}

// CacheDuration converts CacheTTL to a duration.
func (a AnalysisConfig) CacheDuration() time.Duration {
	return time.Duration(a.CacheTTL) * time.Second
}

// StoreConfig selects where ledgers and packages are kept.
type StoreConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver" json:"driver"` // "memory" or "postgres"
	DSN    string `mapstructure:"dsn"    yaml:"dsn"    json:"-"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"         json:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"         json:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins" json:"cors_origins"`
}

// Addr is the listen address.
func (a APIConfig) Addr() string { return fmt.Sprintf("%s:%d", a.Host, a.Port) }

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  json:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format" json:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.finanzas/config.yaml (home directory)
//  3. /etc/finanzas/config.yaml (system)
//
// Environment variables override config file values.
// Format: FINANZAS_<SECTION>_<KEY>, e.g., FINANZAS_ANALYSIS_CURRENCY
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".finanzas"))
	v.AddConfigPath("/etc/finanzas")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if len(c.Analysis.Currency) != 3 {
		return fmt.Errorf("analysis.currency %q: want a 3-letter ISO code", c.Analysis.Currency)
	}
	if c.Analysis.Tolerance < 0 {
		return fmt.Errorf("analysis.tolerance must not be negative")
	}
	if c.Analysis.Concurrency < 1 {
		return fmt.Errorf("analysis.concurrency must be at least 1")
	}
	switch c.Store.Driver {
	case "memory":
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("store.driver %q: want memory or postgres", c.Store.Driver)
	}
	return nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Analysis defaults
	v.SetDefault("analysis.currency", "USD")
	v.SetDefault("analysis.tolerance", 0.01)
	v.SetDefault("analysis.cache_ttl", 600) // 10 minutes
	v.SetDefault("analysis.concurrency", 4)

	// Store defaults
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.dsn", "")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if dsn := os.Getenv(EnvPrefix + "_STORE_DSN"); dsn != "" {
		cfg.Store.DSN = dsn
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" && cfg.Store.DSN == "" {
		cfg.Store.DSN = dsn
	}
	cfg.Analysis.Currency = strings.ToUpper(cfg.Analysis.Currency)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
