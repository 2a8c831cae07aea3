package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Workbook  WorkbookConfig
	Store     StoreConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	TrustedProxies []string `mapstructure:"trusted_proxies"` // empty: client IP is the socket peer
}

// WorkbookConfig names the sheets read from the uploaded workbooks
type WorkbookConfig struct {
	BenchSheet  string `mapstructure:"bench_sheet"`
	DemandSheet string `mapstructure:"demand_sheet"`
	SubconSheet string `mapstructure:"subcon_sheet"`
	MasterSheet string `mapstructure:"master_sheet"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
}

// StoreConfig holds uploaded dataset retention configuration
type StoreConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds matching defaults
type MatchingConfig struct {
	DefaultMinPercent  int  `mapstructure:"default_min_percent"`
	DefaultMaxPercent  int  `mapstructure:"default_max_percent"`
	EnableDebugLogging bool `mapstructure:"debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/skillmatch/")

	// Environment variable settings
	v.SetEnvPrefix("SKILLMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.trusted_proxies", []string{})

	// Workbook defaults
	v.SetDefault("workbook.bench_sheet", "Bench Base")
	v.SetDefault("workbook.demand_sheet", "Demand Base")
	v.SetDefault("workbook.subcon_sheet", "Engineering")
	v.SetDefault("workbook.master_sheet", "MasterList")
	v.SetDefault("workbook.max_upload_mb", 32)

	// Store defaults
	v.SetDefault("store.ttl", "2h")

	// Matching defaults
	v.SetDefault("matching.default_min_percent", 0)
	v.SetDefault("matching.default_max_percent", 100)
	v.SetDefault("matching.debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	m := config.Matching
	if m.DefaultMinPercent < 0 || m.DefaultMaxPercent > 100 || m.DefaultMinPercent > m.DefaultMaxPercent {
		return fmt.Errorf("matching percent range must satisfy 0 <= min <= max <= 100, got [%d, %d]",
			m.DefaultMinPercent, m.DefaultMaxPercent)
	}

	w := config.Workbook
	if w.BenchSheet == "" || w.DemandSheet == "" || w.SubconSheet == "" || w.MasterSheet == "" {
		return fmt.Errorf("workbook sheet names must not be empty")
	}
	if w.MaxUploadMB <= 0 {
		return fmt.Errorf("workbook max upload size must be positive, got: %d", w.MaxUploadMB)
	}

	if config.Store.TTL <= 0 {
		return fmt.Errorf("store TTL must be positive, got: %s", config.Store.TTL)
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}

	return nil
}
