package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds the HTTP API configuration
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// AnalyticsConfig holds the windows the API feeds into the engine
type AnalyticsConfig struct {
	TrendMonths       int `mapstructure:"trend_months"`        // months of revenue history for trend/forecast/anomaly queries
	DemandDays        int `mapstructure:"demand_days"`         // days of demand history for reorder planning
	ForecastPeriods   int `mapstructure:"forecast_periods"`    // default forecast horizon
	LowStockThreshold int `mapstructure:"low_stock_threshold"` // stock level considered "running low"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("STOCKPILOT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetDefault("storage.db_path", "./data/stockpilot.db")

	v.SetDefault("analytics.trend_months", 12)
	v.SetDefault("analytics.demand_days", 30)
	v.SetDefault("analytics.forecast_periods", 3)
	v.SetDefault("analytics.low_stock_threshold", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ReadTimeout < time.Second {
		return fmt.Errorf("server.read_timeout must be at least 1 second")
	}
	if c.Server.WriteTimeout < time.Second {
		return fmt.Errorf("server.write_timeout must be at least 1 second")
	}

	if c.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required")
	}

	if c.Analytics.TrendMonths < 3 {
		return fmt.Errorf("analytics.trend_months must be at least 3")
	}
	if c.Analytics.DemandDays < 1 {
		return fmt.Errorf("analytics.demand_days must be at least 1")
	}
	if c.Analytics.ForecastPeriods < 1 {
		return fmt.Errorf("analytics.forecast_periods must be at least 1")
	}
	if c.Analytics.LowStockThreshold < 0 {
		return fmt.Errorf("analytics.low_stock_threshold must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
