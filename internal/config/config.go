// Package config loads the engine's configuration from defaults, an
// optional YAML file, and environment variables, in that priority order,
// using koanf the same way the wider logistics stack does.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the engine's top-level configuration.
type Config struct {
	App     AppConfig     `koanf:"app"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
	Cache   CacheConfig   `koanf:"cache"`
	Matrix  MatrixConfig  `koanf:"matrix"`
	Retry   RetryConfig   `koanf:"retry"`
	Solver  SolverConfig  `koanf:"solver"`
	Tracing TracingConfig `koanf:"tracing"`
}

// AppConfig carries general process identity, used in log fields and
// metric labels.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	Debug       bool   `koanf:"debug"`
}

// LogConfig configures the slog + lumberjack logger.
type LogConfig struct {
	Level      string `koanf:"level"`  // debug, info, warn, error
	Format     string `koanf:"format"` // json, text
	Output     string `koanf:"output"` // stdout, stderr, file
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"` // count
	MaxAge     int    `koanf:"max_age"`     // days
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig configures the Prometheus collector registration.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// CacheConfig configures the matrix/result cache backend.
type CacheConfig struct {
	Enabled                    bool          `koanf:"enabled"`
	Driver                     string        `koanf:"driver"` // redis, memory
	Host                       string        `koanf:"host"`
	Port                       int           `koanf:"port"`
	Password                   string        `koanf:"password"`
	DB                         int           `koanf:"db"`
	CacheExpiryDays            int           `koanf:"cache_expiry_days"`
	OptimizationResultCacheTTL time.Duration `koanf:"optimization_result_cache_timeout"`
	MaxEntries                 int           `koanf:"max_entries"`
}

// Address returns the cache backend's dial address.
func (c CacheConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MatrixConfig configures the distance-matrix provider per spec.md §6.
type MatrixConfig struct {
	GoogleMapsAPIKey string `koanf:"google_maps_api_key"`
	UseAPIByDefault  bool   `koanf:"use_api_by_default"`
}

// RetryConfig configures the backoff envelope around external provider
// calls. MaxRetries and RetryDelaySeconds are passed to the HTTP
// provider; BackoffFactor is loaded and carried here but is not passed
// to it.
type RetryConfig struct {
	MaxRetries        int           `koanf:"max_retries"`
	BackoffFactor     float64       `koanf:"backoff_factor"`
	RetryDelaySeconds time.Duration `koanf:"retry_delay_seconds"`
}

// SolverConfig configures the VRP solver.
type SolverConfig struct {
	TimeLimitSeconds      time.Duration `koanf:"time_limit_seconds"`
	DistanceScalingFactor int           `koanf:"distance_scaling_factor"`
	TimeScalingFactor     int           `koanf:"time_scaling_factor"`
	Testing               bool          `koanf:"testing"`
}

// TracingConfig configures OpenTelemetry span export for the distance
// matrix provider's HTTP calls and the optimize pipeline's stage
// transitions. An empty OTLPEndpoint keeps tracing a no-op: spans are
// still created everywhere they're instrumented, so code paths never
// have to branch on whether tracing is enabled, but they're dropped by
// the default no-op TracerProvider rather than exported anywhere.
type TracingConfig struct {
	Enabled      bool    `koanf:"enabled"`
	OTLPEndpoint string  `koanf:"otlp_endpoint"`
	SampleRatio  float64 `koanf:"sample_ratio"`
}

// Validate checks the invariants the rest of the engine relies on.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Retry.MaxRetries < 0 {
		errs = append(errs, "retry.max_retries must be >= 0")
	}

	if c.Solver.DistanceScalingFactor <= 0 {
		errs = append(errs, "solver.distance_scaling_factor must be > 0")
	}
	if c.Solver.TimeScalingFactor <= 0 {
		errs = append(errs, "solver.time_scaling_factor must be > 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IsProduction reports whether the configured environment is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
