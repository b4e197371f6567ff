package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix    = "ROUTEOPT_"
	configEnvVar = "ROUTEOPT_CONFIG_PATH"
)

// Loader assembles a Config from defaults, an optional YAML file, and
// environment variables, each layer overriding the one before it.
type Loader struct {
	k           *koanf.Koanf
	configPaths []string
	envPrefix   string
}

// NewLoader builds a Loader with the given options applied over the
// defaults.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k: koanf.New("."),
		configPaths: []string{
			"config.yaml",
			"config/config.yaml",
			"/etc/routeopt/config.yaml",
		},
		envPrefix: envPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoaderOption customizes a Loader before Load is called.
type LoaderOption func(*Loader)

// WithConfigPaths overrides the file search path.
func WithConfigPaths(paths ...string) LoaderOption {
	return func(l *Loader) { l.configPaths = paths }
}

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) { l.envPrefix = prefix }
}

// Load reads defaults, then the first config file found, then
// environment variables (highest priority), and unmarshals + validates
// the result.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := l.loadConfigFile(); err != nil {
		fmt.Printf("warning: %v\n", err)
	}

	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *Loader) loadDefaults() error {
	defaults := map[string]any{
		"app.name":        "routeopt",
		"app.version":     "1.0.0",
		"app.environment": "development",
		"app.debug":       false,

		"log.level":       "info",
		"log.format":      "json",
		"log.output":      "stdout",
		"log.max_size":    100,
		"log.max_backups": 3,
		"log.max_age":     7,
		"log.compress":    true,

		"metrics.enabled":   true,
		"metrics.namespace": "routeopt",
		"metrics.subsystem": "engine",

		"cache.enabled":                            true,
		"cache.driver":                              "memory",
		"cache.host":                                "localhost",
		"cache.port":                                6379,
		"cache.db":                                  0,
		"cache.cache_expiry_days":                   7,
		"cache.optimization_result_cache_timeout":   15 * time.Minute,
		"cache.max_entries":                         10000,

		"matrix.google_maps_api_key": "",
		"matrix.use_api_by_default":  false,

		"retry.max_retries":         3,
		"retry.backoff_factor":      2.0,
		"retry.retry_delay_seconds": 1 * time.Second,

		"solver.time_limit_seconds":       10 * time.Second,
		"solver.distance_scaling_factor":  100,
		"solver.time_scaling_factor":      100,
		"solver.testing":                  false,

		"tracing.enabled":       false,
		"tracing.otlp_endpoint": "",
		"tracing.sample_ratio":  0.1,
	}

	return l.k.Load(confmap.Provider(defaults, "."), nil)
}

func (l *Loader) loadConfigFile() error {
	if configPath := os.Getenv(configEnvVar); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return l.k.Load(file.Provider(configPath), yaml.Parser())
		}
	}

	for _, path := range l.configPaths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		if _, err := os.Stat(absPath); err == nil {
			return l.k.Load(file.Provider(absPath), yaml.Parser())
		}
	}

	return fmt.Errorf("config file not found in paths: %v", l.configPaths)
}

func (l *Loader) loadEnv() error {
	return l.k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, l.envPrefix)),
			"_", ".",
		)
	}), nil)
}

// MustLoad loads the configuration or panics, for use in cmd/engine's
// wiring where a misconfigured process should not start.
func MustLoad(opts ...LoaderOption) *Config {
	cfg, err := NewLoader(opts...).Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Load loads the configuration with default options.
func Load() (*Config, error) {
	return NewLoader().Load()
}
