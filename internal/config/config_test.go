package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		App: AppConfig{Name: "routeopt"},
		Log: LogConfig{Level: "info"},
		Retry: RetryConfig{MaxRetries: 3},
		Solver: SolverConfig{
			DistanceScalingFactor: 100,
			TimeScalingFactor:     100,
		},
	}
}

func TestConfig_Validate_OK(t *testing.T) {
	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Errorf("expected valid config to pass, got %v", err)
	}
}

func TestConfig_Validate_MissingAppName(t *testing.T) {
	c := validConfig()
	c.App.Name = ""
	if err := c.Validate(); err == nil {
		t.Error("expected error when app.name is empty")
	}
}

func TestConfig_Validate_BadLogLevel(t *testing.T) {
	c := validConfig()
	c.Log.Level = "verbose"
	if err := c.Validate(); err == nil {
		t.Error("expected error for an invalid log level")
	}
}

func TestConfig_Validate_LogLevelCaseInsensitive(t *testing.T) {
	c := validConfig()
	c.Log.Level = "INFO"
	if err := c.Validate(); err != nil {
		t.Errorf("expected log level matching to be case-insensitive, got %v", err)
	}
}

func TestConfig_Validate_NegativeRetries(t *testing.T) {
	c := validConfig()
	c.Retry.MaxRetries = -1
	if err := c.Validate(); err == nil {
		t.Error("expected error for negative max_retries")
	}
}

func TestConfig_Validate_NonPositiveScalingFactors(t *testing.T) {
	c := validConfig()
	c.Solver.DistanceScalingFactor = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for zero distance_scaling_factor")
	}

	c2 := validConfig()
	c2.Solver.TimeScalingFactor = -1
	if err := c2.Validate(); err == nil {
		t.Error("expected error for negative time_scaling_factor")
	}
}

func TestConfig_Validate_AccumulatesMultipleErrors(t *testing.T) {
	c := Config{}
	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation to fail on a zero-value config")
	}
	for _, want := range []string{"app.name", "log.level", "solver.distance_scaling_factor", "solver.time_scaling_factor"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected the error to report %s among all failures, got %v", want, err)
		}
	}
}

func TestCacheConfig_Address(t *testing.T) {
	c := CacheConfig{Host: "localhost", Port: 6379}
	if got := c.Address(); got != "localhost:6379" {
		t.Errorf("Address() = %q, want %q", got, "localhost:6379")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cases := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"prod", true},
		{"development", false},
		{"", false},
	}
	for _, c := range cases {
		cfg := &Config{App: AppConfig{Environment: c.env}}
		if got := cfg.IsProduction(); got != c.want {
			t.Errorf("IsProduction() with env=%q = %v, want %v", c.env, got, c.want)
		}
	}
}
