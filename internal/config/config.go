// Package config handles run configuration: defaults, environment
// overrides, and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	// APIURL is the control-plane base URL.
	APIURL string `yaml:"api_url"`
	// GiteaURL is the git-hosting base URL.
	GiteaURL string `yaml:"gitea_url"`
	// HTTPTimeout bounds every control-plane call.
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	// RPS limits control-plane request rate. 0 means unlimited.
	RPS int `yaml:"rps"`
	// ScratchRoot is where per-run scratch directories are created.
	// Empty means the system temp directory.
	ScratchRoot string `yaml:"scratch_root"`

	Settle SettleConfig `yaml:"settle"`
}

// SettleConfig controls how the runner waits for the git host to catch up
// after a push, before dependent steps query the pushed state.
type SettleConfig struct {
	// Poll enables branch-visibility polling. When false the runner
	// falls back to a single fixed delay.
	Poll bool `yaml:"poll"`
	// Interval between polls.
	Interval time.Duration `yaml:"interval"`
	// MaxTries bounds the number of polls.
	MaxTries uint64 `yaml:"max_tries"`
	// FallbackDelay is the fixed post-push sleep used when Poll is false.
	FallbackDelay time.Duration `yaml:"fallback_delay"`
}

// Default returns the built-in configuration with environment overrides
// applied (API_URL, GITEA_URL).
func Default() Config {
	cfg := Config{
		APIURL:      "http://localhost:8080",
		GiteaURL:    "http://localhost:3000",
		HTTPTimeout: 30 * time.Second,
		Settle: SettleConfig{
			Poll:          true,
			Interval:      250 * time.Millisecond,
			MaxTries:      20,
			FallbackDelay: time.Second,
		},
	}
	if v := os.Getenv("API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("GITEA_URL"); v != "" {
		cfg.GiteaURL = v
	}
	return cfg
}

// Load reads a YAML configuration file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}
