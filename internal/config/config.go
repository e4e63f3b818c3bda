// Package config holds the loop policy knobs. The thresholds used to be
// compiled-in; keeping them here lets the decision engine stay pure and lets
// a project tune them through .autobot/config.yml.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when config.yml is absent or leaves a field unset.
const (
	DefaultMaxIterations    = 50
	DefaultFailureThreshold = 3
	DefaultTestTimeout      = 120 * time.Second
)

// Config controls the decision engine and the post-edit gate.
type Config struct {
	// MaxIterations is the hard upper bound on continuation directives
	// issued for a single task.
	MaxIterations int `yaml:"max_iterations"`

	// FailureThreshold is the consecutive test failure count that escalates
	// to a human review block.
	FailureThreshold int `yaml:"failure_threshold"`

	// TestTimeoutSeconds bounds a single test command run.
	TestTimeoutSeconds int `yaml:"test_timeout_seconds"`
}

// Default returns the built-in policy values.
func Default() Config {
	return Config{
		MaxIterations:      DefaultMaxIterations,
		FailureThreshold:   DefaultFailureThreshold,
		TestTimeoutSeconds: int(DefaultTestTimeout / time.Second),
	}
}

// Load reads config from path. A missing file yields the defaults; a file
// that does not parse is an error so a typo never silently reverts policy.
// Unset fields fall back to their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if file.MaxIterations > 0 {
		cfg.MaxIterations = file.MaxIterations
	}
	if file.FailureThreshold > 0 {
		cfg.FailureThreshold = file.FailureThreshold
	}
	if file.TestTimeoutSeconds > 0 {
		cfg.TestTimeoutSeconds = file.TestTimeoutSeconds
	}

	return cfg, nil
}

// LoadOrDefault reads config from path and falls back to the defaults on any
// error. Hook invocations use this so a bad config file degrades policy to
// the defaults instead of crashing the hook.
func LoadOrDefault(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// TestTimeout returns the test run bound as a duration.
func (c Config) TestTimeout() time.Duration {
	return time.Duration(c.TestTimeoutSeconds) * time.Second
}
