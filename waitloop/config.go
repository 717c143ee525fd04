package waitloop

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/probekit/probekit/envcfg"
)

const (
	// Built-in process-wide defaults: a typical UI poll cadence. Overridable
	// via the environment (DefaultConfig) or a config file (LoadConfig).
	defaultTimeout  = 5 * time.Second
	defaultInterval = 500 * time.Millisecond

	envTimeout  = "WAITLOOP_TIMEOUT"
	envInterval = "WAITLOOP_INTERVAL"
)

// ErrNegativeDuration is returned when a configured timeout or interval is
// negative. Both must be >= 0; zero is allowed (a zero interval degenerates to
// a busy recheck, a zero timeout to a single looped pass).
var ErrNegativeDuration = errors.New("duration must not be negative")

// Config is the effective timing for a wait: how long to keep rechecking
// (Timeout) and how long to pause between successful checks (Interval).
// Immutable once constructed; per-call overrides produce a new value.
type Config struct {
	Timeout  time.Duration
	Interval time.Duration
}

// DefaultConfig returns the process-wide default configuration: built-in
// values overlaid with the WAITLOOP_TIMEOUT and WAITLOOP_INTERVAL environment
// variables (Go duration syntax, e.g. "5s", "250ms").
func DefaultConfig() Config {
	return Config{
		Timeout: envcfg.Duration(envTimeout,
			envcfg.Default(defaultTimeout)).ValueOrElse(defaultTimeout),
		Interval: envcfg.Duration(envInterval,
			envcfg.Default(defaultInterval)).ValueOrElse(defaultInterval),
	}
}

// fileConfig is the YAML form of Config. Durations are Go duration strings so
// the file reads the same way the env vars do.
type fileConfig struct {
	Timeout  string `yaml:"timeout"`
	Interval string `yaml:"interval"`
}

// LoadConfig reads a Config from a YAML file of the form:
//
//	timeout: 10s
//	interval: 250ms
//
// Absent fields fall back to the built-in defaults. Negative durations are
// rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading wait config %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parsing wait config %s: %w", path, err)
	}

	cfg := Config{Timeout: defaultTimeout, Interval: defaultInterval}

	if file.Timeout != "" {
		cfg.Timeout, err = parseFileDuration("timeout", file.Timeout)
		if err != nil {
			return Config{}, err
		}
	}

	if file.Interval != "" {
		cfg.Interval, err = parseFileDuration("interval", file.Interval)
		if err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func parseFileDuration(field, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", field, raw, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("%s %q: %w", field, raw, ErrNegativeDuration)
	}

	return d, nil
}
