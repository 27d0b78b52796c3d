package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hnb22/gofpa/apfloat"
)

// Config carries the runtime settings of the fpacalc harness. Zero values
// are filled in by Default; files loaded with Load override defaults and
// command-line flags override both.
type Config struct {
	Precision  int    `toml:"precision"`
	Strategy   string `toml:"strategy"` // "schoolbook" or "karatsuba"
	SinMaxIter int    `toml:"sin_max_iter"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	MetricsAddr string `toml:"metrics_addr"` // empty disables the listener
}

func Default() Config {
	return Config{
		Precision:  64,
		Strategy:   "schoolbook",
		SinMaxIter: apfloat.DefaultSinMaxIter,
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Precision < apfloat.MinPrecision {
		return fmt.Errorf("invalid precision: %d (must be >= %d)", c.Precision, apfloat.MinPrecision)
	}
	if _, err := apfloat.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("invalid strategy: %q (must be schoolbook or karatsuba)", c.Strategy)
	}
	if c.SinMaxIter <= 0 {
		return fmt.Errorf("invalid sin_max_iter: %d (must be positive)", c.SinMaxIter)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log_format: %q (must be console or json)", c.LogFormat)
	}
	return nil
}
