package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// envVarPrefix is the prefix for all wikinav environment variables.
const envVarPrefix = "WIKINAV_"

// envOverrides maps environment variable names (without prefix) to setters.
var envOverrides = map[string]func(c *Config, v string) error{
	"BASE_URL":  func(c *Config, v string) error { c.API.BaseURL = v; return nil },
	"LANGUAGE":  func(c *Config, v string) error { c.API.Language = v; return nil },
	"LOG_LEVEL": func(c *Config, v string) error { c.Logging.Level = v; return nil },
	"LOG_FILE":  func(c *Config, v string) error { c.Logging.File = v; return nil },
	"TOC_POSITION": func(c *Config, v string) error {
		c.TOC.Position = v
		return nil
	},
	"TOC": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("expected true/false/1/0")
		}
		c.TOC.Enabled = b
		return nil
	},
	"CONFIRM": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("expected true/false/1/0")
		}
		c.Confirm = b
		return nil
	},
	"TIMEOUT": func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.New("expected a duration such as 10s")
		}
		c.API.Timeout = d
		return nil
	},
}

// ApplyEnv applies WIKINAV_* environment variable overrides.
func (c *Config) ApplyEnv() error {
	for suffix, set := range envOverrides {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := set(c, value); err != nil {
			return fmt.Errorf("invalid value for %s: %q: %w", name, value, err)
		}
	}
	return nil
}
