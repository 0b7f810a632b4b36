package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/boolean-maybe/wikinav/internal/logging"
)

// ValidationError is one invalid configuration field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the configuration. All problems are joined into one error.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(field string, value any, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
	}

	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			invalid("api.base_url", c.API.BaseURL, "must be an http(s) URL")
		}
	}
	if c.API.Timeout <= 0 {
		invalid("api.timeout", c.API.Timeout, "must be positive")
	}
	if c.API.SearchLimit < 1 || c.API.SearchLimit > 500 {
		invalid("api.search_limit", c.API.SearchLimit, "must be between 1 and 500")
	}
	if c.TOC.MinLevel < 0 || c.TOC.MinLevel > 6 {
		invalid("toc.min_level", c.TOC.MinLevel, "must be between 0 and 6 (0 means the format default)")
	}
	switch strings.ToLower(c.TOC.Position) {
	case PositionLeft, PositionRight, "":
	default:
		invalid("toc.position", c.TOC.Position, "invalid position %q; must be one of: left, right", c.TOC.Position)
	}
	if c.Logging.Level != "" && !logging.ValidLevel(c.Logging.Level) {
		invalid("logging.level", c.Logging.Level, "invalid level %q; must be one of: debug, info, warn, error", c.Logging.Level)
	}
	if c.History < 0 {
		invalid("history", c.History, "must be >= 0 (0 means unbounded)")
	}
	return errors.Join(errs...)
}
