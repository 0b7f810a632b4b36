// Package config loads the wikinav configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/boolean-maybe/wikinav/wikinav"
)

// TOC panel positions.
const (
	PositionLeft  = "left"
	PositionRight = "right"
)

// Config is the complete configuration.
type Config struct {
	API         APIConfig     `yaml:"api"`
	TOC         TOCConfig     `yaml:"toc"`
	Logging     LoggingConfig `yaml:"logging"`
	Theme       ThemeConfig   `yaml:"theme"`
	Confirm     bool          `yaml:"confirm"`
	History     int           `yaml:"history"`
	SearchRoots []string      `yaml:"search_roots,omitempty"`
}

// APIConfig configures the MediaWiki client.
type APIConfig struct {
	// BaseURL overrides the api.php endpoint derived from Language.
	BaseURL     string        `yaml:"base_url,omitempty"`
	Language    string        `yaml:"language"`
	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`
	SearchLimit int           `yaml:"search_limit"`
}

// TOCConfig configures the table of contents.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	MinLevel int    `yaml:"min_level"`
	Position string `yaml:"position"`
}

// LoggingConfig configures logging. An empty File logs to stderr, which the terminal UI
// turns into no logging at all.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// ThemeConfig holds color names or "#rrggbb" values. Empty values keep the built-in colors.
type ThemeConfig struct {
	Text       string `yaml:"text,omitempty"`
	Background string `yaml:"background,omitempty"`
	Heading    string `yaml:"heading,omitempty"`
	Link       string `yaml:"link,omitempty"`
	Code       string `yaml:"code,omitempty"`
	SelectedFg string `yaml:"selected_fg,omitempty"`
	SelectedBg string `yaml:"selected_bg,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Language:    "en",
			UserAgent:   "wikinav (https://github.com/boolean-maybe/wikinav)",
			Timeout:     15 * time.Second,
			SearchLimit: 10,
		},
		TOC: TOCConfig{
			Enabled:  true,
			Position: PositionLeft,
		},
		Logging: LoggingConfig{Level: "info"},
		Confirm: true,
		History: 50,
	}
}

// DefaultPath returns the config file location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	return filepath.Join(dir, "wikinav", "config.yaml"), nil
}

// Endpoint returns the api.php URL: BaseURL when set, else the Wikipedia of Language.
func (c *Config) Endpoint() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	lang := strings.TrimSpace(c.API.Language)
	if lang == "" {
		lang = "en"
	}
	return "https://" + lang + ".wikipedia.org/w/api.php"
}

// TOCPosition returns the configured panel side.
func (c *Config) TOCPosition() wikinav.TOCPosition {
	if strings.EqualFold(c.TOC.Position, PositionRight) {
		return wikinav.TOCRight
	}
	return wikinav.TOCLeft
}

// ParserOptions returns the parser settings derived from the configuration.
func (c *Config) ParserOptions() wikinav.ParserOptions {
	return wikinav.ParserOptions{TOC: c.TOC.Enabled, MinHeadingLevel: c.TOC.MinLevel}
}

// ViewConfig returns the article view settings derived from the configuration.
func (c *Config) ViewConfig() wikinav.ViewConfig {
	return wikinav.ViewConfig{
		TOC:         c.TOC.Enabled,
		TOCPosition: c.TOCPosition(),
		HistoryMax:  c.History,
	}
}
