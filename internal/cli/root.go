// Package cli provides the Cobra command structure for wikinav.
package cli

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/boolean-maybe/wikinav/internal/config"
	"github.com/boolean-maybe/wikinav/internal/logging"
	"github.com/boolean-maybe/wikinav/loaders"
	"github.com/boolean-maybe/wikinav/wikinav"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// options are the global flags and the configuration they select.
type options struct {
	configPath string
	debug      bool
	cfg        *config.Config
}

// NewRootCommand creates the root wikinav command with all subcommands.
// Without a subcommand it behaves like "open".
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "wikinav [title|file|url]",
		Short: "Read Wikipedia articles in the terminal",
		Long: `wikinav is a terminal encyclopedia viewer.

It fetches articles from Wikipedia (or any MediaWiki), local Markdown and HTML
files or web pages, lays them out for the terminal and lets you move between
the links of an article with the arrow keys.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")

	rootCmd.AddCommand(newOpenCommand(opts))
	rootCmd.AddCommand(newPrintCommand(opts))
	rootCmd.AddCommand(newSearchCommand(opts))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

func (o *options) load() error {
	path := o.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logging.Default().Debug("no user config directory", logging.FieldError, err)
		}
		path = p
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}
	logging.SetDefault(logging.New(cfg.Logging.Level, os.Stderr))
	logging.Default().Debug("configuration loaded", logging.FieldConfig, path)
	o.cfg = cfg
	return nil
}

// config returns the loaded configuration, or the defaults when the command runs without
// the root pre-run hook.
func (o *options) config() *config.Config {
	if o.cfg == nil {
		o.cfg = config.Default()
	}
	return o.cfg
}

// providers builds the content sources: the MediaWiki client and a router that sends
// everything that is not a wiki link to the file and web loader.
func (o *options) providers(logger *log.Logger) (*loaders.Router, *loaders.Wikipedia) {
	cfg := o.config()
	client := &http.Client{Timeout: cfg.API.Timeout}
	wiki := &loaders.Wikipedia{
		BaseURL:   cfg.Endpoint(),
		UserAgent: cfg.API.UserAgent,
		Client:    client,
		Limit:     cfg.API.SearchLimit,
		Logger:    logger,
	}
	roots := cfg.SearchRoots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	files := &loaders.FileHTTP{
		SearchRoots: roots,
		Client:      client,
		UserAgent:   cfg.API.UserAgent,
		Logger:      logger,
	}
	return &loaders.Router{Wiki: wiki, Files: files}, wiki
}

func (o *options) fetcher(provider wikinav.ContentProvider, logger *log.Logger) *wikinav.ContentFetcher {
	popts := o.config().ParserOptions()
	popts.Logger = logger
	return wikinav.NewContentFetcher(provider, popts)
}

// articleTarget turns a command-line argument into a link target: URLs and existing
// files are used as they are, anything else is an article title.
func articleTarget(arg string) string {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "":
		return ""
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return arg
	}
	if _, err := os.Stat(arg); err == nil {
		if abs, err := filepath.Abs(arg); err == nil {
			return abs
		}
		return arg
	}
	if loaders.IsWikiTarget(arg) {
		return arg
	}
	return loaders.WikiTarget(arg)
}

func errNoTarget(what string) error {
	return fmt.Errorf("%s needs an article title, a file or a URL", what)
}
