package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/boolean-maybe/wikinav/internal/config"
	"github.com/boolean-maybe/wikinav/internal/logging"
	wtview "github.com/boolean-maybe/wikinav/wikinav/tview"
)

func newOpenCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "open [title|file|url]",
		Short: "Browse an article in the terminal UI",
		Long: `Open an article in the interactive viewer.

The argument may be a Wikipedia article title, a /wiki/ link, a local Markdown
or HTML file or a URL. Without an argument the search prompt is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd, opts, args)
		},
	}
}

func runOpen(cmd *cobra.Command, opts *options, args []string) error {
	cfg := opts.config()
	logger, closer, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	prev := logging.Default()
	logging.SetDefault(logger)
	defer logging.SetDefault(prev)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	router, wiki := opts.providers(logger)
	view := cfg.ViewConfig()
	b := newBrowser(ctx, browserConfig{
		Fetcher: opts.fetcher(router, logger),
		Search:  wiki,
		View:    view,
		Theme:   themeFromConfig(cfg.Theme),
		Confirm: cfg.Confirm,
		Logger:  logger,
	})

	if len(args) > 0 {
		b.open(articleTarget(args[0]))
	} else {
		b.openSearch()
	}
	return b.run()
}

// tuiLogger returns the logger for the terminal UI: the configured log file, or nothing,
// since stderr shares the screen.
func tuiLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	if cfg.Logging.File == "" {
		return logging.Discard(), io.NopCloser(nil), nil
	}
	return logging.OpenFile(cfg.Logging.File, cfg.Logging.Level)
}

func themeFromConfig(t config.ThemeConfig) wtview.Theme {
	return wtview.NewTheme(wtview.ThemeColors{
		Text:       t.Text,
		Background: t.Background,
		Heading:    t.Heading,
		Link:       t.Link,
		Code:       t.Code,
		SelectedFg: t.SelectedFg,
		SelectedBg: t.SelectedBg,
	})
}
