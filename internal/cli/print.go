package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/boolean-maybe/wikinav/internal/logging"
	"github.com/boolean-maybe/wikinav/util"
)

const defaultPrintWidth = 80

func newPrintCommand(opts *options) *cobra.Command {
	var width int
	var color string
	var links bool

	cmd := &cobra.Command{
		Use:   "print <title|file|url>",
		Short: "Render an article to standard output",
		Long: `Fetch an article, lay it out for the terminal width and print it.

Colors are used when standard output is a terminal; use --color to force them
on or off.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := articleTarget(args[0])
			if target == "" {
				return errNoTarget("print")
			}
			logger := logging.Default()
			router, _ := opts.providers(logger)
			doc, err := opts.fetcher(router, logger).Fetch(cmd.Context(), target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			useColor, err := colorEnabled(color, out)
			if err != nil {
				return err
			}
			if width <= 0 {
				width = terminalWidth(out)
			}
			logger.Debug("printing article", logging.FieldTitle, doc.Title, logging.FieldWidth, width)

			theme := opts.config().Theme
			p := util.NewPrinter(out, useColor, util.PrinterColors{
				Heading: theme.Heading,
				Link:    theme.Link,
				Code:    theme.Code,
			})
			p.ListLinks = links
			return p.Print(doc, width)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "wrap width in columns (default: terminal width or 80)")
	cmd.Flags().StringVar(&color, "color", "auto", "colorize output: auto, always, never")
	cmd.Flags().BoolVar(&links, "links", false, "list link targets after the article")

	return cmd
}

// colorEnabled resolves a --color value for the writer.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return isTerminal(w), nil
	}
	return false, fmt.Errorf("invalid --color %q; must be one of: auto, always, never", mode)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && isTerminal(w) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultPrintWidth
}
