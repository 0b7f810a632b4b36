package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/boolean-maybe/wikinav/internal/logging"
	"github.com/boolean-maybe/wikinav/loaders"
)

const defaultSnippetWidth = 60

func newSearchCommand(opts *options) *cobra.Command {
	var offset int
	var snippetWidth int
	var colorMode string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Wikipedia and list matching articles",
		Long: `Run a full-text search and print one page of results.

Use --offset with the value printed below the table to fetch the next page.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Default()
			_, wiki := opts.providers(logger)
			query := strings.Join(args, " ")

			page, err := wiki.Search(cmd.Context(), query, offset)
			if err != nil {
				return err
			}
			logger.Debug("search results", logging.FieldQuery, query, logging.FieldOffset, offset,
				logging.FieldResults, len(page.Results))

			out := cmd.OutOrStdout()
			useColor, err := colorEnabled(colorMode, out)
			if err != nil {
				return err
			}
			writeSearchPage(out, page, offset, snippetWidth, useColor)
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "result offset to start from")
	cmd.Flags().IntVar(&snippetWidth, "snippet-width", defaultSnippetWidth, "maximum snippet width in columns")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize output: auto, always, never")

	return cmd
}

// writeSearchPage prints results as a table: number, title, word count, last edit and a
// snippet with the matched words highlighted.
func writeSearchPage(w io.Writer, page *loaders.SearchPage, offset, snippetWidth int, useColor bool) {
	bold := color.New(color.Bold)
	match := color.New(color.FgYellow, color.Bold)
	dim := color.New(color.Faint)
	for _, c := range []*color.Color{bold, match, dim} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if len(page.Results) == 0 {
		_, _ = fmt.Fprintf(w, "No results for %q.\n", page.Query)
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("TITLE"), bold.Sprint("WORDS"), bold.Sprint("UPDATED"), bold.Sprint("SNIPPET"))
	for i, r := range page.Results {
		updated := ""
		if !r.Timestamp.IsZero() {
			updated = r.Timestamp.Format("2006-01-02")
		}
		tbl.AddRow(
			strconv.Itoa(offset+i+1),
			r.Title,
			strconv.Itoa(r.WordCount),
			updated,
			snippet(r.Snippet, snippetWidth, match),
		)
	}
	_, _ = fmt.Fprintln(w, tbl)

	footer := fmt.Sprintf("%d-%d of %d results", offset+1, offset+len(page.Results), page.TotalHits)
	if page.More {
		footer += fmt.Sprintf(", next page: --offset %d", page.NextOffset)
	}
	_, _ = fmt.Fprintln(w, dim.Sprint(footer))
}

// snippet renders a search snippet on one line, highlighting matches and cutting it to width.
func snippet(raw string, width int, match *color.Color) string {
	var sb strings.Builder
	for _, seg := range loaders.SnippetSegments(raw) {
		text := strings.Join(strings.Fields(seg.Text), " ")
		if seg.Text != "" && strings.TrimSpace(seg.Text) != seg.Text {
			text = padLike(seg.Text, text)
		}
		if seg.Match {
			sb.WriteString(match.Sprint(text))
		} else {
			sb.WriteString(text)
		}
	}
	if width <= 0 {
		return sb.String()
	}
	return truncate.StringWithTail(sb.String(), uint(width), "…")
}

// padLike keeps a single leading or trailing space of original around collapsed text.
func padLike(original, collapsed string) string {
	if strings.TrimLeft(original, " \t\n") != original {
		collapsed = " " + collapsed
	}
	if strings.TrimRight(original, " \t\n") != original && collapsed != " " {
		collapsed += " "
	}
	return collapsed
}
