package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/boolean-maybe/wikinav/wikinav"
)

// PrinterColors are lipgloss colors (ANSI numbers or "#rrggbb") for print output.
type PrinterColors struct {
	Heading string
	Link    string
	Code    string
}

// DefaultPrinterColors returns the built-in print colors.
func DefaultPrinterColors() PrinterColors {
	return PrinterColors{Heading: "11", Link: "33", Code: "114"}
}

// Printer writes a laid-out article to a stream, styled with lipgloss when color is on.
type Printer struct {
	w        io.Writer
	color    bool
	renderer *lipgloss.Renderer

	// ListLinks appends a numbered list of link targets after the article.
	ListLinks bool

	heading lipgloss.Style
	link    lipgloss.Style
	code    lipgloss.Style
}

// NewPrinter creates a printer writing to w. Without color the output is plain text.
func NewPrinter(w io.Writer, color bool, colors PrinterColors) *Printer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	def := DefaultPrinterColors()
	pick := func(v, fallback string) lipgloss.Color {
		if v == "" {
			return lipgloss.Color(fallback)
		}
		return lipgloss.Color(v)
	}
	return &Printer{
		w:        w,
		color:    color,
		renderer: r,
		heading:  r.NewStyle().Bold(true).Foreground(pick(colors.Heading, def.Heading)),
		link:     r.NewStyle().Underline(true).Foreground(pick(colors.Link, def.Link)),
		code:     r.NewStyle().Foreground(pick(colors.Code, def.Code)),
	}
}

// Print lays doc out at width columns and writes it.
func (p *Printer) Print(doc *wikinav.Document, width int) error {
	layout := wikinav.NewLayout(doc, width)
	for _, line := range layout.Lines {
		if _, err := fmt.Fprintln(p.w, p.RenderLine(line)); err != nil {
			return fmt.Errorf("write article: %w", err)
		}
	}
	if !p.ListLinks || len(doc.Links) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(p.w, "\n%s\n", p.style(wikinav.StyleHeading, "Links")); err != nil {
		return fmt.Errorf("write links: %w", err)
	}
	for _, l := range doc.Links {
		if _, err := fmt.Fprintf(p.w, "%4d  %s  %s\n", l.ID+1, l.Text, p.style(wikinav.StyleLink, l.Target)); err != nil {
			return fmt.Errorf("write links: %w", err)
		}
	}
	return nil
}

// RenderLine returns one layout line as a string, with ANSI styling when color is on.
func (p *Printer) RenderLine(line wikinav.Line) string {
	if !p.color {
		return line.Text()
	}
	var sb strings.Builder
	for _, s := range line.Spans {
		sb.WriteString(p.style(s.Style, s.Text))
	}
	return sb.String()
}

func (p *Printer) style(st wikinav.Style, text string) string {
	if !p.color || text == "" {
		return text
	}
	var ls lipgloss.Style
	switch {
	case st.Has(wikinav.StyleHeading):
		ls = p.heading
	case st.Has(wikinav.StyleLink):
		ls = p.link
	case st.Has(wikinav.StyleCode):
		ls = p.code
	default:
		ls = p.renderer.NewStyle()
	}
	if st.Has(wikinav.StyleBold) {
		ls = ls.Bold(true)
	}
	if st.Has(wikinav.StyleItalic) {
		ls = ls.Italic(true)
	}
	return ls.Render(text)
}
