package tview

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/wikinav/wikinav"
)

// Theme maps article styles to terminal colors.
type Theme struct {
	Text       tcell.Color
	Background tcell.Color
	Heading    tcell.Color
	Link       tcell.Color
	Code       tcell.Color
	SelectedFg tcell.Color
	SelectedBg tcell.Color
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	return Theme{
		Text:       tcell.ColorDefault,
		Background: tcell.ColorDefault,
		Heading:    tcell.ColorYellow,
		Link:       tcell.ColorDodgerBlue,
		Code:       tcell.ColorLightGreen,
		SelectedFg: tcell.ColorBlack,
		SelectedBg: tcell.ColorDodgerBlue,
	}
}

// ThemeColors are color names or "#rrggbb" values, as found in the config file.
// Empty fields keep the default.
type ThemeColors struct {
	Text       string
	Background string
	Heading    string
	Link       string
	Code       string
	SelectedFg string
	SelectedBg string
}

// NewTheme builds a theme from color names on top of DefaultTheme.
func NewTheme(c ThemeColors) Theme {
	t := DefaultTheme()
	t.Text = ParseColor(c.Text, t.Text)
	t.Background = ParseColor(c.Background, t.Background)
	t.Heading = ParseColor(c.Heading, t.Heading)
	t.Link = ParseColor(c.Link, t.Link)
	t.Code = ParseColor(c.Code, t.Code)
	t.SelectedFg = ParseColor(c.SelectedFg, t.SelectedFg)
	t.SelectedBg = ParseColor(c.SelectedBg, t.SelectedBg)
	return t
}

// CellStyle returns the tcell style of one grid cell.
func (t Theme) CellStyle(c wikinav.Cell) tcell.Style {
	st := tcell.StyleDefault.Foreground(t.Text).Background(t.Background)
	switch {
	case c.Style.Has(wikinav.StyleHeading):
		st = st.Foreground(t.Heading).Bold(true)
	case c.Style.Has(wikinav.StyleLink):
		st = st.Foreground(t.Link).Underline(true)
	case c.Style.Has(wikinav.StyleCode):
		st = st.Foreground(t.Code)
	}
	if c.Style.Has(wikinav.StyleBold) {
		st = st.Bold(true)
	}
	if c.Style.Has(wikinav.StyleItalic) {
		st = st.Italic(true)
	}
	if c.Selected {
		st = st.Foreground(t.SelectedFg).Background(t.SelectedBg).Underline(false)
	}
	return st
}

// ParseColor accepts "#rrggbb" or a W3C/tcell color name. Empty or unknown
// values return fallback.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return fallback
		}
		r, okR := parseHexByte(s[1:3])
		g, okG := parseHexByte(s[3:5])
		b, okB := parseHexByte(s[5:7])
		if okR && okG && okB {
			return tcell.NewRGBColor(r, g, b)
		}
		return fallback
	}
	if c := tcell.GetColor(strings.ToLower(s)); c != tcell.ColorDefault {
		return c
	}
	if strings.EqualFold(s, "default") {
		return tcell.ColorDefault
	}
	return fallback
}

func parseHexByte(s string) (int32, bool) {
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0, false
	}
	if v < 0 || v > 255 {
		return 0, false
	}
	return int32(v), true
}
