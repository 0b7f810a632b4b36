package wikinav

import "github.com/mattn/go-runewidth"

// Cell is one character cell of the terminal grid.
//
// A Rune of 0 marks the second column of a wide glyph. Combining holds zero-width runes
// drawn on top of Rune.
type Cell struct {
	Rune      rune
	Combining []rune
	Style     Style
	Link      int
	Selected  bool
}

// Selection is the highlighted link: the row and [X, End) columns of its first line.
type Selection struct {
	ID  int
	X   int
	Y   int
	End int
}

// RenderGrid converts lines into a width x height grid of cells. firstRow is the layout row
// of lines[0] and is used to place the selection; sel may be nil.
func RenderGrid(lines []Line, firstRow int, sel *Selection, width, height int) [][]Cell {
	if width <= 0 || height <= 0 {
		return nil
	}
	grid := make([][]Cell, height)
	for row := range grid {
		cells := make([]Cell, width)
		for col := range cells {
			cells[col] = Cell{Rune: ' ', Link: NoLink}
		}
		grid[row] = cells
		if row >= len(lines) {
			continue
		}

		selRow := sel != nil && sel.Y == firstRow+row
		col := 0
	spans:
		for _, span := range lines[row].Spans {
			for _, r := range span.Text {
				rw := runewidth.RuneWidth(r)
				if rw == 0 {
					if col > 0 {
						cells[col-1].Combining = append(cells[col-1].Combining, r)
					}
					continue
				}
				if col+rw > width {
					break spans
				}
				selected := selRow && col >= sel.X && col < sel.End
				cells[col] = Cell{Rune: r, Style: span.Style, Link: span.Link, Selected: selected}
				for k := 1; k < rw; k++ {
					cells[col+k] = Cell{Style: span.Style, Link: span.Link, Selected: selected}
				}
				col += rw
			}
		}
	}
	return grid
}
