package wikinav

import (
	"math"

	"github.com/charmbracelet/log"
)

// LinkIndex provides directional selection over the link occurrences of a Layout.
//
// The occurrences must be in reading order (top to bottom, then left to right); up/down
// moves are resolved in coordinate space, left/right moves in index space.
type LinkIndex struct {
	links   []LinkOccurrence
	current int
	logger  *log.Logger
}

// NewLinkIndex creates an index over occurrences. The selection starts at the first link.
func NewLinkIndex(occurrences []LinkOccurrence, logger *log.Logger) *LinkIndex {
	if logger == nil {
		logger = log.Default()
	}
	links := make([]LinkOccurrence, len(occurrences))
	copy(links, occurrences)
	logger.Debug("creating link index", "links", len(links))
	return &LinkIndex{links: links, logger: logger}
}

// RegisteredLinks returns the number of links in the index.
func (x *LinkIndex) RegisteredLinks() int { return len(x.links) }

// CurrentIndex returns the position of the selection in reading order, or -1 when empty.
func (x *LinkIndex) CurrentIndex() int {
	if len(x.links) == 0 {
		return -1
	}
	return x.current
}

// CurrentLink returns the id of the selected link.
func (x *LinkIndex) CurrentLink() (int, bool) {
	if len(x.links) == 0 {
		return 0, false
	}
	return x.links[x.current].ID, true
}

// CurrentLinkPos returns the screen position of the selected link.
func (x *LinkIndex) CurrentLinkPos() (col, row int, ok bool) {
	if len(x.links) == 0 {
		return 0, 0, false
	}
	l := x.links[x.current]
	return l.X, l.Y, true
}

func (x *LinkIndex) empty() bool {
	if len(x.links) == 0 {
		x.logger.Warn("no links are registered, aborting")
		return true
	}
	return false
}

// MoveUp selects the nearest preceding link at least n rows above the current one,
// or the first link when there is none.
func (x *LinkIndex) MoveUp(n int) {
	if x.empty() {
		return
	}
	n = max(n, 0)
	targetY := max(x.links[x.current].Y-n, 0)

	for i := x.current - 1; i >= 0; i-- {
		if x.links[i].Y <= targetY {
			x.current = i
			return
		}
	}
	x.current = 0
}

// MoveDown selects the first link from the current one onward that is at least n rows
// below it, or the last link when there is none.
func (x *LinkIndex) MoveDown(n int) {
	if x.empty() {
		return
	}
	n = max(n, 0)
	y := x.links[x.current].Y
	targetY := math.MaxInt
	if n <= math.MaxInt-y {
		targetY = y + n
	}

	for i := x.current; i < len(x.links); i++ {
		if x.links[i].Y >= targetY {
			x.current = i
			return
		}
	}
	x.current = len(x.links) - 1
}

// MoveLeft selects the link n positions earlier in reading order, stopping at the first.
func (x *LinkIndex) MoveLeft(n int) {
	if x.empty() {
		return
	}
	x.current = max(x.current-max(n, 0), 0)
}

// MoveRight selects the link n positions later in reading order, stopping at the last.
func (x *LinkIndex) MoveRight(n int) {
	if x.empty() {
		return
	}
	n = max(n, 0)
	if n >= len(x.links)-x.current {
		x.current = len(x.links) - 1
		return
	}
	x.current += n
}

// SetCurrentLink selects the link with the given id. Unknown ids select the first link.
func (x *LinkIndex) SetCurrentLink(id int) {
	if x.empty() {
		return
	}
	selection := 0
	for i, l := range x.links {
		if l.ID == id {
			selection = i
			break
		}
	}
	x.logger.Debug("replacing the current link", "from", x.current, "to", selection)
	x.current = selection
}

// JumpToLine selects the first link on or below row y, or the last link when there is none.
func (x *LinkIndex) JumpToLine(y int) {
	if x.empty() {
		return
	}
	for i, l := range x.links {
		if l.Y >= y {
			x.current = i
			return
		}
	}
	x.current = len(x.links) - 1
}

// Links returns a copy of the indexed occurrences.
func (x *LinkIndex) Links() []LinkOccurrence {
	out := make([]LinkOccurrence, len(x.links))
	copy(out, x.links)
	return out
}
