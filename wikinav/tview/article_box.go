package tview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/wikinav/wikinav"
)

// ArticleBox is a tview primitive that draws an ArticleView and feeds it key and mouse input.
type ArticleBox struct {
	*tview.Box

	view        *wikinav.ArticleView
	theme       Theme
	placeholder string

	onActivate     func(*ArticleBox, wikinav.LinkActivation)
	onStateChanged func(*ArticleBox)
}

type boxState struct {
	doc    *wikinav.Document
	scroll int
	link   int
	toc    bool
}

// NewArticleBox wraps view. The view's activation handler is taken over by the box;
// use SetActivateHandler instead.
func NewArticleBox(view *wikinav.ArticleView) *ArticleBox {
	box := tview.NewBox()
	box.SetBorder(false)

	b := &ArticleBox{
		Box:   box,
		view:  view,
		theme: DefaultTheme(),
	}
	view.SetActivateHandler(func(a wikinav.LinkActivation) {
		if b.onActivate != nil {
			b.onActivate(b, a)
		}
	})
	return b
}

// View exposes the wrapped ArticleView.
func (b *ArticleBox) View() *wikinav.ArticleView { return b.view }

// SetTheme sets the colors used for drawing.
func (b *ArticleBox) SetTheme(t Theme) *ArticleBox {
	b.theme = t
	return b
}

// Theme returns the colors used for drawing.
func (b *ArticleBox) Theme() Theme { return b.theme }

// SetPlaceholder sets the text drawn while no article is loaded.
func (b *ArticleBox) SetPlaceholder(text string) *ArticleBox {
	b.placeholder = text
	return b
}

// SetActivateHandler sets the callback for Enter (or a double click) on a link.
func (b *ArticleBox) SetActivateHandler(handler func(*ArticleBox, wikinav.LinkActivation)) *ArticleBox {
	b.onActivate = handler
	return b
}

// SetStateChangedHandler sets a callback for selection, scroll, document and TOC changes.
func (b *ArticleBox) SetStateChangedHandler(handler func(*ArticleBox)) *ArticleBox {
	b.onStateChanged = handler
	return b
}

// Open displays doc and pushes the current article onto the history.
func (b *ArticleBox) Open(doc *wikinav.Document) {
	b.update(func() { b.view.Open(doc) })
}

// Load displays doc without touching the history.
func (b *ArticleBox) Load(doc *wikinav.Document) {
	b.update(func() { b.view.Load(doc) })
}

// Handle applies cmd to the view.
func (b *ArticleBox) Handle(cmd wikinav.Command) {
	b.update(func() { b.view.Handle(cmd) })
}

// JumpToTOCEntry scrolls to a TOC heading.
func (b *ArticleBox) JumpToTOCEntry(entry int) {
	b.update(func() { b.view.JumpToTOCEntry(entry) })
}

func (b *ArticleBox) snapshot() boxState {
	id, ok := b.view.Links().CurrentLink()
	if !ok {
		id = wikinav.NoLink
	}
	return boxState{doc: b.view.Document(), scroll: b.view.ScrollOffset(), link: id, toc: b.view.TOCVisible()}
}

func (b *ArticleBox) update(fn func()) {
	before := b.snapshot()
	fn()
	if b.snapshot() != before {
		b.fireStateChanged()
	}
}

func (b *ArticleBox) fireStateChanged() {
	if b.onStateChanged != nil {
		b.onStateChanged(b)
	}
}

// Draw renders the component.
func (b *ArticleBox) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
	x, y, width, height := b.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	b.update(func() {
		b.view.Resize(width)
		b.view.SetHeight(height)
	})

	if b.theme.Background != tcell.ColorDefault {
		bgStyle := tcell.StyleDefault.Background(b.theme.Background)
		for row := 0; row < height; row++ {
			for col := 0; col < width; col++ {
				screen.SetContent(x+col, y+row, ' ', nil, bgStyle)
			}
		}
	}

	if b.view.State() == wikinav.StateEmpty {
		if b.placeholder != "" {
			tview.Print(screen, b.placeholder, x, y+height/2, width, tview.AlignCenter, tcell.ColorGray)
		}
		return
	}

	for row, cells := range b.view.Render() {
		for col, cell := range cells {
			// second column of a wide glyph
			if cell.Rune == 0 {
				continue
			}
			screen.SetContent(x+col, y+row, cell.Rune, cell.Combining, b.theme.CellStyle(cell))
		}
	}
}

// InputHandler returns the input handler for this component.
func (b *ArticleBox) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return b.WrapInputHandler(func(event *tcell.EventKey, _ func(p tview.Primitive)) {
		if cmd, ok := KeyCommand(event); ok {
			b.Handle(cmd)
		}
	})
}

// MouseHandler returns the mouse handler for this component. A click selects a link,
// a double click activates it and the wheel scrolls.
func (b *ArticleBox) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return b.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		mx, my := event.Position()
		if !b.InRect(mx, my) {
			return false, nil
		}
		switch action {
		case tview.MouseLeftClick:
			setFocus(b)
			if id, ok := b.linkAt(mx, my); ok {
				b.update(func() { b.view.SelectLink(id) })
			}
			return true, nil
		case tview.MouseLeftDoubleClick:
			if id, ok := b.linkAt(mx, my); ok {
				b.update(func() {
					if b.view.SelectLink(id) {
						b.view.Activate()
					}
				})
			}
			return true, nil
		case tview.MouseScrollUp:
			b.Handle(wikinav.Command{Kind: wikinav.CmdScrollUp, Amount: wheelLines})
			return true, nil
		case tview.MouseScrollDown:
			b.Handle(wikinav.Command{Kind: wikinav.CmdScrollDown, Amount: wheelLines})
			return true, nil
		}
		return false, nil
	})
}

const wheelLines = 3

// linkAt returns the link drawn at screen position (sx, sy).
func (b *ArticleBox) linkAt(sx, sy int) (int, bool) {
	x, y, _, _ := b.GetInnerRect()
	grid := b.view.Render()
	row, col := sy-y, sx-x
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return wikinav.NoLink, false
	}
	id := grid[row][col].Link
	return id, id != wikinav.NoLink
}
