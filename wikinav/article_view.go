package wikinav

import (
	"github.com/charmbracelet/log"
)

// ViewState is the state of an ArticleView.
type ViewState int

const (
	StateEmpty ViewState = iota
	StateDisplaying
)

func (s ViewState) String() string {
	if s == StateDisplaying {
		return "displaying"
	}
	return "empty"
}

// TOCPosition places the table of contents panel.
type TOCPosition int

const (
	TOCLeft TOCPosition = iota
	TOCRight
)

// Direction of a link navigation move.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// CommandKind identifies a Command.
type CommandKind int

const (
	CmdMoveUp CommandKind = iota
	CmdMoveDown
	CmdMoveLeft
	CmdMoveRight
	CmdActivate
	CmdResize
	CmdScrollUp
	CmdScrollDown
	CmdPageUp
	CmdPageDown
	CmdHome
	CmdEnd
	CmdBack
	CmdForward
	CmdToggleTOC
)

// Command is one input event for an ArticleView. Amount is used by moves and scrolls,
// Width by CmdResize.
type Command struct {
	Kind   CommandKind
	Amount int
	Width  int
}

// LinkActivation is emitted when the user commits to the selected link.
type LinkActivation struct {
	ID     int
	Target string
	Text   string
}

// ViewConfig configures an ArticleView. HistoryMax bounds the back and forward stacks;
// 0 keeps every visited article.
type ViewConfig struct {
	Width       int
	Height      int
	TOC         bool
	TOCPosition TOCPosition
	HistoryMax  int
	Logger      *log.Logger
	// OnActivate receives link activations. May be nil.
	OnActivate func(LinkActivation)
}

type pageState struct {
	doc     *Document
	scroll  int
	link    int
	hasLink bool
}

// ArticleView holds the displayed Document with its Layout and LinkIndex and turns
// navigation input into selection and scroll changes. It performs no I/O.
type ArticleView struct {
	cfg    ViewConfig
	logger *log.Logger

	doc    *Document
	layout *Layout
	index  *LinkIndex

	width      int
	height     int
	scroll     int
	tocVisible bool

	history    *History[pageState]
	onActivate func(LinkActivation)
}

// NewArticleView creates an empty view.
func NewArticleView(cfg ViewConfig) *ArticleView {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &ArticleView{
		cfg:        cfg,
		logger:     logger,
		width:      max(cfg.Width, 0),
		height:     max(cfg.Height, 0),
		history:    NewHistory[pageState](max(cfg.HistoryMax, 0)),
		onActivate: cfg.OnActivate,
		index:      NewLinkIndex(nil, logger),
	}
}

// SetActivateHandler sets the callback receiving link activations.
func (v *ArticleView) SetActivateHandler(fn func(LinkActivation)) { v.onActivate = fn }

// State returns the current state.
func (v *ArticleView) State() ViewState {
	if v.doc == nil {
		return StateEmpty
	}
	return StateDisplaying
}

// Document returns the displayed document, nil when empty.
func (v *ArticleView) Document() *Document { return v.doc }

// Layout returns the current layout, nil when empty.
func (v *ArticleView) Layout() *Layout { return v.layout }

// Links returns the link index of the current layout.
func (v *ArticleView) Links() *LinkIndex { return v.index }

// Width returns the viewport width in columns.
func (v *ArticleView) Width() int { return v.width }

// Height returns the viewport height in rows.
func (v *ArticleView) Height() int { return v.height }

// ScrollOffset returns the index of the first visible line.
func (v *ArticleView) ScrollOffset() int { return v.scroll }

// Load displays doc, replacing the current document. A nil doc empties the view.
func (v *ArticleView) Load(doc *Document) {
	if doc == nil {
		v.logger.Debug("clearing article view")
		v.doc, v.layout = nil, nil
		v.index = NewLinkIndex(nil, v.logger)
		v.scroll = 0
		v.tocVisible = false
		return
	}
	v.logger.Debug("loading article", "title", doc.Title, "elements", len(doc.Elements), "links", len(doc.Links))
	v.doc = doc
	v.rebuild(false)
	v.scroll = 0
	v.tocVisible = v.cfg.TOC && doc.TOC != nil
}

// Open displays doc and remembers the current article for Back.
func (v *ArticleView) Open(doc *Document) {
	if v.doc != nil && doc != nil {
		v.history.Visit(v.saveState())
	}
	v.Load(doc)
}

// Resize recomputes the layout for a new width, keeping the selected link when it still exists.
func (v *ArticleView) Resize(width int) {
	width = max(width, 0)
	if width == v.width && v.layout != nil {
		return
	}
	v.width = width
	if v.doc == nil {
		return
	}
	v.rebuild(true)
	v.clampScroll()
	v.ensureVisible()
}

// SetHeight sets the number of visible rows.
func (v *ArticleView) SetHeight(rows int) {
	v.height = max(rows, 0)
	if v.doc == nil {
		return
	}
	v.clampScroll()
	v.ensureVisible()
}

func (v *ArticleView) rebuild(preserve bool) {
	id, had := v.index.CurrentLink()
	v.layout = NewLayout(v.doc, v.width)
	v.index = NewLinkIndex(v.layout.Links, v.logger)
	if preserve && had && v.index.RegisteredLinks() > 0 {
		v.index.SetCurrentLink(id)
	}
}

// Navigate moves the link selection and scrolls it into view.
func (v *ArticleView) Navigate(dir Direction, amount int) {
	if v.doc == nil {
		v.logger.Debug("navigate without article")
		return
	}
	switch dir {
	case DirUp:
		v.index.MoveUp(amount)
	case DirDown:
		v.index.MoveDown(amount)
	case DirLeft:
		v.index.MoveLeft(amount)
	case DirRight:
		v.index.MoveRight(amount)
	}
	v.ensureVisible()
}

// Activate emits a LinkActivation for the selected link. It reports whether one was emitted.
func (v *ArticleView) Activate() bool {
	if v.doc == nil {
		return false
	}
	id, ok := v.index.CurrentLink()
	if !ok {
		return false
	}
	link, ok := v.doc.Link(id)
	if !ok {
		v.logger.Warn("selected link is not part of the document", "id", id)
		return false
	}
	v.logger.Info("activating link", "id", id, "target", link.Target)
	if v.onActivate != nil {
		v.onActivate(LinkActivation{ID: id, Target: link.Target, Text: link.Text})
	}
	return true
}

// SelectLink makes link id the current link. It returns false when the layout has no such link.
func (v *ArticleView) SelectLink(id int) bool {
	if v.layout == nil {
		return false
	}
	if _, ok := v.layout.Occurrence(id); !ok {
		return false
	}
	v.index.SetCurrentLink(id)
	v.ensureVisible()
	return true
}

// Handle applies a command.
func (v *ArticleView) Handle(cmd Command) {
	amount := cmd.Amount
	if amount <= 0 {
		amount = 1
	}
	switch cmd.Kind {
	case CmdMoveUp:
		v.Navigate(DirUp, amount)
	case CmdMoveDown:
		v.Navigate(DirDown, amount)
	case CmdMoveLeft:
		v.Navigate(DirLeft, amount)
	case CmdMoveRight:
		v.Navigate(DirRight, amount)
	case CmdActivate:
		v.Activate()
	case CmdResize:
		v.Resize(cmd.Width)
	case CmdScrollUp:
		v.ScrollUp(amount)
	case CmdScrollDown:
		v.ScrollDown(amount)
	case CmdPageUp:
		v.PageUp()
	case CmdPageDown:
		v.PageDown()
	case CmdHome:
		v.Home()
	case CmdEnd:
		v.End()
	case CmdBack:
		v.Back()
	case CmdForward:
		v.Forward()
	case CmdToggleTOC:
		v.ToggleTOC()
	}
}

// VisibleLines returns the lines inside the viewport.
func (v *ArticleView) VisibleLines() []Line {
	if v.layout == nil || v.height <= 0 || v.scroll >= len(v.layout.Lines) {
		return nil
	}
	end := min(v.scroll+v.height, len(v.layout.Lines))
	return v.layout.Lines[v.scroll:end]
}

// Selection returns the highlighted link.
func (v *ArticleView) Selection() (Selection, bool) {
	if v.layout == nil {
		return Selection{}, false
	}
	id, ok := v.index.CurrentLink()
	if !ok {
		return Selection{}, false
	}
	y, start, end, ok := v.layout.LinkExtent(id)
	if !ok {
		return Selection{}, false
	}
	return Selection{ID: id, X: start, Y: y, End: end}, true
}

// Render returns the visible part of the article as grid cells.
func (v *ArticleView) Render() [][]Cell {
	var sel *Selection
	if s, ok := v.Selection(); ok {
		sel = &s
	}
	return RenderGrid(v.VisibleLines(), v.scroll, sel, v.width, v.height)
}

// TOC returns the table of contents of the displayed article.
func (v *ArticleView) TOC() *TOC {
	if v.doc == nil {
		return nil
	}
	return v.doc.TOC
}

// TOCPosition returns the configured side of the TOC panel.
func (v *ArticleView) TOCPosition() TOCPosition { return v.cfg.TOCPosition }

// TOCVisible reports whether the TOC panel should be shown.
func (v *ArticleView) TOCVisible() bool { return v.tocVisible }

// ToggleTOC shows or hides the TOC panel when the article has one.
func (v *ArticleView) ToggleTOC() {
	if v.TOC() == nil {
		v.tocVisible = false
		return
	}
	v.tocVisible = !v.tocVisible
}

// JumpToTOCEntry scrolls to a TOC heading and selects the first link at or below it.
func (v *ArticleView) JumpToTOCEntry(entry int) bool {
	toc := v.TOC()
	if toc == nil || entry < 0 || entry >= len(toc.Entries) {
		return false
	}
	line := v.layout.LineOfElement(toc.Entries[entry].Element)
	if line < 0 {
		return false
	}
	v.scroll = line
	v.clampScroll()
	if v.index.RegisteredLinks() > 0 {
		v.index.JumpToLine(line)
		v.keepSelectionOnScreen()
	}
	return true
}

// ScrollUp scrolls the viewport up by n lines.
func (v *ArticleView) ScrollUp(n int) bool {
	if v.layout == nil || v.scroll == 0 {
		return false
	}
	v.scroll = max(v.scroll-max(n, 1), 0)
	v.keepSelectionOnScreen()
	return true
}

// ScrollDown scrolls the viewport down by n lines.
func (v *ArticleView) ScrollDown(n int) bool {
	if v.layout == nil {
		return false
	}
	maxOffset := v.maxScroll()
	if v.scroll >= maxOffset {
		return false
	}
	v.scroll = min(v.scroll+max(n, 1), maxOffset)
	v.keepSelectionOnScreen()
	return true
}

// PageUp scrolls up by one viewport.
func (v *ArticleView) PageUp() bool { return v.ScrollUp(max(v.height, 1)) }

// PageDown scrolls down by one viewport.
func (v *ArticleView) PageDown() bool { return v.ScrollDown(max(v.height, 1)) }

// Home scrolls to the top.
func (v *ArticleView) Home() {
	if v.layout == nil {
		return
	}
	v.scroll = 0
	v.keepSelectionOnScreen()
}

// End scrolls to the bottom.
func (v *ArticleView) End() {
	if v.layout == nil {
		return
	}
	v.scroll = v.maxScroll()
	v.keepSelectionOnScreen()
}

// CanGoBack reports whether there is a previous article.
func (v *ArticleView) CanGoBack() bool { return v.history.CanGoBack() }

// CanGoForward reports whether there is a next article.
func (v *ArticleView) CanGoForward() bool { return v.history.CanGoForward() }

// Back returns to the previous article.
func (v *ArticleView) Back() bool {
	if v.doc == nil {
		return false
	}
	prev, ok := v.history.Back(v.saveState())
	if !ok {
		return false
	}
	v.restoreState(prev)
	return true
}

// Forward returns to the article left with Back.
func (v *ArticleView) Forward() bool {
	if v.doc == nil {
		return false
	}
	next, ok := v.history.Forward(v.saveState())
	if !ok {
		return false
	}
	v.restoreState(next)
	return true
}

func (v *ArticleView) saveState() pageState {
	id, ok := v.index.CurrentLink()
	return pageState{doc: v.doc, scroll: v.scroll, link: id, hasLink: ok}
}

func (v *ArticleView) restoreState(s pageState) {
	v.Load(s.doc)
	if s.hasLink {
		v.index.SetCurrentLink(s.link)
	}
	v.scroll = s.scroll
	v.clampScroll()
}

func (v *ArticleView) maxScroll() int {
	if v.layout == nil {
		return 0
	}
	if v.height <= 0 {
		return max(len(v.layout.Lines)-1, 0)
	}
	return max(len(v.layout.Lines)-v.height, 0)
}

func (v *ArticleView) clampScroll() {
	v.scroll = min(max(v.scroll, 0), v.maxScroll())
}

// ensureVisible scrolls so that the selected link is inside the viewport.
func (v *ArticleView) ensureVisible() {
	if v.height <= 0 {
		return
	}
	_, y, ok := v.index.CurrentLinkPos()
	if !ok {
		return
	}
	if y < v.scroll {
		v.scroll = y
	}
	if y >= v.scroll+v.height {
		v.scroll = y - v.height + 1
	}
	v.scroll = max(v.scroll, 0)
}

// keepSelectionOnScreen moves the selection to the first visible link after a scroll
// pushed it out of the viewport. Without a visible link the selection stays.
func (v *ArticleView) keepSelectionOnScreen() {
	if v.height <= 0 {
		return
	}
	_, y, ok := v.index.CurrentLinkPos()
	if !ok || v.rowVisible(y) {
		return
	}
	for _, l := range v.index.Links() {
		if v.rowVisible(l.Y) {
			v.index.SetCurrentLink(l.ID)
			return
		}
	}
}

func (v *ArticleView) rowVisible(y int) bool {
	return y >= v.scroll && y < v.scroll+v.height
}
