package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/wikinav/internal/logging"
	"github.com/boolean-maybe/wikinav/loaders"
	"github.com/boolean-maybe/wikinav/wikinav"
	wtview "github.com/boolean-maybe/wikinav/wikinav/tview"
)

// Page names of the browser.
const (
	pageMain    = "main"
	pageConfirm = "confirm"
	pageError   = "error"
	pageSearch  = "search"
)

const tocWidth = 32

// searcher runs full-text searches; *loaders.Wikipedia implements it.
type searcher interface {
	Search(ctx context.Context, query string, offset int) (*loaders.SearchPage, error)
}

type browserConfig struct {
	Fetcher *wikinav.ContentFetcher
	Search  searcher
	View    wikinav.ViewConfig
	Theme   wtview.Theme
	Confirm bool
	Logger  *log.Logger
}

// browser is the terminal UI: the article box with an optional TOC panel, a status bar,
// a search page and modal dialogs. Article fetches run off the UI goroutine and come
// back through queue.
type browser struct {
	ctx     context.Context
	cfg     browserConfig
	logger  *log.Logger
	app     *tview.Application
	pages   *tview.Pages
	body    *tview.Flex
	box     *wtview.ArticleBox
	toc     *wtview.TOCPanel
	status  *tview.TextView
	input   *tview.InputField
	results *tview.List

	loading string
	lastDoc *wikinav.Document
	lastTOC bool

	spawn func(func())
	queue func(func())
}

func newBrowser(ctx context.Context, cfg browserConfig) *browser {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	cfg.View.Logger = logger

	b := &browser{
		ctx:     ctx,
		cfg:     cfg,
		logger:  logger,
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		body:    tview.NewFlex().SetDirection(tview.FlexColumn),
		toc:     wtview.NewTOCPanel(),
		status:  tview.NewTextView(),
		input:   tview.NewInputField(),
		results: tview.NewList(),
		spawn:   func(fn func()) { go fn() },
	}
	b.queue = func(fn func()) { b.app.QueueUpdateDraw(fn) }

	b.box = wtview.NewArticleBox(wikinav.NewArticleView(cfg.View)).
		SetTheme(cfg.Theme).
		SetPlaceholder("Press / to search").
		SetActivateHandler(func(_ *wtview.ArticleBox, a wikinav.LinkActivation) { b.activate(a) }).
		SetStateChangedHandler(func(*wtview.ArticleBox) { b.refresh() })
	b.toc.SetTheme(cfg.Theme).SetJumpHandler(func(entry int) {
		b.box.JumpToTOCEntry(entry)
		b.app.SetFocus(b.box)
	})
	b.toc.SetDoneFunc(func(tcell.Key) { b.app.SetFocus(b.box) })

	b.status.SetDynamicColors(true)
	b.status.SetTextAlign(tview.AlignLeft)

	b.input.SetLabel("Search: ").SetFieldWidth(0)
	b.input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			b.search(b.input.GetText(), 0)
		case tcell.KeyEscape:
			b.closeSearch()
		case tcell.KeyTab, tcell.KeyDown:
			b.app.SetFocus(b.results)
		}
	})
	b.results.ShowSecondaryText(true)
	b.results.SetDoneFunc(b.closeSearch)

	searchPage := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.input, 1, 0, true).
		AddItem(b.results, 0, 1, false)
	searchPage.SetBorder(true).SetTitle(" Search ")

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.body, 0, 1, true).
		AddItem(b.status, 1, 0, false)

	b.pages.AddPage(pageMain, main, true, true)
	b.pages.AddPage(pageSearch, searchPage, true, false)

	b.relayout()
	b.refresh()

	b.app.SetInputCapture(b.captureKey)
	b.app.SetRoot(b.pages, true).SetFocus(b.box).EnableMouse(true)
	return b
}

// run blocks until the user quits.
func (b *browser) run() error {
	return b.app.Run()
}

func (b *browser) captureKey(event *tcell.EventKey) *tcell.EventKey {
	focus := b.app.GetFocus()
	if focus != b.box && focus != b.toc {
		return event
	}
	if event.Key() != tcell.KeyRune {
		return event
	}
	switch event.Rune() {
	case 'q':
		b.app.Stop()
		return nil
	case '/':
		b.openSearch()
		return nil
	case 'o':
		if b.box.View().TOCVisible() {
			b.app.SetFocus(b.toc)
		}
		return nil
	}
	return event
}

// open fetches target and displays it, keeping the current article on failure.
func (b *browser) open(target string) {
	if target == "" {
		return
	}
	b.loading = loaders.DisplayTitle(target)
	b.refresh()
	b.logger.Info("opening article", logging.FieldTarget, target)

	b.spawn(func() {
		doc, err := b.cfg.Fetcher.Fetch(b.ctx, target)
		b.queue(func() {
			b.loading = ""
			if err != nil {
				b.logger.Error("failed to open article", logging.FieldTarget, target, logging.FieldError, err)
				b.showError(err)
				b.refresh()
				return
			}
			b.box.Open(doc)
			b.refresh()
		})
	})
}

func (b *browser) activate(a wikinav.LinkActivation) {
	if !b.cfg.Confirm {
		b.open(a.Target)
		return
	}
	b.confirm(a.Target)
}

// confirm asks before opening target.
func (b *browser) confirm(target string) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Do you want to open the article '%s'?", loaders.DisplayTitle(target))).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(_ int, label string) {
			b.confirmed(target, label == "Yes")
		})
	b.pages.AddPage(pageConfirm, modal, false, true)
	b.app.SetFocus(modal)
}

func (b *browser) confirmed(target string, yes bool) {
	b.pages.RemovePage(pageConfirm)
	b.app.SetFocus(b.box)
	if yes {
		b.open(target)
	}
}

func (b *browser) showError(err error) {
	modal := tview.NewModal().
		SetText(err.Error()).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) { b.dismissError() })
	b.pages.AddPage(pageError, modal, false, true)
	b.app.SetFocus(modal)
}

func (b *browser) dismissError() {
	b.pages.RemovePage(pageError)
	b.app.SetFocus(b.box)
}

func (b *browser) openSearch() {
	b.pages.ShowPage(pageSearch)
	b.app.SetFocus(b.input)
}

func (b *browser) closeSearch() {
	b.pages.HidePage(pageSearch)
	b.app.SetFocus(b.box)
}

// search runs query from offset and lists the results.
func (b *browser) search(query string, offset int) {
	query = strings.TrimSpace(query)
	if query == "" || b.cfg.Search == nil {
		return
	}
	b.results.Clear()
	b.results.AddItem("Searching...", "", 0, nil)

	b.spawn(func() {
		page, err := b.cfg.Search.Search(b.ctx, query, offset)
		b.queue(func() {
			b.results.Clear()
			if err != nil {
				b.logger.Error("search failed", logging.FieldQuery, query, logging.FieldError, err)
				b.results.AddItem("Search failed", err.Error(), 0, nil)
				return
			}
			b.showResults(page)
		})
	})
}

func (b *browser) showResults(page *loaders.SearchPage) {
	if len(page.Results) == 0 {
		b.results.AddItem(fmt.Sprintf("No results for %q", page.Query), "", 0, nil)
		return
	}
	for _, r := range page.Results {
		target := loaders.WikiTarget(r.Title)
		secondary := fmt.Sprintf("%s  (%d words)", loaders.SnippetText(r.Snippet), r.WordCount)
		b.results.AddItem(r.Title, secondary, 0, func() {
			b.closeSearch()
			b.open(target)
		})
	}
	if page.More {
		next := page.NextOffset
		b.results.AddItem("More results...", "", 0, func() { b.search(page.Query, next) })
	}
	b.app.SetFocus(b.results)
}

// relayout rebuilds the body when the TOC panel appears or disappears.
func (b *browser) relayout() {
	view := b.box.View()
	showTOC := view.TOCVisible() && view.TOC().Len() > 0
	if view.Document() != b.lastDoc {
		b.toc.SetTOC(view.TOC())
	}
	if showTOC == b.lastTOC && view.Document() == b.lastDoc && b.body.GetItemCount() > 0 {
		return
	}
	b.lastDoc, b.lastTOC = view.Document(), showTOC

	b.body.Clear()
	switch {
	case !showTOC:
		b.body.AddItem(b.box, 0, 1, true)
	case view.TOCPosition() == wikinav.TOCRight:
		b.body.AddItem(b.box, 0, 1, true).AddItem(b.toc, tocWidth, 0, false)
	default:
		b.body.AddItem(b.toc, tocWidth, 0, false).AddItem(b.box, 0, 1, true)
	}
	if !showTOC && b.app.GetFocus() == b.toc {
		b.app.SetFocus(b.box)
	}
}

func (b *browser) refresh() {
	b.relayout()
	b.updateStatusBar()
}

// updateStatusBar shows the article title, history indicators and key hints.
func (b *browser) updateStatusBar() {
	view := b.box.View()
	title := "wikinav"
	if doc := view.Document(); doc != nil {
		switch {
		case doc.Title != "":
			title = doc.Title
		case doc.Meta.Source != "":
			title = filepath.Base(doc.Meta.Source)
		}
	}

	keyColor := "gray"
	activeColor := "white"
	status := fmt.Sprintf(" [yellow]%s[-]", tview.Escape(title))
	if b.loading != "" {
		status += fmt.Sprintf(" | [%s]loading %s...[-]", activeColor, tview.Escape(b.loading))
	}
	status += fmt.Sprintf(" | Link:[%s]arrows[-] | Back:", keyColor)
	if view.CanGoBack() {
		status += fmt.Sprintf("[%s]◀[-]", activeColor)
	} else {
		status += "[gray]◀[-]"
	}
	status += " Fwd:"
	if view.CanGoForward() {
		status += fmt.Sprintf("[%s]▶[-]", activeColor)
	} else {
		status += "[gray]▶[-]"
	}
	status += fmt.Sprintf(" | Search:[%s]/[-] TOC:[%s]t[-] Quit:[%s]q[-]", keyColor, keyColor, keyColor)

	b.status.SetText(status)
}
