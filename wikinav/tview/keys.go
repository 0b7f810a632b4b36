package tview

import (
	"github.com/gdamore/tcell/v2"

	"github.com/boolean-maybe/wikinav/wikinav"
)

// KeyCommand maps a key event to an article command.
//
//	arrows, h j k l     move between links
//	Tab, Shift-Tab      next, previous link row
//	Enter               open the selected link
//	J K, Ctrl-E Ctrl-Y  scroll one line
//	PgDn PgUp, Space    scroll one page
//	Home End, g G       top, bottom
//	Alt-Left, b         back
//	Alt-Right, f        forward
//	t                   toggle the table of contents
func KeyCommand(event *tcell.EventKey) (wikinav.Command, bool) {
	cmd := func(kind wikinav.CommandKind) (wikinav.Command, bool) {
		return wikinav.Command{Kind: kind, Amount: 1}, true
	}

	alt := event.Modifiers()&tcell.ModAlt != 0
	switch event.Key() {
	case tcell.KeyLeft:
		if alt {
			return cmd(wikinav.CmdBack)
		}
		return cmd(wikinav.CmdMoveLeft)
	case tcell.KeyRight:
		if alt {
			return cmd(wikinav.CmdForward)
		}
		return cmd(wikinav.CmdMoveRight)
	case tcell.KeyUp, tcell.KeyBacktab:
		return cmd(wikinav.CmdMoveUp)
	case tcell.KeyDown, tcell.KeyTab:
		return cmd(wikinav.CmdMoveDown)
	case tcell.KeyEnter:
		return cmd(wikinav.CmdActivate)
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		return cmd(wikinav.CmdPageUp)
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		return cmd(wikinav.CmdPageDown)
	case tcell.KeyHome:
		return cmd(wikinav.CmdHome)
	case tcell.KeyEnd:
		return cmd(wikinav.CmdEnd)
	case tcell.KeyCtrlY:
		return cmd(wikinav.CmdScrollUp)
	case tcell.KeyCtrlE:
		return cmd(wikinav.CmdScrollDown)
	case tcell.KeyRune:
		return runeCommand(event.Rune())
	}
	return wikinav.Command{}, false
}

var runeCommands = map[rune]wikinav.CommandKind{
	'k': wikinav.CmdMoveUp,
	'j': wikinav.CmdMoveDown,
	'h': wikinav.CmdMoveLeft,
	'l': wikinav.CmdMoveRight,
	'K': wikinav.CmdScrollUp,
	'J': wikinav.CmdScrollDown,
	' ': wikinav.CmdPageDown,
	'g': wikinav.CmdHome,
	'G': wikinav.CmdEnd,
	'b': wikinav.CmdBack,
	'f': wikinav.CmdForward,
	't': wikinav.CmdToggleTOC,
}

func runeCommand(r rune) (wikinav.Command, bool) {
	kind, ok := runeCommands[r]
	if !ok {
		return wikinav.Command{}, false
	}
	return wikinav.Command{Kind: kind, Amount: 1}, true
}
