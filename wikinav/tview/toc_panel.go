package tview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/boolean-maybe/wikinav/wikinav"
)

// TOCPanel shows a table of contents as a tree. Selecting an entry calls the jump handler
// with the entry's index in TOC.Entries.
type TOCPanel struct {
	*tview.TreeView

	nodes  []*tview.TreeNode
	onJump func(entry int)
	color  tcell.Color
}

// NewTOCPanel creates an empty panel.
func NewTOCPanel() *TOCPanel {
	tree := tview.NewTreeView()
	tree.SetBorder(true).SetTitle(" Contents ")
	tree.SetTopLevel(1)

	p := &TOCPanel{TreeView: tree, color: tcell.ColorDefault}
	tree.SetSelectedFunc(func(node *tview.TreeNode) {
		if entry, ok := node.GetReference().(int); ok && p.onJump != nil {
			p.onJump(entry)
		}
	})
	return p
}

// SetJumpHandler sets the callback for a selected entry.
func (p *TOCPanel) SetJumpHandler(handler func(entry int)) *TOCPanel {
	p.onJump = handler
	return p
}

// SetTheme colors the entries with the heading color.
func (p *TOCPanel) SetTheme(t Theme) *TOCPanel {
	p.color = t.Heading
	for _, n := range p.nodes {
		n.SetColor(p.color)
	}
	return p
}

// SetTOC replaces the tree. A nil toc empties the panel.
func (p *TOCPanel) SetTOC(toc *wikinav.TOC) {
	root := tview.NewTreeNode("").SetSelectable(false)
	p.nodes = make([]*tview.TreeNode, toc.Len())
	if toc != nil {
		for i, e := range toc.Entries {
			p.nodes[i] = tview.NewTreeNode(e.Title).
				SetReference(i).
				SetSelectable(true).
				SetColor(p.color)
		}
		for i, e := range toc.Entries {
			parent := root
			if e.Parent >= 0 {
				parent = p.nodes[e.Parent]
			}
			parent.AddChild(p.nodes[i])
		}
	}
	p.SetRoot(root)
	if len(p.nodes) > 0 {
		p.SetCurrentNode(p.nodes[0])
	} else {
		p.SetCurrentNode(nil)
	}
}

// Len returns the number of entries shown.
func (p *TOCPanel) Len() int { return len(p.nodes) }

// SelectEntry moves the cursor to an entry without jumping.
func (p *TOCPanel) SelectEntry(entry int) bool {
	if entry < 0 || entry >= len(p.nodes) {
		return false
	}
	p.SetCurrentNode(p.nodes[entry])
	return true
}

// CurrentEntry returns the entry under the cursor.
func (p *TOCPanel) CurrentEntry() (int, bool) {
	node := p.GetCurrentNode()
	if node == nil {
		return -1, false
	}
	entry, ok := node.GetReference().(int)
	return entry, ok
}
