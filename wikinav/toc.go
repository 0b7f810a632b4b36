package wikinav

// TOCEntry is one heading of the table of contents.
//
// Element indexes Document.Elements. Parent and Children index TOC.Entries; Parent is -1
// for top-level entries.
type TOCEntry struct {
	Level    int
	Title    string
	Element  int
	Parent   int
	Children []int
}

// TOC is a table of contents stored as an arena of entries in document order.
type TOC struct {
	Entries []TOCEntry
}

// Roots returns the indices of the top-level entries.
func (t *TOC) Roots() []int {
	if t == nil {
		return nil
	}
	var roots []int
	for i, e := range t.Entries {
		if e.Parent < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// Len returns the number of entries.
func (t *TOC) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

func (t *TOC) clone() *TOC {
	if t == nil {
		return nil
	}
	out := &TOC{Entries: make([]TOCEntry, len(t.Entries))}
	for i, e := range t.Entries {
		e.Children = append([]int(nil), e.Children...)
		out.Entries[i] = e
	}
	return out
}

// tocBuilder nests headings by level using a stack of open entries.
type tocBuilder struct {
	minLevel int
	toc      TOC
	open     []int
}

func newTOCBuilder(minLevel int) *tocBuilder {
	if minLevel < 1 {
		minLevel = 1
	}
	return &tocBuilder{minLevel: minLevel}
}

func (b *tocBuilder) add(level int, title string, element int) {
	if level < b.minLevel {
		return
	}
	for len(b.open) > 0 && b.toc.Entries[b.open[len(b.open)-1]].Level >= level {
		b.open = b.open[:len(b.open)-1]
	}

	parent := -1
	if len(b.open) > 0 {
		parent = b.open[len(b.open)-1]
	}
	idx := len(b.toc.Entries)
	b.toc.Entries = append(b.toc.Entries, TOCEntry{
		Level:   level,
		Title:   title,
		Element: element,
		Parent:  parent,
	})
	if parent >= 0 {
		b.toc.Entries[parent].Children = append(b.toc.Entries[parent].Children, idx)
	}
	b.open = append(b.open, idx)
}

func (b *tocBuilder) build() *TOC {
	if len(b.toc.Entries) == 0 {
		return nil
	}
	toc := b.toc
	return &toc
}
