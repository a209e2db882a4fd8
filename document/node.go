package document

// Node is one tagged variant of block-level document content. The variant
// set is closed; the marker method keeps outside packages from adding
// variants.
type Node interface {
	blockNode()

	// Clone returns a deep copy of the node.
	Clone() Node
}

// Heading is a section heading with level 1..6.
type Heading struct {
	Level    int
	Children []Inline
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Children []Inline
}

// List is an ordered, unordered or task list.
type List struct {
	Kind  ListKind
	Items []ListItem
}

// CodeBlock is a fenced block of code with an optional language tag.
type CodeBlock struct {
	Language string
	Code     string
}

// BlockQuote wraps block children in a quotation.
type BlockQuote struct {
	Children []Node
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Table is a grid of cells with a header row, data rows and per-column
// alignments.
type Table struct {
	Header     []TableCell
	Rows       [][]TableCell
	Alignments []Alignment
	Properties TableProperties
}

// FootnoteReference is a block-level footnote reference.
type FootnoteReference struct {
	Label string
}

// FootnoteDefinition is the body of a footnote, addressed by label.
type FootnoteDefinition struct {
	Label   string
	Content []Node
}

// DefinitionList is a list of term/description pairs.
type DefinitionList struct {
	Items []DefinitionItem
}

// DefinitionItem is one term with one or more descriptions.
type DefinitionItem struct {
	Term         []Inline
	Descriptions [][]Node
}

// MathBlock is a display-math TeX block.
type MathBlock struct {
	Math string
}

// Group is a named container of block nodes.
type Group struct {
	Name     string
	Children []Node
}

// TempListItem is parser scratch state. It must never appear in a committed
// tree; serializers treat its presence as a logic error.
type TempListItem struct {
	Item ListItem
}

// TempTableCell is parser scratch state. It must never appear in a
// committed tree; serializers treat its presence as a logic error.
type TempTableCell struct {
	Cell TableCell
}

func (*Heading) blockNode()            {}
func (*Paragraph) blockNode()          {}
func (*List) blockNode()               {}
func (*CodeBlock) blockNode()          {}
func (*BlockQuote) blockNode()         {}
func (*ThematicBreak) blockNode()      {}
func (*Table) blockNode()              {}
func (*FootnoteReference) blockNode()  {}
func (*FootnoteDefinition) blockNode() {}
func (*DefinitionList) blockNode()     {}
func (*MathBlock) blockNode()          {}
func (*Group) blockNode()              {}
func (*TempListItem) blockNode()       {}
func (*TempTableCell) blockNode()      {}

// Clone returns a deep copy.
func (h *Heading) Clone() Node {
	return &Heading{Level: h.Level, Children: CloneInlines(h.Children)}
}

// Clone returns a deep copy.
func (p *Paragraph) Clone() Node {
	return &Paragraph{Children: CloneInlines(p.Children)}
}

// Clone returns a deep copy.
func (l *List) Clone() Node {
	items := make([]ListItem, len(l.Items))
	for i, item := range l.Items {
		items[i] = item.Clone()
	}
	return &List{Kind: l.Kind, Items: items}
}

// Clone returns a deep copy.
func (c *CodeBlock) Clone() Node { d := *c; return &d }

// Clone returns a deep copy.
func (b *BlockQuote) Clone() Node {
	return &BlockQuote{Children: CloneNodes(b.Children)}
}

// Clone returns a deep copy.
func (t *ThematicBreak) Clone() Node { return &ThematicBreak{} }

// Clone returns a deep copy.
func (t *Table) Clone() Node {
	out := &Table{Properties: t.Properties}
	if t.Header != nil {
		out.Header = cloneCells(t.Header)
	}
	if t.Rows != nil {
		out.Rows = make([][]TableCell, len(t.Rows))
		for i, row := range t.Rows {
			out.Rows[i] = cloneCells(row)
		}
	}
	if t.Alignments != nil {
		out.Alignments = append([]Alignment(nil), t.Alignments...)
	}
	return out
}

// Clone returns a deep copy.
func (f *FootnoteReference) Clone() Node { c := *f; return &c }

// Clone returns a deep copy.
func (f *FootnoteDefinition) Clone() Node {
	return &FootnoteDefinition{Label: f.Label, Content: CloneNodes(f.Content)}
}

// Clone returns a deep copy.
func (d *DefinitionList) Clone() Node {
	items := make([]DefinitionItem, len(d.Items))
	for i, item := range d.Items {
		descs := make([][]Node, len(item.Descriptions))
		for j, desc := range item.Descriptions {
			descs[j] = CloneNodes(desc)
		}
		items[i] = DefinitionItem{Term: CloneInlines(item.Term), Descriptions: descs}
	}
	return &DefinitionList{Items: items}
}

// Clone returns a deep copy.
func (m *MathBlock) Clone() Node { c := *m; return &c }

// Clone returns a deep copy.
func (g *Group) Clone() Node {
	return &Group{Name: g.Name, Children: CloneNodes(g.Children)}
}

// Clone returns a deep copy.
func (t *TempListItem) Clone() Node {
	return &TempListItem{Item: t.Item.Clone()}
}

// Clone returns a deep copy.
func (t *TempTableCell) Clone() Node {
	return &TempTableCell{Cell: t.Cell.Clone()}
}

// CloneNodes deep-copies a slice of block nodes.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// NewParagraph creates a paragraph with a single plain text run.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{Children: []Inline{PlainText(text)}}
}

// NewHeading creates a heading with a single plain text run. Levels outside
// 1..6 are clamped.
func NewHeading(level int, text string) *Heading {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return &Heading{Level: level, Children: []Inline{PlainText(text)}}
}

// NewCodeBlock creates a code block.
func NewCodeBlock(code, language string) *CodeBlock {
	return &CodeBlock{Language: language, Code: code}
}

// NewUnorderedList creates an unordered list with one paragraph per item.
func NewUnorderedList(items []string) *List {
	return newTextList(Unordered, items)
}

// NewOrderedList creates an ordered list with one paragraph per item.
func NewOrderedList(items []string) *List {
	return newTextList(Ordered, items)
}

func newTextList(kind ListKind, items []string) *List {
	list := &List{Kind: kind, Items: make([]ListItem, len(items))}
	for i, text := range items {
		list.Items[i] = ListItem{Children: []Node{NewParagraph(text)}}
	}
	return list
}

// TaskEntry is one (text, checked) pair used to build task lists.
type TaskEntry struct {
	Text    string
	Checked bool
}

// NewTaskList creates a task list. Every item gets a non-nil Checked value.
func NewTaskList(entries []TaskEntry) *List {
	list := &List{Kind: Task, Items: make([]ListItem, len(entries))}
	for i, entry := range entries {
		checked := entry.Checked
		list.Items[i] = ListItem{
			Children: []Node{NewParagraph(entry.Text)},
			Checked:  &checked,
		}
	}
	return list
}
