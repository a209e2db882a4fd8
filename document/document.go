package document

import (
	"github.com/google/uuid"
)

// Metadata carries document identity and descriptive fields. Custom holds
// free-form key/value pairs the host wants to keep with the document.
type Metadata struct {
	ID     uuid.UUID
	Title  string
	Author string
	Date   string
	Custom map[string]string
}

// Clone returns a deep copy of the metadata.
func (m Metadata) Clone() Metadata {
	out := m
	if m.Custom != nil {
		out.Custom = make(map[string]string, len(m.Custom))
		for k, v := range m.Custom {
			out.Custom[k] = v
		}
	}
	return out
}

// Document is an ordered sequence of block nodes plus an optional current
// selection and metadata. It is created once per editing session and
// mutated in place by commands.
type Document struct {
	Nodes     []Node
	Selection *Selection
	Meta      Metadata
}

// New creates an empty document with a fresh ID.
func New() *Document {
	return &Document{Meta: Metadata{ID: uuid.New()}}
}

// NewWithTitle creates an empty document carrying a title in its metadata.
func NewWithTitle(title string) *Document {
	doc := New()
	doc.Meta.Title = title
	return doc
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Nodes: CloneNodes(d.Nodes),
		Meta:  d.Meta.Clone(),
	}
	if d.Selection != nil {
		sel := d.Selection.Clone()
		out.Selection = &sel
	}
	return out
}

// NodeCount returns the number of top-level nodes.
func (d *Document) NodeCount() int { return len(d.Nodes) }

// ValidIndex reports whether index addresses an existing top-level node.
func (d *Document) ValidIndex(index int) bool {
	return index >= 0 && index < len(d.Nodes)
}

// SetCustom records a custom metadata pair, allocating the map on first
// use.
func (d *Document) SetCustom(key, value string) {
	if d.Meta.Custom == nil {
		d.Meta.Custom = make(map[string]string)
	}
	d.Meta.Custom[key] = value
}

// AddParagraph appends a paragraph with the given text.
func (d *Document) AddParagraph(text string) {
	d.Nodes = append(d.Nodes, NewParagraph(text))
}

// AddHeading appends a heading with the given level and text.
func (d *Document) AddHeading(level int, text string) {
	d.Nodes = append(d.Nodes, NewHeading(level, text))
}

// AddCodeBlock appends a code block.
func (d *Document) AddCodeBlock(code, language string) {
	d.Nodes = append(d.Nodes, NewCodeBlock(code, language))
}

// AddUnorderedList appends an unordered list with one paragraph per item.
func (d *Document) AddUnorderedList(items []string) {
	d.Nodes = append(d.Nodes, NewUnorderedList(items))
}

// AddOrderedList appends an ordered list with one paragraph per item.
func (d *Document) AddOrderedList(items []string) {
	d.Nodes = append(d.Nodes, NewOrderedList(items))
}

// AddTaskList appends a task list.
func (d *Document) AddTaskList(entries []TaskEntry) {
	d.Nodes = append(d.Nodes, NewTaskList(entries))
}

// AddThematicBreak appends a horizontal rule.
func (d *Document) AddThematicBreak() {
	d.Nodes = append(d.Nodes, &ThematicBreak{})
}

// AddTable appends an empty table of the given shape.
func (d *Document) AddTable(columns, rows int, withHeader bool) {
	d.Nodes = append(d.Nodes, NewTable(columns, rows, withHeader))
}
