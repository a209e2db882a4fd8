package edit

import (
	"fmt"

	"github.com/dshills/mdedit/document"
)

// CutSelectionCommand removes the selected content and returns it as plain
// text. A selection within one text-bearing node removes the offset range;
// a selection spanning nodes removes every covered top-level node whole.
// The selection collapses to its start after the cut.
type CutSelectionCommand struct {
	prevSelection *document.Selection
	cutText       string

	// single-node capture
	nodeIndex int
	prevText  textState
	multiNode bool

	// multi-node capture
	startIndex int
	removed    []document.Node

	executed bool
}

// NewCutSelectionCommand creates a cut command over the document's active
// selection, captured at execute time.
func NewCutSelectionCommand() *CutSelectionCommand {
	return &CutSelectionCommand{}
}

// Execute removes the selected content.
func (c *CutSelectionCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if d.Selection == nil {
			return ErrNoSelection
		}
		sel := d.Selection.Normalized()
		if sel.IsCollapsed() {
			return fmt.Errorf("selection is collapsed: %w", ErrNoSelection)
		}

		c.cutText = d.SelectedText(sel)
		prevSel := d.Selection.Clone()
		c.prevSelection = &prevSel

		if sel.IsMultiNode() {
			start, end := sel.Start.NodeIndex(), sel.End.NodeIndex()
			if start < 0 || end >= len(d.Nodes) {
				return ErrIndexOutOfBounds
			}
			c.multiNode = true
			c.startIndex = start
			c.removed = append([]document.Node(nil), d.Nodes[start:end+1]...)
			d.Nodes = append(d.Nodes[:start], d.Nodes[end+1:]...)
		} else {
			idx := sel.Start.NodeIndex()
			if idx < 0 || idx >= len(d.Nodes) {
				return ErrIndexOutOfBounds
			}
			node := d.Nodes[idx]
			prev, err := captureText(node)
			if err != nil {
				return err
			}
			if err := deleteNodeRange(node, sel.Start.Offset, sel.End.Offset); err != nil {
				return err
			}
			c.multiNode = false
			c.nodeIndex = idx
			c.prevText = prev
		}

		collapsed := sel.CollapseToStart()
		d.Selection = &collapsed
		c.executed = true
		return nil
	})
}

// Undo reinserts the removed nodes or restores the node's content, and
// restores the prior selection.
func (c *CutSelectionCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if c.multiNode {
			if c.startIndex > len(d.Nodes) {
				return ErrIndexOutOfBounds
			}
			d.Nodes = append(d.Nodes[:c.startIndex], append(append([]document.Node{}, c.removed...), d.Nodes[c.startIndex:]...)...)
		} else {
			if !d.ValidIndex(c.nodeIndex) {
				return ErrIndexOutOfBounds
			}
			if err := restoreText(d.Nodes[c.nodeIndex], c.prevText); err != nil {
				return err
			}
		}
		d.Selection = c.prevSelection
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *CutSelectionCommand) Description() string {
	return "cut selection"
}

// Text returns the text removed by the last Execute.
func (c *CutSelectionCommand) Text() string { return c.cutText }

// deleteNodeRange removes the content range [start, end) from a
// text-bearing node.
func deleteNodeRange(node document.Node, start, end int) error {
	switch v := node.(type) {
	case *document.Paragraph:
		children, err := deleteFromInlines(v.Children, start, end)
		if err != nil {
			return err
		}
		v.Children = children
	case *document.Heading:
		children, err := deleteFromInlines(v.Children, start, end)
		if err != nil {
			return err
		}
		v.Children = children
	case *document.CodeBlock:
		if start < 0 || start >= end || end > len(v.Code) {
			return ErrInvalidRange
		}
		v.Code = v.Code[:start] + v.Code[end:]
	default:
		return fmt.Errorf("node has no editable text: %w", ErrUnsupportedOperation)
	}
	return nil
}

// CopySelection returns the text the active selection covers without
// mutating the document.
func CopySelection(doc *document.Shared) (string, error) {
	var text string
	var err error
	doc.Read(func(d *document.Document) {
		if d.Selection == nil {
			err = ErrNoSelection
			return
		}
		text = d.SelectedText(*d.Selection)
	})
	return text, err
}

// FormatSelectionCommand merges formatting into the active selection's
// range. Only selections within a single paragraph or heading are
// supported; non-text inlines inside the range pass through untouched.
type FormatSelectionCommand struct {
	Format document.Formatting

	nodeIndex int
	prev      []document.Inline
	executed  bool
}

// NewFormatSelectionCommand creates a format-selection command.
func NewFormatSelectionCommand(format document.Formatting) *FormatSelectionCommand {
	return &FormatSelectionCommand{Format: format}
}

// Execute applies the formatting to the selected range.
func (c *FormatSelectionCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if d.Selection == nil {
			return ErrNoSelection
		}
		sel := d.Selection.Normalized()
		if sel.IsCollapsed() {
			return fmt.Errorf("selection is collapsed: %w", ErrNoSelection)
		}
		if sel.IsMultiNode() {
			return fmt.Errorf("cannot format a multi-node selection: %w", ErrUnsupportedOperation)
		}

		idx := sel.Start.NodeIndex()
		if idx < 0 || idx >= len(d.Nodes) {
			return ErrIndexOutOfBounds
		}

		var children *[]document.Inline
		switch v := d.Nodes[idx].(type) {
		case *document.Paragraph:
			children = &v.Children
		case *document.Heading:
			children = &v.Children
		default:
			return fmt.Errorf("node has no formattable text: %w", ErrUnsupportedOperation)
		}

		prev := document.CloneInlines(*children)
		formatted, err := formatInlines(*children, sel.Start.Offset, sel.End.Offset, c.Format)
		if err != nil {
			return err
		}
		*children = formatted

		c.nodeIndex = idx
		c.prev = prev
		c.executed = true
		return nil
	})
}

// Undo restores the node's previous run list.
func (c *FormatSelectionCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.nodeIndex) {
			return ErrIndexOutOfBounds
		}
		switch v := d.Nodes[c.nodeIndex].(type) {
		case *document.Paragraph:
			v.Children = document.CloneInlines(c.prev)
		case *document.Heading:
			v.Children = document.CloneInlines(c.prev)
		default:
			return ErrOperationFailed
		}
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *FormatSelectionCommand) Description() string {
	return "format selection"
}
