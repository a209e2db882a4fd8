package edit

import (
	"fmt"

	"github.com/dshills/mdedit/document"
)

// FormatTextCommand OR-merges formatting flags into the content range
// [Start, End) of a paragraph or heading, splitting runs at the range
// edges. Non-text inlines pass through unchanged.
type FormatTextCommand struct {
	NodeIndex int
	Start     int
	End       int
	Format    document.Formatting

	prev     []document.Inline
	executed bool
}

// NewFormatTextCommand creates a format-text command.
func NewFormatTextCommand(nodeIndex, start, end int, format document.Formatting) *FormatTextCommand {
	return &FormatTextCommand{NodeIndex: nodeIndex, Start: start, End: end, Format: format}
}

// Execute applies the formatting.
func (c *FormatTextCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		var children *[]document.Inline
		switch v := d.Nodes[c.NodeIndex].(type) {
		case *document.Paragraph:
			children = &v.Children
		case *document.Heading:
			children = &v.Children
		default:
			return fmt.Errorf("formatting requires a paragraph or heading: %w", ErrUnsupportedOperation)
		}

		prev := document.CloneInlines(*children)
		formatted, err := formatInlines(*children, c.Start, c.End, c.Format)
		if err != nil {
			return err
		}
		*children = formatted
		c.prev = prev
		c.executed = true
		return nil
	})
}

// Undo restores the original run list.
func (c *FormatTextCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		switch v := d.Nodes[c.NodeIndex].(type) {
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
func (c *FormatTextCommand) Description() string {
	return fmt.Sprintf("format text %d..%d in node %d", c.Start, c.End, c.NodeIndex)
}
