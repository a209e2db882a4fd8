package edit

import (
	"fmt"

	"github.com/dshills/mdedit/document"
)

// textState is the captured pre-mutation content of a text-bearing node:
// the run list for paragraphs and headings, the code string for code
// blocks.
type textState struct {
	children []document.Inline
	code     string
	isCode   bool
}

func captureText(n document.Node) (textState, error) {
	switch v := n.(type) {
	case *document.Paragraph:
		return textState{children: document.CloneInlines(v.Children)}, nil
	case *document.Heading:
		return textState{children: document.CloneInlines(v.Children)}, nil
	case *document.CodeBlock:
		return textState{code: v.Code, isCode: true}, nil
	default:
		return textState{}, fmt.Errorf("node has no editable text: %w", ErrUnsupportedOperation)
	}
}

func restoreText(n document.Node, st textState) error {
	switch v := n.(type) {
	case *document.Paragraph:
		v.Children = document.CloneInlines(st.children)
	case *document.Heading:
		v.Children = document.CloneInlines(st.children)
	case *document.CodeBlock:
		v.Code = st.code
	default:
		return ErrOperationFailed
	}
	return nil
}

// InsertTextCommand inserts text into a top-level node at a content
// offset, splitting a formatted run when the offset falls inside one.
type InsertTextCommand struct {
	NodeIndex int
	Offset    int
	Text      string

	prev     textState
	executed bool
}

// NewInsertTextCommand creates an insert-text command.
func NewInsertTextCommand(nodeIndex, offset int, text string) *InsertTextCommand {
	return &InsertTextCommand{NodeIndex: nodeIndex, Offset: offset, Text: text}
}

// Execute inserts the text.
func (c *InsertTextCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		node := d.Nodes[c.NodeIndex]
		prev, err := captureText(node)
		if err != nil {
			return err
		}
		if err := insertTextInNode(node, c.Offset, c.Text); err != nil {
			return err
		}
		c.prev = prev
		c.executed = true
		return nil
	})
}

// Undo restores the node's previous content.
func (c *InsertTextCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		if err := restoreText(d.Nodes[c.NodeIndex], c.prev); err != nil {
			return err
		}
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *InsertTextCommand) Description() string {
	return fmt.Sprintf("insert %q at node %d offset %d", c.Text, c.NodeIndex, c.Offset)
}

// insertTextInNode inserts text into any text-bearing node at a content
// offset. Zero-length inserts succeed without touching the node.
func insertTextInNode(node document.Node, offset int, text string) error {
	if text == "" {
		return nil
	}
	switch v := node.(type) {
	case *document.Paragraph:
		children, err := insertIntoInlines(v.Children, offset, text)
		if err != nil {
			return err
		}
		v.Children = children
	case *document.Heading:
		children, err := insertIntoInlines(v.Children, offset, text)
		if err != nil {
			return err
		}
		v.Children = children
	case *document.CodeBlock:
		if offset < 0 || offset > len(v.Code) {
			return ErrInvalidRange
		}
		v.Code = v.Code[:offset] + text + v.Code[offset:]
	default:
		return fmt.Errorf("node has no editable text: %w", ErrUnsupportedOperation)
	}
	return nil
}

// DeleteTextCommand removes the content range [Start, End) from a
// top-level node.
type DeleteTextCommand struct {
	NodeIndex int
	Start     int
	End       int

	prev     textState
	executed bool
}

// NewDeleteTextCommand creates a delete-text command.
func NewDeleteTextCommand(nodeIndex, start, end int) *DeleteTextCommand {
	return &DeleteTextCommand{NodeIndex: nodeIndex, Start: start, End: end}
}

// Execute removes the text range.
func (c *DeleteTextCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		node := d.Nodes[c.NodeIndex]
		prev, err := captureText(node)
		if err != nil {
			return err
		}
		switch v := node.(type) {
		case *document.Paragraph:
			children, err := deleteFromInlines(v.Children, c.Start, c.End)
			if err != nil {
				return err
			}
			v.Children = children
		case *document.Heading:
			children, err := deleteFromInlines(v.Children, c.Start, c.End)
			if err != nil {
				return err
			}
			v.Children = children
		case *document.CodeBlock:
			if c.Start < 0 || c.Start >= c.End || c.End > len(v.Code) {
				return ErrInvalidRange
			}
			v.Code = v.Code[:c.Start] + v.Code[c.End:]
		}
		c.prev = prev
		c.executed = true
		return nil
	})
}

// Undo restores the node's previous content.
func (c *DeleteTextCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		if err := restoreText(d.Nodes[c.NodeIndex], c.prev); err != nil {
			return err
		}
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *DeleteTextCommand) Description() string {
	return fmt.Sprintf("delete text %d..%d in node %d", c.Start, c.End, c.NodeIndex)
}

// InsertTextAtPositionCommand inserts text at a tree position, allowing
// edits inside nested nodes (block quote children, grouped nodes).
type InsertTextAtPositionCommand struct {
	Pos  document.Position
	Text string

	target   document.Node
	prev     textState
	executed bool
}

// NewInsertTextAtPositionCommand creates a position-addressed insert.
func NewInsertTextAtPositionCommand(pos document.Position, text string) *InsertTextAtPositionCommand {
	return &InsertTextAtPositionCommand{Pos: pos, Text: text}
}

// Execute resolves the position and inserts the text.
func (c *InsertTextAtPositionCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		node := d.NodeAtPath(c.Pos.Path)
		if node == nil {
			return ErrIndexOutOfBounds
		}
		prev, err := captureText(node)
		if err != nil {
			return err
		}
		if err := insertTextInNode(node, c.Pos.Offset, c.Text); err != nil {
			return err
		}
		c.target = node
		c.prev = prev
		c.executed = true
		return nil
	})
}

// Undo restores the addressed node's previous content.
func (c *InsertTextAtPositionCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(*document.Document) error {
		if err := restoreText(c.target, c.prev); err != nil {
			return err
		}
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *InsertTextAtPositionCommand) Description() string {
	return fmt.Sprintf("insert %q at path %v offset %d", c.Text, c.Pos.Path, c.Pos.Offset)
}
