package edit

import (
	"fmt"

	"github.com/dshills/mdedit/document"
)

// InsertNodeCommand inserts a whole node at a top-level position.
type InsertNodeCommand struct {
	Position int
	Node     document.Node

	executed bool
}

// NewInsertNodeCommand creates an insert-node command.
func NewInsertNodeCommand(position int, node document.Node) *InsertNodeCommand {
	return &InsertNodeCommand{Position: position, Node: node}
}

// NewInsertParagraphCommand inserts a paragraph with the given text.
func NewInsertParagraphCommand(position int, text string) *InsertNodeCommand {
	return NewInsertNodeCommand(position, document.NewParagraph(text))
}

// NewInsertHeadingCommand inserts a heading with the given level and text.
func NewInsertHeadingCommand(position, level int, text string) *InsertNodeCommand {
	return NewInsertNodeCommand(position, document.NewHeading(level, text))
}

// NewInsertCodeBlockCommand inserts a code block.
func NewInsertCodeBlockCommand(position int, code, language string) *InsertNodeCommand {
	return NewInsertNodeCommand(position, document.NewCodeBlock(code, language))
}

// Execute inserts the node.
func (c *InsertNodeCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if c.Position < 0 || c.Position > len(d.Nodes) {
			return ErrIndexOutOfBounds
		}
		if c.Node == nil {
			return ErrInvalidNode
		}
		d.Nodes = append(d.Nodes[:c.Position], append([]document.Node{c.Node}, d.Nodes[c.Position:]...)...)
		c.executed = true
		return nil
	})
}

// Undo removes the inserted node.
func (c *InsertNodeCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.Position) {
			return ErrIndexOutOfBounds
		}
		d.Nodes = append(d.Nodes[:c.Position], d.Nodes[c.Position+1:]...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *InsertNodeCommand) Description() string {
	return fmt.Sprintf("insert node at %d", c.Position)
}

// InsertNodeAtPositionCommand inserts a whole node at a tree position,
// reaching into nested containers. The path's last segment is the child
// slot inside the parent container; a single-segment path addresses the
// top-level sequence.
type InsertNodeAtPositionCommand struct {
	Pos  document.Position
	Node document.Node

	executed bool
}

// NewInsertNodeAtPositionCommand creates a position-addressed node insert.
func NewInsertNodeAtPositionCommand(pos document.Position, node document.Node) *InsertNodeAtPositionCommand {
	return &InsertNodeAtPositionCommand{Pos: pos, Node: node}
}

// Execute resolves the parent container and inserts the node.
func (c *InsertNodeAtPositionCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if c.Node == nil {
			return ErrInvalidNode
		}
		children, err := containerChildren(d, c.Pos.Path)
		if err != nil {
			return err
		}
		slot := c.Pos.Path[len(c.Pos.Path)-1]
		if slot < 0 || slot > len(*children) {
			return ErrIndexOutOfBounds
		}
		*children = append((*children)[:slot], append([]document.Node{c.Node}, (*children)[slot:]...)...)
		c.executed = true
		return nil
	})
}

// Undo removes the inserted node from its container.
func (c *InsertNodeAtPositionCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		children, err := containerChildren(d, c.Pos.Path)
		if err != nil {
			return err
		}
		slot := c.Pos.Path[len(c.Pos.Path)-1]
		if slot < 0 || slot >= len(*children) {
			return ErrIndexOutOfBounds
		}
		*children = append((*children)[:slot], (*children)[slot+1:]...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *InsertNodeAtPositionCommand) Description() string {
	return fmt.Sprintf("insert node at path %v", c.Pos.Path)
}

// containerChildren resolves a path's parent container to its mutable child
// slice. Only nodes that own an ordered block sequence qualify.
func containerChildren(d *document.Document, path []int) (*[]document.Node, error) {
	if len(path) == 0 {
		return nil, ErrIndexOutOfBounds
	}
	if len(path) == 1 {
		return &d.Nodes, nil
	}
	parent := d.NodeAtPath(path[:len(path)-1])
	if parent == nil {
		return nil, ErrIndexOutOfBounds
	}
	switch v := parent.(type) {
	case *document.BlockQuote:
		return &v.Children, nil
	case *document.Group:
		return &v.Children, nil
	case *document.FootnoteDefinition:
		return &v.Content, nil
	default:
		return nil, fmt.Errorf("node kind %T cannot hold block children: %w", parent, ErrUnsupportedOperation)
	}
}

// DeleteNodeCommand removes a top-level node.
type DeleteNodeCommand struct {
	NodeIndex int

	removed  document.Node
	executed bool
}

// NewDeleteNodeCommand creates a delete-node command.
func NewDeleteNodeCommand(nodeIndex int) *DeleteNodeCommand {
	return &DeleteNodeCommand{NodeIndex: nodeIndex}
}

// Execute removes the node, capturing it for undo.
func (c *DeleteNodeCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		c.removed = d.Nodes[c.NodeIndex]
		d.Nodes = append(d.Nodes[:c.NodeIndex], d.Nodes[c.NodeIndex+1:]...)
		c.executed = true
		return nil
	})
}

// Undo reinserts the removed node at its original index.
func (c *DeleteNodeCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if c.NodeIndex < 0 || c.NodeIndex > len(d.Nodes) {
			return ErrIndexOutOfBounds
		}
		d.Nodes = append(d.Nodes[:c.NodeIndex], append([]document.Node{c.removed}, d.Nodes[c.NodeIndex:]...)...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *DeleteNodeCommand) Description() string {
	return fmt.Sprintf("delete node %d", c.NodeIndex)
}

// MoveNodeCommand relocates a top-level node.
type MoveNodeCommand struct {
	FromIndex int
	ToIndex   int

	placedAt int
	executed bool
}

// NewMoveNodeCommand creates a move-node command.
func NewMoveNodeCommand(fromIndex, toIndex int) *MoveNodeCommand {
	return &MoveNodeCommand{FromIndex: fromIndex, ToIndex: toIndex}
}

// Execute removes the node from its position and reinserts it at the
// target, clamped to the sequence end.
func (c *MoveNodeCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.FromIndex) || c.ToIndex < 0 {
			return ErrIndexOutOfBounds
		}
		node := d.Nodes[c.FromIndex]
		d.Nodes = append(d.Nodes[:c.FromIndex], d.Nodes[c.FromIndex+1:]...)
		at := c.ToIndex
		if at > len(d.Nodes) {
			at = len(d.Nodes)
		}
		d.Nodes = append(d.Nodes[:at], append([]document.Node{node}, d.Nodes[at:]...)...)
		c.placedAt = at
		c.executed = true
		return nil
	})
}

// Undo moves the node back to its original position.
func (c *MoveNodeCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.placedAt) {
			return ErrIndexOutOfBounds
		}
		node := d.Nodes[c.placedAt]
		d.Nodes = append(d.Nodes[:c.placedAt], d.Nodes[c.placedAt+1:]...)
		at := c.FromIndex
		if at > len(d.Nodes) {
			at = len(d.Nodes)
		}
		d.Nodes = append(d.Nodes[:at], append([]document.Node{node}, d.Nodes[at:]...)...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *MoveNodeCommand) Description() string {
	return fmt.Sprintf("move node %d to %d", c.FromIndex, c.ToIndex)
}

// DuplicateNodeCommand inserts a deep copy of a node directly after the
// original.
type DuplicateNodeCommand struct {
	NodeIndex int

	executed bool
}

// NewDuplicateNodeCommand creates a duplicate-node command.
func NewDuplicateNodeCommand(nodeIndex int) *DuplicateNodeCommand {
	return &DuplicateNodeCommand{NodeIndex: nodeIndex}
}

// Execute clones the node and inserts the copy after it.
func (c *DuplicateNodeCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		clone := d.Nodes[c.NodeIndex].Clone()
		at := c.NodeIndex + 1
		d.Nodes = append(d.Nodes[:at], append([]document.Node{clone}, d.Nodes[at:]...)...)
		c.executed = true
		return nil
	})
}

// Undo removes the inserted copy.
func (c *DuplicateNodeCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		at := c.NodeIndex + 1
		if !d.ValidIndex(at) {
			return ErrIndexOutOfBounds
		}
		d.Nodes = append(d.Nodes[:at], d.Nodes[at+1:]...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *DuplicateNodeCommand) Description() string {
	return fmt.Sprintf("duplicate node %d", c.NodeIndex)
}

// MergeNodesCommand joins two adjacent nodes of the same kind: paragraphs
// concatenate their run lists, code blocks with the same language
// concatenate their code with a newline.
type MergeNodesCommand struct {
	FirstIndex  int
	SecondIndex int

	prevFirst  document.Node
	prevSecond document.Node
	executed   bool
}

// NewMergeNodesCommand creates a merge-nodes command.
func NewMergeNodesCommand(firstIndex, secondIndex int) *MergeNodesCommand {
	return &MergeNodesCommand{FirstIndex: firstIndex, SecondIndex: secondIndex}
}

// Execute merges the second node into the first and removes it.
func (c *MergeNodesCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.FirstIndex) || !d.ValidIndex(c.SecondIndex) {
			return ErrIndexOutOfBounds
		}
		if c.SecondIndex != c.FirstIndex+1 {
			return fmt.Errorf("merge requires adjacent nodes: %w", ErrUnsupportedOperation)
		}

		first := d.Nodes[c.FirstIndex]
		second := d.Nodes[c.SecondIndex]
		prevFirst := first.Clone()
		prevSecond := second.Clone()

		switch f := first.(type) {
		case *document.Paragraph:
			s, ok := second.(*document.Paragraph)
			if !ok {
				return fmt.Errorf("cannot merge paragraph with other node kind: %w", ErrUnsupportedOperation)
			}
			f.Children = append(f.Children, s.Children...)
		case *document.CodeBlock:
			s, ok := second.(*document.CodeBlock)
			if !ok {
				return fmt.Errorf("cannot merge code block with other node kind: %w", ErrUnsupportedOperation)
			}
			if f.Language != s.Language {
				return fmt.Errorf("cannot merge code blocks with different languages: %w", ErrUnsupportedOperation)
			}
			f.Code = f.Code + "\n" + s.Code
		default:
			return fmt.Errorf("node kind does not support merging: %w", ErrUnsupportedOperation)
		}

		d.Nodes = append(d.Nodes[:c.SecondIndex], d.Nodes[c.SecondIndex+1:]...)
		c.prevFirst = prevFirst
		c.prevSecond = prevSecond
		c.executed = true
		return nil
	})
}

// Undo restores both original nodes.
func (c *MergeNodesCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.FirstIndex) || c.SecondIndex > len(d.Nodes) {
			return ErrIndexOutOfBounds
		}
		d.Nodes[c.FirstIndex] = c.prevFirst
		d.Nodes = append(d.Nodes[:c.SecondIndex], append([]document.Node{c.prevSecond}, d.Nodes[c.SecondIndex:]...)...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *MergeNodesCommand) Description() string {
	return fmt.Sprintf("merge nodes %d and %d", c.FirstIndex, c.SecondIndex)
}
