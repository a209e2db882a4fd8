package edit

import (
	"fmt"
	"sort"

	"github.com/dshills/mdedit/document"
)

// GroupNodesCommand gathers a set of top-level nodes into a named group
// node placed at the smallest of the given indices.
type GroupNodesCommand struct {
	Name    string
	Indices []int

	prevNodes []document.Node
	executed  bool
}

// NewGroupNodesCommand creates a group-nodes command.
func NewGroupNodesCommand(name string, indices []int) *GroupNodesCommand {
	return &GroupNodesCommand{Name: name, Indices: indices}
}

// Execute validates every index, removes the nodes and inserts the group.
func (c *GroupNodesCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if len(c.Indices) == 0 {
			return fmt.Errorf("no nodes to group: %w", ErrInvalidRange)
		}
		seen := make(map[int]bool, len(c.Indices))
		for _, idx := range c.Indices {
			if !d.ValidIndex(idx) {
				return ErrIndexOutOfBounds
			}
			if seen[idx] {
				return fmt.Errorf("duplicate node index %d: %w", idx, ErrInvalidRange)
			}
			seen[idx] = true
		}

		ordered := append([]int(nil), c.Indices...)
		sort.Ints(ordered)

		prev := append([]document.Node(nil), d.Nodes...)

		group := &document.Group{Name: c.Name}
		for _, idx := range ordered {
			group.Children = append(group.Children, d.Nodes[idx])
		}
		for i := len(ordered) - 1; i >= 0; i-- {
			idx := ordered[i]
			d.Nodes = append(d.Nodes[:idx], d.Nodes[idx+1:]...)
		}
		at := ordered[0]
		d.Nodes = append(d.Nodes[:at], append([]document.Node{group}, d.Nodes[at:]...)...)

		c.prevNodes = prev
		c.executed = true
		return nil
	})
}

// Undo restores the ungrouped node sequence.
func (c *GroupNodesCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		d.Nodes = append([]document.Node(nil), c.prevNodes...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *GroupNodesCommand) Description() string {
	return fmt.Sprintf("group %d nodes as %q", len(c.Indices), c.Name)
}

// UngroupNodesCommand dissolves a group node, splicing its children back
// into the top level at its position.
type UngroupNodesCommand struct {
	NodeIndex int

	prevNodes []document.Node
	executed  bool
}

// NewUngroupNodesCommand creates an ungroup command.
func NewUngroupNodesCommand(nodeIndex int) *UngroupNodesCommand {
	return &UngroupNodesCommand{NodeIndex: nodeIndex}
}

// Execute splices the group's children in place of the group.
func (c *UngroupNodesCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		group, ok := d.Nodes[c.NodeIndex].(*document.Group)
		if !ok {
			return fmt.Errorf("node is not a group: %w", ErrUnsupportedOperation)
		}

		prev := append([]document.Node(nil), d.Nodes...)
		rest := d.Nodes[c.NodeIndex+1:]
		d.Nodes = append(d.Nodes[:c.NodeIndex], append(append([]document.Node{}, group.Children...), rest...)...)

		c.prevNodes = prev
		c.executed = true
		return nil
	})
}

// Undo restores the grouped node sequence.
func (c *UngroupNodesCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		d.Nodes = append([]document.Node(nil), c.prevNodes...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *UngroupNodesCommand) Description() string {
	return fmt.Sprintf("ungroup node %d", c.NodeIndex)
}
