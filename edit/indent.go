package edit

import (
	"fmt"
	"strings"

	"github.com/dshills/mdedit/document"
)

// IndentDirection selects whether an indent command pushes content deeper
// or pulls it back out.
type IndentDirection int

const (
	IndentIncrease IndentDirection = iota
	IndentDecrease
)

// IndentSelectionCommand shifts the nodes covered by the active selection
// one indent level. Lists merge into a preceding list of the same kind on
// increase, block quotes nest or unwrap, code blocks gain or lose four
// spaces per line, and any other node wraps into a block quote on increase
// and passes through on decrease.
type IndentSelectionCommand struct {
	Direction IndentDirection

	startIndex int
	prevNodes  []document.Node
	newCount   int
	executed   bool
}

// NewIndentSelectionCommand creates an indent-selection command.
func NewIndentSelectionCommand(direction IndentDirection) *IndentSelectionCommand {
	return &IndentSelectionCommand{Direction: direction}
}

// Execute shifts the covered nodes.
func (c *IndentSelectionCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if d.Selection == nil {
			return ErrNoSelection
		}
		sel := d.Selection.Normalized()
		start, end := sel.Start.NodeIndex(), sel.End.NodeIndex()
		if start < 0 || end < 0 || start >= len(d.Nodes) || end >= len(d.Nodes) {
			return ErrIndexOutOfBounds
		}

		// A selected list can merge into the list just before the
		// selection, so the undo window includes that neighbor.
		lo := start
		if c.Direction == IndentIncrease && start > 0 {
			lo = start - 1
		}

		// Work on deep copies: indentNode edits code blocks in place and
		// merging extends a neighboring list, and a failure partway
		// through must leave the tree untouched.
		prev := document.CloneNodes(d.Nodes[lo : end+1])
		work := document.CloneNodes(d.Nodes[lo : end+1])

		replaced := append([]document.Node(nil), work[:start-lo]...)
		for _, node := range work[start-lo:] {
			if c.Direction == IndentIncrease && mergeIntoPrecedingList(replaced, node) {
				continue
			}
			out, err := indentNode(node, c.Direction)
			if err != nil {
				return err
			}
			replaced = append(replaced, out...)
		}

		d.Nodes = append(d.Nodes[:lo], append(replaced, d.Nodes[end+1:]...)...)

		c.startIndex = lo
		c.prevNodes = prev
		c.newCount = len(replaced)
		c.executed = true
		return nil
	})
}

// mergeIntoPrecedingList folds a list's items into the list directly before
// it when their kinds match, reporting whether the merge happened.
func mergeIntoPrecedingList(out []document.Node, node document.Node) bool {
	list, ok := node.(*document.List)
	if !ok || len(out) == 0 {
		return false
	}
	prev, ok := out[len(out)-1].(*document.List)
	if !ok || prev.Kind != list.Kind {
		return false
	}
	prev.Items = append(prev.Items, list.Items...)
	return true
}

// Undo restores the original node slice.
func (c *IndentSelectionCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if c.startIndex+c.newCount > len(d.Nodes) {
			return ErrIndexOutOfBounds
		}
		rest := d.Nodes[c.startIndex+c.newCount:]
		d.Nodes = append(d.Nodes[:c.startIndex], append(append([]document.Node{}, c.prevNodes...), rest...)...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *IndentSelectionCommand) Description() string {
	if c.Direction == IndentDecrease {
		return "outdent selection"
	}
	return "indent selection"
}

// indentNode shifts one node a level, returning the node(s) that take its
// place. Unwrapping a block quote can yield several nodes.
func indentNode(node document.Node, dir IndentDirection) ([]document.Node, error) {
	switch v := node.(type) {
	case *document.CodeBlock:
		if dir == IndentIncrease {
			v.Code = indentLines(v.Code, "    ")
		} else {
			v.Code = dedentLines(v.Code, 4)
		}
		return []document.Node{v}, nil

	case *document.List:
		// Lists shift level by merging into a compatible neighbor, which
		// Execute handles; a list with no partner stays where it is.
		return []document.Node{v}, nil

	case *document.BlockQuote:
		if dir == IndentIncrease {
			return []document.Node{&document.BlockQuote{Children: []document.Node{v}}}, nil
		}
		if len(v.Children) == 0 {
			return nil, fmt.Errorf("cannot outdent an empty block quote: %w", ErrInvalidNode)
		}
		return v.Children, nil

	default:
		if dir == IndentIncrease {
			return []document.Node{&document.BlockQuote{Children: []document.Node{node}}}, nil
		}
		return []document.Node{node}, nil
	}
}

func indentLines(code, prefix string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func dedentLines(code string, width int) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		n := 0
		for n < width && n < len(line) && line[n] == ' ' {
			n++
		}
		lines[i] = line[n:]
	}
	return strings.Join(lines, "\n")
}
