package edit

import (
	"fmt"

	"github.com/dshills/mdedit/document"
)

// IndentTaskItemCommand nests a task item under the item before it,
// appending to (or creating) a nested task list inside the previous item.
type IndentTaskItemCommand struct {
	ListIndex int
	ItemIndex int

	prevItems []document.ListItem
	executed  bool
}

// NewIndentTaskItemCommand creates an indent-task-item command.
func NewIndentTaskItemCommand(listIndex, itemIndex int) *IndentTaskItemCommand {
	return &IndentTaskItemCommand{ListIndex: listIndex, ItemIndex: itemIndex}
}

// Execute reparents the item into the previous sibling's nested list.
func (c *IndentTaskItemCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		if c.ItemIndex < 0 || c.ItemIndex >= len(list.Items) {
			return ErrIndexOutOfBounds
		}
		if c.ItemIndex == 0 {
			return fmt.Errorf("cannot indent the first item: %w", ErrUnsupportedOperation)
		}

		prev := cloneItems(list.Items)

		item := list.Items[c.ItemIndex]
		list.Items = append(list.Items[:c.ItemIndex], list.Items[c.ItemIndex+1:]...)

		parent := &list.Items[c.ItemIndex-1]
		var nested *document.List
		for _, child := range parent.Children {
			if sub, ok := child.(*document.List); ok && sub.Kind == document.Task {
				nested = sub
				break
			}
		}
		if nested == nil {
			nested = &document.List{Kind: document.Task}
			parent.Children = append(parent.Children, nested)
		}
		nested.Items = append(nested.Items, item)

		c.prevItems = prev
		c.executed = true
		return nil
	})
}

// Undo restores the list's prior item shape.
func (c *IndentTaskItemCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		list.Items = cloneItems(c.prevItems)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *IndentTaskItemCommand) Description() string {
	return fmt.Sprintf("indent task item %d in list %d", c.ItemIndex, c.ListIndex)
}

// DedentTaskItemCommand promotes the last item of a nested task list back
// into the outer list, directly after its former parent.
type DedentTaskItemCommand struct {
	ListIndex int
	ItemIndex int

	prevItems []document.ListItem
	executed  bool
}

// NewDedentTaskItemCommand creates a dedent-task-item command. ItemIndex
// addresses the outer item whose nested list loses its last entry.
func NewDedentTaskItemCommand(listIndex, itemIndex int) *DedentTaskItemCommand {
	return &DedentTaskItemCommand{ListIndex: listIndex, ItemIndex: itemIndex}
}

// Execute promotes the nested item.
func (c *DedentTaskItemCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		if c.ItemIndex < 0 || c.ItemIndex >= len(list.Items) {
			return ErrIndexOutOfBounds
		}

		parent := &list.Items[c.ItemIndex]
		var nested *document.List
		nestedAt := -1
		for i, child := range parent.Children {
			if sub, ok := child.(*document.List); ok && sub.Kind == document.Task {
				nested = sub
				nestedAt = i
				break
			}
		}
		if nested == nil || len(nested.Items) == 0 {
			return fmt.Errorf("item has no nested task list to outdent from: %w", ErrUnsupportedOperation)
		}

		prev := cloneItems(list.Items)

		item := nested.Items[len(nested.Items)-1]
		nested.Items = nested.Items[:len(nested.Items)-1]
		if len(nested.Items) == 0 {
			parent.Children = append(parent.Children[:nestedAt], parent.Children[nestedAt+1:]...)
		}

		at := c.ItemIndex + 1
		list.Items = append(list.Items[:at], append([]document.ListItem{item}, list.Items[at:]...)...)

		c.prevItems = prev
		c.executed = true
		return nil
	})
}

// Undo restores the list's prior item shape.
func (c *DedentTaskItemCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		list.Items = cloneItems(c.prevItems)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *DedentTaskItemCommand) Description() string {
	return fmt.Sprintf("dedent nested task item under item %d in list %d", c.ItemIndex, c.ListIndex)
}

func cloneItems(items []document.ListItem) []document.ListItem {
	out := make([]document.ListItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
