package edit

import (
	"fmt"

	"github.com/dshills/mdedit/document"
)

// taskList resolves a top-level node as a task list.
func taskList(d *document.Document, index int) (*document.List, error) {
	if !d.ValidIndex(index) {
		return nil, ErrIndexOutOfBounds
	}
	list, ok := d.Nodes[index].(*document.List)
	if !ok {
		return nil, fmt.Errorf("node is not a list: %w", ErrUnsupportedOperation)
	}
	if list.Kind != document.Task {
		return nil, fmt.Errorf("node is not a task list: %w", ErrUnsupportedOperation)
	}
	return list, nil
}

// newTaskItem builds a checked/unchecked task item holding one paragraph.
func newTaskItem(text string, checked bool) document.ListItem {
	v := checked
	return document.ListItem{
		Children: []document.Node{document.NewParagraph(text)},
		Checked:  &v,
	}
}

// AddTaskItemCommand inserts a task item into a task list.
type AddTaskItemCommand struct {
	ListIndex int
	ItemIndex int
	Text      string
	Checked   bool

	executed bool
}

// NewAddTaskItemCommand creates an add-task-item command. The item index
// is clamped to the end of the list at execute time.
func NewAddTaskItemCommand(listIndex, itemIndex int, text string, checked bool) *AddTaskItemCommand {
	return &AddTaskItemCommand{ListIndex: listIndex, ItemIndex: itemIndex, Text: text, Checked: checked}
}

// Execute inserts the item.
func (c *AddTaskItemCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		if c.ItemIndex < 0 {
			return ErrIndexOutOfBounds
		}
		at := c.ItemIndex
		if at > len(list.Items) {
			at = len(list.Items)
		}
		item := newTaskItem(c.Text, c.Checked)
		list.Items = append(list.Items[:at], append([]document.ListItem{item}, list.Items[at:]...)...)
		c.ItemIndex = at
		c.executed = true
		return nil
	})
}

// Undo removes the inserted item.
func (c *AddTaskItemCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		if c.ItemIndex >= len(list.Items) {
			return ErrIndexOutOfBounds
		}
		list.Items = append(list.Items[:c.ItemIndex], list.Items[c.ItemIndex+1:]...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *AddTaskItemCommand) Description() string {
	return fmt.Sprintf("add task item %q to list %d", c.Text, c.ListIndex)
}

// RemoveTaskItemCommand removes a task item. The last remaining item of a
// list cannot be removed.
type RemoveTaskItemCommand struct {
	ListIndex int
	ItemIndex int

	removed  document.ListItem
	executed bool
}

// NewRemoveTaskItemCommand creates a remove-task-item command.
func NewRemoveTaskItemCommand(listIndex, itemIndex int) *RemoveTaskItemCommand {
	return &RemoveTaskItemCommand{ListIndex: listIndex, ItemIndex: itemIndex}
}

// Execute removes the item, capturing it for undo.
func (c *RemoveTaskItemCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		if c.ItemIndex < 0 || c.ItemIndex >= len(list.Items) {
			return ErrIndexOutOfBounds
		}
		if len(list.Items) == 1 {
			return fmt.Errorf("cannot remove the last task item: %w", ErrUnsupportedOperation)
		}
		c.removed = list.Items[c.ItemIndex]
		list.Items = append(list.Items[:c.ItemIndex], list.Items[c.ItemIndex+1:]...)
		c.executed = true
		return nil
	})
}

// Undo reinserts the removed item.
func (c *RemoveTaskItemCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		if c.ItemIndex > len(list.Items) {
			return ErrIndexOutOfBounds
		}
		list.Items = append(list.Items[:c.ItemIndex], append([]document.ListItem{c.removed}, list.Items[c.ItemIndex:]...)...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *RemoveTaskItemCommand) Description() string {
	return fmt.Sprintf("remove task item %d from list %d", c.ItemIndex, c.ListIndex)
}

// EditTaskItemCommand replaces a task item's text.
type EditTaskItemCommand struct {
	ListIndex int
	ItemIndex int
	Text      string

	prev     document.ListItem
	executed bool
}

// NewEditTaskItemCommand creates an edit-task-item command.
func NewEditTaskItemCommand(listIndex, itemIndex int, text string) *EditTaskItemCommand {
	return &EditTaskItemCommand{ListIndex: listIndex, ItemIndex: itemIndex, Text: text}
}

// Execute replaces the item's paragraph content.
func (c *EditTaskItemCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		if c.ItemIndex < 0 || c.ItemIndex >= len(list.Items) {
			return ErrIndexOutOfBounds
		}
		c.prev = list.Items[c.ItemIndex].Clone()
		item := &list.Items[c.ItemIndex]
		replaced := false
		for i, child := range item.Children {
			if _, ok := child.(*document.Paragraph); ok {
				item.Children[i] = document.NewParagraph(c.Text)
				replaced = true
				break
			}
		}
		if !replaced {
			item.Children = append([]document.Node{document.NewParagraph(c.Text)}, item.Children...)
		}
		c.executed = true
		return nil
	})
}

// Undo restores the item's previous content.
func (c *EditTaskItemCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		if c.ItemIndex < 0 || c.ItemIndex >= len(list.Items) {
			return ErrIndexOutOfBounds
		}
		list.Items[c.ItemIndex] = c.prev.Clone()
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *EditTaskItemCommand) Description() string {
	return fmt.Sprintf("edit task item %d in list %d", c.ItemIndex, c.ListIndex)
}

// ToggleTaskCommand flips a task item's checked state.
type ToggleTaskCommand struct {
	ListIndex int
	ItemIndex int

	executed bool
}

// NewToggleTaskCommand creates a toggle-task command.
func NewToggleTaskCommand(listIndex, itemIndex int) *ToggleTaskCommand {
	return &ToggleTaskCommand{ListIndex: listIndex, ItemIndex: itemIndex}
}

func (c *ToggleTaskCommand) flip(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}
		if c.ItemIndex < 0 || c.ItemIndex >= len(list.Items) {
			return ErrIndexOutOfBounds
		}
		item := &list.Items[c.ItemIndex]
		if item.Checked == nil {
			return fmt.Errorf("item has no task checkbox: %w", ErrInvalidNode)
		}
		v := !*item.Checked
		item.Checked = &v
		return nil
	})
}

// Execute flips the checkbox.
func (c *ToggleTaskCommand) Execute(doc *document.Shared) error {
	if err := c.flip(doc); err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo flips the checkbox back.
func (c *ToggleTaskCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	if err := c.flip(doc); err != nil {
		return err
	}
	c.executed = false
	return nil
}

// Description returns a human-readable description of the command.
func (c *ToggleTaskCommand) Description() string {
	return fmt.Sprintf("toggle task item %d in list %d", c.ItemIndex, c.ListIndex)
}

// MoveTaskItemCommand relocates a task item within its list.
type MoveTaskItemCommand struct {
	ListIndex int
	FromIndex int
	ToIndex   int

	executed bool
}

// NewMoveTaskItemCommand creates a move-task-item command targeting an
// explicit destination index.
func NewMoveTaskItemCommand(listIndex, fromIndex, toIndex int) *MoveTaskItemCommand {
	return &MoveTaskItemCommand{ListIndex: listIndex, FromIndex: fromIndex, ToIndex: toIndex}
}

// NewMoveTaskItemUpCommand moves an item one position toward the front.
func NewMoveTaskItemUpCommand(listIndex, itemIndex int) *MoveTaskItemCommand {
	return NewMoveTaskItemCommand(listIndex, itemIndex, itemIndex-1)
}

// NewMoveTaskItemDownCommand moves an item one position toward the back.
func NewMoveTaskItemDownCommand(listIndex, itemIndex int) *MoveTaskItemCommand {
	return NewMoveTaskItemCommand(listIndex, itemIndex, itemIndex+1)
}

func moveTaskItem(d *document.Document, listIndex, from, to int) error {
	list, err := taskList(d, listIndex)
	if err != nil {
		return err
	}
	if from < 0 || from >= len(list.Items) {
		return ErrIndexOutOfBounds
	}
	if to < 0 || to >= len(list.Items) {
		return fmt.Errorf("cannot move task item outside the list: %w", ErrIndexOutOfBounds)
	}
	if from == to {
		return nil
	}
	item := list.Items[from]
	list.Items = append(list.Items[:from], list.Items[from+1:]...)
	list.Items = append(list.Items[:to], append([]document.ListItem{item}, list.Items[to:]...)...)
	return nil
}

// Execute moves the item.
func (c *MoveTaskItemCommand) Execute(doc *document.Shared) error {
	err := doc.Mutate(func(d *document.Document) error {
		return moveTaskItem(d, c.ListIndex, c.FromIndex, c.ToIndex)
	})
	if err != nil {
		return err
	}
	c.executed = true
	return nil
}

// Undo moves the item back.
func (c *MoveTaskItemCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	err := doc.Mutate(func(d *document.Document) error {
		return moveTaskItem(d, c.ListIndex, c.ToIndex, c.FromIndex)
	})
	if err != nil {
		return err
	}
	c.executed = false
	return nil
}

// Description returns a human-readable description of the command.
func (c *MoveTaskItemCommand) Description() string {
	return fmt.Sprintf("move task item %d to %d in list %d", c.FromIndex, c.ToIndex, c.ListIndex)
}
