package edit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/mdedit/document"
)

// SortCriteria selects the ordering SortTaskListCommand applies.
type SortCriteria int

const (
	// SortAlphabetical orders items by their text, case-insensitively.
	SortAlphabetical SortCriteria = iota

	// SortUncheckedFirst puts unchecked items before checked ones,
	// preserving relative order within each group.
	SortUncheckedFirst

	// SortCheckedFirst puts checked items before unchecked ones,
	// preserving relative order within each group.
	SortCheckedFirst
)

// SortTaskListCommand reorders a task list's items.
type SortTaskListCommand struct {
	ListIndex int
	Criteria  SortCriteria

	prevItems []document.ListItem
	executed  bool
}

// NewSortTaskListCommand creates a sort-task-list command.
func NewSortTaskListCommand(listIndex int, criteria SortCriteria) *SortTaskListCommand {
	return &SortTaskListCommand{ListIndex: listIndex, Criteria: criteria}
}

// Execute sorts the items, capturing the prior order for undo.
func (c *SortTaskListCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		list, err := taskList(d, c.ListIndex)
		if err != nil {
			return err
		}

		prev := cloneItems(list.Items)

		switch c.Criteria {
		case SortAlphabetical:
			sort.SliceStable(list.Items, func(i, j int) bool {
				return strings.ToLower(list.Items[i].Text()) < strings.ToLower(list.Items[j].Text())
			})
		case SortUncheckedFirst:
			sort.SliceStable(list.Items, func(i, j int) bool {
				return !itemChecked(list.Items[i]) && itemChecked(list.Items[j])
			})
		case SortCheckedFirst:
			sort.SliceStable(list.Items, func(i, j int) bool {
				return itemChecked(list.Items[i]) && !itemChecked(list.Items[j])
			})
		default:
			return fmt.Errorf("unknown sort criteria: %w", ErrUnsupportedOperation)
		}

		c.prevItems = prev
		c.executed = true
		return nil
	})
}

// Undo restores the prior item order.
func (c *SortTaskListCommand) Undo(doc *document.Shared) error {
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
func (c *SortTaskListCommand) Description() string {
	return fmt.Sprintf("sort task list %d", c.ListIndex)
}

func itemChecked(item document.ListItem) bool {
	return item.Checked != nil && *item.Checked
}
