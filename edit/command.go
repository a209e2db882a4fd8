package edit

import (
	"github.com/dshills/mdedit/document"
)

// Command represents a composable edit action that can be executed and
// undone. Execute applies the mutation and captures whatever pre-mutation
// state is needed to reverse it; Undo restores that state exactly.
// Execute-then-Undo must leave the document unchanged, and Undo without a
// prior successful Execute reports ErrOperationFailed.
type Command interface {
	// Execute performs the command against the shared document.
	Execute(doc *document.Shared) error

	// Undo reverses the command against the shared document.
	Undo(doc *document.Shared) error

	// Description returns a human-readable description of the command.
	Description() string
}

// CompositeCommand combines multiple commands into a single undo/redo
// unit. The Editor wraps a committed transaction's command list in one of
// these so the whole batch undoes and redoes together.
type CompositeCommand struct {
	Name     string
	Commands []Command
}

// NewCompositeCommand creates a composite over an ordered command list.
func NewCompositeCommand(name string, commands []Command) *CompositeCommand {
	return &CompositeCommand{Name: name, Commands: commands}
}

// Execute runs each wrapped command in order. If one fails, the commands
// already executed are undone in reverse order and the original error is
// returned. Redo of a committed transaction goes through here, so the
// forward effects are genuinely re-applied rather than assumed present.
func (c *CompositeCommand) Execute(doc *document.Shared) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(doc); err != nil {
			for j := i - 1; j >= 0; j-- {
				// Rollback is best-effort; the original error wins.
				_ = c.Commands[j].Undo(doc)
			}
			return err
		}
	}
	return nil
}

// Undo reverses every wrapped command in reverse order.
func (c *CompositeCommand) Undo(doc *document.Shared) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(doc); err != nil {
			return err
		}
	}
	return nil
}

// Description returns the composite's name, or a default when unnamed.
func (c *CompositeCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	return "composite edit"
}
