package edit

import (
	"github.com/dshills/mdedit/document"
)

// Transaction batches commands into one atomic, undoable unit. Builder
// methods queue commands without touching the document; Commit executes
// them in order and rolls the already-applied ones back if any fails, so
// the document never keeps a partial batch. Selection changes are staged
// separately and applied only after every command succeeds.
//
// A transaction finishes exactly once, by Commit or Discard. Either call
// on a finished transaction returns ErrTransactionDone.
type Transaction struct {
	editor   *Editor
	name     string
	commands []Command
	selOps   []func(d *document.Document)
	done     bool
}

// Add queues an arbitrary command.
func (t *Transaction) Add(cmd Command) *Transaction {
	t.commands = append(t.commands, cmd)
	return t
}

// InsertText queues a text insertion into a top-level node.
func (t *Transaction) InsertText(nodeIndex, offset int, text string) *Transaction {
	return t.Add(NewInsertTextCommand(nodeIndex, offset, text))
}

// DeleteText queues removal of the content range [start, end).
func (t *Transaction) DeleteText(nodeIndex, start, end int) *Transaction {
	return t.Add(NewDeleteTextCommand(nodeIndex, start, end))
}

// FormatText queues formatting of the content range [start, end).
func (t *Transaction) FormatText(nodeIndex, start, end int, format document.Formatting) *Transaction {
	return t.Add(NewFormatTextCommand(nodeIndex, start, end, format))
}

// InsertNode queues insertion of a node at a top-level position.
func (t *Transaction) InsertNode(position int, node document.Node) *Transaction {
	return t.Add(NewInsertNodeCommand(position, node))
}

// InsertParagraph queues insertion of a paragraph.
func (t *Transaction) InsertParagraph(position int, text string) *Transaction {
	return t.Add(NewInsertParagraphCommand(position, text))
}

// InsertHeading queues insertion of a heading.
func (t *Transaction) InsertHeading(position, level int, text string) *Transaction {
	return t.Add(NewInsertHeadingCommand(position, level, text))
}

// InsertCodeBlock queues insertion of a code block.
func (t *Transaction) InsertCodeBlock(position int, code, language string) *Transaction {
	return t.Add(NewInsertCodeBlockCommand(position, code, language))
}

// DeleteNode queues removal of a top-level node.
func (t *Transaction) DeleteNode(nodeIndex int) *Transaction {
	return t.Add(NewDeleteNodeCommand(nodeIndex))
}

// MoveNode queues relocation of a top-level node.
func (t *Transaction) MoveNode(fromIndex, toIndex int) *Transaction {
	return t.Add(NewMoveNodeCommand(fromIndex, toIndex))
}

// DuplicateNode queues duplication of a top-level node.
func (t *Transaction) DuplicateNode(nodeIndex int) *Transaction {
	return t.Add(NewDuplicateNodeCommand(nodeIndex))
}

// MergeNodes queues a merge of two adjacent nodes.
func (t *Transaction) MergeNodes(firstIndex, secondIndex int) *Transaction {
	return t.Add(NewMergeNodesCommand(firstIndex, secondIndex))
}

// ConvertNodeType queues a node type conversion.
func (t *Transaction) ConvertNodeType(nodeIndex int, target ConversionType) *Transaction {
	return t.Add(NewConvertNodeTypeCommand(nodeIndex, target))
}

// FormatSelection queues formatting of the active selection.
func (t *Transaction) FormatSelection(format document.Formatting) *Transaction {
	return t.Add(NewFormatSelectionCommand(format))
}

// IndentSelection queues an indent of the selected nodes.
func (t *Transaction) IndentSelection() *Transaction {
	return t.Add(NewIndentSelectionCommand(IndentIncrease))
}

// OutdentSelection queues an outdent of the selected nodes.
func (t *Transaction) OutdentSelection() *Transaction {
	return t.Add(NewIndentSelectionCommand(IndentDecrease))
}

// CreateTable queues creation of a table.
func (t *Transaction) CreateTable(position, columns, rows int, withHeader bool) *Transaction {
	return t.Add(NewCreateTableCommand(position, columns, rows, withHeader))
}

// TableOperation queues a table mutation.
func (t *Transaction) TableOperation(nodeIndex int, op TableOperation) *Transaction {
	return t.Add(NewTableOperationsCommand(nodeIndex, op))
}

// SelectNode stages selection of a whole top-level node. Staged selections
// apply after a successful commit; an index that no longer resolves is
// skipped.
func (t *Transaction) SelectNode(index int) *Transaction {
	t.selOps = append(t.selOps, func(d *document.Document) {
		if sel, ok := d.SelectWholeNode(index); ok {
			d.Selection = &sel
		}
	})
	return t
}

// SelectTextRange stages selection of a content range within one node.
func (t *Transaction) SelectTextRange(nodeIndex, start, end int) *Transaction {
	t.selOps = append(t.selOps, func(d *document.Document) {
		if !d.ValidIndex(nodeIndex) {
			return
		}
		sel := document.NewSelection(
			document.NewPosition([]int{nodeIndex}, start),
			document.NewPosition([]int{nodeIndex}, end),
		)
		d.Selection = &sel
	})
	return t
}

// ClearSelection stages removal of the active selection.
func (t *Transaction) ClearSelection() *Transaction {
	t.selOps = append(t.selOps, func(d *document.Document) {
		d.Selection = nil
	})
	return t
}

// Len returns the number of queued commands.
func (t *Transaction) Len() int { return len(t.commands) }

// Commit executes the queued commands in order. If one fails, the commands
// already applied are undone in reverse order and the document is left as
// it was before the commit; the failing command's error is returned. On
// success the batch is pushed onto the editor's undo history as a single
// composite and the staged selection is applied.
func (t *Transaction) Commit() error {
	if t.done {
		return ErrTransactionDone
	}
	t.done = true

	for i, cmd := range t.commands {
		if err := cmd.Execute(t.editor.doc); err != nil {
			for j := i - 1; j >= 0; j-- {
				// Rollback is best-effort; the commit error wins.
				_ = t.commands[j].Undo(t.editor.doc)
			}
			return err
		}
	}

	if len(t.selOps) > 0 {
		_ = t.editor.doc.Mutate(func(d *document.Document) error {
			for _, op := range t.selOps {
				op(d)
			}
			return nil
		})
	}

	if len(t.commands) > 0 {
		t.editor.pushExecuted(NewCompositeCommand(t.name, t.commands))
	}
	return nil
}

// Discard finishes the transaction without applying anything. The queued
// commands are dropped.
func (t *Transaction) Discard() error {
	if t.done {
		return ErrTransactionDone
	}
	t.done = true
	t.commands = nil
	t.selOps = nil
	return nil
}

// Done reports whether the transaction has been committed or discarded.
func (t *Transaction) Done() bool { return t.done }
