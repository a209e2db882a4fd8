package edit

import (
	"github.com/dshills/mdedit/document"
)

// Editor owns the shared document of an editing session and its undo/redo
// history. Every mutating method builds the matching command, executes it,
// and pushes it onto the undo stack; a new mutation clears the redo stack.
// Both stacks are bounded, evicting their oldest entry when full.
type Editor struct {
	doc        *document.Shared
	undoStack  []Command
	redoStack  []Command
	maxHistory int
}

// New creates an editor over an empty document.
func New(opts ...Option) *Editor {
	e := &Editor{
		doc:        document.NewShared(nil),
		maxHistory: DefaultMaxHistory,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the shared document handle.
func (e *Editor) Document() *document.Shared { return e.doc }

// Read runs fn with read access to the document.
func (e *Editor) Read(fn func(*document.Document)) { e.doc.Read(fn) }

// Execute runs a command and records it in the undo history.
func (e *Editor) Execute(cmd Command) error {
	if err := cmd.Execute(e.doc); err != nil {
		return err
	}
	e.pushExecuted(cmd)
	return nil
}

// pushExecuted records an already-applied command, clearing the redo stack
// and evicting the oldest history entries beyond the cap.
func (e *Editor) pushExecuted(cmd Command) {
	e.undoStack = append(e.undoStack, cmd)
	if excess := len(e.undoStack) - e.maxHistory; excess > 0 {
		e.undoStack = e.undoStack[excess:]
	}
	e.redoStack = nil
}

// Undo reverses the most recent command and moves it to the redo stack.
func (e *Editor) Undo() error {
	if len(e.undoStack) == 0 {
		return ErrNothingToUndo
	}
	cmd := e.undoStack[len(e.undoStack)-1]
	if err := cmd.Undo(e.doc); err != nil {
		return err
	}
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.redoStack = append(e.redoStack, cmd)
	if excess := len(e.redoStack) - e.maxHistory; excess > 0 {
		e.redoStack = e.redoStack[excess:]
	}
	return nil
}

// Redo re-applies the most recently undone command.
func (e *Editor) Redo() error {
	if len(e.redoStack) == 0 {
		return ErrNothingToRedo
	}
	cmd := e.redoStack[len(e.redoStack)-1]
	if err := cmd.Execute(e.doc); err != nil {
		return err
	}
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	e.undoStack = append(e.undoStack, cmd)
	if excess := len(e.undoStack) - e.maxHistory; excess > 0 {
		e.undoStack = e.undoStack[excess:]
	}
	return nil
}

// CanUndo reports whether the undo stack holds anything.
func (e *Editor) CanUndo() bool { return len(e.undoStack) > 0 }

// CanRedo reports whether the redo stack holds anything.
func (e *Editor) CanRedo() bool { return len(e.redoStack) > 0 }

// UndoDepth returns the number of undoable commands.
func (e *Editor) UndoDepth() int { return len(e.undoStack) }

// RedoDepth returns the number of redoable commands.
func (e *Editor) RedoDepth() int { return len(e.redoStack) }

// ClearHistory drops both stacks.
func (e *Editor) ClearHistory() {
	e.undoStack = nil
	e.redoStack = nil
}

// MaxHistory returns the history cap.
func (e *Editor) MaxHistory() int { return e.maxHistory }

// SetMaxHistory changes the history cap, evicting the oldest entries of
// both stacks if they exceed the new bound. Values below one are ignored.
func (e *Editor) SetMaxHistory(n int) {
	if n < 1 {
		return
	}
	e.maxHistory = n
	if excess := len(e.undoStack) - n; excess > 0 {
		e.undoStack = e.undoStack[excess:]
	}
	if excess := len(e.redoStack) - n; excess > 0 {
		e.redoStack = e.redoStack[excess:]
	}
}

// BeginTransaction starts an atomic command batch. The returned
// transaction queues commands and applies them all-or-nothing at Commit.
func (e *Editor) BeginTransaction(name string) *Transaction {
	return &Transaction{editor: e, name: name}
}

// WithTransaction runs fn against a fresh transaction and commits it when
// fn returns nil. A transaction fn leaves unfinished is discarded, whether
// fn failed or simply returned without committing.
func (e *Editor) WithTransaction(name string, fn func(*Transaction) error) error {
	tx := e.BeginTransaction(name)
	defer func() {
		if !tx.Done() {
			_ = tx.Discard()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if tx.Done() {
		return nil
	}
	return tx.Commit()
}

// Text editing.

// InsertText inserts text into a top-level node at a content offset.
func (e *Editor) InsertText(nodeIndex, offset int, text string) error {
	return e.Execute(NewInsertTextCommand(nodeIndex, offset, text))
}

// InsertTextAt inserts text at a tree position, reaching nested nodes.
func (e *Editor) InsertTextAt(pos document.Position, text string) error {
	return e.Execute(NewInsertTextAtPositionCommand(pos, text))
}

// DeleteText removes the content range [start, end) from a node.
func (e *Editor) DeleteText(nodeIndex, start, end int) error {
	return e.Execute(NewDeleteTextCommand(nodeIndex, start, end))
}

// FormatText merges formatting into the content range [start, end).
func (e *Editor) FormatText(nodeIndex, start, end int, format document.Formatting) error {
	return e.Execute(NewFormatTextCommand(nodeIndex, start, end, format))
}

// Node editing.

// InsertNode inserts a node at a top-level position.
func (e *Editor) InsertNode(position int, node document.Node) error {
	return e.Execute(NewInsertNodeCommand(position, node))
}

// InsertParagraph inserts a paragraph.
func (e *Editor) InsertParagraph(position int, text string) error {
	return e.Execute(NewInsertParagraphCommand(position, text))
}

// InsertHeading inserts a heading.
func (e *Editor) InsertHeading(position, level int, text string) error {
	return e.Execute(NewInsertHeadingCommand(position, level, text))
}

// InsertCodeBlock inserts a code block.
func (e *Editor) InsertCodeBlock(position int, code, language string) error {
	return e.Execute(NewInsertCodeBlockCommand(position, code, language))
}

// InsertNodeAt inserts a node at a tree position, reaching into nested
// containers.
func (e *Editor) InsertNodeAt(pos document.Position, node document.Node) error {
	return e.Execute(NewInsertNodeAtPositionCommand(pos, node))
}

// DeleteNode removes a top-level node.
func (e *Editor) DeleteNode(nodeIndex int) error {
	return e.Execute(NewDeleteNodeCommand(nodeIndex))
}

// MoveNode relocates a top-level node.
func (e *Editor) MoveNode(fromIndex, toIndex int) error {
	return e.Execute(NewMoveNodeCommand(fromIndex, toIndex))
}

// DuplicateNode inserts a deep copy of a node after the original.
func (e *Editor) DuplicateNode(nodeIndex int) error {
	return e.Execute(NewDuplicateNodeCommand(nodeIndex))
}

// MergeNodes joins two adjacent nodes of the same kind.
func (e *Editor) MergeNodes(firstIndex, secondIndex int) error {
	return e.Execute(NewMergeNodesCommand(firstIndex, secondIndex))
}

// ConvertNodeType rebuilds a node as a different kind.
func (e *Editor) ConvertNodeType(nodeIndex int, target ConversionType) error {
	return e.Execute(NewConvertNodeTypeCommand(nodeIndex, target))
}

// GroupNodes gathers top-level nodes into a named group.
func (e *Editor) GroupNodes(name string, indices []int) error {
	return e.Execute(NewGroupNodesCommand(name, indices))
}

// UngroupNodes dissolves a group node in place.
func (e *Editor) UngroupNodes(nodeIndex int) error {
	return e.Execute(NewUngroupNodesCommand(nodeIndex))
}

// Task lists.

// AddTaskItem inserts a task item into a task list.
func (e *Editor) AddTaskItem(listIndex, itemIndex int, text string, checked bool) error {
	return e.Execute(NewAddTaskItemCommand(listIndex, itemIndex, text, checked))
}

// RemoveTaskItem removes a task item.
func (e *Editor) RemoveTaskItem(listIndex, itemIndex int) error {
	return e.Execute(NewRemoveTaskItemCommand(listIndex, itemIndex))
}

// EditTaskItem replaces a task item's text.
func (e *Editor) EditTaskItem(listIndex, itemIndex int, text string) error {
	return e.Execute(NewEditTaskItemCommand(listIndex, itemIndex, text))
}

// ToggleTask flips a task item's checked state.
func (e *Editor) ToggleTask(listIndex, itemIndex int) error {
	return e.Execute(NewToggleTaskCommand(listIndex, itemIndex))
}

// MoveTaskItem relocates a task item within its list.
func (e *Editor) MoveTaskItem(listIndex, fromIndex, toIndex int) error {
	return e.Execute(NewMoveTaskItemCommand(listIndex, fromIndex, toIndex))
}

// MoveTaskItemUp moves a task item one position toward the front.
func (e *Editor) MoveTaskItemUp(listIndex, itemIndex int) error {
	return e.Execute(NewMoveTaskItemUpCommand(listIndex, itemIndex))
}

// MoveTaskItemDown moves a task item one position toward the back.
func (e *Editor) MoveTaskItemDown(listIndex, itemIndex int) error {
	return e.Execute(NewMoveTaskItemDownCommand(listIndex, itemIndex))
}

// IndentTaskItem nests a task item under its previous sibling.
func (e *Editor) IndentTaskItem(listIndex, itemIndex int) error {
	return e.Execute(NewIndentTaskItemCommand(listIndex, itemIndex))
}

// DedentTaskItem promotes a nested task item back into the outer list.
func (e *Editor) DedentTaskItem(listIndex, itemIndex int) error {
	return e.Execute(NewDedentTaskItemCommand(listIndex, itemIndex))
}

// SortTaskList reorders a task list's items.
func (e *Editor) SortTaskList(listIndex int, criteria SortCriteria) error {
	return e.Execute(NewSortTaskListCommand(listIndex, criteria))
}

// Tables.

// CreateTable places a new empty table at a top-level position.
func (e *Editor) CreateTable(position, columns, rows int, withHeader bool) error {
	return e.Execute(NewCreateTableCommand(position, columns, rows, withHeader))
}

// TableOperation applies one table mutation.
func (e *Editor) TableOperation(nodeIndex int, op TableOperation) error {
	return e.Execute(NewTableOperationsCommand(nodeIndex, op))
}

// Search.

// FindReplace replaces every occurrence of find across the document and
// returns how many it replaced.
func (e *Editor) FindReplace(find, replace string, caseSensitive bool) (int, error) {
	cmd := NewFindReplaceCommand(find, replace, caseSensitive)
	if err := e.Execute(cmd); err != nil {
		return 0, err
	}
	return cmd.Replacements(), nil
}

// CreateTOC inserts a generated table of contents.
func (e *Editor) CreateTOC(position, maxLevel int) error {
	return e.Execute(NewCreateTOCCommand(position, maxLevel))
}

// Selection-scoped editing.

// CutSelection removes the selected content and returns it as plain text.
func (e *Editor) CutSelection() (string, error) {
	cmd := NewCutSelectionCommand()
	if err := e.Execute(cmd); err != nil {
		return "", err
	}
	return cmd.Text(), nil
}

// CopySelection returns the selected text without mutating the document.
func (e *Editor) CopySelection() (string, error) {
	return CopySelection(e.doc)
}

// FormatSelection merges formatting into the active selection's range.
func (e *Editor) FormatSelection(format document.Formatting) error {
	return e.Execute(NewFormatSelectionCommand(format))
}

// IndentSelection shifts the selected nodes one indent level deeper.
func (e *Editor) IndentSelection() error {
	return e.Execute(NewIndentSelectionCommand(IndentIncrease))
}

// OutdentSelection pulls the selected nodes one indent level back out.
func (e *Editor) OutdentSelection() error {
	return e.Execute(NewIndentSelectionCommand(IndentDecrease))
}

// Selection management. Selection changes are direct state, not commands:
// they do not enter the undo history.

// SelectAll selects from the start of the first node to the end of the
// last.
func (e *Editor) SelectAll() error {
	return e.doc.Mutate(func(d *document.Document) error {
		if len(d.Nodes) == 0 {
			return ErrIndexOutOfBounds
		}
		last := len(d.Nodes) - 1
		sel := document.NewSelection(
			document.NewPosition([]int{0}, 0),
			document.NewPosition([]int{last}, document.NodeLength(d.Nodes[last])),
		)
		d.Selection = &sel
		return nil
	})
}

// SelectNode selects one whole top-level node.
func (e *Editor) SelectNode(index int) error {
	return e.doc.Mutate(func(d *document.Document) error {
		sel, ok := d.SelectWholeNode(index)
		if !ok {
			return ErrIndexOutOfBounds
		}
		d.Selection = &sel
		return nil
	})
}

// SelectNodeRange selects a run of whole top-level nodes.
func (e *Editor) SelectNodeRange(startIndex, endIndex int) error {
	return e.doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(startIndex) || !d.ValidIndex(endIndex) {
			return ErrIndexOutOfBounds
		}
		if startIndex > endIndex {
			startIndex, endIndex = endIndex, startIndex
		}
		sel := document.NewSelection(
			document.NewPosition([]int{startIndex}, 0),
			document.NewPosition([]int{endIndex}, document.NodeLength(d.Nodes[endIndex])),
		)
		d.Selection = &sel
		return nil
	})
}

// SelectTextRange selects a content range within one node.
func (e *Editor) SelectTextRange(nodeIndex, start, end int) error {
	return e.doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(nodeIndex) {
			return ErrIndexOutOfBounds
		}
		if start < 0 || end < start || end > document.NodeLength(d.Nodes[nodeIndex]) {
			return ErrInvalidRange
		}
		sel := document.NewSelection(
			document.NewPosition([]int{nodeIndex}, start),
			document.NewPosition([]int{nodeIndex}, end),
		)
		d.Selection = &sel
		return nil
	})
}

// SelectRange installs an arbitrary selection.
func (e *Editor) SelectRange(sel document.Selection) {
	_ = e.doc.Mutate(func(d *document.Document) error {
		s := sel.Clone()
		d.Selection = &s
		return nil
	})
}

// CollapseSelectionToStart collapses the selection to its start position.
func (e *Editor) CollapseSelectionToStart() {
	_ = e.doc.Mutate(func(d *document.Document) error {
		if d.Selection != nil {
			s := d.Selection.Normalized().CollapseToStart()
			d.Selection = &s
		}
		return nil
	})
}

// CollapseSelectionToEnd collapses the selection to its end position.
func (e *Editor) CollapseSelectionToEnd() {
	_ = e.doc.Mutate(func(d *document.Document) error {
		if d.Selection != nil {
			s := d.Selection.Normalized().CollapseToEnd()
			d.Selection = &s
		}
		return nil
	})
}

// ClearSelection removes the active selection.
func (e *Editor) ClearSelection() {
	_ = e.doc.Mutate(func(d *document.Document) error {
		d.Selection = nil
		return nil
	})
}

// HasSelection reports whether a non-collapsed selection is active.
func (e *Editor) HasSelection() bool {
	var has bool
	e.doc.Read(func(d *document.Document) {
		has = d.Selection != nil && !d.Selection.IsCollapsed()
	})
	return has
}

// HasMultiNodeSelection reports whether the selection spans nodes.
func (e *Editor) HasMultiNodeSelection() bool {
	var multi bool
	e.doc.Read(func(d *document.Document) {
		multi = d.Selection != nil && d.Selection.IsMultiNode()
	})
	return multi
}

// SelectedText returns the text the active selection covers, or "".
func (e *Editor) SelectedText() string {
	var text string
	e.doc.Read(func(d *document.Document) {
		if d.Selection != nil {
			text = d.SelectedText(*d.Selection)
		}
	})
	return text
}
