package edit

import "errors"

// Errors returned by commands, transactions and the editor. Semantic,
// command-specific violations wrap one of these sentinels with a readable
// reason via fmt.Errorf("...: %w", Err...).
var (
	// ErrIndexOutOfBounds indicates a node/item/row/column index exceeds
	// the live collection.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrUnsupportedOperation indicates a well-formed command is
	// inapplicable to the addressed node's kind or would violate a
	// structural invariant.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidRange indicates a start/end pair is inverted or exceeds
	// the content length.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidNode indicates an operation rejected a malformed node.
	ErrInvalidNode = errors.New("invalid node")

	// ErrOperationFailed indicates an internal precondition violation,
	// such as undoing a command that never executed.
	ErrOperationFailed = errors.New("operation failed")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrTransactionDone indicates a second commit or discard of the same
	// transaction.
	ErrTransactionDone = errors.New("transaction already committed")

	// ErrNoSelection indicates a selection-scoped command ran without an
	// applicable selection.
	ErrNoSelection = errors.New("no active selection")
)
