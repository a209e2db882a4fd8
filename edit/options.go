package edit

import (
	"github.com/dshills/mdedit/document"
)

// DefaultMaxHistory bounds the undo and redo stacks unless overridden.
const DefaultMaxHistory = 100

// Option configures an Editor at construction time.
type Option func(*Editor)

// WithMaxHistory sets the undo/redo depth. Values below one fall back to
// the default.
func WithMaxHistory(n int) Option {
	return func(e *Editor) {
		if n >= 1 {
			e.maxHistory = n
		}
	}
}

// WithDocument starts the editor on an existing document instead of an
// empty one.
func WithDocument(d *document.Document) Option {
	return func(e *Editor) {
		if d != nil {
			e.doc = document.NewShared(d)
		}
	}
}
