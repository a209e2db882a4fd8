package document

import "sync/atomic"

// Shared is the ownership handle commands use to reach the one mutable
// document of an editing session. Access goes through Mutate and Read
// callbacks guarded by a runtime-checked exclusivity flag: re-entering the
// document while an access is outstanding is a programming error in a
// command implementation, and it fails loudly instead of silently
// corrupting state.
//
// The engine itself is single-threaded; the flag exists to catch re-entrant
// access bugs, not to make a Shared safe for concurrent use. Hosts that
// need cross-goroutine access must serialize it externally.
type Shared struct {
	doc  *Document
	busy atomic.Bool
}

// NewShared wraps a document in a shared handle. The caller must not mutate
// doc directly afterwards.
func NewShared(doc *Document) *Shared {
	if doc == nil {
		doc = New()
	}
	return &Shared{doc: doc}
}

// Mutate runs fn with exclusive access to the document.
// Panics on re-entrant access.
func (s *Shared) Mutate(fn func(*Document) error) error {
	s.acquire()
	defer s.busy.Store(false)
	return fn(s.doc)
}

// Read runs fn with exclusive access to the document. Reads share the same
// exclusivity as writes: there are no readers-while-writing.
func (s *Shared) Read(fn func(*Document)) {
	s.acquire()
	defer s.busy.Store(false)
	fn(s.doc)
}

func (s *Shared) acquire() {
	if !s.busy.CompareAndSwap(false, true) {
		panic("document: re-entrant access to shared document")
	}
}
