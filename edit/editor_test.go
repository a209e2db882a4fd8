package edit

import (
	"errors"
	"strconv"
	"testing"

	"github.com/dshills/mdedit/document"
)

func TestUndoRedoSymmetry(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("base") })

	if err := e.InsertParagraph(1, "one"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := e.InsertParagraph(2, "two"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	count := func() int {
		var n int
		e.Read(func(d *document.Document) { n = d.NodeCount() })
		return n
	}

	if count() != 3 {
		t.Fatalf("node count = %d, want 3", count())
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if count() != 1 {
		t.Errorf("after undo x2 node count = %d, want 1", count())
	}
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("empty undo = %v, want ErrNothingToUndo", err)
	}

	if err := e.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if err := e.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if count() != 3 {
		t.Errorf("after redo x2 node count = %d, want 3", count())
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("empty redo = %v, want ErrNothingToRedo", err)
	}
	if got := nodeText(t, e, 2); got != "two" {
		t.Errorf("node 2 text = %q, want %q", got, "two")
	}
}

func TestNewMutationClearsRedo(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("base") })

	if err := e.InsertParagraph(1, "one"); err != nil {
		t.Fatal(err)
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if !e.CanRedo() {
		t.Fatal("expected a redoable command")
	}
	if err := e.InsertParagraph(1, "other"); err != nil {
		t.Fatal(err)
	}
	if e.CanRedo() {
		t.Error("redo stack must clear on a fresh mutation")
	}
}

func TestHistoryEvictsOldestBeyondCap(t *testing.T) {
	const histCap = 10
	e := newEditor(func(b *document.Builder) { b.Paragraph("base") })
	e.SetMaxHistory(histCap)

	for i := 0; i < histCap+5; i++ {
		if err := e.InsertParagraph(1, "p"+strconv.Itoa(i)); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	if got := e.UndoDepth(); got != histCap {
		t.Fatalf("undo depth = %d, want %d", got, histCap)
	}
	undone := 0
	for e.CanUndo() {
		if err := e.Undo(); err != nil {
			t.Fatalf("undo %d: %v", undone, err)
		}
		undone++
	}
	if undone != histCap {
		t.Errorf("undoable commands = %d, want %d", undone, histCap)
	}

	// The five oldest insertions fell off the history and survive.
	var n int
	e.Read(func(d *document.Document) { n = d.NodeCount() })
	if n != 6 {
		t.Errorf("node count after exhausting undo = %d, want 6", n)
	}
}

func TestSetMaxHistoryShrinksStacks(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("base") })
	for i := 0; i < 8; i++ {
		if err := e.InsertParagraph(1, "p"); err != nil {
			t.Fatal(err)
		}
	}
	e.SetMaxHistory(3)
	if got := e.UndoDepth(); got != 3 {
		t.Errorf("undo depth after shrink = %d, want 3", got)
	}
	e.SetMaxHistory(0)
	if got := e.MaxHistory(); got != 3 {
		t.Errorf("max history after invalid set = %d, want 3", got)
	}
}

func TestDefaultMaxHistory(t *testing.T) {
	e := New()
	if got := e.MaxHistory(); got != DefaultMaxHistory {
		t.Errorf("default max history = %d, want %d", got, DefaultMaxHistory)
	}
	if DefaultMaxHistory != 100 {
		t.Errorf("DefaultMaxHistory = %d, want 100", DefaultMaxHistory)
	}
}

func TestWithMaxHistoryOption(t *testing.T) {
	e := New(WithMaxHistory(5))
	if got := e.MaxHistory(); got != 5 {
		t.Errorf("max history = %d, want 5", got)
	}
}

func TestClearHistory(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("base") })
	if err := e.InsertParagraph(1, "one"); err != nil {
		t.Fatal(err)
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := e.InsertParagraph(1, "two"); err != nil {
		t.Fatal(err)
	}
	e.ClearHistory()
	if e.CanUndo() || e.CanRedo() {
		t.Error("history must be empty after ClearHistory")
	}
}

func TestSelectionManagement(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.Paragraph("first").Paragraph("second")
	})

	if err := e.SelectTextRange(0, 1, 4); err != nil {
		t.Fatalf("SelectTextRange: %v", err)
	}
	if got := e.SelectedText(); got != "irs" {
		t.Errorf("selected text = %q, want %q", got, "irs")
	}
	if !e.HasSelection() || e.HasMultiNodeSelection() {
		t.Error("expected a single-node selection")
	}

	if err := e.SelectNodeRange(1, 0); err != nil {
		t.Fatalf("SelectNodeRange: %v", err)
	}
	if !e.HasMultiNodeSelection() {
		t.Error("expected a multi-node selection")
	}
	if got := e.SelectedText(); got != "first\nsecond" {
		t.Errorf("selected text = %q, want %q", got, "first\nsecond")
	}

	e.CollapseSelectionToStart()
	if e.HasSelection() {
		t.Error("collapsed selection must not count as active")
	}

	e.ClearSelection()
	if e.HasSelection() {
		t.Error("selection must clear")
	}

	if err := e.SelectTextRange(0, 2, 100); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("out-of-range selection = %v, want ErrInvalidRange", err)
	}
	if err := e.SelectNode(9); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("bad node selection = %v, want ErrIndexOutOfBounds", err)
	}
}

func TestSelectAll(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.Paragraph("alpha").Paragraph("omega")
	})
	if err := e.SelectAll(); err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if got := e.SelectedText(); got != "alpha\nomega" {
		t.Errorf("selected text = %q, want %q", got, "alpha\nomega")
	}

	empty := New()
	if err := empty.SelectAll(); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("SelectAll on empty document = %v, want ErrIndexOutOfBounds", err)
	}
}
