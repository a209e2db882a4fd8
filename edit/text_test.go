package edit

import (
	"errors"
	"testing"

	"github.com/dshills/mdedit/document"
)

func newEditor(build func(*document.Builder)) *Editor {
	b := document.NewBuilder()
	if build != nil {
		build(b)
	}
	return New(WithDocument(b.Build()))
}

func nodeText(t *testing.T, e *Editor, index int) string {
	t.Helper()
	var text string
	var ok bool
	e.Read(func(d *document.Document) {
		if d.ValidIndex(index) {
			text, ok = document.NodeText(d.Nodes[index])
		}
	})
	if !ok {
		t.Fatalf("node %d has no text", index)
	}
	return text
}

func TestInsertText(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("Hello!") })

	if err := e.InsertText(0, 5, ", world"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if got := nodeText(t, e, 0); got != "Hello, world!" {
		t.Errorf("text = %q, want %q", got, "Hello, world!")
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := nodeText(t, e, 0); got != "Hello!" {
		t.Errorf("after undo text = %q, want %q", got, "Hello!")
	}
}

func TestDeleteTextRange(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("Hello, world!") })

	if err := e.DeleteText(0, 7, 12); err != nil {
		t.Fatalf("DeleteText: %v", err)
	}
	if got := nodeText(t, e, 0); got != "Hello, !" {
		t.Errorf("text = %q, want %q", got, "Hello, !")
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := nodeText(t, e, 0); got != "Hello, world!" {
		t.Errorf("after undo text = %q, want %q", got, "Hello, world!")
	}
}

func TestDeleteTextInvalidRange(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("short") })

	if err := e.DeleteText(0, 3, 2); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted range error = %v, want ErrInvalidRange", err)
	}
	if err := e.DeleteText(0, 0, 100); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("overlong range error = %v, want ErrInvalidRange", err)
	}
	if err := e.DeleteText(5, 0, 1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("bad index error = %v, want ErrIndexOutOfBounds", err)
	}
	if e.CanUndo() {
		t.Error("failed commands must not enter the history")
	}
}

func TestFormatTextSplitsRuns(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("Hello, world!") })

	if err := e.FormatText(0, 7, 12, document.Bold()); err != nil {
		t.Fatalf("FormatText: %v", err)
	}

	e.Read(func(d *document.Document) {
		p := d.Nodes[0].(*document.Paragraph)
		if len(p.Children) != 3 {
			t.Fatalf("run count = %d, want 3", len(p.Children))
		}
		runs := make([]*document.Text, 3)
		for i := range runs {
			runs[i] = p.Children[i].(*document.Text)
		}
		if runs[0].Text != "Hello, " || runs[0].Format.Bold {
			t.Errorf("run 0 = %q bold=%v", runs[0].Text, runs[0].Format.Bold)
		}
		if runs[1].Text != "world" || !runs[1].Format.Bold {
			t.Errorf("run 1 = %q bold=%v, want bold %q", runs[1].Text, runs[1].Format.Bold, "world")
		}
		if runs[2].Text != "!" || runs[2].Format.Bold {
			t.Errorf("run 2 = %q bold=%v", runs[2].Text, runs[2].Format.Bold)
		}
	})

	// Plain text is unchanged by formatting.
	if got := nodeText(t, e, 0); got != "Hello, world!" {
		t.Errorf("text = %q, want %q", got, "Hello, world!")
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	e.Read(func(d *document.Document) {
		p := d.Nodes[0].(*document.Paragraph)
		if len(p.Children) != 1 {
			t.Errorf("after undo run count = %d, want 1", len(p.Children))
		}
	})
}

func TestFormatTextMergesFlags(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("abcdef") })

	if err := e.FormatText(0, 0, 6, document.Bold()); err != nil {
		t.Fatalf("bold: %v", err)
	}
	if err := e.FormatText(0, 2, 4, document.Italic()); err != nil {
		t.Fatalf("italic: %v", err)
	}

	e.Read(func(d *document.Document) {
		p := d.Nodes[0].(*document.Paragraph)
		mid := p.Children[1].(*document.Text)
		if mid.Text != "cd" || !mid.Format.Bold || !mid.Format.Italic {
			t.Errorf("middle run = %q %+v, want bold italic %q", mid.Text, mid.Format, "cd")
		}
	})
}

func TestInsertTextIntoCodeBlock(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.CodeBlock("ac", "go") })

	if err := e.InsertText(0, 1, "b"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if got := nodeText(t, e, 0); got != "abc" {
		t.Errorf("code = %q, want %q", got, "abc")
	}
}

func TestInsertTextAtPosition(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.BlockQuote("inner")
	})

	pos := document.NewPosition([]int{0, 0}, 5)
	if err := e.InsertTextAt(pos, " text"); err != nil {
		t.Fatalf("InsertTextAt: %v", err)
	}

	e.Read(func(d *document.Document) {
		bq := d.Nodes[0].(*document.BlockQuote)
		got, _ := document.NodeText(bq.Children[0])
		if got != "inner text" {
			t.Errorf("nested text = %q, want %q", got, "inner text")
		}
	})
}

func TestUndoBeforeExecuteFails(t *testing.T) {
	cmd := NewInsertTextCommand(0, 0, "x")
	doc := document.NewShared(nil)
	if err := cmd.Undo(doc); !errors.Is(err, ErrOperationFailed) {
		t.Errorf("undo of unexecuted command = %v, want ErrOperationFailed", err)
	}
}
