package edit

import (
	"errors"
	"testing"

	"github.com/dshills/mdedit/document"
)

func TestCutSelectionSingleNode(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("Hello, world!") })

	if err := e.SelectTextRange(0, 7, 12); err != nil {
		t.Fatal(err)
	}
	cut, err := e.CutSelection()
	if err != nil {
		t.Fatalf("CutSelection: %v", err)
	}
	if cut != "world" {
		t.Errorf("cut text = %q, want %q", cut, "world")
	}
	if got := nodeText(t, e, 0); got != "Hello, !" {
		t.Errorf("remaining text = %q, want %q", got, "Hello, !")
	}
	// The selection collapses to the cut point.
	if e.HasSelection() {
		t.Error("selection should be collapsed after cut")
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := nodeText(t, e, 0); got != "Hello, world!" {
		t.Errorf("text after undo = %q, want %q", got, "Hello, world!")
	}
}

func TestCutSelectionMultiNode(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.Paragraph("one").Paragraph("two").Paragraph("three")
	})

	if err := e.SelectNodeRange(0, 1); err != nil {
		t.Fatal(err)
	}
	cut, err := e.CutSelection()
	if err != nil {
		t.Fatalf("CutSelection: %v", err)
	}
	if cut != "one\ntwo" {
		t.Errorf("cut text = %q, want %q", cut, "one\ntwo")
	}

	var n int
	e.Read(func(d *document.Document) { n = d.NodeCount() })
	if n != 1 {
		t.Fatalf("node count = %d, want 1", n)
	}
	if got := nodeText(t, e, 0); got != "three" {
		t.Errorf("surviving node = %q, want %q", got, "three")
	}

	// Undo restores the removed nodes in place.
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	e.Read(func(d *document.Document) { n = d.NodeCount() })
	if n != 3 {
		t.Errorf("node count after undo = %d, want 3", n)
	}
	if got := nodeText(t, e, 1); got != "two" {
		t.Errorf("node 1 after undo = %q, want %q", got, "two")
	}
}

func TestCutWithoutSelection(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("text") })

	if _, err := e.CutSelection(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("error = %v, want ErrNoSelection", err)
	}
}

func TestCopySelectionDoesNotMutate(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("Hello, world!") })

	if err := e.SelectTextRange(0, 0, 5); err != nil {
		t.Fatal(err)
	}
	text, err := e.CopySelection()
	if err != nil {
		t.Fatalf("CopySelection: %v", err)
	}
	if text != "Hello" {
		t.Errorf("copied text = %q, want %q", text, "Hello")
	}
	if got := nodeText(t, e, 0); got != "Hello, world!" {
		t.Errorf("document changed by copy: %q", got)
	}
	if e.CanUndo() {
		t.Error("copy must not enter the history")
	}
	if !e.HasSelection() {
		t.Error("copy must keep the selection")
	}
}

func TestFormatSelection(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("Hello, world!") })

	if err := e.SelectTextRange(0, 7, 12); err != nil {
		t.Fatal(err)
	}
	if err := e.FormatSelection(document.Italic()); err != nil {
		t.Fatalf("FormatSelection: %v", err)
	}

	e.Read(func(d *document.Document) {
		p := d.Nodes[0].(*document.Paragraph)
		if len(p.Children) != 3 {
			t.Fatalf("run count = %d, want 3", len(p.Children))
		}
		mid := p.Children[1].(*document.Text)
		if mid.Text != "world" || !mid.Format.Italic {
			t.Errorf("middle run = %q italic=%v", mid.Text, mid.Format.Italic)
		}
	})
}

func TestFormatSelectionRejectsMultiNode(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.Paragraph("one").Paragraph("two")
	})

	if err := e.SelectNodeRange(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := e.FormatSelection(document.Bold()); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("error = %v, want ErrUnsupportedOperation", err)
	}
}

func TestIndentSelection(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.Paragraph("quoted").CodeBlock("x := 1", "go")
	})

	if err := e.SelectNodeRange(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := e.IndentSelection(); err != nil {
		t.Fatalf("IndentSelection: %v", err)
	}

	e.Read(func(d *document.Document) {
		if _, ok := d.Nodes[0].(*document.BlockQuote); !ok {
			t.Errorf("node 0 = %T, want block quote", d.Nodes[0])
		}
		cb, ok := d.Nodes[1].(*document.CodeBlock)
		if !ok {
			t.Fatalf("node 1 = %T, want code block", d.Nodes[1])
		}
		if cb.Code != "    x := 1" {
			t.Errorf("code = %q, want 4-space indent", cb.Code)
		}
	})

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	e.Read(func(d *document.Document) {
		if _, ok := d.Nodes[0].(*document.Paragraph); !ok {
			t.Errorf("node 0 after undo = %T, want paragraph", d.Nodes[0])
		}
	})
}

func TestIndentSelectionMergesAdjacentLists(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.UnorderedList("a", "b").UnorderedList("c")
	})

	if err := e.SelectNode(1); err != nil {
		t.Fatal(err)
	}
	if err := e.IndentSelection(); err != nil {
		t.Fatalf("IndentSelection: %v", err)
	}

	e.Read(func(d *document.Document) {
		if d.NodeCount() != 1 {
			t.Fatalf("node count = %d, want 1 merged list", d.NodeCount())
		}
		list, ok := d.Nodes[0].(*document.List)
		if !ok {
			t.Fatalf("node 0 = %T, want list", d.Nodes[0])
		}
		if len(list.Items) != 3 || list.Items[2].Text() != "c" {
			t.Errorf("merged items = %d ending %q, want 3 ending %q",
				len(list.Items), list.Items[len(list.Items)-1].Text(), "c")
		}
	})

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	e.Read(func(d *document.Document) {
		if d.NodeCount() != 2 {
			t.Fatalf("node count after undo = %d, want 2", d.NodeCount())
		}
		first := d.Nodes[0].(*document.List)
		second := d.Nodes[1].(*document.List)
		if len(first.Items) != 2 || len(second.Items) != 1 {
			t.Errorf("items after undo = %d and %d, want 2 and 1",
				len(first.Items), len(second.Items))
		}
	})
}

func TestIndentSelectionKeepsIncompatibleLists(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.OrderedList("1").UnorderedList("a")
	})

	if err := e.SelectNode(1); err != nil {
		t.Fatal(err)
	}
	if err := e.IndentSelection(); err != nil {
		t.Fatalf("IndentSelection: %v", err)
	}

	// Different list kinds never merge, and a list is not wrapped in a
	// block quote either.
	e.Read(func(d *document.Document) {
		if d.NodeCount() != 2 {
			t.Fatalf("node count = %d, want 2", d.NodeCount())
		}
		list, ok := d.Nodes[1].(*document.List)
		if !ok || list.Kind != document.Unordered {
			t.Errorf("node 1 = %#v, want unchanged unordered list", d.Nodes[1])
		}
	})
}

func TestOutdentSelectionLeavesListAlone(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.UnorderedList("a", "b")
	})

	if err := e.SelectNode(0); err != nil {
		t.Fatal(err)
	}
	if err := e.OutdentSelection(); err != nil {
		t.Fatalf("OutdentSelection: %v", err)
	}
	e.Read(func(d *document.Document) {
		list, ok := d.Nodes[0].(*document.List)
		if !ok || len(list.Items) != 2 {
			t.Errorf("node 0 = %#v, want untouched list", d.Nodes[0])
		}
	})
}

func TestOutdentSelection(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.BlockQuote("freed")
	})

	if err := e.SelectNode(0); err != nil {
		t.Fatal(err)
	}
	if err := e.OutdentSelection(); err != nil {
		t.Fatalf("OutdentSelection: %v", err)
	}
	e.Read(func(d *document.Document) {
		if _, ok := d.Nodes[0].(*document.Paragraph); !ok {
			t.Errorf("node 0 = %T, want paragraph", d.Nodes[0])
		}
	})
	if got := nodeText(t, e, 0); got != "freed" {
		t.Errorf("text = %q, want %q", got, "freed")
	}
}

func TestIndentWithoutSelection(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("x") })

	if err := e.IndentSelection(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("error = %v, want ErrNoSelection", err)
	}
}
