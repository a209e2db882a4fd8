package document

import (
	"testing"
)

func TestBuilderBuildsOrderedTree(t *testing.T) {
	doc := NewBuilder().
		Title("Notes").
		Heading(1, "Title").
		Paragraph("Hello, world!").
		TaskList(TaskEntry{Text: "one", Checked: true}, TaskEntry{Text: "two"}).
		Build()

	if doc.Meta.Title != "Notes" {
		t.Errorf("title = %q, want %q", doc.Meta.Title, "Notes")
	}
	if doc.NodeCount() != 3 {
		t.Fatalf("node count = %d, want 3", doc.NodeCount())
	}
	h, ok := doc.Nodes[0].(*Heading)
	if !ok || h.Level != 1 {
		t.Errorf("node 0 = %#v, want level-1 heading", doc.Nodes[0])
	}
	list, ok := doc.Nodes[2].(*List)
	if !ok || list.Kind != Task {
		t.Fatalf("node 2 = %#v, want task list", doc.Nodes[2])
	}
	if len(list.Items) != 2 || list.Items[0].Checked == nil || !*list.Items[0].Checked {
		t.Errorf("task items wrong: %#v", list.Items)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := NewBuilder().Paragraph("original").Build()
	clone := doc.Clone()

	p := doc.Nodes[0].(*Paragraph)
	p.Children[0].(*Text).Text = "changed"

	got := clone.Nodes[0].(*Paragraph).Children[0].(*Text).Text
	if got != "original" {
		t.Errorf("clone text = %q, want %q", got, "original")
	}
	if clone.Meta.ID != doc.Meta.ID {
		t.Errorf("clone should keep the document ID")
	}
}

func TestNodeLengthCountsNonTextInlinesAsOne(t *testing.T) {
	p := &Paragraph{Children: []Inline{
		PlainText("ab"),
		NewLink("https://example.com", "link"),
		PlainText("cd"),
	}}
	// 2 bytes + 1 unit + 2 bytes.
	if got := NodeLength(p); got != 5 {
		t.Errorf("NodeLength = %d, want 5", got)
	}
}

func TestNodeText(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
		ok   bool
	}{
		{"paragraph", NewParagraph("hello"), "hello", true},
		{"heading", NewHeading(2, "title"), "title", true},
		{"code block", NewCodeBlock("x := 1", "go"), "x := 1", true},
		{"thematic break", &ThematicBreak{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NodeText(tt.node)
			if ok != tt.ok || got != tt.want {
				t.Errorf("NodeText = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSelectedTextSingleNode(t *testing.T) {
	doc := NewBuilder().Paragraph("Hello, world!").Build()
	sel := NewSelection(NewPosition([]int{0}, 7), NewPosition([]int{0}, 12))
	if got := doc.SelectedText(sel); got != "world" {
		t.Errorf("selected text = %q, want %q", got, "world")
	}
}

func TestSelectedTextMultiNode(t *testing.T) {
	doc := NewBuilder().Paragraph("first").Paragraph("second").Build()
	sel := NewSelection(NewPosition([]int{0}, 3), NewPosition([]int{1}, 3))
	if got := doc.SelectedText(sel); got != "st\nsec" {
		t.Errorf("selected text = %q, want %q", got, "st\nsec")
	}
}

func TestSelectionNormalized(t *testing.T) {
	fwd := NewSelection(NewPosition([]int{0}, 1), NewPosition([]int{2}, 0))
	rev := NewSelection(NewPosition([]int{2}, 0), NewPosition([]int{0}, 1))

	n := rev.Normalized()
	if !n.Start.Equal(fwd.Start) || !n.End.Equal(fwd.End) {
		t.Errorf("normalized = %#v, want %#v", n, fwd)
	}
	if !fwd.IsMultiNode() {
		t.Error("selection spanning nodes should report multi-node")
	}
	if fwd.IsCollapsed() {
		t.Error("non-empty selection should not be collapsed")
	}
}

func TestSharedRejectsReentrantAccess(t *testing.T) {
	shared := NewShared(nil)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on re-entrant access")
		}
	}()
	_ = shared.Mutate(func(d *Document) error {
		shared.Read(func(*Document) {})
		return nil
	})
}

func TestSharedNilDocumentGetsFreshOne(t *testing.T) {
	shared := NewShared(nil)
	shared.Read(func(d *Document) {
		if d == nil {
			t.Fatal("expected a document")
		}
		if d.NodeCount() != 0 {
			t.Errorf("fresh document has %d nodes", d.NodeCount())
		}
	})
}

func TestContainsTempNodes(t *testing.T) {
	doc := NewBuilder().Paragraph("ok").Build()
	if doc.ContainsTempNodes() {
		t.Error("clean document reported temp nodes")
	}
	doc.Nodes = append(doc.Nodes, &TempListItem{})
	if !doc.ContainsTempNodes() {
		t.Error("temp node not detected")
	}
}
