package convert

import (
	"errors"
	"testing"

	"github.com/dshills/mdedit/document"
)

func TestToMarkdownBlocks(t *testing.T) {
	doc := document.NewBuilder().
		Heading(1, "Top").
		Paragraph("Body text.").
		CodeBlock("x := 1", "go").
		ThematicBreak().
		Build()

	got, err := ToMarkdown(doc)
	if err != nil {
		t.Fatalf("ToMarkdown: %v", err)
	}
	want := "# Top\n\nBody text.\n\n```go\nx := 1\n```\n\n---"
	if got != want {
		t.Errorf("markdown = %q, want %q", got, want)
	}
}

func TestToMarkdownLists(t *testing.T) {
	tests := []struct {
		name  string
		build func(*document.Builder)
		want  string
	}{
		{
			name:  "unordered",
			build: func(b *document.Builder) { b.UnorderedList("one", "two") },
			want:  "* one\n* two",
		},
		{
			name:  "ordered",
			build: func(b *document.Builder) { b.OrderedList("first", "second") },
			want:  "1. first\n2. second",
		},
		{
			name: "task",
			build: func(b *document.Builder) {
				b.TaskList(
					document.TaskEntry{Text: "ship", Checked: true},
					document.TaskEntry{Text: "test"},
				)
			},
			want: "- [x] ship\n- [ ] test",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := document.NewBuilder()
			tt.build(b)
			got, err := ToMarkdown(b.Build())
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("markdown = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToMarkdownBlockQuote(t *testing.T) {
	doc := document.NewBuilder().BlockQuote("first", "second").Build()

	got, err := ToMarkdown(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := "> first\n> \n> second"
	if got != want {
		t.Errorf("markdown = %q, want %q", got, want)
	}
}

func TestToMarkdownBlockQuoteKeepsTrailingAngle(t *testing.T) {
	doc := document.NewBuilder().BlockQuote("see ->").Build()

	got, err := ToMarkdown(doc)
	if err != nil {
		t.Fatal(err)
	}
	// Only the separator line is trimmed, never quoted content.
	if want := "> see ->"; got != want {
		t.Errorf("markdown = %q, want %q", got, want)
	}
}

func TestToMarkdownTable(t *testing.T) {
	table := &document.Table{
		Header:     []document.TableCell{document.HeaderCell("A"), document.HeaderCell("B")},
		Alignments: []document.Alignment{document.AlignLeft, document.AlignRight},
		Rows: [][]document.TableCell{
			{document.TextCell("1"), document.TextCell("2")},
		},
	}
	doc := document.NewBuilder().Node(table).Build()

	got, err := ToMarkdown(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := "A | B\n|:-------|-------:|\n| 1 | 2 |"
	if got != want {
		t.Errorf("markdown = %q, want %q", got, want)
	}
}

func TestToMarkdownInlines(t *testing.T) {
	p := &document.Paragraph{Children: []document.Inline{
		document.PlainText("mix "),
		document.FormattedText("bold", document.Bold()),
		document.PlainText(" then "),
		document.FormattedText("gone", document.Strikethrough()),
		document.PlainText(" and "),
		&document.CodeSpan{Code: "f()"},
		document.PlainText(" see "),
		&document.Link{URL: "https://example.com", Title: "Home", Children: []document.Inline{document.PlainText("docs")}},
		document.PlainText(" or "),
		&document.AutoLink{URL: "user@example.com", IsEmail: true},
	}}
	doc := document.NewBuilder().Node(p).Build()

	got, err := ToMarkdown(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := "mix **bold** then ~~gone~~ and `f()` see [docs](https://example.com \"Home\") or <user@example.com>"
	if got != want {
		t.Errorf("markdown = %q, want %q", got, want)
	}
}

func TestToMarkdownRejectsTempNodes(t *testing.T) {
	doc := document.NewBuilder().Node(&document.TempListItem{}).Build()

	if _, err := ToMarkdown(doc); !errors.Is(err, ErrTempNode) {
		t.Errorf("error = %v, want ErrTempNode", err)
	}
}

// TestMarkdownRoundTrip feeds canonical serializer output back through the
// parser and expects the exact same text out.
func TestMarkdownRoundTrip(t *testing.T) {
	inputs := []string{
		"# Title\n\nHello, world!",
		"## Sub *em* text",
		"- [x] ship\n- [ ] test",
		"1. first\n2. second",
		"* one\n* two",
		"```go\nfmt.Println(\"hi\")\n```",
		"> quoted line",
		"> ends with >",
		"---",
		"$$\nE = mc^2\n$$",
		"[^note]: Remember this.",
		"A | B\n|:-------|-------:|\n| 1 | 2 |",
		"Plain **bold** and *italic* and ~~struck~~ and `code`.",
		"See [docs](https://example.com) or <https://example.com/direct>.",
		"Mail <user@example.com> today.",
	}
	for _, input := range inputs {
		doc, err := ParseMarkdown(input)
		if err != nil {
			t.Errorf("ParseMarkdown(%q): %v", input, err)
			continue
		}
		out, err := ToMarkdown(doc)
		if err != nil {
			t.Errorf("ToMarkdown(%q): %v", input, err)
			continue
		}
		if out != input {
			t.Errorf("round trip of %q = %q", input, out)
		}
	}
}

func TestParseMarkdownJoinsParagraphLines(t *testing.T) {
	doc, err := ParseMarkdown("line one\nline two\n\nnext")
	if err != nil {
		t.Fatal(err)
	}
	if doc.NodeCount() != 2 {
		t.Fatalf("node count = %d, want 2", doc.NodeCount())
	}
	text, _ := document.NodeText(doc.Nodes[0])
	if text != "line one line two" {
		t.Errorf("first paragraph = %q", text)
	}
}

func TestParseMarkdownNestedList(t *testing.T) {
	doc, err := ParseMarkdown("- parent\n  - child")
	if err != nil {
		t.Fatal(err)
	}
	list, ok := doc.Nodes[0].(*document.List)
	if !ok || len(list.Items) != 1 {
		t.Fatalf("nodes[0] = %#v, want single-item list", doc.Nodes[0])
	}
	var nested *document.List
	for _, child := range list.Items[0].Children {
		if sub, ok := child.(*document.List); ok {
			nested = sub
		}
	}
	if nested == nil || len(nested.Items) != 1 || nested.Items[0].Text() != "child" {
		t.Fatalf("nested list = %+v", nested)
	}
}

func TestParseMarkdownTaskMarkers(t *testing.T) {
	doc, err := ParseMarkdown("- [X] caps\n- [ ] open")
	if err != nil {
		t.Fatal(err)
	}
	list := doc.Nodes[0].(*document.List)
	if list.Kind != document.Task {
		t.Fatalf("kind = %v, want task", list.Kind)
	}
	if !*list.Items[0].Checked || *list.Items[1].Checked {
		t.Errorf("checked = %v %v, want true false", *list.Items[0].Checked, *list.Items[1].Checked)
	}
}

func TestParseMarkdownAlignments(t *testing.T) {
	doc, err := ParseMarkdown("A | B | C | D\n|:---|:---:|---:|---|\n| 1 | 2 | 3 | 4 |")
	if err != nil {
		t.Fatal(err)
	}
	table := doc.Nodes[0].(*document.Table)
	want := []document.Alignment{
		document.AlignLeft, document.AlignCenter, document.AlignRight, document.AlignNone,
	}
	for i, a := range want {
		if table.Alignments[i] != a {
			t.Errorf("alignment %d = %v, want %v", i, table.Alignments[i], a)
		}
	}
}
