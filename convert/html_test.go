package convert

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/mdedit/document"
)

func TestToHTMLBlocks(t *testing.T) {
	doc := document.NewBuilder().
		Heading(2, "Title").
		Paragraph("Body").
		CodeBlock("x := 1", "go").
		ThematicBreak().
		Build()

	got, err := ToHTML(doc)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	want := `<h2>Title</h2><p>Body</p><pre><code class="language-go">x := 1</code></pre><hr>`
	if got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
}

func TestToHTMLTaskList(t *testing.T) {
	doc := document.NewBuilder().
		TaskList(
			document.TaskEntry{Text: "done", Checked: true},
			document.TaskEntry{Text: "todo"},
		).
		Build()

	got, err := ToHTML(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := `<ul class="task-list">` +
		`<li><p><input type="checkbox" checked> done</p></li>` +
		`<li><p><input type="checkbox"> todo</p></li>` +
		`</ul>`
	if got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
}

func TestToHTMLTable(t *testing.T) {
	wide := document.TextCell("wide")
	wide.Colspan = 2
	wide.BackgroundColor = "#eee"
	table := &document.Table{
		Header:     []document.TableCell{document.HeaderCell("A"), document.HeaderCell("B")},
		Alignments: []document.Alignment{document.AlignLeft, document.AlignRight},
		Rows: [][]document.TableCell{
			{wide, document.TextCell("2")},
		},
	}
	doc := document.NewBuilder().Node(table).Build()

	got, err := ToHTML(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := "<table>\n<thead>\n<tr>" +
		`<th class="align-left">A</th><th class="align-right">B</th>` +
		"</tr>\n</thead>\n<tbody>\n" +
		`<tr><td class="align-left" colspan="2" style="background-color:#eee">wide</td>` +
		`<td class="align-right">2</td></tr>` + "\n" +
		"</tbody>\n</table>"
	if got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
}

func TestToHTMLInlines(t *testing.T) {
	p := &document.Paragraph{Children: []document.Inline{
		document.FormattedText("bi", document.Formatting{Bold: true, Italic: true}),
		document.PlainText(" a < b "),
		&document.Link{URL: "https://example.com", Children: []document.Inline{document.PlainText("docs")}},
		&document.AutoLink{URL: "user@example.com", IsEmail: true},
		&document.Mention{Name: "ada", Kind: "user"},
		&document.Math{Math: "x^2"},
		&document.Emoji{Shortcode: "tada"},
	}}
	doc := document.NewBuilder().Node(p).Build()

	got, err := ToHTML(doc)
	if err != nil {
		t.Fatal(err)
	}
	want := "<p><em><strong>bi</strong></em> a &lt; b " +
		`<a href="https://example.com">docs</a>` +
		`<a href="mailto:user@example.com">user@example.com</a>` +
		`<span class="mention mention-user">@ada</span>` +
		`<span class="math-inline">$x^2$</span>` +
		`<span class="emoji emoji-tada">tada</span>` +
		"</p>"
	if got != want {
		t.Errorf("html = %q, want %q", got, want)
	}
}

func TestToHTMLRejectsTempNodes(t *testing.T) {
	doc := document.NewBuilder().Node(&document.TempListItem{}).Build()

	if _, err := ToHTML(doc); !errors.Is(err, ErrTempNode) {
		t.Errorf("error = %v, want ErrTempNode", err)
	}
}

func TestParseHTMLBlocks(t *testing.T) {
	input := `<h3>T</h3><p>with <strong>bold</strong> text</p>` +
		`<pre><code class="language-go">x := 1</code></pre><hr>`

	doc, err := ParseHTML(input)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if doc.NodeCount() != 4 {
		t.Fatalf("node count = %d, want 4", doc.NodeCount())
	}

	h := doc.Nodes[0].(*document.Heading)
	if h.Level != 3 || document.InlineText(h.Children) != "T" {
		t.Errorf("heading = %+v", h)
	}

	p := doc.Nodes[1].(*document.Paragraph)
	if len(p.Children) != 3 {
		t.Fatalf("paragraph runs = %d, want 3", len(p.Children))
	}
	mid := p.Children[1].(*document.Text)
	if mid.Text != "bold" || !mid.Format.Bold {
		t.Errorf("middle run = %q bold=%v", mid.Text, mid.Format.Bold)
	}

	cb := doc.Nodes[2].(*document.CodeBlock)
	if cb.Language != "go" || cb.Code != "x := 1" {
		t.Errorf("code block = %+v", cb)
	}

	if _, ok := doc.Nodes[3].(*document.ThematicBreak); !ok {
		t.Errorf("nodes[3] = %T, want thematic break", doc.Nodes[3])
	}
}

func TestParseHTMLTaskList(t *testing.T) {
	input := `<ul class="task-list">` +
		`<li><p><input type="checkbox" checked> done</p></li>` +
		`<li><p><input type="checkbox"> todo</p></li>` +
		`</ul>`

	doc, err := ParseHTML(input)
	if err != nil {
		t.Fatal(err)
	}
	list := doc.Nodes[0].(*document.List)
	if list.Kind != document.Task || len(list.Items) != 2 {
		t.Fatalf("list = %+v", list)
	}
	if !*list.Items[0].Checked || *list.Items[1].Checked {
		t.Errorf("checked = %v %v, want true false", *list.Items[0].Checked, *list.Items[1].Checked)
	}
	if got := strings.TrimSpace(list.Items[0].Text()); got != "done" {
		t.Errorf("item 0 text = %q, want %q", got, "done")
	}
}

func TestParseHTMLTable(t *testing.T) {
	input := "<table><thead><tr>" +
		`<th class="align-left">A</th><th class="align-right">B</th>` +
		"</tr></thead><tbody>" +
		`<tr><td colspan="2">wide</td></tr>` +
		"</tbody></table>"

	doc, err := ParseHTML(input)
	if err != nil {
		t.Fatal(err)
	}
	table := doc.Nodes[0].(*document.Table)
	if len(table.Header) != 2 || !table.Header[0].IsHeader {
		t.Fatalf("header = %+v", table.Header)
	}
	if table.Alignments[0] != document.AlignLeft || table.Alignments[1] != document.AlignRight {
		t.Errorf("alignments = %v", table.Alignments)
	}
	if len(table.Rows) != 1 || table.Rows[0][0].Colspan != 2 {
		t.Errorf("rows = %+v", table.Rows)
	}
}

// TestHTMLRoundTrip serializes a document whose HTML form parses back to
// the identical tree.
func TestHTMLRoundTrip(t *testing.T) {
	doc := document.NewBuilder().
		Heading(1, "Doc").
		Paragraph("Hello, world!").
		OrderedList("one", "two").
		CodeBlock("print(1)", "python").
		BlockQuote("quoted").
		ThematicBreak().
		Build()

	html, err := ToHTML(doc)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	parsed, err := ParseHTML(html)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if diff := cmp.Diff(doc.Nodes, parsed.Nodes); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
