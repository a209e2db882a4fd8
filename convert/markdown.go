package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/mdedit/document"
)

// ToMarkdown serializes a document to markdown text. Blocks are separated
// by blank lines; trailing newlines are trimmed. A tree still holding
// parser scratch nodes fails with ErrTempNode.
func ToMarkdown(doc *document.Document) (string, error) {
	var b strings.Builder
	for _, node := range doc.Nodes {
		md, err := nodeToMarkdown(node)
		if err != nil {
			return "", err
		}
		b.WriteString(md)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func nodeToMarkdown(node document.Node) (string, error) {
	switch v := node.(type) {
	case *document.Heading:
		return strings.Repeat("#", v.Level) + " " + inlinesToMarkdown(v.Children), nil

	case *document.Paragraph:
		return inlinesToMarkdown(v.Children), nil

	case *document.List:
		return listToMarkdown(v)

	case *document.CodeBlock:
		return "```" + v.Language + "\n" + v.Code + "\n```", nil

	case *document.BlockQuote:
		var b strings.Builder
		for _, child := range v.Children {
			md, err := nodeToMarkdown(child)
			if err != nil {
				return "", err
			}
			for _, line := range strings.Split(md, "\n") {
				b.WriteString("> ")
				b.WriteString(line)
				b.WriteByte('\n')
			}
			b.WriteString("> \n")
		}
		// Drop the trailing separator line whole; a character-set trim
		// would also eat content that ends in '>' or spaces.
		out := strings.TrimSuffix(b.String(), "> \n")
		return strings.TrimSuffix(out, "\n"), nil

	case *document.ThematicBreak:
		return "---", nil

	case *document.Table:
		return tableToMarkdown(v), nil

	case *document.FootnoteReference:
		return "[^" + v.Label + "]", nil

	case *document.FootnoteDefinition:
		var b strings.Builder
		b.WriteString("[^" + v.Label + "]:")
		for i, child := range v.Content {
			md, err := nodeToMarkdown(child)
			if err != nil {
				return "", err
			}
			if i == 0 {
				b.WriteByte(' ')
				b.WriteString(md)
				continue
			}
			b.WriteByte('\n')
			for _, line := range strings.Split(md, "\n") {
				b.WriteString("    ")
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
		return strings.TrimRight(b.String(), "\n"), nil

	case *document.DefinitionList:
		var b strings.Builder
		for _, item := range v.Items {
			b.WriteString(inlinesToMarkdown(item.Term))
			b.WriteByte('\n')
			for _, desc := range item.Descriptions {
				b.WriteString(":   ")
				for i, n := range desc {
					md, err := nodeToMarkdown(n)
					if err != nil {
						return "", err
					}
					if i == 0 {
						b.WriteString(md)
						continue
					}
					b.WriteByte('\n')
					for _, line := range strings.Split(md, "\n") {
						b.WriteString("    ")
						b.WriteString(line)
						b.WriteByte('\n')
					}
				}
				b.WriteByte('\n')
			}
		}
		return strings.TrimRight(b.String(), "\n"), nil

	case *document.MathBlock:
		return "$$\n" + v.Math + "\n$$", nil

	case *document.Group:
		var parts []string
		for _, child := range v.Children {
			md, err := nodeToMarkdown(child)
			if err != nil {
				return "", err
			}
			parts = append(parts, md)
		}
		return strings.Join(parts, "\n\n"), nil

	case *document.TempListItem, *document.TempTableCell:
		return "", ErrTempNode

	default:
		return "", fmt.Errorf("unknown node kind %T: %w", node, ErrParse)
	}
}

func listToMarkdown(list *document.List) (string, error) {
	var b strings.Builder
	for i, item := range list.Items {
		var prefix string
		switch list.Kind {
		case document.Ordered:
			prefix = strconv.Itoa(i+1) + ". "
		case document.Task:
			switch {
			case item.Checked == nil:
				prefix = "- "
			case *item.Checked:
				prefix = "- [x] "
			default:
				prefix = "- [ ] "
			}
		default:
			prefix = "* "
		}

		first := true
		for _, child := range item.Children {
			md, err := nodeToMarkdown(child)
			if err != nil {
				return "", err
			}
			if first {
				b.WriteString(prefix)
				b.WriteString(md)
				first = false
				continue
			}
			indent := strings.Repeat(" ", len(prefix))
			b.WriteByte('\n')
			for _, line := range strings.Split(md, "\n") {
				b.WriteString(indent)
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func tableToMarkdown(table *document.Table) string {
	var b strings.Builder

	if len(table.Header) == 0 && len(table.Rows) > 0 {
		for i := range table.Rows[0] {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("Header " + strconv.Itoa(i+1))
		}
	} else {
		for i, cell := range table.Header {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(inlinesToMarkdown(cell.Content))
		}
	}
	b.WriteByte('\n')

	b.WriteByte('|')
	for _, a := range table.Alignments {
		switch a {
		case document.AlignLeft:
			b.WriteString(":" + strings.Repeat("-", 7))
		case document.AlignCenter:
			b.WriteString(":" + strings.Repeat("-", 7) + ":")
		case document.AlignRight:
			b.WriteString(strings.Repeat("-", 7) + ":")
		default:
			b.WriteString(strings.Repeat("-", 8))
		}
		b.WriteByte('|')
	}
	b.WriteByte('\n')

	for _, row := range table.Rows {
		b.WriteByte('|')
		for _, cell := range row {
			b.WriteByte(' ')
			b.WriteString(inlinesToMarkdown(cell.Content))
			b.WriteString(" |")
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func inlinesToMarkdown(inlines []document.Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		b.WriteString(inlineToMarkdown(in))
	}
	return b.String()
}

func inlineToMarkdown(in document.Inline) string {
	switch v := in.(type) {
	case *document.Text:
		out := v.Text
		if v.Format.Bold {
			out = "**" + out + "**"
		}
		if v.Format.Italic {
			out = "*" + out + "*"
		}
		if v.Format.Strikethrough {
			out = "~~" + out + "~~"
		}
		if v.Format.Code {
			out = "`" + out + "`"
		}
		return out

	case *document.Link:
		content := inlinesToMarkdown(v.Children)
		if v.Title != "" {
			return fmt.Sprintf("[%s](%s %q)", content, v.URL, v.Title)
		}
		return fmt.Sprintf("[%s](%s)", content, v.URL)

	case *document.Image:
		if v.Title != "" {
			return fmt.Sprintf("![%s](%s %q)", v.Alt, v.URL, v.Title)
		}
		return fmt.Sprintf("![%s](%s)", v.Alt, v.URL)

	case *document.CodeSpan:
		return "`" + v.Code + "`"

	case *document.AutoLink:
		return "<" + v.URL + ">"

	case *document.FootnoteRef:
		return "[^" + v.Label + "]"

	case *document.InlineFootnote:
		return "[^" + inlinesToMarkdown(v.Children) + "]"

	case *document.Mention:
		switch v.Kind {
		case "user":
			return "@" + v.Name
		case "issue":
			return "#" + v.Name
		default:
			return v.Name
		}

	case *document.Math:
		return `<span class="math-inline">$` + htmlEscape(v.Math) + `$</span>`

	case *document.Emoji:
		return ":" + v.Shortcode + ":"

	case *document.HardBreak:
		return "  \n"

	case *document.SoftBreak:
		return " "

	default:
		return ""
	}
}
