package convert

import (
	"strings"

	"github.com/dshills/mdedit/document"
)

// ParseMarkdown parses markdown text into a document. The dialect covers
// what ToMarkdown emits: ATX headings, fenced code blocks, block quotes,
// nested ordered/unordered/task lists, pipe tables with an alignment row,
// thematic breaks, display math and footnote definitions. Unrecognized
// lines fall through as paragraphs.
func ParseMarkdown(input string) (*document.Document, error) {
	doc := document.New()
	lines := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	nodes, err := parseBlocks(lines)
	if err != nil {
		return nil, err
	}
	doc.Nodes = nodes
	return doc, nil
}

func parseBlocks(lines []string) ([]document.Node, error) {
	var nodes []document.Node
	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			i++

		case strings.HasPrefix(trimmed, "#"):
			if node, ok := parseHeading(trimmed); ok {
				nodes = append(nodes, node)
				i++
				continue
			}
			var err error
			nodes, i, err = parseParagraphInto(nodes, lines, i)
			if err != nil {
				return nil, err
			}

		case strings.HasPrefix(trimmed, "```"):
			node, next := parseFence(lines, i)
			nodes = append(nodes, node)
			i = next

		case trimmed == "$$":
			node, next := parseMathBlock(lines, i)
			nodes = append(nodes, node)
			i = next

		case isThematicBreak(trimmed):
			nodes = append(nodes, &document.ThematicBreak{})
			i++

		case strings.HasPrefix(trimmed, ">"):
			node, next, err := parseBlockQuote(lines, i)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i = next

		case isFootnoteDefinition(trimmed):
			node := parseFootnoteDefinition(trimmed)
			nodes = append(nodes, node)
			i++

		case isTableStart(lines, i):
			node, next := parseTable(lines, i)
			nodes = append(nodes, node)
			i = next

		case isListLine(line):
			node, next, err := parseList(lines, i, indentOf(line))
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i = next

		default:
			var err error
			nodes, i, err = parseParagraphInto(nodes, lines, i)
			if err != nil {
				return nil, err
			}
		}
	}
	return nodes, nil
}

func parseHeading(trimmed string) (document.Node, bool) {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level < 1 || level > 6 || level >= len(trimmed) || trimmed[level] != ' ' {
		return nil, false
	}
	text := strings.TrimSpace(trimmed[level:])
	return &document.Heading{Level: level, Children: parseInlines(text)}, true
}

func parseFence(lines []string, start int) (document.Node, int) {
	language := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[start]), "```"))
	var code []string
	i := start + 1
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "```" {
			i++
			break
		}
		code = append(code, lines[i])
		i++
	}
	return &document.CodeBlock{Language: language, Code: strings.Join(code, "\n")}, i
}

func parseMathBlock(lines []string, start int) (document.Node, int) {
	var math []string
	i := start + 1
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "$$" {
			i++
			break
		}
		math = append(math, lines[i])
		i++
	}
	return &document.MathBlock{Math: strings.Join(math, "\n")}, i
}

func isThematicBreak(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	c := trimmed[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	count := 0
	for _, r := range trimmed {
		switch byte(r) {
		case c:
			count++
		case ' ':
		default:
			return false
		}
	}
	return count >= 3
}

func parseBlockQuote(lines []string, start int) (document.Node, int, error) {
	var inner []string
	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		stripped := strings.TrimPrefix(trimmed, ">")
		stripped = strings.TrimPrefix(stripped, " ")
		inner = append(inner, stripped)
		i++
	}
	children, err := parseBlocks(inner)
	if err != nil {
		return nil, 0, err
	}
	return &document.BlockQuote{Children: children}, i, nil
}

func isFootnoteDefinition(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "[^") {
		return false
	}
	close := strings.Index(trimmed, "]:")
	return close > 2
}

func parseFootnoteDefinition(trimmed string) document.Node {
	close := strings.Index(trimmed, "]:")
	label := trimmed[2:close]
	body := strings.TrimSpace(trimmed[close+2:])
	var content []document.Node
	if body != "" {
		content = append(content, &document.Paragraph{Children: parseInlines(body)})
	}
	return &document.FootnoteDefinition{Label: label, Content: content}
}

// Tables.

func isTableStart(lines []string, i int) bool {
	if !strings.Contains(lines[i], "|") {
		return false
	}
	if i+1 >= len(lines) {
		return false
	}
	return isTableSeparator(strings.TrimSpace(lines[i+1]))
}

func isTableSeparator(trimmed string) bool {
	if !strings.Contains(trimmed, "-") {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '|', ':', '-', ' ':
		default:
			return false
		}
	}
	return true
}

func parseTable(lines []string, start int) (document.Node, int) {
	header := splitTableRow(lines[start])
	alignments := parseAlignmentRow(strings.TrimSpace(lines[start+1]), len(header))

	table := &document.Table{Alignments: alignments}
	for _, text := range header {
		cell := document.NewTableCell(parseInlines(text))
		cell.IsHeader = true
		table.Header = append(table.Header, cell)
	}

	i := start + 2
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || !strings.Contains(trimmed, "|") {
			break
		}
		var row []document.TableCell
		for _, text := range splitTableRow(lines[i]) {
			row = append(row, document.NewTableCell(parseInlines(text)))
		}
		table.Rows = append(table.Rows, row)
		i++
	}
	return table, i
}

func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func parseAlignmentRow(trimmed string, columns int) []document.Alignment {
	specs := splitTableRow(trimmed)
	out := make([]document.Alignment, columns)
	for i := range out {
		if i >= len(specs) {
			break
		}
		spec := specs[i]
		left := strings.HasPrefix(spec, ":")
		right := strings.HasSuffix(spec, ":")
		switch {
		case left && right:
			out[i] = document.AlignCenter
		case left:
			out[i] = document.AlignLeft
		case right:
			out[i] = document.AlignRight
		default:
			out[i] = document.AlignNone
		}
	}
	return out
}

// Lists.

type listMarker struct {
	ordered bool
	task    bool
	checked bool
	width   int // bytes consumed by marker and following space
}

func matchListMarker(trimmed string) (listMarker, bool) {
	var m listMarker
	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "+ "):
		m.width = 2
	default:
		digits := 0
		for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
			digits++
		}
		if digits == 0 || digits+1 >= len(trimmed) || trimmed[digits] != '.' || trimmed[digits+1] != ' ' {
			return m, false
		}
		m.ordered = true
		m.width = digits + 2
	}

	rest := trimmed[m.width:]
	if strings.HasPrefix(rest, "[ ] ") {
		m.task = true
		m.width += 4
	} else if strings.HasPrefix(rest, "[x] ") || strings.HasPrefix(rest, "[X] ") {
		m.task = true
		m.checked = true
		m.width += 4
	}
	return m, true
}

func isListLine(line string) bool {
	_, ok := matchListMarker(strings.TrimLeft(line, " "))
	return ok
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// parseList consumes a list whose items sit at the given indent. Deeper
// indented list lines become nested lists inside the previous item.
func parseList(lines []string, start, indent int) (document.Node, int, error) {
	list := &document.List{}
	kind := document.Unordered
	sawKind := false

	i := start
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			// A blank line ends the list unless another item follows at
			// this indent.
			if i+1 < len(lines) && isListLine(lines[i+1]) && indentOf(lines[i+1]) >= indent {
				i++
				continue
			}
			break
		}

		lineIndent := indentOf(line)
		trimmed := strings.TrimLeft(line, " ")
		marker, isItem := matchListMarker(trimmed)

		if isItem && lineIndent > indent && len(list.Items) > 0 {
			nested, next, err := parseList(lines, i, lineIndent)
			if err != nil {
				return nil, 0, err
			}
			last := &list.Items[len(list.Items)-1]
			last.Children = append(last.Children, nested)
			i = next
			continue
		}

		if !isItem || lineIndent < indent {
			break
		}

		if !sawKind {
			switch {
			case marker.task:
				kind = document.Task
			case marker.ordered:
				kind = document.Ordered
			default:
				kind = document.Unordered
			}
			sawKind = true
		} else if marker.task && kind != document.Task {
			kind = document.Task
		}

		text := trimmed[marker.width:]
		item := document.ListItem{
			Children: []document.Node{&document.Paragraph{Children: parseInlines(text)}},
		}
		if marker.task {
			checked := marker.checked
			item.Checked = &checked
		}
		list.Items = append(list.Items, item)
		i++
	}

	list.Kind = kind
	if kind == document.Task {
		for idx := range list.Items {
			if list.Items[idx].Checked == nil {
				unchecked := false
				list.Items[idx].Checked = &unchecked
			}
		}
	}
	return list, i, nil
}

// Paragraphs.

func parseParagraphInto(nodes []document.Node, lines []string, start int) ([]document.Node, int, error) {
	var parts []string
	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, ">") ||
			isThematicBreak(trimmed) || isListLine(lines[i]) || isTableStart(lines, i) ||
			isFootnoteDefinition(trimmed) || trimmed == "$$" {
			break
		}
		if h := strings.TrimLeft(trimmed, "#"); h != trimmed && strings.HasPrefix(h, " ") {
			break
		}
		parts = append(parts, trimmed)
		i++
	}
	if i == start {
		// The line matched no block start yet also refused paragraph
		// accumulation; consume it as a single-line paragraph to
		// guarantee progress.
		parts = append(parts, strings.TrimSpace(lines[start]))
		i = start + 1
	}
	text := strings.Join(parts, " ")
	nodes = append(nodes, &document.Paragraph{Children: parseInlines(text)})
	return nodes, i, nil
}

// Inline parsing.

// parseInlines scans a line of text into inline nodes: code spans, images,
// links, autolinks, footnote references and the emphasis pairs the
// serializer emits. Formatting nests by recursion.
func parseInlines(text string) []document.Inline {
	return parseInlinesWith(text, document.Formatting{})
}

func parseInlinesWith(text string, format document.Formatting) []document.Inline {
	var out []document.Inline
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			out = append(out, &document.Text{Text: plain.String(), Format: format})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		rest := text[i:]

		switch {
		case rest[0] == '`':
			if end := strings.Index(rest[1:], "`"); end >= 0 {
				flush()
				out = append(out, &document.CodeSpan{Code: rest[1 : 1+end]})
				i += end + 2
				continue
			}

		case strings.HasPrefix(rest, "!["):
			if url, title, label, width, ok := matchLinkLike(rest[1:]); ok {
				flush()
				out = append(out, &document.Image{URL: url, Alt: label, Title: title})
				i += width + 1
				continue
			}

		case strings.HasPrefix(rest, "[^"):
			if end := strings.Index(rest, "]"); end > 2 {
				flush()
				out = append(out, &document.FootnoteRef{Label: rest[2:end]})
				i += end + 1
				continue
			}

		case rest[0] == '[':
			if url, title, label, width, ok := matchLinkLike(rest); ok {
				flush()
				out = append(out, &document.Link{
					URL:      url,
					Title:    title,
					Children: parseInlinesWith(label, format),
				})
				i += width
				continue
			}

		case rest[0] == '<':
			if end := strings.Index(rest, ">"); end > 1 {
				inner := rest[1:end]
				if isAutoLink(inner) {
					flush()
					out = append(out, &document.AutoLink{
						URL:     inner,
						IsEmail: !strings.Contains(inner, "://"),
					})
					i += end + 1
					continue
				}
			}

		case strings.HasPrefix(rest, "***"):
			if inner, width, ok := matchDelimited(rest, "***"); ok {
				flush()
				out = append(out, parseInlinesWith(inner, format.WithBold().WithItalic())...)
				i += width
				continue
			}

		case strings.HasPrefix(rest, "**"):
			if inner, width, ok := matchDelimited(rest, "**"); ok {
				flush()
				out = append(out, parseInlinesWith(inner, format.WithBold())...)
				i += width
				continue
			}

		case rest[0] == '*':
			if inner, width, ok := matchDelimited(rest, "*"); ok {
				flush()
				out = append(out, parseInlinesWith(inner, format.WithItalic())...)
				i += width
				continue
			}

		case strings.HasPrefix(rest, "~~"):
			if inner, width, ok := matchDelimited(rest, "~~"); ok {
				flush()
				out = append(out, parseInlinesWith(inner, format.WithStrikethrough())...)
				i += width
				continue
			}
		}

		plain.WriteByte(text[i])
		i++
	}
	flush()
	return out
}

// matchDelimited matches delim + non-empty inner + delim at the start of
// text, returning the inner text and total width.
func matchDelimited(text, delim string) (string, int, bool) {
	body := text[len(delim):]
	end := strings.Index(body, delim)
	if end <= 0 {
		return "", 0, false
	}
	return body[:end], end + 2*len(delim), true
}

// matchLinkLike matches [label](url) or [label](url "title") at the start
// of text.
func matchLinkLike(text string) (url, title, label string, width int, ok bool) {
	if len(text) == 0 || text[0] != '[' {
		return "", "", "", 0, false
	}
	close := strings.Index(text, "](")
	if close < 0 {
		return "", "", "", 0, false
	}
	label = text[1:close]
	rest := text[close+2:]
	end := strings.Index(rest, ")")
	if end < 0 {
		return "", "", "", 0, false
	}
	target := rest[:end]
	url = target
	if at := strings.Index(target, ` "`); at >= 0 && strings.HasSuffix(target, `"`) {
		url = target[:at]
		title = target[at+2 : len(target)-1]
	}
	return url, title, label, close + 2 + end + 1, true
}

func isAutoLink(s string) bool {
	if strings.ContainsAny(s, " \t") {
		return false
	}
	if strings.Contains(s, "://") {
		return true
	}
	at := strings.Index(s, "@")
	return at > 0 && strings.Contains(s[at:], ".")
}
