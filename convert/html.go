package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dshills/mdedit/document"
)

// ToHTML serializes a document to an HTML fragment. Task lists render as
// ul.task-list with checkbox inputs, alignments become align-* classes,
// and math wraps in math-block/math-inline spans.
func ToHTML(doc *document.Document) (string, error) {
	var b strings.Builder
	for _, node := range doc.Nodes {
		h, err := nodeToHTML(node)
		if err != nil {
			return "", err
		}
		b.WriteString(h)
	}
	return b.String(), nil
}

func nodeToHTML(node document.Node) (string, error) {
	switch v := node.(type) {
	case *document.Heading:
		tag := "h" + strconv.Itoa(v.Level)
		return "<" + tag + ">" + inlinesToHTML(v.Children) + "</" + tag + ">", nil

	case *document.Paragraph:
		return "<p>" + inlinesToHTML(v.Children) + "</p>", nil

	case *document.List:
		return listToHTML(v)

	case *document.CodeBlock:
		attr := ""
		if v.Language != "" {
			attr = ` class="language-` + v.Language + `"`
		}
		return "<pre><code" + attr + ">" + htmlEscape(v.Code) + "</code></pre>", nil

	case *document.BlockQuote:
		var b strings.Builder
		b.WriteString("<blockquote>")
		for _, child := range v.Children {
			h, err := nodeToHTML(child)
			if err != nil {
				return "", err
			}
			b.WriteString(h)
		}
		b.WriteString("</blockquote>")
		return b.String(), nil

	case *document.ThematicBreak:
		return "<hr>", nil

	case *document.Table:
		return tableToHTML(v), nil

	case *document.FootnoteReference:
		id := htmlEscape(v.Label)
		return `<sup class="footnote-ref"><a href="#fn-` + id + `" id="fnref-` + id + `">` + id + `</a></sup>`, nil

	case *document.FootnoteDefinition:
		var b strings.Builder
		label := htmlEscape(v.Label)
		b.WriteString(`<div class="footnote" id="fn-` + label + "\">\n<p>" + label + ": ")
		for _, child := range v.Content {
			h, err := nodeToHTML(child)
			if err != nil {
				return "", err
			}
			b.WriteString(h)
		}
		b.WriteString("</p>\n</div>")
		return b.String(), nil

	case *document.DefinitionList:
		var b strings.Builder
		b.WriteString("<dl>")
		for _, item := range v.Items {
			b.WriteString("<dt>" + inlinesToHTML(item.Term) + "</dt>")
			for _, desc := range item.Descriptions {
				b.WriteString("<dd>")
				for _, n := range desc {
					h, err := nodeToHTML(n)
					if err != nil {
						return "", err
					}
					b.WriteString(h)
				}
				b.WriteString("</dd>")
			}
		}
		b.WriteString("</dl>")
		return b.String(), nil

	case *document.MathBlock:
		return `<div class="math-block">$` + htmlEscape(v.Math) + `$</div>`, nil

	case *document.Group:
		var b strings.Builder
		b.WriteString(`<div class="group" data-name="` + htmlEscape(v.Name) + `">`)
		for _, child := range v.Children {
			h, err := nodeToHTML(child)
			if err != nil {
				return "", err
			}
			b.WriteString(h)
		}
		b.WriteString("</div>")
		return b.String(), nil

	case *document.TempListItem, *document.TempTableCell:
		return "", ErrTempNode

	default:
		return "", fmt.Errorf("unknown node kind %T: %w", node, ErrParse)
	}
}

func listToHTML(list *document.List) (string, error) {
	var open, tag string
	switch list.Kind {
	case document.Ordered:
		open, tag = "<ol>", "ol"
	case document.Task:
		open, tag = `<ul class="task-list">`, "ul"
	default:
		open, tag = "<ul>", "ul"
	}

	var b strings.Builder
	b.WriteString(open)
	for _, item := range list.Items {
		checkbox := ""
		if item.Checked != nil {
			if *item.Checked {
				checkbox = `<input type="checkbox" checked> `
			} else {
				checkbox = `<input type="checkbox"> `
			}
		}

		b.WriteString("<li>")
		wroteCheckbox := false
		for i, child := range item.Children {
			if i == 0 {
				if p, ok := child.(*document.Paragraph); ok {
					b.WriteString("<p>" + checkbox + inlinesToHTML(p.Children) + "</p>")
					wroteCheckbox = true
					continue
				}
				b.WriteString(checkbox)
				wroteCheckbox = true
			}
			h, err := nodeToHTML(child)
			if err != nil {
				return "", err
			}
			b.WriteString(h)
		}
		if !wroteCheckbox {
			b.WriteString(checkbox)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</" + tag + ">")
	return b.String(), nil
}

func tableToHTML(table *document.Table) string {
	alignClass := func(i int) string {
		if i >= len(table.Alignments) {
			return ""
		}
		switch table.Alignments[i] {
		case document.AlignLeft:
			return ` class="align-left"`
		case document.AlignCenter:
			return ` class="align-center"`
		case document.AlignRight:
			return ` class="align-right"`
		default:
			return ""
		}
	}
	spanAttrs := func(cell document.TableCell) string {
		attrs := ""
		if cell.Colspan > 1 {
			attrs += ` colspan="` + strconv.Itoa(cell.Colspan) + `"`
		}
		if cell.Rowspan > 1 {
			attrs += ` rowspan="` + strconv.Itoa(cell.Rowspan) + `"`
		}
		if cell.BackgroundColor != "" {
			attrs += ` style="background-color:` + htmlEscape(cell.BackgroundColor) + `"`
		}
		return attrs
	}

	var b strings.Builder
	b.WriteString("<table>\n<thead>\n<tr>")
	for i, cell := range table.Header {
		b.WriteString("<th" + alignClass(i) + spanAttrs(cell) + ">" + inlinesToHTML(cell.Content) + "</th>")
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range table.Rows {
		b.WriteString("<tr>")
		for i, cell := range row {
			b.WriteString("<td" + alignClass(i) + spanAttrs(cell) + ">" + inlinesToHTML(cell.Content) + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}

func inlinesToHTML(inlines []document.Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		b.WriteString(inlineToHTML(in))
	}
	return b.String()
}

func inlineToHTML(in document.Inline) string {
	switch v := in.(type) {
	case *document.Text:
		out := htmlEscape(v.Text)
		if v.Format.Bold {
			out = "<strong>" + out + "</strong>"
		}
		if v.Format.Italic {
			out = "<em>" + out + "</em>"
		}
		if v.Format.Strikethrough {
			out = "<del>" + out + "</del>"
		}
		if v.Format.Code {
			out = "<code>" + out + "</code>"
		}
		return out

	case *document.Link:
		attr := ""
		if v.Title != "" {
			attr = ` title="` + htmlEscape(v.Title) + `"`
		}
		return `<a href="` + htmlEscape(v.URL) + `"` + attr + ">" + inlinesToHTML(v.Children) + "</a>"

	case *document.Image:
		attr := ""
		if v.Title != "" {
			attr = ` title="` + htmlEscape(v.Title) + `"`
		}
		return `<img src="` + htmlEscape(v.URL) + `" alt="` + htmlEscape(v.Alt) + `"` + attr + ">"

	case *document.CodeSpan:
		return "<code>" + htmlEscape(v.Code) + "</code>"

	case *document.AutoLink:
		href := v.URL
		if v.IsEmail && !strings.HasPrefix(href, "mailto:") {
			href = "mailto:" + href
		}
		return `<a href="` + htmlEscape(href) + `">` + htmlEscape(v.URL) + "</a>"

	case *document.FootnoteRef:
		label := htmlEscape(v.Label)
		return `<sup class="footnote-ref"><a href="#fn-` + label + `" id="fnref-` + label + `">` + label + `</a></sup>`

	case *document.InlineFootnote:
		return `<sup class="footnote-inline">` + inlinesToHTML(v.Children) + "</sup>"

	case *document.Mention:
		switch v.Kind {
		case "user":
			return `<span class="mention mention-user">@` + htmlEscape(v.Name) + "</span>"
		case "issue":
			return `<span class="mention mention-issue">#` + htmlEscape(v.Name) + "</span>"
		default:
			return `<span class="mention mention-` + htmlEscape(v.Kind) + `">` + htmlEscape(v.Name) + "</span>"
		}

	case *document.Math:
		return `<span class="math-inline">$` + htmlEscape(v.Math) + "$</span>"

	case *document.Emoji:
		code := htmlEscape(v.Shortcode)
		return `<span class="emoji emoji-` + code + `">` + code + "</span>"

	case *document.HardBreak, *document.SoftBreak:
		return "<br/>\n"

	default:
		return ""
	}
}

// ParseHTML parses an HTML fragment into a document. The element
// vocabulary mirrors what ToHTML emits; unknown elements contribute their
// text content as paragraphs.
func ParseHTML(input string) (*document.Document, error) {
	q, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	doc := document.New()
	q.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		if node := blockFromSelection(s); node != nil {
			doc.Nodes = append(doc.Nodes, node)
		}
	})
	return doc, nil
}

func blockFromSelection(s *goquery.Selection) document.Node {
	switch goquery.NodeName(s) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(goquery.NodeName(s)[1] - '0')
		return &document.Heading{Level: level, Children: inlinesFromSelection(s)}

	case "p":
		return &document.Paragraph{Children: inlinesFromSelection(s)}

	case "ul", "ol":
		return listFromSelection(s)

	case "pre":
		code := s.Find("code").First()
		if code.Length() == 0 {
			return &document.CodeBlock{Code: s.Text()}
		}
		language := ""
		if class, ok := code.Attr("class"); ok {
			for _, c := range strings.Fields(class) {
				if lang, found := strings.CutPrefix(c, "language-"); found {
					language = lang
					break
				}
			}
		}
		return &document.CodeBlock{Language: language, Code: strings.TrimSuffix(code.Text(), "\n")}

	case "blockquote":
		bq := &document.BlockQuote{}
		s.Children().Each(func(_ int, child *goquery.Selection) {
			if node := blockFromSelection(child); node != nil {
				bq.Children = append(bq.Children, node)
			}
		})
		return bq

	case "hr":
		return &document.ThematicBreak{}

	case "table":
		return tableFromSelection(s)

	case "dl":
		return definitionListFromSelection(s)

	case "div":
		class, _ := s.Attr("class")
		switch {
		case strings.Contains(class, "math-block"):
			return &document.MathBlock{Math: strings.Trim(strings.TrimSpace(s.Text()), "$")}
		case strings.Contains(class, "footnote"):
			return footnoteFromSelection(s)
		case strings.Contains(class, "group"):
			name, _ := s.Attr("data-name")
			g := &document.Group{Name: name}
			s.Children().Each(func(_ int, child *goquery.Selection) {
				if node := blockFromSelection(child); node != nil {
					g.Children = append(g.Children, node)
				}
			})
			return g
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			return document.NewParagraph(text)
		}
		return nil

	default:
		if text := strings.TrimSpace(s.Text()); text != "" {
			return document.NewParagraph(text)
		}
		return nil
	}
}

func listFromSelection(s *goquery.Selection) document.Node {
	list := &document.List{Kind: document.Unordered}
	if goquery.NodeName(s) == "ol" {
		list.Kind = document.Ordered
	}
	if class, ok := s.Attr("class"); ok && strings.Contains(class, "task-list") {
		list.Kind = document.Task
	}

	s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		item := document.ListItem{}

		if input := li.Find(`input[type="checkbox"]`).First(); input.Length() > 0 {
			_, checked := input.Attr("checked")
			item.Checked = &checked
			list.Kind = document.Task
			input.Remove()
		}

		hasBlocks := false
		li.Children().Each(func(_ int, child *goquery.Selection) {
			switch goquery.NodeName(child) {
			case "p":
				item.Children = append(item.Children, &document.Paragraph{Children: inlinesFromSelection(child)})
				hasBlocks = true
			case "ul", "ol":
				item.Children = append(item.Children, listFromSelection(child))
				hasBlocks = true
			}
		})
		if !hasBlocks {
			if text := strings.TrimSpace(li.Text()); text != "" {
				item.Children = append(item.Children, document.NewParagraph(text))
			}
		}
		list.Items = append(list.Items, item)
	})

	if list.Kind == document.Task {
		for i := range list.Items {
			if list.Items[i].Checked == nil {
				unchecked := false
				list.Items[i].Checked = &unchecked
			}
		}
	}
	return list
}

func tableFromSelection(s *goquery.Selection) document.Node {
	table := &document.Table{}
	alignFromClass := func(sel *goquery.Selection) document.Alignment {
		class, _ := sel.Attr("class")
		switch {
		case strings.Contains(class, "align-left"):
			return document.AlignLeft
		case strings.Contains(class, "align-center"):
			return document.AlignCenter
		case strings.Contains(class, "align-right"):
			return document.AlignRight
		default:
			return document.AlignNone
		}
	}
	cellFrom := func(sel *goquery.Selection, header bool) document.TableCell {
		cell := document.NewTableCell(inlinesFromSelection(sel))
		cell.IsHeader = header
		if v, ok := sel.Attr("colspan"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 1 {
				cell.Colspan = n
			}
		}
		if v, ok := sel.Attr("rowspan"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 1 {
				cell.Rowspan = n
			}
		}
		return cell
	}

	s.Find("thead tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
		table.Header = append(table.Header, cellFrom(th, true))
		table.Alignments = append(table.Alignments, alignFromClass(th))
	})
	s.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var row []document.TableCell
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			row = append(row, cellFrom(td, false))
			if len(table.Header) == 0 && len(table.Rows) == 0 && i >= len(table.Alignments) {
				table.Alignments = append(table.Alignments, alignFromClass(td))
			}
		})
		table.Rows = append(table.Rows, row)
	})
	return table
}

func definitionListFromSelection(s *goquery.Selection) document.Node {
	dl := &document.DefinitionList{}
	s.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "dt":
			dl.Items = append(dl.Items, document.DefinitionItem{Term: inlinesFromSelection(child)})
		case "dd":
			if len(dl.Items) == 0 {
				return
			}
			var desc []document.Node
			child.Children().Each(func(_ int, inner *goquery.Selection) {
				if node := blockFromSelection(inner); node != nil {
					desc = append(desc, node)
				}
			})
			if len(desc) == 0 {
				if text := strings.TrimSpace(child.Text()); text != "" {
					desc = append(desc, document.NewParagraph(text))
				}
			}
			last := &dl.Items[len(dl.Items)-1]
			last.Descriptions = append(last.Descriptions, desc)
		}
	})
	return dl
}

func footnoteFromSelection(s *goquery.Selection) document.Node {
	id, _ := s.Attr("id")
	label := strings.TrimPrefix(id, "fn-")
	def := &document.FootnoteDefinition{Label: label}
	text := strings.TrimSpace(s.Text())
	// The serialized form opens with "label: ".
	text = strings.TrimPrefix(text, label+": ")
	if text != "" {
		def.Content = append(def.Content, document.NewParagraph(text))
	}
	return def
}

// inlinesFromSelection walks a selection's contents in order, mapping text
// nodes and the inline element vocabulary back to inline nodes.
func inlinesFromSelection(s *goquery.Selection) []document.Inline {
	return inlinesWithFormat(s, document.Formatting{})
}

func inlinesWithFormat(s *goquery.Selection, format document.Formatting) []document.Inline {
	var out []document.Inline
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			if text := c.Text(); text != "" {
				out = append(out, &document.Text{Text: text, Format: format})
			}

		case "strong", "b":
			out = append(out, inlinesWithFormat(c, format.WithBold())...)
		case "em", "i":
			out = append(out, inlinesWithFormat(c, format.WithItalic())...)
		case "del", "s":
			out = append(out, inlinesWithFormat(c, format.WithStrikethrough())...)

		case "code":
			out = append(out, &document.CodeSpan{Code: c.Text()})

		case "a":
			href, _ := c.Attr("href")
			title, _ := c.Attr("title")
			out = append(out, &document.Link{
				URL:      href,
				Title:    title,
				Children: inlinesWithFormat(c, format),
			})

		case "img":
			src, _ := c.Attr("src")
			alt, _ := c.Attr("alt")
			title, _ := c.Attr("title")
			out = append(out, &document.Image{URL: src, Alt: alt, Title: title})

		case "br":
			out = append(out, &document.HardBreak{})

		case "sup":
			class, _ := c.Attr("class")
			switch {
			case strings.Contains(class, "footnote-ref"):
				if id, ok := c.Find("a").Attr("id"); ok {
					out = append(out, &document.FootnoteRef{Label: strings.TrimPrefix(id, "fnref-")})
				} else {
					out = append(out, &document.FootnoteRef{Label: strings.TrimSpace(c.Text())})
				}
			case strings.Contains(class, "footnote-inline"):
				out = append(out, &document.InlineFootnote{Children: inlinesWithFormat(c, format)})
			default:
				out = append(out, inlinesWithFormat(c, format)...)
			}

		case "span":
			class, _ := c.Attr("class")
			switch {
			case strings.Contains(class, "math-inline"):
				out = append(out, &document.Math{Math: strings.Trim(c.Text(), "$")})
			case strings.Contains(class, "mention-user"):
				out = append(out, &document.Mention{Name: strings.TrimPrefix(c.Text(), "@"), Kind: "user"})
			case strings.Contains(class, "mention-issue"):
				out = append(out, &document.Mention{Name: strings.TrimPrefix(c.Text(), "#"), Kind: "issue"})
			case strings.Contains(class, "emoji"):
				out = append(out, &document.Emoji{Shortcode: strings.TrimSpace(c.Text())})
			default:
				out = append(out, inlinesWithFormat(c, format)...)
			}

		default:
			out = append(out, inlinesWithFormat(c, format)...)
		}
	})
	return out
}
