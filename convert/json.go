package convert

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/mdedit/document"
)

// ToJSON serializes a document to a JSON tree. Every node and inline
// carries a "type" discriminator; formatting flags serialize only when
// set, so plain text stays compact.
func ToJSON(doc *document.Document) (string, error) {
	out := `{"nodes":[]}`
	out = set(out, "meta.id", doc.Meta.ID.String())
	if doc.Meta.Title != "" {
		out = set(out, "meta.title", doc.Meta.Title)
	}
	if doc.Meta.Author != "" {
		out = set(out, "meta.author", doc.Meta.Author)
	}
	if doc.Meta.Date != "" {
		out = set(out, "meta.date", doc.Meta.Date)
	}
	for k, v := range doc.Meta.Custom {
		out = set(out, "meta.custom."+escapePath(k), v)
	}

	for _, node := range doc.Nodes {
		raw, err := nodeToJSON(node)
		if err != nil {
			return "", err
		}
		out = setRaw(out, "nodes.-1", raw)
	}
	return out, nil
}

// set and setRaw wrap sjson for static paths, where the only failure mode
// is a malformed document produced by an earlier bug.
func set(json, path string, value interface{}) string {
	out, err := sjson.Set(json, path, value)
	if err != nil {
		panic("convert: sjson set failed: " + err.Error())
	}
	return out
}

func setRaw(json, path, raw string) string {
	out, err := sjson.SetRaw(json, path, raw)
	if err != nil {
		panic("convert: sjson setRaw failed: " + err.Error())
	}
	return out
}

func escapePath(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		if key[i] == '.' || key[i] == '*' || key[i] == '?' {
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}

func nodeToJSON(node document.Node) (string, error) {
	switch v := node.(type) {
	case *document.Heading:
		s := set(`{}`, "type", "heading")
		s = set(s, "level", v.Level)
		return setRaw(s, "children", inlinesToJSON(v.Children)), nil

	case *document.Paragraph:
		s := set(`{}`, "type", "paragraph")
		return setRaw(s, "children", inlinesToJSON(v.Children)), nil

	case *document.List:
		s := set(`{}`, "type", "list")
		s = set(s, "list_type", v.Kind.String())
		s = setRaw(s, "items", `[]`)
		for _, item := range v.Items {
			raw, err := listItemToJSON(item)
			if err != nil {
				return "", err
			}
			s = setRaw(s, "items.-1", raw)
		}
		return s, nil

	case *document.CodeBlock:
		s := set(`{}`, "type", "code_block")
		s = set(s, "language", v.Language)
		return set(s, "code", v.Code), nil

	case *document.BlockQuote:
		s := set(`{}`, "type", "blockquote")
		raw, err := nodesToJSON(v.Children)
		if err != nil {
			return "", err
		}
		return setRaw(s, "children", raw), nil

	case *document.ThematicBreak:
		return set(`{}`, "type", "thematic_break"), nil

	case *document.Table:
		return tableToJSON(v), nil

	case *document.FootnoteReference:
		s := set(`{}`, "type", "footnote_reference")
		return set(s, "label", v.Label), nil

	case *document.FootnoteDefinition:
		s := set(`{}`, "type", "footnote_definition")
		s = set(s, "label", v.Label)
		raw, err := nodesToJSON(v.Content)
		if err != nil {
			return "", err
		}
		return setRaw(s, "content", raw), nil

	case *document.DefinitionList:
		s := set(`{}`, "type", "definition_list")
		s = setRaw(s, "items", `[]`)
		for _, item := range v.Items {
			it := setRaw(`{}`, "term", inlinesToJSON(item.Term))
			it = setRaw(it, "descriptions", `[]`)
			for _, desc := range item.Descriptions {
				raw, err := nodesToJSON(desc)
				if err != nil {
					return "", err
				}
				it = setRaw(it, "descriptions.-1", raw)
			}
			s = setRaw(s, "items.-1", it)
		}
		return s, nil

	case *document.MathBlock:
		s := set(`{}`, "type", "math_block")
		return set(s, "math", v.Math), nil

	case *document.Group:
		s := set(`{}`, "type", "group")
		s = set(s, "name", v.Name)
		raw, err := nodesToJSON(v.Children)
		if err != nil {
			return "", err
		}
		return setRaw(s, "children", raw), nil

	case *document.TempListItem, *document.TempTableCell:
		return "", ErrTempNode

	default:
		return "", fmt.Errorf("unknown node kind %T: %w", node, ErrParse)
	}
}

func nodesToJSON(nodes []document.Node) (string, error) {
	out := `[]`
	for _, n := range nodes {
		raw, err := nodeToJSON(n)
		if err != nil {
			return "", err
		}
		out = setRaw(out, "-1", raw)
	}
	return out, nil
}

func listItemToJSON(item document.ListItem) (string, error) {
	raw, err := nodesToJSON(item.Children)
	if err != nil {
		return "", err
	}
	s := setRaw(`{}`, "children", raw)
	if item.Checked != nil {
		s = set(s, "checked", *item.Checked)
	}
	return s, nil
}

func tableToJSON(table *document.Table) string {
	s := set(`{}`, "type", "table")
	s = setRaw(s, "header", `[]`)
	for _, cell := range table.Header {
		s = setRaw(s, "header.-1", cellToJSON(cell))
	}
	s = setRaw(s, "rows", `[]`)
	for _, row := range table.Rows {
		r := `[]`
		for _, cell := range row {
			r = setRaw(r, "-1", cellToJSON(cell))
		}
		s = setRaw(s, "rows.-1", r)
	}
	s = setRaw(s, "alignments", `[]`)
	for _, a := range table.Alignments {
		s = set(s, "alignments.-1", a.String())
	}
	p := table.Properties
	if p != (document.TableProperties{}) {
		if p.Caption != "" {
			s = set(s, "properties.caption", p.Caption)
		}
		if p.Class != "" {
			s = set(s, "properties.class", p.Class)
		}
		if p.Striped {
			s = set(s, "properties.striped", true)
		}
		if p.Bordered {
			s = set(s, "properties.bordered", true)
		}
		if p.Hoverable {
			s = set(s, "properties.hoverable", true)
		}
	}
	return s
}

func cellToJSON(cell document.TableCell) string {
	s := setRaw(`{}`, "content", inlinesToJSON(cell.Content))
	if cell.Colspan > 1 {
		s = set(s, "colspan", cell.Colspan)
	}
	if cell.Rowspan > 1 {
		s = set(s, "rowspan", cell.Rowspan)
	}
	if cell.BackgroundColor != "" {
		s = set(s, "background_color", cell.BackgroundColor)
	}
	if cell.Class != "" {
		s = set(s, "class", cell.Class)
	}
	if cell.Style != "" {
		s = set(s, "style", cell.Style)
	}
	if cell.IsHeader {
		s = set(s, "is_header", true)
	}
	return s
}

func inlinesToJSON(inlines []document.Inline) string {
	out := `[]`
	for _, in := range inlines {
		out = setRaw(out, "-1", inlineToJSON(in))
	}
	return out
}

func inlineToJSON(in document.Inline) string {
	switch v := in.(type) {
	case *document.Text:
		s := set(`{}`, "type", "text")
		s = set(s, "text", v.Text)
		if v.Format.Bold {
			s = set(s, "formatting.bold", true)
		}
		if v.Format.Italic {
			s = set(s, "formatting.italic", true)
		}
		if v.Format.Strikethrough {
			s = set(s, "formatting.strikethrough", true)
		}
		if v.Format.Code {
			s = set(s, "formatting.code", true)
		}
		return s

	case *document.Link:
		s := set(`{}`, "type", "link")
		s = set(s, "url", v.URL)
		if v.Title != "" {
			s = set(s, "title", v.Title)
		}
		return setRaw(s, "children", inlinesToJSON(v.Children))

	case *document.Image:
		s := set(`{}`, "type", "image")
		s = set(s, "url", v.URL)
		s = set(s, "alt", v.Alt)
		if v.Title != "" {
			s = set(s, "title", v.Title)
		}
		return s

	case *document.CodeSpan:
		s := set(`{}`, "type", "code_span")
		return set(s, "code", v.Code)

	case *document.AutoLink:
		s := set(`{}`, "type", "autolink")
		s = set(s, "url", v.URL)
		if v.IsEmail {
			s = set(s, "is_email", true)
		}
		return s

	case *document.FootnoteRef:
		s := set(`{}`, "type", "footnote_ref")
		return set(s, "label", v.Label)

	case *document.InlineFootnote:
		s := set(`{}`, "type", "inline_footnote")
		return setRaw(s, "children", inlinesToJSON(v.Children))

	case *document.Mention:
		s := set(`{}`, "type", "mention")
		s = set(s, "name", v.Name)
		return set(s, "kind", v.Kind)

	case *document.Math:
		s := set(`{}`, "type", "math")
		return set(s, "math", v.Math)

	case *document.Emoji:
		s := set(`{}`, "type", "emoji")
		return set(s, "shortcode", v.Shortcode)

	case *document.HardBreak:
		return set(`{}`, "type", "hard_break")

	case *document.SoftBreak:
		return set(`{}`, "type", "soft_break")

	default:
		return set(`{}`, "type", "text")
	}
}

// ParseJSON parses a JSON tree produced by ToJSON back into a document.
func ParseJSON(input string) (*document.Document, error) {
	if !gjson.Valid(input) {
		return nil, fmt.Errorf("invalid json: %w", ErrParse)
	}
	root := gjson.Parse(input)
	doc := document.New()

	if id := root.Get("meta.id"); id.Exists() {
		if u, err := uuid.Parse(id.String()); err == nil {
			doc.Meta.ID = u
		}
	}
	doc.Meta.Title = root.Get("meta.title").String()
	doc.Meta.Author = root.Get("meta.author").String()
	doc.Meta.Date = root.Get("meta.date").String()
	if custom := root.Get("meta.custom"); custom.IsObject() {
		custom.ForEach(func(key, value gjson.Result) bool {
			doc.SetCustom(key.String(), value.String())
			return true
		})
	}

	var err error
	root.Get("nodes").ForEach(func(_, value gjson.Result) bool {
		var node document.Node
		node, err = nodeFromJSON(value)
		if err != nil {
			return false
		}
		doc.Nodes = append(doc.Nodes, node)
		return true
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func nodeFromJSON(value gjson.Result) (document.Node, error) {
	switch value.Get("type").String() {
	case "heading":
		level := int(value.Get("level").Int())
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return &document.Heading{Level: level, Children: inlinesFromJSON(value.Get("children"))}, nil

	case "paragraph":
		return &document.Paragraph{Children: inlinesFromJSON(value.Get("children"))}, nil

	case "list":
		list := &document.List{}
		switch value.Get("list_type").String() {
		case "ordered":
			list.Kind = document.Ordered
		case "task":
			list.Kind = document.Task
		default:
			list.Kind = document.Unordered
		}
		var err error
		value.Get("items").ForEach(func(_, item gjson.Result) bool {
			var children []document.Node
			children, err = nodesFromJSON(item.Get("children"))
			if err != nil {
				return false
			}
			li := document.ListItem{Children: children}
			if checked := item.Get("checked"); checked.Exists() {
				v := checked.Bool()
				li.Checked = &v
			}
			list.Items = append(list.Items, li)
			return true
		})
		if err != nil {
			return nil, err
		}
		return list, nil

	case "code_block":
		return &document.CodeBlock{
			Language: value.Get("language").String(),
			Code:     value.Get("code").String(),
		}, nil

	case "blockquote":
		children, err := nodesFromJSON(value.Get("children"))
		if err != nil {
			return nil, err
		}
		return &document.BlockQuote{Children: children}, nil

	case "thematic_break":
		return &document.ThematicBreak{}, nil

	case "table":
		return tableFromJSON(value), nil

	case "footnote_reference":
		return &document.FootnoteReference{Label: value.Get("label").String()}, nil

	case "footnote_definition":
		content, err := nodesFromJSON(value.Get("content"))
		if err != nil {
			return nil, err
		}
		return &document.FootnoteDefinition{Label: value.Get("label").String(), Content: content}, nil

	case "definition_list":
		dl := &document.DefinitionList{}
		var err error
		value.Get("items").ForEach(func(_, item gjson.Result) bool {
			di := document.DefinitionItem{Term: inlinesFromJSON(item.Get("term"))}
			item.Get("descriptions").ForEach(func(_, desc gjson.Result) bool {
				var nodes []document.Node
				nodes, err = nodesFromJSON(desc)
				if err != nil {
					return false
				}
				di.Descriptions = append(di.Descriptions, nodes)
				return true
			})
			if err != nil {
				return false
			}
			dl.Items = append(dl.Items, di)
			return true
		})
		if err != nil {
			return nil, err
		}
		return dl, nil

	case "math_block":
		return &document.MathBlock{Math: value.Get("math").String()}, nil

	case "group":
		children, err := nodesFromJSON(value.Get("children"))
		if err != nil {
			return nil, err
		}
		return &document.Group{Name: value.Get("name").String(), Children: children}, nil

	default:
		return nil, fmt.Errorf("unknown node type %q: %w", value.Get("type").String(), ErrParse)
	}
}

func nodesFromJSON(value gjson.Result) ([]document.Node, error) {
	var out []document.Node
	var err error
	value.ForEach(func(_, v gjson.Result) bool {
		var node document.Node
		node, err = nodeFromJSON(v)
		if err != nil {
			return false
		}
		out = append(out, node)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func tableFromJSON(value gjson.Result) *document.Table {
	table := &document.Table{}
	value.Get("header").ForEach(func(_, cell gjson.Result) bool {
		table.Header = append(table.Header, cellFromJSON(cell))
		return true
	})
	value.Get("rows").ForEach(func(_, row gjson.Result) bool {
		var cells []document.TableCell
		row.ForEach(func(_, cell gjson.Result) bool {
			cells = append(cells, cellFromJSON(cell))
			return true
		})
		table.Rows = append(table.Rows, cells)
		return true
	})
	value.Get("alignments").ForEach(func(_, a gjson.Result) bool {
		table.Alignments = append(table.Alignments, alignmentFromString(a.String()))
		return true
	})
	table.Properties = document.TableProperties{
		Caption:   value.Get("properties.caption").String(),
		Class:     value.Get("properties.class").String(),
		Striped:   value.Get("properties.striped").Bool(),
		Bordered:  value.Get("properties.bordered").Bool(),
		Hoverable: value.Get("properties.hoverable").Bool(),
	}
	return table
}

func alignmentFromString(s string) document.Alignment {
	switch s {
	case "left":
		return document.AlignLeft
	case "center":
		return document.AlignCenter
	case "right":
		return document.AlignRight
	default:
		return document.AlignNone
	}
}

func cellFromJSON(value gjson.Result) document.TableCell {
	cell := document.NewTableCell(inlinesFromJSON(value.Get("content")))
	if v := value.Get("colspan"); v.Exists() {
		cell.Colspan = int(v.Int())
	}
	if v := value.Get("rowspan"); v.Exists() {
		cell.Rowspan = int(v.Int())
	}
	cell.BackgroundColor = value.Get("background_color").String()
	cell.Class = value.Get("class").String()
	cell.Style = value.Get("style").String()
	cell.IsHeader = value.Get("is_header").Bool()
	return cell
}

func inlinesFromJSON(value gjson.Result) []document.Inline {
	var out []document.Inline
	value.ForEach(func(_, v gjson.Result) bool {
		out = append(out, inlineFromJSON(v))
		return true
	})
	return out
}

func inlineFromJSON(value gjson.Result) document.Inline {
	switch value.Get("type").String() {
	case "link":
		return &document.Link{
			URL:      value.Get("url").String(),
			Title:    value.Get("title").String(),
			Children: inlinesFromJSON(value.Get("children")),
		}
	case "image":
		return &document.Image{
			URL:   value.Get("url").String(),
			Alt:   value.Get("alt").String(),
			Title: value.Get("title").String(),
		}
	case "code_span":
		return &document.CodeSpan{Code: value.Get("code").String()}
	case "autolink":
		return &document.AutoLink{
			URL:     value.Get("url").String(),
			IsEmail: value.Get("is_email").Bool(),
		}
	case "footnote_ref":
		return &document.FootnoteRef{Label: value.Get("label").String()}
	case "inline_footnote":
		return &document.InlineFootnote{Children: inlinesFromJSON(value.Get("children"))}
	case "mention":
		return &document.Mention{
			Name: value.Get("name").String(),
			Kind: value.Get("kind").String(),
		}
	case "math":
		return &document.Math{Math: value.Get("math").String()}
	case "emoji":
		return &document.Emoji{Shortcode: value.Get("shortcode").String()}
	case "hard_break":
		return &document.HardBreak{}
	case "soft_break":
		return &document.SoftBreak{}
	default:
		return &document.Text{
			Text: value.Get("text").String(),
			Format: document.Formatting{
				Bold:          value.Get("formatting.bold").Bool(),
				Italic:        value.Get("formatting.italic").Bool(),
				Strikethrough: value.Get("formatting.strikethrough").Bool(),
				Code:          value.Get("formatting.code").Bool(),
			},
		}
	}
}
