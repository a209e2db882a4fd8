package document

// NodeAtPath resolves a position path against the tree, descending through
// container nodes (block quotes, groups, footnote bodies, list items). It
// returns nil when any path segment is out of range or descends into a node
// without block children.
func (d *Document) NodeAtPath(path []int) Node {
	if len(path) == 0 {
		return nil
	}
	if path[0] < 0 || path[0] >= len(d.Nodes) {
		return nil
	}
	node := d.Nodes[path[0]]
	for _, idx := range path[1:] {
		children := BlockChildren(node)
		if idx < 0 || idx >= len(children) {
			return nil
		}
		node = children[idx]
	}
	return node
}

// BlockChildren returns a node's block-level children, or nil for leaf
// nodes. List items contribute their children in item order.
func BlockChildren(n Node) []Node {
	switch v := n.(type) {
	case *BlockQuote:
		return v.Children
	case *Group:
		return v.Children
	case *FootnoteDefinition:
		return v.Content
	case *List:
		var out []Node
		for _, item := range v.Items {
			out = append(out, item.Children...)
		}
		return out
	default:
		return nil
	}
}

// NodeLength returns the addressable content length of a node: the summed
// inline length for paragraphs and headings, the byte length for code
// blocks, and zero for every other kind (those degrade to whole-node
// selection).
func NodeLength(n Node) int {
	switch v := n.(type) {
	case *Paragraph:
		return InlinesLength(v.Children)
	case *Heading:
		return InlinesLength(v.Children)
	case *CodeBlock:
		return len(v.Code)
	default:
		return 0
	}
}

// NodeText returns the plain text content of a text-bearing node and true,
// or "" and false for node kinds without addressable text.
func NodeText(n Node) (string, bool) {
	switch v := n.(type) {
	case *Paragraph:
		return InlineText(v.Children), true
	case *Heading:
		return InlineText(v.Children), true
	case *CodeBlock:
		return v.Code, true
	default:
		return "", false
	}
}

// SelectedText extracts the text a selection covers. Within a single
// text-bearing node it returns the offset range; across nodes it joins each
// covered node's full text with newlines, honoring the partial offsets at
// the boundary nodes.
func (d *Document) SelectedText(sel Selection) string {
	norm := sel.Normalized()
	startIdx := norm.Start.NodeIndex()
	endIdx := norm.End.NodeIndex()
	if startIdx < 0 || endIdx < 0 || startIdx >= len(d.Nodes) || endIdx >= len(d.Nodes) {
		return ""
	}

	if startIdx == endIdx {
		text, ok := NodeText(d.Nodes[startIdx])
		if !ok {
			return ""
		}
		return sliceText(text, norm.Start.Offset, norm.End.Offset)
	}

	var out string
	for i := startIdx; i <= endIdx; i++ {
		text, ok := NodeText(d.Nodes[i])
		if !ok {
			continue
		}
		switch i {
		case startIdx:
			out += sliceText(text, norm.Start.Offset, len(text))
		case endIdx:
			out += "\n" + sliceText(text, 0, norm.End.Offset)
		default:
			out += "\n" + text
		}
	}
	return out
}

func sliceText(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return ""
	}
	return text[start:end]
}

// SelectWholeNode returns a selection covering one top-level node from
// offset zero to its content length.
func (d *Document) SelectWholeNode(index int) (Selection, bool) {
	if !d.ValidIndex(index) {
		return Selection{}, false
	}
	end := NodeLength(d.Nodes[index])
	return NewSelection(NewPosition([]int{index}, 0), NewPosition([]int{index}, end)), true
}

// ContainsTempNodes reports whether any parser scratch node survives in the
// tree. Committed trees must never contain them.
func (d *Document) ContainsTempNodes() bool {
	var walk func(nodes []Node) bool
	walk = func(nodes []Node) bool {
		for _, n := range nodes {
			switch v := n.(type) {
			case *TempListItem, *TempTableCell:
				return true
			case *BlockQuote:
				if walk(v.Children) {
					return true
				}
			case *Group:
				if walk(v.Children) {
					return true
				}
			case *FootnoteDefinition:
				if walk(v.Content) {
					return true
				}
			case *List:
				for _, item := range v.Items {
					if walk(item.Children) {
						return true
					}
				}
			}
		}
		return false
	}
	return walk(d.Nodes)
}
