package document

// ListKind distinguishes the three list flavors.
type ListKind int

const (
	Unordered ListKind = iota
	Ordered
	Task
)

// String returns the serialized kind name.
func (k ListKind) String() string {
	switch k {
	case Ordered:
		return "ordered"
	case Task:
		return "task"
	default:
		return "unordered"
	}
}

// ListItem is one entry of a List. Children is normally a single paragraph
// but may hold nested lists or other blocks. Checked is nil on non-task
// items and non-nil on every item of a Task list; the list's Kind and the
// presence of Checked must stay consistent.
type ListItem struct {
	Children []Node
	Checked  *bool
}

// Clone returns a deep copy of the item.
func (li ListItem) Clone() ListItem {
	out := ListItem{Children: CloneNodes(li.Children)}
	if li.Checked != nil {
		v := *li.Checked
		out.Checked = &v
	}
	return out
}

// IsTask reports whether the item carries a task checkbox.
func (li ListItem) IsTask() bool { return li.Checked != nil }

// Text returns the plain text of the item's first paragraph, or "" when the
// item has no paragraph child.
func (li ListItem) Text() string {
	for _, child := range li.Children {
		if p, ok := child.(*Paragraph); ok {
			return InlineText(p.Children)
		}
	}
	return ""
}
