package document

// Position addresses a location in the document tree: a path of child
// indices from the root plus a byte offset within the addressed node's
// inline content (each non-text inline counts as one unit). Positions are
// not re-based when the tree mutates; a command that inserts or removes
// nodes before a stored position invalidates it.
type Position struct {
	Path   []int
	Offset int
}

// NewPosition creates a position from a path and offset.
func NewPosition(path []int, offset int) Position {
	return Position{Path: path, Offset: offset}
}

// NodePosition addresses the start of a top-level node.
func NodePosition(index int) Position {
	return Position{Path: []int{index}, Offset: 0}
}

// NodeIndex returns the top-level node index, or -1 for an empty path.
func (p Position) NodeIndex() int {
	if len(p.Path) == 0 {
		return -1
	}
	return p.Path[0]
}

// Equal reports whether two positions address the same location.
func (p Position) Equal(other Position) bool {
	if p.Offset != other.Offset || len(p.Path) != len(other.Path) {
		return false
	}
	for i, idx := range p.Path {
		if other.Path[i] != idx {
			return false
		}
	}
	return true
}

// Before reports whether p addresses a location strictly before other in
// document order.
func (p Position) Before(other Position) bool {
	for i := 0; i < len(p.Path) && i < len(other.Path); i++ {
		if p.Path[i] != other.Path[i] {
			return p.Path[i] < other.Path[i]
		}
	}
	if len(p.Path) != len(other.Path) {
		return len(p.Path) < len(other.Path)
	}
	return p.Offset < other.Offset
}

// Clone returns a copy that shares no path storage with p.
func (p Position) Clone() Position {
	return Position{Path: append([]int(nil), p.Path...), Offset: p.Offset}
}

// Selection is a possibly-collapsed range between two positions. Start is
// not required to precede End in stored data; operations that care about
// document order call Normalized first.
type Selection struct {
	Start Position
	End   Position
}

// NewSelection creates a selection between two positions.
func NewSelection(start, end Position) Selection {
	return Selection{Start: start, End: end}
}

// Collapsed creates a collapsed selection at one position.
func Collapsed(pos Position) Selection {
	return Selection{Start: pos, End: pos.Clone()}
}

// IsCollapsed reports whether start and end address the same location.
func (s Selection) IsCollapsed() bool { return s.Start.Equal(s.End) }

// Normalized returns a copy with Start preceding End in document order.
func (s Selection) Normalized() Selection {
	if s.End.Before(s.Start) {
		return Selection{Start: s.End, End: s.Start}
	}
	return s
}

// IsMultiNode reports whether the selection spans more than one top-level
// node.
func (s Selection) IsMultiNode() bool {
	return s.Start.NodeIndex() != s.End.NodeIndex()
}

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	return Selection{Start: s.Start.Clone(), End: s.End.Clone()}
}

// CollapseToStart returns a collapsed copy at the selection start.
func (s Selection) CollapseToStart() Selection { return Collapsed(s.Start.Clone()) }

// CollapseToEnd returns a collapsed copy at the selection end.
func (s Selection) CollapseToEnd() Selection { return Collapsed(s.End.Clone()) }
