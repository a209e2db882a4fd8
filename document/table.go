package document

import "strconv"

// Alignment is a table column alignment.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the serialized alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "none"
	}
}

// TableCell is one cell of a table: inline content plus span and
// presentation attributes. Colspan and Rowspan are at least 1; the string
// attributes are optional (empty means unset).
type TableCell struct {
	Content         []Inline
	Colspan         int
	Rowspan         int
	BackgroundColor string
	Class           string
	Style           string
	IsHeader        bool
}

// NewTableCell creates a cell with the given inline content and 1x1 span.
func NewTableCell(content []Inline) TableCell {
	return TableCell{Content: content, Colspan: 1, Rowspan: 1}
}

// TextCell creates a 1x1 cell holding a single plain text run.
func TextCell(text string) TableCell {
	return NewTableCell([]Inline{PlainText(text)})
}

// HeaderCell creates a 1x1 header cell holding a single plain text run.
func HeaderCell(text string) TableCell {
	cell := TextCell(text)
	cell.IsHeader = true
	return cell
}

// Clone returns a deep copy of the cell.
func (c TableCell) Clone() TableCell {
	out := c
	out.Content = CloneInlines(c.Content)
	return out
}

// Text returns the cell's plain text content.
func (c TableCell) Text() string { return InlineText(c.Content) }

func cloneCells(cells []TableCell) []TableCell {
	out := make([]TableCell, len(cells))
	for i, c := range cells {
		out[i] = c.Clone()
	}
	return out
}

// TableProperties are table-wide presentation attributes.
type TableProperties struct {
	Caption   string
	Class     string
	Striped   bool
	Bordered  bool
	Hoverable bool
}

// NewTable creates a table with the given column count and row count. When
// withHeader is set the header row is filled with "Column N" placeholder
// cells; data cells start empty. Alignments default to none.
func NewTable(columns, rows int, withHeader bool) *Table {
	if columns < 1 {
		columns = 1
	}
	if rows < 0 {
		rows = 0
	}
	table := &Table{Alignments: make([]Alignment, columns)}
	if withHeader {
		table.Header = make([]TableCell, columns)
		for i := range table.Header {
			table.Header[i] = HeaderCell(columnName(i + 1))
		}
	}
	table.Rows = make([][]TableCell, rows)
	for r := range table.Rows {
		table.Rows[r] = make([]TableCell, columns)
		for c := range table.Rows[r] {
			table.Rows[r][c] = TextCell("")
		}
	}
	return table
}

func columnName(n int) string {
	return "Column " + strconv.Itoa(n)
}
