package edit

import (
	"fmt"

	"github.com/dshills/mdedit/document"
)

type tableOpKind int

const (
	opAddRow tableOpKind = iota
	opRemoveRow
	opAddColumn
	opRemoveColumn
	opSetCell
	opSetAlignment
	opSetCellBackground
	opSetCellStyle
	opSetCellSpan
	opSetProperties
)

// TableOperation is one mutation of a table node, applied through a
// TableOperationsCommand. Build values with the constructor functions.
type TableOperation struct {
	kind      tableOpKind
	row       int
	col       int
	text      string
	alignment document.Alignment
	color     string
	class     string
	style     string
	colspan   int
	rowspan   int
	props     document.TableProperties
}

// AddRow inserts an empty data row at the given row index.
func AddRow(at int) TableOperation {
	return TableOperation{kind: opAddRow, row: at}
}

// RemoveRow splices out the data row at the given index.
func RemoveRow(at int) TableOperation {
	return TableOperation{kind: opRemoveRow, row: at}
}

// AddColumn inserts a column at the given index. The new header cell gets
// a placeholder name derived from the column count before insertion.
func AddColumn(at int) TableOperation {
	return TableOperation{kind: opAddColumn, col: at}
}

// RemoveColumn splices out the column at the given index.
func RemoveColumn(at int) TableOperation {
	return TableOperation{kind: opRemoveColumn, col: at}
}

// SetCell replaces a data cell's content with a plain text run.
func SetCell(row, col int, text string) TableOperation {
	return TableOperation{kind: opSetCell, row: row, col: col, text: text}
}

// SetAlignment sets one column's alignment.
func SetAlignment(col int, alignment document.Alignment) TableOperation {
	return TableOperation{kind: opSetAlignment, col: col, alignment: alignment}
}

// SetCellBackground sets a data cell's background color.
func SetCellBackground(row, col int, color string) TableOperation {
	return TableOperation{kind: opSetCellBackground, row: row, col: col, color: color}
}

// SetCellStyle sets a data cell's css class and inline style.
func SetCellStyle(row, col int, class, style string) TableOperation {
	return TableOperation{kind: opSetCellStyle, row: row, col: col, class: class, style: style}
}

// SetCellSpan sets a data cell's column and row span. Values below 1 are
// clamped to 1.
func SetCellSpan(row, col, colspan, rowspan int) TableOperation {
	return TableOperation{kind: opSetCellSpan, row: row, col: col, colspan: colspan, rowspan: rowspan}
}

// SetTableProperties replaces the table-wide presentation attributes.
func SetTableProperties(props document.TableProperties) TableOperation {
	return TableOperation{kind: opSetProperties, props: props}
}

// TableOperationsCommand applies one TableOperation to a table node. Undo
// restores the whole captured original table.
type TableOperationsCommand struct {
	NodeIndex int
	Operation TableOperation

	prev     document.Node
	executed bool
}

// NewTableOperationsCommand creates a table-operation command.
func NewTableOperationsCommand(nodeIndex int, operation TableOperation) *TableOperationsCommand {
	return &TableOperationsCommand{NodeIndex: nodeIndex, Operation: operation}
}

// Execute applies the operation.
func (c *TableOperationsCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		table, ok := d.Nodes[c.NodeIndex].(*document.Table)
		if !ok {
			return fmt.Errorf("node is not a table: %w", ErrUnsupportedOperation)
		}

		prev := table.Clone()
		if err := applyTableOperation(table, c.Operation); err != nil {
			return err
		}
		c.prev = prev
		c.executed = true
		return nil
	})
}

// Undo restores the original table node.
func (c *TableOperationsCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		d.Nodes[c.NodeIndex] = c.prev
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *TableOperationsCommand) Description() string {
	return fmt.Sprintf("table operation on node %d", c.NodeIndex)
}

func (t TableOperation) columns(table *document.Table) int {
	if len(table.Alignments) > 0 {
		return len(table.Alignments)
	}
	if len(table.Header) > 0 {
		return len(table.Header)
	}
	if len(table.Rows) > 0 {
		return len(table.Rows[0])
	}
	return 0
}

func applyTableOperation(table *document.Table, op TableOperation) error {
	switch op.kind {
	case opAddRow:
		cols := op.columns(table)
		if op.row < 0 || op.row > len(table.Rows) {
			return ErrIndexOutOfBounds
		}
		row := make([]document.TableCell, cols)
		for i := range row {
			row[i] = document.TextCell("")
		}
		table.Rows = append(table.Rows[:op.row], append([][]document.TableCell{row}, table.Rows[op.row:]...)...)

	case opRemoveRow:
		if op.row < 0 || op.row >= len(table.Rows) {
			return ErrIndexOutOfBounds
		}
		table.Rows = append(table.Rows[:op.row], table.Rows[op.row+1:]...)

	case opAddColumn:
		cols := op.columns(table)
		if op.col < 0 || op.col > cols {
			return ErrIndexOutOfBounds
		}
		// The insertion index is clamped to the alignment row, so tables
		// without one (JSON input may omit it) take the column at the
		// front rather than overrunning the shorter slices.
		at := op.col
		if at > len(table.Alignments) {
			at = len(table.Alignments)
		}
		// Placeholder name reflects the column count before insertion,
		// so a two-column table gains "Column 3".
		name := fmt.Sprintf("Column %d", len(table.Alignments)+1)
		if len(table.Header) > 0 || len(table.Rows) == 0 {
			h := at
			if h > len(table.Header) {
				h = len(table.Header)
			}
			cell := document.HeaderCell(name)
			table.Header = append(table.Header[:h], append([]document.TableCell{cell}, table.Header[h:]...)...)
		}
		for r := range table.Rows {
			ra := at
			if ra > len(table.Rows[r]) {
				ra = len(table.Rows[r])
			}
			cell := document.TextCell("")
			table.Rows[r] = append(table.Rows[r][:ra], append([]document.TableCell{cell}, table.Rows[r][ra:]...)...)
		}
		table.Alignments = append(table.Alignments[:at], append([]document.Alignment{document.AlignNone}, table.Alignments[at:]...)...)

	case opRemoveColumn:
		cols := op.columns(table)
		if op.col < 0 || op.col >= cols {
			return ErrIndexOutOfBounds
		}
		if op.col < len(table.Header) {
			table.Header = append(table.Header[:op.col], table.Header[op.col+1:]...)
		}
		for r := range table.Rows {
			if op.col < len(table.Rows[r]) {
				table.Rows[r] = append(table.Rows[r][:op.col], table.Rows[r][op.col+1:]...)
			}
		}
		if op.col < len(table.Alignments) {
			table.Alignments = append(table.Alignments[:op.col], table.Alignments[op.col+1:]...)
		}

	case opSetCell:
		cell, err := tableCellAt(table, op.row, op.col)
		if err != nil {
			return err
		}
		cell.Content = []document.Inline{document.PlainText(op.text)}

	case opSetAlignment:
		if op.col < 0 || op.col >= len(table.Alignments) {
			return ErrIndexOutOfBounds
		}
		table.Alignments[op.col] = op.alignment

	case opSetCellBackground:
		cell, err := tableCellAt(table, op.row, op.col)
		if err != nil {
			return err
		}
		cell.BackgroundColor = op.color

	case opSetCellStyle:
		cell, err := tableCellAt(table, op.row, op.col)
		if err != nil {
			return err
		}
		cell.Class = op.class
		cell.Style = op.style

	case opSetCellSpan:
		cell, err := tableCellAt(table, op.row, op.col)
		if err != nil {
			return err
		}
		cell.Colspan = op.colspan
		cell.Rowspan = op.rowspan
		if cell.Colspan < 1 {
			cell.Colspan = 1
		}
		if cell.Rowspan < 1 {
			cell.Rowspan = 1
		}

	case opSetProperties:
		table.Properties = op.props

	default:
		return fmt.Errorf("unknown table operation: %w", ErrUnsupportedOperation)
	}
	return nil
}

func tableCellAt(table *document.Table, row, col int) (*document.TableCell, error) {
	if row < 0 || row >= len(table.Rows) {
		return nil, ErrIndexOutOfBounds
	}
	if col < 0 || col >= len(table.Rows[row]) {
		return nil, ErrIndexOutOfBounds
	}
	return &table.Rows[row][col], nil
}

// CreateTableCommand places a new empty table at a top-level position. A
// node already at that position is replaced and restored on undo; a
// position at the end of the sequence appends.
type CreateTableCommand struct {
	Position   int
	Columns    int
	RowCount   int
	WithHeader bool

	replaced document.Node
	appended bool
	executed bool
}

// NewCreateTableCommand creates a create-table command.
func NewCreateTableCommand(position, columns, rows int, withHeader bool) *CreateTableCommand {
	return &CreateTableCommand{Position: position, Columns: columns, RowCount: rows, WithHeader: withHeader}
}

// Execute builds the table and places it.
func (c *CreateTableCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if c.Position < 0 || c.Position > len(d.Nodes) {
			return ErrIndexOutOfBounds
		}
		table := document.NewTable(c.Columns, c.RowCount, c.WithHeader)
		if c.Position < len(d.Nodes) {
			c.replaced = d.Nodes[c.Position]
			c.appended = false
			d.Nodes[c.Position] = table
		} else {
			c.replaced = nil
			c.appended = true
			d.Nodes = append(d.Nodes, table)
		}
		c.executed = true
		return nil
	})
}

// Undo removes the table, restoring any node it replaced.
func (c *CreateTableCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.Position) {
			return ErrIndexOutOfBounds
		}
		if c.appended {
			d.Nodes = append(d.Nodes[:c.Position], d.Nodes[c.Position+1:]...)
		} else {
			d.Nodes[c.Position] = c.replaced
		}
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *CreateTableCommand) Description() string {
	return fmt.Sprintf("create %dx%d table at %d", c.Columns, c.RowCount, c.Position)
}
