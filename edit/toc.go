package edit

import (
	"fmt"
	"strings"

	"github.com/dshills/mdedit/document"
)

// CreateTOCCommand builds a table of contents from the document's headings
// and inserts it at a top-level position: a "Table of Contents" heading
// followed by an unordered list of anchor links, one per heading up to the
// maximum level. Headings titled "toc" or "table of contents" are skipped
// so regenerating never indexes a previous run. Inserting at the front also
// adds a thematic break after the list.
type CreateTOCCommand struct {
	Position int
	MaxLevel int

	prevNodes []document.Node
	executed  bool
}

// NewCreateTOCCommand creates a table-of-contents command. The level is
// clamped to 1..6.
func NewCreateTOCCommand(position, maxLevel int) *CreateTOCCommand {
	if maxLevel < 1 {
		maxLevel = 1
	}
	if maxLevel > 6 {
		maxLevel = 6
	}
	return &CreateTOCCommand{Position: position, MaxLevel: maxLevel}
}

// Execute scans the headings and inserts the generated nodes.
func (c *CreateTOCCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if c.Position < 0 || c.Position > len(d.Nodes) {
			return ErrIndexOutOfBounds
		}

		var items []string
		for _, node := range d.Nodes {
			h, ok := node.(*document.Heading)
			if !ok || h.Level > c.MaxLevel {
				continue
			}
			text := document.InlineText(h.Children)
			lowered := strings.ToLower(strings.TrimSpace(text))
			if lowered == "toc" || lowered == "table of contents" {
				continue
			}
			indent := strings.Repeat("  ", h.Level-1)
			items = append(items, fmt.Sprintf("%s[%s](#%s)", indent, text, headingAnchor(text)))
		}
		if len(items) == 0 {
			return fmt.Errorf("document has no headings to index: %w", ErrUnsupportedOperation)
		}

		toc := []document.Node{
			document.NewHeading(2, "Table of Contents"),
			document.NewUnorderedList(items),
		}
		if c.Position == 0 {
			toc = append(toc, &document.ThematicBreak{})
		}

		c.prevNodes = append([]document.Node(nil), d.Nodes...)
		d.Nodes = append(d.Nodes[:c.Position], append(toc, d.Nodes[c.Position:]...)...)
		c.executed = true
		return nil
	})
}

// Undo restores the node sequence from before the insertion.
func (c *CreateTOCCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		d.Nodes = append([]document.Node(nil), c.prevNodes...)
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *CreateTOCCommand) Description() string {
	return fmt.Sprintf("create table of contents at %d", c.Position)
}

// headingAnchor derives the link anchor for a heading: lowercased, with
// every non-alphanumeric byte collapsed to a dash.
func headingAnchor(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
