package edit

import (
	"fmt"
	"strings"

	"github.com/dshills/mdedit/document"
)

// FindReplaceCommand replaces every occurrence of a search string in the
// document's paragraph text runs and code blocks. An empty search string
// succeeds without touching anything.
type FindReplaceCommand struct {
	Find          string
	Replace       string
	CaseSensitive bool

	prev     []replacedNode
	count    int
	executed bool
}

type replacedNode struct {
	index int
	node  document.Node
}

// NewFindReplaceCommand creates a find-replace command.
func NewFindReplaceCommand(find, replace string, caseSensitive bool) *FindReplaceCommand {
	return &FindReplaceCommand{Find: find, Replace: replace, CaseSensitive: caseSensitive}
}

// Execute performs the replacement, capturing each touched node for undo.
func (c *FindReplaceCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		c.prev = nil
		c.count = 0
		if c.Find == "" {
			c.executed = true
			return nil
		}

		for i, node := range d.Nodes {
			switch v := node.(type) {
			case *document.Paragraph:
				changed := false
				total := 0
				for _, in := range v.Children {
					if t, ok := in.(*document.Text); ok {
						if _, n := c.replaceIn(t.Text); n > 0 {
							changed = true
							total += n
						}
					}
				}
				if !changed {
					continue
				}
				c.prev = append(c.prev, replacedNode{index: i, node: node.Clone()})
				for _, in := range v.Children {
					if t, ok := in.(*document.Text); ok {
						t.Text, _ = c.replaceIn(t.Text)
					}
				}
				c.count += total

			case *document.CodeBlock:
				replaced, n := c.replaceIn(v.Code)
				if n == 0 {
					continue
				}
				c.prev = append(c.prev, replacedNode{index: i, node: node.Clone()})
				v.Code = replaced
				c.count += n
			}
		}
		c.executed = true
		return nil
	})
}

// Undo restores every node the replacement touched.
func (c *FindReplaceCommand) Undo(doc *document.Shared) error {
	if !c.executed {
		return ErrOperationFailed
	}
	return doc.Mutate(func(d *document.Document) error {
		for _, r := range c.prev {
			if !d.ValidIndex(r.index) {
				return ErrIndexOutOfBounds
			}
			d.Nodes[r.index] = r.node.Clone()
		}
		c.executed = false
		return nil
	})
}

// Description returns a human-readable description of the command.
func (c *FindReplaceCommand) Description() string {
	return fmt.Sprintf("replace %q with %q", c.Find, c.Replace)
}

// Replacements returns how many occurrences the last Execute replaced.
func (c *FindReplaceCommand) Replacements() int { return c.count }

// replaceIn substitutes every occurrence in one string, scanning
// case-insensitively over a lowered copy when CaseSensitive is off so the
// untouched text keeps its original casing.
func (c *FindReplaceCommand) replaceIn(s string) (string, int) {
	if c.CaseSensitive {
		n := strings.Count(s, c.Find)
		if n == 0 {
			return s, 0
		}
		return strings.ReplaceAll(s, c.Find, c.Replace), n
	}

	lower := strings.ToLower(s)
	needle := strings.ToLower(c.Find)
	var b strings.Builder
	n := 0
	pos := 0
	for {
		at := strings.Index(lower[pos:], needle)
		if at < 0 {
			b.WriteString(s[pos:])
			break
		}
		at += pos
		b.WriteString(s[pos:at])
		b.WriteString(c.Replace)
		pos = at + len(needle)
		n++
	}
	if n == 0 {
		return s, 0
	}
	return b.String(), n
}
