package edit

import (
	"fmt"

	"github.com/dshills/mdedit/document"
)

// ConversionKind selects the node kind a ConvertNodeTypeCommand produces.
type ConversionKind int

const (
	ToParagraph ConversionKind = iota
	ToHeading
	ToList
	ToCodeBlock
	ToBlockQuote
)

// ConversionType is the target of a node type conversion. HeadingLevel,
// ListKind and Language qualify the matching kinds and are ignored
// otherwise.
type ConversionType struct {
	Kind         ConversionKind
	HeadingLevel int
	ListKind     document.ListKind
	Language     string
}

// ConvertNodeTypeCommand rebuilds a node as a different kind from its
// extractable inline content.
type ConvertNodeTypeCommand struct {
	NodeIndex int
	Target    ConversionType

	prev     document.Node
	executed bool
}

// NewConvertNodeTypeCommand creates a conversion command.
func NewConvertNodeTypeCommand(nodeIndex int, target ConversionType) *ConvertNodeTypeCommand {
	return &ConvertNodeTypeCommand{NodeIndex: nodeIndex, Target: target}
}

// Execute extracts the node's inline content and replaces the node with
// the target kind built from it.
func (c *ConvertNodeTypeCommand) Execute(doc *document.Shared) error {
	return doc.Mutate(func(d *document.Document) error {
		if !d.ValidIndex(c.NodeIndex) {
			return ErrIndexOutOfBounds
		}
		node := d.Nodes[c.NodeIndex]

		content, ok := extractInlineContent(node)
		if !ok {
			return fmt.Errorf("node has no extractable content: %w", ErrUnsupportedOperation)
		}

		var converted document.Node
		switch c.Target.Kind {
		case ToParagraph:
			converted = &document.Paragraph{Children: content}
		case ToHeading:
			level := c.Target.HeadingLevel
			if level < 1 {
				level = 1
			}
			if level > 6 {
				level = 6
			}
			converted = &document.Heading{Level: level, Children: content}
		case ToList:
			text := document.InlineText(content)
			switch c.Target.ListKind {
			case document.Ordered:
				converted = document.NewOrderedList([]string{text})
			case document.Task:
				converted = document.NewTaskList([]document.TaskEntry{{Text: text}})
			default:
				converted = document.NewUnorderedList([]string{text})
			}
		case ToCodeBlock:
			converted = document.NewCodeBlock(document.InlineText(content), c.Target.Language)
		case ToBlockQuote:
			converted = &document.BlockQuote{Children: []document.Node{&document.Paragraph{Children: content}}}
		default:
			return fmt.Errorf("unknown conversion target: %w", ErrUnsupportedOperation)
		}

		c.prev = node
		d.Nodes[c.NodeIndex] = converted
		c.executed = true
		return nil
	})
}

// Undo restores the original node verbatim.
func (c *ConvertNodeTypeCommand) Undo(doc *document.Shared) error {
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
func (c *ConvertNodeTypeCommand) Description() string {
	return fmt.Sprintf("convert node %d", c.NodeIndex)
}

// extractInlineContent pulls the inline content a conversion works from:
// the run list of paragraphs and headings, the gathered first-paragraph
// runs of list items, a code block's code as a plain run, or the first
// paragraph of a block quote.
func extractInlineContent(node document.Node) ([]document.Inline, bool) {
	switch v := node.(type) {
	case *document.Paragraph:
		return document.CloneInlines(v.Children), true
	case *document.Heading:
		return document.CloneInlines(v.Children), true
	case *document.List:
		var content []document.Inline
		for _, item := range v.Items {
			for _, child := range item.Children {
				if p, ok := child.(*document.Paragraph); ok {
					content = append(content, document.CloneInlines(p.Children)...)
					break
				}
			}
		}
		if len(content) == 0 {
			return nil, false
		}
		return content, true
	case *document.CodeBlock:
		return []document.Inline{document.PlainText(v.Code)}, true
	case *document.BlockQuote:
		for _, child := range v.Children {
			if p, ok := child.(*document.Paragraph); ok {
				return document.CloneInlines(p.Children), true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}
