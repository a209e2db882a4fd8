package document

// Builder assembles a document fluently. Zero value is not usable; create
// with NewBuilder.
//
//	doc := document.NewBuilder().
//		Title("Notes").
//		Heading(1, "Notes").
//		Paragraph("First thought.").
//		Build()
type Builder struct {
	doc *Document
}

// NewBuilder creates a builder over a fresh empty document.
func NewBuilder() *Builder {
	return &Builder{doc: New()}
}

// Title sets the metadata title.
func (b *Builder) Title(title string) *Builder {
	b.doc.Meta.Title = title
	return b
}

// Author sets the metadata author.
func (b *Builder) Author(author string) *Builder {
	b.doc.Meta.Author = author
	return b
}

// Date sets the metadata date.
func (b *Builder) Date(date string) *Builder {
	b.doc.Meta.Date = date
	return b
}

// Custom records a custom metadata pair.
func (b *Builder) Custom(key, value string) *Builder {
	b.doc.SetCustom(key, value)
	return b
}

// Heading appends a heading.
func (b *Builder) Heading(level int, text string) *Builder {
	b.doc.AddHeading(level, text)
	return b
}

// Paragraph appends a paragraph.
func (b *Builder) Paragraph(text string) *Builder {
	b.doc.AddParagraph(text)
	return b
}

// CodeBlock appends a code block.
func (b *Builder) CodeBlock(code, language string) *Builder {
	b.doc.AddCodeBlock(code, language)
	return b
}

// UnorderedList appends an unordered list.
func (b *Builder) UnorderedList(items ...string) *Builder {
	b.doc.AddUnorderedList(items)
	return b
}

// OrderedList appends an ordered list.
func (b *Builder) OrderedList(items ...string) *Builder {
	b.doc.AddOrderedList(items)
	return b
}

// TaskList appends a task list.
func (b *Builder) TaskList(entries ...TaskEntry) *Builder {
	b.doc.AddTaskList(entries)
	return b
}

// ThematicBreak appends a horizontal rule.
func (b *Builder) ThematicBreak() *Builder {
	b.doc.AddThematicBreak()
	return b
}

// BlockQuote appends a block quote wrapping one paragraph per text.
func (b *Builder) BlockQuote(paragraphs ...string) *Builder {
	quote := &BlockQuote{}
	for _, text := range paragraphs {
		quote.Children = append(quote.Children, NewParagraph(text))
	}
	b.doc.Nodes = append(b.doc.Nodes, quote)
	return b
}

// MathBlock appends a display math block.
func (b *Builder) MathBlock(math string) *Builder {
	b.doc.Nodes = append(b.doc.Nodes, &MathBlock{Math: math})
	return b
}

// Table appends an empty table of the given shape.
func (b *Builder) Table(columns, rows int, withHeader bool) *Builder {
	b.doc.AddTable(columns, rows, withHeader)
	return b
}

// Node appends an arbitrary block node.
func (b *Builder) Node(n Node) *Builder {
	b.doc.Nodes = append(b.doc.Nodes, n)
	return b
}

// Build returns the assembled document. The builder must not be reused
// afterwards.
func (b *Builder) Build() *Document {
	doc := b.doc
	b.doc = nil
	return doc
}
