package document

// Inline is one tagged variant of text-level content inside a text-bearing
// block node. The variant set is closed; the marker method keeps outside
// packages from adding variants.
type Inline interface {
	inline()

	// Clone returns a deep copy of the inline node.
	Clone() Inline
}

// Text is a run of characters sharing one Formatting.
type Text struct {
	Text   string
	Format Formatting
}

// Link is a hyperlink with inline children. Title is optional; empty means
// no title.
type Link struct {
	URL      string
	Title    string
	Children []Inline
}

// Image is an inline image. Title is optional; empty means no title.
type Image struct {
	URL   string
	Alt   string
	Title string
}

// CodeSpan is an inline code span.
type CodeSpan struct {
	Code string
}

// AutoLink is a URL or email address that links to itself.
type AutoLink struct {
	URL     string
	IsEmail bool
}

// FootnoteRef references a footnote definition by label.
type FootnoteRef struct {
	Label string
}

// InlineFootnote carries its footnote content directly at the reference.
type InlineFootnote struct {
	Children []Inline
}

// Mention is an @user or #issue style reference. Kind distinguishes the
// mention type ("user", "issue", ...).
type Mention struct {
	Name string
	Kind string
}

// Math is an inline TeX expression.
type Math struct {
	Math string
}

// Emoji is an emoji shortcode, e.g. "smile".
type Emoji struct {
	Shortcode string
}

// HardBreak is an explicit line break.
type HardBreak struct{}

// SoftBreak is a soft line break (renders as a space).
type SoftBreak struct{}

func (*Text) inline()           {}
func (*Link) inline()           {}
func (*Image) inline()          {}
func (*CodeSpan) inline()       {}
func (*AutoLink) inline()       {}
func (*FootnoteRef) inline()    {}
func (*InlineFootnote) inline() {}
func (*Mention) inline()        {}
func (*Math) inline()           {}
func (*Emoji) inline()          {}
func (*HardBreak) inline()      {}
func (*SoftBreak) inline()      {}

// Clone returns a deep copy.
func (t *Text) Clone() Inline { c := *t; return &c }

// Clone returns a deep copy.
func (l *Link) Clone() Inline {
	return &Link{URL: l.URL, Title: l.Title, Children: CloneInlines(l.Children)}
}

// Clone returns a deep copy.
func (i *Image) Clone() Inline { c := *i; return &c }

// Clone returns a deep copy.
func (c *CodeSpan) Clone() Inline { d := *c; return &d }

// Clone returns a deep copy.
func (a *AutoLink) Clone() Inline { c := *a; return &c }

// Clone returns a deep copy.
func (f *FootnoteRef) Clone() Inline { c := *f; return &c }

// Clone returns a deep copy.
func (f *InlineFootnote) Clone() Inline {
	return &InlineFootnote{Children: CloneInlines(f.Children)}
}

// Clone returns a deep copy.
func (m *Mention) Clone() Inline { c := *m; return &c }

// Clone returns a deep copy.
func (m *Math) Clone() Inline { c := *m; return &c }

// Clone returns a deep copy.
func (e *Emoji) Clone() Inline { c := *e; return &c }

// Clone returns a deep copy.
func (h *HardBreak) Clone() Inline { return &HardBreak{} }

// Clone returns a deep copy.
func (s *SoftBreak) Clone() Inline { return &SoftBreak{} }

// CloneInlines deep-copies a slice of inline nodes.
func CloneInlines(inlines []Inline) []Inline {
	if inlines == nil {
		return nil
	}
	out := make([]Inline, len(inlines))
	for i, in := range inlines {
		out[i] = in.Clone()
	}
	return out
}

// PlainText creates an unformatted text run.
func PlainText(text string) *Text {
	return &Text{Text: text}
}

// FormattedText creates a text run with the given formatting.
func FormattedText(text string, format Formatting) *Text {
	return &Text{Text: text, Format: format}
}

// NewLink creates a link whose content is a single plain text run.
func NewLink(url, text string) *Link {
	return &Link{URL: url, Children: []Inline{PlainText(text)}}
}

// NewImage creates an image with alt text and no title.
func NewImage(url, alt string) *Image {
	return &Image{URL: url, Alt: alt}
}

// InlineLength returns the addressable length of one inline node. Text runs
// count their byte length; every other inline variant counts as exactly one
// unit.
func InlineLength(in Inline) int {
	if t, ok := in.(*Text); ok {
		return len(t.Text)
	}
	return 1
}

// InlinesLength sums InlineLength over a slice.
func InlinesLength(inlines []Inline) int {
	total := 0
	for _, in := range inlines {
		total += InlineLength(in)
	}
	return total
}

// InlineText extracts the plain text of a slice of inline nodes. Non-text
// variants contribute their best textual approximation (alt text, labels,
// shortcodes); hard breaks become newlines, soft breaks become spaces.
func InlineText(inlines []Inline) string {
	var b []byte
	for _, in := range inlines {
		switch v := in.(type) {
		case *Text:
			b = append(b, v.Text...)
		case *Link:
			b = append(b, InlineText(v.Children)...)
		case *Image:
			b = append(b, v.Alt...)
		case *CodeSpan:
			b = append(b, v.Code...)
		case *AutoLink:
			b = append(b, v.URL...)
		case *FootnoteRef:
			b = append(b, v.Label...)
		case *InlineFootnote:
			b = append(b, InlineText(v.Children)...)
		case *Mention:
			b = append(b, v.Name...)
		case *Math:
			b = append(b, v.Math...)
		case *Emoji:
			b = append(b, v.Shortcode...)
		case *HardBreak:
			b = append(b, '\n')
		case *SoftBreak:
			b = append(b, ' ')
		}
	}
	return string(b)
}
