package document

// Formatting holds the four independent character formatting flags.
// The flags are freely combinable, not mutually exclusive.
type Formatting struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Code          bool
}

// Bold returns a Formatting with only the bold flag set.
func Bold() Formatting { return Formatting{Bold: true} }

// Italic returns a Formatting with only the italic flag set.
func Italic() Formatting { return Formatting{Italic: true} }

// Strikethrough returns a Formatting with only the strikethrough flag set.
func Strikethrough() Formatting { return Formatting{Strikethrough: true} }

// Code returns a Formatting with only the code flag set.
func Code() Formatting { return Formatting{Code: true} }

// Merge returns the logical OR of f and other.
func (f Formatting) Merge(other Formatting) Formatting {
	return Formatting{
		Bold:          f.Bold || other.Bold,
		Italic:        f.Italic || other.Italic,
		Strikethrough: f.Strikethrough || other.Strikethrough,
		Code:          f.Code || other.Code,
	}
}

// IsPlain reports whether no flag is set.
func (f Formatting) IsPlain() bool {
	return !f.Bold && !f.Italic && !f.Strikethrough && !f.Code
}

// WithBold returns a copy of f with the bold flag set.
func (f Formatting) WithBold() Formatting { f.Bold = true; return f }

// WithItalic returns a copy of f with the italic flag set.
func (f Formatting) WithItalic() Formatting { f.Italic = true; return f }

// WithStrikethrough returns a copy of f with the strikethrough flag set.
func (f Formatting) WithStrikethrough() Formatting { f.Strikethrough = true; return f }

// WithCode returns a copy of f with the code flag set.
func (f Formatting) WithCode() Formatting { f.Code = true; return f }
