package edit

import (
	"github.com/dshills/mdedit/document"
)

// Helpers for editing inline run lists. Offsets are in content units: text
// runs contribute their byte length, every other inline contributes one
// unit. Callers validate node kinds; these validate offsets.

// insertIntoInlines returns a new run list with text inserted at offset,
// splicing into a text run when the offset falls inside one and creating a
// fresh run at boundaries.
func insertIntoInlines(children []document.Inline, offset int, text string) ([]document.Inline, error) {
	if offset < 0 {
		return nil, ErrInvalidRange
	}

	pos := 0
	for i, in := range children {
		ln := document.InlineLength(in)
		if t, ok := in.(*document.Text); ok {
			if offset >= pos && offset <= pos+ln {
				local := offset - pos
				out := make([]document.Inline, 0, len(children))
				out = append(out, children[:i]...)
				out = append(out, &document.Text{
					Text:   t.Text[:local] + text + t.Text[local:],
					Format: t.Format,
				})
				out = append(out, children[i+1:]...)
				return out, nil
			}
		} else if offset == pos {
			out := make([]document.Inline, 0, len(children)+1)
			out = append(out, children[:i]...)
			out = append(out, document.PlainText(text))
			out = append(out, children[i:]...)
			return out, nil
		}
		pos += ln
	}

	if offset == pos {
		return append(append([]document.Inline{}, children...), document.PlainText(text)), nil
	}
	return nil, ErrInvalidRange
}

// deleteFromInlines returns a new run list with the unit range [start, end)
// removed. Text runs overlapping the range lose the covered bytes; non-text
// inlines inside the range are dropped whole. Runs emptied by the deletion
// are removed.
func deleteFromInlines(children []document.Inline, start, end int) ([]document.Inline, error) {
	if start < 0 || start >= end {
		return nil, ErrInvalidRange
	}
	if end > document.InlinesLength(children) {
		return nil, ErrInvalidRange
	}

	out := make([]document.Inline, 0, len(children))
	pos := 0
	for _, in := range children {
		ln := document.InlineLength(in)
		inStart, inEnd := pos, pos+ln
		pos = inEnd

		if inEnd <= start || inStart >= end {
			out = append(out, in)
			continue
		}

		t, ok := in.(*document.Text)
		if !ok {
			// Non-text inline covered by the range: dropped.
			continue
		}
		localStart := clampInt(start-inStart, 0, ln)
		localEnd := clampInt(end-inStart, 0, ln)
		kept := t.Text[:localStart] + t.Text[localEnd:]
		if kept != "" {
			out = append(out, &document.Text{Text: kept, Format: t.Format})
		}
	}
	return out, nil
}

// formatInlines returns a new run list with format OR-merged into the unit
// range [start, end). Text runs are split at the range edges so only the
// covered bytes change formatting; non-text inlines pass through unchanged
// whether inside the range or not.
func formatInlines(children []document.Inline, start, end int, format document.Formatting) ([]document.Inline, error) {
	if start < 0 || start >= end {
		return nil, ErrInvalidRange
	}
	if end > document.InlinesLength(children) {
		return nil, ErrInvalidRange
	}

	out := make([]document.Inline, 0, len(children)+2)
	pos := 0
	for _, in := range children {
		ln := document.InlineLength(in)
		inStart, inEnd := pos, pos+ln
		pos = inEnd

		t, ok := in.(*document.Text)
		if !ok || inEnd <= start || inStart >= end {
			out = append(out, in)
			continue
		}

		localStart := clampInt(start-inStart, 0, ln)
		localEnd := clampInt(end-inStart, 0, ln)
		if localStart > 0 {
			out = append(out, &document.Text{Text: t.Text[:localStart], Format: t.Format})
		}
		out = append(out, &document.Text{
			Text:   t.Text[localStart:localEnd],
			Format: t.Format.Merge(format),
		})
		if localEnd < ln {
			out = append(out, &document.Text{Text: t.Text[localEnd:], Format: t.Format})
		}
	}
	return out, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
