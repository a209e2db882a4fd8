package edit

import (
	"testing"

	"github.com/dshills/mdedit/document"
)

func TestFindReplaceAcrossNodes(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.Paragraph("foo bar foo").
			Paragraph("no match here").
			CodeBlock("foo()", "go")
	})

	count, err := e.FindReplace("foo", "baz", true)
	if err != nil {
		t.Fatalf("FindReplace: %v", err)
	}
	if count != 3 {
		t.Errorf("replacements = %d, want 3", count)
	}
	if got := nodeText(t, e, 0); got != "baz bar baz" {
		t.Errorf("node 0 = %q, want %q", got, "baz bar baz")
	}
	if got := nodeText(t, e, 2); got != "baz()" {
		t.Errorf("code block = %q, want %q", got, "baz()")
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := nodeText(t, e, 0); got != "foo bar foo" {
		t.Errorf("node 0 after undo = %q, want %q", got, "foo bar foo")
	}
	if got := nodeText(t, e, 2); got != "foo()" {
		t.Errorf("code block after undo = %q, want %q", got, "foo()")
	}
}

func TestFindReplaceCaseInsensitive(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.Paragraph("Hello hello HELLO")
	})

	count, err := e.FindReplace("hello", "hi", false)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("replacements = %d, want 3", count)
	}
	if got := nodeText(t, e, 0); got != "hi hi hi" {
		t.Errorf("text = %q, want %q", got, "hi hi hi")
	}
}

func TestFindReplaceCaseSensitiveSkipsOtherCases(t *testing.T) {
	e := newEditor(func(b *document.Builder) {
		b.Paragraph("Hello hello")
	})

	count, err := e.FindReplace("hello", "hi", true)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("replacements = %d, want 1", count)
	}
	if got := nodeText(t, e, 0); got != "Hello hi" {
		t.Errorf("text = %q, want %q", got, "Hello hi")
	}
}

func TestFindReplaceEmptyPattern(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("unchanged") })

	count, err := e.FindReplace("", "x", true)
	if err != nil {
		t.Fatalf("empty pattern should be a no-op, got %v", err)
	}
	if count != 0 {
		t.Errorf("replacements = %d, want 0", count)
	}
	if got := nodeText(t, e, 0); got != "unchanged" {
		t.Errorf("text = %q, want %q", got, "unchanged")
	}
}

func TestFindReplaceNoMatches(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.Paragraph("plain text") })

	count, err := e.FindReplace("absent", "x", true)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("replacements = %d, want 0", count)
	}
}
