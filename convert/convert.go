// Package convert serializes documents to and from external formats:
// markdown text, a JSON tree and an HTML fragment. Each format has a
// To/From pair; round-tripping a document through a format preserves the
// content the format can express.
package convert

import (
	"errors"
	"strings"
)

// Errors shared by the converters.
var (
	// ErrTempNode indicates the tree still holds parser scratch nodes,
	// which must never reach a serializer.
	ErrTempNode = errors.New("document contains unprocessed temporary nodes")

	// ErrParse indicates input that could not be decoded into a document.
	ErrParse = errors.New("parse error")
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
