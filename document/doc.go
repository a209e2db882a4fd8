// Package document defines the structured document tree: block and inline
// node variants, table cells, list items, document metadata, and the
// position/selection addressing scheme, plus traversal helpers over the
// tree. The tree is pure data; all mutation happens through the edit
// package's commands.
package document
