// Package edit implements reversible mutation of a structured document:
// the Command contract (paired Execute/Undo), the concrete command catalog
// (text, node, list/task, table, selection and search operations),
// atomic Transactions with rollback-on-failure, and the Editor that owns
// the shared document and its bounded undo/redo history.
//
// Commands validate against the live document at Execute time, capture
// exactly the state needed to reverse their own effect, and never mutate
// the document outside Execute/Undo. A failed command leaves the document
// unchanged.
package edit
