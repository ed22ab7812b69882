// Package flatten implements the expression flattener and resolver
// (spec.md §4.D, component D): concat_contexts, flatten_sexp, and
// resolve_number, rewriting raw parsed expressions under a lexical
// context into context-free canonical nodes.
//
// Grounded on go-tony/schema/expand.go and go-tony/schema/reference.go
// (define-expansion and reference-parsing idioms) for the recursive
// rewrite shape, and on go-tony/schema/cycle_detector.go's "visiting"
// set pattern, reused here as the "building" set that detects a define
// depending on itself through flattening.
package flatten
