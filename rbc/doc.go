// Package rbc implements the reduced boolean circuit DAG engine
// (spec.md §4.G, component G): a hash-consed AND/IFF/ITE/VAR vertex
// pool with structural two-level simplification, manual mark/GC
// lifetime, and variable substitution/shift.
//
// Grounded on NuSMV's rbc/rbcFormula.c (Rbc_MakeAnd's one-level
// simplification loop and its "order then dag-lookup" tail, reused
// here almost line for line in MakeAnd/internAnd) and
// rbc/rbcSubst.c (the Subst/Shift DFS family, reused here as plain
// recursive functions with a per-call memo map rather than the
// original's global scratch-field DFS visitor, per spec.md's own
// DESIGN NOTES on replacing global scratch fields with per-traversal
// side tables). The hash-consing idiom itself (a map keyed on vertex
// shape) follows ir.Pool; unlike ir.Pool, Manager takes no lock.
//
// Per spec.md's DESIGN NOTES, the sign-in-pointer-low-bit trick is
// kept conceptually (a reference is a vertex identity plus a sign) but
// never exposed: Ref is an opaque struct, and every accessor takes or
// returns a Ref rather than a raw vertex pointer.
package rbc
