// Package inline detects variable-to-formula equivalences (v ↔ φ)
// inside an RBC and rewrites the formula around them.
//
// Grounded on NuSMV's rbc/ConjSet.c (the dependency-count tie-break
// used when two candidate equations compete for the same variable)
// and rbc/InlineResult.c (the five-field immutable result shape). No
// teacher package performs variable-equivalence inlining; the
// recursive-descent traversal with a visited-set cycle guard follows
// go-tony/schema/cycle_detector.go's pattern, adapted from module
// instantiation cycles to RBC variable equivalence cycles.
//
// Pattern recognition covers both an explicit IFF vertex and the raw
// AND(¬AND(x,y), ¬AND(¬x,¬y)) encoding of the same equivalence — the
// two-level shape spec.md names explicitly, present in formulas built
// without ever calling rbc.Manager.MakeIff directly.
package inline
