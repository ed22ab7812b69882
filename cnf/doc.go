// Package cnf implements the CNF translator (spec.md §4.I, component
// I): two algorithms that turn an RBC formula into a set of clauses
// while tracking the CNF variable assigned to each sub-circuit.
//
// Tseitin is grounded line-for-line on NuSMV's rbc/rbcCnfSimple.c: the
// same DFS shape, the same clause sets (three clauses per AND gate,
// four per IFF and per ITE gate), and the same constant-formula special case (no clauses plus an
// infinite top literal for true, one empty clause for false).
//
// Sheridan (the polarity-compact algorithm) has no surviving
// implementation in the available reference material — only the
// dispatcher call site in rbcCnf.c names Rbc_Convert2CnfCompact, whose
// body is absent. Rather than guess at NuSMV-internal details that
// can't be checked, ToCnfCompact derives the polarity-to-clause-half
// mapping from first principles: a gate reached only in positive
// occurrence needs just the clauses deriving the children from the
// gate (gate ⇒ children); reached only negatively, just the clauses
// deriving the gate from its children (children ⇒ gate); IFF
// and an ITE's condition are non-monotone, so their children always
// propagate mixed polarity regardless of the parent's own requirement.
// This is the standard Plaisted-Greenbaum definitional-CNF transform,
// documented in DESIGN.md alongside the missing-source note.
package cnf
