// Package dimacs writes a cnf.Result in the standard DIMACS CNF text
// format (spec.md §6) and hands it to a SAT solver.
//
// The writer-takes-io.Writer-returns-error shape follows
// go-tony/encode/encode.go's Encode. The solver adapter follows
// go-tony/schema/formula_builder.go's checkSatisfiability: build (or,
// here, translate) a clause set, add it to a fresh gini.Gini, assume
// the top literal, and solve.
package dimacs
