// Package deps implements the dependency analyzer (spec.md §4.E,
// component E): get_dependencies, cone_of_influence, and
// coi_fixpoint, plus the additional ProbeDefineCycleSAT diagnostic
// (SPEC_FULL.md §12).
//
// get_dependencies is grounded on
// go-tony/schema/cycle_detector.go's findReachableDefinitions (a
// Visit-walk over an ir.Node collecting reachable definition names
// behind a visited set), generalized from "which definitions does
// this schema reference" to "which variables does this expression
// depend on, recursing through defines". cone_of_influence iterates
// that same collection to a fixpoint over the flat hierarchy's
// per-variable assignment index.
package deps
