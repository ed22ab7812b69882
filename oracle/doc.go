// Package oracle brute-force-checks the booleanizer against an
// independent integer semantics (SPEC_FULL.md §10/§11's testable
// property P6: for every scalar boolean expression over a
// finite-domain model, booleanize(e) must agree with e's integer
// semantics under every assignment).
//
// No teacher file computes an integer semantics standalone — NuSMV's
// own evaluator is the thing under test, not a usable oracle for it —
// so this package reaches for github.com/expr-lang/expr as a
// ready-made, independently-implemented integer/boolean evaluator: it
// compiles the same expression NuSMV's surface syntax would write as
// a Go-expression-flavored string (e.g. "x == y + 1"), runs it over
// every assignment of a finite-domain model's variables, and compares
// the result bit-for-bit against Expr2Bexpr's output evaluated over
// the matching bit assignment.
package oracle
