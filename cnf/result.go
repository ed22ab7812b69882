package cnf

import "math"

// Clause is an ordered list of non-zero signed CNF literals. The
// DIMACS terminating 0 is added by package dimacs at serialization
// time, not carried here.
type Clause []int

// TopLiteralInfinite is the sentinel to_cnf returns as the top literal
// when f is a constant (true or false): spec.md's "+∞" marker, since
// there is no literal that stands for a constant formula.
const TopLiteralInfinite = math.MaxInt32

// Result is to_cnf's (clauses, vars, top-literal) triple.
type Result struct {
	Clauses    []Clause
	Vars       []int
	TopLiteral int
}
