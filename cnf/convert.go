package cnf

import "github.com/go-symcore/symcore/rbc"

// Algorithm selects which of the two conversions Convert runs; both
// preserve the same (clauses, vars, top-literal) interface, so the
// choice is a pure configuration knob.
type Algorithm int

const (
	AlgorithmTseitin Algorithm = iota
	AlgorithmSheridan
)

// Convert runs to_cnf(f, polarity) using algo. polarity is only
// consulted by AlgorithmSheridan; Tseitin always emits the full
// clause set for every gate.
func Convert(m *rbc.Manager, f rbc.Ref, polarity int, algo Algorithm) Result {
	if algo == AlgorithmSheridan {
		return ToCnfCompact(m, f, polarity)
	}
	return ToCnfTseitin(m, f)
}
