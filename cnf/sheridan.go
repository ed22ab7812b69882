package cnf

import "github.com/go-symcore/symcore/rbc"

// polarity tracks the occurrence(s) in which a gate has been reached
// during top-down propagation: polPos alone means the gate is only
// ever used positively, polNeg alone only negated, and polBoth (their
// union) means both occur — spec.md §4.I.2's "{+, −, ±}".
type polarity uint8

const (
	polPos polarity = 1 << iota
	polNeg
	polBoth = polPos | polNeg
)

func flipPolarity(p polarity) polarity {
	switch p {
	case polPos:
		return polNeg
	case polNeg:
		return polPos
	default:
		return p
	}
}

// ToCnfCompact runs spec.md §4.I.2's polarity-compact conversion: a
// gate reached only positively needs just the clauses deriving its
// children from it (the ones containing ¬f); reached only negatively,
// just the clauses deriving it from its children (the ones containing
// f). IFF and an ITE's own condition are non-monotone in our signed-
// edge representation, so their children always propagate polBoth
// regardless of the parent's requirement; AND and an ITE's then/else
// children inherit the parent's requirement unchanged, flipped when
// the edge to that child is itself negated.
func ToCnfCompact(m *rbc.Manager, f rbc.Ref, polarityArg int) Result {
	if m.IsConstant(f) {
		return constantResult(m, f)
	}
	m.PrepareCnfConversion()

	reach := make(map[rbc.Ref]polarity)
	var propagate func(r rbc.Ref, want polarity)
	propagate = func(r rbc.Ref, want polarity) {
		pr := posRef(m, r)
		local := want
		if m.Sign(r) {
			local = flipPolarity(want)
		}
		if reach[pr]&local == local {
			return
		}
		reach[pr] |= local
		full := reach[pr]
		switch {
		case m.IsAnd(pr):
			propagate(m.LeftChild(pr), full)
			propagate(m.RightChild(pr), full)
		case m.IsIff(pr):
			propagate(m.LeftChild(pr), polBoth)
			propagate(m.RightChild(pr), polBoth)
		case m.IsIte(pr):
			propagate(m.CondChild(pr), polBoth)
			propagate(m.ThenChild(pr), full)
			propagate(m.ElseChild(pr), full)
		}
	}

	var seed polarity
	switch {
	case polarityArg > 0:
		seed = polPos
	case polarityArg < 0:
		seed = polNeg
	default:
		seed = polBoth
	}
	propagate(f, seed)

	var clauses []Clause
	visited := make(map[rbc.Ref]bool)
	var walk func(rbc.Ref)
	walk = func(r rbc.Ref) {
		pr := posRef(m, r)
		if visited[pr] {
			return
		}
		visited[pr] = true
		need := reach[pr]
		if need == 0 {
			need = polBoth
		}
		switch {
		case m.IsVar(pr):
			m.CnfVarFor(pr)
		case m.IsAnd(pr):
			l, rr := m.LeftChild(pr), m.RightChild(pr)
			walk(l)
			walk(rr)
			fv := m.CnfVarFor(pr)
			lLit, rLit := lit(m, l), lit(m, rr)
			if need&polPos != 0 {
				clauses = append(clauses, Clause{-fv, lLit}, Clause{-fv, rLit})
			}
			if need&polNeg != 0 {
				clauses = append(clauses, Clause{fv, -lLit, -rLit})
			}
		case m.IsIff(pr):
			l, rr := m.LeftChild(pr), m.RightChild(pr)
			walk(l)
			walk(rr)
			fv := m.CnfVarFor(pr)
			lLit, rLit := lit(m, l), lit(m, rr)
			if need&polPos != 0 {
				clauses = append(clauses, Clause{-fv, lLit, -rLit}, Clause{-fv, -lLit, rLit})
			}
			if need&polNeg != 0 {
				clauses = append(clauses, Clause{fv, lLit, rLit}, Clause{fv, -lLit, -rLit})
			}
		case m.IsIte(pr):
			i, t, e := m.CondChild(pr), m.ThenChild(pr), m.ElseChild(pr)
			walk(i)
			walk(t)
			walk(e)
			fv := m.CnfVarFor(pr)
			iLit, tLit, eLit := lit(m, i), lit(m, t), lit(m, e)
			if need&polPos != 0 {
				clauses = append(clauses, Clause{-fv, -iLit, tLit}, Clause{-fv, iLit, eLit})
			}
			if need&polNeg != 0 {
				clauses = append(clauses, Clause{fv, -iLit, -tLit}, Clause{fv, iLit, -eLit})
			}
		}
	}
	walk(f)
	return Result{Clauses: clauses, Vars: m.ModelCnfVars(), TopLiteral: lit(m, f)}
}
