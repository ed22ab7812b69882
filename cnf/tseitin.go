package cnf

import "github.com/go-symcore/symcore/rbc"

// posRef strips r's own sign, returning the canonical positive
// reference to its underlying vertex. Rbc_get_node_cnf allocates one
// CNF variable per vertex, not per signed literal, so every traversal
// below visits and memoizes on posRef rather than r itself.
func posRef(m *rbc.Manager, r rbc.Ref) rbc.Ref {
	if m.Sign(r) {
		return m.MakeNot(r)
	}
	return r
}

// lit returns the signed DIMACS literal for r: CnfVarFor's variable,
// negated when r's own sign is set.
func lit(m *rbc.Manager, r rbc.Ref) int {
	v := m.CnfVarFor(r)
	if m.Sign(r) {
		return -v
	}
	return v
}

// ToCnfTseitin runs spec.md §4.I.1's Tseitin conversion over f.
func ToCnfTseitin(m *rbc.Manager, f rbc.Ref) Result {
	if m.IsConstant(f) {
		return constantResult(m, f)
	}
	m.PrepareCnfConversion()
	var clauses []Clause
	visited := make(map[rbc.Ref]bool)
	var walk func(rbc.Ref)
	walk = func(r rbc.Ref) {
		pr := posRef(m, r)
		if visited[pr] {
			return
		}
		visited[pr] = true
		switch {
		case m.IsVar(pr):
			m.CnfVarFor(pr)
		case m.IsAnd(pr):
			l, rr := m.LeftChild(pr), m.RightChild(pr)
			walk(l)
			walk(rr)
			fv := m.CnfVarFor(pr)
			lLit, rLit := lit(m, l), lit(m, rr)
			clauses = append(clauses,
				Clause{fv, -lLit, -rLit},
				Clause{-fv, lLit},
				Clause{-fv, rLit},
			)
		case m.IsIff(pr):
			l, rr := m.LeftChild(pr), m.RightChild(pr)
			walk(l)
			walk(rr)
			fv := m.CnfVarFor(pr)
			lLit, rLit := lit(m, l), lit(m, rr)
			clauses = append(clauses,
				Clause{-fv, lLit, -rLit},
				Clause{-fv, -lLit, rLit},
				Clause{fv, lLit, rLit},
				Clause{fv, -lLit, -rLit},
			)
		case m.IsIte(pr):
			i, t, e := m.CondChild(pr), m.ThenChild(pr), m.ElseChild(pr)
			walk(i)
			walk(t)
			walk(e)
			fv := m.CnfVarFor(pr)
			iLit, tLit, eLit := lit(m, i), lit(m, t), lit(m, e)
			clauses = append(clauses,
				Clause{-fv, -iLit, tLit},
				Clause{-fv, iLit, eLit},
				Clause{fv, -iLit, -tLit},
				Clause{fv, iLit, -eLit},
			)
		}
	}
	walk(f)
	return Result{Clauses: clauses, Vars: m.ModelCnfVars(), TopLiteral: lit(m, f)}
}

// constantResult implements to_cnf's special case for a constant
// formula: true needs no clauses at all, false needs a single empty
// clause; both report the infinite top literal since no literal
// stands for a constant.
func constantResult(m *rbc.Manager, f rbc.Ref) Result {
	if !m.Sign(f) {
		return Result{TopLiteral: TopLiteralInfinite}
	}
	return Result{Clauses: []Clause{{}}, TopLiteral: TopLiteralInfinite}
}
