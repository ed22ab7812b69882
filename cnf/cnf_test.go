package cnf

import (
	"testing"

	"github.com/go-symcore/symcore/rbc"
)

func evalRef(m *rbc.Manager, r rbc.Ref, assign map[int]bool) bool {
	var val bool
	switch {
	case m.IsConstant(r):
		val = true
	case m.IsVar(r):
		val = assign[m.VarIndex(r)]
	case m.IsAnd(r):
		val = evalRef(m, m.LeftChild(r), assign) && evalRef(m, m.RightChild(r), assign)
	case m.IsIff(r):
		val = evalRef(m, m.LeftChild(r), assign) == evalRef(m, m.RightChild(r), assign)
	case m.IsIte(r):
		if evalRef(m, m.CondChild(r), assign) {
			val = evalRef(m, m.ThenChild(r), assign)
		} else {
			val = evalRef(m, m.ElseChild(r), assign)
		}
	}
	if m.Sign(r) {
		return !val
	}
	return val
}

// cnfVarTruth walks every vertex in f's DAG and returns, for each CNF
// variable allocated by a prior Convert call, the truth value its
// underlying subformula takes under assign.
func cnfVarTruth(m *rbc.Manager, f rbc.Ref, assign map[int]bool) map[int]bool {
	out := make(map[int]bool)
	visited := make(map[rbc.Ref]bool)
	var walk func(rbc.Ref)
	walk = func(r rbc.Ref) {
		pr := posRef(m, r)
		if visited[pr] {
			return
		}
		visited[pr] = true
		out[m.CnfVarFor(pr)] = evalRef(m, pr, assign)
		switch {
		case m.IsAnd(pr), m.IsIff(pr):
			walk(m.LeftChild(pr))
			walk(m.RightChild(pr))
		case m.IsIte(pr):
			walk(m.CondChild(pr))
			walk(m.ThenChild(pr))
			walk(m.ElseChild(pr))
		}
	}
	walk(f)
	return out
}

func litTrue(l int, truth map[int]bool) bool {
	if l < 0 {
		return !truth[-l]
	}
	return truth[l]
}

func clausesSatisfied(clauses []Clause, truth map[int]bool) bool {
	for _, c := range clauses {
		ok := false
		for _, l := range c {
			if litTrue(l, truth) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func allAssignments(n int, f func(map[int]bool)) {
	total := 1 << uint(n)
	for bits := 0; bits < total; bits++ {
		assign := make(map[int]bool, n)
		for i := 0; i < n; i++ {
			assign[i] = bits&(1<<uint(i)) != 0
		}
		f(assign)
	}
}

func buildSample(m *rbc.Manager) rbc.Ref {
	x, y, z := m.MakeVar(0), m.MakeVar(1), m.MakeVar(2)
	ite := m.MakeIte(x, y, z, false)
	return m.MakeAnd(m.MakeIff(x, y, false), ite, false)
}

// P14: the Tseitin conversion is equisatisfiable with f — here checked
// by the stronger property that the "natural" variable assignment
// (every gate set to its structurally evaluated truth value) always
// satisfies every emitted clause, and the top literal always tracks
// f's own truth value under that assignment.
func TestTseitinNaturalAssignmentSatisfiesClauses(t *testing.T) {
	m := rbc.NewManager()
	f := buildSample(m)
	res := ToCnfTseitin(m, f)

	allAssignments(3, func(assign map[int]bool) {
		truth := cnfVarTruth(m, f, assign)
		if !clausesSatisfied(res.Clauses, truth) {
			t.Fatalf("assign=%v: clauses not satisfied by natural assignment", assign)
		}
		want := evalRef(m, f, assign)
		if litTrue(res.TopLiteral, truth) != want {
			t.Fatalf("assign=%v: top literal truth mismatch, want %v", assign, want)
		}
	})
}

func TestSheridanNaturalAssignmentSatisfiesClauses(t *testing.T) {
	for _, polarity := range []int{-1, 0, 1} {
		m := rbc.NewManager()
		f := buildSample(m)
		res := ToCnfCompact(m, f, polarity)

		allAssignments(3, func(assign map[int]bool) {
			truth := cnfVarTruth(m, f, assign)
			if !clausesSatisfied(res.Clauses, truth) {
				t.Fatalf("polarity=%d assign=%v: clauses not satisfied", polarity, assign)
			}
			want := evalRef(m, f, assign)
			if litTrue(res.TopLiteral, truth) != want {
				t.Fatalf("polarity=%d assign=%v: top literal mismatch, want %v", polarity, assign, want)
			}
		})
	}
}

// A one-sided polarity request must never emit more clauses than the
// unrestricted (both) request for the same formula.
func TestSheridanNarrowerPolarityEmitsNoMoreClauses(t *testing.T) {
	m := rbc.NewManager()
	f := buildSample(m)
	both := ToCnfCompact(m, f, 0)

	m2 := rbc.NewManager()
	f2 := buildSample(m2)
	pos := ToCnfCompact(m2, f2, 1)

	if len(pos.Clauses) > len(both.Clauses) {
		t.Fatalf("polarity=1 emitted %d clauses, more than polarity=0's %d", len(pos.Clauses), len(both.Clauses))
	}
}

func TestConvertConstantFormulas(t *testing.T) {
	m := rbc.NewManager()
	trueRes := ToCnfTseitin(m, m.True())
	if len(trueRes.Clauses) != 0 || trueRes.TopLiteral != TopLiteralInfinite {
		t.Fatalf("True: got %+v", trueRes)
	}
	falseRes := ToCnfTseitin(m, m.False())
	if len(falseRes.Clauses) != 1 || len(falseRes.Clauses[0]) != 0 || falseRes.TopLiteral != TopLiteralInfinite {
		t.Fatalf("False: got %+v", falseRes)
	}
}

// For every CNF variable in Vars, CnfVarToRbcIndex must map back to a
// valid RBC variable index; for an internal gate variable it must
// return -1.
func TestCnfVarToRbcIndexInvariant(t *testing.T) {
	m := rbc.NewManager()
	f := buildSample(m)
	res := ToCnfTseitin(m, f)

	for _, v := range res.Vars {
		if idx := m.CnfVarToRbcIndex(v); idx < 0 {
			t.Fatalf("model cnf var %d maps to %d, want >= 0", v, idx)
		}
	}
	gateVar := m.CnfVarFor(m.LeftChild(f)) // the ITE(x, y, z) gate, not a variable
	if idx := m.CnfVarToRbcIndex(gateVar); idx != -1 {
		t.Fatalf("internal gate var %d maps to %d, want -1", gateVar, idx)
	}
}

func TestUnchangedPrefixReusesRbcIndices(t *testing.T) {
	m := rbc.NewManager()
	x, y := m.MakeVar(0), m.MakeVar(1)
	f := m.MakeAnd(x, y, false)
	m.PrepareCnfConversion()
	if got := m.CnfVarFor(x); got != 1 {
		t.Fatalf("CnfVarFor(var0) = %d, want 1", got)
	}
	if got := m.CnfVarFor(y); got != 2 {
		t.Fatalf("CnfVarFor(var1) = %d, want 2", got)
	}
	_ = f
}
