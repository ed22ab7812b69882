package rbc

import "testing"

func evalRef(r Ref, assign map[int]bool) bool {
	var val bool
	switch r.v.tag {
	case vTOP:
		val = true
	case vVAR:
		val = assign[r.v.varIndex]
	case vAND:
		val = evalRef(r.v.c0, assign) && evalRef(r.v.c1, assign)
	case vIFF:
		val = evalRef(r.v.c0, assign) == evalRef(r.v.c1, assign)
	case vITE:
		if evalRef(r.v.c0, assign) {
			val = evalRef(r.v.c1, assign)
		} else {
			val = evalRef(r.v.c2, assign)
		}
	}
	if r.sign {
		return !val
	}
	return val
}

// P7: commutativity by pointer identity.
func TestMakeAndCommutative(t *testing.T) {
	m := NewManager()
	a, b := m.MakeVar(0), m.MakeVar(1)
	if m.MakeAnd(a, b, false) != m.MakeAnd(b, a, false) {
		t.Fatalf("MakeAnd(a,b) != MakeAnd(b,a)")
	}
}

// P8: one-level simplifications.
func TestMakeAndOneLevel(t *testing.T) {
	m := NewManager()
	a := m.MakeVar(0)
	if got := m.MakeAnd(a, a, false); got != a {
		t.Fatalf("AND(a,a) = %v, want %v", got, a)
	}
	if got := m.MakeAnd(a, m.MakeNot(a), false); got != m.False() {
		t.Fatalf("AND(a,~a) = %v, want false", got)
	}
	if got := m.MakeAnd(a, m.True(), false); got != a {
		t.Fatalf("AND(a,true) = %v, want %v", got, a)
	}
}

// P9: IFF/ITE trivial folds.
func TestMakeIffMakeIteFolds(t *testing.T) {
	m := NewManager()
	a, b := m.MakeVar(0), m.MakeVar(1)
	if got := m.MakeIff(a, m.False(), false); got != m.MakeNot(a) {
		t.Fatalf("IFF(a,false) = %v, want ~a", got)
	}
	if got := m.MakeIte(m.True(), a, b, false); got != a {
		t.Fatalf("ITE(true,a,b) = %v, want a", got)
	}
	if got := m.MakeIte(a, b, b, false); got != b {
		t.Fatalf("ITE(a,b,b) = %v, want b", got)
	}
}

func TestAsymmetricAndSymmetricReductions(t *testing.T) {
	m := NewManager()
	a, b, c := m.MakeVar(0), m.MakeVar(1), m.MakeVar(2)
	ab := m.MakeAnd(a, b, false)

	// Asymmetric idempotence: AND(AND(a,b), a) == AND(a,b).
	if got := m.MakeAnd(ab, a, false); got != ab {
		t.Fatalf("AND(AND(a,b),a) = %v, want %v", got, ab)
	}
	// Asymmetric contradiction: AND(AND(a,b), ~a) == false.
	if got := m.MakeAnd(ab, m.MakeNot(a), false); got != m.False() {
		t.Fatalf("AND(AND(a,b),~a) = %v, want false", got)
	}
	// Asymmetric substitution: AND(~AND(a,b), a) == AND(~b, a).
	want := m.MakeAnd(m.MakeNot(b), a, false)
	if got := m.MakeAnd(m.MakeNot(ab), a, false); got != want {
		t.Fatalf("AND(~AND(a,b),a) = %v, want %v", got, want)
	}
	// Asymmetric subsumption: AND(~AND(a,b), ~a) == ~a.
	if got := m.MakeAnd(m.MakeNot(ab), m.MakeNot(a), false); got != m.MakeNot(a) {
		t.Fatalf("AND(~AND(a,b),~a) = %v, want ~a", got)
	}

	// Symmetric resolution: AND(~AND(a,b), ~AND(~b,a)) == ~a.
	nbA := m.MakeAnd(m.MakeNot(b), a, false)
	if got := m.MakeAnd(m.MakeNot(ab), m.MakeNot(nbA), false); got != m.MakeNot(a) {
		t.Fatalf("resolution: got %v, want ~a", got)
	}
	_ = c
}

// P10: substituting every variable with itself is identity.
func TestSubstRbcIdentity(t *testing.T) {
	m := NewManager()
	a, b := m.MakeVar(0), m.MakeVar(1)
	f := m.MakeAnd(a, m.MakeNot(b), false)
	sub := []Ref{m.MakeVar(0), m.MakeVar(1)}
	got, err := m.SubstRbc(f, sub)
	if err != nil {
		t.Fatalf("SubstRbc: %v", err)
	}
	if got != f {
		t.Fatalf("SubstRbc(f, identity) = %v, want %v", got, f)
	}
}

// P11: a swap composed with its own inverse is identity.
func TestSubstRbcSwapRoundTrip(t *testing.T) {
	m := NewManager()
	a, b := m.MakeVar(0), m.MakeVar(1)
	f := m.MakeAnd(a, m.MakeNot(b), false)

	swap := []Ref{m.MakeVar(1), m.MakeVar(0)}
	swapped, err := m.SubstRbc(f, swap)
	if err != nil {
		t.Fatalf("SubstRbc(swap): %v", err)
	}
	back, err := m.SubstRbc(swapped, swap)
	if err != nil {
		t.Fatalf("SubstRbc(swap again): %v", err)
	}
	if back != f {
		t.Fatalf("SubstRbc(SubstRbc(f,swap),swap) = %v, want %v", back, f)
	}
}

func TestShiftRbc(t *testing.T) {
	m := NewManager()
	a, b := m.MakeVar(0), m.MakeVar(1)
	f := m.MakeAnd(a, b, false)
	shifted, err := m.ShiftRbc(f, 2)
	if err != nil {
		t.Fatalf("ShiftRbc: %v", err)
	}
	want := m.MakeAnd(m.MakeVar(2), m.MakeVar(3), false)
	if shifted != want {
		t.Fatalf("ShiftRbc(f,2) = %v, want %v", shifted, want)
	}

	if _, err := m.ShiftRbc(f, -1); err == nil {
		t.Fatalf("ShiftRbc(f,-1) should fail: variable 0 would go negative")
	}
}

func TestGCFreesUnmarkedCompoundVertices(t *testing.T) {
	m := NewManager()
	a, b := m.MakeVar(0), m.MakeVar(1)
	kept := m.MakeAnd(a, b, false)
	m.Mark(kept)

	discarded := m.MakeAnd(a, m.MakeNot(b), false)
	_ = discarded

	stats := m.GC()
	if stats.Freed == 0 {
		t.Fatalf("GC freed nothing, want at least the unmarked AND vertex freed")
	}
	// The marked vertex must still answer correctly after GC.
	if !evalRef(kept, map[int]bool{0: true, 1: true}) {
		t.Fatalf("kept vertex lost its value across GC")
	}
}

func TestEvalAgreesWithTruthTable(t *testing.T) {
	m := NewManager()
	a, b := m.MakeVar(0), m.MakeVar(1)
	f := m.MakeIte(a, b, m.MakeNot(b), false) // a ? b : ~b, i.e. a <-> b

	for _, av := range []bool{true, false} {
		for _, bv := range []bool{true, false} {
			got := evalRef(f, map[int]bool{0: av, 1: bv})
			want := av == bv
			if got != want {
				t.Fatalf("a=%v b=%v: got %v want %v", av, bv, got, want)
			}
		}
	}
}
