package sexpr

import (
	"testing"

	"github.com/go-symcore/symcore/rbc"
)

func TestSexprVariable(t *testing.T) {
	m := rbc.NewManager()
	x := m.MakeVar(2)
	if got := Sexpr(m, x); got != "X2" {
		t.Fatalf("got %q, want X2", got)
	}
	if got := Sexpr(m, m.MakeNot(x)); got != "(NOT X2)" {
		t.Fatalf("got %q, want (NOT X2)", got)
	}
}

func TestSexprGates(t *testing.T) {
	m := rbc.NewManager()
	x, y, z := m.MakeVar(0), m.MakeVar(1), m.MakeVar(2)
	and := m.MakeAnd(x, y, false)
	if got := Sexpr(m, and); got != "(AND X0 X1)" {
		t.Fatalf("AND: got %q", got)
	}
	iff := m.MakeIff(x, y, false)
	if got := Sexpr(m, iff); got != "(IFF X0 X1)" {
		t.Fatalf("IFF: got %q", got)
	}
	ite := m.MakeIte(x, y, z, false)
	if got := Sexpr(m, ite); got != "(ITE X0 X1 X2)" {
		t.Fatalf("ITE: got %q", got)
	}
}

func TestSexprConstants(t *testing.T) {
	m := rbc.NewManager()
	if got := Sexpr(m, m.True()); got != "TRUE" {
		t.Fatalf("got %q, want TRUE", got)
	}
	if got := Sexpr(m, m.False()); got != "FALSE" {
		t.Fatalf("got %q, want FALSE", got)
	}
}
