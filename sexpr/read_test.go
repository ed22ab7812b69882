package sexpr

import (
	"testing"

	"github.com/go-symcore/symcore/rbc"
)

func TestReadSexprVariable(t *testing.T) {
	m := rbc.NewManager()
	r, err := ReadSexpr(m, "X3")
	if err != nil {
		t.Fatalf("ReadSexpr: %v", err)
	}
	if !m.IsVar(r) || m.VarIndex(r) != 3 {
		t.Fatalf("got %v, want variable X3", r)
	}
}

func TestReadSexprConstants(t *testing.T) {
	m := rbc.NewManager()
	tr, err := ReadSexpr(m, "TRUE")
	if err != nil || tr != m.True() {
		t.Fatalf("ReadSexpr(TRUE) = %v, %v", tr, err)
	}
	fa, err := ReadSexpr(m, "FALSE")
	if err != nil || fa != m.False() {
		t.Fatalf("ReadSexpr(FALSE) = %v, %v", fa, err)
	}
}

func TestReadSexprGatesRoundTrip(t *testing.T) {
	m := rbc.NewManager()
	x, y, z := m.MakeVar(0), m.MakeVar(1), m.MakeVar(2)
	cases := []rbc.Ref{
		m.MakeNot(x),
		m.MakeAnd(x, y, false),
		m.MakeIff(x, y, false),
		m.MakeIte(x, y, z, false),
	}
	for _, want := range cases {
		text := Sexpr(m, want)
		got, err := ReadSexpr(m, text)
		if err != nil {
			t.Fatalf("ReadSexpr(%q): %v", text, err)
		}
		if got != want {
			t.Fatalf("round trip %q: got %v, want %v", text, got, want)
		}
	}
}

func TestReadSexprRejectsMalformed(t *testing.T) {
	m := rbc.NewManager()
	cases := []string{
		"(AND X0)",
		"(NOT X0 X1)",
		"(ITE X0 X1)",
		"X",
		"(FOO X0 X1)",
		"(AND X0 X1",
	}
	for _, in := range cases {
		if _, err := ReadSexpr(m, in); err == nil {
			t.Errorf("ReadSexpr(%q) succeeded, want error", in)
		}
	}
}
