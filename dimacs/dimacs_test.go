package dimacs

import (
	"bytes"
	"testing"

	"github.com/go-symcore/symcore/cnf"
)

func TestWriteDimacsFormat(t *testing.T) {
	res := cnf.Result{
		Clauses: []cnf.Clause{
			{1, -2, 3},
			{-1, 2},
		},
		TopLiteral: 1,
	}
	var buf bytes.Buffer
	if err := WriteDimacs(&buf, res, 3); err != nil {
		t.Fatalf("WriteDimacs: %v", err)
	}
	want := "p cnf 3 2\n1 -2 3 0\n-1 2 0\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteDimacsEmptyClause(t *testing.T) {
	res := cnf.Result{Clauses: []cnf.Clause{{}}, TopLiteral: cnf.TopLiteralInfinite}
	var buf bytes.Buffer
	if err := WriteDimacs(&buf, res, 0); err != nil {
		t.Fatalf("WriteDimacs: %v", err)
	}
	want := "p cnf 0 1\n0\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
