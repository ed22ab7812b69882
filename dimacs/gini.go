package dimacs

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/go-symcore/symcore/cnf"
)

func toLit(l int) z.Lit {
	v := z.Var(int32(abs(l)))
	if l < 0 {
		return v.Neg()
	}
	return v.Pos()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Solve hands res to a fresh gini.Gini instance and reports whether it
// is satisfiable, following go-tony/schema/formula_builder.go's
// checkSatisfiability idiom: add every clause's literals terminated by
// 0, assume the top literal true unless f was constant, then solve.
func Solve(res cnf.Result) (sat bool, err error) {
	g := gini.New()
	for _, c := range res.Clauses {
		for _, l := range c {
			g.Add(toLit(l))
		}
		g.Add(0)
	}
	if res.TopLiteral != cnf.TopLiteralInfinite {
		g.Assume(toLit(res.TopLiteral))
	}
	return g.Solve() == 1, nil
}
