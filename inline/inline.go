package inline

import "github.com/go-symcore/symcore/rbc"

// InlineResult is spec.md §4.H's (f, f_ns, f_in, c, finc) tuple. It is
// immutable once built by Inline; f_in and finc are computed lazily on
// first request since they require a substitution pass that callers
// may not need (some only want the equation set c).
type InlineResult struct {
	m   *rbc.Manager
	f   rbc.Ref
	cs  *ConjSet
	c   rbc.Ref
	fns rbc.Ref

	haveFin bool
	fin     rbc.Ref

	haveFinc bool
	finc     rbc.Ref
}

// F returns the original input formula.
func (res *InlineResult) F() rbc.Ref { return res.f }

// C returns the conjunction of all harvested variable equations.
func (res *InlineResult) C() rbc.Ref { return res.c }

// Fns returns f with every recognized equivalence replaced by TRUE at
// the site of discovery (the equation itself is kept in c), without
// substituting the mapped variables yet.
func (res *InlineResult) Fns() rbc.Ref { return res.fns }

// ConjSet exposes the harvested equations directly (flattened).
func (res *InlineResult) ConjSet() *ConjSet { return res.cs }

// Fin returns f_ns with every mapped variable transitively replaced by
// its flattened expression.
func (res *InlineResult) Fin() (rbc.Ref, error) {
	if res.haveFin {
		return res.fin, nil
	}
	sub := res.cs.substitutionVector(res.m)
	fin, err := res.m.SubstRbc(res.fns, sub)
	if err != nil {
		return rbc.Ref{}, err
	}
	res.fin = fin
	res.haveFin = true
	return res.fin, nil
}

// Finc returns c ∧ f_in, the lazy conjunction logically equivalent to
// f (spec.md §4.H).
func (res *InlineResult) Finc() (rbc.Ref, error) {
	if res.haveFinc {
		return res.finc, nil
	}
	fin, err := res.Fin()
	if err != nil {
		return rbc.Ref{}, err
	}
	res.finc = res.m.MakeAnd(res.c, fin, false)
	res.haveFinc = true
	return res.finc, nil
}

// inlineCtx carries the DFS memo table and accumulating ConjSet across
// one Inline call.
type inlineCtx struct {
	m     *rbc.Manager
	cs    *ConjSet
	memo  map[rbc.Ref]rbc.Ref
}

// Inline runs spec.md §4.H's algorithm over f: a DFS that recognizes
// variable-to-formula equivalences at the site each is discovered,
// harvests them into a ConjSet, and returns the (f, f_ns, f_in, c,
// finc) tuple via InlineResult.
func Inline(m *rbc.Manager, f rbc.Ref) *InlineResult {
	ctx := &inlineCtx{m: m, cs: NewConjSet(), memo: make(map[rbc.Ref]rbc.Ref)}
	fns := ctx.visit(f)
	ctx.cs.Flattenize(m)
	return &InlineResult{m: m, f: f, cs: ctx.cs, c: ctx.cs.Conjunction(m), fns: fns}
}

func (ctx *inlineCtx) visit(r rbc.Ref) rbc.Ref {
	if res, ok := ctx.memo[r]; ok {
		return res
	}
	var result rbc.Ref
	switch {
	case ctx.m.IsVar(r), ctx.m.IsConstant(r):
		result = r
	case ctx.m.IsAnd(r):
		lRes := ctx.visit(ctx.m.LeftChild(r))
		rRes := ctx.visit(ctx.m.RightChild(r))
		candidate := ctx.m.MakeAnd(lRes, rRes, false)
		if ctx.m.Sign(r) {
			candidate = ctx.m.MakeNot(candidate)
		}
		if x, y, ok := recognizeAndOfAnds(ctx.m, candidate); ok {
			if rhs, got := ctx.harvest(x, y); got {
				result = rhs
			} else {
				result = candidate
			}
		} else {
			result = candidate
		}
	case ctx.m.IsIff(r):
		lRes := ctx.visit(ctx.m.LeftChild(r))
		rRes := ctx.visit(ctx.m.RightChild(r))
		candidate := ctx.m.MakeIff(lRes, rRes, false)
		if ctx.m.Sign(r) {
			candidate = ctx.m.MakeNot(candidate)
		}
		if x, y, ok := recognizeIffVertex(ctx.m, candidate); ok {
			if rhs, got := ctx.harvest(x, y); got {
				result = rhs
			} else {
				result = candidate
			}
		} else {
			result = candidate
		}
	case ctx.m.IsIte(r):
		iRes := ctx.visit(ctx.m.CondChild(r))
		tRes := ctx.visit(ctx.m.ThenChild(r))
		eRes := ctx.visit(ctx.m.ElseChild(r))
		candidate := ctx.m.MakeIte(iRes, tRes, eRes, false)
		if ctx.m.Sign(r) {
			candidate = ctx.m.MakeNot(candidate)
		}
		result = candidate
	default:
		result = r
	}
	ctx.memo[r] = result
	return result
}

// harvest records x ↔ y into the ConjSet when one side is a variable
// (spec.md §4.H step 1), correcting for that variable's own sign since
// recognizeAndOfAnds may hand back a negated variable reference, then
// returns TRUE as the site's tmp_res: c re-asserts the recorded
// equation, and f_in replaces the variable by its right-hand side.
func (ctx *inlineCtx) harvest(x, y rbc.Ref) (rbc.Ref, bool) {
	if ctx.m.IsVar(x) {
		rhs := y
		if ctx.m.Sign(x) {
			rhs = ctx.m.MakeNot(y)
		}
		ctx.record(ctx.m.VarIndex(x), rhs)
		return ctx.m.True(), true
	}
	if ctx.m.IsVar(y) {
		rhs := x
		if ctx.m.Sign(y) {
			rhs = ctx.m.MakeNot(x)
		}
		ctx.record(ctx.m.VarIndex(y), rhs)
		return ctx.m.True(), true
	}
	return rbc.Ref{}, false
}

func (ctx *inlineCtx) record(varIdx int, rhs rbc.Ref) {
	ctx.cs.Add(varIdx, ConjElem{Expr: rhs, Deps: collectDeps(ctx.m, rhs)})
}

// collectDeps walks rhs collecting every variable index it references
// (spec.md's ConjElem.deps), following structural sharing with a
// visited set keyed on the signed reference.
func collectDeps(m *rbc.Manager, r rbc.Ref) map[int]bool {
	deps := make(map[int]bool)
	visited := make(map[rbc.Ref]bool)
	var walk func(rbc.Ref)
	walk = func(x rbc.Ref) {
		if visited[x] {
			return
		}
		visited[x] = true
		switch {
		case m.IsVar(x):
			deps[m.VarIndex(x)] = true
		case m.IsAnd(x), m.IsIff(x):
			walk(m.LeftChild(x))
			walk(m.RightChild(x))
		case m.IsIte(x):
			walk(m.CondChild(x))
			walk(m.ThenChild(x))
			walk(m.ElseChild(x))
		}
	}
	walk(r)
	return deps
}
