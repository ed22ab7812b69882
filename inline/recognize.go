package inline

import "github.com/go-symcore/symcore/rbc"

// recognizeIffVertex reports whether r structurally is sign*IFF(x, y)
// with x a variable reference, trying both operand orders (IFF is
// symmetric). IFF children are always stored positive (RBC invariant
// 3), so y absorbs r's own sign.
func recognizeIffVertex(m *rbc.Manager, r rbc.Ref) (x, y rbc.Ref, ok bool) {
	if !m.IsIff(r) {
		return rbc.Ref{}, rbc.Ref{}, false
	}
	l := m.LeftChild(r)
	rr := m.RightChild(r)
	if m.IsVar(l) {
		rhs := rr
		if m.Sign(r) {
			rhs = m.MakeNot(rr)
		}
		return l, rhs, true
	}
	if m.IsVar(rr) {
		rhs := l
		if m.Sign(r) {
			rhs = m.MakeNot(l)
		}
		return rr, rhs, true
	}
	return rbc.Ref{}, rbc.Ref{}, false
}

// recognizeAndOfAnds reports whether r is the raw AND encoding of an
// IFF: r = ¬AND(¬AND(x,y), ¬AND(¬x,¬y)) (spec.md §4.H step 1), which
// algebraically expands to (x∧y)∨(¬x∧¬y), the standard biconditional.
// This catches formulas equivalent to IFF(x,y) that were built purely
// with MakeAnd/MakeNot rather than through Manager.MakeIff.
func recognizeAndOfAnds(m *rbc.Manager, r rbc.Ref) (x, y rbc.Ref, ok bool) {
	if !m.IsAnd(r) || !m.Sign(r) {
		return rbc.Ref{}, rbc.Ref{}, false
	}
	p := m.LeftChild(r)
	q := m.RightChild(r)
	if cx, cy, matched := matchNegatedAndPair(m, p, q); matched {
		return cx, cy, true
	}
	return rbc.Ref{}, rbc.Ref{}, false
}

// matchNegatedAndPair checks p = ¬AND(x,y) and q = ¬AND(¬x,¬y) (in
// either order).
func matchNegatedAndPair(m *rbc.Manager, p, q rbc.Ref) (x, y rbc.Ref, ok bool) {
	if !m.IsAnd(p) || !m.Sign(p) || !m.IsAnd(q) || !m.Sign(q) {
		return rbc.Ref{}, rbc.Ref{}, false
	}
	px, py := m.LeftChild(p), m.RightChild(p)
	qx, qy := m.LeftChild(q), m.RightChild(q)
	if qx == m.MakeNot(px) && qy == m.MakeNot(py) {
		return px, py, true
	}
	if qx == m.MakeNot(py) && qy == m.MakeNot(px) {
		return px, py, true
	}
	return rbc.Ref{}, rbc.Ref{}, false
}
