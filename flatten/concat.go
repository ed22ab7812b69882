package flatten

import "github.com/go-symcore/symcore/ir"

// ConcatContexts places outer at the bottom of inner's left spine
// (spec.md §4.D concat_contexts):
//
//	concat(outer, Nil)              = outer
//	concat(outer, DOT(Nil, atom))    = DOT(outer, atom)
//	concat(outer, ATOM|NUMBER)       = DOT(outer, node)
//	concat(outer, BIT(base, bit))    = BIT(concat(outer, base), bit)
//	otherwise                        = node(op, concat(outer, car), cdr)
func ConcatContexts(pool *ir.Pool, outer, inner *ir.Node) *ir.Node {
	if inner.IsNil() {
		return outer
	}
	switch inner.Tag {
	case ir.DOT:
		if inner.Car.IsNil() {
			return pool.FindNode(ir.DOT, outer, inner.Cdr)
		}
		return pool.FindNode(ir.DOT, ConcatContexts(pool, outer, inner.Car), inner.Cdr)
	case ir.ATOM, ir.NUMBER:
		return pool.FindNode(ir.DOT, outer, inner)
	case ir.BIT:
		return pool.FindNode(ir.BIT, ConcatContexts(pool, outer, inner.Car), inner.Cdr)
	default:
		return pool.FindNode(inner.Tag, ConcatContexts(pool, outer, inner.Car), inner.Cdr)
	}
}
