package flatten

import (
	"fmt"
	"math/big"

	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtype"
)

// flattenArray implements the ARRAY(a, i) rules of spec.md §4.D: a
// constant index resolves to a leaf, an if-then-else/case array is
// handled by pushing the index down to its branches before
// re-resolution, and a non-constant index is multiplexed over every
// valid index with a FAILURE default.
func (f *Flattener) flattenArray(expr, context *ir.Node, mode Mode) (*ir.Node, error) {
	a := expr.Car
	i := expr.Cdr

	switch a.Tag {
	case ir.IFTHENELSE:
		thenElse := a.Cdr
		rewritten := f.pool.FindNode(ir.IFTHENELSE, a.Car,
			f.pool.FindNode(ir.COLON,
				f.pool.FindNode(ir.ARRAY, thenElse.Car, i),
				f.pool.FindNode(ir.ARRAY, thenElse.Cdr, i)))
		return f.Flatten(rewritten, context, mode)
	case ir.CASE:
		return f.Flatten(rewriteCaseArms(f.pool, a, i), context, mode)
	}

	aFlat, err := f.Flatten(a, context, mode)
	if err != nil {
		return nil, err
	}

	idx, ok := f.ResolveNumber(i, context)
	if !ok {
		return f.multiplexArray(aFlat, i, context, mode)
	}
	if lo, hi, hasBounds := f.arrayBounds(aFlat); hasBounds {
		n, ok := new(big.Int).SetString(string(idx.Int), 10)
		if !ok || n.Cmp(big.NewInt(int64(lo))) < 0 || n.Cmp(big.NewInt(int64(hi))) > 0 {
			return nil, fmt.Errorf("flatten: out-of-bounds: array index %s not in [%d,%d]", idx.Int, lo, hi)
		}
	}
	return f.pool.FindNode(ir.ARRAY, aFlat, idx), nil
}

// rewriteCaseArms rebuilds a CASE linked list so that every arm's
// value is wrapped in ARRAY(value, i), leaving conditions and the
// terminal FAILURE leaf untouched.
func rewriteCaseArms(pool *ir.Pool, n, i *ir.Node) *ir.Node {
	if n.Tag != ir.CASE {
		return n
	}
	arm := n.Car
	newArm := pool.FindNode(ir.COLON, arm.Car, pool.FindNode(ir.ARRAY, arm.Cdr, i))
	return pool.FindNode(ir.CASE, newArm, rewriteCaseArms(pool, n.Cdr, i))
}

// multiplexArray builds the if-then-else chain of spec.md §4.D's
// non-constant-index ARRAY rule: the index is compared against every
// declared index in turn, falling through to FAILURE.
func (f *Flattener) multiplexArray(aFlat, i, context *ir.Node, mode Mode) (*ir.Node, error) {
	iFlat, err := f.Flatten(i, context, mode)
	if err != nil {
		return nil, err
	}
	lo, hi, hasBounds := f.arrayBounds(aFlat)
	if !hasBounds {
		return nil, fmt.Errorf("flatten: type-mismatch: array index multiplexing requires a finite array type")
	}
	chain := f.pool.Failure()
	for idx := hi; idx >= lo; idx-- {
		cond := f.pool.FindNode(ir.EQUAL, iFlat, f.pool.FindNumber(fmt.Sprintf("%d", idx)))
		value := f.pool.FindNode(ir.ARRAY, aFlat, f.pool.FindNumber(fmt.Sprintf("%d", idx)))
		chain = f.pool.FindNode(ir.IFTHENELSE, cond, f.pool.FindNode(ir.COLON, value, chain))
	}
	return chain, nil
}

func (f *Flattener) arrayBounds(aFlat *ir.Node) (lo, hi int, ok bool) {
	t, err := f.typeOf(aFlat, f.pool.Nil())
	if err != nil || t.Kind != symtype.Array {
		return 0, 0, false
	}
	return t.Lo, t.Hi, true
}

// flattenCastBool implements CAST_BOOL(x) (spec.md §4.D): rewritten to
// a two-armed case over x=0 for integer/real/enum or a one-bit word,
// identity on boolean, rejected otherwise.
func (f *Flattener) flattenCastBool(expr, context *ir.Node, mode Mode) (*ir.Node, error) {
	x := expr.Car
	xFlat, err := f.Flatten(x, context, mode)
	if err != nil {
		return nil, err
	}
	t, err := f.typeOf(x, context)
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case symtype.Boolean:
		return xFlat, nil
	case symtype.Integer, symtype.Real, symtype.Enum:
		zero := f.pool.FindNumber("0")
		return f.caseFalseDefaultTrue(xFlat, zero), nil
	case symtype.UnsignedWord:
		if t.Width != 1 {
			return nil, fmt.Errorf("flatten: type-mismatch: CAST_BOOL requires a one-bit unsigned word, got width %d", t.Width)
		}
		zero := f.pool.FindWordConstant("0", 1, false)
		return f.caseFalseDefaultTrue(xFlat, zero), nil
	default:
		return nil, fmt.Errorf("flatten: type-mismatch: CAST_BOOL not defined for %s", t)
	}
}

func (f *Flattener) caseFalseDefaultTrue(x, zero *ir.Node) *ir.Node {
	cond := f.pool.FindNode(ir.EQUAL, x, zero)
	firstArm := f.pool.FindNode(ir.COLON, cond, f.pool.False())
	defaultArm := f.pool.FindNode(ir.COLON, f.pool.True(), f.pool.True())
	return f.pool.FindNode(ir.CASE, firstArm, f.pool.FindNode(ir.CASE, defaultArm, f.pool.Failure()))
}

// flattenCastToInt implements CAST_TOINT(x) (spec.md §4.D): identity
// on arithmetic types, a two-armed case on boolean. The word case
// (§4.F's explicit bit-wise circuit) is left as a preserved CAST_TOINT
// node: emitting the circuit requires the booleanizer's bit encoding,
// which this package does not own.
func (f *Flattener) flattenCastToInt(expr, context *ir.Node, mode Mode) (*ir.Node, error) {
	x := expr.Car
	xFlat, err := f.Flatten(x, context, mode)
	if err != nil {
		return nil, err
	}
	t, err := f.typeOf(x, context)
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case symtype.Integer, symtype.Real:
		return xFlat, nil
	case symtype.Boolean:
		firstArm := f.pool.FindNode(ir.COLON, xFlat, f.pool.FindNumber("1"))
		defaultArm := f.pool.FindNode(ir.COLON, f.pool.True(), f.pool.FindNumber("0"))
		return f.pool.FindNode(ir.CASE, firstArm, f.pool.FindNode(ir.CASE, defaultArm, f.pool.Failure())), nil
	case symtype.SignedWord, symtype.UnsignedWord:
		return f.pool.FindNode(ir.CAST_TOINT, xFlat, nil), nil
	default:
		return nil, fmt.Errorf("flatten: type-mismatch: CAST_TOINT not defined for %s", t)
	}
}

// flattenCase flattens a CASE(arm, rest) linked list in place,
// enforcing the mandatory terminal FAILURE leaf.
func (f *Flattener) flattenCase(expr, context *ir.Node, mode Mode) (*ir.Node, error) {
	if expr.Tag == ir.FAILURE {
		return expr, nil
	}
	if expr.Tag != ir.CASE {
		return nil, fmt.Errorf("flatten: internal-inconsistency: CASE chain missing terminal FAILURE leaf")
	}
	arm := expr.Car
	cond, err := f.Flatten(arm.Car, context, mode)
	if err != nil {
		return nil, err
	}
	val, err := f.Flatten(arm.Cdr, context, mode)
	if err != nil {
		return nil, err
	}
	if expr.Cdr.IsNil() {
		return nil, fmt.Errorf("flatten: internal-inconsistency: CASE chain missing terminal FAILURE leaf")
	}
	rest, err := f.Flatten(expr.Cdr, context, mode)
	if err != nil {
		return nil, err
	}
	return f.pool.FindNode(ir.CASE, f.pool.FindNode(ir.COLON, cond, val), rest), nil
}

// flattenIfThenElse flattens IFTHENELSE(cond, COLON(then, else)).
func (f *Flattener) flattenIfThenElse(expr, context *ir.Node, mode Mode) (*ir.Node, error) {
	cond, err := f.Flatten(expr.Car, context, mode)
	if err != nil {
		return nil, err
	}
	thenElse := expr.Cdr
	then, err := f.Flatten(thenElse.Car, context, mode)
	if err != nil {
		return nil, err
	}
	els, err := f.Flatten(thenElse.Cdr, context, mode)
	if err != nil {
		return nil, err
	}
	return f.pool.FindNode(ir.IFTHENELSE, cond, f.pool.FindNode(ir.COLON, then, els)), nil
}

// flattenNumericParam handles EXTEND/WRESIZE(w, n): w is flattened
// normally, n is evaluated to a concrete number (spec.md §4.D).
func (f *Flattener) flattenNumericParam(expr, context *ir.Node, mode Mode) (*ir.Node, error) {
	w, err := f.Flatten(expr.Car, context, mode)
	if err != nil {
		return nil, err
	}
	n, ok := f.ResolveNumber(expr.Cdr, context)
	if !ok {
		return nil, fmt.Errorf("flatten: non-constant: %s's size parameter must be a compile-time constant", expr.Tag)
	}
	return f.pool.FindNode(expr.Tag, w, n), nil
}

// flattenWordConst evaluates UWCONST(value, width) / SWCONST(value,
// width) to a concrete word constant, bounds-checking value against
// width (spec.md §4.D).
func (f *Flattener) flattenWordConst(expr, context *ir.Node, mode Mode) (*ir.Node, error) {
	value, okV := f.ResolveNumber(expr.Car, context)
	width, okW := f.ResolveNumber(expr.Cdr, context)
	if !okV || !okW {
		return nil, fmt.Errorf("flatten: non-constant: %s operands must be compile-time constants", expr.Tag)
	}
	w, ok := new(big.Int).SetString(string(width.Int), 10)
	if !ok || !w.IsInt64() || w.Int64() <= 0 {
		return nil, fmt.Errorf("flatten: non-constant: %s width must be a positive integer", expr.Tag)
	}
	width64 := w.Int64()
	v, ok := new(big.Int).SetString(string(value.Int), 10)
	if !ok {
		return nil, fmt.Errorf("flatten: non-constant: %s value must be an integer", expr.Tag)
	}

	signed := expr.Tag == ir.SWCONST
	if !inRange(v, width64, signed) {
		return nil, fmt.Errorf("flatten: out-of-bounds: %s value %s not representable in %d bits", expr.Tag, v, width64)
	}
	return f.pool.FindWordConstant(string(value.Int), int(width64), signed), nil
}

func inRange(v *big.Int, width int64, signed bool) bool {
	if signed {
		half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
		lo := new(big.Int).Neg(half)
		hi := new(big.Int).Sub(half, big.NewInt(1))
		return v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0
	}
	hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width)), big.NewInt(1))
	return v.Cmp(big.NewInt(0)) >= 0 && v.Cmp(hi) <= 0
}
