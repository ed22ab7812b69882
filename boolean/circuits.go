package boolean

import (
	"math/big"

	"github.com/go-symcore/symcore/ir"
)

// The helpers in this file build small boolean circuits over BitVec
// operands: ripple-carry addition/subtraction, shift-add
// multiplication, restoring division, comparators, and bitwise
// connectives. Each mirrors a standard bit-serial hardware circuit;
// none of it is NuSMV-specific, but the shape (recursive ir.Node
// construction rather than a native bool/int) follows
// go-tony/schema/formula_builder.go's habit of building its result as
// a circuit over the same node type it consumes, not evaluating early.

func bNot(pool *ir.Pool, a *ir.Node) *ir.Node {
	switch a.Tag {
	case ir.TRUEEXP:
		return pool.False()
	case ir.FALSEEXP:
		return pool.True()
	}
	if a.Tag == ir.NOT {
		return a.Car
	}
	return pool.FindNode(ir.NOT, a, nil)
}

func bAnd(pool *ir.Pool, a, b *ir.Node) *ir.Node {
	if a.Tag == ir.FALSEEXP || b.Tag == ir.FALSEEXP {
		return pool.False()
	}
	if a.Tag == ir.TRUEEXP {
		return b
	}
	if b.Tag == ir.TRUEEXP {
		return a
	}
	return pool.FindNode(ir.AND, a, b)
}

func bOr(pool *ir.Pool, a, b *ir.Node) *ir.Node {
	if a.Tag == ir.TRUEEXP || b.Tag == ir.TRUEEXP {
		return pool.True()
	}
	if a.Tag == ir.FALSEEXP {
		return b
	}
	if b.Tag == ir.FALSEEXP {
		return a
	}
	return pool.FindNode(ir.OR, a, b)
}

func bXor(pool *ir.Pool, a, b *ir.Node) *ir.Node {
	return bOr(pool, bAnd(pool, a, bNot(pool, b)), bAnd(pool, bNot(pool, a), b))
}

func bIff(pool *ir.Pool, a, b *ir.Node) *ir.Node {
	return bOr(pool, bAnd(pool, a, b), bAnd(pool, bNot(pool, a), bNot(pool, b)))
}

// bIte is the standard (cond AND x) OR (NOT cond AND y) multiplexer.
func bIte(pool *ir.Pool, cond, x, y *ir.Node) *ir.Node {
	if cond.Tag == ir.TRUEEXP {
		return x
	}
	if cond.Tag == ir.FALSEEXP {
		return y
	}
	return bOr(pool, bAnd(pool, cond, x), bAnd(pool, bNot(pool, cond), y))
}

func constBit(pool *ir.Pool, v bool) *ir.Node {
	if v {
		return pool.True()
	}
	return pool.False()
}

// constBitVec encodes value as an unsigned, fixed-width bit vector,
// LSB first.
func constBitVec(pool *ir.Pool, value *big.Int, width int) BitVec {
	v := make(BitVec, width)
	for i := 0; i < width; i++ {
		v[i] = constBit(pool, value.Bit(i) == 1)
	}
	return v
}

func bvNot(pool *ir.Pool, a BitVec) BitVec {
	out := make(BitVec, len(a))
	for i, bit := range a {
		out[i] = bNot(pool, bit)
	}
	return out
}

func bvZip(pool *ir.Pool, a, b BitVec, op func(*ir.Pool, *ir.Node, *ir.Node) *ir.Node) BitVec {
	n := len(a)
	out := make(BitVec, n)
	for i := 0; i < n; i++ {
		out[i] = op(pool, a[i], b[i])
	}
	return out
}

func bvIte(pool *ir.Pool, cond *ir.Node, a, b BitVec) BitVec {
	out := make(BitVec, len(a))
	for i := range a {
		out[i] = bIte(pool, cond, a[i], b[i])
	}
	return out
}

// zeroExtend / signExtend grow a to width, which must be >= len(a).
func zeroExtend(pool *ir.Pool, a BitVec, width int) BitVec {
	out := make(BitVec, width)
	copy(out, a)
	for i := len(a); i < width; i++ {
		out[i] = pool.False()
	}
	return out
}

func signExtend(pool *ir.Pool, a BitVec, width int) BitVec {
	out := make(BitVec, width)
	copy(out, a)
	sign := a[len(a)-1]
	for i := len(a); i < width; i++ {
		out[i] = sign
	}
	return out
}

// matchWidth zero/sign-extends the narrower of a, b so both reach the
// wider operand's width, per NuSMV's word-arithmetic promotion rule.
func matchWidth(pool *ir.Pool, a, b BitVec, signed bool) (BitVec, BitVec) {
	w := len(a)
	if len(b) > w {
		w = len(b)
	}
	ext := zeroExtend
	if signed {
		ext = signExtend
	}
	return ext(pool, a, w), ext(pool, b, w)
}

// fullAdder returns (sum, carry-out) for one bit position.
func fullAdder(pool *ir.Pool, a, b, cin *ir.Node) (sum, cout *ir.Node) {
	axb := bXor(pool, a, b)
	sum = bXor(pool, axb, cin)
	cout = bOr(pool, bAnd(pool, a, b), bAnd(pool, axb, cin))
	return sum, cout
}

// rippleAdd adds two equal-width vectors with carry-in cin, returning
// the sum (same width, carry-out discarded per NuSMV's wraparound word
// arithmetic) and the final carry-out for callers that want it
// (overflow detection, subtraction's borrow).
func rippleAdd(pool *ir.Pool, a, b BitVec, cin *ir.Node) (BitVec, *ir.Node) {
	n := len(a)
	sum := make(BitVec, n)
	carry := cin
	for i := 0; i < n; i++ {
		s, c := fullAdder(pool, a[i], b[i], carry)
		sum[i] = s
		carry = c
	}
	return sum, carry
}

func twosComplement(pool *ir.Pool, a BitVec) BitVec {
	inv := bvNot(pool, a)
	one := make(BitVec, len(a))
	one[0] = pool.True()
	for i := 1; i < len(one); i++ {
		one[i] = pool.False()
	}
	sum, _ := rippleAdd(pool, inv, one, pool.False())
	return sum
}

// rippleSub computes a - b (mod 2^width) via two's-complement
// addition.
func rippleSub(pool *ir.Pool, a, b BitVec) BitVec {
	sum, _ := rippleAdd(pool, a, twosComplement(pool, b), pool.False())
	return sum
}

func uminus(pool *ir.Pool, a BitVec) BitVec {
	return twosComplement(pool, a)
}

// shiftAddMultiply multiplies two same-width vectors, producing a
// result truncated back to that width (NuSMV word multiplication
// wraps rather than widens).
func shiftAddMultiply(pool *ir.Pool, a, b BitVec) BitVec {
	width := len(a)
	acc := make(BitVec, width)
	for i := range acc {
		acc[i] = pool.False()
	}
	zero := make(BitVec, width)
	for j := range zero {
		zero[j] = pool.False()
	}
	for i := 0; i < width; i++ {
		shifted := make(BitVec, width)
		for j := 0; j < width; j++ {
			if j-i >= 0 {
				shifted[j] = a[j-i]
			} else {
				shifted[j] = pool.False()
			}
		}
		add := bvIte(pool, b[i], shifted, zero)
		sum, _ := rippleAdd(pool, acc, add, pool.False())
		acc = sum
	}
	return acc
}

// restoringDivide performs unsigned restoring division, returning
// (quotient, remainder), both the width of a. Division by zero yields
// an all-ones quotient and a remainder equal to the dividend, the
// conventional NuSMV word-division convention for that edge case.
func restoringDivide(pool *ir.Pool, a, b BitVec) (quotient, remainder BitVec) {
	width := len(a)
	rem := make(BitVec, width)
	for i := range rem {
		rem[i] = pool.False()
	}
	quot := make(BitVec, width)

	isZero := pool.True()
	for _, bit := range b {
		isZero = bAnd(pool, isZero, bNot(pool, bit))
	}

	for i := width - 1; i >= 0; i-- {
		// rem = (rem << 1) | a[i]
		shifted := make(BitVec, width)
		shifted[0] = a[i]
		copy(shifted[1:], rem[:width-1])
		trial := rippleSub(pool, shifted, b)
		ge := bNot(pool, ult(pool, shifted, b))
		rem = bvIte(pool, ge, trial, shifted)
		quot[i] = ge
	}

	allOnes := make(BitVec, width)
	for i := range allOnes {
		allOnes[i] = pool.True()
	}
	quotient = bvIte(pool, isZero, allOnes, quot)
	remainder = bvIte(pool, isZero, a, rem)
	return quotient, remainder
}

func equalBits(pool *ir.Pool, a, b BitVec) *ir.Node {
	eq := pool.True()
	for i := range a {
		eq = bAnd(pool, eq, bIff(pool, a[i], b[i]))
	}
	return eq
}

// ult is an unsigned less-than comparator, MSB-first recursive
// compare: a < b iff at the highest differing bit, a's bit is 0 and
// b's is 1.
func ult(pool *ir.Pool, a, b BitVec) *ir.Node {
	result := pool.False()
	for i := range a {
		lt := bAnd(pool, bNot(pool, a[i]), b[i])
		eq := bIff(pool, a[i], b[i])
		result = bOr(pool, lt, bAnd(pool, eq, result))
	}
	return result
}

func ule(pool *ir.Pool, a, b BitVec) *ir.Node {
	return bOr(pool, ult(pool, a, b), equalBits(pool, a, b))
}

// slt is signed less-than: flip both sign bits and compare unsigned
// (the standard two's-complement trick).
func slt(pool *ir.Pool, a, b BitVec) *ir.Node {
	n := len(a)
	af := append(BitVec(nil), a...)
	bf := append(BitVec(nil), b...)
	af[n-1] = bNot(pool, af[n-1])
	bf[n-1] = bNot(pool, bf[n-1])
	return ult(pool, af, bf)
}

func sle(pool *ir.Pool, a, b BitVec) *ir.Node {
	return bOr(pool, slt(pool, a, b), equalBits(pool, a, b))
}

// shiftFixed builds the fixed (non-dynamic) left/right shift or
// rotate of a by exactly k positions. rotate selects rotate vs plain
// shift; fillSign selects arithmetic (sign-filling) vs logical
// (zero-filling) right shift for the non-rotating cases.
func shiftFixed(pool *ir.Pool, a BitVec, k int, left, rotate, fillSign bool) BitVec {
	n := len(a)
	out := make(BitVec, n)
	if rotate || k < 0 {
		k = k % n
		if k < 0 {
			k += n
		}
	}
	for i := 0; i < n; i++ {
		switch {
		case rotate && left:
			out[i] = a[(i-k+n)%n]
		case rotate && !left:
			out[i] = a[(i+k)%n]
		case left:
			if i-k >= 0 {
				out[i] = a[i-k]
			} else {
				out[i] = pool.False()
			}
		default: // right, non-rotating
			if i+k < n {
				out[i] = a[i+k]
			} else if fillSign {
				out[i] = a[n-1]
			} else {
				out[i] = pool.False()
			}
		}
	}
	return out
}

// shiftDynamic multiplexes shiftFixed over every amount the (bounded)
// amount vector can represent, per spec.md §4.F's "bounded dynamic
// shift handling": amount is itself a bit vector, so the result
// selects the arm whose constant amount matches amount's encoded
// value, defaulting to the largest representable shift if amount
// somehow exceeds the a's width (wrapped for rotate, all-fill
// otherwise).
func shiftDynamic(pool *ir.Pool, a BitVec, amount BitVec, left, rotate, fillSign bool) BitVec {
	n := len(a)
	limit := 1 << uint(len(amount))
	if limit > n && !rotate {
		limit = n + 1
	} else if limit > n {
		limit = n
	}
	result := shiftFixed(pool, a, limit-1, left, rotate, fillSign)
	for k := limit - 2; k >= 0; k-- {
		match := equalBits(pool, amount, constBitVec(pool, big.NewInt(int64(k)), len(amount)))
		result = bvIte(pool, match, shiftFixed(pool, a, k, left, rotate, fillSign), result)
	}
	return result
}
