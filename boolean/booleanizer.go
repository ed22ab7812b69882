package boolean

import (
	"fmt"
	"math/big"

	"github.com/go-symcore/symcore/flatten"
	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
	"github.com/go-symcore/symcore/symtype"
)

// Booleanizer implements expr2bexpr (spec.md §4.F): it turns an
// already-flattened expression into an equivalent pure propositional
// formula over an Encoding's synthetic bit atoms.
//
// Mirrors flatten.Flattener's shape: a stateful type holding the pool,
// table, and two memo tables (one for boolean-result subexpressions,
// one for word/enum-result bit vectors), plus a "building" set for
// define-cycle detection exactly as flatten and deps both do.
type Booleanizer struct {
	pool     *ir.Pool
	table    *symtab.Table
	enc      *Encoding
	detLayer *symtab.Layer // accepted for API symmetry; see New's doc comment

	bmemo    map[bmemoKey]*ir.Node
	vmemo    map[vmemoKey]bitsResult
	building map[string]bool
}

type bmemoKey struct {
	expr, context *ir.Node
	inNext        bool
}

type vmemoKey struct {
	expr, context *ir.Node
	inNext        bool
	hint          *symtype.Type
}

type bitsResult struct {
	bits BitVec
	typ  *symtype.Type
}

// New builds a Booleanizer over a precomputed Encoding. detLayer
// mirrors spec.md §4.F rule 3's det_layer parameter, the layer fresh
// determinization bits get declared into when a scalar BDD/ADD
// fallthrough needs one; this package's bit-vector-only scalar
// encoding (doc.go) never reaches that case, so detLayer is currently
// unused and accepted only to keep the constructor's shape aligned
// with the spec signature for a future BDD-backed scalar domain.
func New(pool *ir.Pool, table *symtab.Table, enc *Encoding, detLayer *symtab.Layer) *Booleanizer {
	return &Booleanizer{
		pool: pool, table: table, enc: enc, detLayer: detLayer,
		bmemo: make(map[bmemoKey]*ir.Node), vmemo: make(map[vmemoKey]bitsResult),
		building: make(map[string]bool),
	}
}

// Expr2Bexpr is the boolean-result entry point (spec.md §4.F).
func (b *Booleanizer) Expr2Bexpr(expr, context *ir.Node) (*ir.Node, error) {
	return b.bexpr(expr, context, false)
}

// BooleanizeAssignment builds the propositional equation for one
// variable assignment (either an init/invar constraint or a next
// equation) drawn from a flattened hierarchy.Flat's InitAssign,
// InvarAssign, or NextAssign map: "var <-> bexpr(rhs)" for a boolean
// variable, or per-bit equality for a word/enum variable (spec.md
// §4.F rule 6, the EQDEF rewriting rules, applied at the level the
// flattened hierarchy already presents assignments at rather than by
// pattern-matching a raw EQDEF/NEXT node shape).
func (b *Booleanizer) BooleanizeAssignment(name string, rhs, context *ir.Node, isNext bool) (*ir.Node, error) {
	typ := b.table.GetVarType(name)
	if typ.Kind == symtype.Boolean {
		lbit, _, err := b.enc.BitsOf(name)
		if err != nil {
			return nil, err
		}
		left := lbit[0]
		if isNext {
			left = b.pool.FindNode(ir.NEXT, left, nil)
		}
		right, err := b.bexpr(rhs, context, false)
		if err != nil {
			return nil, err
		}
		return bIff(b.pool, left, right), nil
	}

	lv, _, err := b.enc.BitsOf(name)
	if err != nil {
		return nil, err
	}
	if isNext {
		lv = bvNext(b.pool, lv)
	}
	rv, _, err := b.bits(rhs, context, false, typ)
	if err != nil {
		return nil, err
	}
	lv, rv = matchWidth(b.pool, lv, rv, typ.Kind == symtype.SignedWord)
	return equalBits(b.pool, lv, rv), nil
}

func bvNext(pool *ir.Pool, v BitVec) BitVec {
	out := make(BitVec, len(v))
	for i, bit := range v {
		out[i] = pool.FindNode(ir.NEXT, bit, nil)
	}
	return out
}

// --- boolean-result dispatch ---

func (b *Booleanizer) bexpr(expr, context *ir.Node, inNext bool) (*ir.Node, error) {
	if expr.IsNil() {
		return expr, nil
	}
	key := bmemoKey{expr, context, inNext}
	if v, ok := b.bmemo[key]; ok {
		return v, nil
	}
	result, err := b.bexprDispatch(expr, context, inNext)
	if err != nil {
		return nil, err
	}
	b.bmemo[key] = result
	return result, nil
}

func (b *Booleanizer) bexprDispatch(expr, context *ir.Node, inNext bool) (*ir.Node, error) {
	switch expr.Tag {
	case ir.TRUEEXP, ir.FALSEEXP:
		return expr, nil

	case ir.NOT:
		l, err := b.bexpr(expr.Car, context, inNext)
		if err != nil {
			return nil, err
		}
		return bNot(b.pool, l), nil

	case ir.AND:
		l, err := b.bexpr(expr.Car, context, inNext)
		if err != nil {
			return nil, err
		}
		if l.Tag == ir.FALSEEXP {
			return b.pool.False(), nil
		}
		r, err := b.bexpr(expr.Cdr, context, inNext)
		if err != nil {
			return nil, err
		}
		return bAnd(b.pool, l, r), nil

	case ir.OR:
		l, err := b.bexpr(expr.Car, context, inNext)
		if err != nil {
			return nil, err
		}
		if l.Tag == ir.TRUEEXP {
			return b.pool.True(), nil
		}
		r, err := b.bexpr(expr.Cdr, context, inNext)
		if err != nil {
			return nil, err
		}
		return bOr(b.pool, l, r), nil

	case ir.IMPLIES:
		l, err := b.bexpr(expr.Car, context, inNext)
		if err != nil {
			return nil, err
		}
		if l.Tag == ir.FALSEEXP {
			return b.pool.True(), nil
		}
		r, err := b.bexpr(expr.Cdr, context, inNext)
		if err != nil {
			return nil, err
		}
		if l.Tag == ir.TRUEEXP {
			return r, nil
		}
		return bOr(b.pool, bNot(b.pool, l), r), nil

	case ir.IFF, ir.XOR:
		l, err := b.bexpr(expr.Car, context, inNext)
		if err != nil {
			return nil, err
		}
		r, err := b.bexpr(expr.Cdr, context, inNext)
		if err != nil {
			return nil, err
		}
		if expr.Tag == ir.IFF {
			return bIff(b.pool, l, r), nil
		}
		return bXor(b.pool, l, r), nil

	case ir.EQUAL, ir.NOTEQUAL, ir.LT, ir.LE, ir.GT, ir.GE:
		return b.compare(expr.Tag, expr.Car, expr.Cdr, context, inNext)

	case ir.NEXT:
		if inNext {
			return nil, fmt.Errorf("boolean: nested NEXT is not a valid expression shape")
		}
		return b.bexpr(expr.Car, context, true)

	case ir.ATTIME:
		return b.bexpr(expr.Car, context, inNext)

	case ir.CASE:
		return b.bexprCase(expr, context, inNext)

	case ir.IFTHENELSE:
		cond, err := b.bexpr(expr.Car, context, inNext)
		if err != nil {
			return nil, err
		}
		then, err := b.bexpr(expr.Cdr.Car, context, inNext)
		if err != nil {
			return nil, err
		}
		els, err := b.bexpr(expr.Cdr.Cdr, context, inNext)
		if err != nil {
			return nil, err
		}
		return bIte(b.pool, cond, then, els), nil

	case ir.ATOM, ir.DOT:
		return b.bexprIdentifier(expr, context, inNext)

	default:
		return nil, fmt.Errorf("boolean: %v is not a propositional connective", expr.Tag)
	}
}

// bexprCase walks a CASE arm chain. The terminal FAILURE leaf is
// logically unreachable in a well-formed model (its guard conditions
// are supposed to be exhaustive); rather than refusing to build a
// formula at all, it contributes False, matching an arbitrary-but-
// fixed don't-care.
func (b *Booleanizer) bexprCase(expr, context *ir.Node, inNext bool) (*ir.Node, error) {
	if expr.Tag == ir.FAILURE {
		return b.pool.False(), nil
	}
	if expr.Tag != ir.CASE {
		return nil, fmt.Errorf("boolean: internal-inconsistency: CASE chain missing terminal FAILURE leaf")
	}
	arm := expr.Car
	cond, err := b.bexpr(arm.Car, context, inNext)
	if err != nil {
		return nil, err
	}
	val, err := b.bexpr(arm.Cdr, context, inNext)
	if err != nil {
		return nil, err
	}
	rest, err := b.bexprCase(expr.Cdr, context, inNext)
	if err != nil {
		return nil, err
	}
	return bIte(b.pool, cond, val, rest), nil
}

func (b *Booleanizer) bexprIdentifier(expr, context *ir.Node, inNext bool) (*ir.Node, error) {
	canonical := flatten.ConcatContexts(b.pool, context, expr)
	name := canonical.CanonicalName()
	r := b.table.ResolveName(name)

	switch r.Kind {
	case symtab.ResolvedUndefined:
		return nil, fmt.Errorf("boolean: undefined-symbol: %q", name)
	case symtab.ResolvedAmbiguous:
		return nil, fmt.Errorf("boolean: ambiguous-symbol: %q", name)
	case symtab.ResolvedConstant:
		return nil, fmt.Errorf("boolean: bare constant %q has no boolean meaning", name)
	case symtab.ResolvedParameter:
		paramCtx, actual := b.table.GetActualParameter(name)
		return b.bexpr(actual, paramCtx, inNext)
	case symtab.ResolvedDefine:
		if b.building[name] {
			return nil, fmt.Errorf("boolean: circular-define: %q depends on itself", name)
		}
		b.building[name] = true
		defer delete(b.building, name)
		body := b.table.GetDefineBody(name)
		defCtx := b.table.GetDefineContext(name)
		return b.bexpr(body, defCtx, inNext)
	case symtab.ResolvedStateVar, symtab.ResolvedInputVar, symtab.ResolvedFrozenVar:
		if r.Entry.Type.Kind != symtype.Boolean {
			return nil, fmt.Errorf("boolean: type-mismatch: %q is not boolean-typed", name)
		}
		bits, _, err := b.enc.BitsOf(name)
		if err != nil {
			return nil, err
		}
		if inNext {
			return b.pool.FindNode(ir.NEXT, bits[0], nil), nil
		}
		return bits[0], nil
	default:
		return nil, fmt.Errorf("boolean: %q is not a scalar boolean reference", name)
	}
}

// compare dispatches EQUAL/NOTEQUAL/LT/LE/GT/GE: boolean operands
// reduce to IFF/XOR; everything else goes through the bit-vector
// comparators.
func (b *Booleanizer) compare(tag ir.Tag, left, right, context *ir.Node, inNext bool) (*ir.Node, error) {
	if (tag == ir.EQUAL || tag == ir.NOTEQUAL) && (b.looksBoolean(left, context) || b.looksBoolean(right, context)) {
		lb, err := b.bexpr(left, context, inNext)
		if err != nil {
			return nil, err
		}
		rb, err := b.bexpr(right, context, inNext)
		if err != nil {
			return nil, err
		}
		eq := bIff(b.pool, lb, rb)
		if tag == ir.NOTEQUAL {
			return bNot(b.pool, eq), nil
		}
		return eq, nil
	}

	lv, lty, lerr := b.bits(left, context, inNext, nil)
	rv, rty, rerr := b.bits(right, context, inNext, nil)
	if lerr != nil && rerr == nil {
		lv, lty, lerr = b.bits(left, context, inNext, rty)
	}
	if rerr != nil && lerr == nil {
		rv, rty, rerr = b.bits(right, context, inNext, lty)
	}
	if lerr != nil {
		return nil, lerr
	}
	if rerr != nil {
		return nil, rerr
	}
	signed := (lty != nil && lty.Kind == symtype.SignedWord) || (rty != nil && rty.Kind == symtype.SignedWord)
	lv, rv = matchWidth(b.pool, lv, rv, signed)

	switch tag {
	case ir.EQUAL:
		return equalBits(b.pool, lv, rv), nil
	case ir.NOTEQUAL:
		return bNot(b.pool, equalBits(b.pool, lv, rv)), nil
	case ir.LT:
		if signed {
			return slt(b.pool, lv, rv), nil
		}
		return ult(b.pool, lv, rv), nil
	case ir.LE:
		if signed {
			return sle(b.pool, lv, rv), nil
		}
		return ule(b.pool, lv, rv), nil
	case ir.GT:
		if signed {
			return bNot(b.pool, sle(b.pool, lv, rv)), nil
		}
		return bNot(b.pool, ule(b.pool, lv, rv)), nil
	case ir.GE:
		if signed {
			return bNot(b.pool, slt(b.pool, lv, rv)), nil
		}
		return bNot(b.pool, ult(b.pool, lv, rv)), nil
	}
	return nil, fmt.Errorf("boolean: internal-inconsistency: unhandled comparator %v", tag)
}

// looksBoolean reports whether expr is a bare identifier resolving to
// a boolean-typed variable, the only case where this package can tell
// a comparison is over booleans without a type-checker collaborator.
func (b *Booleanizer) looksBoolean(expr, context *ir.Node) bool {
	if expr.Tag != ir.ATOM && expr.Tag != ir.DOT {
		return false
	}
	canonical := flatten.ConcatContexts(b.pool, context, expr)
	r := b.table.ResolveName(canonical.CanonicalName())
	switch r.Kind {
	case symtab.ResolvedStateVar, symtab.ResolvedInputVar, symtab.ResolvedFrozenVar:
		return r.Entry.Type.Kind == symtype.Boolean
	}
	return false
}

// --- word/enum-result dispatch ---

// bits implements the word-and-finite-integer half of expr2bexpr
// (spec.md §4.F rule 2; numeric enums per this package's
// simplification, see doc.go). hint supplies the peer operand's type
// when expr is a bare symbolic-enum literal whose own type cannot be
// determined in isolation (constants carry no type in this symbol
// table, spec.md §3).
func (b *Booleanizer) bits(expr, context *ir.Node, inNext bool, hint *symtype.Type) (BitVec, *symtype.Type, error) {
	if expr.IsNil() {
		return nil, nil, fmt.Errorf("boolean: empty expression has no bit encoding")
	}
	key := vmemoKey{expr, context, inNext, hint}
	if cached, ok := b.vmemo[key]; ok {
		return cached.bits, cached.typ, nil
	}
	v, t, err := b.bitsDispatch(expr, context, inNext, hint)
	if err != nil {
		return nil, nil, err
	}
	b.vmemo[key] = bitsResult{v, t}
	return v, t, nil
}

func (b *Booleanizer) bitsDispatch(expr, context *ir.Node, inNext bool, hint *symtype.Type) (BitVec, *symtype.Type, error) {
	switch expr.Tag {
	case ir.NUMBER:
		n := new(big.Int)
		n.SetString(expr.Int, 10)
		width := n.BitLen()
		if width == 0 {
			width = 1
		}
		if hint != nil {
			width = enumWidth(len(hint.Values))
			if width < n.BitLen() {
				width = n.BitLen()
			}
		}
		return constBitVec(b.pool, n, width), hint, nil

	case ir.NUMBER_UNSIGNED_WORD, ir.NUMBER_SIGNED_WORD:
		n := new(big.Int)
		n.SetString(expr.Int, 10)
		signed := expr.Tag == ir.NUMBER_SIGNED_WORD
		typ := symtype.NewUnsignedWord(expr.Width)
		if signed {
			typ = symtype.NewSignedWord(expr.Width)
		}
		return constBitVec(b.pool, n, expr.Width), typ, nil

	case ir.ATOM, ir.DOT:
		return b.bitsIdentifier(expr, context, inNext, hint)

	case ir.NEXT:
		return b.bits(expr.Car, context, true, hint)

	case ir.ATTIME:
		return b.bits(expr.Car, context, inNext, hint)

	case ir.UMINUS:
		v, t, err := b.bits(expr.Car, context, inNext, hint)
		if err != nil {
			return nil, nil, err
		}
		if err := b.requireArithmetic(t); err != nil {
			return nil, nil, err
		}
		return uminus(b.pool, v), sameKindWidth(t, len(v)), nil

	case ir.PLUS, ir.MINUS, ir.TIMES, ir.DIVIDE, ir.MOD:
		return b.bitsArith(expr, context, inNext, hint)

	case ir.AND, ir.OR, ir.XOR:
		lv, lt, err := b.bits(expr.Car, context, inNext, hint)
		if err != nil {
			return nil, nil, err
		}
		rv, rt, err := b.bits(expr.Cdr, context, inNext, hint)
		if err != nil {
			return nil, nil, err
		}
		if err := b.requireWord(lt); err != nil {
			return nil, nil, err
		}
		if err := b.requireWord(rt); err != nil {
			return nil, nil, err
		}
		lv, rv = matchWidth(b.pool, lv, rv, lt.Kind == symtype.SignedWord)
		op := bAnd
		if expr.Tag == ir.OR {
			op = bOr
		} else if expr.Tag == ir.XOR {
			op = bXor
		}
		return bvZip(b.pool, lv, rv, op), lt, nil

	case ir.NOT:
		v, t, err := b.bits(expr.Car, context, inNext, hint)
		if err != nil {
			return nil, nil, err
		}
		return bvNot(b.pool, v), t, nil

	case ir.CONCATENATION:
		lv, _, err := b.bits(expr.Car, context, inNext, nil)
		if err != nil {
			return nil, nil, err
		}
		rv, _, err := b.bits(expr.Cdr, context, inNext, nil)
		if err != nil {
			return nil, nil, err
		}
		// CONCAT(l, r): l occupies the high bits, r the low bits;
		// BitVec index 0 is the LSB, so r's bits come first.
		out := append(append(BitVec(nil), rv...), lv...)
		return out, symtype.NewUnsignedWord(len(out)), nil

	case ir.BIT_SELECTION:
		v, _, err := b.bits(expr.Car, context, inNext, nil)
		if err != nil {
			return nil, nil, err
		}
		hi, lo := expr.Cdr.Car, expr.Cdr.Cdr
		hiN, loN := parseIntLiteral(hi), parseIntLiteral(lo)
		if loN < 0 || hiN >= len(v) || loN > hiN {
			return nil, nil, fmt.Errorf("boolean: bit-selection out-of-bounds: [%d:%d] of width %d", hiN, loN, len(v))
		}
		out := append(BitVec(nil), v[loN:hiN+1]...)
		return out, symtype.NewUnsignedWord(len(out)), nil

	case ir.EXTEND:
		v, t, err := b.bits(expr.Car, context, inNext, nil)
		if err != nil {
			return nil, nil, err
		}
		if err := b.requireWord(t); err != nil {
			return nil, nil, err
		}
		delta := parseIntLiteral(expr.Cdr)
		width := len(v) + delta
		var out BitVec
		if t.Kind == symtype.SignedWord {
			out = signExtend(b.pool, v, width)
		} else {
			out = zeroExtend(b.pool, v, width)
		}
		return out, sameKindWidth(t, width), nil

	case ir.WRESIZE:
		v, t, err := b.bits(expr.Car, context, inNext, nil)
		if err != nil {
			return nil, nil, err
		}
		if err := b.requireWord(t); err != nil {
			return nil, nil, err
		}
		n := parseIntLiteral(expr.Cdr)
		var out BitVec
		if n <= len(v) {
			out = append(BitVec(nil), v[:n]...)
		} else if t.Kind == symtype.SignedWord {
			out = signExtend(b.pool, v, n)
		} else {
			out = zeroExtend(b.pool, v, n)
		}
		return out, sameKindWidth(t, n), nil

	case ir.CAST_TOINT:
		// Word-operand CAST_TOINT is the case flatten deliberately
		// deferred (flatten/ops.go): viewing a word as an integer is
		// identity at the bit level.
		return b.bits(expr.Car, context, inNext, hint)

	case ir.LSHIFT, ir.RSHIFT, ir.LROTATE, ir.RROTATE:
		return b.bitsShift(expr, context, inNext)

	case ir.CASE:
		return b.bitsCase(expr, context, inNext, hint)

	case ir.IFTHENELSE:
		cond, err := b.bexpr(expr.Car, context, inNext)
		if err != nil {
			return nil, nil, err
		}
		tv, tt, err := b.bits(expr.Cdr.Car, context, inNext, hint)
		if err != nil {
			return nil, nil, err
		}
		ev, _, err := b.bits(expr.Cdr.Cdr, context, inNext, tt)
		if err != nil {
			return nil, nil, err
		}
		tv, ev = matchWidth(b.pool, tv, ev, tt.Kind == symtype.SignedWord)
		return bvIte(b.pool, cond, tv, ev), tt, nil
	}

	return nil, nil, fmt.Errorf("boolean: %v has no word/enum bit encoding", expr.Tag)
}

func (b *Booleanizer) bitsArith(expr, context *ir.Node, inNext bool, hint *symtype.Type) (BitVec, *symtype.Type, error) {
	lv, lt, lerr := b.bits(expr.Car, context, inNext, nil)
	rv, rt, rerr := b.bits(expr.Cdr, context, inNext, nil)
	if (lerr != nil || lt == nil) && rerr == nil && rt != nil {
		lv, lt, lerr = b.bits(expr.Car, context, inNext, rt)
	}
	if (rerr != nil || rt == nil) && lerr == nil && lt != nil {
		rv, rt, rerr = b.bits(expr.Cdr, context, inNext, lt)
	}
	if lerr != nil {
		return nil, nil, lerr
	}
	if rerr != nil {
		return nil, nil, rerr
	}
	if err := b.requireArithmetic(lt); err != nil {
		return nil, nil, err
	}
	if err := b.requireArithmetic(rt); err != nil {
		return nil, nil, err
	}
	signed := lt.Kind == symtype.SignedWord || rt.Kind == symtype.SignedWord
	lv, rv = matchWidth(b.pool, lv, rv, signed)
	typ := sameKindWidth(lt, len(lv))

	switch expr.Tag {
	case ir.PLUS:
		sum, _ := rippleAdd(b.pool, lv, rv, b.pool.False())
		return sum, typ, nil
	case ir.MINUS:
		return rippleSub(b.pool, lv, rv), typ, nil
	case ir.TIMES:
		return shiftAddMultiply(b.pool, lv, rv), typ, nil
	case ir.DIVIDE:
		q, _ := restoringDivide(b.pool, lv, rv)
		return q, typ, nil
	case ir.MOD:
		_, r := restoringDivide(b.pool, lv, rv)
		return r, typ, nil
	}
	return nil, nil, fmt.Errorf("boolean: internal-inconsistency: unhandled arithmetic tag %v", expr.Tag)
}

// requireWord rejects bitwise/shift/bit-selection operators on
// anything but a genuine word: those operators have no NuSMV meaning
// on an enum's index encoding.
func (b *Booleanizer) requireWord(t *symtype.Type) error {
	if t == nil {
		return fmt.Errorf("boolean: cannot determine operand type")
	}
	if t.Kind != symtype.SignedWord && t.Kind != symtype.UnsignedWord {
		return fmt.Errorf("boolean: bitwise/shift operators are undefined on %s operands", t.Kind)
	}
	return nil
}

// requireArithmetic additionally accepts a numeric enum (this
// package's finite-integer-range representation, doc.go), whose bit
// vector is reused directly as an arithmetic operand.
func (b *Booleanizer) requireArithmetic(t *symtype.Type) error {
	if t == nil {
		return fmt.Errorf("boolean: cannot determine operand type")
	}
	if t.Kind == symtype.SignedWord || t.Kind == symtype.UnsignedWord {
		return nil
	}
	if isNumericEnum(t) {
		return nil
	}
	return fmt.Errorf("boolean: arithmetic is undefined on %s operands", t.Kind)
}

func (b *Booleanizer) bitsShift(expr, context *ir.Node, inNext bool) (BitVec, *symtype.Type, error) {
	v, t, err := b.bits(expr.Car, context, inNext, nil)
	if err != nil {
		return nil, nil, err
	}
	if err := b.requireWord(t); err != nil {
		return nil, nil, err
	}
	left := expr.Tag == ir.LSHIFT || expr.Tag == ir.LROTATE
	rotate := expr.Tag == ir.LROTATE || expr.Tag == ir.RROTATE
	fillSign := !rotate && expr.Tag == ir.RSHIFT && t.Kind == symtype.SignedWord

	if expr.Cdr.Tag == ir.NUMBER || expr.Cdr.Tag == ir.NUMBER_UNSIGNED_WORD || expr.Cdr.Tag == ir.NUMBER_SIGNED_WORD {
		k := parseIntLiteral(expr.Cdr)
		return shiftFixed(b.pool, v, k, left, rotate, fillSign), t, nil
	}
	amount, _, err := b.bits(expr.Cdr, context, inNext, nil)
	if err != nil {
		return nil, nil, err
	}
	return shiftDynamic(b.pool, v, amount, left, rotate, fillSign), t, nil
}

// bitsCase mirrors bexprCase's FAILURE handling: the terminal leaf is
// unreachable in a well-formed model and contributes an all-zero
// don't-care of the chain's established width rather than refusing to
// build a formula.
func (b *Booleanizer) bitsCase(expr, context *ir.Node, inNext bool, hint *symtype.Type) (BitVec, *symtype.Type, error) {
	if expr.Tag == ir.FAILURE {
		width := 1
		if hint != nil {
			width = widthOf(hint)
		}
		zero := make(BitVec, width)
		for i := range zero {
			zero[i] = b.pool.False()
		}
		return zero, hint, nil
	}
	if expr.Tag != ir.CASE {
		return nil, nil, fmt.Errorf("boolean: internal-inconsistency: CASE chain missing terminal FAILURE leaf")
	}
	arm := expr.Car
	cond, err := b.bexpr(arm.Car, context, inNext)
	if err != nil {
		return nil, nil, err
	}
	val, typ, err := b.bits(arm.Cdr, context, inNext, hint)
	if err != nil {
		return nil, nil, err
	}
	rest, _, err := b.bitsCase(expr.Cdr, context, inNext, typ)
	if err != nil {
		return nil, nil, err
	}
	rest, val = matchWidth(b.pool, rest, val, typ.Kind == symtype.SignedWord)
	return bvIte(b.pool, cond, val, rest), typ, nil
}

func (b *Booleanizer) bitsIdentifier(expr, context *ir.Node, inNext bool, hint *symtype.Type) (BitVec, *symtype.Type, error) {
	canonical := flatten.ConcatContexts(b.pool, context, expr)
	name := canonical.CanonicalName()
	r := b.table.ResolveName(name)

	switch r.Kind {
	case symtab.ResolvedUndefined:
		return nil, nil, fmt.Errorf("boolean: undefined-symbol: %q", name)
	case symtab.ResolvedAmbiguous:
		return nil, nil, fmt.Errorf("boolean: ambiguous-symbol: %q", name)
	case symtab.ResolvedConstant:
		if hint == nil {
			return nil, nil, fmt.Errorf("boolean: bare symbolic constant %q needs a typed peer operand to resolve", name)
		}
		idx, ok := literalIndex(hint, name)
		if !ok {
			return nil, nil, fmt.Errorf("boolean: %q is not a member of the expected enum domain %v", name, hint.Values)
		}
		return constBitVec(b.pool, big.NewInt(int64(idx)), enumWidth(len(hint.Values))), hint, nil
	case symtab.ResolvedParameter:
		paramCtx, actual := b.table.GetActualParameter(name)
		return b.bits(actual, paramCtx, inNext, hint)
	case symtab.ResolvedDefine:
		if b.building[name] {
			return nil, nil, fmt.Errorf("boolean: circular-define: %q depends on itself", name)
		}
		b.building[name] = true
		defer delete(b.building, name)
		body := b.table.GetDefineBody(name)
		defCtx := b.table.GetDefineContext(name)
		return b.bits(body, defCtx, inNext, hint)
	case symtab.ResolvedStateVar, symtab.ResolvedInputVar, symtab.ResolvedFrozenVar:
		v, typ, err := b.enc.BitsOf(name)
		if err != nil {
			return nil, nil, err
		}
		if typ.Kind == symtype.Boolean {
			return nil, nil, fmt.Errorf("boolean: type-mismatch: %q is boolean-typed, not word/enum", name)
		}
		if inNext {
			v = bvNext(b.pool, v)
		}
		return v, typ, nil
	}
	return nil, nil, fmt.Errorf("boolean: %q is not a scalar word/enum reference", name)
}

func widthOf(t *symtype.Type) int {
	switch t.Kind {
	case symtype.SignedWord, symtype.UnsignedWord:
		return t.Width
	case symtype.Enum:
		return enumWidth(len(t.Values))
	default:
		return 1
	}
}

func sameKindWidth(t *symtype.Type, width int) *symtype.Type {
	if t.Kind == symtype.SignedWord {
		return symtype.NewSignedWord(width)
	}
	return symtype.NewUnsignedWord(width)
}

func parseIntLiteral(n *ir.Node) int {
	v := new(big.Int)
	v.SetString(n.Int, 10)
	return int(v.Int64())
}
