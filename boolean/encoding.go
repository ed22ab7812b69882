package boolean

import (
	"fmt"
	"math/big"
	"math/bits"
	"strconv"

	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
	"github.com/go-symcore/symcore/symtype"
)

// BitVec is a fixed-width bit vector, index 0 the least significant
// bit. Each element is a boolean-valued ir.Node: a fresh ATOM leaf for
// a variable's own bit, or a composite AND/OR/NOT/IFF formula for a
// computed value.
type BitVec []*ir.Node

func (v BitVec) Width() int { return len(v) }

// Encoding assigns every finite-range state/input/frozen variable a
// bit vector of synthetic boolean leaves (spec.md §4.F's "word
// operand bit-array encoding", generalized to also cover enums and
// finite integer ranges per this package's doc comment). Boolean
// variables get a one-element vector holding their own atom, so no
// separate case is needed at use sites.
type Encoding struct {
	pool  *ir.Pool
	table *symtab.Table

	bits  map[string]BitVec
	types map[string]*symtype.Type
}

// NewEncoding scans every declared state, input, and frozen variable
// and precomputes its bit vector. Variables whose type is not finite
// (real, unbounded integer, or a word when wordUnbooleanizable is
// true) are skipped; looking one up later with BitsOf reports an
// error rather than panicking, so callers that never reach a
// non-finite variable never notice.
func NewEncoding(pool *ir.Pool, table *symtab.Table, wordUnbooleanizable bool) *Encoding {
	e := &Encoding{pool: pool, table: table, bits: make(map[string]BitVec), types: make(map[string]*symtype.Type)}
	for _, entry := range table.Iter(symtab.CatVar, nil) {
		if !entry.Type.IsFiniteRange(wordUnbooleanizable) {
			continue
		}
		e.types[entry.Name] = entry.Type
		e.bits[entry.Name] = e.build(entry.Name, entry.Type)
	}
	return e
}

func (e *Encoding) build(name string, t *symtype.Type) BitVec {
	switch t.Kind {
	case symtype.Boolean:
		return BitVec{e.pool.FindAtom(name)}
	case symtype.SignedWord, symtype.UnsignedWord:
		return e.freshBits(name, t.Width)
	case symtype.Enum:
		return e.freshBits(name, enumWidth(len(t.Values)))
	default:
		return nil
	}
}

func (e *Encoding) freshBits(name string, width int) BitVec {
	if width < 1 {
		width = 1
	}
	v := make(BitVec, width)
	for i := 0; i < width; i++ {
		v[i] = e.pool.FindAtom(fmt.Sprintf("%s#%d", name, i))
	}
	return v
}

// enumWidth returns the number of bits needed to binary-encode n
// distinct values (at least 1, so a singleton enum still has a bit).
func enumWidth(n int) int {
	if n <= 1 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// BitsOf returns the precomputed bit vector and declared type for a
// finite-range variable.
func (e *Encoding) BitsOf(name string) (BitVec, *symtype.Type, error) {
	v, ok := e.bits[name]
	if !ok {
		return nil, nil, fmt.Errorf("boolean: %q has no finite-range bit encoding", name)
	}
	return v, e.types[name], nil
}

// DomainConstraints returns the conjunction of one "index < n" side
// constraint per enum-typed variable whose cardinality is not a power
// of two — the mutex-equivalent this package's binary index encoding
// needs (SPEC_FULL.md §12): enumWidth(n) bits span 2^enumWidth(n)
// codes, and whenever n isn't itself a power of two some of those
// codes don't name any declared value. Left unconstrained, a consumer
// solving the resulting formula (e.g. cnf+gini) could pick one of
// those codes and "satisfy" a formula no integer-semantics assignment
// actually satisfies. Power-of-two enums need no constraint: every
// code is already in range. Callers conjoin the result with whatever
// else constrains the model (e.g. hierarchy.Flat's invar).
func (e *Encoding) DomainConstraints(pool *ir.Pool) *ir.Node {
	result := pool.True()
	for name, t := range e.types {
		if t.Kind != symtype.Enum {
			continue
		}
		n := len(t.Values)
		width := enumWidth(n)
		if 1<<uint(width) == n {
			continue
		}
		bound := constBitVec(pool, big.NewInt(int64(n)), width)
		result = bAnd(pool, result, ult(pool, e.bits[name], bound))
	}
	return result
}

// isNumericEnum reports whether every value of an enum type parses as
// a base-10 integer literal. Such an enum's bit vector already IS its
// index in binary (Encoding.build); arithmetic on it reuses the word
// circuits directly, which is exact when Values is the contiguous
// range "0..n-1" a NuSMV "lo..hi" integer subrange normalizes to, and
// an index-arithmetic approximation otherwise (recorded in doc.go).
func isNumericEnum(t *symtype.Type) bool {
	if t.Kind != symtype.Enum {
		return false
	}
	for _, v := range t.Values {
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			return false
		}
	}
	return true
}

// literalIndex finds name's position within t.Values, the index used
// both as a numeric-enum's arithmetic value and as a symbolic enum's
// binary code.
func literalIndex(t *symtype.Type, name string) (int, bool) {
	for i, v := range t.Values {
		if v == name {
			return i, true
		}
	}
	return 0, false
}
