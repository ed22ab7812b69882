package flatten

import (
	"fmt"

	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
	"github.com/go-symcore/symcore/symtype"
)

// Mode selects whether ATOM/DOT references to a define are expanded
// in place or left as a resolved leaf (spec.md §4.D).
type Mode int

const (
	PreserveDefines Mode = iota
	ExpandDefines
)

// TypeOf classifies the type of expr under context, exactly the
// external type-checker collaborator of spec.md §6. The zero
// Flattener falls back to [Flattener.typeOfVar], which only succeeds
// for bare variable references — callers that need full expression
// typing (as CAST_BOOL/CAST_TOINT do for non-variable operands)
// should supply their own.
type TypeOf func(expr, context *ir.Node) (*symtype.Type, error)

type memoKey struct {
	expr    *ir.Node
	context *ir.Node
	mode    Mode
}

// Flattener holds the memo table and "building" cycle-detection set
// for one flattening session. It is not safe for concurrent use,
// matching spec.md §5's single-threaded design.
type Flattener struct {
	pool   *ir.Pool
	table  *symtab.Table
	typeOf TypeOf

	memo     map[memoKey]*ir.Node
	building map[string]bool
}

// New returns a Flattener over pool and table. typeOf may be nil, in
// which case only bare variable references can be classified.
func New(pool *ir.Pool, table *symtab.Table, typeOf TypeOf) *Flattener {
	f := &Flattener{pool: pool, table: table, typeOf: typeOf, memo: make(map[memoKey]*ir.Node), building: make(map[string]bool)}
	if f.typeOf == nil {
		f.typeOf = f.typeOfVar
	}
	return f
}

func (f *Flattener) typeOfVar(expr, context *ir.Node) (*symtype.Type, error) {
	canonical := ConcatContexts(f.pool, context, expr)
	name := canonical.CanonicalName()
	r := f.table.ResolveName(name)
	if r.IsError() || r.Entry == nil || r.Entry.Type == nil {
		return nil, fmt.Errorf("flatten: cannot classify type of %q", name)
	}
	return r.Entry.Type, nil
}

// Flatten recursively produces a new node in which every identifier
// has been replaced by its canonical, context-free form (spec.md
// §4.D flatten_sexp). Results are memoized under (expr, context, mode).
func (f *Flattener) Flatten(expr, context *ir.Node, mode Mode) (*ir.Node, error) {
	if expr.IsNil() {
		return expr, nil
	}
	key := memoKey{expr, context, mode}
	if cached, ok := f.memo[key]; ok {
		return cached, nil
	}
	result, err := f.flatten(expr, context, mode)
	if err != nil {
		return nil, err
	}
	f.memo[key] = result
	return result, nil
}

func (f *Flattener) flatten(expr, context *ir.Node, mode Mode) (*ir.Node, error) {
	switch expr.Tag {
	case ir.ATOM, ir.DOT:
		return f.flattenIdentifier(expr, context, mode)

	case ir.NEXT:
		if expr.Car.Tag == ir.NEXT {
			return nil, fmt.Errorf("flatten: nested NEXT is not allowed")
		}
		inner, err := f.Flatten(expr.Car, context, mode)
		if err != nil {
			return nil, err
		}
		return f.pool.FindNode(ir.NEXT, inner, nil), nil

	case ir.ATTIME:
		inner, err := f.Flatten(expr.Car, context, mode)
		if err != nil {
			return nil, err
		}
		t, ok := f.ResolveNumber(expr.Cdr, context)
		if !ok {
			return nil, fmt.Errorf("flatten: ATTIME requires a constant time")
		}
		return f.pool.FindNode(ir.ATTIME, inner, t), nil

	case ir.ARRAY:
		return f.flattenArray(expr, context, mode)

	case ir.CAST_BOOL:
		return f.flattenCastBool(expr, context, mode)

	case ir.CAST_TOINT:
		return f.flattenCastToInt(expr, context, mode)

	case ir.CASE:
		return f.flattenCase(expr, context, mode)

	case ir.IFTHENELSE:
		return f.flattenIfThenElse(expr, context, mode)

	case ir.BIT_SELECTION:
		w, err := f.Flatten(expr.Car, context, mode)
		if err != nil {
			return nil, err
		}
		hi, okHi := f.ResolveNumber(expr.Cdr.Car, context)
		lo, okLo := f.ResolveNumber(expr.Cdr.Cdr, context)
		if !okHi || !okLo {
			return nil, fmt.Errorf("flatten: bit selection bounds must be constant")
		}
		return f.pool.FindNode(ir.BIT_SELECTION, w, f.pool.FindNode(ir.COLON, hi, lo)), nil

	case ir.EXTEND, ir.WRESIZE:
		return f.flattenNumericParam(expr, context, mode)

	case ir.UWCONST, ir.SWCONST:
		return f.flattenWordConst(expr, context, mode)

	case ir.RANGE, ir.NUMBER, ir.NUMBER_UNSIGNED_WORD, ir.NUMBER_SIGNED_WORD, ir.TRUEEXP, ir.FALSEEXP, ir.FAILURE:
		return expr, nil

	case ir.EQDEF:
		lhs, err := f.flattenAssignLHS(expr.Car, context, mode)
		if err != nil {
			return nil, err
		}
		rhs, err := f.Flatten(expr.Cdr, context, mode)
		if err != nil {
			return nil, err
		}
		return f.pool.FindNode(ir.EQDEF, lhs, rhs), nil

	case ir.CONTEXT:
		// A CONTEXT node concatenates its own prefix onto the caller's
		// context before descending, per concat_contexts' role in
		// resolving relative references (spec.md §4.D).
		combined := ConcatContexts(f.pool, context, expr.Car)
		return f.Flatten(expr.Cdr, combined, mode)

	default:
		car, err := f.Flatten(expr.Car, context, mode)
		if err != nil {
			return nil, err
		}
		if expr.Cdr == nil {
			return f.pool.FindNode(expr.Tag, car, nil), nil
		}
		cdr, err := f.Flatten(expr.Cdr, context, mode)
		if err != nil {
			return nil, err
		}
		return f.pool.FindNode(expr.Tag, car, cdr), nil
	}
}

func (f *Flattener) flattenAssignLHS(lhs, context *ir.Node, mode Mode) (*ir.Node, error) {
	switch lhs.Tag {
	case ir.NEXT, ir.INIT:
		inner, err := f.flattenIdentifier(lhs.Car, context, mode)
		if err != nil {
			return nil, err
		}
		return f.pool.FindNode(lhs.Tag, inner, nil), nil
	default:
		return f.flattenIdentifier(lhs, context, mode)
	}
}

// flattenIdentifier implements the identifier-resolution portion of
// flatten_sexp together with resolve_symbol's algorithm (spec.md
// §4.B, §4.D).
func (f *Flattener) flattenIdentifier(expr, context *ir.Node, mode Mode) (*ir.Node, error) {
	if expr.Tag == ir.ATOM && f.table.IsConstant(expr.Name) {
		return expr, nil
	}

	canonical := ConcatContexts(f.pool, context, expr)
	name := canonical.CanonicalName()
	r := f.table.ResolveName(name)

	switch r.Kind {
	case symtab.ResolvedUndefined:
		return nil, fmt.Errorf("flatten: undefined-symbol: %q", name)
	case symtab.ResolvedAmbiguous:
		return nil, fmt.Errorf("flatten: ambiguous-symbol: %q", name)
	case symtab.ResolvedConstant, symtab.ResolvedStateVar, symtab.ResolvedInputVar,
		symtab.ResolvedFrozenVar, symtab.ResolvedArrayDefine, symtab.ResolvedVariableArray,
		symtab.ResolvedFunction:
		return f.pool.FindAtom(name), nil

	case symtab.ResolvedParameter:
		paramCtx, actual := f.table.GetActualParameter(name)
		return f.Flatten(actual, paramCtx, mode)

	case symtab.ResolvedDefine:
		if mode != ExpandDefines {
			return f.pool.FindAtom(name), nil
		}
		if f.building[name] {
			return nil, fmt.Errorf("flatten: circular-define: %q depends on itself", name)
		}
		f.building[name] = true
		defer delete(f.building, name)
		body := f.table.GetDefineBody(name)
		defCtx := f.table.GetDefineContext(name)
		return f.Flatten(body, defCtx, mode)
	}
	return nil, fmt.Errorf("flatten: internal-inconsistency: unhandled resolve kind %v for %q", r.Kind, name)
}
