package symtab

import "fmt"

// ResolveKind tags which variant of ResolveResult was produced
// (spec.md §4.B "ResolveResult is a tagged variant one of: constant,
// state-var, input-var, frozen-var, define, array-define,
// variable-array, parameter, function, ambiguous(error),
// undefined(error)").
type ResolveKind int

const (
	ResolvedConstant ResolveKind = iota
	ResolvedStateVar
	ResolvedInputVar
	ResolvedFrozenVar
	ResolvedDefine
	ResolvedArrayDefine
	ResolvedVariableArray
	ResolvedParameter
	ResolvedFunction
	ResolvedAmbiguous
	ResolvedUndefined
)

// ResolveResult is the outcome of resolve_symbol. It always carries
// the canonical name, even when undefined or ambiguous, "for
// diagnostics" (spec.md §4.B).
type ResolveResult struct {
	Kind  ResolveKind
	Name  string
	Entry *Entry // nil for Ambiguous/Undefined

	// Matches holds every category that matched, in probe order; len
	// > 1 only for Ambiguous.
	Matches []*Entry
}

// ThrowError aborts with a formatted message pointing at the original
// identifier, matching spec.md's "provides throw_error which aborts
// with a formatted message pointing at the original identifier".
// Callers that want a recoverable error instead of a panic should
// check Kind directly and construct their own diagnostic.Error.
func (r ResolveResult) ThrowError() {
	switch r.Kind {
	case ResolvedUndefined:
		panic(fmt.Sprintf("symtab: undefined identifier %q", r.Name))
	case ResolvedAmbiguous:
		panic(fmt.Sprintf("symtab: ambiguous identifier %q (%d matches)", r.Name, len(r.Matches)))
	}
}

func (r ResolveResult) IsError() bool {
	return r.Kind == ResolvedUndefined || r.Kind == ResolvedAmbiguous
}

// probeOrder is the exact category probe sequence confirmed by NuSMV's
// compile/symb_table/SymbTable.h / ResolveSymbol.h (SPEC_FULL.md §12):
// constants, then parameters, then variables, then defines, then
// array-defines, then variable-arrays, then functions.
var probeOrder = []Category{
	CatConstant,
	CatParameter,
	CatVar,
	CatDefine,
	CatArrayDefine,
	CatVariableArray,
	CatFunction,
}

func kindOf(cat Category) ResolveKind {
	switch cat {
	case CatConstant:
		return ResolvedConstant
	case CatStateVar:
		return ResolvedStateVar
	case CatInputVar:
		return ResolvedInputVar
	case CatFrozenVar:
		return ResolvedFrozenVar
	case CatDefine:
		return ResolvedDefine
	case CatArrayDefine:
		return ResolvedArrayDefine
	case CatVariableArray:
		return ResolvedVariableArray
	case CatParameter:
		return ResolvedParameter
	case CatFunction:
		return ResolvedFunction
	}
	return ResolvedUndefined
}

// ResolveName looks up a single already-canonical identifier (the
// portion of resolve_symbol downstream of concat_contexts; see
// package flatten for the full resolve_symbol(expr, context)
// operation that first canonicalizes expr against context).
func (t *Table) ResolveName(name string) ResolveResult {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var matches []*Entry
	for _, cat := range probeOrder {
		if cat == CatVar {
			for _, vc := range []Category{CatStateVar, CatInputVar, CatFrozenVar} {
				if e := t.find(name, vc); e != nil {
					matches = append(matches, e)
				}
			}
			continue
		}
		if e := t.find(name, cat); e != nil {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return ResolveResult{Kind: ResolvedUndefined, Name: name}
	case 1:
		return ResolveResult{Kind: kindOf(matches[0].cat), Name: name, Entry: matches[0], Matches: matches}
	default:
		return ResolveResult{Kind: ResolvedAmbiguous, Name: name, Matches: matches}
	}
}

// find scans every layer (in layer order) for an entry matching name
// under the given category mask, returning the first one found.
// Redeclaration is rejected at Declare time only within one layer, so
// when several layers hold name under cat, the first layer wins.
func (t *Table) find(name string, cat Category) *Entry {
	for _, l := range t.layers {
		if e, ok := l.get(name); ok && e.cat&cat != 0 {
			return e
		}
	}
	return nil
}
