package deps

import (
	"fmt"

	"github.com/go-symcore/symcore/flatten"
	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
)

// Set is the dependency result: canonical variable name to its
// representative node (a bare ATOM for an ordinary reference, or a
// NEXT/ATTIME wrapper when preserve_time keeps the occurrence form).
type Set map[string]*ir.Node

// Names returns the set's keys in no particular order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return out
}

func (s Set) add(name string, node *ir.Node) {
	if _, ok := s[name]; !ok {
		s[name] = node
	}
}

func unionInto(dst, src Set) {
	for name, node := range src {
		dst.add(name, node)
	}
}

type memoKey struct {
	expr         *ir.Node
	context      *ir.Node
	filter       Filter
	preserveTime bool
	currentTime  *ir.Node
}

// Analyzer holds the memo table and "building" cycle-detection set
// for one dependency-analysis session (spec.md §4.E).
type Analyzer struct {
	pool  *ir.Pool
	table *symtab.Table

	memo     map[memoKey]Set
	building map[string]bool
}

func New(pool *ir.Pool, table *symtab.Table) *Analyzer {
	return &Analyzer{pool: pool, table: table, memo: make(map[memoKey]Set), building: make(map[string]bool)}
}

// GetDependencies implements get_dependencies(expr, context, filter,
// preserve_time) (spec.md §4.E). currentTime is the ambient "at time"
// register used only as a memo-key component (the spec's "current-
// time" is otherwise a bounded-model-checking concern out of this
// component's scope); pass nil outside of a timed context.
func (a *Analyzer) GetDependencies(expr, context *ir.Node, filter Filter, preserveTime bool, currentTime *ir.Node) (Set, error) {
	key := memoKey{expr, context, filter, preserveTime, currentTime}
	if cached, ok := a.memo[key]; ok {
		return cached, nil
	}
	result, err := a.collect(expr, context, filter, preserveTime, occurrenceCurrent, nil)
	if err != nil {
		return nil, err
	}
	a.memo[key] = result
	return result, nil
}

// occurrenceKind distinguishes the three contexts spec.md §4.E cares
// about: an ordinary current-state reference, one reached through
// NEXT, and one reached through ATTIME (attimeAt carries the time
// argument for the latter).
type occurrenceKind int

const (
	occurrenceCurrent occurrenceKind = iota
	occurrenceNext
)

func (a *Analyzer) collect(expr, context *ir.Node, filter Filter, preserveTime bool, occ occurrenceKind, attimeAt *ir.Node) (Set, error) {
	out := make(Set)
	if expr.IsNil() {
		return out, nil
	}

	switch expr.Tag {
	case ir.ATOM, ir.DOT:
		return a.collectIdentifier(expr, context, filter, preserveTime, occ, attimeAt)

	case ir.NEXT:
		return a.collect(expr.Car, context, filter, preserveTime, occurrenceNext, nil)

	case ir.ATTIME:
		inner, err := a.collect(expr.Car, context, filter, preserveTime, occ, expr.Cdr)
		if err != nil {
			return nil, err
		}
		return inner, nil

	default:
		carDeps, err := a.collect(expr.Car, context, filter, preserveTime, occ, attimeAt)
		if err != nil {
			return nil, err
		}
		unionInto(out, carDeps)
		if expr.Cdr != nil {
			cdrDeps, err := a.collect(expr.Cdr, context, filter, preserveTime, occ, attimeAt)
			if err != nil {
				return nil, err
			}
			unionInto(out, cdrDeps)
		}
		return out, nil
	}
}

func (a *Analyzer) collectIdentifier(expr, context *ir.Node, filter Filter, preserveTime bool, occ occurrenceKind, attimeAt *ir.Node) (Set, error) {
	out := make(Set)
	canonical := flatten.ConcatContexts(a.pool, context, expr)
	name := canonical.CanonicalName()
	r := a.table.ResolveName(name)

	switch r.Kind {
	case symtab.ResolvedUndefined:
		return nil, fmt.Errorf("deps: undefined-symbol: %q", name)
	case symtab.ResolvedAmbiguous:
		return nil, fmt.Errorf("deps: ambiguous-symbol: %q", name)

	case symtab.ResolvedConstant:
		return out, nil

	case symtab.ResolvedParameter:
		paramCtx, actual := a.table.GetActualParameter(name)
		return a.collect(actual, paramCtx, filter, preserveTime, occ, attimeAt)

	case symtab.ResolvedDefine:
		if a.building[name] {
			return nil, fmt.Errorf("deps: circular-define: %q depends on itself", name)
		}
		a.building[name] = true
		defer delete(a.building, name)
		body := a.table.GetDefineBody(name)
		defCtx := a.table.GetDefineContext(name)
		deps, err := a.collect(body, defCtx, filter, preserveTime, occ, attimeAt)
		if err != nil {
			return nil, err
		}
		unionInto(out, deps)
		if filter.has(FilterDefines) {
			out.add(name, a.pool.FindAtom(name))
		}
		return out, nil

	case symtab.ResolvedStateVar, symtab.ResolvedInputVar, symtab.ResolvedFrozenVar,
		symtab.ResolvedArrayDefine, symtab.ResolvedVariableArray, symtab.ResolvedFunction:
		if occ == occurrenceNext {
			if !filter.has(FilterNext) {
				return out, nil
			}
			out.add(name, a.wrap(name, occ, attimeAt, preserveTime))
			return out, nil
		}
		// Array-defines, variable-arrays, and functions carry no
		// state/input/frozen distinction of their own; they are kept
		// under FilterCurrent like an ordinary current-state leaf.
		required := FilterCurrent
		switch r.Kind {
		case symtab.ResolvedInputVar:
			required = FilterInput
		case symtab.ResolvedFrozenVar:
			required = FilterFrozen
		}
		if !filter.has(required) {
			return out, nil
		}
		out.add(name, a.wrap(name, occ, attimeAt, preserveTime))
		return out, nil
	}
	return nil, fmt.Errorf("deps: internal-inconsistency: unhandled resolve kind %v for %q", r.Kind, name)
}

func (a *Analyzer) wrap(name string, occ occurrenceKind, attimeAt *ir.Node, preserveTime bool) *ir.Node {
	atom := a.pool.FindAtom(name)
	if !preserveTime {
		return atom
	}
	if attimeAt != nil {
		return a.pool.FindNode(ir.ATTIME, atom, attimeAt)
	}
	if occ == occurrenceNext {
		return a.pool.FindNode(ir.NEXT, atom, nil)
	}
	return atom
}
