package inline

import (
	"sort"

	"github.com/go-symcore/symcore/rbc"
)

// ConjElem is one harvested equivalence: the variable's assigned
// formula, its dependency set, and — once Flattenize has run — the
// flattened form referencing only non-mapped variables.
type ConjElem struct {
	Expr     rbc.Ref
	Deps     map[int]bool
	FlatExpr rbc.Ref
	HasFlat  bool
}

// ConjSet is a finite mapping from RBC variable index to ConjElem
// (spec.md's "ConjSet (H)"). Two candidate equations for the same
// variable are resolved in favor of the one with fewer dependencies.
type ConjSet struct {
	elems map[int]ConjElem
}

func NewConjSet() *ConjSet {
	return &ConjSet{elems: make(map[int]ConjElem)}
}

// Add inserts e for varIdx, or replaces the existing entry only if e
// has strictly fewer dependencies.
func (cs *ConjSet) Add(varIdx int, e ConjElem) {
	existing, ok := cs.elems[varIdx]
	if !ok || len(e.Deps) < len(existing.Deps) {
		cs.elems[varIdx] = e
	}
}

func (cs *ConjSet) Get(varIdx int) (ConjElem, bool) {
	e, ok := cs.elems[varIdx]
	return e, ok
}

func (cs *ConjSet) Len() int { return len(cs.elems) }

// SortedVars returns the mapped variable indices in ascending order,
// for deterministic iteration.
func (cs *ConjSet) SortedVars() []int {
	vars := make([]int, 0, len(cs.elems))
	for v := range cs.elems {
		vars = append(vars, v)
	}
	sort.Ints(vars)
	return vars
}

// Flattenize substitutes, for every mapped variable, its stored
// expression so that it references only non-mapped variables
// (spec.md §4.H step 4). A visited set breaks cycles: the first visit
// of a variable recurses into its own dependencies before computing
// its flat expression; a cycle simply leaves the back-edge variable's
// contribution as its own (not-yet-flattened) reference.
func (cs *ConjSet) Flattenize(m *rbc.Manager) {
	visited := make(map[int]bool)
	var visit func(v int)
	visit = func(v int) {
		if visited[v] {
			return
		}
		visited[v] = true
		e, ok := cs.elems[v]
		if !ok {
			return
		}
		for d := range e.Deps {
			if _, mapped := cs.elems[d]; mapped {
				visit(d)
			}
		}
		sub := cs.substitutionVector(m)
		flat, err := m.SubstRbc(e.Expr, sub)
		if err != nil {
			flat = e.Expr
		}
		e.FlatExpr = flat
		e.HasFlat = true
		cs.elems[v] = e
	}
	for _, v := range cs.SortedVars() {
		visit(v)
	}
}

func (cs *ConjSet) substitutionVector(m *rbc.Manager) []rbc.Ref {
	n := m.VarCount()
	sub := make([]rbc.Ref, n)
	for i := 0; i < n; i++ {
		if e, ok := cs.elems[i]; ok && e.HasFlat {
			sub[i] = e.FlatExpr
		} else {
			sub[i] = m.MakeVar(i)
		}
	}
	return sub
}

// Conjunction builds the AND of every harvested var ↔ expr equation
// (spec.md's InlineResult field c), in sorted variable order for
// reproducibility.
func (cs *ConjSet) Conjunction(m *rbc.Manager) rbc.Ref {
	result := m.True()
	for _, v := range cs.SortedVars() {
		e := cs.elems[v]
		eq := m.MakeIff(m.MakeVar(v), e.Expr, false)
		result = m.MakeAnd(result, eq, false)
	}
	return result
}
