package hierarchy

import (
	"fmt"

	"github.com/go-symcore/symcore/ir"
)

// Property is one named (or anonymous) temporal/invariant specification.
type Property struct {
	Name    string // "" when unnamed
	Context *ir.Node
	Expr    *ir.Node
}

// Flat is the flat hierarchy record spec.md §3 describes: conjoined
// constraints, property lists, per-variable assignment maps, the
// declared-variable order, and a unique property-name registry.
type Flat struct {
	Init  *ir.Node
	Invar *ir.Node
	Trans *ir.Node

	Justice    []*ir.Node
	Compassion []*ir.Node

	Spec      []Property
	LTLSpec   []Property
	PSLSpec   []Property
	InvarSpec []Property
	Compute   []Property

	InvarAssign map[string]*ir.Node
	InitAssign  map[string]*ir.Node
	NextAssign  map[string]*ir.Node

	// DeclaredVars is every declared variable's canonical name, in
	// declaration order (spec.md §3 "List of declared variables in
	// the order of declaration").
	DeclaredVars []string

	// Processes holds the canonical instance name of every PROCESS
	// declaration encountered, in declaration order; used by
	// post-processing to synthesize PROCESS_SELECTOR (spec.md §4.C).
	Processes []string

	propertyNames map[string]bool
}

func newFlat() *Flat {
	return &Flat{
		InvarAssign:   make(map[string]*ir.Node),
		InitAssign:    make(map[string]*ir.Node),
		NextAssign:    make(map[string]*ir.Node),
		propertyNames: make(map[string]bool),
	}
}

// conjoin folds constraint into acc with a logical AND, building the
// node via pool so the result stays interned. A nil acc is treated as
// "true" (the conjunction identity).
func conjoin(pool *ir.Pool, acc, constraint *ir.Node) *ir.Node {
	if acc == nil {
		return constraint
	}
	return pool.FindNode(ir.AND, acc, constraint)
}

// registerPropertyName records name in the unique property-name
// registry, or returns an error if it (non-emptily) collides.
func (f *Flat) registerPropertyName(name string) error {
	if name == "" {
		return nil
	}
	if f.propertyNames[name] {
		return fmt.Errorf("hierarchy: duplicate property name %q", name)
	}
	f.propertyNames[name] = true
	return nil
}

// addInvarAssign records invar-assign for v, rejecting a second one
// (spec.md §3 invariant 2: "No variable has more than one
// invar-assign, one init-assign, and one next-assign").
func (f *Flat) addInvarAssign(v string, expr *ir.Node) error {
	if _, ok := f.InvarAssign[v]; ok {
		return fmt.Errorf("hierarchy: variable %q already has an invar-assign", v)
	}
	f.InvarAssign[v] = expr
	return nil
}

func (f *Flat) addInitAssign(v string, expr *ir.Node) error {
	if _, ok := f.InitAssign[v]; ok {
		return fmt.Errorf("hierarchy: variable %q already has an init-assign", v)
	}
	f.InitAssign[v] = expr
	return nil
}

func (f *Flat) addNextAssign(v string, expr *ir.Node) error {
	if _, ok := f.NextAssign[v]; ok {
		return fmt.Errorf("hierarchy: variable %q already has a next-assign", v)
	}
	f.NextAssign[v] = expr
	return nil
}
