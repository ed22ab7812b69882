package hierarchy

import (
	"fmt"

	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
	"github.com/go-symcore/symcore/symtype"
)

// Instantiator walks a Program's module bodies, binding parameters
// and filling a symtab.Table and Flat record (spec.md §4.C).
type Instantiator struct {
	pool    *ir.Pool
	program *Program
	table   *symtab.Table
	flat    *Flat
	layer   *symtab.Layer

	// stack holds the names of modules currently being instantiated,
	// to detect recursive instantiation (spec.md §3 invariant 5).
	stack []string
}

// New returns an Instantiator over program, declaring symbols into a
// single fresh top layer of table.
func New(pool *ir.Pool, program *Program, table *symtab.Table) (*Instantiator, error) {
	layer, err := table.CreateLayer("main", "", symtab.AtTop())
	if err != nil {
		return nil, err
	}
	return &Instantiator{pool: pool, program: program, table: table, flat: newFlat(), layer: layer}, nil
}

// Run instantiates rootModule under the empty prefix with the given
// actual parameters (already-flattened expressions, one per formal in
// declaration order) and returns the populated Flat record. Call
// PostProcess afterward to finish the two-pass algorithm.
func (in *Instantiator) Run(rootModule string, actuals []*ir.Node) (*Flat, error) {
	if err := in.instantiate(rootModule, in.pool.Nil(), actuals, false); err != nil {
		return nil, err
	}
	return in.flat, nil
}

// instantiate expands module under prefix, binding actuals to its
// formals. inProcess marks that this expansion originates from a
// PROCESS declaration, so nested process-names bookkeeping applies to
// the *outermost* enclosing process per spec.md's intent (tracked by
// the caller, not here).
func (in *Instantiator) instantiate(module string, prefix *ir.Node, actuals []*ir.Node, inProcess bool) error {
	for _, m := range in.stack {
		if m == module {
			return fmt.Errorf("hierarchy: recursive-module: %q already being instantiated", module)
		}
	}
	mod, ok := in.program.Modules[module]
	if !ok {
		return fmt.Errorf("hierarchy: reference to unknown module %q", module)
	}
	if len(actuals) != len(mod.Formals) {
		return fmt.Errorf("hierarchy: module %q expects %d parameters, got %d", module, len(mod.Formals), len(actuals))
	}

	in.stack = append(in.stack, module)
	defer func() { in.stack = in.stack[:len(in.stack)-1] }()

	for i, formal := range mod.Formals {
		name := in.qualify(prefix, formal)
		if err := in.table.DeclareParameter(in.layer, name, prefix, actuals[i]); err != nil {
			return err
		}
	}

	for _, d := range mod.Body {
		if err := in.instantiateDecl(module, prefix, d, inProcess); err != nil {
			return err
		}
	}
	return nil
}

func (in *Instantiator) qualify(prefix *ir.Node, name string) string {
	atom := in.pool.FindAtom(name)
	if prefix.IsNil() {
		return atom.CanonicalName()
	}
	return in.pool.FindNode(ir.DOT, prefix, atom).CanonicalName()
}

func (in *Instantiator) instantiateDecl(module string, prefix *ir.Node, d Decl, inProcess bool) error {
	switch d.Kind {
	case DeclVar, DeclIVar, DeclFrozenVar:
		return in.instantiateVar(prefix, d)

	case DeclDefine:
		name := in.qualify(prefix, d.Name)
		return in.table.DeclareDefine(in.layer, name, prefix, d.Body)

	case DeclArrayDefine:
		name := in.qualify(prefix, d.Name)
		return in.table.DeclareArrayDefine(in.layer, name, d.ArrayBodies)

	case DeclISA:
		includedMod, ok := in.program.Modules[d.ModuleName]
		if !ok {
			return fmt.Errorf("hierarchy: ISA references unknown module %q", d.ModuleName)
		}
		for _, nested := range includedMod.Body {
			if err := in.instantiateDecl(module, prefix, nested, inProcess); err != nil {
				return err
			}
		}
		return nil

	case DeclModtype:
		childPrefix := in.pool.FindNode(ir.DOT, prefix, in.pool.FindAtom(d.InstanceName))
		return in.instantiate(d.ModuleName, childPrefix, d.Actuals, inProcess)

	case DeclProcess:
		childPrefix := in.pool.FindNode(ir.DOT, prefix, in.pool.FindAtom(d.InstanceName))
		in.flat.Processes = append(in.flat.Processes, childPrefix.CanonicalName())
		return in.instantiate(d.ModuleName, childPrefix, d.Actuals, true)

	case DeclTrans:
		wrapped := in.pool.FindNode(ir.CONTEXT, prefix, d.Expr)
		in.flat.Trans = conjoin(in.pool, in.flat.Trans, wrapped)
		return nil

	case DeclInit:
		wrapped := in.pool.FindNode(ir.CONTEXT, prefix, d.Expr)
		in.flat.Init = conjoin(in.pool, in.flat.Init, wrapped)
		return nil

	case DeclInvar:
		wrapped := in.pool.FindNode(ir.CONTEXT, prefix, d.Expr)
		in.flat.Invar = conjoin(in.pool, in.flat.Invar, wrapped)
		return nil

	case DeclJustice:
		in.flat.Justice = append(in.flat.Justice, in.pool.FindNode(ir.CONTEXT, prefix, d.Expr))
		return nil

	case DeclCompassion:
		in.flat.Compassion = append(in.flat.Compassion, in.pool.FindNode(ir.CONTEXT, prefix, d.Expr))
		return nil

	case DeclAssign:
		return in.instantiateAssign(prefix, d)

	case DeclSpec, DeclLTLSpec, DeclPSLSpec, DeclInvarSpec, DeclCompute:
		if err := in.flat.registerPropertyName(d.PropertyName); err != nil {
			return err
		}
		prop := Property{Name: d.PropertyName, Context: prefix, Expr: d.Expr}
		switch d.Kind {
		case DeclSpec:
			in.flat.Spec = append(in.flat.Spec, prop)
		case DeclLTLSpec:
			in.flat.LTLSpec = append(in.flat.LTLSpec, prop)
		case DeclPSLSpec:
			in.flat.PSLSpec = append(in.flat.PSLSpec, prop)
		case DeclInvarSpec:
			in.flat.InvarSpec = append(in.flat.InvarSpec, prop)
		case DeclCompute:
			in.flat.Compute = append(in.flat.Compute, prop)
		}
		return nil
	}
	return fmt.Errorf("hierarchy: unhandled declaration kind %d", d.Kind)
}

func (in *Instantiator) instantiateVar(prefix *ir.Node, d Decl) error {
	name := in.qualify(prefix, d.Name)
	kind := symtab.StateVar
	switch d.Kind {
	case DeclIVar:
		kind = symtab.InputVar
	case DeclFrozenVar:
		kind = symtab.FrozenVar
	}
	if err := in.declareVarRecursive(name, kind, d.Type); err != nil {
		return err
	}
	return nil
}

// declareVarRecursive declares name (spec.md §4.C: "Recursively expand
// array types into an entry for the composite plus one entry per
// scalar element").
func (in *Instantiator) declareVarRecursive(name string, kind symtab.VarKind, t *symtype.Type) error {
	if t.Kind != symtype.Array {
		if err := in.table.DeclareVar(in.layer, name, kind, t); err != nil {
			return err
		}
		in.flat.DeclaredVars = append(in.flat.DeclaredVars, name)
		return nil
	}

	elements := make([]string, 0, t.Hi-t.Lo+1)
	for i := t.Lo; i <= t.Hi; i++ {
		cellName := in.qualify(in.pool.FindAtom(name), fmt.Sprintf("%d", i))
		if err := in.declareVarRecursive(cellName, kind, t.Elem); err != nil {
			return err
		}
		elements = append(elements, cellName)
	}
	return in.table.DeclareVariableArray(in.layer, name, t, elements)
}

// instantiateAssign handles one ASSIGN block entry. d.AssignLHS is
// either a bare identifier (invar-assign), NEXT(id) (next-assign), or
// INIT(id) (init-assign) — INIT here is the expression-level "init(v)"
// assignment target wrapper, distinct from the INIT declaration kind
// used for a module's `INIT expr;` blocks.
func (in *Instantiator) instantiateAssign(prefix *ir.Node, d Decl) error {
	wrapped := in.pool.FindNode(ir.CONTEXT, prefix, d.Expr)
	switch d.AssignLHS.Tag {
	case ir.NEXT:
		lhsName := in.qualify(prefix, d.AssignLHS.Car.CanonicalName())
		return in.flat.addNextAssign(lhsName, wrapped)
	case ir.INIT:
		lhsName := in.qualify(prefix, d.AssignLHS.Car.CanonicalName())
		return in.flat.addInitAssign(lhsName, wrapped)
	default:
		lhsName := in.qualify(prefix, d.AssignLHS.CanonicalName())
		return in.flat.addInvarAssign(lhsName, wrapped)
	}
}
