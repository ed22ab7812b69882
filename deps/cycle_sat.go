package deps

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/go-symcore/symcore/flatten"
	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
)

// ProbeDefineCycleSAT is an additional, optional diagnostic (beyond
// the required circular-define error) that substitutes defineName's
// self-reference with false and asks whether the resulting formula is
// satisfiable at all, distinguishing a merely-recursive-but-escapable
// define from a genuinely contradictory one (SPEC_FULL.md §12).
// circular-define remains fatal regardless of what this reports.
//
// Grounded on go-tony/schema/formula_builder.go's
// newFormulaBuilder/buildRef, which does exactly this substitution
// (self-reference → b.c.F) using gini's AND-INVERTER circuit and
// solver, with the same "visiting set" shape reused here as
// `building`. Operators outside the propositional core (arithmetic
// comparisons, CASE, word operations) are treated as opaque boolean
// unknowns: this probe is a structural satisfiability sanity check,
// not a faithful booleanization (that is component F's job).
func ProbeDefineCycleSAT(pool *ir.Pool, table *symtab.Table, defineName string) (satisfiable bool, err error) {
	if !table.IsDefine(defineName) {
		return false, fmt.Errorf("deps: %q is not a declared define", defineName)
	}
	b := &satBuilder{
		c:        logic.NewC(),
		pool:     pool,
		table:    table,
		selfName: defineName,
		vars:     make(map[string]z.Lit),
		building: make(map[string]bool),
	}
	body := table.GetDefineBody(defineName)
	context := table.GetDefineContext(defineName)
	formula, err := b.build(body, context)
	if err != nil {
		return false, err
	}

	g := gini.New()
	b.c.ToCnf(g)
	g.Assume(formula)
	return g.Solve() == 1, nil
}

type satBuilder struct {
	c        *logic.C
	pool     *ir.Pool
	table    *symtab.Table
	selfName string
	vars     map[string]z.Lit
	building map[string]bool
}

func (b *satBuilder) build(n, context *ir.Node) (z.Lit, error) {
	if n.IsNil() {
		return b.c.T, nil
	}
	switch n.Tag {
	case ir.TRUEEXP:
		return b.c.T, nil
	case ir.FALSEEXP, ir.FAILURE:
		return b.c.F, nil
	case ir.NOT:
		l, err := b.build(n.Car, context)
		if err != nil {
			return b.c.F, err
		}
		return l.Not(), nil
	case ir.AND:
		l, r, err := b.buildPair(n, context)
		if err != nil {
			return b.c.F, err
		}
		return b.c.Ands(l, r), nil
	case ir.OR:
		l, r, err := b.buildPair(n, context)
		if err != nil {
			return b.c.F, err
		}
		return b.c.Ors(l, r), nil
	case ir.IMPLIES:
		l, r, err := b.buildPair(n, context)
		if err != nil {
			return b.c.F, err
		}
		return b.c.Ors(l.Not(), r), nil
	case ir.IFF:
		l, r, err := b.buildPair(n, context)
		if err != nil {
			return b.c.F, err
		}
		return b.c.Ors(b.c.Ands(l, r), b.c.Ands(l.Not(), r.Not())), nil
	case ir.XOR:
		l, r, err := b.buildPair(n, context)
		if err != nil {
			return b.c.F, err
		}
		return b.c.Ors(b.c.Ands(l, r.Not()), b.c.Ands(l.Not(), r)), nil
	case ir.ATOM, ir.DOT:
		return b.buildIdentifier(n, context)
	default:
		return b.getVar(n.String()), nil
	}
}

func (b *satBuilder) buildPair(n, context *ir.Node) (z.Lit, z.Lit, error) {
	l, err := b.build(n.Car, context)
	if err != nil {
		return b.c.F, b.c.F, err
	}
	r, err := b.build(n.Cdr, context)
	if err != nil {
		return b.c.F, b.c.F, err
	}
	return l, r, nil
}

func (b *satBuilder) buildIdentifier(n, context *ir.Node) (z.Lit, error) {
	canonical := flatten.ConcatContexts(b.pool, context, n)
	name := canonical.CanonicalName()

	if name == b.selfName {
		return b.c.F, nil
	}
	if !b.table.IsDefine(name) {
		return b.getVar(name), nil
	}
	if b.building[name] {
		// A cycle not going through selfName directly; treat as an
		// opaque reference rather than failing this best-effort probe.
		return b.getVar(name), nil
	}
	b.building[name] = true
	defer delete(b.building, name)
	body := b.table.GetDefineBody(name)
	defCtx := b.table.GetDefineContext(name)
	return b.build(body, defCtx)
}

func (b *satBuilder) getVar(name string) z.Lit {
	if lit, ok := b.vars[name]; ok {
		return lit
	}
	lit := b.c.Lit()
	b.vars[name] = lit
	return lit
}
