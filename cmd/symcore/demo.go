package main

import (
	"github.com/go-symcore/symcore/boolean"
	"github.com/go-symcore/symcore/flatten"
	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
	"github.com/go-symcore/symcore/symtype"
)

// demoScenario is a small, fixed model used by the flatten/boolize
// subcommands to exercise components D and F end to end: no text
// format for the source language is imposed by the core (spec.md §6
// names the parser as an external, format-agnostic collaborator), so
// this driver builds its example directly through ir/symtab calls
// rather than parsing anything.
//
// Declares boolean state variables a, b and a define d := a & b, then
// returns the flattenable reference to d (DOT(Nil, d)) alongside the
// pool/table it was built in.
type demoScenario struct {
	pool    *ir.Pool
	table   *symtab.Table
	layer   *symtab.Layer
	context *ir.Node
	expr    *ir.Node
}

func buildDemoScenario() (*demoScenario, error) {
	pool := ir.NewPool()
	table := symtab.New()
	layer, err := table.CreateLayer("main", "", symtab.AtTop())
	if err != nil {
		return nil, err
	}
	if err := table.DeclareVar(layer, "a", symtab.StateVar, symtype.Bool()); err != nil {
		return nil, err
	}
	if err := table.DeclareVar(layer, "b", symtab.StateVar, symtype.Bool()); err != nil {
		return nil, err
	}
	aAtom := pool.FindAtom("a")
	bAtom := pool.FindAtom("b")
	body := pool.FindNode(ir.AND, aAtom, bAtom)
	if err := table.DeclareDefine(layer, "d", pool.Nil(), body); err != nil {
		return nil, err
	}
	dRef := pool.FindNode(ir.DOT, pool.Nil(), pool.FindAtom("d"))
	return &demoScenario{pool: pool, table: table, layer: layer, context: pool.Nil(), expr: dRef}, nil
}
