package hierarchy

import (
	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtype"
)

// Decl is one declaration inside a parsed module body. The hierarchy
// walker (spec.md §4.C) switches on Kind; the external parser (out of
// scope per spec.md §1) is responsible for producing a Module whose
// Body consists of these in source order.
type DeclKind int

const (
	DeclVar DeclKind = iota
	DeclIVar
	DeclFrozenVar
	DeclDefine
	DeclArrayDefine
	DeclISA
	DeclModtype
	DeclProcess
	DeclTrans
	DeclInit
	DeclInvar
	DeclJustice
	DeclCompassion
	DeclAssign
	DeclSpec
	DeclLTLSpec
	DeclPSLSpec
	DeclInvarSpec
	DeclCompute
)

// Decl is a single module-body declaration.
type Decl struct {
	Kind DeclKind
	Line int

	// DeclVar/DeclIVar/DeclFrozenVar, DeclDefine, DeclArrayDefine. Type
	// is assumed already classified by the external type checker
	// (spec.md §1: "we assume an external type-checker can classify
	// any expression... and will reject invalid constructs before our
	// components see them").
	Name string
	Type *symtype.Type
	Body *ir.Node // DeclDefine body; DeclArrayDefine element bodies live in ArrayBodies

	// DeclArrayDefine: the composite's index range and one body per
	// cell, in row-major order, parallel to ArrayBodies.
	ArrayLo, ArrayHi int
	ArrayBodies      []*ir.Node

	// DeclISA.
	ModuleName string

	// DeclModtype.
	InstanceName string
	Actuals      []*ir.Node

	// DeclProcess wraps a single module instantiation exactly like
	// DeclModtype (InstanceName, ModuleName, Actuals), additionally
	// recording the resulting instance prefix among the process-names
	// list (spec.md §4.C).

	// DeclTrans/DeclInit/DeclInvar/DeclJustice/DeclCompassion/DeclAssign.
	Expr *ir.Node

	// DeclAssign target, when Kind == DeclAssign: one of plain v,
	// NEXT(v), or init(v); represented directly as the LHS node so
	// the flattener can dispatch on its tag.
	AssignLHS *ir.Node

	// DeclSpec/DeclLTLSpec/DeclPSLSpec/DeclInvarSpec/DeclCompute.
	PropertyName string // may be empty
}

// Module is one parsed module definition: a name, formal parameters,
// and a body.
type Module struct {
	Name    string
	Formals []string
	Body    []Decl
}

// Program is the set of module definitions a root instantiation draws
// from, indexed by name.
type Program struct {
	Modules map[string]*Module
}
