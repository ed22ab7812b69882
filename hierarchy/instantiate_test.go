package hierarchy

import (
	"testing"

	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
	"github.com/go-symcore/symcore/symtype"
)

func TestProcessSelectorExpansion(t *testing.T) {
	pool := ir.NewPool()
	vAtom := pool.FindAtom("v")
	one := pool.FindNumber("1")
	rhs := pool.FindNode(ir.PLUS, vAtom, one)

	program := &Program{Modules: map[string]*Module{
		"main": {
			Name: "main",
			Body: []Decl{
				{Kind: DeclProcess, InstanceName: "p1", ModuleName: "worker"},
				{Kind: DeclProcess, InstanceName: "p2", ModuleName: "worker"},
			},
		},
		"worker": {
			Name: "worker",
			Body: []Decl{
				{Kind: DeclVar, Name: "v", Type: symtype.Int()},
				{Kind: DeclAssign, AssignLHS: pool.FindNode(ir.NEXT, vAtom, nil), Expr: rhs},
			},
		},
	}}

	table := symtab.New()
	inst, err := New(pool, program, table)
	if err != nil {
		t.Fatal(err)
	}
	flat, err := inst.Run("main", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := inst.PostProcess(); err != nil {
		t.Fatal(err)
	}

	if len(flat.Processes) != 2 {
		t.Fatalf("got %d processes, want 2", len(flat.Processes))
	}
	if !table.IsVar("PROCESS_SELECTOR") {
		t.Fatal("PROCESS_SELECTOR was not declared")
	}
	for _, proc := range flat.Processes {
		if !table.IsDefine("running@" + proc) {
			t.Fatalf("running@%s was not declared", proc)
		}
		next, ok := flat.NextAssign[proc+".v"]
		if !ok {
			t.Fatalf("no next-assign recorded for %s.v", proc)
		}
		if next.Tag != ir.CASE {
			t.Fatalf("got next-assign tag %v, want CASE after process rewriting", next.Tag)
		}
	}
}

func TestRecursiveModuleDetected(t *testing.T) {
	pool := ir.NewPool()
	program := &Program{Modules: map[string]*Module{
		"a": {Name: "a", Body: []Decl{
			{Kind: DeclModtype, InstanceName: "b", ModuleName: "a"},
		}},
	}}
	table := symtab.New()
	inst, err := New(pool, program, table)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := inst.Run("a", nil); err == nil {
		t.Fatal("expected recursive-module error, got nil")
	}
}

func TestVariableArrayExpansion(t *testing.T) {
	pool := ir.NewPool()
	elemType := symtype.Bool()
	arrType := symtype.NewArray(elemType, 0, 2)
	program := &Program{Modules: map[string]*Module{
		"main": {Name: "main", Body: []Decl{
			{Kind: DeclVar, Name: "flags", Type: arrType},
		}},
	}}
	table := symtab.New()
	inst, err := New(pool, program, table)
	if err != nil {
		t.Fatal(err)
	}
	flat, err := inst.Run("main", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !table.IsVariableArray("flags") {
		t.Fatal("flags was not declared as a variable-array")
	}
	if len(flat.DeclaredVars) != 3 {
		t.Fatalf("got %d declared vars, want 3 scalar elements", len(flat.DeclaredVars))
	}
}
