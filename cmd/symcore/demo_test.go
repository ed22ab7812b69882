package main

import (
	"testing"

	"github.com/go-symcore/symcore/boolean"
	"github.com/go-symcore/symcore/flatten"
	"github.com/go-symcore/symcore/ir"
)

func TestDemoScenarioFlattensDefineReference(t *testing.T) {
	scn, err := buildDemoScenario()
	if err != nil {
		t.Fatalf("buildDemoScenario: %v", err)
	}
	f := flatten.New(scn.pool, scn.table, nil)
	flat, err := f.Flatten(scn.expr, scn.context, flatten.ExpandDefines)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := scn.pool.FindNode(ir.AND, scn.pool.FindAtom("a"), scn.pool.FindAtom("b"))
	if flat != want {
		t.Fatalf("flatten(d) = %v, want %v", flat, want)
	}
}

func TestDemoScenarioBooleanizes(t *testing.T) {
	scn, err := buildDemoScenario()
	if err != nil {
		t.Fatalf("buildDemoScenario: %v", err)
	}
	f := flatten.New(scn.pool, scn.table, nil)
	flat, err := f.Flatten(scn.expr, scn.context, flatten.ExpandDefines)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	enc := boolean.NewEncoding(scn.pool, scn.table, false)
	b := boolean.New(scn.pool, scn.table, enc, nil)
	bexpr, err := b.Expr2Bexpr(flat, scn.context)
	if err != nil {
		t.Fatalf("Expr2Bexpr: %v", err)
	}
	if bexpr.IsNil() {
		t.Fatalf("Expr2Bexpr returned nil node")
	}
}
