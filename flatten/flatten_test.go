package flatten

import (
	"strings"
	"testing"

	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
	"github.com/go-symcore/symcore/symtype"
)

func newTestTable(t *testing.T) (*ir.Pool, *symtab.Table, *symtab.Layer) {
	t.Helper()
	pool := ir.NewPool()
	table := symtab.New()
	layer, err := table.CreateLayer("main", "", symtab.AtTop())
	if err != nil {
		t.Fatalf("CreateLayer: %v", err)
	}
	return pool, table, layer
}

// P3: concat(outer, Nil) == outer.
func TestConcatContextsIdentity(t *testing.T) {
	pool := ir.NewPool()
	outer := pool.FindNode(ir.DOT, pool.Nil(), pool.FindAtom("p1"))
	got := ConcatContexts(pool, outer, pool.Nil())
	if got != outer {
		t.Fatalf("concat(outer, Nil) = %v, want %v", got, outer)
	}
}

// Scenario: concat(DOT(Nil, m1), DOT(Nil, m2)) yields DOT(DOT(Nil, m1), m2).
func TestConcatContextsDot(t *testing.T) {
	pool := ir.NewPool()
	outer := pool.FindNode(ir.DOT, pool.Nil(), pool.FindAtom("m1"))
	inner := pool.FindNode(ir.DOT, pool.Nil(), pool.FindAtom("m2"))
	got := ConcatContexts(pool, outer, inner)
	want := pool.FindNode(ir.DOT, outer, pool.FindAtom("m2"))
	if got != want {
		t.Fatalf("concat(DOT(Nil,m1), DOT(Nil,m2)) = %v, want %v", got, want)
	}
}

// P4: concat(concat(a, b), c) == concat(a, concat(b, c)).
func TestConcatContextsAssociative(t *testing.T) {
	pool := ir.NewPool()
	a := pool.FindNode(ir.DOT, pool.Nil(), pool.FindAtom("a"))
	b := pool.FindNode(ir.DOT, pool.Nil(), pool.FindAtom("b"))
	c := pool.FindNode(ir.DOT, pool.Nil(), pool.FindAtom("c"))

	left := ConcatContexts(pool, ConcatContexts(pool, a, b), c)
	right := ConcatContexts(pool, a, ConcatContexts(pool, b, c))
	if left != right {
		t.Fatalf("concat not associative: left=%v right=%v", left, right)
	}
}

// P5: flatten(flatten(e, c), Nil) == flatten(e, c).
func TestFlattenIdempotent(t *testing.T) {
	pool, table, layer := newTestTable(t)
	if err := table.DeclareVar(layer, "x", symtab.StateVar, symtype.Bool()); err != nil {
		t.Fatalf("DeclareVar: %v", err)
	}
	f := New(pool, table, nil)

	context := pool.FindNode(ir.DOT, pool.Nil(), pool.FindAtom("p1"))
	// Declare the prefixed name too, matching how a hierarchy
	// instantiation would have qualified p1.x.
	if err := table.DeclareVar(layer, "p1.x", symtab.StateVar, symtype.Bool()); err != nil {
		t.Fatalf("DeclareVar: %v", err)
	}

	e := pool.FindAtom("x")
	once, err := f.Flatten(e, context, PreserveDefines)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	twice, err := f.Flatten(once, pool.Nil(), PreserveDefines)
	if err != nil {
		t.Fatalf("Flatten(flatten): %v", err)
	}
	if once != twice {
		t.Fatalf("flatten not idempotent: once=%v twice=%v", once, twice)
	}
}

// Scenario: symbol table has a := b + 1; b := a + 1. flatten(a, Nil)
// raises circular-define.
func TestFlattenCircularDefine(t *testing.T) {
	pool, table, layer := newTestTable(t)
	aPlus1 := pool.FindNode(ir.PLUS, pool.FindAtom("b"), pool.FindNumber("1"))
	bPlus1 := pool.FindNode(ir.PLUS, pool.FindAtom("a"), pool.FindNumber("1"))
	if err := table.DeclareDefine(layer, "a", pool.Nil(), aPlus1); err != nil {
		t.Fatalf("DeclareDefine a: %v", err)
	}
	if err := table.DeclareDefine(layer, "b", pool.Nil(), bPlus1); err != nil {
		t.Fatalf("DeclareDefine b: %v", err)
	}

	f := New(pool, table, nil)
	_, err := f.Flatten(pool.FindAtom("a"), pool.Nil(), ExpandDefines)
	if err == nil {
		t.Fatalf("expected circular-define error, got nil")
	}
	if !strings.Contains(err.Error(), "circular-define") {
		t.Fatalf("expected circular-define error, got %v", err)
	}
}

func TestFlattenPreservesDefineWithoutExpansion(t *testing.T) {
	pool, table, layer := newTestTable(t)
	body := pool.FindNumber("42")
	if err := table.DeclareDefine(layer, "k", pool.Nil(), body); err != nil {
		t.Fatalf("DeclareDefine: %v", err)
	}
	f := New(pool, table, nil)

	got, err := f.Flatten(pool.FindAtom("k"), pool.Nil(), PreserveDefines)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if got.Tag != ir.ATOM || got.Name != "k" {
		t.Fatalf("PreserveDefines mode should leave the resolved name as a leaf, got %v", got)
	}

	expanded, err := f.Flatten(pool.FindAtom("k"), pool.Nil(), ExpandDefines)
	if err != nil {
		t.Fatalf("Flatten expand: %v", err)
	}
	if expanded != body {
		t.Fatalf("ExpandDefines mode should substitute the body, got %v want %v", expanded, body)
	}
}

func TestFlattenParameterSubstitution(t *testing.T) {
	pool, table, layer := newTestTable(t)
	actual := pool.FindNumber("7")
	if err := table.DeclareParameter(layer, "n", pool.Nil(), actual); err != nil {
		t.Fatalf("DeclareParameter: %v", err)
	}
	f := New(pool, table, nil)

	got, err := f.Flatten(pool.FindAtom("n"), pool.Nil(), PreserveDefines)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if got != actual {
		t.Fatalf("parameter reference should flatten to its actual, got %v want %v", got, actual)
	}
}

func TestFlattenCaseRequiresFailureTerminal(t *testing.T) {
	pool, table, _ := newTestTable(t)
	f := New(pool, table, nil)

	arm := pool.FindNode(ir.COLON, pool.True(), pool.FindNumber("1"))
	// Missing FAILURE terminal: Cdr is Nil instead.
	broken := pool.FindNode(ir.CASE, arm, pool.Nil())

	_, err := f.Flatten(broken, pool.Nil(), PreserveDefines)
	if err == nil {
		t.Fatalf("expected error for CASE chain missing FAILURE terminal")
	}
}

func TestFlattenArrayConstantIndex(t *testing.T) {
	pool, table, layer := newTestTable(t)
	arrType := symtype.NewArray(symtype.Bool(), 0, 2)
	if err := table.DeclareVariableArray(layer, "cells", arrType, []string{"cells[0]", "cells[1]", "cells[2]"}); err != nil {
		t.Fatalf("DeclareVariableArray: %v", err)
	}
	f := New(pool, table, nil)

	expr := pool.FindNode(ir.ARRAY, pool.FindAtom("cells"), pool.FindNumber("1"))
	got, err := f.Flatten(expr, pool.Nil(), PreserveDefines)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if got.Tag != ir.ARRAY {
		t.Fatalf("expected an ARRAY leaf, got %v", got)
	}
}

func TestFlattenArrayOutOfBounds(t *testing.T) {
	pool, table, layer := newTestTable(t)
	arrType := symtype.NewArray(symtype.Bool(), 0, 1)
	if err := table.DeclareVariableArray(layer, "cells", arrType, []string{"cells[0]", "cells[1]"}); err != nil {
		t.Fatalf("DeclareVariableArray: %v", err)
	}
	f := New(pool, table, nil)

	expr := pool.FindNode(ir.ARRAY, pool.FindAtom("cells"), pool.FindNumber("5"))
	_, err := f.Flatten(expr, pool.Nil(), PreserveDefines)
	if err == nil || !strings.Contains(err.Error(), "out-of-bounds") {
		t.Fatalf("expected out-of-bounds error, got %v", err)
	}
}
