package deps

import (
	"testing"

	"github.com/go-symcore/symcore/hierarchy"
	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
	"github.com/go-symcore/symcore/symtype"
)

func declareBool(t *testing.T, table *symtab.Table, layer *symtab.Layer, name string) {
	t.Helper()
	if err := table.DeclareVar(layer, name, symtab.StateVar, symtype.Bool()); err != nil {
		t.Fatalf("DeclareVar %s: %v", name, err)
	}
}

// P15 scenario: vars a, b, c; next(a) := b; next(b) := c; next(c) :=
// c (the scenario's init(a) := 0 adds no dependency and is left out).
// COI({a}) = {a, b, c}. COI({c}) = {c}.
func TestConeOfInfluence(t *testing.T) {
	pool := ir.NewPool()
	table := symtab.New()
	layer, err := table.CreateLayer("main", "", symtab.AtTop())
	if err != nil {
		t.Fatalf("CreateLayer: %v", err)
	}
	declareBool(t, table, layer, "a")
	declareBool(t, table, layer, "b")
	declareBool(t, table, layer, "c")

	flat := &hierarchy.Flat{
		NextAssign: map[string]*ir.Node{
			"a": pool.FindAtom("b"),
			"b": pool.FindAtom("c"),
			"c": pool.FindAtom("c"),
		},
	}

	analyzer := New(pool, table)
	cone := NewConeAnalyzer(analyzer, flat)

	gotA, err := cone.ConeOfInfluence([]string{"a"})
	if err != nil {
		t.Fatalf("ConeOfInfluence(a): %v", err)
	}
	wantA := map[string]bool{"a": true, "b": true, "c": true}
	if len(gotA) != len(wantA) {
		t.Fatalf("COI(a) = %v, want %v", gotA.Names(), wantA)
	}
	for name := range wantA {
		if _, ok := gotA[name]; !ok {
			t.Fatalf("COI(a) missing %q: got %v", name, gotA.Names())
		}
	}

	gotC, err := cone.ConeOfInfluence([]string{"c"})
	if err != nil {
		t.Fatalf("ConeOfInfluence(c): %v", err)
	}
	if len(gotC) != 1 {
		t.Fatalf("COI(c) = %v, want {c}", gotC.Names())
	}
}

func TestGetDependenciesExpandsDefines(t *testing.T) {
	pool := ir.NewPool()
	table := symtab.New()
	layer, err := table.CreateLayer("main", "", symtab.AtTop())
	if err != nil {
		t.Fatalf("CreateLayer: %v", err)
	}
	declareBool(t, table, layer, "x")
	declareBool(t, table, layer, "y")
	body := pool.FindNode(ir.AND, pool.FindAtom("x"), pool.FindAtom("y"))
	if err := table.DeclareDefine(layer, "d", pool.Nil(), body); err != nil {
		t.Fatalf("DeclareDefine: %v", err)
	}

	a := New(pool, table)
	got, err := a.GetDependencies(pool.FindAtom("d"), pool.Nil(), AllVars, false, nil)
	if err != nil {
		t.Fatalf("GetDependencies: %v", err)
	}
	if _, ok := got["x"]; !ok {
		t.Fatalf("expected x in dependencies, got %v", got.Names())
	}
	if _, ok := got["y"]; !ok {
		t.Fatalf("expected y in dependencies, got %v", got.Names())
	}
}

func TestGetDependenciesCircularDefine(t *testing.T) {
	pool := ir.NewPool()
	table := symtab.New()
	layer, err := table.CreateLayer("main", "", symtab.AtTop())
	if err != nil {
		t.Fatalf("CreateLayer: %v", err)
	}
	aBody := pool.FindNode(ir.AND, pool.FindAtom("b"), pool.True())
	bBody := pool.FindNode(ir.AND, pool.FindAtom("a"), pool.True())
	if err := table.DeclareDefine(layer, "a", pool.Nil(), aBody); err != nil {
		t.Fatalf("DeclareDefine a: %v", err)
	}
	if err := table.DeclareDefine(layer, "b", pool.Nil(), bBody); err != nil {
		t.Fatalf("DeclareDefine b: %v", err)
	}

	an := New(pool, table)
	_, err = an.GetDependencies(pool.FindAtom("a"), pool.Nil(), AllVars, false, nil)
	if err == nil {
		t.Fatalf("expected circular-define error")
	}
}

func TestProbeDefineCycleSATEscapable(t *testing.T) {
	pool := ir.NewPool()
	table := symtab.New()
	layer, err := table.CreateLayer("main", "", symtab.AtTop())
	if err != nil {
		t.Fatalf("CreateLayer: %v", err)
	}
	declareBool(t, table, layer, "x")
	// d := x OR d -- self-reference under OR, false is still
	// escapable (x alone can satisfy it).
	body := pool.FindNode(ir.OR, pool.FindAtom("x"), pool.FindAtom("d"))
	if err := table.DeclareDefine(layer, "d", pool.Nil(), body); err != nil {
		t.Fatalf("DeclareDefine: %v", err)
	}

	sat, err := ProbeDefineCycleSAT(pool, table, "d")
	if err != nil {
		t.Fatalf("ProbeDefineCycleSAT: %v", err)
	}
	if !sat {
		t.Fatalf("expected escapable cycle to be satisfiable")
	}
}

func TestProbeDefineCycleSATContradictory(t *testing.T) {
	pool := ir.NewPool()
	table := symtab.New()
	layer, err := table.CreateLayer("main", "", symtab.AtTop())
	if err != nil {
		t.Fatalf("CreateLayer: %v", err)
	}
	// d := d AND NOT d -- self-reference substituted with false on
	// both sides of an AND: unsatisfiable regardless.
	body := pool.FindNode(ir.AND, pool.FindAtom("d"), pool.FindNode(ir.NOT, pool.FindAtom("d"), nil))
	if err := table.DeclareDefine(layer, "d", pool.Nil(), body); err != nil {
		t.Fatalf("DeclareDefine: %v", err)
	}

	sat, err := ProbeDefineCycleSAT(pool, table, "d")
	if err != nil {
		t.Fatalf("ProbeDefineCycleSAT: %v", err)
	}
	if sat {
		t.Fatalf("expected contradictory cycle to be unsatisfiable")
	}
}
