package symtab

import (
	"testing"

	"github.com/go-symcore/symcore/symtype"
)

func TestDeclareAndResolve(t *testing.T) {
	tab := New()
	l, err := tab.CreateLayer("main", "", AtTop())
	if err != nil {
		t.Fatal(err)
	}
	if err := tab.DeclareVar(l, "x", StateVar, symtype.Bool()); err != nil {
		t.Fatal(err)
	}
	r := tab.ResolveName("x")
	if r.Kind != ResolvedStateVar {
		t.Fatalf("got kind %v, want ResolvedStateVar", r.Kind)
	}
	if r.Entry.Type.Kind != symtype.Boolean {
		t.Fatalf("got type %v, want boolean", r.Entry.Type.Kind)
	}
}

func TestRedeclarationRejected(t *testing.T) {
	tab := New()
	l, _ := tab.CreateLayer("main", "", AtTop())
	if err := tab.DeclareVar(l, "x", StateVar, symtype.Bool()); err != nil {
		t.Fatal(err)
	}
	if err := tab.DeclareVar(l, "x", StateVar, symtype.Int()); err == nil {
		t.Fatal("expected redeclaration error, got nil")
	}
}

func TestResolveUndefined(t *testing.T) {
	tab := New()
	r := tab.ResolveName("nope")
	if r.Kind != ResolvedUndefined {
		t.Fatalf("got kind %v, want ResolvedUndefined", r.Kind)
	}
	if r.Name != "nope" {
		t.Fatalf("got name %q, want %q (undefined must still carry the name for diagnostics)", r.Name, "nope")
	}
}

func TestResolveAmbiguousConstantVsVar(t *testing.T) {
	// A name can be both a constant and something else only via
	// distinct declarations that resolve_symbol's probe (spec.md
	// §4.B) must flag as ambiguous rather than silently preferring
	// one category.
	tab := New()
	consts, _ := tab.CreateLayer("consts", "", AtTop())
	vars, _ := tab.CreateLayer("vars", "", AtBottom())
	if err := tab.DeclareConstant(consts, "red"); err != nil {
		t.Fatal(err)
	}
	if err := tab.DeclareVar(vars, "red", StateVar, symtype.Bool()); err != nil {
		t.Fatal(err)
	}
	r := tab.ResolveName("red")
	if r.Kind != ResolvedAmbiguous {
		t.Fatalf("got kind %v, want ResolvedAmbiguous", r.Kind)
	}
	if len(r.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(r.Matches))
	}
}

func TestRemoveLayerFiresTriggers(t *testing.T) {
	tab := New()
	l, _ := tab.CreateLayer("main", "", AtTop())
	tab.DeclareVar(l, "x", StateVar, symtype.Bool())

	var removed []string
	tab.AddTrigger(OnRemove, func(name string) { removed = append(removed, name) })

	if err := tab.RemoveLayer("main"); err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 || removed[0] != "x" {
		t.Fatalf("got removed=%v, want [x]", removed)
	}
	if tab.IsVar("x") {
		t.Fatal("x should no longer be declared after layer removal")
	}
}

func TestIterMaskAndFilter(t *testing.T) {
	tab := New()
	l, _ := tab.CreateLayer("main", "", AtTop())
	tab.DeclareVar(l, "a", StateVar, symtype.Bool())
	tab.DeclareVar(l, "b", InputVar, symtype.Bool())
	tab.DeclareConstant(l, "c")

	vars := tab.Iter(CatVar, nil)
	if len(vars) != 2 {
		t.Fatalf("got %d vars, want 2", len(vars))
	}

	onlyA := tab.Iter(CatVar, func(e *Entry) bool { return e.Name == "a" })
	if len(onlyA) != 1 || onlyA[0].Name != "a" {
		t.Fatalf("got %v, want [a]", onlyA)
	}
}
