package ir

import "testing"

func TestFindNodeIsHashConsed(t *testing.T) {
	p := NewPool()
	a := p.FindAtom("a")
	b := p.FindAtom("b")

	n1 := p.FindNode(AND, a, b)
	n2 := p.FindNode(AND, a, b)
	if n1 != n2 {
		t.Fatalf("FindNode(AND, a, b) returned distinct nodes on repeat calls")
	}

	n3 := p.FindNode(OR, a, b)
	if n1 == n3 {
		t.Fatalf("FindNode(AND, ...) and FindNode(OR, ...) collapsed to the same node")
	}
}

func TestFindAtomIsHashConsed(t *testing.T) {
	p := NewPool()
	if p.FindAtom("x") != p.FindAtom("x") {
		t.Fatalf("FindAtom(%q) returned distinct nodes on repeat calls", "x")
	}
	if p.FindAtom("x") == p.FindAtom("y") {
		t.Fatalf("FindAtom(\"x\") and FindAtom(\"y\") collapsed to the same node")
	}
}

func TestFindNumberDistinguishesValueFromWidth(t *testing.T) {
	p := NewPool()
	n := p.FindNumber("3")
	w8 := p.FindWordConstant("3", 8, false)
	w16 := p.FindWordConstant("3", 16, false)
	su := p.FindWordConstant("3", 8, true)

	if n == w8 {
		t.Fatalf("a bare NUMBER and a sized word constant interned to the same node")
	}
	if w8 == w16 {
		t.Fatalf("word constants of different widths interned to the same node")
	}
	if w8 == su {
		t.Fatalf("signed and unsigned word constants of the same value/width interned to the same node")
	}
}

func TestNilIsSingular(t *testing.T) {
	p := NewPool()
	if !p.Nil().IsNil() {
		t.Fatalf("Pool.Nil().IsNil() = false")
	}
	if p.Nil() != p.Nil() {
		t.Fatalf("Pool.Nil() returned distinct nodes across calls")
	}
}

func TestTwoPoolsDoNotShareIdentity(t *testing.T) {
	p1, p2 := NewPool(), NewPool()
	if p1.FindAtom("a") == p2.FindAtom("a") {
		t.Fatalf("FindAtom(\"a\") across two independent pools returned the same *Node")
	}
}

func TestStringRendersSexpr(t *testing.T) {
	p := NewPool()
	n := p.FindNode(AND, p.FindAtom("a"), p.FindNode(NOT, p.FindAtom("b"), nil))
	want := "(AND a (NOT b))"
	if got := n.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestCanonicalNameFlattensDotChain(t *testing.T) {
	p := NewPool()
	dotted := p.FindNode(DOT, p.FindNode(DOT, p.Nil(), p.FindAtom("p1")), p.FindAtom("v"))
	if got := dotted.CanonicalName(); got != "p1.v" {
		t.Fatalf("CanonicalName() = %q, want %q", got, "p1.v")
	}
}

func TestCanonicalNameOnBareAtomHasNoLeadingDot(t *testing.T) {
	p := NewPool()
	dotted := p.FindNode(DOT, p.Nil(), p.FindAtom("a"))
	if got := dotted.CanonicalName(); got != "a" {
		t.Fatalf("CanonicalName() = %q, want %q", got, "a")
	}
}

func TestSizeCountsInternedNodes(t *testing.T) {
	p := NewPool()
	base := p.Size() // just the Nil node
	p.FindAtom("a")
	p.FindAtom("a") // repeat: must not grow the table
	if got, want := p.Size(), base+1; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}
}
