package rbc

import "fmt"

type vtag int

const (
	vTOP vtag = iota
	vVAR
	vAND
	vIFF
	vITE
)

// vertex is one DAG node. AND/IFF store their two children in c0/c1;
// ITE stores condition/then/else in c0/c1/c2. id is assigned in
// creation order and gives a stable total ordering over vertices
// within one Manager, used both for canonical child ordering (AND/IFF)
// and for the Ref ordering P7/P10 rely on.
type vertex struct {
	tag      vtag
	id       uint64
	varIndex int
	c0, c1, c2 Ref
	mark     int
}

// Ref is a (vertex, sign) reference — spec.md §3's "RBC vertex"
// reference, kept as an opaque value type per spec.md's DESIGN NOTES
// rather than a tagged pointer. A zero Ref is never valid; use
// Manager.True/False/MakeVar/MakeAnd/... to obtain one.
type Ref struct {
	v    *vertex
	sign bool
}

func (r Ref) String() string {
	if r.sign {
		return fmt.Sprintf("~v%d", r.v.id)
	}
	return fmt.Sprintf("v%d", r.v.id)
}

// less gives the total order over Refs that AND/IFF child ordering
// relies on: lower vertex id first, unsigned before signed for the
// same vertex.
func (r Ref) less(o Ref) bool {
	if r.v.id != o.v.id {
		return r.v.id < o.v.id
	}
	return !r.sign && o.sign
}

// Manager owns one hash-consed vertex universe: the TOP vertex, the
// variable table, and the three structural-hash tables for AND/IFF/ITE
// vertices (spec.md §3 RBC invariant 1: structurally equal and
// sign-normalized vertices share identity).
type Manager struct {
	nextID   uint64
	top      *vertex
	vars     []*vertex
	andTable map[gateKey]*vertex
	iffTable map[gateKey]*vertex
	iteTable map[iteKey]*vertex
	cnfst    *cnfState
}

type gateKey struct {
	lID uint64
	lSign bool
	rID uint64
	rSign bool
}

type iteKey struct {
	iID uint64
	iSign bool
	tID uint64
	tSign bool
	eID uint64
	eSign bool
}

func NewManager() *Manager {
	m := &Manager{andTable: make(map[gateKey]*vertex), iffTable: make(map[gateKey]*vertex), iteTable: make(map[iteKey]*vertex)}
	m.top = &vertex{tag: vTOP, id: 0}
	m.nextID = 1
	return m
}

// True and False return the canonical constant references.
func (m *Manager) True() Ref  { return Ref{m.top, false} }
func (m *Manager) False() Ref { return Ref{m.top, true} }

func (m *Manager) MakeConst(b bool) Ref {
	if b {
		return m.True()
	}
	return m.False()
}

// MakeVar returns the canonical positive reference to variable i,
// allocating the variable table up to i if needed.
func (m *Manager) MakeVar(i int) Ref {
	for i >= len(m.vars) {
		v := &vertex{tag: vVAR, id: m.nextID, varIndex: len(m.vars)}
		m.nextID++
		m.vars = append(m.vars, v)
	}
	return Ref{m.vars[i], false}
}

// MakeNot flips the sign bit of r; it never allocates.
func (m *Manager) MakeNot(r Ref) Ref {
	return Ref{r.v, !r.sign}
}

func (m *Manager) IsConstant(r Ref) bool { return r.v.tag == vTOP }
func (m *Manager) IsTop(r Ref) bool      { return r.v.tag == vTOP && !r.sign }
func (m *Manager) IsVar(r Ref) bool      { return r.v.tag == vVAR }
func (m *Manager) IsAnd(r Ref) bool      { return r.v.tag == vAND }
func (m *Manager) IsIff(r Ref) bool      { return r.v.tag == vIFF }
func (m *Manager) IsIte(r Ref) bool      { return r.v.tag == vITE }

// Sign reports r's own polarity bit. Callers that recurse through a
// DAG (the RBC inliner, the CNF translator) need this to recompose a
// vertex's accounted-for sign explicitly rather than only comparing
// whole references.
func (m *Manager) Sign(r Ref) bool { return r.sign }

func (m *Manager) VarIndex(r Ref) int {
	if r.v.tag != vVAR {
		panic("rbc: VarIndex of a non-variable reference")
	}
	return r.v.varIndex
}

// LeftChild/RightChild expose an AND or IFF vertex's two children
// exactly as stored, ignoring r's own sign — mirroring
// Rbc_GetLeftOpnd/Rbc_GetRightOpnd, which likewise never push the
// parent reference's sign down onto the children it returns.
func (m *Manager) LeftChild(r Ref) Ref {
	if r.v.tag != vAND && r.v.tag != vIFF {
		panic("rbc: LeftChild of a vertex with no binary children")
	}
	return r.v.c0
}

func (m *Manager) RightChild(r Ref) Ref {
	if r.v.tag != vAND && r.v.tag != vIFF {
		panic("rbc: RightChild of a vertex with no binary children")
	}
	return r.v.c1
}

// CondChild, ThenChild, and ElseChild expose an ITE vertex's three
// children.
func (m *Manager) CondChild(r Ref) Ref {
	if r.v.tag != vITE {
		panic("rbc: CondChild of a non-ITE reference")
	}
	return r.v.c0
}

func (m *Manager) ThenChild(r Ref) Ref {
	if r.v.tag != vITE {
		panic("rbc: ThenChild of a non-ITE reference")
	}
	return r.v.c1
}

func (m *Manager) ElseChild(r Ref) Ref {
	if r.v.tag != vITE {
		panic("rbc: ElseChild of a non-ITE reference")
	}
	return r.v.c2
}

// VarCount reports how many distinct variable indices have been
// allocated so far; the inliner sizes its substitution vector by it.
func (m *Manager) VarCount() int { return len(m.vars) }
