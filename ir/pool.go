package ir

import "sync"

// Pool is a hash-consing node table (spec.md §4.A). A Pool is safe for
// concurrent use; the core packages built on it are themselves
// single-threaded per spec.md's concurrency design notes, but a host
// embedding several independent compilations may still want to share
// or parallelize pools, so the table itself takes no chances.
type Pool struct {
	mu      sync.Mutex
	table   map[nodeKey]*Node
	nilNode *Node
}

// NewPool returns an empty pool with its distinguished Nil node
// already interned.
func NewPool() *Pool {
	p := &Pool{table: make(map[nodeKey]*Node)}
	p.nilNode = &Node{Tag: NilTag}
	p.table[keyOf(p.nilNode)] = p.nilNode
	return p
}

// Nil returns the pool's unique empty node.
func (p *Pool) Nil() *Node {
	return p.nilNode
}

// FindNode returns the unique canonical node with the given shape,
// allocating it on first request and returning the existing node on
// every subsequent request with the same (tag, car, cdr). car and cdr
// must themselves be canonical nodes from this pool (or nil, meaning
// "absent child" — not to be confused with p.Nil(), which is itself a
// canonical node with its own identity).
//
// FindNode is for structural (non-leaf, non-lined) nodes. Leaves that
// carry scalar payloads go through FindAtom/FindString/FindNumber;
// nodes that must carry a specific source line go through
// NewLinedNode, which deliberately opts out of interning.
func (p *Pool) FindNode(tag Tag, car, cdr *Node) *Node {
	n := &Node{Tag: tag, Car: car, Cdr: cdr}
	return p.intern(n)
}

// NewLinedNode constructs a node carrying the given source line and
// does NOT intern it: two calls with identical (tag, car, cdr, line)
// return distinct *Node values. This exists because line information
// is extrinsic to an expression's meaning — interning would either
// discard the line (breaking diagnostics) or fragment sharing across
// otherwise-identical subtrees parsed at different source positions.
func (p *Pool) NewLinedNode(tag Tag, car, cdr *Node, line int) *Node {
	return &Node{Tag: tag, Car: car, Cdr: cdr, Line: line}
}

// FindAtom interns an ATOM leaf by name.
func (p *Pool) FindAtom(name string) *Node {
	n := &Node{Tag: ATOM, Name: name}
	return p.intern(n)
}

// FindString is an alias for FindAtom retained for callers that think
// of identifiers as interned strings rather than as ATOM nodes (the
// hierarchy and symtab packages both do, since a symbol name is their
// natural map key).
func (p *Pool) FindString(s string) *Node {
	return p.FindAtom(s)
}

// FindNumber interns an arbitrary-precision integer constant.
func (p *Pool) FindNumber(value bigInt) *Node {
	n := &Node{Tag: NUMBER, Int: value}
	return p.intern(n)
}

// FindWordConstant interns a sized word constant. signed selects
// between NUMBER_SIGNED_WORD and NUMBER_UNSIGNED_WORD.
func (p *Pool) FindWordConstant(value bigInt, width int, signed bool) *Node {
	tag := NUMBER_UNSIGNED_WORD
	if signed {
		tag = NUMBER_SIGNED_WORD
	}
	n := &Node{Tag: tag, Int: value, Width: width}
	return p.intern(n)
}

// True and False return the pool's canonical boolean constants.
func (p *Pool) True() *Node  { return p.intern(&Node{Tag: TRUEEXP}) }
func (p *Pool) False() *Node { return p.intern(&Node{Tag: FALSEEXP}) }

// Failure returns the pool's canonical FAILURE leaf.
func (p *Pool) Failure() *Node { return p.intern(&Node{Tag: FAILURE}) }

func (p *Pool) intern(n *Node) *Node {
	k := keyOf(n)
	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.table[k]; ok {
		return existing
	}
	p.table[k] = n
	return n
}

// Size reports the number of canonical nodes currently interned,
// counting the Nil node. Intended for diagnostics/logging, not for
// control flow.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.table)
}
