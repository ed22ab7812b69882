package ir

import "hash/maphash"

// nodeKey is the structural identity a node is interned under: two
// FindNode calls produce the same *Node iff they produce equal keys.
// Children are compared by pointer since children of an interned node
// are themselves always canonical — structural equality of a subtree
// collapses to pointer equality once that subtree is itself
// hash-consed (spec.md §4.A).
type nodeKey struct {
	tag   Tag
	car   *Node
	cdr   *Node
	name  string
	num   bigInt
	width int
}

func keyOf(n *Node) nodeKey {
	return nodeKey{tag: n.Tag, car: n.Car, cdr: n.Cdr, name: n.Name, num: n.Int, width: n.Width}
}

var hashSeed = maphash.MakeSeed()

// hash64 returns a maphash-based hash of k's tag, name, number and
// width; the children are not hashed. The pool's intern map is keyed
// on nodeKey itself (a comparable struct), so hash64 serves only
// Node.Hash and need not be collision-free.
func (k nodeKey) hash64() uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(k.tag))
	h.WriteString(k.name)
	h.WriteString(string(k.num))
	var w [8]byte
	w[0] = byte(k.width)
	w[1] = byte(k.width >> 8)
	h.Write(w[:2])
	return h.Sum64()
}

// Hash returns n's hash64 fingerprint (children not included), suitable for logging cache
// statistics or external dedup tables that want a cheap fingerprint
// without comparing full subtrees. It panics on a nil node, matching
// the teacher's own Node.Hash() contract.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	return keyOf(n).hash64()
}
