// Package ir implements the hash-consed node pool that every other
// package in this module builds on (component A of the symbolic-model
// core): a small, fixed set of tagged n-ary nodes over the source
// language's operators, interned so that structurally equal nodes share
// identity ([Pool.FindNode]), plus a parallel non-interned constructor
// for nodes that must carry distinct line information
// ([Pool.NewLinedNode]).
//
// Grounded on go-tony/ir/node.go for the tree-of-children node shape
// (replacing the teacher's document node — object/array/string/tag —
// with a fixed operator-tagged expression node) and go-tony/ir/hash.go
// for maphash-based hashing, kept here as the Node.Hash fingerprint
// (the pool itself interns on each node's comparable key).
package ir
