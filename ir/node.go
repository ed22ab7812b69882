package ir

import "fmt"

// Node is an immutable, hash-consed AST node: a tag plus up to two
// children (spec.md §4.A "Node"). Most operators use only Car (unary)
// or Car+Cdr (binary); leaves use neither. A handful of leaf kinds
// carry a scalar payload instead of children (Name, Int, Width).
//
// Nodes returned by [Pool.FindNode] are canonical: two calls with the
// same (Tag, Car, Cdr) return the same *Node. Nodes returned by
// [Pool.NewLinedNode] are not interned, since they exist precisely to
// carry a distinguishing Line that would otherwise break structural
// sharing.
type Node struct {
	Tag Tag
	Car *Node
	Cdr *Node

	// Line is the source line this node was parsed from, or 0 for a
	// node returned by FindNode (interned nodes have no single
	// "home" line, since sharing is the point).
	Line int

	// Scalar payloads; populated only for the leaf kinds named.
	Name  string // ATOM
	Int   bigInt // NUMBER, NUMBER_UNSIGNED_WORD, NUMBER_SIGNED_WORD
	Width int    // NUMBER_UNSIGNED_WORD, NUMBER_SIGNED_WORD
}

// bigInt is an arbitrary-precision integer payload. NuSMV constants
// are unbounded; spec.md §3 requires exact values, not float64.
type bigInt = string

// String renders n as an s-expression, e.g. "(AND x y)" or "x". It is
// meant for diagnostics and tests, not for the bit-exact sexpr dump
// (that format applies only to RBC vertices; see package sexpr).
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Tag {
	case NilTag:
		return "()"
	case ATOM:
		return n.Name
	case NUMBER:
		return string(n.Int)
	case NUMBER_UNSIGNED_WORD:
		return fmt.Sprintf("0ud%d_%s", n.Width, n.Int)
	case NUMBER_SIGNED_WORD:
		return fmt.Sprintf("0sd%d_%s", n.Width, n.Int)
	case TRUEEXP:
		return "TRUE"
	case FALSEEXP:
		return "FALSE"
	case FAILURE:
		return "FAILURE"
	}
	if n.Cdr == nil {
		return fmt.Sprintf("(%s %s)", n.Tag, n.Car.String())
	}
	return fmt.Sprintf("(%s %s %s)", n.Tag, n.Car.String(), n.Cdr.String())
}

// IsNil reports whether n is the pool's distinguished empty node.
func (n *Node) IsNil() bool {
	return n == nil || n.Tag == NilTag
}

// CanonicalName renders an identifier node (ATOM, DOT, ARRAY, or BIT,
// per spec.md §3 "Identifier") as a flat dotted string, e.g.
// "p1.v" or "cells.3". It is the form stored as a symtab.Table key and
// compared by prefix for process-ownership lookups; it is not the
// general debug s-expression format [Node.String] uses for arbitrary
// expressions.
func (n *Node) CanonicalName() string {
	if n == nil || n.IsNil() {
		return ""
	}
	switch n.Tag {
	case ATOM:
		return n.Name
	case NUMBER:
		return string(n.Int)
	case DOT:
		prefix := n.Car.CanonicalName()
		if prefix == "" {
			return n.Cdr.CanonicalName()
		}
		return prefix + "." + n.Cdr.CanonicalName()
	case ARRAY:
		return fmt.Sprintf("%s[%s]", n.Car.CanonicalName(), n.Cdr.CanonicalName())
	case BIT:
		return fmt.Sprintf("%s{%s}", n.Car.CanonicalName(), n.Cdr.CanonicalName())
	default:
		return n.String()
	}
}
