package flatten

import "github.com/go-symcore/symcore/ir"

// ResolveNumber evaluates expr (already flattened or not) under
// context to a compile-time numeric constant, recursively following
// defines and parameters (spec.md §4.D resolve_number). ok is false
// when expr does not reduce to a constant — the spec's "sentinel
// meaning not constant".
func (f *Flattener) ResolveNumber(expr, context *ir.Node) (result *ir.Node, ok bool) {
	flat, err := f.Flatten(expr, context, ExpandDefines)
	if err != nil {
		return nil, false
	}
	switch flat.Tag {
	case ir.NUMBER, ir.NUMBER_UNSIGNED_WORD, ir.NUMBER_SIGNED_WORD:
		return flat, true
	}
	return nil, false
}
