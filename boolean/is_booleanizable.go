package boolean

import (
	"github.com/go-symcore/symcore/deps"
	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
)

// IsBooleanizable implements is_booleanizable(expr, word-
// unbooleanizable) (spec.md §4.F): true iff every variable expr
// depends on (through defines, parameters, NEXT) has a finite value
// domain. Grounded on package deps's GetDependencies for the
// traversal, reusing symtype.Type.IsFiniteRange for the per-variable
// check exactly as Encoding does when deciding what to encode.
func IsBooleanizable(analyzer *deps.Analyzer, table *symtab.Table, expr, context *ir.Node, wordUnbooleanizable bool) (bool, error) {
	vars, err := analyzer.GetDependencies(expr, context, deps.AllVars, false, nil)
	if err != nil {
		return false, err
	}
	for name := range vars {
		if !table.IsVar(name) {
			// Array-defines, variable-arrays, and functions surface
			// through get_dependencies too; none of them carry a
			// scalar Type of their own to check, and none can appear
			// as a bare leaf in a fully flattened expression anyway.
			continue
		}
		if !table.GetVarType(name).IsFiniteRange(wordUnbooleanizable) {
			return false, nil
		}
	}
	return true, nil
}
