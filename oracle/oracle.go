package oracle

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/go-symcore/symcore/boolean"
	"github.com/go-symcore/symcore/flatten"
	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
	"github.com/go-symcore/symcore/symtype"
)

// VarDomain names one finite-domain model variable, declared as the
// numeric enum "0".."Size-1" (boolean.Encoding's isNumericEnum case:
// its bit vector already IS the value's index in binary, so the
// oracle can assign bits straight from the integer value without a
// second encoding scheme to keep in sync).
type VarDomain struct {
	Name string
	Size int
}

// Model is a small finite-domain model built purely to drive P6:
// declare a handful of bounded integer variables, flatten and
// booleanize one scalar expression over them, and enumerate every
// assignment.
type Model struct {
	pool    *ir.Pool
	table   *symtab.Table
	layer   *symtab.Layer
	context *ir.Node
	vars    []VarDomain
}

// BuildModel declares each var as a state variable of a numeric enum
// type spanning 0..Size-1.
func BuildModel(vars []VarDomain) (*Model, error) {
	pool := ir.NewPool()
	table := symtab.New()
	layer, err := table.CreateLayer("oracle", "", symtab.AtTop())
	if err != nil {
		return nil, err
	}
	for _, v := range vars {
		if v.Size < 1 {
			return nil, fmt.Errorf("oracle: %q has non-positive domain size %d", v.Name, v.Size)
		}
		values := make([]string, v.Size)
		for i := 0; i < v.Size; i++ {
			values[i] = fmt.Sprintf("%d", i)
		}
		typ := symtype.NewEnum(values)
		if err := table.DeclareVar(layer, v.Name, symtab.StateVar, typ); err != nil {
			return nil, err
		}
	}
	return &Model{pool: pool, table: table, layer: layer, context: pool.Nil(), vars: vars}, nil
}

// Pool exposes the model's node pool so callers can build the ir.Node
// expression to check with FindAtom/FindNumber/FindNode.
func (m *Model) Pool() *ir.Pool { return m.pool }

// Mismatch records one assignment where the integer semantics and the
// booleanized circuit disagree.
type Mismatch struct {
	Assignment    map[string]int
	IntegerResult bool
	BooleanResult bool
}

// Result summarizes a full enumeration.
type Result struct {
	Checked    int
	Mismatches []Mismatch
}

// Agrees reports whether every assignment enumerated matched (P6
// holds for this expression over this model).
func (r Result) Agrees() bool { return len(r.Mismatches) == 0 }

// Check implements P6: booleanize boolExpr (a boolean-typed
// expression over m's variables), compile exprCode (the same
// expression written as expr-lang text) as an expr-lang program, and
// enumerate every assignment of m's variables comparing the two results.
func (m *Model) Check(boolExpr *ir.Node, exprCode string) (Result, error) {
	f := flatten.New(m.pool, m.table, nil)
	flat, err := f.Flatten(boolExpr, m.context, flatten.ExpandDefines)
	if err != nil {
		return Result{}, fmt.Errorf("oracle: flatten: %w", err)
	}

	enc := boolean.NewEncoding(m.pool, m.table, false)
	b := boolean.New(m.pool, m.table, enc, nil)
	bexpr, err := b.Expr2Bexpr(flat, m.context)
	if err != nil {
		return Result{}, fmt.Errorf("oracle: Expr2Bexpr: %w", err)
	}

	env := make(map[string]int, len(m.vars))
	for _, v := range m.vars {
		env[v.Name] = 0
	}
	program, err := expr.Compile(exprCode, expr.Env(env))
	if err != nil {
		return Result{}, fmt.Errorf("oracle: expr.Compile(%q): %w", exprCode, err)
	}

	bits := make(map[string]boolean.BitVec, len(m.vars))
	for _, v := range m.vars {
		vec, _, err := enc.BitsOf(v.Name)
		if err != nil {
			return Result{}, fmt.Errorf("oracle: %w", err)
		}
		bits[v.Name] = vec
	}

	var result Result
	for _, assign := range enumerate(m.vars) {
		out, err := expr.Run(program, assign)
		if err != nil {
			return Result{}, fmt.Errorf("oracle: expr.Run(%v): %w", assign, err)
		}
		intResult, ok := out.(bool)
		if !ok {
			return Result{}, fmt.Errorf("oracle: %q evaluated to non-boolean %v (%T)", exprCode, out, out)
		}

		bitAssign := make(map[*ir.Node]bool)
		for name, value := range assign {
			vec := bits[name]
			for i := range vec {
				bitAssign[vec[i]] = (value>>uint(i))&1 == 1
			}
		}
		boolResult := evalBool(bexpr, bitAssign)

		result.Checked++
		if intResult != boolResult {
			cp := make(map[string]int, len(assign))
			for k, v := range assign {
				cp[k] = v
			}
			result.Mismatches = append(result.Mismatches, Mismatch{
				Assignment:    cp,
				IntegerResult: intResult,
				BooleanResult: boolResult,
			})
		}
	}
	return result, nil
}

// enumerate produces every assignment of vars' cartesian product, in
// a fixed, reproducible order (vars kept in the order BuildModel was
// given them, the first variable varying fastest).
func enumerate(vars []VarDomain) []map[string]int {
	total := 1
	for _, v := range vars {
		total *= v.Size
	}
	out := make([]map[string]int, 0, total)
	for idx := 0; idx < total; idx++ {
		rem := idx
		assign := make(map[string]int, len(vars))
		for _, v := range vars {
			assign[v.Name] = rem % v.Size
			rem /= v.Size
		}
		out = append(out, assign)
	}
	return out
}

// evalBool evaluates a pure propositional ir.Node formula (the tags
// boolean/circuits.go's bAnd/bOr/bNot/bIff/bXor ever produce: AND, OR,
// NOT, IFF, XOR, TRUEEXP, FALSEEXP, and ATOM leaves) against a bit
// assignment keyed by the leaf node's own identity.
func evalBool(n *ir.Node, assign map[*ir.Node]bool) bool {
	switch n.Tag {
	case ir.TRUEEXP:
		return true
	case ir.FALSEEXP:
		return false
	case ir.ATOM:
		v, ok := assign[n]
		if !ok {
			panic(fmt.Sprintf("oracle: evalBool: unassigned leaf %v", n))
		}
		return v
	case ir.NOT:
		return !evalBool(n.Car, assign)
	case ir.AND:
		return evalBool(n.Car, assign) && evalBool(n.Cdr, assign)
	case ir.OR:
		return evalBool(n.Car, assign) || evalBool(n.Cdr, assign)
	case ir.IFF:
		return evalBool(n.Car, assign) == evalBool(n.Cdr, assign)
	case ir.XOR:
		return evalBool(n.Car, assign) != evalBool(n.Cdr, assign)
	}
	panic(fmt.Sprintf("oracle: evalBool: unhandled tag %v", n.Tag))
}
