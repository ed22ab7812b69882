package symtab

import (
	"fmt"
	"sync"

	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtype"
)

// TriggerAction names the transition a trigger fires on (spec.md
// §4.B "add_trigger / remove_trigger (action, fn): installs callbacks
// for add/remove/redeclare; triggers fire at the transitions").
type TriggerAction int

const (
	OnAdd TriggerAction = iota
	OnRemove
	OnRedeclare
)

// TriggerFunc is invoked with the affected entry's canonical name.
type TriggerFunc func(name string)

// Table is the symbol table: an ordered sequence of Layers plus a
// global constant namespace (constants are declared at most once
// globally, spec.md §4.B) and a trigger registry.
//
// Table is safe for concurrent use, mirroring
// go-tony/schema/context_registry.go's RWMutex-guarded registry; the
// compiler pipeline built on top of it is itself single-threaded per
// spec.md's concurrency design notes, but nothing about the table
// requires that.
type Table struct {
	mu     sync.RWMutex
	layers []*Layer // in resolution-probe order (top layer first)

	triggers map[TriggerAction][]TriggerFunc
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{triggers: make(map[TriggerAction][]TriggerFunc)}
}

// CreateLayer creates a new empty layer at the position dictated by
// policy. Fails if name already exists.
func (t *Table) CreateLayer(name, class string, policy Policy) (*Layer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, l := range t.layers {
		if l.Name == name {
			return nil, fmt.Errorf("symtab: layer %q already exists", name)
		}
	}
	l := newLayer(name, class)
	switch policy.Position {
	case Top:
		t.layers = append([]*Layer{l}, t.layers...)
	case Bottom:
		t.layers = append(t.layers, l)
	case Before, After:
		idx := -1
		for i, other := range t.layers {
			if other.Name == policy.Relative {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("symtab: layer %q references unknown layer %q", name, policy.Relative)
		}
		if policy.Position == After {
			idx++
		}
		t.layers = append(t.layers[:idx], append([]*Layer{l}, t.layers[idx:]...)...)
	}
	return l, nil
}

// RemoveLayer removes the layer and every symbol it owns, firing
// registered remove triggers for each symbol first (spec.md §4.B).
func (t *Table) RemoveLayer(name string) error {
	t.mu.Lock()
	idx := -1
	var l *Layer
	for i, other := range t.layers {
		if other.Name == name {
			idx, l = i, other
			break
		}
	}
	if idx < 0 {
		t.mu.Unlock()
		return fmt.Errorf("symtab: no such layer %q", name)
	}
	removed := l.Names()
	t.layers = append(t.layers[:idx], t.layers[idx+1:]...)
	fns := append([]TriggerFunc(nil), t.triggers[OnRemove]...)
	t.mu.Unlock()

	for _, name := range removed {
		for _, fn := range fns {
			fn(name)
		}
	}
	return nil
}

// Layer returns the named layer, or nil if it does not exist.
func (t *Table) Layer(name string) *Layer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, l := range t.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// AddTrigger installs a callback for the given transition.
func (t *Table) AddTrigger(action TriggerAction, fn TriggerFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.triggers[action] = append(t.triggers[action], fn)
}

// RemoveTrigger removes every previously installed trigger for action
// (there is no stable identity to remove a single one by, since
// TriggerFunc values are not comparable in general; callers that need
// fine-grained removal should wrap their callback in a closure keyed
// by a sentinel of their own).
func (t *Table) RemoveTrigger(action TriggerAction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.triggers, action)
}

func (t *Table) declare(layer *Layer, e *Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if layer.Has(e.Name) {
		return fmt.Errorf("symtab: redeclaration of %q in layer %q", e.Name, layer.Name)
	}
	layer.put(e)
	t.fireAddLocked(e.Name)
	return nil
}

func (t *Table) fireAddLocked(name string) {
	fns := t.triggers[OnAdd]
	for _, fn := range fns {
		fn(name)
	}
}

// DeclareVar declares a state, input, or frozen variable, consuming
// ownership of typ (spec.md §4.B).
func (t *Table) DeclareVar(layer *Layer, name string, kind VarKind, typ *symtype.Type) error {
	return t.declare(layer, newVariable(name, kind, typ))
}

// DeclareDefine declares a define whose body is not evaluated.
func (t *Table) DeclareDefine(layer *Layer, name string, context, body *ir.Node) error {
	return t.declare(layer, newDefine(name, context, body))
}

// DeclareArrayDefine declares an array-define with one body per cell.
func (t *Table) DeclareArrayDefine(layer *Layer, name string, bodies []*ir.Node) error {
	return t.declare(layer, newArrayDefine(name, bodies))
}

// DeclareVariableArray declares the composite array symbol; the
// caller remains responsible for declaring the scalar element
// variables separately (spec.md §4.B, §4.C).
func (t *Table) DeclareVariableArray(layer *Layer, name string, typ *symtype.Type, elements []string) error {
	e := newVariableArray(name, typ)
	e.ArrayElements = append([]string(nil), elements...)
	return t.declare(layer, e)
}

// DeclareConstant declares a constant. Constants are declared at most
// once globally: Declare rejects it if any layer already has it.
func (t *Table) DeclareConstant(layer *Layer, name string) error {
	t.mu.RLock()
	existing := t.find(name, CatConstant)
	t.mu.RUnlock()
	if existing != nil {
		return fmt.Errorf("symtab: constant %q already declared globally", name)
	}
	return t.declare(layer, newConstant(name))
}

// DeclareParameter declares a module-instantiation formal parameter
// bound to an (as-yet-unflattened) actual expression under context.
func (t *Table) DeclareParameter(layer *Layer, name string, context, actual *ir.Node) error {
	return t.declare(layer, newParameter(name, context, actual))
}

// DeclareFunction declares an external function signature (arity
// only; the body is an out-of-scope type-checker concern, spec.md §1).
func (t *Table) DeclareFunction(layer *Layer, name string, arity int) error {
	return t.declare(layer, newFunction(name, arity))
}

// Predicates, spec.md §4.B "is_symbol_var / _define / _parameter /
// _constant / _array_define / _variable_array (name)".

func (t *Table) IsVar(name string) bool          { return t.hasCategory(name, CatVar) }
func (t *Table) IsDefine(name string) bool       { return t.hasCategory(name, CatDefine) }
func (t *Table) IsParameter(name string) bool    { return t.hasCategory(name, CatParameter) }
func (t *Table) IsConstant(name string) bool     { return t.hasCategory(name, CatConstant) }
func (t *Table) IsArrayDefine(name string) bool  { return t.hasCategory(name, CatArrayDefine) }
func (t *Table) IsVariableArray(name string) bool { return t.hasCategory(name, CatVariableArray) }

func (t *Table) hasCategory(name string, cat Category) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.find(name, cat) != nil
}

// Accessors, spec.md §4.B "get_var_type / get_define_body /
// get_define_context / get_actual_parameter / get_array_define_body".
// Each requires the symbol to exist; callers that are not already
// certain should resolve first.

func (t *Table) GetVarType(name string) *symtype.Type {
	t.mu.RLock()
	e := t.find(name, CatVar)
	t.mu.RUnlock()
	if e != nil {
		return e.Type
	}
	panic(fmt.Sprintf("symtab: GetVarType: %q is not a declared variable", name))
}

func (t *Table) GetDefineBody(name string) *ir.Node {
	t.mu.RLock()
	e := t.find(name, CatDefine)
	t.mu.RUnlock()
	if e != nil {
		return e.DefineBody
	}
	panic(fmt.Sprintf("symtab: GetDefineBody: %q is not a declared define", name))
}

func (t *Table) GetDefineContext(name string) *ir.Node {
	t.mu.RLock()
	e := t.find(name, CatDefine)
	t.mu.RUnlock()
	if e != nil {
		return e.DefineContext
	}
	panic(fmt.Sprintf("symtab: GetDefineContext: %q is not a declared define", name))
}

func (t *Table) GetActualParameter(name string) (context, actual *ir.Node) {
	t.mu.RLock()
	e := t.find(name, CatParameter)
	t.mu.RUnlock()
	if e != nil {
		return e.ParamContext, e.ParamActual
	}
	panic(fmt.Sprintf("symtab: GetActualParameter: %q is not a declared parameter", name))
}

func (t *Table) GetArrayDefineBody(name string) []*ir.Node {
	t.mu.RLock()
	e := t.find(name, CatArrayDefine)
	t.mu.RUnlock()
	if e != nil {
		return e.ArrayDefineBody
	}
	panic(fmt.Sprintf("symtab: GetArrayDefineBody: %q is not a declared array-define", name))
}

// Iter produces the (eagerly computed, but logically lazy from the
// caller's point of view) sequence of declared symbols whose category
// bitmask intersects mask, in layer order then declaration order
// within each layer, further filtered by filter if non-nil (spec.md
// §4.B "iter(mask, [filter])").
func (t *Table) Iter(mask Category, filter func(*Entry) bool) []*Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*Entry
	for _, l := range t.layers {
		for _, name := range l.order {
			e := l.entries[name]
			if e.cat&mask == 0 {
				continue
			}
			if filter != nil && !filter(e) {
				continue
			}
			out = append(out, e)
		}
	}
	return out
}
