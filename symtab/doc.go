// Package symtab implements the symbol table and its insertion-ordered,
// atomically-removable layers (spec.md §4.B, component B).
//
// Grounded on go-tony/schema/context_registry.go's ContextRegistry
// (RWMutex-guarded registry, forward and reverse string indexes) for
// the overall "named registry with a reverse lookup" shape, generalized
// from a flat context map into named Layers holding typed entries, and
// on NuSMV's compile/symb_table/SymbTable.h and ResolveSymbol.h for the
// exact symbol-category probe order used by resolution and the
// ResolveResult tagged-variant shape.
package symtab
