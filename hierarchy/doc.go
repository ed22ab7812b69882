// Package hierarchy implements module instantiation (spec.md §4.C,
// component C): walking a parsed module hierarchy, binding formal to
// actual parameters, populating a symtab.Table, and accumulating a
// flat hierarchy record of constraints, assignments, and properties.
//
// Grounded on go-tony/schema/instantiate.go's InstantiateDef
// (parameter-substitution-by-clone-and-walk, ParseDefSignature for
// name(params) parsing), generalized from schema-definition parameters
// to module formal/actual parameter binding, and on NuSMV's module
// instantiation stack / recursive-module detection described in
// spec.md §4.C itself.
package hierarchy
