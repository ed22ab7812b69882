// Package symtype defines the tagged Type values symbol-table entries
// carry (spec.md §3 "Type"): boolean, integer, real, enum, signed and
// unsigned words, word-arrays, and arrays of a subtype over a bounded
// index range.
//
// Grounded on go-tony/schema/schema.go's tagged-kind value shape
// (`Schema.Type` switch over a closed string-enum of JSON Schema
// kinds), replaced here with the closed set of NuSMV scalar/compound
// types instead of an open JSON Schema type name.
package symtype
