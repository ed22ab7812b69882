// Package sexpr dumps an RBC formula in the bit-exact s-expression
// format spec.md §6 names (used for debugging): variables as "XN",
// negation as "(NOT e)", and "(AND e1 e2 ...)"/"(IFF e1 e2)"/"(ITE c t
// e)" for the three gate tags.
//
// The writer-takes-io.Writer-returns-error shape follows
// go-tony/encode/encode.go's Encode.
package sexpr
