package sexpr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-symcore/symcore/rbc"
)

// WriteSexpr dumps r in the bit-exact format spec.md §6 specifies.
// AND/IFF vertices are always binary in this RBC, so "(AND e1 e2 …)"
// never grows past two operands per vertex; a conjunction built from
// nested AND vertices dumps as nested "(AND (AND e1 e2) e3)" rather
// than being flattened into one n-ary form, preserving the DAG's
// actual shape rather than a canonicalized print.
func WriteSexpr(w io.Writer, m *rbc.Manager, r rbc.Ref) error {
	_, err := io.WriteString(w, Sexpr(m, r))
	return err
}

// Sexpr returns r's dump as a string.
func Sexpr(m *rbc.Manager, r rbc.Ref) string {
	var b strings.Builder
	writeRef(&b, m, r)
	return b.String()
}

func writeRef(b *strings.Builder, m *rbc.Manager, r rbc.Ref) {
	if m.IsConstant(r) {
		if m.Sign(r) {
			b.WriteString("FALSE")
		} else {
			b.WriteString("TRUE")
		}
		return
	}
	if m.Sign(r) {
		b.WriteString("(NOT ")
		writeRef(b, m, m.MakeNot(r))
		b.WriteByte(')')
		return
	}
	switch {
	case m.IsVar(r):
		b.WriteByte('X')
		b.WriteString(strconv.Itoa(m.VarIndex(r)))
	case m.IsAnd(r):
		b.WriteString("(AND ")
		writeRef(b, m, m.LeftChild(r))
		b.WriteByte(' ')
		writeRef(b, m, m.RightChild(r))
		b.WriteByte(')')
	case m.IsIff(r):
		b.WriteString("(IFF ")
		writeRef(b, m, m.LeftChild(r))
		b.WriteByte(' ')
		writeRef(b, m, m.RightChild(r))
		b.WriteByte(')')
	case m.IsIte(r):
		b.WriteString("(ITE ")
		writeRef(b, m, m.CondChild(r))
		b.WriteByte(' ')
		writeRef(b, m, m.ThenChild(r))
		b.WriteByte(' ')
		writeRef(b, m, m.ElseChild(r))
		b.WriteByte(')')
	default:
		panic(fmt.Sprintf("sexpr: unrecognized reference %v", r))
	}
}
