package sexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-symcore/symcore/rbc"
)

// ReadSexpr parses the bit-exact grammar WriteSexpr produces back into
// an rbc.Ref built on m. It is the inverse operation, used by
// cmd/symcore to read an RBC formula from a file or stdin without
// requiring a host to embed the full core pipeline just to exercise
// components G/H/I.
//
// The grammar is small and bespoke enough (five token shapes, no
// precedence, no operators outside the fixed AND/IFF/ITE/NOT set) that
// no example repo's parser combinator or lexer library fits it better
// than a direct hand-written scanner; see DESIGN.md.
func ReadSexpr(m *rbc.Manager, s string) (rbc.Ref, error) {
	p := &parser{toks: tokenize(s)}
	tree, err := p.parseExpr()
	if err != nil {
		return rbc.Ref{}, err
	}
	if p.pos != len(p.toks) {
		return rbc.Ref{}, fmt.Errorf("sexpr: unexpected trailing input at token %q", p.toks[p.pos])
	}
	return build(m, tree)
}

// sexp is an untyped parse tree: either an atom or a parenthesized
// list of sub-expressions.
type sexp struct {
	atom string
	list []*sexp
}

func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

type parser struct {
	toks []string
	pos  int
}

func (p *parser) parseExpr() (*sexp, error) {
	if p.pos >= len(p.toks) {
		return nil, fmt.Errorf("sexpr: unexpected end of input")
	}
	tok := p.toks[p.pos]
	if tok != "(" {
		p.pos++
		return &sexp{atom: tok}, nil
	}
	p.pos++ // consume "("
	var list []*sexp
	for {
		if p.pos >= len(p.toks) {
			return nil, fmt.Errorf("sexpr: unterminated list")
		}
		if p.toks[p.pos] == ")" {
			p.pos++
			return &sexp{list: list}, nil
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
}

// build converts a parsed sexp into an rbc.Ref, re-creating gates
// through m's own constructors so the result is properly hash-consed
// and structurally simplified exactly as if it had been built by a
// direct sequence of Make calls.
func build(m *rbc.Manager, e *sexp) (rbc.Ref, error) {
	if e.atom != "" {
		switch e.atom {
		case "TRUE":
			return m.True(), nil
		case "FALSE":
			return m.False(), nil
		}
		if strings.HasPrefix(e.atom, "X") {
			idx, err := strconv.Atoi(e.atom[1:])
			if err != nil {
				return rbc.Ref{}, fmt.Errorf("sexpr: bad variable token %q: %w", e.atom, err)
			}
			return m.MakeVar(idx), nil
		}
		return rbc.Ref{}, fmt.Errorf("sexpr: unrecognized atom %q", e.atom)
	}
	if len(e.list) == 0 {
		return rbc.Ref{}, fmt.Errorf("sexpr: empty list")
	}
	head, ok := e.list[0].asAtom()
	if !ok {
		return rbc.Ref{}, fmt.Errorf("sexpr: expected operator atom in list head")
	}
	switch head {
	case "NOT":
		if len(e.list) != 2 {
			return rbc.Ref{}, fmt.Errorf("sexpr: NOT takes exactly one operand")
		}
		r, err := build(m, e.list[1])
		if err != nil {
			return rbc.Ref{}, err
		}
		return m.MakeNot(r), nil
	case "AND":
		if len(e.list) != 3 {
			return rbc.Ref{}, fmt.Errorf("sexpr: AND takes exactly two operands")
		}
		l, err := build(m, e.list[1])
		if err != nil {
			return rbc.Ref{}, err
		}
		r, err := build(m, e.list[2])
		if err != nil {
			return rbc.Ref{}, err
		}
		return m.MakeAnd(l, r, false), nil
	case "IFF":
		if len(e.list) != 3 {
			return rbc.Ref{}, fmt.Errorf("sexpr: IFF takes exactly two operands")
		}
		l, err := build(m, e.list[1])
		if err != nil {
			return rbc.Ref{}, err
		}
		r, err := build(m, e.list[2])
		if err != nil {
			return rbc.Ref{}, err
		}
		return m.MakeIff(l, r, false), nil
	case "ITE":
		if len(e.list) != 4 {
			return rbc.Ref{}, fmt.Errorf("sexpr: ITE takes exactly three operands")
		}
		c, err := build(m, e.list[1])
		if err != nil {
			return rbc.Ref{}, err
		}
		t, err := build(m, e.list[2])
		if err != nil {
			return rbc.Ref{}, err
		}
		el, err := build(m, e.list[3])
		if err != nil {
			return rbc.Ref{}, err
		}
		return m.MakeIte(c, t, el, false), nil
	default:
		return rbc.Ref{}, fmt.Errorf("sexpr: unrecognized operator %q", head)
	}
}

func (e *sexp) asAtom() (string, bool) {
	if e.atom == "" {
		return "", false
	}
	return e.atom, true
}
