package diagnostic

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestErrorFormatsSingleLine(t *testing.T) {
	e := New(UndefinedSymbol, "model.tony", 12, "symbol \"foo\" is not defined")
	want := `Error at model.tony:12: symbol "foo" is not defined`
	if got := e.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		UndefinedSymbol:              "undefined-symbol",
		RedefiningSymbol:             "redefining-symbol",
		AmbiguousSymbol:              "ambiguous-symbol",
		RecursiveModule:              "recursive-module",
		CircularDefine:               "circular-define",
		RecursiveAssignment:          "recursive-assignment",
		TypeMismatch:                 "type-mismatch",
		InvalidRange:                 "invalid-range",
		OutOfBounds:                  "out-of-bounds",
		NonConstant:                  "non-constant",
		NonDeterministicWithoutLayer: "non-deterministic-without-layer",
		InternalInconsistency:        "internal-inconsistency",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("underlying parse failure")
	e := Wrap(TypeMismatch, "f.tony", 3, "expected boolean", cause)
	if !errors.Is(e, cause) {
		t.Fatalf("errors.Is(e, cause) = false, want true")
	}
	if got := errors.Unwrap(e); got != cause {
		t.Fatalf("Unwrap() = %v, want %v", got, cause)
	}
}

func TestIsKindMatchesSameKindOnly(t *testing.T) {
	e := New(CircularDefine, "f.tony", 7, "define cycle: a -> b -> a")
	if !IsKind(e, CircularDefine) {
		t.Fatalf("IsKind(e, CircularDefine) = false, want true")
	}
	if IsKind(e, RecursiveModule) {
		t.Fatalf("IsKind(e, RecursiveModule) = true, want false")
	}
}

func TestIsKindThroughWrappedError(t *testing.T) {
	inner := New(OutOfBounds, "f.tony", 1, "index 5 exceeds range 0..3")
	outer := Wrap(OutOfBounds, "f.tony", 1, "index 5 exceeds range 0..3", inner)
	if !IsKind(outer, OutOfBounds) {
		t.Fatalf("IsKind did not see through Wrap")
	}
}

func TestErrorsIsAcrossDistinctInstancesSameKind(t *testing.T) {
	a := New(NonConstant, "f.tony", 4, "range bound is not constant")
	b := New(NonConstant, "f.tony", 9, "unrelated occurrence")
	if !errors.Is(a, b) {
		t.Fatalf("errors.Is(a, b) = false, want true for matching Kind")
	}
}

func TestWriteTerminalNonTTYIsUncolorized(t *testing.T) {
	var buf bytes.Buffer
	e := New(AmbiguousSymbol, "f.tony", 2, "symbol \"x\" resolves in two modules")
	if err := WriteTerminal(&buf, e); err != nil {
		t.Fatalf("WriteTerminal: %v", err)
	}
	got := buf.String()
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("expected no ANSI escapes for a non-terminal writer, got %q", got)
	}
	want := "Error at f.tony:2: symbol \"x\" resolves in two modules\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteWarningNonTTYIsUncolorized(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWarning(&buf, "f.tony", 8, "assignment narrows a wider declared range"); err != nil {
		t.Fatalf("WriteWarning: %v", err)
	}
	want := "Warning at f.tony:8: assignment narrows a wider declared range\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestToLSPTranslatesLineToZeroIndexed(t *testing.T) {
	e := New(RecursiveAssignment, "f.tony", 10, "next(x) depends on x in the same layer")
	d := ToLSP(e)
	if d.Range.Start.Line != 9 {
		t.Fatalf("got Line %d, want 9 (1-indexed 10 translated down)", d.Range.Start.Line)
	}
	if d.Message != e.Message {
		t.Fatalf("got Message %q, want %q", d.Message, e.Message)
	}
}

func TestWarningToLSPZeroLineClampsToZero(t *testing.T) {
	d := WarningToLSP("f.tony", 0, "no source line available")
	if d.Range.Start.Line != 0 {
		t.Fatalf("got Line %d, want 0", d.Range.Start.Line)
	}
}
