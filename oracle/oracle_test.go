package oracle

import (
	"testing"

	"github.com/go-symcore/symcore/ir"
)

// TestEqualityOfSumAgreesWithIntegerSemantics is spec.md's own P6
// scenario: x, y range 0..3, expression x = y + 1, enumerated over
// all 16 assignments.
func TestEqualityOfSumAgreesWithIntegerSemantics(t *testing.T) {
	m, err := BuildModel([]VarDomain{{Name: "x", Size: 4}, {Name: "y", Size: 4}})
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	pool := m.Pool()
	expr := pool.FindNode(ir.EQUAL,
		pool.FindAtom("x"),
		pool.FindNode(ir.PLUS, pool.FindAtom("y"), pool.FindNumber("1")),
	)

	result, err := m.Check(expr, "x == y + 1")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Checked != 16 {
		t.Fatalf("Checked = %d, want 16", result.Checked)
	}
	if !result.Agrees() {
		t.Fatalf("mismatches: %+v", result.Mismatches)
	}
}

func TestInequalityAgreesWithIntegerSemantics(t *testing.T) {
	m, err := BuildModel([]VarDomain{{Name: "x", Size: 4}, {Name: "y", Size: 4}})
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	pool := m.Pool()
	expr := pool.FindNode(ir.LT, pool.FindAtom("x"), pool.FindAtom("y"))

	result, err := m.Check(expr, "x < y")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Checked != 16 {
		t.Fatalf("Checked = %d, want 16", result.Checked)
	}
	if !result.Agrees() {
		t.Fatalf("mismatches: %+v", result.Mismatches)
	}
}

func TestBooleanConnectiveAgreesWithIntegerSemantics(t *testing.T) {
	m, err := BuildModel([]VarDomain{{Name: "x", Size: 8}, {Name: "y", Size: 8}})
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	pool := m.Pool()
	// (x = y) | (x < 2): exercises AND/OR/EQUAL/LT together.
	expr := pool.FindNode(ir.OR,
		pool.FindNode(ir.EQUAL, pool.FindAtom("x"), pool.FindAtom("y")),
		pool.FindNode(ir.LT, pool.FindAtom("x"), pool.FindNumber("2")),
	)

	result, err := m.Check(expr, "x == y || x < 2")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Checked != 64 {
		t.Fatalf("Checked = %d, want 64", result.Checked)
	}
	if !result.Agrees() {
		t.Fatalf("mismatches: %+v", result.Mismatches)
	}
}

func TestMismatchIsReportedWithOffendingAssignment(t *testing.T) {
	m, err := BuildModel([]VarDomain{{Name: "x", Size: 4}})
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	pool := m.Pool()
	// Deliberately mismatched oracle expression (x < 2, true for x in
	// {0,1}) against the booleanized x == 0, to confirm Check actually
	// detects and reports a disagreement rather than vacuously
	// agreeing.
	expr := pool.FindNode(ir.EQUAL, pool.FindAtom("x"), pool.FindNumber("0"))

	result, err := m.Check(expr, "x < 2")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Agrees() {
		t.Fatalf("expected mismatches between x == 0 and x < 2, got none")
	}
	for _, mm := range result.Mismatches {
		if mm.IntegerResult == mm.BooleanResult {
			t.Fatalf("mismatch entry %+v has equal results", mm)
		}
	}
}
