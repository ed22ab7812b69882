package rbc

import (
	"errors"
	"fmt"
)

// ErrInvalidSubst is returned when a variable reached during SubstRbc
// has no entry in the substitution array — spec.md §4.G's
// INVALID_SUBST sentinel, modeled here as a short slice (or a nil Ref
// at an occupied index) rather than a fake vertex.
var ErrInvalidSubst = errors.New("rbc: variable has no valid substitution entry")

// SubstRbc returns a fresh RBC equal to f with every variable replaced
// by the reference stored in sub at its index (spec.md §4.G). DFS
// memoization is keyed on the underlying vertex (side table, not a
// scratch field on the vertex itself, per spec.md's DESIGN NOTES), so
// structural sharing in f is preserved in the result: two occurrences
// of the same subtree substitute once.
func (m *Manager) SubstRbc(f Ref, sub []Ref) (Ref, error) {
	memo := make(map[*vertex]Ref)
	var walk func(vx *vertex) (Ref, error)
	walk = func(vx *vertex) (Ref, error) {
		if r, ok := memo[vx]; ok {
			return r, nil
		}
		var result Ref
		switch vx.tag {
		case vTOP:
			result = Ref{vx, false}
		case vVAR:
			idx := vx.varIndex
			if idx >= len(sub) || sub[idx].v == nil {
				return Ref{}, ErrInvalidSubst
			}
			result = sub[idx]
		case vAND:
			lu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			ru, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeAnd(m.signed(lu, vx.c0.sign), m.signed(ru, vx.c1.sign), false)
		case vIFF:
			lu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			ru, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeIff(m.signed(lu, vx.c0.sign), m.signed(ru, vx.c1.sign), false)
		case vITE:
			iu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			tu, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			eu, err := walk(vx.c2.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeIte(m.signed(iu, vx.c0.sign), m.signed(tu, vx.c1.sign), m.signed(eu, vx.c2.sign), false)
		}
		memo[vx] = result
		return result, nil
	}
	res, err := walk(f.v)
	if err != nil {
		return Ref{}, err
	}
	return m.signed(res, f.sign), nil
}

// LogicalSubstRbc is SubstRbc's logical-level variant: substitution
// happens addressed by logical variable number (via phy2log), while
// the RBC itself stays addressed by physical variable index
// (spec.md §4.G). log2phy is accepted for signature symmetry with
// LogicalShiftRbc and for callers that build sub in logical order; it
// is not otherwise needed inside this walk, since sub's entries are
// already concrete physically-addressed references.
func (m *Manager) LogicalSubstRbc(f Ref, log2phy, phy2log map[int]int, sub []Ref) (Ref, error) {
	_ = log2phy
	memo := make(map[*vertex]Ref)
	var walk func(vx *vertex) (Ref, error)
	walk = func(vx *vertex) (Ref, error) {
		if r, ok := memo[vx]; ok {
			return r, nil
		}
		var result Ref
		switch vx.tag {
		case vTOP:
			result = Ref{vx, false}
		case vVAR:
			lg, ok := phy2log[vx.varIndex]
			if !ok {
				return Ref{}, fmt.Errorf("rbc: physical variable %d has no logical mapping", vx.varIndex)
			}
			if lg >= len(sub) || sub[lg].v == nil {
				return Ref{}, ErrInvalidSubst
			}
			result = sub[lg]
		case vAND:
			lu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			ru, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeAnd(m.signed(lu, vx.c0.sign), m.signed(ru, vx.c1.sign), false)
		case vIFF:
			lu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			ru, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeIff(m.signed(lu, vx.c0.sign), m.signed(ru, vx.c1.sign), false)
		case vITE:
			iu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			tu, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			eu, err := walk(vx.c2.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeIte(m.signed(iu, vx.c0.sign), m.signed(tu, vx.c1.sign), m.signed(eu, vx.c2.sign), false)
		}
		memo[vx] = result
		return result, nil
	}
	res, err := walk(f.v)
	if err != nil {
		return Ref{}, err
	}
	return m.signed(res, f.sign), nil
}

// ShiftRbc returns a fresh RBC equal to f with every variable index
// offset by delta (spec.md §4.G). A negative delta is legal provided
// every reached variable's shifted index stays non-negative.
func (m *Manager) ShiftRbc(f Ref, delta int) (Ref, error) {
	memo := make(map[*vertex]Ref)
	var walk func(vx *vertex) (Ref, error)
	walk = func(vx *vertex) (Ref, error) {
		if r, ok := memo[vx]; ok {
			return r, nil
		}
		var result Ref
		switch vx.tag {
		case vTOP:
			result = Ref{vx, false}
		case vVAR:
			newIdx := vx.varIndex + delta
			if newIdx < 0 {
				return Ref{}, fmt.Errorf("rbc: shift by %d takes variable %d out of range", delta, vx.varIndex)
			}
			result = m.MakeVar(newIdx)
		case vAND:
			lu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			ru, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeAnd(m.signed(lu, vx.c0.sign), m.signed(ru, vx.c1.sign), false)
		case vIFF:
			lu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			ru, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeIff(m.signed(lu, vx.c0.sign), m.signed(ru, vx.c1.sign), false)
		case vITE:
			iu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			tu, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			eu, err := walk(vx.c2.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeIte(m.signed(iu, vx.c0.sign), m.signed(tu, vx.c1.sign), m.signed(eu, vx.c2.sign), false)
		}
		memo[vx] = result
		return result, nil
	}
	res, err := walk(f.v)
	if err != nil {
		return Ref{}, err
	}
	return m.signed(res, f.sign), nil
}

// LogicalShiftRbc is ShiftRbc's logical-level variant: a reached
// variable's physical index is translated to its logical number
// (phy2log), shifted by delta at the logical level, then translated
// back to a physical index (log2phy) before a variable vertex is
// allocated for it.
func (m *Manager) LogicalShiftRbc(f Ref, log2phy, phy2log map[int]int, delta int) (Ref, error) {
	memo := make(map[*vertex]Ref)
	var walk func(vx *vertex) (Ref, error)
	walk = func(vx *vertex) (Ref, error) {
		if r, ok := memo[vx]; ok {
			return r, nil
		}
		var result Ref
		switch vx.tag {
		case vTOP:
			result = Ref{vx, false}
		case vVAR:
			lg, ok := phy2log[vx.varIndex]
			if !ok {
				return Ref{}, fmt.Errorf("rbc: physical variable %d has no logical mapping", vx.varIndex)
			}
			newLg := lg + delta
			if newLg < 0 {
				return Ref{}, fmt.Errorf("rbc: shift by %d takes logical variable %d out of range", delta, lg)
			}
			newPhy, ok := log2phy[newLg]
			if !ok {
				return Ref{}, fmt.Errorf("rbc: logical variable %d has no physical mapping", newLg)
			}
			result = m.MakeVar(newPhy)
		case vAND:
			lu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			ru, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeAnd(m.signed(lu, vx.c0.sign), m.signed(ru, vx.c1.sign), false)
		case vIFF:
			lu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			ru, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeIff(m.signed(lu, vx.c0.sign), m.signed(ru, vx.c1.sign), false)
		case vITE:
			iu, err := walk(vx.c0.v)
			if err != nil {
				return Ref{}, err
			}
			tu, err := walk(vx.c1.v)
			if err != nil {
				return Ref{}, err
			}
			eu, err := walk(vx.c2.v)
			if err != nil {
				return Ref{}, err
			}
			result = m.MakeIte(m.signed(iu, vx.c0.sign), m.signed(tu, vx.c1.sign), m.signed(eu, vx.c2.sign), false)
		}
		memo[vx] = result
		return result, nil
	}
	res, err := walk(f.v)
	if err != nil {
		return Ref{}, err
	}
	return m.signed(res, f.sign), nil
}
