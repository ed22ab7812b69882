package rbc

// MakeIff builds sign * IFF(l, r) (spec.md §4.G): folds the trivial
// cases (x↔x, x↔¬x, x↔true, x↔false), pushes child signs to the
// vertex's outer sign so IFF children are always stored positive, then
// orders and interns.
func (m *Manager) MakeIff(l, r Ref, sign bool) Ref {
	if l == r {
		return m.signed(m.True(), sign)
	}
	if l == m.MakeNot(r) {
		return m.signed(m.False(), sign)
	}
	if l == m.True() {
		return m.signed(r, sign)
	}
	if r == m.True() {
		return m.signed(l, sign)
	}
	if l == m.False() {
		return m.signed(m.MakeNot(r), sign)
	}
	if r == m.False() {
		return m.signed(m.MakeNot(l), sign)
	}

	outer := sign
	if l.sign {
		l = m.MakeNot(l)
		outer = !outer
	}
	if r.sign {
		r = m.MakeNot(r)
		outer = !outer
	}
	return m.signed(m.internIff(l, r), outer)
}

func (m *Manager) internIff(l, r Ref) Ref {
	if r.less(l) {
		l, r = r, l
	}
	key := gateKey{l.v.id, l.sign, r.v.id, r.sign}
	if v, ok := m.iffTable[key]; ok {
		return Ref{v, false}
	}
	v := &vertex{tag: vIFF, id: m.nextID, c0: l, c1: r}
	m.nextID++
	m.iffTable[key] = v
	return Ref{v, false}
}

// makeOr is an internal helper: RBC has no first-class OR vertex
// (spec.md §3's RBC tag set is {TOP, VAR, AND, IFF, ITE}), so OR(l,r)
// is built via De Morgan, OR(l,r) = ¬AND(¬l,¬r), exactly as
// Rbc_MakeIte's own fallback branches do in the original.
func (m *Manager) makeOr(l, r Ref, sign bool) Ref {
	return m.MakeAnd(m.MakeNot(l), m.MakeNot(r), !sign)
}

// MakeIte builds sign * ITE(i, t, e) (spec.md §4.G): folds when i is
// constant, when an arm is constant (reducing to AND/OR), when t == e,
// when i equals one arm (reducing to AND/OR), or when t = ¬e (reducing
// to IFF); otherwise interns a ternary ITE vertex. Grounded directly on
// Rbc_MakeIte's single-pass cascade (rbc/rbcFormula.c) — despite its
// `while(changed)` dressing, every branch returns immediately, so it
// is a straight-line cascade, not an iterated fixpoint, and this
// mirrors that.
func (m *Manager) MakeIte(i, t, e Ref, sign bool) Ref {
	if i == m.True() {
		return m.signed(t, sign)
	}
	if i == m.False() {
		return m.signed(e, sign)
	}
	if t == m.True() {
		return m.signed(m.makeOr(i, e, false), sign)
	}
	if t == m.False() {
		return m.signed(m.MakeAnd(m.MakeNot(i), e, false), sign)
	}
	if e == m.True() {
		return m.signed(m.makeOr(m.MakeNot(i), t, false), sign)
	}
	if e == m.False() {
		return m.signed(m.MakeAnd(i, t, false), sign)
	}
	if i == t {
		return m.signed(m.makeOr(i, e, false), sign)
	}
	if i == e {
		return m.signed(m.MakeAnd(i, t, false), sign)
	}
	if t == e {
		return m.signed(t, sign)
	}
	if i == m.MakeNot(t) {
		return m.signed(m.MakeAnd(m.MakeNot(i), e, false), sign)
	}
	if i == m.MakeNot(e) {
		return m.signed(m.makeOr(m.MakeNot(i), t, false), sign)
	}
	if t == m.MakeNot(e) {
		return m.signed(m.MakeIff(i, t, false), sign)
	}

	key := iteKey{i.v.id, i.sign, t.v.id, t.sign, e.v.id, e.sign}
	if v, ok := m.iteTable[key]; ok {
		return m.signed(Ref{v, false}, sign)
	}
	v := &vertex{tag: vITE, id: m.nextID, c0: i, c1: t, c2: e}
	m.nextID++
	m.iteTable[key] = v
	return m.signed(Ref{v, false}, sign)
}
