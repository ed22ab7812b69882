package rbc

// Mark and Unmark implement spec.md §4.G's reference-counted lifetime:
// a vertex with mark > 0 (and every vertex reachable from it) survives
// GC. TOP and variable vertices are never collected regardless of
// mark — they are the DAG's leaves, cheap to keep, and collecting them
// would require renumbering live variable indices, which no caller
// needs; only compound AND/IFF/ITE vertices are ever reclaimed.
func (m *Manager) Mark(r Ref) {
	r.v.mark++
}

func (m *Manager) Unmark(r Ref) {
	if r.v.mark > 0 {
		r.v.mark--
	}
}

// GCStats reports how many compound vertices GC freed versus kept.
type GCStats struct {
	Freed int
	Kept  int
}

// GC frees every AND/IFF/ITE vertex not reachable from a vertex with
// mark > 0. Vertex identity is stable across GC for every vertex that
// survives (spec.md §4.G): a kept vertex is never rebuilt, only
// dropped from the structural-hash tables if unreachable.
func (m *Manager) GC() GCStats {
	reachable := make(map[*vertex]bool)
	var walk func(vx *vertex)
	walk = func(vx *vertex) {
		if reachable[vx] {
			return
		}
		reachable[vx] = true
		switch vx.tag {
		case vAND, vIFF:
			walk(vx.c0.v)
			walk(vx.c1.v)
		case vITE:
			walk(vx.c0.v)
			walk(vx.c1.v)
			walk(vx.c2.v)
		}
	}

	reachable[m.top] = true
	for _, v := range m.vars {
		reachable[v] = true
	}
	for _, v := range m.andTable {
		if v.mark > 0 {
			walk(v)
		}
	}
	for _, v := range m.iffTable {
		if v.mark > 0 {
			walk(v)
		}
	}
	for _, v := range m.iteTable {
		if v.mark > 0 {
			walk(v)
		}
	}

	var stats GCStats
	for k, v := range m.andTable {
		if !reachable[v] {
			delete(m.andTable, k)
			stats.Freed++
		} else {
			stats.Kept++
		}
	}
	for k, v := range m.iffTable {
		if !reachable[v] {
			delete(m.iffTable, k)
			stats.Freed++
		} else {
			stats.Kept++
		}
	}
	for k, v := range m.iteTable {
		if !reachable[v] {
			delete(m.iteTable, k)
			stats.Freed++
		} else {
			stats.Kept++
		}
	}
	return stats
}
