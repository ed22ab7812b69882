package rbc

import "sort"

// cnfState holds component I's CNF-variable-allocation bookkeeping,
// lazily attached to a Manager the first time CNF conversion is
// requested. Grounded on NuSMV's rbc/rbcCnf.c: Rbc_Convert2Cnf's
// maxUnchangedRbcVariable/maxCnfVariable high-water marks and
// Rbc_get_node_cnf's split between variables that pass through to CNF
// under their own RBC index (the "model" subset) and internal gate
// variables that get a fresh Tseitin number (the "cnf" subset).
type cnfState struct {
	maxUnchangedRbcVariable int
	maxCnfVariable          int
	modelOf                 map[*vertex]int
	cnfOf                   map[*vertex]int
	rbcOfCnfModel           map[int]int
	rbcOfCnfCnf             map[int]*vertex
}

func (m *Manager) cnf() *cnfState {
	if m.cnfst == nil {
		m.cnfst = &cnfState{
			modelOf:       make(map[*vertex]int),
			cnfOf:         make(map[*vertex]int),
			rbcOfCnfModel: make(map[int]int),
			rbcOfCnfCnf:   make(map[int]*vertex),
		}
	}
	return m.cnfst
}

// PrepareCnfConversion extends the unchanged prefix to cover every RBC
// variable allocated so far, provided no internal CNF variable has yet
// diverged from a pure passthrough of RBC indices. Call once before
// each top-level to_cnf run (rbcCnf.c's extension step).
func (m *Manager) PrepareCnfConversion() {
	st := m.cnf()
	maxVar := len(m.vars)
	if st.maxUnchangedRbcVariable == st.maxCnfVariable && st.maxUnchangedRbcVariable < maxVar {
		st.maxUnchangedRbcVariable = maxVar
		st.maxCnfVariable = maxVar
	}
}

// CnfVarFor returns the CNF variable assigned to r's underlying
// vertex, ignoring r's own sign (mirroring Rbc_get_node_cnf, which
// allocates per node, not per signed literal), allocating one on
// first request: RBC variables within the unchanged prefix reuse
// varIndex+1 directly, everything else gets a fresh counter value.
func (m *Manager) CnfVarFor(r Ref) int {
	st := m.cnf()
	v := r.v
	if id, ok := st.modelOf[v]; ok {
		return id
	}
	if id, ok := st.cnfOf[v]; ok {
		return id
	}
	if v.tag == vVAR && v.varIndex+1 <= st.maxUnchangedRbcVariable {
		id := v.varIndex + 1
		st.modelOf[v] = id
		st.rbcOfCnfModel[id] = v.varIndex
		if id > st.maxCnfVariable {
			st.maxCnfVariable = id
		}
		return id
	}
	st.maxCnfVariable++
	id := st.maxCnfVariable
	st.cnfOf[v] = id
	st.rbcOfCnfCnf[id] = v
	return id
}

// MaxCnfVariable reports the highest CNF variable allocated so far.
func (m *Manager) MaxCnfVariable() int { return m.cnf().maxCnfVariable }

// CnfVarToRbcIndex returns the RBC variable index cnfVar corresponds
// to, or -1 if cnfVar names an internal gate variable, or is unknown.
func (m *Manager) CnfVarToRbcIndex(cnfVar int) int {
	if idx, ok := m.cnf().rbcOfCnfModel[cnfVar]; ok {
		return idx
	}
	return -1
}

// ModelCnfVars returns, in ascending order, every CNF variable
// allocated so far that corresponds to an original RBC model
// variable (spec.md's to_cnf "vars" result).
func (m *Manager) ModelCnfVars() []int {
	st := m.cnf()
	out := make([]int, 0, len(st.rbcOfCnfModel))
	for id := range st.rbcOfCnfModel {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
