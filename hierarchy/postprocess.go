package hierarchy

import (
	"fmt"
	"sort"

	"github.com/go-symcore/symcore/ir"
	"github.com/go-symcore/symcore/symtab"
	"github.com/go-symcore/symcore/symtype"
)

const (
	processSelectorName = "PROCESS_SELECTOR"
	runningPrefix       = "running@"
)

// PostProcess runs the second pass of spec.md §4.C: process-selector
// synthesis, assignment rewriting, and the self-dependent-assignment
// cycle check. It does not flatten the stored constraint expressions;
// that step belongs to package flatten.
func (in *Instantiator) PostProcess() error {
	if err := in.synthesizeProcessSelector(); err != nil {
		return err
	}
	if err := in.rewriteNextAssigns(); err != nil {
		return err
	}
	return in.checkAssignmentCycles()
}

// synthesizeProcessSelector declares PROCESS_SELECTOR and one
// running@module define per process when more than one process name
// exists (spec.md §4.C). It is the only place this component
// fabricates symbols; if the user model already defines
// PROCESS_SELECTOR or any running@p name, instantiation fails.
func (in *Instantiator) synthesizeProcessSelector() error {
	if len(in.flat.Processes) <= 1 {
		return nil
	}
	if in.table.IsVar(processSelectorName) || in.table.IsDefine(processSelectorName) {
		return fmt.Errorf("hierarchy: model already declares %q, cannot synthesize process selector", processSelectorName)
	}
	enumType := symtype.NewEnum(append([]string(nil), in.flat.Processes...))
	if err := in.table.DeclareVar(in.layer, processSelectorName, symtab.InputVar, enumType); err != nil {
		return err
	}
	in.flat.DeclaredVars = append(in.flat.DeclaredVars, processSelectorName)

	selectorAtom := in.pool.FindAtom(processSelectorName)
	for _, proc := range in.flat.Processes {
		runningName := runningPrefix + proc
		if in.table.IsDefine(runningName) {
			return fmt.Errorf("hierarchy: model already defines %q, cannot synthesize process selector", runningName)
		}
		body := in.pool.FindNode(ir.EQUAL, selectorAtom, in.pool.FindAtom(proc))
		if err := in.table.DeclareDefine(in.layer, runningName, in.pool.Nil(), body); err != nil {
			return err
		}
	}
	return nil
}

// rewriteNextAssigns implements: "Rewrite assignments so that each
// next(v) := φ in process P becomes next(v) := case running@P: φ;
// default: v esac when processes exist; when processes do not exist,
// keep as is after checking that each variable has at most one
// next-assign" (the at-most-one check already holds by construction,
// since Flat.addNextAssign rejects a second one at declaration time).
func (in *Instantiator) rewriteNextAssigns() error {
	if len(in.flat.Processes) == 0 {
		return nil
	}
	for v, rhs := range in.flat.NextAssign {
		proc := owningProcess(in.flat.Processes, v)
		if proc == "" {
			continue
		}
		runningAtom := in.pool.FindAtom(runningPrefix + proc)
		vAtom := in.pool.FindAtom(v)
		arm := in.pool.FindNode(ir.COLON, runningAtom, rhs)
		defaultArm := in.pool.FindNode(ir.COLON, in.pool.True(), vAtom)
		caseChain := in.pool.FindNode(ir.CASE, arm, in.pool.FindNode(ir.CASE, defaultArm, in.pool.Failure()))
		in.flat.NextAssign[v] = caseChain
	}
	return nil
}

// owningProcess returns the longest process prefix that v is
// qualified under, or "" if v does not belong to any process.
func owningProcess(processes []string, v string) string {
	best := ""
	for _, p := range processes {
		if p == "" {
			continue
		}
		if len(v) > len(p) && v[:len(p)] == p && v[len(p)] == '.' {
			if len(p) > len(best) {
				best = p
			}
		}
	}
	return best
}

// checkAssignmentCycles runs a Tarjan-style strongly-connected-
// components check over the variable graph induced by invar and init
// assignment right-hand sides (next-assign right-hand sides add no
// edges), rejecting self-dependent cycles
// (spec.md §4.C "reject self-dependent assignment cycles (Tarjan on
// the variable graph)"). The graph edge set uses only bare ATOM/DOT
// identifiers reachable without crossing a NEXT, since only
// *current-state* dependencies make an assignment combinationally
// cyclic; a dependency arrives through NEXT only across a state
// transition and is never part of a same-step cycle.
func (in *Instantiator) checkAssignmentCycles() error {
	g := make(map[string][]string)
	addEdges := func(v string, rhs *ir.Node) {
		g[v] = append(g[v], currentStateRefs(rhs)...)
	}
	for v, rhs := range in.flat.InvarAssign {
		addEdges(v, rhs)
	}
	for v, rhs := range in.flat.InitAssign {
		addEdges(v, rhs)
	}

	names := make([]string, 0, len(g))
	for v := range g {
		names = append(names, v)
	}
	sort.Strings(names)

	t := &tarjan{graph: g, index: make(map[string]int), low: make(map[string]int)}
	for _, v := range names {
		if _, seen := t.index[v]; !seen {
			if err := t.strongconnect(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// currentStateRefs collects every ATOM/DOT leaf reachable without
// descending through a NEXT or ATTIME node.
func currentStateRefs(n *ir.Node) []string {
	var out []string
	var walk func(*ir.Node)
	walk = func(n *ir.Node) {
		if n == nil || n.IsNil() {
			return
		}
		switch n.Tag {
		case ir.ATOM:
			out = append(out, n.Name)
			return
		case ir.NEXT, ir.ATTIME:
			return
		case ir.DOT:
			out = append(out, n.CanonicalName())
			return
		}
		walk(n.Car)
		walk(n.Cdr)
	}
	walk(n)
	return out
}

// tarjan is a minimal strongly-connected-components finder used only
// to detect a cycle, not to enumerate every SCC's members for
// reporting beyond the offending variable.
type tarjan struct {
	graph   map[string][]string
	index   map[string]int
	low     map[string]int
	onStack map[string]bool
	stack   []string
	counter int
}

func (t *tarjan) strongconnect(v string) error {
	if t.onStack == nil {
		t.onStack = make(map[string]bool)
	}
	t.index[v] = t.counter
	t.low[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.graph[v] {
		if _, seen := t.index[w]; !seen {
			if _, known := t.graph[w]; known {
				if err := t.strongconnect(w); err != nil {
					return err
				}
			}
			if t.low[w] < t.low[v] {
				t.low[v] = t.low[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.low[v] {
				t.low[v] = t.index[w]
			}
		}
	}

	if t.low[v] == t.index[v] {
		var scc []string
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		if len(scc) > 1 {
			return fmt.Errorf("hierarchy: recursive-assignment: cycle through %v", scc)
		}
		if len(scc) == 1 && contains(t.graph[scc[0]], scc[0]) {
			return fmt.Errorf("hierarchy: recursive-assignment: %q depends on itself", scc[0])
		}
	}
	return nil
}

func contains(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}
