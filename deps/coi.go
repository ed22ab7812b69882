package deps

import (
	"github.com/go-symcore/symcore/hierarchy"
	"github.com/go-symcore/symcore/ir"
)

// ConeAnalyzer computes cone_of_influence over a flat hierarchy's
// per-variable assignment index (spec.md §4.E), using an Analyzer to
// extract the variables referenced by each assignment's expression.
type ConeAnalyzer struct {
	deps *Analyzer
	flat *hierarchy.Flat

	coi0Cache map[string]Set
}

func NewConeAnalyzer(deps *Analyzer, flat *hierarchy.Flat) *ConeAnalyzer {
	return &ConeAnalyzer{deps: deps, flat: flat, coi0Cache: make(map[string]Set)}
}

// coi0 returns the variables appearing in v's invar/init/next
// constraints (spec.md §4.E step 2). Results are cached only when
// canonical is true: "memoization is used for coi0 but only when the
// hierarchy being queried is the canonical one; otherwise results
// must not be cached" — canonical here means the ConeAnalyzer's own
// *hierarchy.Flat, as opposed to a caller passing a different,
// transient one through the same Analyzer's dependency cache.
func (c *ConeAnalyzer) coi0(v string, canonical bool) (Set, error) {
	if canonical {
		if cached, ok := c.coi0Cache[v]; ok {
			return cached, nil
		}
	}
	out := make(Set)
	for _, expr := range []*ir.Node{c.flat.InvarAssign[v], c.flat.InitAssign[v], c.flat.NextAssign[v]} {
		if expr == nil {
			continue
		}
		d, err := c.deps.GetDependencies(expr, c.deps.pool.Nil(), AllVars, false, nil)
		if err != nil {
			return nil, err
		}
		unionInto(out, d)
	}
	if canonical {
		c.coi0Cache[v] = out
	}
	return out, nil
}

// ConeOfInfluence implements cone_of_influence(base-vars) (spec.md
// §4.E): the least set containing base-vars closed under coi0.
func (c *ConeAnalyzer) ConeOfInfluence(baseVars []string) (Set, error) {
	result := make(Set)
	for _, v := range baseVars {
		result.add(v, c.deps.pool.FindAtom(v))
	}
	frontier := append([]string(nil), baseVars...)
	for len(frontier) > 0 {
		var next []string
		for _, v := range frontier {
			d, err := c.coi0(v, true)
			if err != nil {
				return nil, err
			}
			for name, node := range d {
				if _, seen := result[name]; !seen {
					result.add(name, node)
					next = append(next, name)
				}
			}
		}
		frontier = next
	}
	return result, nil
}

// CoiFixpoint implements the bounded coi_fixpoint(expr, steps)
// variant: base-vars are derived from expr's own dependencies, then
// at most steps rounds of coi0 closure are performed. The returned
// bool reports whether the frontier went empty (fixpoint reached)
// within the step budget.
func (c *ConeAnalyzer) CoiFixpoint(expr, context *ir.Node, steps int) (Set, bool, error) {
	base, err := c.deps.GetDependencies(expr, context, AllVars, false, nil)
	if err != nil {
		return nil, false, err
	}
	result := make(Set)
	unionInto(result, base)
	frontier := base.Names()
	reached := len(frontier) == 0

	for i := 0; i < steps && len(frontier) > 0; i++ {
		var next []string
		for _, v := range frontier {
			d, err := c.coi0(v, true)
			if err != nil {
				return nil, false, err
			}
			for name, node := range d {
				if _, seen := result[name]; !seen {
					result.add(name, node)
					next = append(next, name)
				}
			}
		}
		frontier = next
		reached = len(frontier) == 0
	}
	return result, reached, nil
}
