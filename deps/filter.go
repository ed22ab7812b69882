package deps

// Filter selects which variable occurrences get_dependencies keeps
// (spec.md §4.E: "filter selects any subset of {current, next, input,
// frozen, defines}; variables not in the filter are dropped").
//
// Defines are always expanded recursively regardless of FilterDefines
// (spec.md §4.E states this unconditionally); FilterDefines instead
// controls whether the define's own name is *additionally* kept in
// the result alongside the dependencies of its body — an Open
// Question decision recorded in DESIGN.md, since the prose names
// "defines" as a filterable category without saying what dropping it
// means when expansion is unconditional.
type Filter uint8

const (
	FilterCurrent Filter = 1 << iota
	FilterNext
	FilterInput
	FilterFrozen
	FilterDefines
)

// All accepts every occurrence kind; AllVars accepts every variable
// kind (current/next/input/frozen) but not define names themselves.
const (
	AllVars Filter = FilterCurrent | FilterNext | FilterInput | FilterFrozen
	All     Filter = AllVars | FilterDefines
)

func (f Filter) has(bit Filter) bool { return f&bit != 0 }
