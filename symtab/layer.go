package symtab

// Policy controls where a new layer is inserted relative to the
// existing ones (spec.md §4.B create_layer: "position dictated by
// policy (top/bottom/before/after other layer)").
type Policy struct {
	Position PolicyPosition
	// Relative names the other layer Position {Before,After} is
	// relative to. Ignored for Top/Bottom.
	Relative string
}

type PolicyPosition int

const (
	Top PolicyPosition = iota
	Bottom
	Before
	After
)

func AtTop() Policy    { return Policy{Position: Top} }
func AtBottom() Policy { return Policy{Position: Bottom} }
func PlacedBefore(other string) Policy { return Policy{Position: Before, Relative: other} }
func PlacedAfter(other string) Policy  { return Policy{Position: After, Relative: other} }

// Layer is an insertion-ordered, named group of symbol entries that
// can be declared and removed as a unit (spec.md §3 "Layer").
type Layer struct {
	Name    string
	Class   string
	entries map[string]*Entry
	order   []string // insertion order, for Iter's stable traversal
}

func newLayer(name, class string) *Layer {
	return &Layer{Name: name, Class: class, entries: make(map[string]*Entry)}
}

// Has reports whether name is declared in this layer.
func (l *Layer) Has(name string) bool {
	_, ok := l.entries[name]
	return ok
}

func (l *Layer) get(name string) (*Entry, bool) {
	e, ok := l.entries[name]
	return e, ok
}

func (l *Layer) put(e *Entry) {
	if _, exists := l.entries[e.Name]; !exists {
		l.order = append(l.order, e.Name)
	}
	l.entries[e.Name] = e
}

// Names returns the layer's symbol names in declaration order.
func (l *Layer) Names() []string {
	return append([]string(nil), l.order...)
}
