package engine

// Bindings is the variable table of one Solve call: 26 entries, A–Z.
//
// Each entry is unbound, bound to a substring, and independently may
// carry a length fixed by a |X|=d declaration. Bindings follow stack
// discipline: Bind returns the function that restores the previous
// state, and the solver calls it when it backtracks out of the depth
// that made the binding.
//
// Bindings is owned by a single Solver and is not safe for concurrent use.
type Bindings struct {
	values   [26]string
	bound    [26]bool
	declared [26]int
}

// NewBindings creates an empty table with the declared lengths.
func NewBindings(declared map[byte]int) *Bindings {
	b := &Bindings{}
	for name, n := range declared {
		b.declared[name-'A'] = n
	}
	return b
}

// Value returns the substring bound to name.
func (b *Bindings) Value(name byte) (string, bool) {
	i := name - 'A'
	return b.values[i], b.bound[i]
}

// Declared returns the declared length of name, or 0.
func (b *Bindings) Declared(name byte) int {
	return b.declared[name-'A']
}

// Bind sets name to value and returns the undo function.
func (b *Bindings) Bind(name byte, value string) func() {
	i := name - 'A'
	prevValue, prevBound := b.values[i], b.bound[i]
	b.values[i], b.bound[i] = value, true
	return func() {
		b.values[i], b.bound[i] = prevValue, prevBound
	}
}

// Bound returns the number of bound variables.
func (b *Bindings) Bound() int {
	n := 0
	for _, ok := range b.bound {
		if ok {
			n++
		}
	}
	return n
}
