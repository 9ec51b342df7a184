package ir

import (
	"strconv"
	"strings"
)

// MaxLength is the largest number allowed in a {…} length list.
const MaxLength = 10

// Unbounded marks an open upper bound in a LengthRange.
const Unbounded = -1

// LengthRange is an inclusive range of repetition counts.
// Hi == Unbounded means no upper bound.
type LengthRange struct {
	Lo int
	Hi int
}

// Contains reports whether n lies in the range.
func (r LengthRange) Contains(n int) bool {
	return n >= r.Lo && (r.Hi == Unbounded || n <= r.Hi)
}

// LengthSet is the union of the ranges of a {…} group.
type LengthSet []LengthRange

// Contains reports whether n lies in any range.
func (ls LengthSet) Contains(n int) bool {
	for _, r := range ls {
		if r.Contains(n) {
			return true
		}
	}
	return false
}

// Min returns the smallest allowed count.
func (ls LengthSet) Min() int {
	if len(ls) == 0 {
		return 0
	}
	m := ls[0].Lo
	for _, r := range ls[1:] {
		m = min(m, r.Lo)
	}
	return m
}

// Max returns the largest allowed count, or Unbounded.
func (ls LengthSet) Max() int {
	m := 0
	for _, r := range ls {
		if r.Hi == Unbounded {
			return Unbounded
		}
		m = max(m, r.Hi)
	}
	return m
}

// Fixed reports whether exactly one count is allowed.
func (ls LengthSet) Fixed() (int, bool) {
	if len(ls) == 0 {
		return 0, false
	}
	lo, hi := ls.Min(), ls.Max()
	if hi == Unbounded || lo != hi {
		return 0, false
	}
	return lo, true
}

// String renders the set in curly-body syntax, e.g. "1,3-5,7-".
func (ls LengthSet) String() string {
	parts := make([]string, len(ls))
	for i, r := range ls {
		switch {
		case r.Hi == Unbounded:
			parts[i] = strconv.Itoa(r.Lo) + "-"
		case r.Lo == r.Hi:
			parts[i] = strconv.Itoa(r.Lo)
		default:
			parts[i] = strconv.Itoa(r.Lo) + "-" + strconv.Itoa(r.Hi)
		}
	}
	return strings.Join(parts, ",")
}

// Length is the constraint one Composite segment places on its piece of
// a partitioned word: exactly N runes, or at least N when AtLeast is set.
type Length struct {
	N       int
	AtLeast bool
}

// Exact returns a Length of exactly n runes.
func Exact(n int) Length {
	return Length{N: n}
}

// AtLeast returns a Length of n or more runes.
func AtLeast(n int) Length {
	return Length{N: n, AtLeast: true}
}

// Allows reports whether a piece of n runes satisfies the constraint.
func (l Length) Allows(n int) bool {
	if l.AtLeast {
		return n >= l.N
	}
	return n == l.N
}

func (l Length) String() string {
	if l.AtLeast {
		return "-" + strconv.Itoa(l.N)
	}
	return strconv.Itoa(l.N)
}
