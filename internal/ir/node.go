package ir

import "strings"

// Node is a sealed interface for compiled query expressions.
// Only And, Or, Not, *Pattern, Membership and Composite implement it.
//
// Trees are built once per query and never mutated afterwards, so a
// Node may be evaluated any number of times.
type Node interface {
	node()
}

// And matches when every child matches.
type And struct {
	Children []Node
}

// Or matches when any child matches.
type Or struct {
	Children []Node
}

// Not matches when its child does not.
type Not struct {
	Child Node
}

// Membership is the bare "@" leaf: the word itself is in the dictionary.
type Membership struct{}

// Composite is a sequence of segments matched against consecutive
// pieces of a word. It is produced for any run containing "@" or a
// shared variable.
type Composite struct {
	Source   string
	Segments []Segment
}

func (And) node()        {}
func (Or) node()         {}
func (Not) node()        {}
func (Membership) node() {}
func (Composite) node()  {}

// Format returns the length constraint of each segment, in order.
func (c Composite) Format() []Length {
	out := make([]Length, len(c.Segments))
	for i, s := range c.Segments {
		out[i] = s.Length()
	}
	return out
}

// Variables returns the distinct variable names in order of first use.
func (c Composite) Variables() []byte {
	var seen [26]bool
	var out []byte
	for _, s := range c.Segments {
		v, ok := s.(VariableSegment)
		if !ok || seen[v.Name-'A'] {
			continue
		}
		seen[v.Name-'A'] = true
		out = append(out, v.Name)
	}
	return out
}

// HasVariables reports whether any segment is a shared variable.
func (c Composite) HasVariables() bool {
	for _, s := range c.Segments {
		if _, ok := s.(VariableSegment); ok {
			return true
		}
	}
	return false
}

// Mark is the voicing modifier attached to a variable reference.
type Mark int

const (
	MarkNone       Mark = iota
	MarkVoiced          // X"
	MarkSemiVoiced      // X'
)

func (m Mark) String() string {
	switch m {
	case MarkVoiced:
		return `"`
	case MarkSemiVoiced:
		return `'`
	}
	return ""
}

// Segment is a sealed interface for the parts of a Composite.
type Segment interface {
	segment()

	// Length is the constraint on the piece assigned to this segment.
	Length() Length
}

// PatternSegment is a wildcard run between membership markers and
// variables.
type PatternSegment struct {
	Pattern *Pattern
}

// MembershipSegment is an embedded "@": its piece must be a dictionary
// word. The empty string is never a word, so the minimum is one rune.
type MembershipSegment struct{}

// VariableSegment is a shared unknown A–Z. Declared is the length fixed
// by a |X|=d declaration, or 0.
type VariableSegment struct {
	Name     byte
	Mark     Mark
	Declared int
}

func (PatternSegment) segment()    {}
func (MembershipSegment) segment() {}
func (VariableSegment) segment()   {}

// Length implements Segment.
func (s PatternSegment) Length() Length {
	if n, ok := s.Pattern.FixedLength(); ok {
		return Exact(n)
	}
	return AtLeast(s.Pattern.MinLength())
}

// Length implements Segment.
func (MembershipSegment) Length() Length {
	return AtLeast(1)
}

// Length implements Segment. An undeclared variable may be empty.
func (s VariableSegment) Length() Length {
	if s.Declared > 0 {
		return Exact(s.Declared)
	}
	return AtLeast(0)
}

func (s VariableSegment) String() string {
	return string(s.Name) + s.Mark.String()
}

// FormatSegments renders segments back to query syntax.
func FormatSegments(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		switch s := s.(type) {
		case PatternSegment:
			b.WriteString(s.Pattern.Source)
		case MembershipSegment:
			b.WriteByte('@')
		case VariableSegment:
			b.WriteString(s.String())
		}
	}
	return b.String()
}
