package ir

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/leonfyr/jisho/internal/kana"
)

// Fragment is a sealed interface for the pieces of a compiled pattern.
// Only Literal, AnyChar, AnyRun, Class, ClassRun, Sized and Group
// implement it.
type Fragment interface {
	fragment()
}

// Literal matches its text exactly.
type Literal struct {
	Text string
}

// AnyChar matches one rune (?).
type AnyChar struct{}

// AnyRun matches zero or more runes (*).
type AnyRun struct{}

// Class matches one rune of Set (?[…]).
type Class struct {
	Set kana.Set
}

// ClassRun matches zero or more runes of Set (*[…]).
type ClassRun struct {
	Set kana.Set
}

// Sized matches a run whose length is in Lengths (*{…}). A nil Set
// allows any rune; otherwise every rune must be in *Set (*[…]{…}).
type Sized struct {
	Set     *kana.Set
	Lengths LengthSet
}

// Group matches any one of its alternatives, each a fragment sequence.
type Group struct {
	Alternatives [][]Fragment
}

func (Literal) fragment()  {}
func (AnyChar) fragment()  {}
func (AnyRun) fragment()   {}
func (Class) fragment()    {}
func (ClassRun) fragment() {}
func (Sized) fragment()    {}
func (Group) fragment()    {}

// Pattern is a compiled wildcard expression anchored at both ends.
type Pattern struct {
	Source    string
	Fragments []Fragment

	re *regexp.Regexp
}

func (*Pattern) node() {}

// NewPattern compiles fragments into an anchored matcher.
func NewPattern(source string, fragments []Fragment) (*Pattern, error) {
	var b strings.Builder
	b.WriteString(`^(?:`)
	writeSequence(&b, fragments)
	b.WriteString(`)$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", source, err)
	}
	return &Pattern{Source: source, Fragments: fragments, re: re}, nil
}

// Match reports whether word matches the whole pattern.
func (p *Pattern) Match(word string) bool {
	return p.re.MatchString(word)
}

// FixedLength returns the rune length every match has, if there is one.
func (p *Pattern) FixedLength() (int, bool) {
	lo, hi := sequenceBounds(p.Fragments)
	if hi == Unbounded || lo != hi {
		return 0, false
	}
	return lo, true
}

// MinLength returns the shortest possible match length in runes.
func (p *Pattern) MinLength() int {
	lo, _ := sequenceBounds(p.Fragments)
	return lo
}

// MaxLength returns the longest possible match length, or Unbounded.
func (p *Pattern) MaxLength() int {
	_, hi := sequenceBounds(p.Fragments)
	return hi
}

// HasRun reports whether the pattern contains a variable-length fragment.
func (p *Pattern) HasRun() bool {
	_, ok := p.FixedLength()
	return !ok
}

// FirstRunes returns the runes a match can start with when they are
// known from the leading fragment alone.
func (p *Pattern) FirstRunes() ([]rune, bool) {
	if len(p.Fragments) == 0 {
		return nil, false
	}
	switch f := p.Fragments[0].(type) {
	case Literal:
		for _, r := range f.Text {
			return []rune{r}, true
		}
	case Class:
		return f.Set.Runes(), true
	case Sized:
		if f.Set != nil && f.Lengths.Min() > 0 {
			return f.Set.Runes(), true
		}
	}
	return nil, false
}

func (p *Pattern) String() string {
	return p.Source
}

// never is a character class RE2 accepts that matches no rune.
const never = `[^\x00-\x{10FFFF}]`

func writeSequence(b *strings.Builder, fragments []Fragment) {
	for _, f := range fragments {
		writeFragment(b, f)
	}
}

func writeFragment(b *strings.Builder, f Fragment) {
	switch f := f.(type) {
	case Literal:
		b.WriteString(regexp.QuoteMeta(f.Text))
	case AnyChar:
		b.WriteString(`.`)
	case AnyRun:
		b.WriteString(`.*`)
	case Class:
		b.WriteString(classExpr(f.Set))
	case ClassRun:
		b.WriteString(classExpr(f.Set))
		b.WriteString(`*`)
	case Sized:
		atom := `.`
		if f.Set != nil {
			atom = classExpr(*f.Set)
		}
		b.WriteString(`(?:`)
		for i, r := range f.Lengths {
			if i > 0 {
				b.WriteByte('|')
			}
			b.WriteString(`(?:` + atom + repeat(r) + `)`)
		}
		b.WriteString(`)`)
	case Group:
		b.WriteString(`(?:`)
		for i, alt := range f.Alternatives {
			if i > 0 {
				b.WriteByte('|')
			}
			writeSequence(b, alt)
		}
		b.WriteString(`)`)
	}
}

func classExpr(s kana.Set) string {
	if s.IsEmpty() {
		return never
	}
	return "[" + regexp.QuoteMeta(s.String()) + "]"
}

func repeat(r LengthRange) string {
	switch {
	case r.Hi == Unbounded:
		return "{" + strconv.Itoa(r.Lo) + ",}"
	case r.Lo == r.Hi:
		return "{" + strconv.Itoa(r.Lo) + "}"
	default:
		return "{" + strconv.Itoa(r.Lo) + "," + strconv.Itoa(r.Hi) + "}"
	}
}

// sequenceBounds returns the minimum and maximum rune length of a
// fragment sequence; the maximum is Unbounded for open runs.
func sequenceBounds(fragments []Fragment) (int, int) {
	lo, hi := 0, 0
	for _, f := range fragments {
		flo, fhi := fragmentBounds(f)
		lo += flo
		if hi != Unbounded {
			if fhi == Unbounded {
				hi = Unbounded
			} else {
				hi += fhi
			}
		}
	}
	return lo, hi
}

func fragmentBounds(f Fragment) (int, int) {
	switch f := f.(type) {
	case Literal:
		n := len([]rune(f.Text))
		return n, n
	case AnyChar, Class:
		return 1, 1
	case AnyRun, ClassRun:
		return 0, Unbounded
	case Sized:
		return f.Lengths.Min(), f.Lengths.Max()
	case Group:
		lo, hi := -1, 0
		for _, alt := range f.Alternatives {
			alo, ahi := sequenceBounds(alt)
			if lo == -1 || alo < lo {
				lo = alo
			}
			if hi != Unbounded {
				if ahi == Unbounded {
					hi = Unbounded
				} else {
					hi = max(hi, ahi)
				}
			}
		}
		if lo == -1 {
			lo = 0
		}
		return lo, hi
	}
	return 0, Unbounded
}
