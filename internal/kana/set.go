package kana

import "strings"

// Alphabet is the fixed phonetic alphabet every class expression is
// evaluated against. Its order defines the iteration order of Set.Runes.
const Alphabet = "あいうえおかがきぎくぐけげこごさざしじすずせぜそぞただちぢつづてでとどなにぬねのはばぱひびぴふぶぷへべぺほぼぽまみむめもやゆよらりるれろわをんー"

var (
	alphabetRunes = []rune(Alphabet)
	alphabetIndex = buildIndex(alphabetRunes)
)

func buildIndex(runes []rune) map[rune]int {
	idx := make(map[rune]int, len(runes))
	for i, r := range runes {
		idx[r] = i
	}
	return idx
}

// Size is the number of runes in Alphabet.
func Size() int {
	return len(alphabetRunes)
}

// InAlphabet reports whether r belongs to Alphabet.
func InAlphabet(r rune) bool {
	_, ok := alphabetIndex[r]
	return ok
}

// Set is an immutable set of alphabet runes.
//
// The zero value is the empty set. Sets are values: every operation
// returns a new Set and never mutates its receiver, so a Set can be
// shared freely between compiled patterns.
type Set struct {
	bits [2]uint64
}

// Empty returns the empty set.
func Empty() Set {
	return Set{}
}

// Full returns the set of every rune in Alphabet.
func Full() Set {
	var s Set
	for i := range alphabetRunes {
		s = s.with(i)
	}
	return s
}

// Of returns the set of the alphabet runes of text. Runes outside the
// alphabet are ignored.
func Of(text string) Set {
	var s Set
	for _, r := range text {
		if i, ok := alphabetIndex[r]; ok {
			s = s.with(i)
		}
	}
	return s
}

func (s Set) with(i int) Set {
	s.bits[i/64] |= 1 << uint(i%64)
	return s
}

func (s Set) has(i int) bool {
	return s.bits[i/64]&(1<<uint(i%64)) != 0
}

// Contains reports whether r is in the set.
func (s Set) Contains(r rune) bool {
	i, ok := alphabetIndex[r]
	return ok && s.has(i)
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	return Set{bits: [2]uint64{s.bits[0] | o.bits[0], s.bits[1] | o.bits[1]}}
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	return Set{bits: [2]uint64{s.bits[0] & o.bits[0], s.bits[1] & o.bits[1]}}
}

// Complement returns the alphabet runes not in s.
func (s Set) Complement() Set {
	full := Full()
	return Set{bits: [2]uint64{full.bits[0] &^ s.bits[0], full.bits[1] &^ s.bits[1]}}
}

// Len returns the number of runes in the set.
func (s Set) Len() int {
	n := 0
	for i := range alphabetRunes {
		if s.has(i) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return s.bits[0] == 0 && s.bits[1] == 0
}

// Runes returns the members in alphabet order.
func (s Set) Runes() []rune {
	out := make([]rune, 0, s.Len())
	for i, r := range alphabetRunes {
		if s.has(i) {
			out = append(out, r)
		}
	}
	return out
}

// String renders the members in alphabet order.
func (s Set) String() string {
	var b strings.Builder
	for _, r := range s.Runes() {
		b.WriteRune(r)
	}
	return b.String()
}
