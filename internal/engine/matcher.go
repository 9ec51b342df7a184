package engine

import (
	"github.com/leonfyr/jisho/internal/ir"
	"github.com/leonfyr/jisho/internal/partition"
)

// Lexicon answers dictionary-membership questions for "@".
type Lexicon interface {
	Contains(word string) bool
}

// Matcher evaluates compiled expression trees against single words.
//
// Matcher holds no per-word state; one value can evaluate any number of
// trees.
type Matcher struct {
	lexicon Lexicon
}

// NewMatcher creates a Matcher whose membership tests use lex.
func NewMatcher(lex Lexicon) *Matcher {
	return &Matcher{lexicon: lex}
}

// Match reports whether word satisfies n.
//
//   - *ir.Pattern: anchored match of the whole word
//   - And / Or: short-circuit over children in order
//   - Not: negation
//   - Membership: word is in the lexicon
//   - Composite: some partition of word satisfies every segment
//
// A Composite holding shared variables never matches here; variables
// only have meaning inside the Solver.
func (m *Matcher) Match(n ir.Node, word string) bool {
	switch n := n.(type) {
	case *ir.Pattern:
		return n.Match(word)
	case ir.And:
		for _, c := range n.Children {
			if !m.Match(c, word) {
				return false
			}
		}
		return true
	case ir.Or:
		for _, c := range n.Children {
			if m.Match(c, word) {
				return true
			}
		}
		return false
	case ir.Not:
		return !m.Match(n.Child, word)
	case ir.Membership:
		return m.lexicon.Contains(word)
	case ir.Composite:
		return m.matchComposite(n, word)
	}
	return false
}

func (m *Matcher) matchComposite(c ir.Composite, word string) bool {
	if c.HasVariables() {
		return false
	}
	for _, pieces := range partition.Split(word, c.Format()) {
		if m.piecesMatch(c.Segments, pieces) {
			return true
		}
	}
	return false
}

func (m *Matcher) piecesMatch(segments []ir.Segment, pieces []string) bool {
	for i, s := range segments {
		switch s := s.(type) {
		case ir.PatternSegment:
			if !s.Pattern.Match(pieces[i]) {
				return false
			}
		case ir.MembershipSegment:
			if !m.lexicon.Contains(pieces[i]) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
