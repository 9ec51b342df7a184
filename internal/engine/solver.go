package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/leonfyr/jisho/internal/dict"
	"github.com/leonfyr/jisho/internal/ir"
	"github.com/leonfyr/jisho/internal/kana"
	"github.com/leonfyr/jisho/internal/partition"
)

// Solver finds joint answers to a multi-slot Problem: one dictionary
// word per slot such that every shared variable takes a single value
// across all slots.
//
// The search is depth-first over Problem.Slots. A Solver is single-use
// per Solve call and not safe for concurrent use.
type Solver struct {
	dict     *dict.Dictionary
	matcher  *Matcher
	problem  *Problem
	deadline *Deadline

	bindings *Bindings
	answer   []string
	results  []string
	seen     map[string]struct{}
	limit    int
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithDeadline bounds Solve. Without it Solve runs to completion.
func WithDeadline(d *Deadline) SolverOption {
	return func(s *Solver) {
		s.deadline = d
	}
}

// NewSolver creates a solver for p over d.
func NewSolver(d *dict.Dictionary, p *Problem, opts ...SolverOption) *Solver {
	s := &Solver{
		dict:    d,
		matcher: NewMatcher(d),
		problem: p,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve returns up to limit joint answers, each the slot words joined by
// ';' in query order. Identical answers are returned once. A limit <= 0
// means no limit.
//
// When the deadline expires Solve returns the KindTimeout error and no
// answers.
func (s *Solver) Solve(limit int) ([]string, error) {
	s.bindings = NewBindings(s.problem.Declared)
	s.answer = make([]string, len(s.problem.Slots))
	s.results = nil
	s.seen = make(map[string]struct{})
	s.limit = limit

	if err := s.solve(0); err != nil {
		return nil, err
	}
	return s.results, nil
}

func (s *Solver) full() bool {
	return s.limit > 0 && len(s.results) >= s.limit
}

func (s *Solver) solve(depth int) error {
	if depth == len(s.problem.Slots) {
		s.record()
		return nil
	}
	slot := s.problem.Slots[depth]
	if c, ok := slot.Node.(ir.Composite); ok {
		return s.solveComposite(depth, slot, c)
	}
	return s.solvePlain(depth, slot)
}

func (s *Solver) solvePlain(depth int, slot Slot) error {
	for _, word := range s.dict.Scan(Plan(s.dict, slot.Node)) {
		if err := s.deadline.Check(); err != nil {
			return err
		}
		if !s.matcher.Match(slot.Node, word) {
			continue
		}
		s.answer[slot.Index] = word
		if err := s.solve(depth + 1); err != nil {
			return err
		}
		if s.full() {
			return nil
		}
	}
	return nil
}

func (s *Solver) solveComposite(depth int, slot Slot, c ir.Composite) error {
	pieces, ok := s.resolve(c)
	if !ok {
		return nil
	}
	format := make([]ir.Length, len(pieces))
	for i, p := range pieces {
		format[i] = p.length()
	}
	lo, hi := formatBounds(format)

	for _, word := range s.dict.Scan(planBounds(s.dict, lo, hi, pieces[0].firstRunes())) {
		if err := s.deadline.Check(); err != nil {
			return err
		}
		tried := make(map[string]struct{})
		for _, parts := range partition.Split(word, format) {
			binds, ok := s.consistent(pieces, parts)
			if !ok {
				continue
			}
			key := bindingKey(binds)
			if _, dup := tried[key]; dup {
				continue
			}
			tried[key] = struct{}{}

			undo := make([]func(), 0, len(binds))
			for _, b := range binds {
				undo = append(undo, s.bindings.Bind(b.name, b.value))
			}
			s.answer[slot.Index] = word
			err := s.solve(depth + 1)
			for i := len(undo) - 1; i >= 0; i-- {
				undo[i]()
			}
			if err != nil {
				return err
			}
			if s.full() {
				return nil
			}
		}
	}
	return nil
}

func (s *Solver) record() {
	joined := strings.Join(s.answer, ";")
	if _, dup := s.seen[joined]; dup {
		return
	}
	s.seen[joined] = struct{}{}
	s.results = append(s.results, joined)
}

type pieceKind int

const (
	piecePattern pieceKind = iota
	pieceWord
	pieceText // a bound variable, already voiced as referenced
	pieceFree
)

// piece is a composite segment after substituting bound variables.
type piece struct {
	kind    pieceKind
	pattern *ir.Pattern
	text    string
	v       ir.VariableSegment
}

func (p piece) length() ir.Length {
	switch p.kind {
	case piecePattern:
		return ir.PatternSegment{Pattern: p.pattern}.Length()
	case pieceText:
		return ir.Exact(utf8.RuneCountInString(p.text))
	case pieceFree:
		return p.v.Length()
	}
	return ir.AtLeast(1)
}

func (p piece) firstRunes() []rune {
	switch p.kind {
	case piecePattern:
		first, _ := p.pattern.FirstRunes()
		return first
	case pieceText:
		if p.text == "" {
			return nil
		}
		r, _ := utf8.DecodeRuneInString(p.text)
		return []rune{r}
	}
	return nil
}

// resolve substitutes bound variables. It fails when a voicing mark has
// no correspondent for the bound value's first rune.
func (s *Solver) resolve(c ir.Composite) ([]piece, bool) {
	out := make([]piece, 0, len(c.Segments))
	for _, seg := range c.Segments {
		switch seg := seg.(type) {
		case ir.PatternSegment:
			out = append(out, piece{kind: piecePattern, pattern: seg.Pattern})
		case ir.MembershipSegment:
			out = append(out, piece{kind: pieceWord})
		case ir.VariableSegment:
			value, bound := s.bindings.Value(seg.Name)
			if !bound {
				out = append(out, piece{kind: pieceFree, v: seg})
				continue
			}
			text, ok := applyMark(value, seg.Mark)
			if !ok {
				return nil, false
			}
			out = append(out, piece{kind: pieceText, text: text})
		}
	}
	return out, true
}

type binding struct {
	name  byte
	value string
}

// consistent checks one partition against the resolved pieces and
// returns the new bindings it implies.
func (s *Solver) consistent(pieces []piece, parts []string) ([]binding, bool) {
	var (
		local [26]string
		set   [26]bool
		binds []binding
	)
	for i, p := range pieces {
		part := parts[i]
		switch p.kind {
		case piecePattern:
			if !p.pattern.Match(part) {
				return nil, false
			}
		case pieceWord:
			if !s.dict.Contains(part) {
				return nil, false
			}
		case pieceText:
			if part != p.text {
				return nil, false
			}
		case pieceFree:
			value, ok := removeMark(part, p.v.Mark)
			if !ok {
				return nil, false
			}
			j := p.v.Name - 'A'
			if set[j] {
				if local[j] != value {
					return nil, false
				}
				continue
			}
			local[j], set[j] = value, true
			binds = append(binds, binding{name: p.v.Name, value: value})
		}
	}
	return binds, true
}

func bindingKey(binds []binding) string {
	var b strings.Builder
	for _, x := range binds {
		b.WriteByte(x.name)
		b.WriteString(x.value)
		b.WriteByte(0)
	}
	return b.String()
}

// applyMark voices the first rune of value as mark requests.
func applyMark(value string, mark ir.Mark) (string, bool) {
	return mapFirst(value, mark, kana.Voice, kana.SemiVoice)
}

// removeMark is the inverse of applyMark.
func removeMark(value string, mark ir.Mark) (string, bool) {
	return mapFirst(value, mark, kana.Unvoice, kana.UnsemiVoice)
}

func mapFirst(value string, mark ir.Mark, voiced, semi func(rune) (rune, bool)) (string, bool) {
	if mark == ir.MarkNone {
		return value, true
	}
	r, size := utf8.DecodeRuneInString(value)
	if size == 0 {
		return "", false
	}
	f := voiced
	if mark == ir.MarkSemiVoiced {
		f = semi
	}
	m, ok := f(r)
	if !ok {
		return "", false
	}
	return string(m) + value[size:], true
}
