package compiler

import (
	"strings"

	"github.com/leonfyr/jisho/internal/ir"
)

// Parse compiles a normalized single-mode query into an expression tree.
//
// Precedence, lowest first: | then & then !. Parentheses group, and an
// expression fully wrapped in parentheses is unwrapped before splitting.
// Below the boolean layer, anagram blocks <…> are expanded into an Or of
// every distinct arrangement, and runs containing "@" become Composite
// nodes. The first error found is returned; nothing is parsed after it.
func Parse(expr string) (ir.Node, error) {
	if expr == "" {
		return nil, ir.NewError(ir.KindEmpty, "")
	}
	return parseBoolean(expr)
}

// ParseSlot compiles one slot of a multi-slot query. Slots have no
// boolean operators and no anagram blocks; declared holds the lengths
// fixed by |X|=d declarations.
func ParseSlot(expr string, declared map[byte]int) (ir.Node, error) {
	expr = StripParens(expr)
	if expr == "" {
		return nil, ir.NewError(ir.KindEmpty, "")
	}
	return parseComposite(expr, declared)
}

func parseBoolean(expr string) (ir.Node, error) {
	whole := expr
	expr = StripParens(expr)
	if expr == "" {
		return nil, ir.NewError(ir.KindSyntax, whole)
	}

	for _, op := range []byte{'|', '&'} {
		parts := splitTopLevel(expr, op)
		if len(parts) == 1 {
			continue
		}
		children := make([]ir.Node, 0, len(parts))
		for _, part := range parts {
			if part == "" {
				return nil, ir.NewError(ir.KindSyntax, expr)
			}
			child, err := parseBoolean(part)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if op == '|' {
			return ir.Or{Children: children}, nil
		}
		return ir.And{Children: children}, nil
	}

	if expr[0] == '!' {
		if len(expr) == 1 {
			return nil, ir.NewError(ir.KindSyntax, expr)
		}
		child, err := parseBoolean(expr[1:])
		if err != nil {
			return nil, err
		}
		return ir.Not{Child: child}, nil
	}

	return parseRearrange(expr)
}

// parseRearrange expands anagram blocks. "か<いう>" becomes an Or over
// "かいう" and "かうい".
func parseRearrange(expr string) (ir.Node, error) {
	if !strings.Contains(expr, "<") {
		return parseComposite(expr, nil)
	}

	var (
		choices [][]string
		rest    = expr
	)
	for rest != "" {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			choices = append(choices, []string{rest})
			break
		}
		closing := strings.IndexByte(rest[open:], '>')
		if closing < 0 {
			return nil, ir.NewError(ir.KindBracket, rest[open:])
		}
		closing += open
		if open > 0 {
			choices = append(choices, []string{rest[:open]})
		}
		body := rest[open+1 : closing]
		if strings.ContainsAny(body, "()") {
			return nil, ir.NewError(ir.KindSyntax, "<"+body+">")
		}
		perms, ok := permuteTokens(anagramTokens(body), MaxAnagramBranches)
		if !ok {
			return nil, ir.NewError(ir.KindSyntax, expr)
		}
		choices = append(choices, perms)
		rest = rest[closing+1:]
	}

	total := 1
	for _, c := range choices {
		total *= len(c)
		if total > MaxAnagramBranches {
			return nil, ir.NewError(ir.KindSyntax, expr)
		}
	}

	branches := expand(choices)
	children := make([]ir.Node, 0, len(branches))
	for _, b := range branches {
		child, err := parseComposite(b, nil)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return ir.Or{Children: children}, nil
}

// expand forms the cartesian product of segment choices, dropping
// duplicate strings and keeping first-seen order.
func expand(choices [][]string) []string {
	out := []string{""}
	for _, c := range choices {
		next := make([]string, 0, len(out)*len(c))
		for _, prefix := range out {
			for _, s := range c {
				next = append(next, prefix+s)
			}
		}
		out = next
	}

	seen := make(map[string]bool, len(out))
	uniq := out[:0]
	for _, s := range out {
		if !seen[s] {
			seen[s] = true
			uniq = append(uniq, s)
		}
	}
	return uniq
}

// parseComposite splits a run containing "@" or shared variables into
// segments. Runs without either compile to a plain pattern.
func parseComposite(expr string, declared map[byte]int) (ir.Node, error) {
	if expr == "@" {
		return ir.Membership{}, nil
	}
	if !hasCompositeMarker(expr) {
		return CompilePattern(expr)
	}

	var (
		segments []ir.Segment
		d        depthTracker
		start    = 0
	)
	flush := func(end int) error {
		if end <= start {
			return nil
		}
		p, err := CompilePattern(expr[start:end])
		if err != nil {
			return err
		}
		segments = append(segments, ir.PatternSegment{Pattern: p})
		return nil
	}

	for i := 0; i < len(expr); {
		c := expr[i]
		if !d.top() {
			d.step(c)
			i++
			continue
		}
		switch {
		case c == '@':
			if err := flush(i); err != nil {
				return nil, err
			}
			segments = append(segments, ir.MembershipSegment{})
			i++
			start = i
		case c >= 'A' && c <= 'Z':
			if err := flush(i); err != nil {
				return nil, err
			}
			v := ir.VariableSegment{Name: c, Declared: declared[c]}
			i++
			if i < len(expr) && (expr[i] == '"' || expr[i] == '\'') {
				v.Mark = ir.MarkVoiced
				if expr[i] == '\'' {
					v.Mark = ir.MarkSemiVoiced
				}
				i++
				if i < len(expr) && (expr[i] == '"' || expr[i] == '\'') {
					return nil, ir.NewError(ir.KindVoicing, expr[i-2:i+1])
				}
			}
			segments = append(segments, v)
			start = i
		case c == '"' || c == '\'':
			return nil, ir.NewError(ir.KindSyntax, expr)
		default:
			d.step(c)
			i++
		}
	}
	if err := flush(len(expr)); err != nil {
		return nil, err
	}

	return ir.Composite{Source: expr, Segments: segments}, nil
}

// hasCompositeMarker reports whether "@" or an uppercase letter occurs
// outside parentheses and brackets.
func hasCompositeMarker(expr string) bool {
	var d depthTracker
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if d.top() && (c == '@' || (c >= 'A' && c <= 'Z')) {
			return true
		}
		d.step(c)
	}
	return false
}
