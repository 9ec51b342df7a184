package compiler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/leonfyr/jisho/internal/ir"
	"github.com/leonfyr/jisho/internal/kana"
)

// CompilePattern compiles a wildcard run such as "あ?[k]*{2-3}" into an
// anchored pattern.
//
// Atoms:
//
//	?          one rune
//	?[c]       one rune of class c
//	*          any run
//	*[c]       a run of class c
//	*{L}       a run whose length is in L
//	*[c]{L}    a run of class c whose length is in L
//	(a|b)      one of the alternative sequences
//
// Every other rune is a literal. Shared variables, "@", anagram blocks,
// voicing marks and slot syntax are rejected with KindSyntax; they are
// handled by Parse and ParseSlot before a run reaches this function.
func CompilePattern(expr string) (*ir.Pattern, error) {
	fragments, err := compileSequence(expr)
	if err != nil {
		return nil, err
	}
	p, err := ir.NewPattern(expr, fragments)
	if err != nil {
		return nil, ir.WrapError(ir.KindSyntax, expr, err)
	}
	return p, nil
}

func compileSequence(expr string) ([]ir.Fragment, error) {
	var (
		out     []ir.Fragment
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() > 0 {
			out = append(out, ir.Literal{Text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == '?' || c == '*':
			end, frag, err := compileWildcard(expr, i)
			if err != nil {
				return nil, err
			}
			flush()
			out = append(out, frag)
			i = end
		case c == '(':
			end := matchingParen(expr, i)
			if end < 0 {
				return nil, ir.NewError(ir.KindBracket, expr[i:])
			}
			group, err := compileGroup(expr[i+1 : end])
			if err != nil {
				return nil, err
			}
			flush()
			out = append(out, group)
			i = end + 1
		case strings.IndexByte(reserved, c) >= 0, c >= 'A' && c <= 'Z':
			return nil, ir.NewError(ir.KindSyntax, expr)
		default:
			r, size := decodeRune(expr[i:])
			literal.WriteRune(r)
			i += size
		}
	}
	flush()
	return out, nil
}

// reserved are the runes that may not appear as literals in a run.
const reserved = `)[]{}<>@;="'&|!`

// compileWildcard compiles the ? or * at expr[start] together with the
// bracket groups that follow it. It returns the index after the atom.
func compileWildcard(expr string, start int) (int, ir.Fragment, error) {
	var (
		class     *kana.Set
		lengths   ir.LengthSet
		hasLength bool
	)

	j := start + 1
	for j < len(expr) && (expr[j] == '[' || expr[j] == '{') {
		open := expr[j]
		closeCh := byte(']')
		if open == '{' {
			closeCh = '}'
		}
		end := strings.IndexByte(expr[j+1:], closeCh)
		if end < 0 {
			return 0, nil, ir.NewError(ir.KindBracket, expr[j:])
		}
		body := expr[j+1 : j+1+end]
		j += end + 2

		if open == '[' {
			if class != nil {
				return 0, nil, ir.NewError(ir.KindSyntax, expr[start:j])
			}
			set, err := kana.EvalClass(body)
			if err != nil {
				return 0, nil, classError(err, body)
			}
			class = &set
			continue
		}

		if hasLength {
			return 0, nil, ir.NewError(ir.KindSyntax, expr[start:j])
		}
		ls, err := ParseLengths(body)
		if err != nil {
			return 0, nil, err
		}
		lengths, hasLength = ls, true
	}

	atom := expr[start:j]
	if expr[start] == '?' {
		switch {
		case hasLength:
			return 0, nil, ir.NewError(ir.KindSyntax, atom)
		case class != nil:
			return j, ir.Class{Set: *class}, nil
		default:
			return j, ir.AnyChar{}, nil
		}
	}

	switch {
	case hasLength:
		return j, ir.Sized{Set: class, Lengths: lengths}, nil
	case class != nil:
		return j, ir.ClassRun{Set: *class}, nil
	default:
		return j, ir.AnyRun{}, nil
	}
}

func compileGroup(body string) (ir.Fragment, error) {
	var alts [][]ir.Fragment
	for _, alt := range splitTopLevel(body, '|') {
		if HasTopLevel(alt, '&', '!') {
			return nil, ir.NewError(ir.KindSyntax, "("+body+")")
		}
		seq, err := compileSequence(alt)
		if err != nil {
			return nil, err
		}
		alts = append(alts, seq)
	}
	return ir.Group{Alternatives: alts}, nil
}

// ParseLengths parses the body of a {…} group: comma-separated items
// of the form n, n-m, n- or -m, every number in 0..10.
func ParseLengths(body string) (ir.LengthSet, error) {
	bad := func() (ir.LengthSet, error) {
		return nil, ir.NewError(ir.KindSyntax, "{"+body+"}")
	}
	if body == "" {
		return bad()
	}

	var out ir.LengthSet
	for _, item := range strings.Split(body, ",") {
		lo, hi, isRange := strings.Cut(item, "-")
		if !isRange {
			n, ok := parseBound(item)
			if !ok {
				return bad()
			}
			out = append(out, ir.LengthRange{Lo: n, Hi: n})
			continue
		}
		if lo == "" && hi == "" {
			return bad()
		}
		r := ir.LengthRange{Lo: 0, Hi: ir.Unbounded}
		if lo != "" {
			n, ok := parseBound(lo)
			if !ok {
				return bad()
			}
			r.Lo = n
		}
		if hi != "" {
			n, ok := parseBound(hi)
			if !ok || n < r.Lo {
				return bad()
			}
			r.Hi = n
		}
		out = append(out, r)
	}
	return out, nil
}

func parseBound(s string) (int, bool) {
	if s == "" || strings.Trim(s, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > ir.MaxLength {
		return 0, false
	}
	return n, true
}

func classError(err error, body string) error {
	var ce *kana.ClassError
	if errors.As(err, &ce) && ce.Code == kana.ErrCodeUndefined {
		return ir.NewError(ir.KindUndefinedCode, ce.Text)
	}
	return ir.NewError(ir.KindSyntax, "["+body+"]")
}
