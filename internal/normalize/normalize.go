// Package normalize validates raw query text and rewrites it into the
// canonical form the compiler expects.
//
// Canonical form has no whitespace, only halfwidth punctuation and
// digits, lowercase letters inside [] (property codes), uppercase
// letters elsewhere (shared variables), and no empty bracket pairs.
// Normalize is idempotent: feeding its output back in returns the same
// string.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/leonfyr/jisho/internal/ir"
	"github.com/leonfyr/jisho/internal/kana"
)

// translate folds the punctuation that width folding does not cover.
var translate = map[rune]rune{
	'⋆': '*',
	'【': '[',
	'】': ']',
	'「': '[',
	'」': ']',
	'『': '[',
	'』': ']',
	'《': '<',
	'》': '>',
	'“': '"',
	'”': '"',
	'‘': '\'',
	'’': '\'',
}

const punctuation = `?*[]&|!()<>@;="'{}-,`

var emptyPairs = []string{"()", "{}", "<>", "[]"}

// Normalize canonicalizes a raw query.
//
// Errors are *ir.QueryError values:
//   - KindDisallowedChar for a rune outside the query alphabet, and for
//     '-' or ',' outside {}
//   - KindBracket for unbalanced or misnested brackets
//   - KindSyntax for misplaced [ or {, letters or kana inside {},
//     and digits inside [] or <>
//   - KindEmpty when nothing remains
func Normalize(raw string) (string, error) {
	out, err := scan(norm.NFC.String(raw))
	if err != nil {
		return "", err
	}

	for {
		stripped := removeEmptyPairs(out)
		if stripped == out {
			break
		}
		// Removing a pair can create a new adjacency, so the result is
		// validated again.
		if out, err = scan(stripped); err != nil {
			return "", err
		}
	}

	if out == "" {
		return "", ir.NewError(ir.KindEmpty, "")
	}
	return out, nil
}

// Fold maps a single rune to its halfwidth equivalent. Runes without
// one are returned unchanged.
func Fold(r rune) rune {
	if t, ok := translate[r]; ok {
		return t
	}
	p := width.LookupRune(r)
	if p.Kind() == width.EastAsianFullwidth {
		if n := p.Narrow(); n != 0 {
			return n
		}
	}
	return r
}

// Allowed reports whether r, after folding, belongs to the query alphabet.
func Allowed(r rune) bool {
	switch {
	case kana.InAlphabet(r):
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(punctuation, r)
}

type counters struct {
	round, square, angle, curly int
}

func (c counters) exclusive() bool {
	return c.square > 0 || c.angle > 0 || c.curly > 0
}

func scan(s string) (string, error) {
	var (
		c   counters
		out = make([]rune, 0, len(s))
	)

	prev := func() rune {
		if len(out) == 0 {
			return 0
		}
		return out[len(out)-1]
	}
	prevText := func() string {
		if p := prev(); p != 0 {
			return string(p)
		}
		return ""
	}

	for _, r := range s {
		r = Fold(r)
		if unicode.IsSpace(r) {
			continue
		}
		if !Allowed(r) {
			return "", ir.NewError(ir.KindDisallowedChar, string(r))
		}

		switch {
		case r == '(':
			if c.angle > 0 || c.curly > 0 {
				return "", ir.NewError(ir.KindBracket, string(r))
			}
			c.round++
		case r == ')':
			if c.round == 0 {
				return "", ir.NewError(ir.KindBracket, string(r))
			}
			c.round--
		case r == '[':
			if c.exclusive() {
				return "", ir.NewError(ir.KindBracket, string(r))
			}
			if p := prev(); p != '*' && p != '?' && p != '}' {
				return "", ir.NewError(ir.KindSyntax, prevText()+string(r))
			}
			c.square++
		case r == ']':
			if c.square == 0 {
				return "", ir.NewError(ir.KindBracket, string(r))
			}
			c.square--
		case r == '<':
			if c.exclusive() {
				return "", ir.NewError(ir.KindBracket, string(r))
			}
			c.angle++
		case r == '>':
			if c.angle == 0 {
				return "", ir.NewError(ir.KindBracket, string(r))
			}
			c.angle--
		case r == '{':
			if c.exclusive() {
				return "", ir.NewError(ir.KindBracket, string(r))
			}
			if p := prev(); p != '*' && p != ']' {
				return "", ir.NewError(ir.KindSyntax, prevText()+string(r))
			}
			c.curly++
		case r == '}':
			if c.curly == 0 {
				return "", ir.NewError(ir.KindBracket, string(r))
			}
			c.curly--
		case r == '-' || r == ',':
			if c.curly == 0 {
				return "", ir.NewError(ir.KindDisallowedChar, string(r))
			}
		case isLetter(r):
			switch {
			case c.curly > 0:
				return "", ir.NewError(ir.KindSyntax, string(r))
			case c.square > 0:
				r = unicode.ToLower(r)
			default:
				r = unicode.ToUpper(r)
			}
		case kana.InAlphabet(r):
			if c.curly > 0 {
				if r != 'ー' {
					return "", ir.NewError(ir.KindSyntax, string(r))
				}
				r = '-'
			}
		case r >= '0' && r <= '9':
			if c.square > 0 || c.angle > 0 {
				return "", ir.NewError(ir.KindSyntax, string(r))
			}
		}

		out = append(out, r)
	}

	if c != (counters{}) {
		return "", ir.NewError(ir.KindBracket, unclosed(c))
	}
	return string(out), nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func unclosed(c counters) string {
	switch {
	case c.round > 0:
		return "("
	case c.square > 0:
		return "["
	case c.angle > 0:
		return "<"
	default:
		return "{"
	}
}

func removeEmptyPairs(s string) string {
	for {
		before := s
		for _, pair := range emptyPairs {
			s = strings.ReplaceAll(s, pair, "")
		}
		if s == before {
			return s
		}
	}
}
