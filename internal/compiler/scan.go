package compiler

import "unicode/utf8"

// All structural characters of the query language are ASCII, so the
// scanners below work on bytes; multi-byte kana never contain them.

// StripParens removes parentheses that enclose the whole expression,
// repeatedly. "((あ|い))" becomes "あ|い"; "(あ)|(い)" is unchanged.
func StripParens(expr string) string {
	for len(expr) >= 2 && expr[0] == '(' && matchingParen(expr, 0) == len(expr)-1 {
		expr = expr[1 : len(expr)-1]
	}
	return expr
}

// matchingParen returns the index of the ')' closing the '(' at open,
// or -1.
func matchingParen(expr string, open int) int {
	depth := 0
	for i := open; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// depthTracker follows bracket nesting while scanning an expression.
type depthTracker struct {
	round, square, angle, curly int
}

func (d *depthTracker) step(c byte) {
	switch c {
	case '(':
		d.round++
	case ')':
		d.round--
	case '[':
		d.square++
	case ']':
		d.square--
	case '<':
		d.angle++
	case '>':
		d.angle--
	case '{':
		d.curly++
	case '}':
		d.curly--
	}
}

func (d *depthTracker) top() bool {
	return d.round == 0 && d.square == 0 && d.angle == 0 && d.curly == 0
}

// topLevel returns the byte offsets of op outside every bracket.
func topLevel(expr string, op byte) []int {
	var (
		d   depthTracker
		pos []int
	)
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c == op && d.top() {
			pos = append(pos, i)
			continue
		}
		d.step(c)
	}
	return pos
}

// splitTopLevel splits expr on every op outside brackets.
func splitTopLevel(expr string, op byte) []string {
	pos := topLevel(expr, op)
	out := make([]string, 0, len(pos)+1)
	start := 0
	for _, p := range pos {
		out = append(out, expr[start:p])
		start = p + 1
	}
	return append(out, expr[start:])
}

// HasTopLevel reports whether any of ops occurs outside brackets.
func HasTopLevel(expr string, ops ...byte) bool {
	for _, op := range ops {
		if len(topLevel(expr, op)) > 0 {
			return true
		}
	}
	return false
}

func decodeRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}
