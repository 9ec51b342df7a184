package kana

import (
	"errors"
	"fmt"
	"strings"
)

// codes maps a lowercase property code to its gojuon row or column.
// "x" stands for the vowel row (written "aa") and "q" for the nasal
// (written "nn"). Letters without an entry are undefined codes.
var codes = map[rune]Set{
	'x': Of("あいうえお"),
	'k': Of("かきくけこ"),
	's': Of("さしすせそ"),
	't': Of("たちつてと"),
	'n': Of("なにぬねの"),
	'h': Of("はひふへほ"),
	'm': Of("まみむめも"),
	'y': Of("やゆよ"),
	'r': Of("らりるれろ"),
	'w': Of("わを"),
	'g': Of("がぎぐげご"),
	'z': Of("ざじずぜぞ"),
	'd': Of("だぢづでど"),
	'b': Of("ばびぶべぼ"),
	'p': Of("ぱぴぷぺぽ"),
	'a': Of("あかさたなはまやらわがざだばぱ"),
	'i': Of("いきしちにひみりぎじぢびぴ"),
	'u': Of("うくすつぬふむゆるぐずづぶぷ"),
	'e': Of("えけせてねへめれげぜでべぺ"),
	'o': Of("おこそとのほもよろをごぞどぼぽ"),
	'q': Of("ん"),
}

// Code returns the set named by a property code.
func Code(c rune) (Set, bool) {
	s, ok := codes[c]
	return s, ok
}

// ClassErrorCode categorizes class expression failures.
type ClassErrorCode string

const (
	// ErrCodeUndefined indicates a rune that is neither kana nor a known code.
	ErrCodeUndefined ClassErrorCode = "UNDEFINED_CODE"

	// ErrCodeEmptyOperand indicates an operator with a missing side.
	ErrCodeEmptyOperand ClassErrorCode = "EMPTY_OPERAND"
)

// ClassError reports an invalid character-class expression.
type ClassError struct {
	Code ClassErrorCode
	Text string // offending text
}

func (e *ClassError) Error() string {
	return fmt.Sprintf("%s: %q", e.Code, e.Text)
}

// IsUndefinedCode returns true if err is an undefined-code ClassError.
func IsUndefinedCode(err error) bool {
	var ce *ClassError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUndefined
	}
	return false
}

// EvalClass evaluates a square-bracket class body such as "k|s",
// "a&!k" or "かk". The result is always a subset of Alphabet.
//
// Operators are found left to right at parenthesis depth 0, so
// "a|k&i" is a ∪ (k ∩ i). A leading "!" complements the remainder
// within the alphabet. Anything else is a literal run whose kana stand
// for themselves and whose letters are property codes.
func EvalClass(expr string) (Set, error) {
	expr = stripEnclosing(expr)
	if expr == "" {
		return Set{}, &ClassError{Code: ErrCodeEmptyOperand, Text: expr}
	}

	depth := 0
	for i, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case '&', '|':
			if depth != 0 {
				continue
			}
			left, err := EvalClass(expr[:i])
			if err != nil {
				return Set{}, err
			}
			right, err := EvalClass(expr[i+1:])
			if err != nil {
				return Set{}, err
			}
			if r == '&' {
				return left.Intersect(right), nil
			}
			return left.Union(right), nil
		}
	}

	if expr[0] == '!' {
		inner, err := EvalClass(expr[1:])
		if err != nil {
			return Set{}, err
		}
		return inner.Complement(), nil
	}

	return evalLiteral(expr)
}

func evalLiteral(expr string) (Set, error) {
	expr = strings.ReplaceAll(expr, "aa", "x")
	expr = strings.ReplaceAll(expr, "nn", "q")

	var s Set
	for _, r := range expr {
		if i, ok := alphabetIndex[r]; ok {
			s = s.with(i)
			continue
		}
		code, ok := codes[r]
		if !ok {
			return Set{}, &ClassError{Code: ErrCodeUndefined, Text: string(r)}
		}
		s = s.Union(code)
	}
	return s, nil
}

// stripEnclosing removes parentheses that wrap the whole expression,
// repeatedly: "((k))" becomes "k" but "(k)|(s)" is left alone.
func stripEnclosing(expr string) string {
	for len(expr) >= 2 && expr[0] == '(' && expr[len(expr)-1] == ')' {
		if !enclosesAll(expr) {
			break
		}
		expr = expr[1 : len(expr)-1]
	}
	return expr
}

func enclosesAll(expr string) bool {
	depth := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(expr)-1 {
				return false
			}
		}
	}
	return depth == 0
}
