package engine

import (
	"slices"
	"strings"

	"github.com/leonfyr/jisho/internal/compiler"
	"github.com/leonfyr/jisho/internal/ir"
)

// Slot is one ';'-separated unit of a multi-slot query.
type Slot struct {
	Index  int    // position among the non-empty slots, in query order
	Source string // slot text with redundant parentheses removed
	Node   ir.Node
	Vars   []byte // distinct shared variables, in order of first use
}

// Problem is a prepared multi-slot query.
type Problem struct {
	// Slots in solving order: most variables first, ties kept in query
	// order.
	Slots []Slot

	// Declared maps a variable to the length fixed by |X|=d.
	Declared map[byte]int
}

// Prepare splits a normalized multi-slot query into slots, extracts the
// length declarations and compiles every slot.
//
// Errors, first found wins:
//   - '<' or '>' anywhere: KindSyntax with the offending rune
//   - a slot containing '=' that is not |X|=d with d in 1–9, a repeated
//     declaration, or a declaration no slot uses: KindLengthDecl
//   - nothing but empty slots and declarations: KindEmpty
//   - top-level '&', '|' or '!' in a slot: KindGlobalOperator
//   - any error from compiler.ParseSlot
func Prepare(normalized string) (*Problem, error) {
	if i := strings.IndexAny(normalized, "<>"); i >= 0 {
		return nil, ir.NewError(ir.KindSyntax, normalized[i:i+1])
	}

	var (
		sources  []string
		declared = make(map[byte]int)
		decls    = make(map[byte]string)
	)
	for _, part := range strings.Split(normalized, ";") {
		part = compiler.StripParens(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "=") {
			sources = append(sources, part)
			continue
		}
		name, n, ok := parseDeclaration(part)
		if !ok {
			return nil, ir.NewError(ir.KindLengthDecl, part)
		}
		if _, dup := declared[name]; dup {
			return nil, ir.NewError(ir.KindLengthDecl, part)
		}
		declared[name] = n
		decls[name] = part
	}
	if len(sources) == 0 {
		return nil, ir.NewError(ir.KindEmpty, "")
	}

	for _, src := range sources {
		if compiler.HasTopLevel(src, '&', '|', '!') {
			return nil, ir.NewError(ir.KindGlobalOperator, src)
		}
	}

	p := &Problem{Declared: declared}
	used := make(map[byte]bool)
	for i, src := range sources {
		node, err := compiler.ParseSlot(src, declared)
		if err != nil {
			return nil, err
		}
		slot := Slot{Index: i, Source: src, Node: node}
		if c, ok := node.(ir.Composite); ok {
			slot.Vars = c.Variables()
		}
		for _, v := range slot.Vars {
			used[v] = true
		}
		p.Slots = append(p.Slots, slot)
	}

	for name := byte('A'); name <= 'Z'; name++ {
		if src, ok := decls[name]; ok && !used[name] {
			return nil, ir.NewError(ir.KindLengthDecl, src)
		}
	}

	slices.SortStableFunc(p.Slots, func(a, b Slot) int {
		return len(b.Vars) - len(a.Vars)
	})
	return p, nil
}

// parseDeclaration parses "|X|=d".
func parseDeclaration(s string) (byte, int, bool) {
	if len(s) != 5 || s[0] != '|' || s[2] != '|' || s[3] != '=' {
		return 0, 0, false
	}
	if s[1] < 'A' || s[1] > 'Z' || s[4] < '1' || s[4] > '9' {
		return 0, 0, false
	}
	return s[1], int(s[4] - '0'), true
}
