package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonfyr/jisho/internal/ir"
)

// sources renders a tree as nested source strings for compact assertions.
func sources(n ir.Node) any {
	switch n := n.(type) {
	case *ir.Pattern:
		return n.Source
	case ir.Membership:
		return "@"
	case ir.Composite:
		return "composite:" + ir.FormatSegments(n.Segments)
	case ir.Not:
		return map[string]any{"not": sources(n.Child)}
	case ir.And:
		out := make([]any, len(n.Children))
		for i, c := range n.Children {
			out[i] = sources(c)
		}
		return map[string]any{"and": out}
	case ir.Or:
		out := make([]any, len(n.Children))
		for i, c := range n.Children {
			out[i] = sources(c)
		}
		return map[string]any{"or": out}
	}
	return nil
}

func TestParse_Structure(t *testing.T) {
	tests := []struct {
		expr string
		want any
	}{
		{"あ?", "あ?"},
		{"((あ?))", "あ?"},
		{"あ*|*い", map[string]any{"or": []any{"あ*", "*い"}}},
		{"あ*&*い", map[string]any{"and": []any{"あ*", "*い"}}},
		{"あ*|*い&*う", map[string]any{"or": []any{"あ*", map[string]any{"and": []any{"*い", "*う"}}}}},
		{"(あ*|*い)&*う", map[string]any{"and": []any{map[string]any{"or": []any{"あ*", "*い"}}, "*う"}}},
		{"!あ*&*い", map[string]any{"and": []any{map[string]any{"not": "あ*"}, "*い"}}},
		{"!!あ*", map[string]any{"not": map[string]any{"not": "あ*"}}},
		{"a|b|c", map[string]any{"or": []any{"a", "b", "c"}}},
		{"?[k|s]", "?[k|s]"},
		{"(か|さ)い", "(か|さ)い"},
		{"@", "@"},
		{"そと@", "composite:そと@"},
		{"@*@", "composite:@*@"},
		{"<あい>", map[string]any{"or": []any{"あい", "いあ"}}},
		{"か<ああ>", "かああ"},
		{"<そと>@", map[string]any{"or": []any{"composite:そと@", "composite:とそ@"}}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			n, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sources(n))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		kind ir.ErrorKind
	}{
		{"empty", "", ir.KindEmpty},
		{"empty operand", "あ|", ir.KindSyntax},
		{"empty group", "()|あ", ir.KindSyntax},
		{"bare negation", "!", ir.KindSyntax},
		{"error in branch short-circuits", "あ|?{2}", ir.KindSyntax},
		{"undefined code in branch", "あ&?[f]", ir.KindUndefinedCode},
		{"mark without letter", `そと@"`, ir.KindSyntax},
		{"double mark", `A"'`, ir.KindVoicing},
		{"negation mid-run", "あ!い", ir.KindSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.expr)
			require.Error(t, err)
			assert.True(t, ir.IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestParse_AnagramLimit(t *testing.T) {
	// 9 distinct runes give 9! = 362880 arrangements.
	_, err := Parse("<あいうえおかきくけ>")
	require.Error(t, err)
	assert.True(t, ir.IsKind(err, ir.KindSyntax))

	// Two blocks of 6 give 720 * 720 branches.
	_, err = Parse("<あいうえおか><さしすせそた>")
	require.Error(t, err)
	assert.True(t, ir.IsKind(err, ir.KindSyntax))

	n, err := Parse("<あいうえおかきく>")
	require.NoError(t, err)
	or, ok := n.(ir.Or)
	require.True(t, ok)
	assert.Len(t, or.Children, MaxAnagramBranches)
}

func TestParse_Composite(t *testing.T) {
	n, err := Parse("そと@")
	require.NoError(t, err)

	c, ok := n.(ir.Composite)
	require.True(t, ok)
	require.Len(t, c.Segments, 2)
	assert.IsType(t, ir.PatternSegment{}, c.Segments[0])
	assert.IsType(t, ir.MembershipSegment{}, c.Segments[1])
	assert.Equal(t, []ir.Length{ir.Exact(2), ir.AtLeast(1)}, c.Format())
}

func TestParseSlot(t *testing.T) {
	n, err := ParseSlot(`(A"か?B')`, map[byte]int{'A': 1})
	require.NoError(t, err)

	c, ok := n.(ir.Composite)
	require.True(t, ok)
	require.Len(t, c.Segments, 3)
	assert.Equal(t, ir.VariableSegment{Name: 'A', Mark: ir.MarkVoiced, Declared: 1}, c.Segments[0])
	assert.Equal(t, "か?", c.Segments[1].(ir.PatternSegment).Pattern.Source)
	assert.Equal(t, ir.VariableSegment{Name: 'B', Mark: ir.MarkSemiVoiced}, c.Segments[2])
	assert.Equal(t, []ir.Length{ir.Exact(1), ir.Exact(2), ir.AtLeast(0)}, c.Format())
	assert.Equal(t, []byte{'A', 'B'}, c.Variables())

	plain, err := ParseSlot("あ?", nil)
	require.NoError(t, err)
	assert.IsType(t, &ir.Pattern{}, plain)

	_, err = ParseSlot("()", nil)
	assert.True(t, ir.IsKind(err, ir.KindEmpty))
}

func TestPermutations(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"あ", 1},
		{"あい", 2},
		{"あいう", 6},
		{"あいうえ", 24},
		{"ああい", 3},
		{"ああいい", 6},
		{"ああああ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			perms := Permutations(tt.in)
			assert.Len(t, perms, tt.want)

			seen := map[string]bool{}
			for _, p := range perms {
				assert.False(t, seen[p], "duplicate %q", p)
				seen[p] = true
				assert.Equal(t, len([]rune(tt.in)), len([]rune(p)))
			}
		})
	}
}

func TestPermutations_Factorial(t *testing.T) {
	for n := 1; n <= 6; n++ {
		in := strings.Join(strings.Split("abcdef", "")[:n], "")
		want := 1
		for i := 2; i <= n; i++ {
			want *= i
		}
		assert.Len(t, Permutations(in), want)
	}
}

func TestAnagramTokens(t *testing.T) {
	assert.Equal(t, []string{"あ", `A"`, "?", "B"}, anagramTokens(`あA"?B`))
}

func TestStripParens(t *testing.T) {
	assert.Equal(t, "あ|い", StripParens("((あ|い))"))
	assert.Equal(t, "(あ)|(い)", StripParens("(あ)|(い)"))
	assert.Equal(t, "", StripParens("()"))
	assert.Equal(t, "あ", StripParens("あ"))
}
