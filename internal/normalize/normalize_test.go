package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonfyr/jisho/internal/ir"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain kana", "あい", "あい"},
		{"whitespace stripped", " あ ?\n\t", "あ?"},
		{"ideographic space stripped", "あ　い", "あい"},
		{"fullwidth punctuation", "あ？＊", "あ?*"},
		{"fullwidth digits", "＊｛３｝", "*{3}"},
		{"fullwidth letters", "ＡあＡ；", "AあA;"},
		{"corner brackets become square", "?「k」", "?[k]"},
		{"lenticular brackets", "*【s】", "*[s]"},
		{"double angle quotes", "《かな》", "<かな>"},
		{"curly quotes become marks", "A“;A‘", `A";A'`},
		{"star operator", "あ⋆", "あ*"},
		{"letters in square lowercased", "?[K|S]", "?[k|s]"},
		{"letters outside uppercased", "ab;a", "AB;A"},
		{"long vowel in curly", "*{2ー4}", "*{2-4}"},
		{"curly after square", "*[k]{2}", "*[k]{2}"},
		{"square after curly", "*{2}[k]", "*{2}[k]"},
		{"empty pairs removed", "あ()い<>", "あい"},
		{"nested empty pairs removed", "あ(())", "あ"},
		{"empty square removed", "あ*[]", "あ*"},
		{"comma kept in curly", "*{1,3}", "*{1,3}"},
		{"combining voiced mark composed", "か\u3099", "が"},
		{"length declaration", "|a|=2;aい", "|A|=2;Aい"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kind    ir.ErrorKind
		context string
	}{
		{"empty", "", ir.KindEmpty, ""},
		{"only whitespace", "  \n", ir.KindEmpty, ""},
		{"only empty pairs", "()<>", ir.KindEmpty, ""},
		{"katakana", "カ", ir.KindDisallowedChar, "カ"},
		{"small kana", "ゃ", ir.KindDisallowedChar, "ゃ"},
		{"symbol", "あ#", ir.KindDisallowedChar, "#"},
		{"hyphen outside curly", "あ-", ir.KindDisallowedChar, "-"},
		{"comma outside curly", "?[k,s]", ir.KindDisallowedChar, ","},
		{"fullwidth hyphen outside curly", "あ－い", ir.KindDisallowedChar, "-"},
		{"unclosed round", "(あ", ir.KindBracket, "("},
		{"unopened round", "あ)", ir.KindBracket, ")"},
		{"unclosed square", "?[k", ir.KindBracket, "["},
		{"square inside angle", "<?[k]>", ir.KindBracket, "["},
		{"angle inside square", "?[<]", ir.KindBracket, "<"},
		{"curly inside square", "*[k{]", ir.KindBracket, "{"},
		{"round inside angle", "<(あ)>", ir.KindBracket, "("},
		{"unopened curly", "*2}", ir.KindBracket, "}"},
		{"square after literal", "あ[k]", ir.KindSyntax, "あ["},
		{"square at start", "[k]", ir.KindSyntax, "["},
		{"curly after literal", "あ{2}", ir.KindSyntax, "あ{"},
		{"curly after question", "?{2}", ir.KindSyntax, "?{"},
		{"letter in curly", "*{a}", ir.KindSyntax, "a"},
		{"kana in curly", "*{あ}", ir.KindSyntax, "あ"},
		{"digit in square", "?[1]", ir.KindSyntax, "1"},
		{"digit in angle", "<1あ>", ir.KindSyntax, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			require.Error(t, err)
			var qe *ir.QueryError
			require.ErrorAs(t, err, &qe)
			assert.Equal(t, tt.kind, qe.Kind)
			assert.Equal(t, tt.context, qe.Context)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	queries := []string{
		"あ?",
		"  *[K|s]{2ー3}ん ",
		"そと@",
		"<あい>*",
		"(あ*|*い)&!*う",
		"|a|=1;aか;a\"き",
		"*{}[k]",
		"あ(())い",
		"？［ｋ］",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			once, err := Normalize(q)
			require.NoError(t, err)
			twice, err := Normalize(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestNormalize_RescanAfterRemoval(t *testing.T) {
	// "?[]{2}" loses its class and leaves "?{2}", which is invalid.
	_, err := Normalize("?[]{2}")
	require.Error(t, err)
	assert.True(t, ir.IsKind(err, ir.KindSyntax))
}

func TestFold(t *testing.T) {
	assert.Equal(t, '?', Fold('？'))
	assert.Equal(t, 'A', Fold('Ａ'))
	assert.Equal(t, '5', Fold('５'))
	assert.Equal(t, '[', Fold('『'))
	assert.Equal(t, 'ー', Fold('ー'))
	assert.Equal(t, 'あ', Fold('あ'))
}
