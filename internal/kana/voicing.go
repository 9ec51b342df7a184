package kana

var (
	voiced = pairs(
		"かきくけこさしすせそたちつてとはひふへほ",
		"がぎぐげござじずぜぞだぢづでどばびぶべぼ",
	)
	semiVoiced = pairs("はひふへほ", "ぱぴぷぺぽ")

	unvoiced     = invert(voiced)
	unsemiVoiced = invert(semiVoiced)
)

func pairs(from, to string) map[rune]rune {
	a, b := []rune(from), []rune(to)
	m := make(map[rune]rune, len(a))
	for i := range a {
		m[a[i]] = b[i]
	}
	return m
}

func invert(m map[rune]rune) map[rune]rune {
	out := make(map[rune]rune, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// Voice maps an unvoiced kana to its voiced form (か → が).
// ok is false when r has no voiced correspondent.
func Voice(r rune) (rune, bool) {
	v, ok := voiced[r]
	return v, ok
}

// SemiVoice maps a h-row kana to its semi-voiced form (は → ぱ).
func SemiVoice(r rune) (rune, bool) {
	v, ok := semiVoiced[r]
	return v, ok
}

// Unvoice is the inverse of Voice (が → か).
func Unvoice(r rune) (rune, bool) {
	v, ok := unvoiced[r]
	return v, ok
}

// UnsemiVoice is the inverse of SemiVoice (ぱ → は).
func UnsemiVoice(r rune) (rune, bool) {
	v, ok := unsemiVoiced[r]
	return v, ok
}
