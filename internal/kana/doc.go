// Package kana holds the phonetic alphabet of the dictionary and the
// algebra over it.
//
// A Set is a subset of the fixed 72-rune Alphabet (the gojuon kana with
// their voiced and semi-voiced forms, plus the long-vowel mark ー).
// Class expressions written inside square brackets of a query are
// evaluated by EvalClass:
//
//	[k]        the k-row かきくけこ
//	[a]        the a-column あかさたな…
//	[aa] [x]   the vowel row あいうえお
//	[nn] [q]   ん
//	[k|s]      union
//	[a&!k]     intersection with a complement
//
// The voicing functions (Voice, SemiVoice and their inverses) map
// single kana and report whether a correspondent exists.
package kana
