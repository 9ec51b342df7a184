// Package partition enumerates the ways a word can be cut into
// consecutive pieces that satisfy a sequence of length constraints.
//
// The enumeration is exponential in the number of open ("at least")
// constraints but bounded by the word length, which for dictionary
// words is small.
package partition

import "github.com/leonfyr/jisho/internal/ir"

// Split returns every partition of word into len(format) consecutive
// pieces, one per constraint, that together consume the whole word.
// Lengths are counted in runes. Open constraints are explored shortest
// first. Split returns nil when no partition exists.
func Split(word string, format []ir.Length) [][]string {
	if len(format) == 0 {
		return nil
	}
	runes := []rune(word)

	// need[i] is the minimum number of runes format[i:] consumes.
	need := make([]int, len(format)+1)
	for i := len(format) - 1; i >= 0; i-- {
		need[i] = need[i+1] + format[i].N
	}
	if need[0] > len(runes) {
		return nil
	}

	var (
		out   [][]string
		cur   = make([]string, 0, len(format))
		visit func(i, pos int)
	)
	visit = func(i, pos int) {
		rest := len(runes) - pos
		if i == len(format)-1 {
			if format[i].Allows(rest) {
				out = append(out, append(append([]string(nil), cur...), string(runes[pos:])))
			}
			return
		}
		f := format[i]
		maxN := rest - need[i+1]
		if !f.AtLeast {
			maxN = min(maxN, f.N)
		}
		for n := f.N; n <= maxN; n++ {
			cur = append(cur, string(runes[pos:pos+n]))
			visit(i+1, pos+n)
			cur = cur[:len(cur)-1]
		}
	}
	visit(0, 0)
	return out
}

// Count returns the number of partitions Split would produce.
func Count(word string, format []ir.Length) int {
	return len(Split(word, format))
}
