package engine

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/leonfyr/jisho/internal/dict"
	"github.com/leonfyr/jisho/internal/ir"
)

// Plan returns the ordinals of the words that can possibly match n,
// computed from the dictionary's length and first-rune indices. A nil
// result means the indices cannot narrow the search and every word is
// a candidate.
//
// Plan over-approximates: every word that matches n is in the result,
// but not every word in the result matches.
func Plan(d *dict.Dictionary, n ir.Node) *roaring.Bitmap {
	switch n := n.(type) {
	case *ir.Pattern:
		first, _ := n.FirstRunes()
		return planBounds(d, n.MinLength(), n.MaxLength(), first)
	case ir.Composite:
		var first []rune
		if len(n.Segments) > 0 {
			if ps, ok := n.Segments[0].(ir.PatternSegment); ok {
				first, _ = ps.Pattern.FirstRunes()
			}
		}
		lo, hi := formatBounds(n.Format())
		return planBounds(d, lo, hi, first)
	case ir.And:
		var out *roaring.Bitmap
		for _, c := range n.Children {
			out = intersect(out, Plan(d, c))
		}
		return out
	case ir.Or:
		out := roaring.New()
		for _, c := range n.Children {
			bm := Plan(d, c)
			if bm == nil {
				return nil
			}
			out.Or(bm)
		}
		return out
	}
	return nil
}

// planBounds narrows by rune length lo..hi (hi Unbounded for open) and
// by the possible first runes.
func planBounds(d *dict.Dictionary, lo, hi int, first []rune) *roaring.Bitmap {
	var out *roaring.Bitmap
	switch {
	case lo == hi:
		out = d.ByLength(lo)
	case lo > 0 || hi != ir.Unbounded:
		out = d.ByLengthRange(lo, hi)
	}
	if len(first) > 0 {
		out = intersect(out, d.ByFirst(first...))
	}
	return out
}

// formatBounds returns the total rune length range a partition format
// accepts.
func formatBounds(format []ir.Length) (int, int) {
	lo, hi := 0, 0
	for _, l := range format {
		lo += l.N
		if l.AtLeast {
			hi = ir.Unbounded
		} else if hi != ir.Unbounded {
			hi += l.N
		}
	}
	return lo, hi
}

// intersect treats nil as "everything".
func intersect(a, b *roaring.Bitmap) *roaring.Bitmap {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return roaring.And(a, b)
}
